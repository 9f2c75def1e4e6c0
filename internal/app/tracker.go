// Package app wires the session engine to persistence, recording and
// notifications, and manages the set of live sessions.
package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/atlasroulette/atlas-tracker/internal/bankroll"
	"github.com/atlasroulette/atlas-tracker/internal/config"
	"github.com/atlasroulette/atlas-tracker/internal/notify"
	"github.com/atlasroulette/atlas-tracker/internal/recorder"
	"github.com/atlasroulette/atlas-tracker/internal/report"
	"github.com/atlasroulette/atlas-tracker/internal/session"
	"github.com/atlasroulette/atlas-tracker/internal/store"
)

// Notifier defines the alert methods used by the tracker.
type Notifier interface {
	NotifySpinReport(ctx context.Context, textHTML string) error
	NotifyAlert(ctx context.Context, priority, message string) error
	NotifyStopLoss(ctx context.Context, balance, loss float64) error
	NotifyStopProfit(ctx context.Context, balance, profit float64) error
}

// Tracker owns all live sessions and the side effects of each spin.
type Tracker struct {
	cfg      config.Config
	store    *store.Store
	rec      recorder.Recorder
	notifier Notifier

	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// New builds a Tracker from configuration and restores any persisted
// sessions.
func New(cfg config.Config) (*Tracker, error) {
	t := &Tracker{
		cfg:      cfg,
		store:    store.New(cfg.StorePath),
		rec:      recorder.NewNoopRecorder(),
		sessions: make(map[string]*session.Session),
	}

	if cfg.Recorder.Enabled {
		rec, err := recorder.NewSQLiteRecorder(cfg.Recorder.Path)
		if err != nil {
			return nil, fmt.Errorf("app: open recorder: %w", err)
		}
		t.rec = rec
	}
	if cfg.Telegram.Enabled {
		t.notifier = notify.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	if err := t.restore(); err != nil {
		log.Printf("[WARN] restore sessions: %v", err)
	}
	return t, nil
}

func (t *Tracker) limits() session.Limits {
	return session.Limits{
		Initial:    t.cfg.Bankroll.Initial,
		StopLoss:   t.cfg.Bankroll.StopLoss,
		StopProfit: t.cfg.Bankroll.StopProfit,
	}
}

func (t *Tracker) newSession(id string) *session.Session {
	s := session.New(id, t.limits())
	s.Configure(t.cfg.Bankroll.UnitSize, t.cfg.Atlas.MaxBets)
	return s
}

func (t *Tracker) restore() error {
	state, err := t.store.Load()
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ss := range state.Sessions {
		s := t.newSession(ss.ID)
		book := ss.Book
		s.Restore(ss.Outcomes, ss.Records, &book, ss.Tallies)
		t.sessions[ss.ID] = s
	}
	if len(state.Sessions) > 0 {
		log.Printf("[INFO] restored %d session(s)", len(state.Sessions))
	}
	return nil
}

// CreateSession opens a fresh session and returns it.
func (t *Tracker) CreateSession() *session.Session {
	s := t.newSession(uuid.NewString())
	t.mu.Lock()
	t.sessions[s.ID()] = s
	t.mu.Unlock()
	log.Printf("[INFO] session created: %s", s.ID())
	return s
}

// Session looks up a live session by id.
func (t *Tracker) Session(id string) (*session.Session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.sessions[id]
	return s, ok
}

// Snapshots returns a snapshot of every live session.
func (t *Tracker) Snapshots() []session.Snapshot {
	t.mu.RLock()
	sessions := make([]*session.Session, 0, len(t.sessions))
	for _, s := range t.sessions {
		sessions = append(sessions, s)
	}
	t.mu.RUnlock()

	snaps := make([]session.Snapshot, 0, len(sessions))
	for _, s := range sessions {
		snaps = append(snaps, s.Snapshot())
	}
	return snaps
}

// DeleteSession removes a session. Its state stays in the store until the
// next save.
func (t *Tracker) DeleteSession(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.sessions[id]; !ok {
		return false
	}
	delete(t.sessions, id)
	log.Printf("[INFO] session deleted: %s", id)
	return true
}

// Submit records a spin on the given session and fans out persistence,
// recording and notifications. Side-effect failures are logged, never
// surfaced: the spin itself is already committed.
func (t *Tracker) Submit(ctx context.Context, sessionID string, number int) (*session.SpinReport, error) {
	s, ok := t.Session(sessionID)
	if !ok {
		return nil, fmt.Errorf("app: session %s not found", sessionID)
	}
	rep, err := s.Submit(number)
	if err != nil {
		return nil, err
	}

	if err := t.Save(); err != nil {
		log.Printf("[WARN] save state: %v", err)
	}
	t.record(sessionID, rep)
	t.notifySpin(ctx, s, rep)
	return rep, nil
}

func (t *Tracker) record(sessionID string, rep *session.SpinReport) {
	if err := t.rec.RecordSpin(&recorder.SpinEvent{
		SessionID:     sessionID,
		Number:        rep.Outcome.Number,
		Color:         string(rep.Outcome.Color),
		SeismoScore:   rep.Seismic.Score,
		SeismoTier:    string(rep.Seismic.Tier),
		TotalStaked:   rep.Record.TotalStaked,
		RoundProfit:   rep.Record.RoundProfit,
		BankrollAfter: rep.Record.BankrollAfter,
	}); err != nil {
		log.Printf("[WARN] record spin: %v", err)
	}
	for name, r := range rep.Record.Results {
		if r.Status == session.ResultInactive {
			continue
		}
		if err := t.rec.RecordSettlement(&recorder.SettlementEvent{
			SessionID:  sessionID,
			Spin:       rep.Record.Spin,
			Strategy:   name,
			Status:     r.Status,
			Stake:      r.Stake,
			Confidence: r.Confidence,
			Profit:     r.Profit,
		}); err != nil {
			log.Printf("[WARN] record settlement: %v", err)
		}
	}
	for _, a := range rep.Alerts {
		if err := t.rec.RecordAlert(&recorder.AlertEvent{
			SessionID: sessionID,
			Kind:      a.Kind,
			Priority:  a.Priority,
			Message:   a.Message,
		}); err != nil {
			log.Printf("[WARN] record alert: %v", err)
		}
	}
}

func (t *Tracker) notifySpin(ctx context.Context, s *session.Session, rep *session.SpinReport) {
	if t.notifier == nil {
		return
	}
	snap := s.Snapshot()

	switch rep.Limit {
	case bankroll.StatusStopLoss:
		if err := t.notifier.NotifyStopLoss(ctx, snap.Book.Balance, snap.Book.Initial-snap.Book.Balance); err != nil {
			log.Printf("[WARN] notify stop loss: %v", err)
		}
	case bankroll.StatusStopProfit:
		if err := t.notifier.NotifyStopProfit(ctx, snap.Book.Balance, snap.Book.Balance-snap.Book.Initial); err != nil {
			log.Printf("[WARN] notify stop profit: %v", err)
		}
	}

	for _, a := range rep.Alerts {
		if a.Priority != session.PriorityHigh {
			continue
		}
		if err := t.notifier.NotifyAlert(ctx, a.Priority, a.Message); err != nil {
			log.Printf("[WARN] notify alert: %v", err)
		}
	}

	if !t.confidentEnough(rep) {
		return
	}
	msg := report.RenderSpinHTML(report.BuildSpinData(rep, snap))
	if err := t.notifier.NotifySpinReport(ctx, msg); err != nil {
		log.Printf("[WARN] notify spin report: %v", err)
	}
}

// confidentEnough gates spin reports on the configured confidence floor so
// the chat is not flooded with weak recommendations.
func (t *Tracker) confidentEnough(rep *session.SpinReport) bool {
	for _, p := range rep.Published {
		if p.Confidence >= t.cfg.Atlas.MinConfidence {
			return true
		}
	}
	return false
}

// Save persists all live sessions.
func (t *Tracker) Save() error {
	snaps := t.Snapshots()
	state := store.State{Sessions: make([]store.SessionState, 0, len(snaps))}
	t.mu.RLock()
	for _, snap := range snaps {
		s := t.sessions[snap.ID]
		if s == nil {
			continue
		}
		state.Sessions = append(state.Sessions, store.SessionState{
			ID:        snap.ID,
			CreatedAt: snap.CreatedAt,
			Outcomes:  snap.Outcomes,
			Records:   s.History(),
			Book:      snap.Book,
			Tallies:   snap.Tallies,
		})
	}
	t.mu.RUnlock()
	return t.store.Save(state)
}

// Shutdown saves state and closes the recorder.
func (t *Tracker) Shutdown(context.Context) {
	if err := t.Save(); err != nil {
		log.Printf("[WARN] final save: %v", err)
	}
	if err := t.rec.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
	log.Println("[INFO] tracker stopped")
}
