// Package session owns the per-table state: the outcome ledger, published
// strategy recommendations, settlement history and the notional bankroll.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/atlasroulette/atlas-tracker/internal/bankroll"
	"github.com/atlasroulette/atlas-tracker/internal/seismo"
	"github.com/atlasroulette/atlas-tracker/internal/strategy"
	"github.com/atlasroulette/atlas-tracker/internal/wheel"
)

// Outcome is one recorded spin.
type Outcome struct {
	Number    int         `json:"number"`
	Color     wheel.Color `json:"color"`
	Timestamp time.Time   `json:"timestamp"`
}

// Published is an active recommendation as shown to the player before the
// next spin resolves it.
type Published struct {
	Name       string             `json:"name"`
	Numbers    []int              `json:"numbers"`
	Rationale  string             `json:"rationale"`
	Confidence float64            `json:"confidence"`
	Tier       seismo.Tier        `json:"tier"`
	Stake      int                `json:"stake"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Result status values.
const (
	ResultWin      = "WIN"
	ResultLoss     = "LOSS"
	ResultInactive = "INACTIVE"
)

// Result is the settlement of one strategy against one spin.
type Result struct {
	Status     string  `json:"status"`
	Stake      int     `json:"stake"`
	Confidence float64 `json:"confidence"`
	Profit     float64 `json:"profit"`
}

// Record is the full settlement of one spin across all strategies.
type Record struct {
	Spin           int               `json:"spin"`
	Timestamp      time.Time         `json:"timestamp"`
	Results        map[string]Result `json:"results"`
	TotalStaked    float64           `json:"total_staked"`
	RoundProfit    float64           `json:"round_profit"`
	BankrollBefore float64           `json:"bankroll_before"`
	BankrollAfter  float64           `json:"bankroll_after"`
}

// Tally accumulates per-strategy performance across a session.
type Tally struct {
	Activations int     `json:"activations"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Profit      float64 `json:"profit"`
}

// Limits configures the session stop thresholds.
type Limits struct {
	Initial    float64
	StopLoss   float64
	StopProfit float64
}

// DefaultLimits returns the stock bankroll limits.
func DefaultLimits() Limits {
	return Limits{
		Initial:    bankroll.DefaultInitial,
		StopLoss:   bankroll.DefaultStopLoss,
		StopProfit: bankroll.DefaultStopProfit,
	}
}

// Session is one independent table. All methods are safe for concurrent
// use.
type Session struct {
	mu sync.Mutex

	id        string
	createdAt time.Time
	limits    Limits

	scorer   *strategy.Scorer
	registry []strategy.Descriptor
	sizer    *bankroll.Sizer

	outcomes  []Outcome
	published []Published
	records   []Record
	tallies   map[string]*Tally
	book      *bankroll.Book
	seismic   seismo.State
	stats     *TableStats
	alerts    []Alert
}

// New opens a session with the given id and limits.
func New(id string, limits Limits) *Session {
	sc := strategy.NewScorer()
	s := &Session{
		id:        id,
		createdAt: time.Now().UTC(),
		limits:    limits,
		scorer:    sc,
		registry:  strategy.Registry(sc),
		sizer:     bankroll.NewSizer(),
		tallies:   make(map[string]*Tally),
		book:      bankroll.NewBook(limits.Initial),
		seismic:   seismo.Analyze(nil),
	}
	for _, name := range strategy.Names() {
		s.tallies[name] = &Tally{}
	}
	return s
}

// Configure overrides the unit stake size and the Atlas bet cap.
// Non-positive values leave the current setting untouched.
func (s *Session) Configure(unitSize float64, atlasMaxBets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if unitSize > 0 {
		s.sizer.UnitSize = unitSize
	}
	if atlasMaxBets > 0 {
		s.scorer.MaxBets = atlasMaxBets
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// SpinReport is everything one submitted spin produced.
type SpinReport struct {
	Outcome   Outcome              `json:"outcome"`
	Record    Record               `json:"record"`
	Published []Published          `json:"published"`
	Seismic   seismo.State         `json:"seismograph"`
	Limit     bankroll.LimitStatus `json:"limit_status"`
	Alerts    []Alert              `json:"alerts,omitempty"`
}

// Submit records one spin: strategies evaluated on the prior history are
// settled against it, the ledger grows, and stats and alerts refresh.
func (s *Session) Submit(n int) (*SpinReport, error) {
	if !wheel.Valid(n) {
		return nil, fmt.Errorf("submit: number %d out of range 0..36", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.historyLocked()
	s.seismic = seismo.Analyze(history)

	s.published = s.published[:0]
	for _, d := range s.registry {
		cs := d.Evaluate(history)
		if !cs.Active {
			continue
		}
		conf := strategy.Confidence(d.Name, cs.Numbers, history, s.seismic.Tier)
		stake := s.sizer.Stake(d.Name, conf, s.seismic.Tier, s.book.Balance, s.book.Initial)
		s.published = append(s.published, Published{
			Name:       d.Name,
			Numbers:    cs.Numbers,
			Rationale:  cs.Rationale,
			Confidence: conf,
			Tier:       s.seismic.Tier,
			Stake:      stake,
			Metrics:    cs.Metrics,
		})
		s.tallies[d.Name].Activations++
	}

	now := time.Now().UTC()
	rec := Record{
		Spin:           n,
		Timestamp:      now,
		Results:        make(map[string]Result, len(s.registry)),
		BankrollBefore: s.book.Balance,
	}
	active := make(map[string]bool, len(s.published))
	for _, p := range s.published {
		active[p.Name] = true
		hit := containsNumber(p.Numbers, n)
		profit := s.book.Settle(float64(p.Stake), hit)
		status := ResultLoss
		if hit {
			status = ResultWin
			s.tallies[p.Name].Wins++
		} else {
			s.tallies[p.Name].Losses++
		}
		s.tallies[p.Name].Profit += profit
		rec.Results[p.Name] = Result{
			Status:     status,
			Stake:      p.Stake,
			Confidence: p.Confidence,
			Profit:     profit,
		}
		rec.TotalStaked += float64(p.Stake)
		rec.RoundProfit += profit
	}
	for _, name := range strategy.Names() {
		if !active[name] {
			rec.Results[name] = Result{Status: ResultInactive}
		}
	}
	rec.BankrollAfter = s.book.Balance

	published := append([]Published(nil), s.published...)
	s.published = nil

	out := Outcome{Number: n, Color: wheel.ColorOf(n), Timestamp: now}
	s.outcomes = append(s.outcomes, out)
	s.records = append(s.records, rec)

	full := s.historyLocked()
	s.stats = ComputeStats(full)
	s.alerts = ScanAlerts(full, s.seismic)

	return &SpinReport{
		Outcome:   out,
		Record:    rec,
		Published: published,
		Seismic:   s.seismic,
		Limit:     s.book.Limits(s.limits.StopLoss, s.limits.StopProfit),
		Alerts:    append([]Alert(nil), s.alerts...),
	}, nil
}

// Undo removes the most recent outcome and its settlement, restoring the
// bankroll to its prior state.
func (s *Session) Undo() (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.outcomes) == 0 {
		return nil, fmt.Errorf("undo: no outcomes recorded")
	}
	last := s.outcomes[len(s.outcomes)-1]
	s.outcomes = s.outcomes[:len(s.outcomes)-1]

	if len(s.records) > 0 {
		rec := s.records[len(s.records)-1]
		s.records = s.records[:len(s.records)-1]
		s.book.Balance = rec.BankrollBefore
		for name, r := range rec.Results {
			t := s.tallies[name]
			if t == nil {
				continue
			}
			switch r.Status {
			case ResultWin:
				t.Wins--
				t.Activations--
				t.Profit -= r.Profit
				s.book.Wins--
				s.book.TotalStaked -= float64(r.Stake)
			case ResultLoss:
				t.Losses--
				t.Activations--
				t.Profit -= r.Profit
				s.book.Losses--
				s.book.TotalStaked -= float64(r.Stake)
			}
		}
	}

	full := s.historyLocked()
	s.seismic = seismo.Analyze(full)
	s.stats = ComputeStats(full)
	s.alerts = ScanAlerts(full, s.seismic)
	return &last, nil
}

// Reset clears all state but keeps the session id and limits.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = nil
	s.published = nil
	s.records = nil
	s.book = bankroll.NewBook(s.limits.Initial)
	s.seismic = seismo.Analyze(nil)
	s.stats = nil
	s.alerts = nil
	for _, name := range strategy.Names() {
		s.tallies[name] = &Tally{}
	}
}

// Snapshot is a read-only view of the session for the API layer.
type Snapshot struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Outcomes  []Outcome            `json:"outcomes"`
	Tallies   map[string]Tally     `json:"tallies"`
	Book      bankroll.Book        `json:"bankroll"`
	Limit     bankroll.LimitStatus `json:"limit_status"`
	Seismic   seismo.State         `json:"seismograph"`
	Stats     *TableStats          `json:"stats,omitempty"`
	Alerts    []Alert              `json:"alerts,omitempty"`
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	tallies := make(map[string]Tally, len(s.tallies))
	for name, t := range s.tallies {
		tallies[name] = *t
	}
	return Snapshot{
		ID:        s.id,
		CreatedAt: s.createdAt,
		Outcomes:  append([]Outcome(nil), s.outcomes...),
		Tallies:   tallies,
		Book:      *s.book,
		Limit:     s.book.Limits(s.limits.StopLoss, s.limits.StopProfit),
		Seismic:   s.seismic,
		Stats:     s.stats,
		Alerts:    append([]Alert(nil), s.alerts...),
	}
}

// Evaluations runs every strategy against the current ledger without
// settling anything. Used by the read-only strategies endpoint.
func (s *Session) Evaluations() []Published {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.historyLocked()
	tier := s.seismic.Tier
	balance, initial := s.book.Balance, s.book.Initial

	var out []Published
	for _, d := range s.registry {
		cs := d.Evaluate(history)
		p := Published{Name: d.Name, Rationale: cs.Rationale, Metrics: cs.Metrics}
		if cs.Active {
			p.Numbers = cs.Numbers
			p.Confidence = strategy.Confidence(d.Name, cs.Numbers, history, tier)
			p.Stake = s.sizer.Stake(d.Name, p.Confidence, tier, balance, initial)
			p.Tier = tier
		}
		out = append(out, p)
	}
	return out
}

// Scores returns the raw Atlas score table for the current ledger.
func (s *Session) Scores() strategy.ScoreTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scorer.Evaluate(s.historyLocked()).Scores
}

// History returns the settlement records, most recent last.
func (s *Session) History() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

// Numbers returns the raw outcome numbers, oldest first.
func (s *Session) Numbers() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyLocked()
}

// Restore loads a previously saved ledger, replaying stats but not
// settlements.
func (s *Session) Restore(outcomes []Outcome, records []Record, book *bankroll.Book, tallies map[string]Tally) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append([]Outcome(nil), outcomes...)
	s.records = append([]Record(nil), records...)
	if book != nil {
		b := *book
		s.book = &b
	}
	for name, t := range tallies {
		tc := t
		s.tallies[name] = &tc
	}
	full := s.historyLocked()
	s.seismic = seismo.Analyze(full)
	s.stats = ComputeStats(full)
	s.alerts = ScanAlerts(full, s.seismic)
}

func (s *Session) historyLocked() []int {
	nums := make([]int, len(s.outcomes))
	for i, o := range s.outcomes {
		nums[i] = o.Number
	}
	return nums
}

func containsNumber(nums []int, n int) bool {
	for _, x := range nums {
		if x == n {
			return true
		}
	}
	return false
}
