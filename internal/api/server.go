// Package api is the HTTP surface of the tracker: session management,
// spin submission and the read-only analysis endpoints.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/atlasroulette/atlas-tracker/internal/app"
	"github.com/atlasroulette/atlas-tracker/internal/session"
)

// Server is the HTTP API for the tracker dashboard.
type Server struct {
	httpServer *http.Server
	tracker    *app.Tracker
	startedAt  time.Time
}

// NewServer creates an API server bound to addr.
func NewServer(addr string, tracker *app.Tracker, allowedOrigins []string) *Server {
	s := &Server{
		tracker:   tracker,
		startedAt: time.Now(),
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/api/health", s.handleHealth)
	r.Route("/api/sessions", func(rr chi.Router) {
		rr.Get("/", s.handleListSessions)
		rr.Post("/", s.handleCreateSession)
		rr.Route("/{id}", func(rs chi.Router) {
			rs.Get("/", s.handleGetSession)
			rs.Delete("/", s.handleDeleteSession)
			rs.Post("/spins", s.handleSubmitSpin)
			rs.Post("/undo", s.handleUndo)
			rs.Post("/reset", s.handleReset)
			rs.Get("/strategies", s.handleStrategies)
			rs.Get("/seismograph", s.handleSeismograph)
			rs.Get("/scores", s.handleScores)
			rs.Get("/stats", s.handleStats)
			rs.Get("/alerts", s.handleAlerts)
			rs.Get("/history", s.handleHistory)
		})
	})

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start begins serving HTTP requests.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	log.Printf("api server listening on %s", s.httpServer.Addr)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("api server: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) sessionFrom(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.tracker.Session(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

// GET /api/health: liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"uptime_s": time.Since(s.startedAt).Seconds(),
		"sessions": len(s.tracker.Snapshots()),
	})
}

// GET /api/sessions: all session snapshots.
func (s *Server) handleListSessions(w http.ResponseWriter, _ *http.Request) {
	type entry struct {
		ID        string    `json:"id"`
		CreatedAt time.Time `json:"created_at"`
		Spins     int       `json:"spins"`
		Balance   float64   `json:"balance"`
	}
	snaps := s.tracker.Snapshots()
	entries := make([]entry, 0, len(snaps))
	for _, snap := range snaps {
		entries = append(entries, entry{
			ID:        snap.ID,
			CreatedAt: snap.CreatedAt,
			Spins:     len(snap.Outcomes),
			Balance:   snap.Book.Balance,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": entries})
}

// POST /api/sessions: open a new session.
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.tracker.CreateSession()
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": sess.ID()})
}

// GET /api/sessions/{id}: full session snapshot.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Snapshot())
}

// DELETE /api/sessions/{id}: drop a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.tracker.DeleteSession(id) {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// POST /api/sessions/{id}/spins: submit one spin.
func (s *Server) handleSubmitSpin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var payload struct {
		Number *int `json:"number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Number == nil {
		s.writeError(w, http.StatusBadRequest, "body must be {\"number\": 0..36}")
		return
	}
	rep, err := s.tracker.Submit(r.Context(), id, *payload.Number)
	if err != nil {
		if _, ok := s.tracker.Session(id); !ok {
			s.writeError(w, http.StatusNotFound, "session not found")
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

// POST /api/sessions/{id}/undo: remove the most recent spin.
func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	out, err := sess.Undo()
	if err != nil {
		s.writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"undone": out})
}

// POST /api/sessions/{id}/reset: wipe the session ledger.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	sess.Reset()
	s.writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

// GET /api/sessions/{id}/strategies: evaluate all strategies read-only.
func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"strategies": sess.Evaluations()})
}

// GET /api/sessions/{id}/seismograph: current assertiveness reading.
func (s *Server) handleSeismograph(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Snapshot().Seismic)
}

// GET /api/sessions/{id}/scores: raw Atlas score table.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"scores": sess.Scores()})
}

// GET /api/sessions/{id}/stats: advanced table statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	stats := sess.Snapshot().Stats
	if stats == nil {
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"available": false,
			"reason":    "history below analysis threshold",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// GET /api/sessions/{id}/alerts: current table alerts.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	alerts := sess.Snapshot().Alerts
	if alerts == nil {
		alerts = []session.Alert{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"alerts": alerts})
}

// GET /api/sessions/{id}/history: settlement records.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"history": sess.History()})
}
