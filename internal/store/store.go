// Package store persists session state as JSON with a backup copy and
// retention caps so the files never grow without bound.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atlasroulette/atlas-tracker/internal/bankroll"
	"github.com/atlasroulette/atlas-tracker/internal/session"
)

// Retention caps applied on save.
const (
	maxOutcomes  = 1000
	keepOutcomes = 500
	maxRecords   = 500
	keepRecords  = 200
)

// SessionState is the durable form of one session.
type SessionState struct {
	ID        string                   `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	Outcomes  []session.Outcome        `json:"outcomes"`
	Records   []session.Record         `json:"records"`
	Book      bankroll.Book            `json:"bankroll"`
	Tallies   map[string]session.Tally `json:"tallies"`
}

// State is the whole persisted file.
type State struct {
	SavedAt  time.Time      `json:"saved_at"`
	Sessions []SessionState `json:"sessions"`
}

// Store reads and writes the state file, keeping one backup generation.
type Store struct {
	Path       string
	BackupPath string
}

// New returns a Store for path, with the backup next to it.
func New(path string) *Store {
	return &Store{Path: path, BackupPath: path + ".bak"}
}

// Save writes the state. The previous file is copied to the backup first,
// and oversized ledgers are trimmed to their retention caps.
func (s *Store) Save(state State) error {
	if prev, err := os.ReadFile(s.Path); err == nil {
		if err := os.WriteFile(s.BackupPath, prev, 0o644); err != nil {
			return fmt.Errorf("store: write backup: %w", err)
		}
	}

	state.SavedAt = time.Now().UTC()
	for i := range state.Sessions {
		ss := &state.Sessions[i]
		if len(ss.Outcomes) > maxOutcomes {
			ss.Outcomes = ss.Outcomes[len(ss.Outcomes)-keepOutcomes:]
		}
		if len(ss.Records) > maxRecords {
			ss.Records = ss.Records[len(ss.Records)-keepRecords:]
		}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal state: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: create dir: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("store: write state: %w", err)
	}
	return nil
}

// Load reads the state file, falling back to the backup when the primary
// is missing or corrupt. A missing store yields an empty state.
func (s *Store) Load() (State, error) {
	if state, err := readState(s.Path); err == nil {
		return state, nil
	}
	if state, err := readState(s.BackupPath); err == nil {
		return state, nil
	}
	return State{}, nil
}

func readState(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("store: read %s: %w", path, err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("store: decode %s: %w", path, err)
	}
	return state, nil
}
