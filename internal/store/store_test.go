package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atlasroulette/atlas-tracker/internal/session"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "state.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := tempStore(t)
	state, err := s.Load()
	if err != nil {
		t.Fatalf("load empty store: %v", err)
	}
	if len(state.Sessions) != 0 {
		t.Fatalf("expected empty state, got %+v", state)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)
	in := State{Sessions: []SessionState{{
		ID:       "abc",
		Outcomes: []session.Outcome{{Number: 17, Timestamp: time.Now().UTC()}},
		Tallies:  map[string]session.Tally{"Atlas-15": {Activations: 3, Wins: 1}},
	}}}
	if err := s.Save(in); err != nil {
		t.Fatal(err)
	}
	out, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Sessions) != 1 || out.Sessions[0].ID != "abc" {
		t.Fatalf("loaded %+v", out)
	}
	if out.Sessions[0].Outcomes[0].Number != 17 {
		t.Fatalf("outcome = %+v", out.Sessions[0].Outcomes[0])
	}
	if out.SavedAt.IsZero() {
		t.Fatal("saved_at not stamped")
	}
}

func TestBackupFallback(t *testing.T) {
	s := tempStore(t)
	if err := s.Save(State{Sessions: []SessionState{{ID: "first"}}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(State{Sessions: []SessionState{{ID: "second"}}}); err != nil {
		t.Fatal(err)
	}

	// Corrupt the primary; the previous generation must still load.
	if err := os.WriteFile(s.Path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	state, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Sessions) != 1 || state.Sessions[0].ID != "first" {
		t.Fatalf("backup load got %+v", state)
	}
}

func TestRetentionCaps(t *testing.T) {
	s := tempStore(t)
	ss := SessionState{ID: "big"}
	for i := 0; i < maxOutcomes+1; i++ {
		ss.Outcomes = append(ss.Outcomes, session.Outcome{Number: i % 37})
	}
	for i := 0; i < maxRecords+1; i++ {
		ss.Records = append(ss.Records, session.Record{Spin: i % 37})
	}
	if err := s.Save(State{Sessions: []SessionState{ss}}); err != nil {
		t.Fatal(err)
	}
	out, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	got := out.Sessions[0]
	if len(got.Outcomes) != keepOutcomes {
		t.Fatalf("outcomes = %d, want %d", len(got.Outcomes), keepOutcomes)
	}
	if len(got.Records) != keepRecords {
		t.Fatalf("records = %d, want %d", len(got.Records), keepRecords)
	}
	// The newest entries survive the trim.
	if got.Outcomes[len(got.Outcomes)-1].Number != maxOutcomes%37 {
		t.Fatalf("last outcome = %d", got.Outcomes[len(got.Outcomes)-1].Number)
	}
}
