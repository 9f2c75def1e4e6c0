package recorder

import (
	"path/filepath"
	"testing"
)

func TestSQLiteRecorderRoundTrip(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "atlas.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.RecordSpin(&SpinEvent{
		SessionID: "s1", Number: 17, Color: "black",
		SeismoScore: 62, SeismoTier: "MEDIUM",
		TotalStaked: 50, RoundProfit: 825, BankrollAfter: 5825,
	}); err != nil {
		t.Fatalf("record spin: %v", err)
	}
	if err := r.RecordSettlement(&SettlementEvent{
		SessionID: "s1", Spin: 17, Strategy: "Atlas-15",
		Status: "WIN", Stake: 25, Confidence: 71.5, Profit: 850,
	}); err != nil {
		t.Fatalf("record settlement: %v", err)
	}
	if err := r.RecordAlert(&AlertEvent{
		SessionID: "s1", Kind: "pressure", Priority: "high", Message: "test",
	}); err != nil {
		t.Fatalf("record alert: %v", err)
	}

	for _, table := range []string{"spins", "settlements", "alerts"} {
		var n int
		if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("%s rows = %d, want 1", table, n)
		}
	}
}

func TestSQLiteRecorderMigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	r.Close()
	r, err = NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	r.Close()
}
