package session

import (
	"sync"
	"testing"

	"github.com/atlasroulette/atlas-tracker/internal/bankroll"
	"github.com/atlasroulette/atlas-tracker/internal/strategy"
)

// warmup feeds 12 alternating spins that trigger no strategy, leaving the
// session at the analysis threshold.
func warmup(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 12; i++ {
		n := 5
		if i%2 == 1 {
			n = 7
		}
		rep, err := s.Submit(n)
		if err != nil {
			t.Fatalf("warmup submit: %v", err)
		}
		if len(rep.Published) != 0 {
			t.Fatalf("spin %d published %v before the analysis threshold", i+1, rep.Published)
		}
	}
}

func TestSubmitValidation(t *testing.T) {
	s := New("t1", DefaultLimits())
	if _, err := s.Submit(37); err == nil {
		t.Fatal("expected error for 37")
	}
	if _, err := s.Submit(-1); err == nil {
		t.Fatal("expected error for -1")
	}
}

func TestQuietWarmupKeepsBankroll(t *testing.T) {
	s := New("t2", DefaultLimits())
	warmup(t, s)
	snap := s.Snapshot()
	if snap.Book.Balance != bankroll.DefaultInitial {
		t.Fatalf("balance = %.0f, want untouched initial", snap.Book.Balance)
	}
	for _, rec := range s.History() {
		for name, r := range rec.Results {
			if r.Status != ResultInactive {
				t.Fatalf("%s settled as %s during warmup", name, r.Status)
			}
		}
	}
}

func TestColdSettlement(t *testing.T) {
	s := New("t3", DefaultLimits())
	warmup(t, s)

	// 9 has never appeared, so the staleness rule published it and wins.
	rep, err := s.Submit(9)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Published) == 0 {
		t.Fatal("expected published strategies at the threshold")
	}
	cold, ok := rep.Record.Results[strategy.NameCold]
	if !ok || cold.Status != ResultWin {
		t.Fatalf("cold result = %+v, want WIN", cold)
	}
	if cold.Profit != float64(cold.Stake)*bankroll.StraightUpPayout-float64(cold.Stake) {
		t.Fatalf("cold profit = %.0f with stake %d", cold.Profit, cold.Stake)
	}

	// 5 has appeared, so it is not in the staleness bets and loses.
	rep, err = s.Submit(5)
	if err != nil {
		t.Fatal(err)
	}
	cold = rep.Record.Results[strategy.NameCold]
	if cold.Status != ResultLoss {
		t.Fatalf("cold result = %+v, want LOSS", cold)
	}
	if cold.Profit != -float64(cold.Stake) {
		t.Fatalf("cold loss profit = %.0f with stake %d", cold.Profit, cold.Stake)
	}

	snap := s.Snapshot()
	tally := snap.Tallies[strategy.NameCold]
	if tally.Wins != 1 || tally.Losses != 1 || tally.Activations != 2 {
		t.Fatalf("cold tally = %+v", tally)
	}
}

func TestBankrollChain(t *testing.T) {
	s := New("t4", DefaultLimits())
	warmup(t, s)
	for _, n := range []int{9, 22, 14, 31} {
		if _, err := s.Submit(n); err != nil {
			t.Fatal(err)
		}
	}
	recs := s.History()
	for i := 1; i < len(recs); i++ {
		if recs[i].BankrollBefore != recs[i-1].BankrollAfter {
			t.Fatalf("record %d: before %.0f does not chain to %.0f",
				i, recs[i].BankrollBefore, recs[i-1].BankrollAfter)
		}
	}
	snap := s.Snapshot()
	if snap.Book.Balance != recs[len(recs)-1].BankrollAfter {
		t.Fatalf("balance %.0f != last record %.0f",
			snap.Book.Balance, recs[len(recs)-1].BankrollAfter)
	}
}

func TestUndoRestoresState(t *testing.T) {
	s := New("t5", DefaultLimits())
	warmup(t, s)
	before := s.Snapshot()

	if _, err := s.Submit(9); err != nil {
		t.Fatal(err)
	}
	out, err := s.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if out.Number != 9 {
		t.Fatalf("undone outcome = %d, want 9", out.Number)
	}
	after := s.Snapshot()
	if after.Book.Balance != before.Book.Balance {
		t.Fatalf("balance %.0f, want %.0f restored", after.Book.Balance, before.Book.Balance)
	}
	if len(after.Outcomes) != len(before.Outcomes) {
		t.Fatalf("outcome count %d, want %d", len(after.Outcomes), len(before.Outcomes))
	}
	if after.Tallies[strategy.NameCold] != before.Tallies[strategy.NameCold] {
		t.Fatalf("cold tally %+v, want %+v restored",
			after.Tallies[strategy.NameCold], before.Tallies[strategy.NameCold])
	}

	empty := New("t5b", DefaultLimits())
	if _, err := empty.Undo(); err == nil {
		t.Fatal("expected error undoing an empty session")
	}
}

func TestReset(t *testing.T) {
	s := New("t6", DefaultLimits())
	warmup(t, s)
	if _, err := s.Submit(9); err != nil {
		t.Fatal(err)
	}
	s.Reset()
	snap := s.Snapshot()
	if len(snap.Outcomes) != 0 {
		t.Fatalf("outcomes survived reset: %v", snap.Outcomes)
	}
	if snap.Book.Balance != bankroll.DefaultInitial {
		t.Fatalf("balance = %.0f after reset", snap.Book.Balance)
	}
	for name, tally := range snap.Tallies {
		if tally != (Tally{}) {
			t.Fatalf("%s tally survived reset: %+v", name, tally)
		}
	}
	if snap.ID != "t6" {
		t.Fatalf("id changed to %q", snap.ID)
	}
}

func TestEvaluationsAreReadOnly(t *testing.T) {
	s := New("t7", DefaultLimits())
	warmup(t, s)
	before := s.Snapshot().Book.Balance

	evals := s.Evaluations()
	if len(evals) != len(strategy.Names()) {
		t.Fatalf("got %d evaluations, want %d", len(evals), len(strategy.Names()))
	}
	if s.Snapshot().Book.Balance != before {
		t.Fatal("read-only evaluation moved the bankroll")
	}
	activeSeen := false
	for _, e := range evals {
		if e.Name == strategy.NameCold && len(e.Numbers) > 0 {
			activeSeen = true
		}
	}
	if !activeSeen {
		t.Fatal("staleness rule should evaluate active at 12 spins")
	}
}

func TestStatsAppearAtThreshold(t *testing.T) {
	s := New("t8", DefaultLimits())
	warmup(t, s)
	if s.Snapshot().Stats != nil {
		t.Fatal("stats should stay nil below 20 spins")
	}
	for _, n := range []int{9, 22, 14, 31, 18, 29, 16, 33} {
		if _, err := s.Submit(n); err != nil {
			t.Fatal(err)
		}
	}
	st := s.Snapshot().Stats
	if st == nil {
		t.Fatal("stats missing at 20 spins")
	}
	if st.Colors["red"]+st.Colors["black"]+st.Colors["green"] != 20 {
		t.Fatalf("color counts = %v", st.Colors)
	}
	if len(st.ColdNumbers) == 0 {
		t.Fatal("expected cold numbers in a 20-spin ledger")
	}
}

func TestConfigureConcurrentWithReads(t *testing.T) {
	s := New("t-conc", DefaultLimits())
	warmup(t, s)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			s.Configure(float64(10+i%20), 5+i%10)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if evals := s.Evaluations(); len(evals) == 0 {
				t.Error("evaluations returned no entries")
				return
			}
			_ = s.Scores()
		}
	}()
	wg.Wait()

	s.Configure(25, 12)
	if s.sizer.UnitSize != 25 || s.scorer.MaxBets != 12 {
		t.Fatalf("settings = %.0f/%d, want 25/12", s.sizer.UnitSize, s.scorer.MaxBets)
	}
}
