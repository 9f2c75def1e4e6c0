package bankroll

import (
	"testing"

	"github.com/atlasroulette/atlas-tracker/internal/seismo"
	"github.com/atlasroulette/atlas-tracker/internal/strategy"
)

func TestStakeSizing(t *testing.T) {
	s := NewSizer()
	cases := []struct {
		name       string
		confidence float64
		tier       seismo.Tier
		balance    float64
		want       int
	}{
		// 25 * 1.0 * 1.0 * 1.0 * 1.0
		{"unknown", 60, seismo.TierNeutral, DefaultInitial, 25},
		// 25 * 2.0 * 2.0 * 1.5 = 150, clamped to 75
		{strategy.NameTrojan, 90, seismo.TierHigh, DefaultInitial, 75},
		// 25 * 0.5 * 0.5 * 1.0 * 0.3 = 1.875, clamped to 5
		{"unknown", 10, seismo.TierLow, 1000, 5},
		// 25 * 1.0 * 1.5 * 1.3 = 48.75 -> 49
		{strategy.NameAtlas, 75, seismo.TierNeutral, DefaultInitial, 49},
		// health bonus above 1.5x initial: 25 * 1.0 * 1.0 * 1.2 = 30
		{"unknown", 60, seismo.TierNeutral, 1.5 * DefaultInitial, 30},
		// drawdown below 0.8x initial: 25 * 1.0 * 1.0 * 0.6 = 15
		{"unknown", 60, seismo.TierNeutral, 0.7 * DefaultInitial, 15},
	}
	for _, c := range cases {
		got := s.Stake(c.name, c.confidence, c.tier, c.balance, DefaultInitial)
		if got != c.want {
			t.Fatalf("Stake(%s, %.0f, %s, %.0f) = %d, want %d",
				c.name, c.confidence, c.tier, c.balance, got, c.want)
		}
	}
}

func TestBookSettle(t *testing.T) {
	b := NewBook(DefaultInitial)
	profit := b.Settle(25, true)
	if profit != 25*StraightUpPayout-25 {
		t.Fatalf("win profit = %.0f, want %.0f", profit, 25*StraightUpPayout-25)
	}
	if b.Balance != DefaultInitial+25*StraightUpPayout {
		t.Fatalf("balance = %.0f after win", b.Balance)
	}

	profit = b.Settle(40, false)
	if profit != -40 {
		t.Fatalf("loss profit = %.0f, want -40", profit)
	}
	if b.Wins != 1 || b.Losses != 1 || b.TotalStaked != 65 {
		t.Fatalf("book tallies: %+v", b)
	}
	if b.Profit() != b.Balance-DefaultInitial {
		t.Fatalf("profit = %.0f", b.Profit())
	}
}

func TestLimits(t *testing.T) {
	cases := []struct {
		balance float64
		want    LimitStatus
	}{
		{DefaultInitial, StatusContinue},
		{DefaultInitial - DefaultStopLoss, StatusStopLoss},
		{DefaultInitial - DefaultStopLoss - 500, StatusStopLoss},
		{DefaultInitial + DefaultStopProfit, StatusStopProfit},
		{DefaultInitial - 0.7*DefaultStopLoss, StatusApproachStopLoss},
		{DefaultInitial + 0.8*DefaultStopProfit, StatusApproachStopProfit},
		{DefaultInitial - 0.7*DefaultStopLoss + 1, StatusContinue},
		{DefaultInitial + 0.8*DefaultStopProfit - 1, StatusContinue},
	}
	for _, c := range cases {
		b := &Book{Initial: DefaultInitial, Balance: c.balance}
		if got := b.Limits(DefaultStopLoss, DefaultStopProfit); got != c.want {
			t.Fatalf("Limits at balance %.0f = %s, want %s", c.balance, got, c.want)
		}
	}
}
