// Package bankroll sizes stakes from confidence, table tier, strategy
// track record and account health, and tracks the notional balance.
package bankroll

import (
	"math"

	"github.com/atlasroulette/atlas-tracker/internal/seismo"
	"github.com/atlasroulette/atlas-tracker/internal/strategy"
)

// Defaults for a fresh book.
const (
	DefaultUnitSize   = 25.0
	DefaultInitial    = 5000.0
	DefaultStopLoss   = 1000.0
	DefaultStopProfit = 2000.0
)

// StraightUpPayout is the per-unit payout on a single-number hit.
const StraightUpPayout = 35.0

// LimitStatus reports where the balance sits relative to the session
// stop limits.
type LimitStatus string

const (
	StatusContinue           LimitStatus = "CONTINUE"
	StatusStopLoss           LimitStatus = "STOP_LOSS"
	StatusStopProfit         LimitStatus = "STOP_PROFIT"
	StatusApproachStopLoss   LimitStatus = "APPROACH_STOP_LOSS"
	StatusApproachStopProfit LimitStatus = "APPROACH_STOP_PROFIT"
)

var tierMultipliers = map[seismo.Tier]float64{
	seismo.TierHigh:    2.0,
	seismo.TierMedium:  1.5,
	seismo.TierNeutral: 1.0,
	seismo.TierLow:     0.5,
}

var strategyMultipliers = map[string]float64{
	strategy.NameAtlas:       1.3,
	strategy.NameSmartHorses: 1.2,
	strategy.NamePressure:    1.4,
	strategy.NameTrojan:      1.5,
	strategy.NamePhantom:     1.3,
	strategy.NamePeaky:       1.1,
	strategy.NameTwins:       1.1,
}

func tierMultiplier(tier seismo.Tier) float64 {
	if m, ok := tierMultipliers[tier]; ok {
		return m
	}
	return 1.0
}

func confidenceMultiplier(confidence float64) float64 {
	switch {
	case confidence > 85:
		return 2.0
	case confidence > 70:
		return 1.5
	case confidence > 55:
		return 1.0
	default:
		return 0.5
	}
}

func strategyMultiplier(name string) float64 {
	if m, ok := strategyMultipliers[name]; ok {
		return m
	}
	return 1.0
}

func healthMultiplier(balance, initial float64) float64 {
	switch {
	case balance >= 1.5*initial:
		return 1.2
	case balance >= initial:
		return 1.0
	case balance >= 0.8*initial:
		return 0.8
	case balance >= 0.6*initial:
		return 0.6
	default:
		return 0.3
	}
}

// Sizer computes stakes. The zero value is unusable; use NewSizer.
type Sizer struct {
	UnitSize float64
}

// NewSizer returns a Sizer with the default unit size.
func NewSizer() *Sizer { return &Sizer{UnitSize: DefaultUnitSize} }

// Stake sizes one bet. The result is rounded to a whole unit of currency
// and clamped to [5, 3*unit].
func (s *Sizer) Stake(name string, confidence float64, tier seismo.Tier, balance, initial float64) int {
	stake := s.UnitSize *
		tierMultiplier(tier) *
		confidenceMultiplier(confidence) *
		strategyMultiplier(name) *
		healthMultiplier(balance, initial)

	min, max := 5.0, 3*s.UnitSize
	if stake < min {
		stake = min
	}
	if stake > max {
		stake = max
	}
	return int(math.Round(stake))
}

// Book tracks the notional balance of one session.
type Book struct {
	Initial     float64 `json:"initial"`
	Balance     float64 `json:"balance"`
	TotalStaked float64 `json:"total_staked"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
}

// NewBook opens a book with the given starting balance.
func NewBook(initial float64) *Book {
	return &Book{Initial: initial, Balance: initial}
}

// Settle applies one resolved bet to the balance and returns the round
// profit: payout minus stake on a win, the lost stake otherwise.
func (b *Book) Settle(stake float64, won bool) float64 {
	b.TotalStaked += stake
	if won {
		b.Balance += stake * StraightUpPayout
		b.Wins++
		return stake*StraightUpPayout - stake
	}
	b.Balance -= stake
	b.Losses++
	return -stake
}

// Profit is the running net result against the starting balance.
func (b *Book) Profit() float64 { return b.Balance - b.Initial }

// Limits evaluates the balance against the stop thresholds.
func (b *Book) Limits(stopLoss, stopProfit float64) LimitStatus {
	switch {
	case b.Balance <= b.Initial-stopLoss:
		return StatusStopLoss
	case b.Balance >= b.Initial+stopProfit:
		return StatusStopProfit
	case b.Balance <= b.Initial-0.7*stopLoss:
		return StatusApproachStopLoss
	case b.Balance >= b.Initial+0.8*stopProfit:
		return StatusApproachStopProfit
	default:
		return StatusContinue
	}
}
