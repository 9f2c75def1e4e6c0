package strategy

import (
	"math"

	"github.com/atlasroulette/atlas-tracker/internal/seismo"
)

// strategyFactors reflect the observed edge of each strategy. Unknown
// names fall back to 1.0.
var strategyFactors = map[string]float64{
	NameAtlas:       1.4,
	NameSmartHorses: 1.3,
	NamePressure:    1.5,
	NameTrojan:      1.4,
	NamePhantom:     1.3,
	NamePeaky:       1.1,
	NameTwins:       1.1,
}

var tierFactors = map[seismo.Tier]float64{
	seismo.TierHigh:    1.3,
	seismo.TierMedium:  1.1,
	seismo.TierNeutral: 1.0,
	seismo.TierLow:     0.7,
}

// maxConfidence caps the estimate so no bet ever reads as a certainty.
const maxConfidence = 92.0

// Confidence blends the empirical hit rate of a bet set over the history
// with its theoretical coverage, scaled by the strategy's track record and
// the current table tier. Returns a percentage rounded to two decimals.
func Confidence(name string, bets []int, history []int, tier seismo.Tier) float64 {
	if len(bets) == 0 {
		return 0
	}

	var empirical float64
	if len(history) > 0 {
		counts := countOf(history)
		hits := 0
		for _, b := range bets {
			hits += counts[b]
		}
		empirical = float64(hits) / float64(len(history)) * 100
	}
	theoretical := float64(len(bets)) / 37.0 * 100

	sf, ok := strategyFactors[name]
	if !ok {
		sf = 1.0
	}
	tf, ok := tierFactors[tier]
	if !ok {
		tf = 1.0
	}

	c := (0.6*empirical + 0.4*theoretical) * sf * tf
	if c > maxConfidence {
		c = maxConfidence
	}
	return math.Round(c*100) / 100
}
