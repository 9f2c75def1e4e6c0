// Package seismo computes the table assertiveness index, a 0..100 blend of
// five pattern detectors over the outcome history.
package seismo

import (
	"math"
	"sort"
	"time"

	"github.com/atlasroulette/atlas-tracker/internal/wheel"
)

// Tier classifies the assertiveness score into coarse action bands.
type Tier string

const (
	TierLow     Tier = "LOW"
	TierNeutral Tier = "NEUTRAL"
	TierMedium  Tier = "MEDIUM"
	TierHigh    Tier = "HIGH"
)

// State is a point-in-time reading of the index.
type State struct {
	Tier        Tier           `json:"tier"`
	Score       int            `json:"score"`
	Factors     map[string]int `json:"factors"`
	LastUpdated time.Time      `json:"last_updated"`
}

const minHistory = 15

// Analyze scores the history and returns the blended index. Histories
// shorter than 15 spins read as a neutral 50.
func Analyze(history []int) State {
	now := time.Now().UTC()
	if len(history) < minHistory {
		return State{Tier: TierNeutral, Score: 50, Factors: map[string]int{}, LastUpdated: now}
	}

	factors := map[string]int{
		"cycle":       cycleScore(history),
		"pressure":    pressureScore(history),
		"magnets":     magnetScore(history),
		"correlation": correlationScore(history),
		"momentum":    momentumScore(history),
	}

	blended := float64(factors["cycle"])*0.30 +
		float64(factors["pressure"])*0.25 +
		float64(factors["magnets"])*0.20 +
		float64(factors["correlation"])*0.15 +
		float64(factors["momentum"])*0.10
	score := int(math.Round(blended))

	return State{Tier: tierFor(score), Score: score, Factors: factors, LastUpdated: now}
}

func tierFor(score int) Tier {
	switch {
	case score >= 75:
		return TierHigh
	case score >= 60:
		return TierMedium
	case score >= 40:
		return TierNeutral
	default:
		return TierLow
	}
}

// cycleScore detects repeating 8-spin blocks: a window counts when more
// than half of one block's distinct numbers reappear in the next.
func cycleScore(history []int) int {
	if len(history) < 20 {
		return 50
	}
	hits := 0
	for i := 0; i < len(history)-16; i++ {
		b1 := toSet(history[i : i+8])
		b2 := toSet(history[i+8 : i+16])
		overlap := 0
		for n := range b2 {
			if b1[n] {
				overlap++
			}
		}
		if float64(overlap)/8 > 0.5 {
			hits++
		}
	}
	windows := len(history) - 16
	if windows < 1 {
		windows = 1
	}
	return capScore(int(math.Round(float64(hits) / float64(windows) * 200)))
}

// pressureScore grows with the count of numbers absent from the last 30.
func pressureScore(history []int) int {
	if len(history) < 30 {
		return 50
	}
	seen := toSet(history[len(history)-30:])
	absent := 0
	for n := 0; n <= 36; n++ {
		if !seen[n] {
			absent++
		}
	}
	return capScore(absent * 3)
}

// magnetScore averages the dominance of each terminal's favorite
// successor over the whole history.
func magnetScore(history []int) int {
	if len(history) < 25 {
		return 50
	}
	successors := map[int][]int{}
	for i := 0; i < len(history)-1; i++ {
		t := wheel.TerminalOf(history[i])
		successors[t] = append(successors[t], history[i+1])
	}
	var strengths []float64
	for _, succ := range successors {
		if len(succ) < 3 {
			continue
		}
		counts := map[int]int{}
		best := 0
		for _, n := range succ {
			counts[n]++
			if counts[n] > best {
				best = counts[n]
			}
		}
		strengths = append(strengths, float64(best)/float64(len(succ))*100)
	}
	if len(strengths) == 0 {
		return 30
	}
	var sum float64
	for _, s := range strengths {
		sum += s
	}
	return capScore(int(math.Round(sum / float64(len(strengths)))))
}

// correlationScore counts short echo patterns, a number returning two or
// three positions later.
func correlationScore(history []int) int {
	if len(history) < 20 {
		return 50
	}
	hits := 0
	for i := 0; i+3 < len(history); i++ {
		if history[i] == history[i+2] || history[i] == history[i+3] {
			hits++
		}
	}
	windows := len(history) - 3
	if windows < 1 {
		windows = 1
	}
	return capScore(int(math.Round(float64(hits) / float64(windows) * 200)))
}

// momentumScore counts color and terminal triples in the last 10 spins.
func momentumScore(history []int) int {
	if len(history) < 10 {
		return 50
	}
	recent := history[len(history)-10:]
	triples := 0

	colors := make([]wheel.Color, len(recent))
	for i, n := range recent {
		colors[i] = wheel.ColorOf(n)
	}
	for i := 0; i+2 < len(colors); i++ {
		if colors[i] == colors[i+1] && colors[i] == colors[i+2] {
			triples++
		}
	}

	var terms []int
	for _, n := range recent {
		if n != 0 {
			terms = append(terms, wheel.TerminalOf(n))
		}
	}
	for i := 0; i+2 < len(terms); i++ {
		if terms[i] == terms[i+1] && terms[i] == terms[i+2] {
			triples++
		}
	}
	return capScore(triples * 20)
}

func capScore(s int) int {
	if s > 100 {
		return 100
	}
	if s < 0 {
		return 0
	}
	return s
}

func toSet(nums []int) map[int]bool {
	set := make(map[int]bool, len(nums))
	for _, n := range nums {
		set[n] = true
	}
	return set
}

// sortedFactorNames gives a stable order for rendering factor breakdowns.
func sortedFactorNames(factors map[string]int) []string {
	names := make([]string, 0, len(factors))
	for k := range factors {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FactorNames returns the factor keys of s in stable order.
func (s State) FactorNames() []string { return sortedFactorNames(s.Factors) }
