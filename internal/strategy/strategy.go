// Package strategy implements the rule-based number-selection strategies
// and the Atlas-15 weighted scorer that ranks all 37 pockets and picks a
// diversified bet list.
package strategy

import "github.com/atlasroulette/atlas-tracker/internal/wheel"

// MinSpinsAnalysis is the shortest history the scorer and the staleness
// rule will work with.
const MinSpinsAnalysis = 12

// CandidateSet is the output of one strategy evaluation. Inactive sets
// carry a rationale explaining why the strategy did not fire.
type CandidateSet struct {
	Active    bool               `json:"active"`
	Numbers   []int              `json:"numbers,omitempty"`
	Rationale string             `json:"rationale"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

func inactive(rationale string) CandidateSet {
	return CandidateSet{Active: false, Rationale: rationale}
}

// Func evaluates one strategy against the full outcome history, oldest
// first. Implementations are pure: same history, same result.
type Func func(history []int) CandidateSet

// Descriptor pairs a strategy name with its evaluator.
type Descriptor struct {
	Name     string
	Evaluate Func
}

// Strategy names. They key the stake and confidence multiplier tables, so
// they are fixed identifiers rather than display strings.
const (
	NameAtlas       = "Atlas-15"
	NameSmartHorses = "Smart Horses"
	NamePressure    = "Pressure System"
	NameTrojan      = "Trojan Horse"
	NamePhantom     = "Phantom Zone"
	NameCold        = "Cold Numbers"
	NamePeaky       = "Peaky Blinders"
	NameLebron      = "Lebron"
	NameTwins       = "Twins"
	NameZigZag      = "Zig Zag"
	NameRainbow     = "Rainbow"
	NamePimentinha  = "Pimentinha"
	NameZeroTwo     = "Zero Two"
	NameAlone       = "Alone"
)

// Registry returns all strategies in their fixed evaluation order. The
// Atlas scorer is the first entry; sc must not be nil.
func Registry(sc *Scorer) []Descriptor {
	return []Descriptor{
		{NameAtlas, func(h []int) CandidateSet { return sc.Evaluate(h).CandidateSet }},
		{NameSmartHorses, SmartHorses},
		{NamePressure, PressureSystem},
		{NameTrojan, TrojanHorse},
		{NamePhantom, PhantomZone},
		{NameCold, ColdNumbers},
		{NamePeaky, PeakyBlinders},
		{NameLebron, Lebron},
		{NameTwins, Twins},
		{NameZigZag, ZigZag},
		{NameRainbow, Rainbow},
		{NamePimentinha, Pimentinha},
		{NameZeroTwo, ZeroTwo},
		{NameAlone, Alone},
	}
}

// Names returns the strategy names in registry order.
func Names() []string {
	return []string{
		NameAtlas, NameSmartHorses, NamePressure, NameTrojan, NamePhantom,
		NameCold, NamePeaky, NameLebron, NameTwins, NameZigZag, NameRainbow,
		NamePimentinha, NameZeroTwo, NameAlone,
	}
}

// tail returns the last n elements of history (all of it when shorter).
func tail(history []int, n int) []int {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// countOf tallies occurrences per number.
func countOf(history []int) map[int]int {
	c := make(map[int]int, 37)
	for _, n := range history {
		c[n]++
	}
	return c
}

// clampNumbers deduplicates, keeps only valid pockets and preserves first
// occurrence order.
func clampNumbers(nums []int) []int {
	seen := make(map[int]bool, len(nums))
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if !wheel.Valid(n) || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// capLen truncates nums to at most max entries.
func capLen(nums []int, max int) []int {
	if len(nums) > max {
		return nums[:max]
	}
	return nums
}
