package strategy

import (
	"fmt"
	"sort"

	"github.com/atlasroulette/atlas-tracker/internal/wheel"
)

// Weights tunes the contribution of every scoring factor in the Atlas-15
// evaluator. Zeroing a weight disables its factor.
type Weights struct {
	ColdAbsolute float64
	Pressure     float64
	HorseMagnet  float64
	RecentFreq   float64
	ActiveZone   float64
	WheelDensity float64
	GlobalFreq   float64
	Sequence     float64
	ColorBalance float64
	Sector       float64
}

// DefaultWeights returns the tuned production weights.
func DefaultWeights() Weights {
	return Weights{
		ColdAbsolute: 3.5,
		Pressure:     2.8,
		HorseMagnet:  2.3,
		RecentFreq:   2.0,
		ActiveZone:   1.8,
		WheelDensity: 1.9,
		GlobalFreq:   0.7,
		Sequence:     2.2,
		ColorBalance: 1.3,
		Sector:       1.5,
	}
}

// ScoreTable holds the raw Atlas score for every pocket.
type ScoreTable [37]float64

// Result pairs the Atlas candidate set with the full score table so
// callers can expose the ranking.
type Result struct {
	CandidateSet
	Scores ScoreTable
}

// Scorer is the Atlas-15 evaluator. It scores all 37 pockets against ten
// weighted factors and then picks a diversified subset spread across
// zones, terminals and wheel sextants.
type Scorer struct {
	MaxBets int
	Weights Weights
}

// NewScorer returns a Scorer with the default bet cap and weights.
func NewScorer() *Scorer {
	return &Scorer{MaxBets: 12, Weights: DefaultWeights()}
}

// Evaluate scores the history and returns the diversified selection. The
// input is never mutated and equal histories produce equal results.
func (sc *Scorer) Evaluate(history []int) Result {
	if len(history) < MinSpinsAnalysis {
		return Result{CandidateSet: inactive(fmt.Sprintf("need at least %d spins", MinSpinsAnalysis))}
	}

	w := sc.Weights
	recent := tail(history, 18)
	short := tail(history, 6)
	allCounts := countOf(history)
	recentCounts := countOf(recent)
	pressCounts := countOf(tail(history, 25))

	magnets := map[int]bool{}
	if hs := AnalyzeHorses(history, 35); hs != nil {
		for _, t := range StrongMagnets(hs, 60) {
			magnets[t] = true
		}
	}

	// Hit density along the physical wheel: every short-tail spin warms the
	// two positions on each side of its pocket.
	var zoneHits [37]int
	for _, n := range short {
		idx, ok := wheel.PhysicalIndexOf(n)
		if !ok {
			continue
		}
		lo, hi := idx-2, idx+2
		if lo < 0 {
			lo = 0
		}
		if hi > 36 {
			hi = 36
		}
		for i := lo; i <= hi; i++ {
			zoneHits[i]++
		}
	}

	shortInZone := map[string]bool{}
	for _, n := range short {
		for _, name := range wheel.ZoneNames() {
			if wheel.InZone(name, n) {
				shortInZone[name] = true
			}
		}
	}

	var seqDozen int
	last4 := tail(history, 4)
	if len(last4) == 4 {
		d := wheel.DozenOf(last4[0])
		same := d != 0
		for _, n := range last4[1:] {
			if wheel.DozenOf(n) != d {
				same = false
				break
			}
		}
		if same {
			seqDozen = d
		}
	}

	var shortRed, shortBlack int
	for _, n := range short {
		switch wheel.ColorOf(n) {
		case wheel.Red:
			shortRed++
		case wheel.Black:
			shortBlack++
		}
	}

	var coldCount, pressCount int
	var scores ScoreTable
	for n := 0; n <= 36; n++ {
		var s float64

		if allCounts[n] == 0 {
			s += 180 * w.ColdAbsolute
			coldCount++
		}
		if pressCounts[n] <= 1 {
			s += 120 * w.Pressure
			pressCount++
		}
		if magnets[wheel.TerminalOf(n)] {
			s += 90 * w.HorseMagnet
		}

		if len(recent) > 0 {
			freq := float64(recentCounts[n]) / float64(len(recent)) * 100
			contrib := freq * 2
			if contrib > 80 {
				contrib = 80
			}
			s += contrib * w.RecentFreq
		}

		if idx, ok := wheel.PhysicalIndexOf(n); ok {
			lo, hi := idx-2, idx+2
			if lo < 0 {
				lo = 0
			}
			if hi > 36 {
				hi = 36
			}
			density := 0
			for i := lo; i <= hi; i++ {
				density += zoneHits[i]
			}
			s += float64(density) * 15 * w.WheelDensity
		}

		for _, name := range wheel.ZoneNames() {
			if wheel.InZone(name, n) && shortInZone[name] {
				s += 40 * w.ActiveZone
			}
		}

		if len(history) > 0 {
			freq := float64(allCounts[n]) / float64(len(history)) * 100
			if freq > 50 {
				freq = 50
			}
			s += (50 - freq) * w.GlobalFreq
		}

		if seqDozen != 0 && wheel.DozenOf(n) == seqDozen {
			s += 75 * w.Sequence
		}

		if shortRed >= 4 && wheel.IsBlack(n) {
			s += 45 * w.ColorBalance
		} else if shortBlack >= 4 && wheel.IsRed(n) {
			s += 45 * w.ColorBalance
		}

		lo, hi := n-2, n+2
		if lo < 0 {
			lo = 0
		}
		if hi > 36 {
			hi = 36
		}
		sectorHits := 0
		for _, m := range short {
			if m >= lo && m <= hi {
				sectorHits++
			}
		}
		s += float64(sectorHits) * 10 * w.Sector

		scores[n] = s
	}

	ranked := make([]int, 37)
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	maxBets := sc.MaxBets
	if maxBets <= 0 {
		maxBets = 12
	}
	bets := diversify(ranked, scores, maxBets)
	sort.Ints(bets)

	magnetList := make([]int, 0, len(magnets))
	for t := 0; t <= 9; t++ {
		if magnets[t] {
			magnetList = append(magnetList, t)
		}
	}

	return Result{
		CandidateSet: CandidateSet{
			Active:  true,
			Numbers: bets,
			Rationale: fmt.Sprintf("%d cold, %d under pressure, magnet horses %v",
				coldCount, pressCount, magnetList),
			Metrics: map[string]float64{
				"cold":     float64(coldCount),
				"pressure": float64(pressCount),
				"magnets":  float64(len(magnetList)),
			},
		},
		Scores: scores,
	}
}

// scoreOverride lets a pocket into the selection on raw score alone even
// when it adds no new zone, terminal or sextant coverage.
const scoreOverride = 280

// diversify walks the ranking and keeps a pocket when it covers a zone,
// terminal or wheel sextant not yet represented, or when its score clears
// the override threshold.
func diversify(ranked []int, scores ScoreTable, max int) []int {
	var bets []int
	zonesUsed := map[string]bool{}
	terminalsUsed := map[int]bool{}
	sextantsUsed := map[int]bool{}
	for _, n := range ranked {
		if len(bets) >= max {
			break
		}
		zone := wheel.ZoneOf(n)
		term := wheel.TerminalOf(n)
		sext := wheel.Sextant(n)
		newZone := zone != "" && !zonesUsed[zone]
		newTerm := !terminalsUsed[term]
		newSext := sext >= 0 && !sextantsUsed[sext]
		if newZone || newTerm || newSext || scores[n] > scoreOverride {
			bets = append(bets, n)
			if zone != "" {
				zonesUsed[zone] = true
			}
			terminalsUsed[term] = true
			if sext >= 0 {
				sextantsUsed[sext] = true
			}
		}
	}
	return bets
}
