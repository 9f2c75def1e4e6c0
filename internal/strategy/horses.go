package strategy

import (
	"sort"

	"github.com/atlasroulette/atlas-tracker/internal/wheel"
)

// NumCount is a value with its occurrence count, ordered by the counter
// that produced it.
type NumCount struct {
	Num   int
	Count int
}

// HorseStats describes how one terminal digit ("horse") behaves: which
// numbers tend to follow it and how concentrated those successors are.
type HorseStats struct {
	Successors        []int      // every number observed right after this horse
	Pulls             int        // transitions out of this horse
	TopSuccessors     []NumCount // up to 6 most frequent successors
	PulledTerminals   []NumCount // up to 4 most frequent successor terminals
	HotNumbers        []int      // up to 4 most frequent successors
	PreferredTargets  []int      // top-3 successors seen at least twice
	MagnetStrength    float64    // 0-100, consistency of the top-3 successors
	RelativeFrequency float64    // pulls as a percentage of the window
	Efficiency        float64    // share of successors that repeated
}

// counter counts values while remembering first-seen order so that ties
// resolve deterministically.
type counter struct {
	counts map[int]int
	order  []int
}

func newCounter() *counter {
	return &counter{counts: make(map[int]int)}
}

func (c *counter) add(v int) {
	if _, ok := c.counts[v]; !ok {
		c.order = append(c.order, v)
	}
	c.counts[v]++
}

// mostCommon returns up to n entries sorted by count descending, ties by
// first occurrence.
func (c *counter) mostCommon(n int) []NumCount {
	out := make([]NumCount, 0, len(c.order))
	for _, v := range c.order {
		out = append(out, NumCount{Num: v, Count: c.counts[v]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// AnalyzeHorses builds per-terminal successor statistics over the last
// depth outcomes. Histories shorter than depth yield nil: the magnet
// reading is only trusted on a full window.
func AnalyzeHorses(history []int, depth int) map[int]*HorseStats {
	if len(history) < depth {
		return nil
	}
	recent := tail(history, depth)

	stats := make(map[int]*HorseStats, 10)
	for t := 0; t <= 9; t++ {
		stats[t] = &HorseStats{}
	}
	for i := 0; i < len(recent)-1; i++ {
		horse := wheel.TerminalOf(recent[i])
		stats[horse].Successors = append(stats[horse].Successors, recent[i+1])
		stats[horse].Pulls++
	}

	for _, hs := range stats {
		if len(hs.Successors) < 5 {
			continue
		}
		c := newCounter()
		for _, n := range hs.Successors {
			c.add(n)
		}
		total := len(hs.Successors)

		top3 := c.mostCommon(3)
		consistent := 0
		for _, nc := range top3 {
			if nc.Count >= 2 {
				consistent++
			}
		}
		hs.MagnetStrength = float64(consistent) / 3 * 100

		hs.TopSuccessors = c.mostCommon(6)
		tc := newCounter()
		for _, n := range hs.Successors {
			tc.add(wheel.TerminalOf(n))
		}
		hs.PulledTerminals = tc.mostCommon(4)

		top4 := c.mostCommon(4)
		hs.HotNumbers = make([]int, 0, len(top4))
		for _, nc := range top4 {
			hs.HotNumbers = append(hs.HotNumbers, nc.Num)
		}
		hs.PreferredTargets = nil
		for _, nc := range top3 {
			if nc.Count >= 2 {
				hs.PreferredTargets = append(hs.PreferredTargets, nc.Num)
			}
		}
		hs.RelativeFrequency = float64(hs.Pulls) / float64(len(recent)) * 100

		repeated := 0
		for _, n := range c.counts {
			if n >= 2 {
				repeated++
			}
		}
		hs.Efficiency = float64(repeated) / float64(total) * 100
	}
	return stats
}

// StrongMagnets returns the terminals whose magnet strength exceeds the
// threshold, ascending.
func StrongMagnets(stats map[int]*HorseStats, threshold float64) []int {
	var out []int
	for t := 0; t <= 9; t++ {
		if hs, ok := stats[t]; ok && hs.MagnetStrength > threshold {
			out = append(out, t)
		}
	}
	return out
}
