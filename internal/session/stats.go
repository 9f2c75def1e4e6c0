package session

import (
	"sort"

	"github.com/atlasroulette/atlas-tracker/internal/strategy"
	"github.com/atlasroulette/atlas-tracker/internal/wheel"
)

// minStatsHistory gates the advanced table statistics.
const minStatsHistory = 20

// ZoneStat is the hit count and share of one wheel zone over the recent
// window.
type ZoneStat struct {
	Hits    int     `json:"hits"`
	Percent float64 `json:"percent"`
}

// TerminalCount pairs a terminal digit with its hit count.
type TerminalCount struct {
	Terminal int `json:"terminal"`
	Count    int `json:"count"`
}

// MagnetHorse is a terminal whose successors repeat strongly.
type MagnetHorse struct {
	Terminal int     `json:"terminal"`
	Strength float64 `json:"strength"`
}

// TableStats is the advanced statistics block computed after each spin
// once enough history exists.
type TableStats struct {
	Colors          map[string]int      `json:"colors"`
	High            int                 `json:"high"`
	Low             int                 `json:"low"`
	TopTerminals    []TerminalCount     `json:"top_terminals"`
	MagnetHorses    []MagnetHorse       `json:"magnet_horses,omitempty"`
	HotNumbers      []int               `json:"hot_numbers"`
	ColdNumbers     []int               `json:"cold_numbers"`
	PressureNumbers []int               `json:"pressure_numbers"`
	MaxRedStreak    int                 `json:"max_red_streak"`
	MaxBlackStreak  int                 `json:"max_black_streak"`
	Zones           map[string]ZoneStat `json:"zones"`
}

// ComputeStats builds the table statistics over the ledger. Histories
// shorter than 20 spins yield nil.
func ComputeStats(history []int) *TableStats {
	if len(history) < minStatsHistory {
		return nil
	}
	recent := tailInts(history, 30)

	st := &TableStats{
		Colors: map[string]int{"red": 0, "black": 0, "green": 0},
		Zones:  make(map[string]ZoneStat, len(wheel.ZoneNames())),
	}

	for _, n := range recent {
		switch wheel.ColorOf(n) {
		case wheel.Red:
			st.Colors["red"]++
		case wheel.Black:
			st.Colors["black"]++
		default:
			st.Colors["green"]++
		}
		if wheel.IsHigh(n) {
			st.High++
		} else if wheel.IsLow(n) {
			st.Low++
		}
	}

	termCounts := map[int]int{}
	for _, n := range recent {
		if n != 0 {
			termCounts[wheel.TerminalOf(n)]++
		}
	}
	for t := 0; t <= 9; t++ {
		if c := termCounts[t]; c > 0 {
			st.TopTerminals = append(st.TopTerminals, TerminalCount{Terminal: t, Count: c})
		}
	}
	sort.SliceStable(st.TopTerminals, func(i, j int) bool {
		return st.TopTerminals[i].Count > st.TopTerminals[j].Count
	})
	if len(st.TopTerminals) > 5 {
		st.TopTerminals = st.TopTerminals[:5]
	}

	if hs := strategy.AnalyzeHorses(history, 40); hs != nil {
		for t := 0; t <= 9; t++ {
			if h, ok := hs[t]; ok && h.MagnetStrength > 50 {
				st.MagnetHorses = append(st.MagnetHorses, MagnetHorse{Terminal: t, Strength: h.MagnetStrength})
			}
		}
		sort.SliceStable(st.MagnetHorses, func(i, j int) bool {
			return st.MagnetHorses[i].Strength > st.MagnetHorses[j].Strength
		})
		if len(st.MagnetHorses) > 3 {
			st.MagnetHorses = st.MagnetHorses[:3]
		}
	}

	allCounts := map[int]int{}
	for _, n := range history {
		allCounts[n]++
	}
	type nc struct{ num, count int }
	var hot []nc
	for n := 0; n <= 36; n++ {
		if allCounts[n] > 0 {
			hot = append(hot, nc{n, allCounts[n]})
		}
	}
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].count > hot[j].count })
	for i, h := range hot {
		if i >= 8 {
			break
		}
		st.HotNumbers = append(st.HotNumbers, h.num)
	}

	pressCounts := map[int]int{}
	for _, n := range tailInts(history, 25) {
		pressCounts[n]++
	}
	for n := 0; n <= 36; n++ {
		if allCounts[n] == 0 {
			st.ColdNumbers = append(st.ColdNumbers, n)
		}
		if pressCounts[n] == 0 {
			st.PressureNumbers = append(st.PressureNumbers, n)
		}
	}

	st.MaxRedStreak, st.MaxBlackStreak = colorStreaks(recent)

	for _, name := range wheel.ZoneNames() {
		hits := 0
		for _, n := range recent {
			if wheel.InZone(name, n) {
				hits++
			}
		}
		pct := float64(hits) / float64(len(recent)) * 100
		st.Zones[name] = ZoneStat{Hits: hits, Percent: pct}
	}
	return st
}

func colorStreaks(nums []int) (maxRed, maxBlack int) {
	var curRed, curBlack int
	for _, n := range nums {
		switch wheel.ColorOf(n) {
		case wheel.Red:
			curRed++
			curBlack = 0
		case wheel.Black:
			curBlack++
			curRed = 0
		default:
			curRed, curBlack = 0, 0
		}
		if curRed > maxRed {
			maxRed = curRed
		}
		if curBlack > maxBlack {
			maxBlack = curBlack
		}
	}
	return maxRed, maxBlack
}

func tailInts(nums []int, n int) []int {
	if len(nums) <= n {
		return nums
	}
	return nums[len(nums)-n:]
}
