package strategy

import (
	"fmt"

	"github.com/atlasroulette/atlas-tracker/internal/wheel"
)

// SmartHorses bets the preferred targets of the last outcome's terminal
// digit when that horse shows real magnet strength over a 50-spin window.
func SmartHorses(history []int) CandidateSet {
	if len(history) < 25 {
		return inactive("need at least 25 spins for horse analysis")
	}
	stats := AnalyzeHorses(history, 50)
	last := history[len(history)-1]
	horse := wheel.TerminalOf(last)
	hs, ok := stats[horse]
	if stats == nil || !ok {
		return inactive("insufficient data for horse analysis")
	}
	if hs.Pulls < 4 || hs.MagnetStrength < 40 {
		return inactive(fmt.Sprintf("horse %d lacks magnet strength", horse))
	}

	var bets []int
	bets = append(bets, hs.PreferredTargets...)
	for i, nc := range hs.TopSuccessors {
		if i >= 2 {
			break
		}
		if nc.Count >= 2 {
			bets = append(bets, nc.Num)
		}
	}
	physical := wheel.Neighbors(last, 3)
	bets = append(bets, physical...)

	// Numbers of the terminals this horse pulls most, restricted to ones
	// already seen among its successors.
	topSet := make(map[int]bool, len(hs.TopSuccessors))
	for _, nc := range hs.TopSuccessors {
		topSet[nc.Num] = true
	}
	for i, tc := range hs.PulledTerminals {
		if i >= 2 {
			break
		}
		added := 0
		for n := 0; n <= 36; n++ {
			if wheel.TerminalOf(n) == tc.Num && topSet[n] {
				bets = append(bets, n)
				added++
				if added == 2 {
					break
				}
			}
		}
	}

	bets = capLen(clampNumbers(bets), 10)
	if len(bets) > 0 && hs.MagnetStrength > 50 {
		return CandidateSet{
			Active:  true,
			Numbers: bets,
			Rationale: fmt.Sprintf("horse %d magnet %.0f%%: targets %v, wheel neighbors %v",
				horse, hs.MagnetStrength, hs.PreferredTargets, physical),
			Metrics: map[string]float64{"magnet_strength": hs.MagnetStrength},
		}
	}
	return inactive(fmt.Sprintf("horse %d magnet strength too low", horse))
}

// trojanTargets maps trigger terminals to their fixed wheel-zone targets.
var trojanTargets = map[int][]int{
	2: {25, 17, 34, 6, 21, 4},
	5: {10, 23, 8, 30, 11, 36},
	7: {28, 12, 35, 3, 26, 0},
	8: {23, 10, 5, 24, 16, 33},
}

// TrojanHorse fires on four specific terminals and bets their fixed target
// zones plus the physical neighbors of the trigger number.
func TrojanHorse(history []int) CandidateSet {
	if len(history) < 20 {
		return inactive("need at least 20 spins")
	}
	last := history[len(history)-1]
	horse := wheel.TerminalOf(last)
	targets, ok := trojanTargets[horse]
	if !ok {
		return inactive(fmt.Sprintf("terminal %d is not a trojan trigger", horse))
	}
	bets := make([]int, 0, len(targets)+4)
	bets = append(bets, targets...)
	bets = append(bets, wheel.Neighbors(last, 2)...)
	bets = capLen(clampNumbers(bets), 8)
	return CandidateSet{
		Active:    true,
		Numbers:   bets,
		Rationale: fmt.Sprintf("trojan terminal %d: target zone %v", horse, targets[:3]),
	}
}

// PressureSystem hunts numbers absent from the last 30 spins, preferring
// those physically adjacent to currently hot numbers.
func PressureSystem(history []int) CandidateSet {
	if len(history) < 30 {
		return inactive("need at least 30 spins for pressure analysis")
	}
	recent := tail(history, 30)
	counts := countOf(recent)

	var highPressure, moderate []int
	for n := 0; n <= 36; n++ {
		switch counts[n] {
		case 0:
			highPressure = append(highPressure, n)
		case 1:
			moderate = append(moderate, n)
		}
	}

	hot := newCounter()
	for _, n := range tail(recent, 10) {
		hot.add(n)
	}
	hotNums := hot.mostCommon(3)

	var bets []int
	for _, p := range highPressure {
		for _, h := range hotNums {
			if containsInt(wheel.Neighbors(h.Num, 3), p) {
				bets = append(bets, p)
				break
			}
		}
	}
	bets = append(bets, capLen(moderate, 3)...)

	if len(bets) >= 4 {
		lastHorse := wheel.TerminalOf(history[len(history)-1])
		filtered := bets[:0:0]
		for _, b := range bets {
			if wheel.TerminalOf(b) != lastHorse {
				filtered = append(filtered, b)
			}
		}
		filtered = capLen(clampNumbers(filtered), 8)
		if len(filtered) > 0 {
			return CandidateSet{
				Active:  true,
				Numbers: filtered,
				Rationale: fmt.Sprintf("%d numbers under high pressure, %d moderate",
					len(highPressure), len(moderate)),
				Metrics: map[string]float64{
					"high_pressure": float64(len(highPressure)),
					"moderate":      float64(len(moderate)),
				},
			}
		}
	}
	return inactive("not enough pressure to act")
}

// PhantomZone looks for wheel positions the last 40 spins have avoided and
// bets those pockets with their immediate neighbors.
func PhantomZone(history []int) CandidateSet {
	if len(history) < 40 {
		return inactive("need at least 40 spins for zone analysis")
	}
	recent := tail(history, 40)
	hits := make(map[int]int, 37)
	for _, n := range recent {
		if idx, ok := wheel.PhysicalIndexOf(n); ok {
			hits[idx]++
		}
	}
	var phantom []int
	for pos := 0; pos < len(wheel.PhysicalOrder); pos++ {
		if hits[pos] <= 1 {
			phantom = append(phantom, pos)
		}
	}
	if len(phantom) < 3 {
		return inactive("too few phantom zones")
	}
	var bets []int
	for _, pos := range capLen(phantom, 5) {
		n := wheel.PhysicalOrder[pos]
		bets = append(bets, n)
		bets = append(bets, wheel.Neighbors(n, 2)...)
	}
	bets = capLen(clampNumbers(bets), 10)
	if len(bets) == 0 {
		return inactive("too few phantom zones")
	}
	return CandidateSet{
		Active:    true,
		Numbers:   bets,
		Rationale: fmt.Sprintf("%d phantom wheel positions identified", len(phantom)),
	}
}

// ColdNumbers bets every number that has not appeared in the whole
// recorded history.
func ColdNumbers(history []int) CandidateSet {
	if len(history) < MinSpinsAnalysis {
		return inactive(fmt.Sprintf("need at least %d spins", MinSpinsAnalysis))
	}
	counts := countOf(history)
	var bets []int
	for n := 0; n <= 36; n++ {
		if counts[n] == 0 {
			bets = append(bets, n)
		}
	}
	if len(bets) == 0 {
		return inactive("no cold numbers left")
	}
	return CandidateSet{
		Active:    true,
		Numbers:   bets,
		Rationale: fmt.Sprintf("%d numbers never seen in %d spins", len(bets), len(history)),
	}
}

// PeakyBlinders fires on terminals 2, 3, 6 and 9 and bets the curated
// neighborhoods of 34 and 31 plus the trigger's wheel neighbors.
func PeakyBlinders(history []int) CandidateSet {
	if len(history) == 0 {
		return inactive("no spins yet")
	}
	last := history[len(history)-1]
	t := wheel.TerminalOf(last)
	switch t {
	case 2, 3, 6, 9:
		var bets []int
		bets = append(bets, wheel.NeighborTable[34]...)
		bets = append(bets, wheel.NeighborTable[31]...)
		bets = append(bets, 26, 5)
		bets = append(bets, wheel.Neighbors(last, 2)...)
		return CandidateSet{
			Active:    true,
			Numbers:   clampNumbers(bets),
			Rationale: fmt.Sprintf("triggered by terminal %d", t),
		}
	}
	return inactive(fmt.Sprintf("terminal %d does not trigger", t))
}

// lebronTable is the fixed 25-number response to a terminal-0 outcome.
var lebronTable = []int{
	0, 26, 32, 10, 5, 23, 30, 11, 8, 24, 15, 19, 25, 2, 17, 35, 3, 12, 7,
	28, 29, 34, 27, 6, 13,
}

// Lebron fires when the last outcome ends in 0 and bets a fixed wide table.
func Lebron(history []int) CandidateSet {
	if len(history) == 0 {
		return inactive("no spins yet")
	}
	if wheel.TerminalOf(history[len(history)-1]) != 0 {
		return inactive("terminal is not 0")
	}
	return CandidateSet{
		Active:    true,
		Numbers:   clampNumbers(lebronTable),
		Rationale: "triggered by terminal 0",
	}
}

var twinPairs = [][2]int{{21, 12}, {32, 23}, {13, 31}}

// Twins fires when the last outcome belongs to a mirrored-digit pair and
// bets both twins with their curated neighborhoods.
func Twins(history []int) CandidateSet {
	if len(history) == 0 {
		return inactive("no spins yet")
	}
	last := history[len(history)-1]
	var bets []int
	triggered := false
	for _, p := range twinPairs {
		if last == p[0] || last == p[1] {
			triggered = true
			bets = append(bets, p[0], p[1])
			bets = append(bets, wheel.NeighborTable[p[0]]...)
			bets = append(bets, wheel.NeighborTable[p[1]]...)
		}
	}
	if !triggered {
		return inactive("no twin pair triggered")
	}
	return CandidateSet{
		Active:    true,
		Numbers:   clampNumbers(bets),
		Rationale: fmt.Sprintf("triggered by twin pair including %d", last),
	}
}

// terminalGroup buckets terminals into the three "horse families" used by
// the zig-zag rule. Returns 0 for terminals outside any family.
func terminalGroup(t int) int {
	switch t {
	case 1, 4, 7:
		return 1
	case 2, 5, 8:
		return 2
	case 3, 6, 9:
		return 3
	}
	return 0
}

var groupTerminals = map[int][]int{
	1: {1, 4, 7},
	2: {2, 5, 8},
	3: {3, 6, 9},
}

// ZigZag fires when the last two outcomes share a horse family and bets
// every number in that family.
func ZigZag(history []int) CandidateSet {
	if len(history) < 2 {
		return inactive("need at least 2 spins")
	}
	g1 := terminalGroup(wheel.TerminalOf(history[len(history)-1]))
	g2 := terminalGroup(wheel.TerminalOf(history[len(history)-2]))
	if g1 == 0 || g1 != g2 {
		return inactive("no horse family repetition")
	}
	members := make(map[int]bool, 3)
	for _, t := range groupTerminals[g1] {
		members[t] = true
	}
	var bets []int
	for n := 1; n <= 36; n++ {
		if members[wheel.TerminalOf(n)] {
			bets = append(bets, n)
		}
	}
	return CandidateSet{
		Active:    true,
		Numbers:   bets,
		Rationale: fmt.Sprintf("horse family %d repeated", g1),
	}
}

var (
	rainbowSetA = map[int]bool{11: true, 36: true, 13: true, 27: true, 6: true, 34: true, 17: true}
	rainbowSetB = map[int]bool{12: true, 35: true, 3: true, 26: true, 0: true, 32: true, 15: true, 19: true}
	rainbowBets = []int{18, 22, 9, 14, 20, 1, 35, 3, 26, 32, 15, 19}
)

// Rainbow fires when the recent tail hits both of two opposite wheel arcs.
func Rainbow(history []int) CandidateSet {
	if len(history) < 3 {
		return inactive("need at least 3 spins")
	}
	var cA, cB int
	for _, n := range tail(history, 10) {
		if rainbowSetA[n] {
			cA++
		}
		if rainbowSetB[n] {
			cB++
		}
	}
	if cA >= 2 && cB >= 1 {
		return CandidateSet{
			Active:    true,
			Numbers:   clampNumbers(rainbowBets),
			Rationale: fmt.Sprintf("both arcs hit (%d and %d in last 10)", cA, cB),
		}
	}
	return inactive("arcs not both hit")
}

// Pimentinha fires on a first-dozen double with recent second-dozen
// presence, betting the third dozen split by column repetition.
func Pimentinha(history []int) CandidateSet {
	if len(history) < 2 {
		return inactive("need at least 2 spins")
	}
	last2 := tail(history, 2)
	if wheel.DozenOf(last2[0]) != 1 || wheel.DozenOf(last2[1]) != 1 {
		return inactive("last two spins not both in first dozen")
	}
	seenSecond := false
	for _, n := range tail(history, 6) {
		if wheel.DozenOf(n) == 2 {
			seenSecond = true
			break
		}
	}
	if !seenSecond {
		return inactive("no second dozen in recent tail")
	}
	c0, c1 := wheel.ColumnOf(last2[0]), wheel.ColumnOf(last2[1])
	var bets []int
	if c0 != 0 && c0 == c1 {
		bets = []int{26, 27, 29, 30, 32, 33, 35, 36}
	} else {
		bets = []int{25, 27, 28, 30, 31, 33, 34, 36}
	}
	return CandidateSet{
		Active:    true,
		Numbers:   clampNumbers(bets),
		Rationale: "first-dozen double with second-dozen pressure",
	}
}

var zeroTwoTable = []int{
	2, 12, 22, 32, 5, 15, 25, 35, 7, 17, 27, 3, 13, 23, 33, 6, 16, 26, 36,
	0, 10, 20, 30, 1, 14, 19, 4, 9,
}

// ZeroTwo fires when the last outcome ends in 4.
func ZeroTwo(history []int) CandidateSet {
	if len(history) == 0 {
		return inactive("no spins yet")
	}
	if wheel.TerminalOf(history[len(history)-1]) != 4 {
		return inactive("terminal is not 4")
	}
	return CandidateSet{
		Active:    true,
		Numbers:   clampNumbers(zeroTwoTable),
		Rationale: "triggered by terminal 4",
	}
}

var aloneTable = []int{
	1, 11, 21, 31, 4, 14, 24, 34, 5, 15, 25, 35, 3, 13, 23, 33, 6, 16, 26,
	36, 0, 10, 20, 30, 12, 22, 29, 9, 19,
}

// Alone fires when the last outcome ends in 1.
func Alone(history []int) CandidateSet {
	if len(history) == 0 {
		return inactive("no spins yet")
	}
	if wheel.TerminalOf(history[len(history)-1]) != 1 {
		return inactive("terminal is not 1")
	}
	return CandidateSet{
		Active:    true,
		Numbers:   clampNumbers(aloneTable),
		Rationale: "triggered by terminal 1",
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
