// Package wheel holds the static topology of a single-zero roulette wheel:
// color and table groupings, the physical order of pockets, curated
// neighbor tables and the named zones used by the betting strategies.
package wheel

// Color of a pocket.
type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true,
	16: true, 18: true, 19: true, 21: true, 23: true, 25: true, 27: true,
	30: true, 32: true, 34: true, 36: true,
}

// PhysicalOrder is the clockwise sequence of pockets on a European wheel.
// It is not numeric order.
var PhysicalOrder = [37]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10, 5,
	24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

// physicalIndex maps each number to its position in PhysicalOrder.
var physicalIndex = func() map[int]int {
	m := make(map[int]int, len(PhysicalOrder))
	for i, n := range PhysicalOrder {
		m[n] = i
	}
	return m
}()

// NeighborTable is a curated per-number list of ten wheel neighbors,
// ordered by betting relevance rather than strict distance. Several fixed
// trigger strategies bet these lists directly.
var NeighborTable = map[int][]int{
	0:  {32, 15, 19, 4, 21, 2, 25, 17, 34, 6},
	1:  {20, 14, 31, 9, 22, 18, 29, 7, 28, 12},
	2:  {21, 4, 19, 15, 32, 0, 25, 17, 34, 6},
	3:  {26, 35, 12, 28, 7, 29, 18, 22, 9, 31},
	4:  {21, 2, 25, 17, 34, 6, 27, 13, 36, 11},
	5:  {10, 23, 8, 30, 11, 36, 13, 27, 6, 34},
	6:  {27, 13, 36, 11, 30, 8, 23, 10, 5, 24},
	7:  {28, 12, 35, 3, 26, 0, 32, 15, 19, 4},
	8:  {23, 10, 5, 24, 16, 33, 1, 20, 14, 31},
	9:  {22, 18, 29, 7, 28, 12, 35, 3, 26, 0},
	10: {5, 24, 16, 33, 1, 20, 14, 31, 9, 22},
	11: {36, 13, 27, 6, 34, 17, 25, 2, 21, 4},
	12: {35, 3, 26, 0, 32, 15, 19, 4, 21, 2},
	13: {27, 6, 34, 17, 25, 2, 21, 4, 19, 15},
	14: {31, 9, 22, 18, 29, 7, 28, 12, 35, 3},
	15: {32, 0, 26, 3, 35, 12, 28, 7, 29, 18},
	16: {33, 1, 20, 14, 31, 9, 22, 18, 29, 7},
	17: {34, 6, 27, 13, 36, 11, 30, 8, 23, 10},
	18: {29, 7, 28, 12, 35, 3, 26, 0, 32, 15},
	19: {4, 21, 2, 25, 17, 34, 6, 27, 13, 36},
	20: {1, 33, 16, 24, 5, 10, 23, 8, 30, 11},
	21: {2, 25, 17, 34, 6, 27, 13, 36, 11, 30},
	22: {18, 29, 7, 28, 12, 35, 3, 26, 0, 32},
	23: {10, 5, 24, 16, 33, 1, 20, 14, 31, 9},
	24: {16, 33, 1, 20, 14, 31, 9, 22, 18, 29},
	25: {17, 34, 6, 27, 13, 36, 11, 30, 8, 23},
	26: {3, 35, 12, 28, 7, 29, 18, 22, 9, 31},
	27: {13, 36, 11, 30, 8, 23, 10, 5, 24, 16},
	28: {7, 29, 18, 22, 9, 31, 14, 20, 1, 33},
	29: {18, 22, 9, 31, 14, 20, 1, 33, 16, 24},
	30: {8, 23, 10, 5, 24, 16, 33, 1, 20, 14},
	31: {14, 20, 1, 33, 16, 24, 5, 10, 23, 8},
	32: {15, 19, 4, 21, 2, 25, 17, 34, 6, 27},
	33: {16, 24, 5, 10, 23, 8, 30, 11, 36, 13},
	34: {17, 25, 2, 21, 4, 19, 15, 32, 0, 26},
	35: {3, 26, 0, 32, 15, 19, 4, 21, 2, 25},
	36: {11, 30, 8, 23, 10, 5, 24, 16, 33, 1},
}

// Zone names, casino convention.
const (
	ZoneZeroGame   = "zero_game"
	ZoneSeries5    = "series_5"
	ZoneOpposites  = "opposites"
	ZoneOrphans    = "orphans"
	ZoneMidWheel   = "mid_wheel"
	ZoneTerminal7  = "terminal_7"
	ZoneTerminal8  = "terminal_8"
	ZoneTerminal9  = "terminal_9"
)

// zoneOrder fixes the lookup order for ZoneOf: a number belonging to
// several zones is attributed to the first match.
var zoneOrder = []string{
	ZoneZeroGame, ZoneSeries5, ZoneOpposites, ZoneOrphans, ZoneMidWheel,
	ZoneTerminal7, ZoneTerminal8, ZoneTerminal9,
}

// Zones are fixed sets of numbers grouped by casino convention.
var Zones = map[string][]int{
	ZoneZeroGame:  {0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6},
	ZoneSeries5:   {5, 10, 23, 8, 30, 11, 36, 13, 27, 6, 34, 17, 25, 2, 21, 4},
	ZoneOpposites: {1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26},
	ZoneOrphans:   {9, 31, 14, 20, 1, 33, 16, 24, 5, 10, 23, 8, 30, 11, 36, 13},
	ZoneMidWheel:  {13, 36, 11, 30, 8, 23, 10, 5, 24, 16, 33, 1, 20, 14},
	ZoneTerminal7: {7, 17, 27},
	ZoneTerminal8: {8, 18, 28},
	ZoneTerminal9: {9, 19, 29},
}

var zoneMembership = func() map[string]map[int]bool {
	m := make(map[string]map[int]bool, len(Zones))
	for name, nums := range Zones {
		set := make(map[int]bool, len(nums))
		for _, n := range nums {
			set[n] = true
		}
		m[name] = set
	}
	return m
}()

// Valid reports whether n is a pocket on the wheel.
func Valid(n int) bool { return n >= 0 && n <= 36 }

// ColorOf returns the pocket color. Numbers off the wheel map to Green.
func ColorOf(n int) Color {
	switch {
	case n == 0:
		return Green
	case redNumbers[n]:
		return Red
	default:
		return Black
	}
}

// IsRed reports whether n is a red pocket.
func IsRed(n int) bool { return redNumbers[n] }

// IsBlack reports whether n is a black pocket.
func IsBlack(n int) bool { return Valid(n) && n != 0 && !redNumbers[n] }

// IsHigh reports whether n is in 19..36.
func IsHigh(n int) bool { return n >= 19 && n <= 36 }

// IsLow reports whether n is in 1..18.
func IsLow(n int) bool { return n >= 1 && n <= 18 }

// DozenOf returns 1, 2 or 3 for the table dozen, 0 for the zero pocket.
func DozenOf(n int) int {
	switch {
	case n >= 1 && n <= 12:
		return 1
	case n >= 13 && n <= 24:
		return 2
	case n >= 25 && n <= 36:
		return 3
	default:
		return 0
	}
}

// ColumnOf returns 1, 2 or 3 for the table column, 0 for the zero pocket.
func ColumnOf(n int) int {
	if n < 1 || n > 36 {
		return 0
	}
	return (n-1)%3 + 1
}

// TerminalOf returns the terminal (last) digit of n; zero maps to 0.
func TerminalOf(n int) int {
	if n == 0 {
		return 0
	}
	return n % 10
}

// PhysicalIndexOf returns the position of n in the physical wheel order
// and whether n is a valid pocket.
func PhysicalIndexOf(n int) (int, bool) {
	idx, ok := physicalIndex[n]
	return idx, ok
}

// Sextant returns the wheel sextant (physical index / 6) of n, used by the
// scorer's diversification rule. Returns -1 for numbers off the wheel.
func Sextant(n int) int {
	idx, ok := physicalIndex[n]
	if !ok {
		return -1
	}
	return idx / 6
}

// Neighbors returns up to k pockets physically adjacent to n, nearest
// first and alternating clockwise/counter-clockwise. n itself is never
// included and the result holds no duplicates. An invalid n yields nil.
func Neighbors(n, k int) []int {
	idx, ok := physicalIndex[n]
	if !ok || k <= 0 {
		return nil
	}
	size := len(PhysicalOrder)
	seen := make(map[int]bool, 2*k)
	out := make([]int, 0, k)
	for step := 1; step <= k; step++ {
		cw := PhysicalOrder[(idx+step)%size]
		ccw := PhysicalOrder[((idx-step)%size+size)%size]
		for _, v := range []int{cw, ccw} {
			if v == n || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// ZoneOf returns the first named zone containing n, or "" if none does.
func ZoneOf(n int) string {
	for _, name := range zoneOrder {
		if zoneMembership[name][n] {
			return name
		}
	}
	return ""
}

// InZone reports whether n belongs to the named zone.
func InZone(name string, n int) bool { return zoneMembership[name][n] }

// ZoneNames returns the zone names in their fixed lookup order.
func ZoneNames() []string {
	out := make([]string, len(zoneOrder))
	copy(out, zoneOrder)
	return out
}
