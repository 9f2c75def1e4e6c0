package session

import (
	"fmt"

	"github.com/atlasroulette/atlas-tracker/internal/seismo"
	"github.com/atlasroulette/atlas-tracker/internal/strategy"
	"github.com/atlasroulette/atlas-tracker/internal/wheel"
)

// Alert priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Alert kinds.
const (
	AlertSeismograph = "seismograph"
	AlertHorse       = "dominant_horse"
	AlertPressure    = "pressure"
	AlertHotZero     = "hot_zero"
	AlertSector      = "sector"
)

// Alert is one actionable observation raised after a spin.
type Alert struct {
	Kind     string `json:"kind"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// History floors: no alert fires before fifteen spins, and the wheel
// sector scan needs twenty.
const (
	minAlertHistory  = 15
	minSectorHistory = 20
)

// ScanAlerts inspects the ledger and the seismograph reading for notable
// conditions.
func ScanAlerts(history []int, state seismo.State) []Alert {
	if len(history) < minAlertHistory {
		return nil
	}
	var alerts []Alert

	switch state.Tier {
	case seismo.TierHigh:
		alerts = append(alerts, Alert{
			Kind:     AlertSeismograph,
			Priority: PriorityHigh,
			Message:  fmt.Sprintf("table assertiveness at %d: ideal moment to press", state.Score),
		})
	case seismo.TierLow:
		alerts = append(alerts, Alert{
			Kind:     AlertSeismograph,
			Priority: PriorityLow,
			Message:  fmt.Sprintf("table assertiveness at %d: caution advised", state.Score),
		})
	}

	if a := dominantHorse(history); a != nil {
		alerts = append(alerts, *a)
	}
	if a := pressureBuildup(history); a != nil {
		alerts = append(alerts, *a)
	}
	if a := hotZero(history); a != nil {
		alerts = append(alerts, *a)
	}
	if a := sectorConcentration(history); a != nil {
		alerts = append(alerts, *a)
	}
	return alerts
}

// dominantHorse flags a terminal taking six or more of the last fifteen
// non-zero spins.
func dominantHorse(history []int) *Alert {
	recent := tailInts(history, 15)
	counts := map[int]int{}
	for _, n := range recent {
		if n != 0 {
			counts[wheel.TerminalOf(n)]++
		}
	}
	best, bestCount := -1, 0
	for t := 0; t <= 9; t++ {
		if counts[t] > bestCount {
			best, bestCount = t, counts[t]
		}
	}
	if bestCount < 6 {
		return nil
	}
	priority := PriorityMedium
	if hs := strategy.AnalyzeHorses(history, 30); hs != nil {
		if h, ok := hs[best]; ok && h.MagnetStrength > 50 {
			priority = PriorityHigh
		}
	}
	return &Alert{
		Kind:     AlertHorse,
		Priority: priority,
		Message:  fmt.Sprintf("horse %d dominates with %d of the last %d spins", best, bestCount, len(recent)),
	}
}

// pressureBuildup flags a large pool of numbers absent from the last 25.
func pressureBuildup(history []int) *Alert {
	if len(history) < 25 {
		return nil
	}
	seen := map[int]bool{}
	for _, n := range tailInts(history, 25) {
		seen[n] = true
	}
	absent := 0
	for n := 0; n <= 36; n++ {
		if !seen[n] {
			absent++
		}
	}
	switch {
	case absent >= 10:
		return &Alert{
			Kind:     AlertPressure,
			Priority: PriorityHigh,
			Message:  fmt.Sprintf("%d numbers under premium pressure", absent),
		}
	case absent >= 6:
		return &Alert{
			Kind:     AlertPressure,
			Priority: PriorityMedium,
			Message:  fmt.Sprintf("%d numbers under pressure", absent),
		}
	}
	return nil
}

// hotZero flags zero repeating in a short window.
func hotZero(history []int) *Alert {
	recent := tailInts(history, 15)
	zeros := 0
	for _, n := range recent {
		if n == 0 {
			zeros++
		}
	}
	if zeros < 2 {
		return nil
	}
	window := tailInts(history, 20)
	var positions []int
	for i, n := range window {
		if n == 0 {
			positions = append(positions, i)
		}
	}
	if len(positions) < 2 {
		return nil
	}
	gap := positions[len(positions)-1] - positions[len(positions)-2]
	if gap > 8 {
		return nil
	}
	return &Alert{
		Kind:     AlertHotZero,
		Priority: PriorityMedium,
		Message:  fmt.Sprintf("zero hit twice within %d spins", gap),
	}
}

// sectorConcentration flags five or more of the last twelve spins landing
// in one wheel sextant.
func sectorConcentration(history []int) *Alert {
	if len(history) < minSectorHistory {
		return nil
	}
	recent := tailInts(history, 12)
	counts := map[int]int{}
	for _, n := range recent {
		if s := wheel.Sextant(n); s >= 0 {
			counts[s]++
		}
	}
	for s := 0; s < 7; s++ {
		if counts[s] >= 5 {
			return &Alert{
				Kind:     AlertSector,
				Priority: PriorityMedium,
				Message:  fmt.Sprintf("wheel sector %d took %d of the last %d spins", s, counts[s], len(recent)),
			}
		}
	}
	return nil
}
