// Package report renders session state into Telegram-ready HTML messages.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atlasroulette/atlas-tracker/internal/seismo"
	"github.com/atlasroulette/atlas-tracker/internal/session"
)

// maxStrategies caps how many recommendations one message carries.
const maxStrategies = 5

// maxAlerts caps how many alerts one message carries.
const maxAlerts = 3

var rankMarkers = []string{"1.", "2.", "3.", "4.", "5."}

// SpinData is the renderable payload for one spin report.
type SpinData struct {
	Number     int
	Color      string
	TotalSpins int
	Balance    float64
	Profit     float64
	Seismic    seismo.State
	Pressure   int
	Strategies []session.Published
	Alerts     []session.Alert
}

// BuildSpinData normalizes a spin report into a renderable payload: the
// published strategies are ranked by confidence and capped.
func BuildSpinData(rep *session.SpinReport, snap session.Snapshot) SpinData {
	strategies := append([]session.Published(nil), rep.Published...)
	sort.SliceStable(strategies, func(i, j int) bool {
		return strategies[i].Confidence > strategies[j].Confidence
	})
	if len(strategies) > maxStrategies {
		strategies = strategies[:maxStrategies]
	}

	alerts := append([]session.Alert(nil), rep.Alerts...)
	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}

	pressure := 0
	if snap.Stats != nil {
		pressure = len(snap.Stats.PressureNumbers)
	}

	return SpinData{
		Number:     rep.Outcome.Number,
		Color:      string(rep.Outcome.Color),
		TotalSpins: len(snap.Outcomes),
		Balance:    snap.Book.Balance,
		Profit:     snap.Book.Balance - snap.Book.Initial,
		Seismic:    rep.Seismic,
		Pressure:   pressure,
		Strategies: strategies,
		Alerts:     alerts,
	}
}

// RenderSpinHTML renders a spin report in HTML parse mode.
func RenderSpinHTML(d SpinData) string {
	var b strings.Builder
	b.WriteString("<b>Spin Report</b>\n")
	b.WriteString(fmt.Sprintf("Number: <b>%d</b> (%s)\nTotal spins: %d\n", d.Number, d.Color, d.TotalSpins))
	b.WriteString(fmt.Sprintf("Bankroll: %.2f (%+.2f)\n", d.Balance, d.Profit))
	b.WriteString(fmt.Sprintf("Assertiveness: %d/100 [%s]\n", d.Seismic.Score, d.Seismic.Tier))
	if d.Pressure > 0 {
		b.WriteString(fmt.Sprintf("Numbers under pressure: %d\n", d.Pressure))
	}

	if len(d.Strategies) > 0 {
		b.WriteString("\n<b>Recommendations</b>\n")
		for i, s := range d.Strategies {
			marker := "-"
			if i < len(rankMarkers) {
				marker = rankMarkers[i]
			}
			b.WriteString(fmt.Sprintf("%s %s (%.1f%%)\n", marker, s.Name, s.Confidence))
			b.WriteString(fmt.Sprintf("   Bets: %s | Stake: %d\n", joinNumbers(s.Numbers), s.Stake))
			if ms, ok := s.Metrics["magnet_strength"]; ok && ms > 0 {
				b.WriteString(fmt.Sprintf("   Magnet: %.0f%%\n", ms))
			}
		}
	}

	if len(d.Alerts) > 0 {
		b.WriteString("\n<b>Alerts</b>\n")
		for _, a := range d.Alerts {
			b.WriteString(fmt.Sprintf("- [%s] %s\n", a.Priority, a.Message))
		}
	}
	return strings.TrimSpace(b.String())
}

func joinNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, " ")
}
