// Package insight holds the pure derived-view computations over stored
// records: goal progress, gratitude day buckets and streaks, and display
// helpers for the daily focus view.
package insight

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rcliao/meletao/internal/model"
)

// ProgressPercent returns the goal's progress as an integer percentage in
// [0, 100]. It is 0 when measurement is disabled or the target/total is
// absent or not positive, and rounds half up otherwise.
func ProgressPercent(g model.Goal) int {
	if !g.MeasurementEnabled {
		return 0
	}

	var num, den float64
	switch g.MeasurementType {
	case model.MeasurementNumeric:
		if g.Target == nil {
			return 0
		}
		num, den = g.Current, *g.Target
	case model.MeasurementCheckbox:
		if g.ChecklistTotal == nil {
			return 0
		}
		num, den = float64(g.ChecklistDone), float64(*g.ChecklistTotal)
	default:
		return 0
	}
	if den <= 0 || math.IsNaN(num) || math.IsNaN(den) {
		return 0
	}

	pct := math.Floor(num*100/den + 0.5)
	return int(math.Max(0, math.Min(100, pct)))
}

// FocusLine renders the one-line progress summary shown for the pinned goal.
func FocusLine(g *model.Goal) string {
	switch {
	case g == nil:
		return "No goal pinned"
	case !g.MeasurementEnabled:
		return "No measurement"
	case g.MeasurementType == model.MeasurementNumeric:
		name := g.MetricName
		if name == "" {
			name = "Progress"
		}
		target := 0.0
		if g.Target != nil {
			target = *g.Target
		}
		return name + ": " + formatNumber(g.Current) + "/" + formatNumber(target)
	default:
		total := 0
		if g.ChecklistTotal != nil {
			total = *g.ChecklistTotal
		}
		return "Checklist: " + strconv.Itoa(g.ChecklistDone) + "/" + strconv.Itoa(total)
	}
}

// Preview collapses whitespace in text and cuts it to at most max runes,
// marking a cut with an ellipsis.
func Preview(text string, max int) string {
	t := strings.Join(strings.Fields(text), " ")
	if max <= 0 || utf8.RuneCountInString(t) <= max {
		return t
	}
	return string([]rune(t)[:max]) + "…"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
