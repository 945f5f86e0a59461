package model

import (
	"math"
	"strings"
	"time"
)

// GoalType selects the time window a goal is set against.
type GoalType string

const (
	GoalYearly GoalType = "yearly"
	GoalDated  GoalType = "dated"
)

// MeasurementType selects how a measured goal tracks progress.
type MeasurementType string

const (
	MeasurementNumeric  MeasurementType = "numeric"
	MeasurementCheckbox MeasurementType = "checkbox"
)

// DateLayout is the layout of StartDate and EndDate.
const DateLayout = "2006-01-02"

// ParseGoalType returns the goal type named by s, defaulting to yearly.
func ParseGoalType(s string) GoalType {
	if strings.EqualFold(strings.TrimSpace(s), string(GoalDated)) {
		return GoalDated
	}
	return GoalYearly
}

// ParseMeasurementType returns the measurement type named by s, defaulting
// to numeric. "checklist" is accepted as an alias for checkbox.
func ParseMeasurementType(s string) MeasurementType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "checkbox", "checklist":
		return MeasurementCheckbox
	}
	return MeasurementNumeric
}

// Goal is a yearly or dated goal with optional progress measurement.
//
// Absent optional numbers are nil pointers; a stored zero target or checklist
// total never occurs after Normalize.
type Goal struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        GoalType `json:"type"`

	Year      *int   `json:"year,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	MeasurementEnabled bool            `json:"measurementEnabled"`
	MeasurementType    MeasurementType `json:"measurementType"`

	MetricName string   `json:"metricName,omitempty"`
	Current    float64  `json:"current"`
	Target     *float64 `json:"target,omitempty"`

	ChecklistDone  int  `json:"checklistDone"`
	ChecklistTotal *int `json:"checklistTotal,omitempty"`

	Pinned bool `json:"pinned"`

	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// Numeric reports whether g is measured by current/target.
func (g *Goal) Numeric() bool {
	return g.MeasurementEnabled && g.MeasurementType == MeasurementNumeric
}

// Checklist reports whether g is measured by done/total.
func (g *Goal) Checklist() bool {
	return g.MeasurementEnabled && g.MeasurementType == MeasurementCheckbox
}

// Normalize enforces the goal invariants:
//   - the window fields not used by Type are cleared;
//   - with measurement disabled every measurement field is reset;
//   - with measurement enabled the other mode's fields are reset and the
//     active mode is clamped to 0 <= value <= limit, a non-positive limit
//     being stored as absent.
func (g *Goal) Normalize() {
	g.Title = CleanText(g.Title)
	g.Description = CleanText(g.Description)
	g.Type = ParseGoalType(string(g.Type))
	g.MeasurementType = ParseMeasurementType(string(g.MeasurementType))

	switch g.Type {
	case GoalYearly:
		g.StartDate, g.EndDate = "", ""
	case GoalDated:
		g.Year = nil
		g.StartDate = cleanDate(g.StartDate)
		g.EndDate = cleanDate(g.EndDate)
	}

	switch {
	case !g.MeasurementEnabled:
		g.resetNumeric()
		g.resetChecklist()
	case g.MeasurementType == MeasurementNumeric:
		g.resetChecklist()
		g.clampNumeric()
	default:
		g.resetNumeric()
		g.clampChecklist()
	}
}

func (g *Goal) resetNumeric() {
	g.MetricName = ""
	g.Current = 0
	g.Target = nil
}

func (g *Goal) resetChecklist() {
	g.ChecklistDone = 0
	g.ChecklistTotal = nil
}

func (g *Goal) clampNumeric() {
	g.MetricName = CleanText(g.MetricName)
	if g.Target != nil && (!finite(*g.Target) || *g.Target <= 0) {
		g.Target = nil
	}
	if !finite(g.Current) || g.Current < 0 {
		g.Current = 0
	}
	if g.Target != nil && g.Current > *g.Target {
		g.Current = *g.Target
	}
}

func (g *Goal) clampChecklist() {
	if g.ChecklistTotal != nil && *g.ChecklistTotal <= 0 {
		g.ChecklistTotal = nil
	}
	if g.ChecklistDone < 0 {
		g.ChecklistDone = 0
	}
	if g.ChecklistTotal != nil && g.ChecklistDone > *g.ChecklistTotal {
		g.ChecklistDone = *g.ChecklistTotal
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// cleanDate keeps s only when it is a YYYY-MM-DD date.
func cleanDate(s string) string {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ""
	}
	return s
}
