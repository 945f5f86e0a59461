package cli

import (
	"errors"
	"time"

	"github.com/rcliao/meletao/internal/model"
)

// Year bounds accepted for yearly goals.
const (
	minGoalYear = 2000
	maxGoalYear = 2100
)

// validateGoal rejects goal input the store would otherwise silently clamp
// or drop. g is the goal as it would look after the change, before
// normalization.
func validateGoal(g model.Goal) error {
	if model.CleanText(g.Title) == "" {
		return errors.New("title is required")
	}

	if model.ParseGoalType(string(g.Type)) == model.GoalYearly {
		if g.Year == nil || *g.Year < minGoalYear || *g.Year > maxGoalYear {
			return errors.New("please enter a valid year (e.g. 2026)")
		}
	} else {
		if !validDate(g.StartDate) || !validDate(g.EndDate) {
			return errors.New("dates must be YYYY-MM-DD")
		}
		if g.StartDate != "" && g.EndDate != "" && g.StartDate > g.EndDate {
			return errors.New("start date must be before end date")
		}
	}

	if !g.MeasurementEnabled {
		return nil
	}
	if model.ParseMeasurementType(string(g.MeasurementType)) == model.MeasurementNumeric {
		if g.Target == nil || *g.Target <= 0 {
			return errors.New("numeric goals need a target > 0")
		}
		if g.Current < 0 {
			return errors.New("current cannot be negative")
		}
		return nil
	}
	if g.ChecklistTotal == nil || *g.ChecklistTotal <= 0 {
		return errors.New("checklist goals need a total > 0")
	}
	if g.ChecklistDone < 0 {
		return errors.New("done cannot be negative")
	}
	if g.ChecklistDone > *g.ChecklistTotal {
		return errors.New("done cannot exceed total")
	}
	return nil
}

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(model.DateLayout, s)
	return err == nil
}
