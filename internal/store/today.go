package store

import (
	"context"
	"errors"

	"github.com/rcliao/meletao/internal/insight"
	"github.com/rcliao/meletao/internal/model"
)

// PreviewLength is the excerpt length used for the latest journal entry.
const PreviewLength = 160

// TodaySummary is the state behind the daily focus view.
type TodaySummary struct {
	Date            string              `json:"date"`
	LatestEntry     *model.JournalEntry `json:"latest_entry,omitempty"`
	LatestPreview   string              `json:"latest_preview,omitempty"`
	PinnedGoal      *model.Goal         `json:"pinned_goal,omitempty"`
	PinnedPercent   int                 `json:"pinned_percent"`
	FocusLine       string              `json:"focus_line"`
	GratitudeToday  int                 `json:"gratitude_today"`
	GratitudeStreak int                 `json:"gratitude_streak"`
}

// Today assembles the daily summary from all three stores.
func (s *Stores) Today(ctx context.Context) (*TodaySummary, error) {
	now := s.now()
	sum := &TodaySummary{Date: insight.DayKey(now, now.Location())}

	entries, err := s.Journal.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		sum.LatestEntry = &entries[0]
		sum.LatestPreview = insight.Preview(entries[0].Content, PreviewLength)
	}

	pinned, err := s.Goals.GetPinned(ctx)
	switch {
	case err == nil:
		sum.PinnedGoal = &pinned
		sum.PinnedPercent = insight.ProgressPercent(pinned)
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}
	sum.FocusLine = insight.FocusLine(sum.PinnedGoal)

	notes, err := s.Gratitude.List(ctx)
	if err != nil {
		return nil, err
	}
	sum.GratitudeToday = insight.CountOnDay(notes, now)
	sum.GratitudeStreak = insight.ComputeStreak(notes, now)

	return sum, nil
}
