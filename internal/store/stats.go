package store

import (
	"context"
	"errors"

	"github.com/rcliao/meletao/internal/insight"
)

// Stats holds record counts and database details.
type Stats struct {
	DBPath           string `json:"db_path,omitempty"`
	DBSizeBytes      int64  `json:"db_size_bytes,omitempty"`
	JournalEntries   int    `json:"journal_entries"`
	Goals            int    `json:"goals"`
	MeasuredGoals    int    `json:"measured_goals"`
	PinnedGoal       string `json:"pinned_goal,omitempty"`
	GratitudeEntries int    `json:"gratitude_entries"`
	GratitudeToday   int    `json:"gratitude_today"`
}

type fileBackend interface {
	Path() string
	SizeBytes() int64
}

// Stats returns record counts. DB details are filled in for file-backed
// stores.
func (s *Stores) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{}
	if fb, ok := s.backend.(fileBackend); ok {
		st.DBPath = fb.Path()
		st.DBSizeBytes = fb.SizeBytes()
	}

	journal, err := s.Journal.List(ctx)
	if err != nil {
		return nil, err
	}
	st.JournalEntries = len(journal)

	goals, err := s.Goals.List(ctx)
	if err != nil {
		return nil, err
	}
	st.Goals = len(goals)
	for _, g := range goals {
		if g.MeasurementEnabled {
			st.MeasuredGoals++
		}
	}
	pinned, err := s.Goals.GetPinned(ctx)
	switch {
	case err == nil:
		st.PinnedGoal = pinned.ID
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	notes, err := s.Gratitude.List(ctx)
	if err != nil {
		return nil, err
	}
	st.GratitudeEntries = len(notes)
	st.GratitudeToday = insight.CountOnDay(notes, s.now())

	return st, nil
}
