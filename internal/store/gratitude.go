package store

import (
	"context"
	"time"

	"github.com/rcliao/meletao/internal/insight"
	"github.com/rcliao/meletao/internal/model"
)

// GratitudeStore manages gratitude notes.
type GratitudeStore struct {
	c     *records[model.GratitudeEntry]
	now   func() time.Time
	newID func(time.Time) string
}

// CreateGratitudeParams holds the fields of a new gratitude note. An empty
// visibility means private.
type CreateGratitudeParams struct {
	Text       string
	Visibility model.Visibility
}

// List returns all notes, newest first.
func (s *GratitudeStore) List(ctx context.Context) ([]model.GratitudeEntry, error) {
	return s.c.list(ctx)
}

// Get returns the note with the given id, or ErrNotFound.
func (s *GratitudeStore) Get(ctx context.Context, id string) (model.GratitudeEntry, error) {
	return s.c.get(ctx, id)
}

// Create stores a new note.
func (s *GratitudeStore) Create(ctx context.Context, p CreateGratitudeParams) (model.GratitudeEntry, error) {
	now := s.now()
	return s.c.prepend(ctx, model.GratitudeEntry{
		ID:         s.newID(now),
		Text:       p.Text,
		Visibility: p.Visibility,
		CreatedAt:  model.TimestampOf(now),
	}, nil)
}

// Delete removes the note. Deleting a missing id is a no-op.
func (s *GratitudeStore) Delete(ctx context.Context, id string) error {
	return s.c.remove(ctx, id)
}

// CountToday returns how many notes were created during the current local
// day.
func (s *GratitudeStore) CountToday(ctx context.Context) (int, error) {
	entries, err := s.c.list(ctx)
	if err != nil {
		return 0, err
	}
	return insight.CountOnDay(entries, s.now()), nil
}

// HasToday reports whether at least one note was created today.
func (s *GratitudeStore) HasToday(ctx context.Context) (bool, error) {
	n, err := s.CountToday(ctx)
	return n > 0, err
}

// Streak returns the number of consecutive days, ending today, with at
// least one note.
func (s *GratitudeStore) Streak(ctx context.Context) (int, error) {
	entries, err := s.c.list(ctx)
	if err != nil {
		return 0, err
	}
	return insight.ComputeStreak(entries, s.now()), nil
}
