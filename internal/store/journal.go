package store

import (
	"context"
	"time"

	"github.com/rcliao/meletao/internal/model"
)

// JournalStore manages journal entries.
type JournalStore struct {
	c     *records[model.JournalEntry]
	now   func() time.Time
	newID func(time.Time) string
}

// CreateJournalParams holds the fields of a new journal entry.
type CreateJournalParams struct {
	Title   string
	Content string
	Mood    model.Mood
}

// JournalPatch holds the fields to change on an entry; nil leaves a field
// as is.
type JournalPatch struct {
	Title   *string
	Content *string
	Mood    *model.Mood
}

// List returns all entries, newest first.
func (s *JournalStore) List(ctx context.Context) ([]model.JournalEntry, error) {
	return s.c.list(ctx)
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *JournalStore) Get(ctx context.Context, id string) (model.JournalEntry, error) {
	return s.c.get(ctx, id)
}

// Create stores a new entry. Content is stored as given; deciding whether it
// is worth saving is up to the caller.
func (s *JournalStore) Create(ctx context.Context, p CreateJournalParams) (model.JournalEntry, error) {
	now := s.now()
	ts := model.TimestampOf(now)
	return s.c.prepend(ctx, model.JournalEntry{
		ID:        s.newID(now),
		Title:     p.Title,
		Content:   p.Content,
		Mood:      p.Mood,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil)
}

// Update applies patch to the entry and refreshes UpdatedAt.
func (s *JournalStore) Update(ctx context.Context, id string, patch JournalPatch) (model.JournalEntry, error) {
	return s.c.modify(ctx, id, func(items []model.JournalEntry, i int) bool {
		e := &items[i]
		if patch.Title != nil {
			e.Title = *patch.Title
		}
		if patch.Content != nil {
			e.Content = *patch.Content
		}
		if patch.Mood != nil {
			e.Mood = *patch.Mood
		}
		e.UpdatedAt = model.TimestampOf(s.now())
		return true
	})
}

// Delete removes the entry. Deleting a missing id is a no-op.
func (s *JournalStore) Delete(ctx context.Context, id string) error {
	return s.c.remove(ctx, id)
}
