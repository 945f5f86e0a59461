package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/meletao/internal/model"
)

func seedStores(t *testing.T, s *Stores) {
	t.Helper()
	ctx := context.Background()
	_, err := s.Journal.Create(ctx, CreateJournalParams{Title: "First", Content: "Lake walk at dawn", Mood: model.MoodCalm})
	require.NoError(t, err)
	_, err = s.Goals.Create(ctx, numericGoal("Swim", 2, 10))
	require.NoError(t, err)
	_, err = s.Goals.Create(ctx, CreateGoalParams{Title: "Learn Go", Description: "finish the tour", Pinned: true})
	require.NoError(t, err)
	_, err = s.Gratitude.Create(ctx, CreateGratitudeParams{Text: "A walk by the lake"})
	require.NoError(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _, _ := newTestStores(t)
	seedStores(t, src)

	snap, err := src.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Len(t, snap.Journal, 1)
	assert.Len(t, snap.Goals, 2)
	assert.Len(t, snap.Gratitude, 1)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	dst, _, _ := newTestStores(t)
	res, err := dst.Import(ctx, decoded)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Journal: 1, Goals: 2, Gratitude: 1}, res)

	goals, err := dst.Goals.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Goals, goals)

	// Importing again adds nothing.
	res, err = dst.Import(ctx, decoded)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{}, res)
}

func TestImportKeepsSinglePin(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStores(t)

	mine, err := s.Goals.Create(ctx, CreateGoalParams{Title: "mine", Pinned: true})
	require.NoError(t, err)

	res, err := s.Import(ctx, Snapshot{Goals: []model.Goal{
		{ID: "x1", Title: "imported one", Pinned: true, CreatedAt: 1},
		{ID: "x2", Title: "imported two", Pinned: true, CreatedAt: 2},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Goals)

	assert.Equal(t, 1, pinnedCount(t, s))
	pinned, err := s.Goals.GetPinned(ctx)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, pinned.ID)
}

func TestImportNormalizesAndSkipsMissingIDs(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStores(t)

	target := -4.0
	res, err := s.Import(ctx, Snapshot{
		Goals: []model.Goal{
			{ID: "g1", Title: " padded ", MeasurementEnabled: true, MeasurementType: model.MeasurementNumeric, Current: 9, Target: &target},
			{Title: "no id"},
		},
		Journal: []model.JournalEntry{{ID: "j1", Content: "x", Mood: "ecstatic"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Goals)
	assert.Equal(t, 1, res.Journal)

	g, err := s.Goals.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "padded", g.Title)
	assert.Nil(t, g.Target)
	assert.Equal(t, 9.0, g.Current)

	j, err := s.Journal.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Empty(t, j.Mood)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStores(t)
	seedStores(t, s)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.DBPath)
	assert.Equal(t, 1, st.JournalEntries)
	assert.Equal(t, 2, st.Goals)
	assert.Equal(t, 1, st.MeasuredGoals)
	assert.NotEmpty(t, st.PinnedGoal)
	assert.Equal(t, 1, st.GratitudeEntries)
	assert.Equal(t, 1, st.GratitudeToday)
}

func TestStatsOnSQLite(t *testing.T) {
	s, _ := newSQLiteStores(t)
	seedStores(t, s)

	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, st.DBPath)
	assert.Equal(t, 2, st.Goals)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStores(t)
	seedStores(t, s)

	results, err := s.Search(ctx, SearchParams{Query: "LAKE"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	kinds := []string{results[0].Kind, results[1].Kind}
	assert.ElementsMatch(t, []string{KindJournal, KindGratitude}, kinds)

	results, err = s.Search(ctx, SearchParams{Query: "lake", Kind: KindGratitude})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "A walk by the lake", results[0].Excerpt)

	results, err = s.Search(ctx, SearchParams{Query: "tour"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, KindGoal, results[0].Kind)
	assert.Equal(t, "Learn Go", results[0].Title)

	results, err = s.Search(ctx, SearchParams{Query: "a", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.Search(ctx, SearchParams{Query: "nothing like this"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchJournalPassage(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStores(t)

	_, err := s.Journal.Create(ctx, CreateJournalParams{
		Title:   "Long day",
		Content: "Work ran late.\n\nOn the way home I stopped by the river.\n\nSlept early.",
	})
	require.NoError(t, err)

	results, err := s.Search(ctx, SearchParams{Query: "river"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "On the way home I stopped by the river.", results[0].Excerpt)
	assert.Equal(t, 3, results[0].Line)

	// A title-only match falls back to the opening of the entry.
	results, err = s.Search(ctx, SearchParams{Query: "long day"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Work ran late. On the way home I stopped by the river. Slept early.", results[0].Excerpt)
	assert.Zero(t, results[0].Line)
}
