package store

import (
	"context"

	"github.com/rcliao/meletao/internal/model"
)

// SnapshotVersion is the version written into exported snapshots.
const SnapshotVersion = 1

// Snapshot is every stored record, as produced by Export.
type Snapshot struct {
	Version    int                    `json:"version"`
	ExportedAt model.Timestamp        `json:"exportedAt"`
	Journal    []model.JournalEntry   `json:"journal"`
	Goals      []model.Goal           `json:"goals"`
	Gratitude  []model.GratitudeEntry `json:"gratitude"`
}

// ImportResult counts the records added by Import.
type ImportResult struct {
	Journal   int `json:"journal"`
	Goals     int `json:"goals"`
	Gratitude int `json:"gratitude"`
}

// Export returns all records, newest first per collection.
func (s *Stores) Export(ctx context.Context) (*Snapshot, error) {
	journal, err := s.Journal.List(ctx)
	if err != nil {
		return nil, err
	}
	goals, err := s.Goals.List(ctx)
	if err != nil {
		return nil, err
	}
	gratitude, err := s.Gratitude.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: model.TimestampOf(s.now()),
		Journal:    journal,
		Goals:      goals,
		Gratitude:  gratitude,
	}, nil
}

// Import adds the snapshot's records. Records whose id is already stored, or
// that have no id, are skipped. Imported records are normalized, and an
// imported pin is dropped when a goal is already pinned.
func (s *Stores) Import(ctx context.Context, snap Snapshot) (ImportResult, error) {
	var res ImportResult
	var err error

	if res.Journal, err = s.Journal.c.merge(ctx, snap.Journal, nil); err != nil {
		return res, err
	}
	if res.Goals, err = s.Goals.c.merge(ctx, snap.Goals, keepSinglePin); err != nil {
		return res, err
	}
	if res.Gratitude, err = s.Gratitude.c.merge(ctx, snap.Gratitude, nil); err != nil {
		return res, err
	}
	return res, nil
}

func keepSinglePin(existing, added []model.Goal) {
	pinned := false
	for _, g := range existing {
		if g.Pinned {
			pinned = true
			break
		}
	}
	for i := range added {
		if !added[i].Pinned {
			continue
		}
		if pinned {
			added[i].Pinned = false
		}
		pinned = true
	}
}
