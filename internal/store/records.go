package store

import (
	"context"
	"sort"

	"github.com/rcliao/meletao/internal/kv"
	"github.com/rcliao/meletao/internal/model"
)

// records is a kv collection of one entity kind, returned newest first and
// normalized on every write.
type records[T any] struct {
	kv        *kv.Collection[T]
	idOf      func(*T) string
	createdOf func(*T) model.Timestamp
	normalize func(*T)
}

func newJournalCollection(b kv.Backend) *records[model.JournalEntry] {
	return &records[model.JournalEntry]{
		kv:        kv.NewCollection[model.JournalEntry](b, JournalKey),
		idOf:      func(e *model.JournalEntry) string { return e.ID },
		createdOf: func(e *model.JournalEntry) model.Timestamp { return e.CreatedAt },
		normalize: (*model.JournalEntry).Normalize,
	}
}

func newGoalCollection(b kv.Backend) *records[model.Goal] {
	return &records[model.Goal]{
		kv:        kv.NewCollection[model.Goal](b, GoalsKey),
		idOf:      func(g *model.Goal) string { return g.ID },
		createdOf: func(g *model.Goal) model.Timestamp { return g.CreatedAt },
		normalize: (*model.Goal).Normalize,
	}
}

func newGratitudeCollection(b kv.Backend) *records[model.GratitudeEntry] {
	return &records[model.GratitudeEntry]{
		kv:        kv.NewCollection[model.GratitudeEntry](b, GratitudeKey),
		idOf:      func(e *model.GratitudeEntry) string { return e.ID },
		createdOf: func(e *model.GratitudeEntry) model.Timestamp { return e.CreatedAt },
		normalize: (*model.GratitudeEntry).Normalize,
	}
}

// sort orders items by creation time, newest first. Ties keep stored order.
func (r *records[T]) sort(items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return r.createdOf(&items[i]) > r.createdOf(&items[j])
	})
}

func (r *records[T]) index(items []T, id string) int {
	for i := range items {
		if r.idOf(&items[i]) == id {
			return i
		}
	}
	return -1
}

func (r *records[T]) list(ctx context.Context) ([]T, error) {
	items, err := r.kv.Load(ctx)
	if err != nil {
		return nil, err
	}
	r.sort(items)
	return items, nil
}

func (r *records[T]) get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := r.list(ctx)
	if err != nil {
		return zero, err
	}
	i := r.index(items, id)
	if i < 0 {
		return zero, ErrNotFound
	}
	return items[i], nil
}

// mutate runs fn over the sorted collection inside one backend update. When
// fn asks for a write every record is normalized before saving.
func (r *records[T]) mutate(ctx context.Context, fn func(items []T) ([]T, bool, error)) error {
	return r.kv.Update(ctx, func(items []T) ([]T, bool, error) {
		r.sort(items)
		next, write, err := fn(items)
		if err != nil || !write {
			return nil, false, err
		}
		for i := range next {
			r.normalize(&next[i])
		}
		return next, true, nil
	})
}

// modify applies fn to the record with the given id. The lookup happens
// before fn runs, so a missing id never mutates anything. fn may also change
// other records; it reports whether anything changed.
func (r *records[T]) modify(ctx context.Context, id string, fn func(items []T, i int) bool) (T, error) {
	var out T
	err := r.mutate(ctx, func(items []T) ([]T, bool, error) {
		i := r.index(items, id)
		if i < 0 {
			return nil, false, ErrNotFound
		}
		changed := fn(items, i)
		if changed {
			r.normalize(&items[i])
		}
		out = items[i]
		return items, changed, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// prepend normalizes item and stores it at the head of the collection.
// before, if set, may adjust the existing records first.
func (r *records[T]) prepend(ctx context.Context, item T, before func(items []T)) (T, error) {
	r.normalize(&item)
	err := r.mutate(ctx, func(items []T) ([]T, bool, error) {
		if before != nil {
			before(items)
		}
		return append([]T{item}, items...), true, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// remove deletes the record with the given id. A missing id is a no-op.
func (r *records[T]) remove(ctx context.Context, id string) error {
	return r.mutate(ctx, func(items []T) ([]T, bool, error) {
		i := r.index(items, id)
		if i < 0 {
			return nil, false, nil
		}
		return append(items[:i], items[i+1:]...), true, nil
	})
}

// merge appends records whose ids are not already stored. Records without an
// id are skipped. It returns how many were added.
func (r *records[T]) merge(ctx context.Context, incoming []T, before func(existing, added []T)) (int, error) {
	added := 0
	err := r.mutate(ctx, func(items []T) ([]T, bool, error) {
		seen := make(map[string]bool, len(items)+len(incoming))
		for i := range items {
			seen[r.idOf(&items[i])] = true
		}
		var fresh []T
		for _, item := range incoming {
			id := r.idOf(&item)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			fresh = append(fresh, item)
		}
		if len(fresh) == 0 {
			return nil, false, nil
		}
		if before != nil {
			before(items, fresh)
		}
		added = len(fresh)
		return append(items, fresh...), true, nil
	})
	return added, err
}
