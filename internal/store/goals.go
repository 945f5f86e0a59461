package store

import (
	"context"
	"time"

	"github.com/rcliao/meletao/internal/model"
)

// GoalStore manages goals, their measurement state and the single pin.
//
// Every write passes the touched goals through model.Goal.Normalize, so the
// window, measurement and clamp invariants hold identically after Create,
// Update, Pin, the increments and SetProgress. At most one goal is pinned:
// pinning any goal unpins all others in the same update.
type GoalStore struct {
	c     *records[model.Goal]
	now   func() time.Time
	newID func(time.Time) string
}

// CreateGoalParams holds the fields of a new goal. Zero Year, Target and
// ChecklistTotal mean absent.
type CreateGoalParams struct {
	Title       string
	Description string
	Type        model.GoalType
	Year        int
	StartDate   string
	EndDate     string

	MeasurementEnabled bool
	MeasurementType    model.MeasurementType

	MetricName string
	Current    float64
	Target     float64

	ChecklistDone  int
	ChecklistTotal int

	Pinned bool
}

// GoalPatch holds the fields to change on a goal; nil leaves a field as is.
// A pointer to a zero Year, Target or ChecklistTotal clears that field.
type GoalPatch struct {
	Title       *string
	Description *string
	Type        *model.GoalType
	Year        *int
	StartDate   *string
	EndDate     *string

	MeasurementEnabled *bool
	MeasurementType    *model.MeasurementType

	MetricName *string
	Current    *float64
	Target     *float64

	ChecklistDone  *int
	ChecklistTotal *int

	Pinned *bool
}

// ProgressPatch sets measurement values directly.
type ProgressPatch struct {
	Current        *float64
	Target         *float64
	ChecklistDone  *int
	ChecklistTotal *int
}

// List returns all goals, newest first.
func (s *GoalStore) List(ctx context.Context) ([]model.Goal, error) {
	return s.c.list(ctx)
}

// Get returns the goal with the given id, or ErrNotFound.
func (s *GoalStore) Get(ctx context.Context, id string) (model.Goal, error) {
	return s.c.get(ctx, id)
}

// GetPinned returns the pinned goal, or ErrNotFound when none is pinned.
func (s *GoalStore) GetPinned(ctx context.Context) (model.Goal, error) {
	goals, err := s.c.list(ctx)
	if err != nil {
		return model.Goal{}, err
	}
	for _, g := range goals {
		if g.Pinned {
			return g, nil
		}
	}
	return model.Goal{}, ErrNotFound
}

// Create stores a new goal. A goal created pinned unpins every other goal.
func (s *GoalStore) Create(ctx context.Context, p CreateGoalParams) (model.Goal, error) {
	now := s.now()
	ts := model.TimestampOf(now)
	g := model.Goal{
		ID:                 s.newID(now),
		Title:              p.Title,
		Description:        p.Description,
		Type:               p.Type,
		Year:               optional(p.Year),
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		MeasurementEnabled: p.MeasurementEnabled,
		MeasurementType:    p.MeasurementType,
		MetricName:         p.MetricName,
		Current:            p.Current,
		Target:             optional(p.Target),
		ChecklistDone:      p.ChecklistDone,
		ChecklistTotal:     optional(p.ChecklistTotal),
		Pinned:             p.Pinned,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
	return s.c.prepend(ctx, g, func(items []model.Goal) {
		if g.Pinned {
			unpinAll(items)
		}
	})
}

// Update applies patch to the goal, refreshes UpdatedAt and re-applies the
// goal invariants. Disabling measurement clears every measurement field;
// switching measurement type while enabled clears the fields of the type
// being left. Pinning through the patch unpins every other goal.
func (s *GoalStore) Update(ctx context.Context, id string, patch GoalPatch) (model.Goal, error) {
	return s.c.modify(ctx, id, func(items []model.Goal, i int) bool {
		g := &items[i]
		left := g.MeasurementType
		patch.Apply(g)
		if g.MeasurementEnabled && g.MeasurementType != left {
			clearMode(g, left)
		}
		if g.Pinned && patch.Pinned != nil {
			unpinAll(items)
			g.Pinned = true
		}
		g.UpdatedAt = model.TimestampOf(s.now())
		return true
	})
}

// Delete removes the goal. Deleting a missing id is a no-op.
func (s *GoalStore) Delete(ctx context.Context, id string) error {
	return s.c.remove(ctx, id)
}

// Pin makes the goal the only pinned goal. A missing id returns ErrNotFound
// and leaves every other pin in place.
func (s *GoalStore) Pin(ctx context.Context, id string) (model.Goal, error) {
	return s.c.modify(ctx, id, func(items []model.Goal, i int) bool {
		unpinAll(items)
		items[i].Pinned = true
		items[i].UpdatedAt = model.TimestampOf(s.now())
		return true
	})
}

// Unpin clears the goal's pin. An unpinned goal is returned unchanged.
func (s *GoalStore) Unpin(ctx context.Context, id string) (model.Goal, error) {
	return s.c.modify(ctx, id, func(items []model.Goal, i int) bool {
		if !items[i].Pinned {
			return false
		}
		items[i].Pinned = false
		items[i].UpdatedAt = model.TimestampOf(s.now())
		return true
	})
}

// UnpinAll clears every pin, refreshing UpdatedAt on the goals it changes.
// Nothing is written when no goal was pinned.
func (s *GoalStore) UnpinAll(ctx context.Context) error {
	return s.c.mutate(ctx, func(items []model.Goal) ([]model.Goal, bool, error) {
		ts := model.TimestampOf(s.now())
		changed := false
		for i := range items {
			if items[i].Pinned {
				items[i].Pinned = false
				items[i].UpdatedAt = ts
				changed = true
			}
		}
		return items, changed, nil
	})
}

// IncrementNumeric adds delta to the goal's current value, clamped to
// [0, target]. A goal not measured numerically is returned unchanged.
func (s *GoalStore) IncrementNumeric(ctx context.Context, id string, delta float64) (model.Goal, error) {
	return s.c.modify(ctx, id, func(items []model.Goal, i int) bool {
		g := &items[i]
		if !g.Numeric() {
			return false
		}
		g.Current += delta
		g.UpdatedAt = model.TimestampOf(s.now())
		return true
	})
}

// IncrementChecklist adds delta to the goal's done count, clamped to
// [0, total]. A goal not measured by checklist is returned unchanged.
func (s *GoalStore) IncrementChecklist(ctx context.Context, id string, delta int) (model.Goal, error) {
	return s.c.modify(ctx, id, func(items []model.Goal, i int) bool {
		g := &items[i]
		if !g.Checklist() {
			return false
		}
		g.ChecklistDone += delta
		g.UpdatedAt = model.TimestampOf(s.now())
		return true
	})
}

// SetProgress overwrites measurement values and re-clamps them. Values for
// the inactive measurement type are discarded.
func (s *GoalStore) SetProgress(ctx context.Context, id string, p ProgressPatch) (model.Goal, error) {
	return s.c.modify(ctx, id, func(items []model.Goal, i int) bool {
		g := &items[i]
		if p.Current != nil {
			g.Current = *p.Current
		}
		if p.Target != nil {
			g.Target = optional(*p.Target)
		}
		if p.ChecklistDone != nil {
			g.ChecklistDone = *p.ChecklistDone
		}
		if p.ChecklistTotal != nil {
			g.ChecklistTotal = optional(*p.ChecklistTotal)
		}
		g.UpdatedAt = model.TimestampOf(s.now())
		return true
	})
}

// Apply copies the set fields of p onto g without normalizing it.
func (p GoalPatch) Apply(g *model.Goal) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Type != nil {
		g.Type = *p.Type
	}
	if p.Year != nil {
		g.Year = optional(*p.Year)
	}
	if p.StartDate != nil {
		g.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		g.EndDate = *p.EndDate
	}
	if p.MeasurementEnabled != nil {
		g.MeasurementEnabled = *p.MeasurementEnabled
	}
	if p.MeasurementType != nil {
		g.MeasurementType = model.ParseMeasurementType(string(*p.MeasurementType))
	}
	if p.MetricName != nil {
		g.MetricName = *p.MetricName
	}
	if p.Current != nil {
		g.Current = *p.Current
	}
	if p.Target != nil {
		g.Target = optional(*p.Target)
	}
	if p.ChecklistDone != nil {
		g.ChecklistDone = *p.ChecklistDone
	}
	if p.ChecklistTotal != nil {
		g.ChecklistTotal = optional(*p.ChecklistTotal)
	}
	if p.Pinned != nil {
		g.Pinned = *p.Pinned
	}
}

// clearMode resets the fields owned by measurement type m.
func clearMode(g *model.Goal, m model.MeasurementType) {
	switch m {
	case model.MeasurementNumeric:
		g.MetricName, g.Current, g.Target = "", 0, nil
	case model.MeasurementCheckbox:
		g.ChecklistDone, g.ChecklistTotal = 0, nil
	}
}

func unpinAll(goals []model.Goal) {
	for i := range goals {
		goals[i].Pinned = false
	}
}

// optional maps a zero value to nil.
func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
