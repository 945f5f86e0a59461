// Package store implements the journal, goal and gratitude stores. Each
// store owns one JSON collection in a kv.Backend; every read re-parses the
// collection and every write replaces it inside one backend update.
package store

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/meletao/internal/kv"
)

// Collection keys in the backend.
const (
	JournalKey   = "meletao_journal_entries_v1"
	GoalsKey     = "meletao_goals_v1"
	GratitudeKey = "meletao_gratitude_entries_v1"
)

// ErrNotFound reports that no record has the requested id.
var ErrNotFound = errors.New("not found")

// Option configures the stores.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func(time.Time) string
}

// WithClock sets the time source. The zone of the returned times is the
// zone days are bucketed in.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDs sets the identifier generator.
func WithIDs(newID func(time.Time) string) Option {
	return func(o *options) { o.newID = newID }
}

// Stores bundles the three entity stores sharing one backend.
type Stores struct {
	Journal   *JournalStore
	Goals     *GoalStore
	Gratitude *GratitudeStore

	backend kv.Backend
	now     func() time.Time
}

// New builds the stores over an existing backend.
func New(b kv.Backend, opts ...Option) *Stores {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.newID == nil {
		o.newID = newULIDSource().next
	}

	return &Stores{
		Journal:   &JournalStore{c: newJournalCollection(b), now: o.now, newID: o.newID},
		Goals:     &GoalStore{c: newGoalCollection(b), now: o.now, newID: o.newID},
		Gratitude: &GratitudeStore{c: newGratitudeCollection(b), now: o.now, newID: o.newID},
		backend:   b,
		now:       o.now,
	}
}

// Open opens the SQLite database at dbPath and builds the stores over it.
func Open(dbPath string, opts ...Option) (*Stores, error) {
	b, err := kv.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	return New(b, opts...), nil
}

// Close closes the backend.
func (s *Stores) Close() error {
	return s.backend.Close()
}

type ulidSource struct {
	mu      sync.Mutex
	entropy *rand.Rand
}

func newULIDSource() *ulidSource {
	return &ulidSource{entropy: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (u *ulidSource) next(now time.Time) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), u.entropy).String()
}
