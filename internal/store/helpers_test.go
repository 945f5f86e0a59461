package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/meletao/internal/kv"
)

// testZone is UTC+2 so local-day bucketing differs from UTC.
var testZone = time.FixedZone("TEST", 2*60*60)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 16, 9, 0, 0, 0, testZone)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type seqIDs struct{ n int }

func (s *seqIDs) next(time.Time) string {
	s.n++
	return fmt.Sprintf("id-%03d", s.n)
}

func newTestStores(t *testing.T) (*Stores, *fakeClock, *kv.Memory) {
	t.Helper()
	clock := newFakeClock()
	mem := kv.NewMemory()
	s := New(mem, WithClock(clock.Now), WithIDs((&seqIDs{}).next))
	t.Cleanup(func() { s.Close() })
	return s, clock, mem
}

func newSQLiteStores(t *testing.T) (*Stores, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("open stores: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, clock
}

func ptr[T any](v T) *T { return &v }
