package insight

import (
	"time"

	"github.com/rcliao/meletao/internal/model"
)

// DayKeyLayout formats a day bucket key.
const DayKeyLayout = "2006-01-02"

// DayKey returns the calendar day of t in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyLayout)
}

// StartOfDay returns midnight of the calendar day containing t, in t's zone.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CountOnDay counts entries created within [start of now's day, start of
// the next day) in now's zone.
func CountOnDay(entries []model.GratitudeEntry, now time.Time) int {
	start := StartOfDay(now)
	y, m, d := start.Date()
	end := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())

	n := 0
	for _, e := range entries {
		t := e.CreatedAt.Time()
		if !t.Before(start) && t.Before(end) {
			n++
		}
	}
	return n
}

// ComputeStreak counts consecutive calendar days, ending today, on which at
// least one entry was created. Days are bucketed in now's zone; the first
// day without an entry ends the streak.
func ComputeStreak(entries []model.GratitudeEntry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	loc := now.Location()
	days := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		days[DayKey(e.CreatedAt.Time(), loc)] = struct{}{}
	}

	// Step by calendar date from noon so DST shifts never skip or repeat a day.
	y, m, d := now.Date()
	streak := 0
	for {
		day := time.Date(y, m, d-streak, 12, 0, 0, 0, loc)
		if _, ok := days[day.Format(DayKeyLayout)]; !ok {
			return streak
		}
		streak++
	}
}
