package model

import "strings"

// Mood is the optional feeling attached to a journal entry.
type Mood string

const (
	MoodCalm     Mood = "Calm"
	MoodAnxious  Mood = "Anxious"
	MoodGrateful Mood = "Grateful"
	MoodHeavy    Mood = "Heavy"
)

// Moods lists the allowed moods in display order.
var Moods = []Mood{MoodCalm, MoodAnxious, MoodGrateful, MoodHeavy}

// ParseMood matches s case-insensitively against the known moods. Unknown or
// empty input yields the empty (absent) mood.
func ParseMood(s string) Mood {
	s = strings.TrimSpace(s)
	for _, m := range Moods {
		if strings.EqualFold(s, string(m)) {
			return m
		}
	}
	return ""
}

// JournalEntry is a free-form journal record.
type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"mood,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// Normalize trims the title and drops an unknown mood. Content is kept as
// given.
func (e *JournalEntry) Normalize() {
	e.Title = CleanText(e.Title)
	e.Mood = ParseMood(string(e.Mood))
}
