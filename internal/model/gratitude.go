package model

import "strings"

// Visibility of a gratitude note. It is recorded but not enforced.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// ParseVisibility returns the visibility named by s, defaulting to private.
func ParseVisibility(s string) Visibility {
	if strings.EqualFold(strings.TrimSpace(s), string(VisibilityPublic)) {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// GratitudeEntry is a short gratitude note. Entries are never edited.
type GratitudeEntry struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Visibility Visibility `json:"visibility"`
	CreatedAt  Timestamp  `json:"createdAt"`
}

// Normalize trims the text and defaults the visibility.
func (e *GratitudeEntry) Normalize() {
	e.Text = CleanText(e.Text)
	e.Visibility = ParseVisibility(string(e.Visibility))
}
