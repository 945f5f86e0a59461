// Package model defines the journal, goal and gratitude record types and the
// per-record normalization each of them carries.
package model

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Timestamp is an instant stored as milliseconds since the Unix epoch.
type Timestamp int64

// TimestampOf converts t to a Timestamp.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time returns ts as a time.Time in the local zone.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(int64(ts))
}

// CleanText trims surrounding whitespace and normalizes to NFC so that
// visually identical input compares equal.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
