package model

import "time"

// SourceKind identifies the backend a calendar comes from.
type SourceKind string

const (
	SourceGoogle SourceKind = "google"
	SourceICal   SourceKind = "ical"
)

// Calendar is a named calendar the user can pick events from.
type Calendar struct {
	ID     string     // Source-specific identifier
	Name   string     // Display name
	Source SourceKind // Backend kind
}

// Event is a read-only calendar event.
type Event struct {
	ID         string
	CalendarID string
	Title      string
	Start      time.Time
	End        time.Time
	AllDay     bool
}
