package calendar

import (
	"context"
	"errors"
	"time"

	"weekly-rollover/internal/model"
)

// ErrUnknownCalendar is returned for a calendar ID no source owns.
var ErrUnknownCalendar = errors.New("unknown calendar")

// Source lists calendars and their events.
type Source interface {
	Calendars(ctx context.Context) ([]model.Calendar, error)
	// Events returns events of calendarID overlapping [start, end).
	Events(ctx context.Context, calendarID string, start, end time.Time) ([]model.Event, error)
}

// FindByName returns the calendar whose name matches name case-insensitively.
func FindByName(calendars []model.Calendar, name string) (model.Calendar, bool) {
	for _, c := range calendars {
		if equalFold(c.Name, name) {
			return c, true
		}
	}
	return model.Calendar{}, false
}
