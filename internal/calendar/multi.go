package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weekly-rollover/internal/model"
	pkgLog "weekly-rollover/pkg/log"
)

const idSeparator = ":"

type multiSource struct {
	l       pkgLog.Logger
	sources map[model.SourceKind]Source
	order   []model.SourceKind
}

// NewMulti merges sources into one. Calendar IDs are prefixed with the
// source kind ("google:primary", "ical:Team") so they stay unique.
// A source whose calendar list fails is logged and left out.
func NewMulti(l pkgLog.Logger, sources map[model.SourceKind]Source) Source {
	m := &multiSource{l: l, sources: sources}
	for _, kind := range []model.SourceKind{model.SourceGoogle, model.SourceICal} {
		if _, ok := sources[kind]; ok {
			m.order = append(m.order, kind)
		}
	}
	return m
}

func (m *multiSource) Calendars(ctx context.Context) ([]model.Calendar, error) {
	var all []model.Calendar
	var errs []error
	for _, kind := range m.order {
		calendars, err := m.sources[kind].Calendars(ctx)
		if err != nil {
			m.l.Warnf(ctx, "calendar.multi: %s calendars unavailable: %v", kind, err)
			errs = append(errs, fmt.Errorf("%s calendars: %w", kind, err))
			continue
		}
		for _, c := range calendars {
			c.ID = string(kind) + idSeparator + c.ID
			c.Source = kind
			all = append(all, c)
		}
	}
	if len(errs) > 0 && len(errs) == len(m.order) {
		return nil, errors.Join(errs...)
	}
	return all, nil
}

func (m *multiSource) Events(ctx context.Context, calendarID string, start, end time.Time) ([]model.Event, error) {
	kind, id, ok := strings.Cut(calendarID, idSeparator)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalendar, calendarID)
	}
	src, ok := m.sources[model.SourceKind(kind)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalendar, calendarID)
	}

	events, err := src.Events(ctx, id, start, end)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].CalendarID = calendarID
	}
	return events, nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
