package calendar

import (
	"context"
	"fmt"
	"time"

	"weekly-rollover/internal/model"
	"weekly-rollover/pkg/ical"
)

// FeedFetcher is the subset of ical.Client used here.
type FeedFetcher interface {
	FetchEvents(ctx context.Context, feedURL string, start, end time.Time, loc *time.Location) ([]ical.Event, error)
}

type icalSource struct {
	fetcher FeedFetcher
	feeds   []ical.Feed
	loc     *time.Location
}

// NewICal exposes each configured feed as one calendar. The feed name is
// used as the calendar ID.
func NewICal(fetcher FeedFetcher, feeds []ical.Feed, loc *time.Location) Source {
	return &icalSource{fetcher: fetcher, feeds: feeds, loc: loc}
}

func (s *icalSource) Calendars(ctx context.Context) ([]model.Calendar, error) {
	calendars := make([]model.Calendar, 0, len(s.feeds))
	for _, f := range s.feeds {
		calendars = append(calendars, model.Calendar{ID: f.Name, Name: f.Name, Source: model.SourceICal})
	}
	return calendars, nil
}

func (s *icalSource) Events(ctx context.Context, calendarID string, start, end time.Time) ([]model.Event, error) {
	for _, f := range s.feeds {
		if f.Name != calendarID {
			continue
		}

		items, err := s.fetcher.FetchEvents(ctx, f.URL, start, end, s.loc)
		if err != nil {
			return nil, fmt.Errorf("feed %q: %w", f.Name, err)
		}

		events := make([]model.Event, 0, len(items))
		for _, item := range items {
			events = append(events, model.Event{
				ID:         item.UID,
				CalendarID: calendarID,
				Title:      item.Title,
				Start:      item.Start,
				End:        item.End,
				AllDay:     item.AllDay,
			})
		}
		return events, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCalendar, calendarID)
}
