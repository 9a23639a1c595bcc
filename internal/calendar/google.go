package calendar

import (
	"context"
	"time"

	"weekly-rollover/internal/model"
	"weekly-rollover/pkg/gcalendar"
)

// GoogleClient is the subset of gcalendar.Client used here.
type GoogleClient interface {
	ListCalendars(ctx context.Context) ([]gcalendar.CalendarInfo, error)
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
}

type googleSource struct {
	client GoogleClient
}

// NewGoogle adapts a Google Calendar client to Source.
func NewGoogle(client GoogleClient) Source {
	return &googleSource{client: client}
}

func (s *googleSource) Calendars(ctx context.Context) ([]model.Calendar, error) {
	infos, err := s.client.ListCalendars(ctx)
	if err != nil {
		return nil, err
	}

	calendars := make([]model.Calendar, 0, len(infos))
	for _, info := range infos {
		calendars = append(calendars, model.Calendar{
			ID:     info.ID,
			Name:   info.Summary,
			Source: model.SourceGoogle,
		})
	}
	return calendars, nil
}

func (s *googleSource) Events(ctx context.Context, calendarID string, start, end time.Time) ([]model.Event, error) {
	items, err := s.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: calendarID,
		TimeMin:    start,
		TimeMax:    end,
	})
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(items))
	for _, item := range items {
		events = append(events, model.Event{
			ID:         item.ID,
			CalendarID: calendarID,
			Title:      item.Summary,
			Start:      item.StartTime,
			End:        item.EndTime,
			AllDay:     item.AllDay,
		})
	}
	return events, nil
}
