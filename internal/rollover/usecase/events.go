package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"weekly-rollover/internal/calendar"
	"weekly-rollover/internal/model"
	"weekly-rollover/internal/prompt"
	"weekly-rollover/internal/rollover"
	"weekly-rollover/pkg/datemath"
)

const (
	buttonSelect = "Select"
	buttonAdd    = "Add"
)

// selectEvents lets the user pick events of [start, end) for the Updates
// section. Any failure or cancellation yields no events.
func (uc *implUseCase) selectEvents(ctx context.Context, s rollover.Settings, start, end time.Time) []model.Event {
	if s.SkipCalendar || uc.calendar == nil || uc.prompter == nil {
		uc.l.Debugf(ctx, "selectEvents: calendar skipped")
		return nil
	}

	cal, ok := uc.pickCalendar(ctx, s)
	if !ok {
		return nil
	}

	events, err := uc.calendar.Events(ctx, cal.ID, start, end)
	if err != nil {
		uc.l.Warnf(ctx, "selectEvents: failed to list events of %s (non-fatal): %v", cal.Name, err)
		return nil
	}
	if len(events) == 0 {
		uc.l.Infof(ctx, "selectEvents: no events in %s this week", cal.Name)
		return nil
	}

	loc := uc.dateMath.Location()
	options := make([]prompt.Option, 0, len(events))
	for i, e := range events {
		options = append(options, prompt.Option{
			Label: formatEvent(e, loc),
			Value: strconv.Itoa(i),
		})
	}

	res, err := uc.prompter.Prompt(ctx, prompt.Prompt{
		Title:   "Calendar events",
		Message: fmt.Sprintf("Events from %s for the week of %s", cal.Name, start.Format(datemath.DateFormatISO)),
		Options: options,
		Buttons: []string{buttonAdd, prompt.ButtonCancel},
		Multi:   true,
	})
	if err != nil {
		uc.l.Warnf(ctx, "selectEvents: event prompt failed (non-fatal): %v", err)
		return nil
	}
	if res.Cancelled() {
		uc.l.Infof(ctx, "selectEvents: event selection cancelled")
		return nil
	}

	selected := make([]model.Event, 0, len(res.Values))
	for _, v := range res.Values {
		i, err := strconv.Atoi(v)
		if err != nil || i < 0 || i >= len(events) {
			continue
		}
		selected = append(selected, events[i])
	}
	uc.l.Infof(ctx, "selectEvents: %d of %d events selected", len(selected), len(events))
	return selected
}

// pickCalendar returns the configured default calendar, or asks the user.
func (uc *implUseCase) pickCalendar(ctx context.Context, s rollover.Settings) (model.Calendar, bool) {
	cals, err := uc.calendar.Calendars(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "pickCalendar: failed to list calendars (non-fatal): %v", err)
		return model.Calendar{}, false
	}
	if len(cals) == 0 {
		uc.l.Warnf(ctx, "pickCalendar: no calendars available")
		return model.Calendar{}, false
	}

	if s.DefaultCalendar != "" {
		if c, ok := calendar.FindByName(cals, s.DefaultCalendar); ok {
			return c, true
		}
		uc.l.Warnf(ctx, "pickCalendar: calendar %q not found, prompting", s.DefaultCalendar)
	}

	options := make([]prompt.Option, 0, len(cals))
	for _, c := range cals {
		label := c.Name
		if c.Source != "" {
			label += " (" + string(c.Source) + ")"
		}
		options = append(options, prompt.Option{Label: label, Value: c.ID})
	}

	res, err := uc.prompter.Prompt(ctx, prompt.Prompt{
		Title:   "Calendar",
		Message: "Pick the calendar to pull events from",
		Options: options,
		Buttons: []string{buttonSelect, prompt.ButtonCancel},
	})
	if err != nil {
		uc.l.Warnf(ctx, "pickCalendar: calendar prompt failed (non-fatal): %v", err)
		return model.Calendar{}, false
	}
	if res.Cancelled() || len(res.Values) == 0 {
		uc.l.Infof(ctx, "pickCalendar: calendar selection cancelled")
		return model.Calendar{}, false
	}

	for _, c := range cals {
		if c.ID == res.Values[0] {
			return c, true
		}
	}
	return model.Calendar{}, false
}
