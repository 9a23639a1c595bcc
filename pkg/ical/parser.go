package ical

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	goical "github.com/emersion/go-ical"
)

const statusCancelled = "CANCELLED"

// ParseEvents decodes every calendar in r and returns the occurrences that
// overlap [start, end), expanding recurrence rules. Cancelled events and
// events without a start are dropped. Results are sorted by start.
func ParseEvents(r io.Reader, start, end time.Time, loc *time.Location) ([]Event, error) {
	if loc == nil {
		loc = time.Local
	}

	decoder := goical.NewDecoder(r)
	events := make([]Event, 0)
	seen := make(map[string]bool)

	for {
		cal, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, ev := range cal.Events() {
			base, ok := parseEvent(ev, loc)
			if !ok || base.Status == statusCancelled {
				continue
			}

			for _, occ := range occurrences(ev, base, start, end, loc) {
				if !overlaps(occ, start, end) {
					continue
				}
				key := occ.UID + "|" + occ.Title + "|" + occ.Start.Format(time.RFC3339)
				if seen[key] {
					continue
				}
				seen[key] = true
				events = append(events, occ)
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events, nil
}

func parseEvent(ev goical.Event, loc *time.Location) (Event, bool) {
	out := Event{}

	if prop := ev.Props.Get(goical.PropUID); prop != nil {
		out.UID = prop.Value
	}
	if summary, err := ev.Props.Text(goical.PropSummary); err == nil {
		out.Title = strings.TrimSpace(summary)
	}
	if prop := ev.Props.Get(goical.PropStatus); prop != nil {
		out.Status = strings.ToUpper(prop.Value)
	}

	startProp := ev.Props.Get(goical.PropDateTimeStart)
	if startProp == nil {
		return Event{}, false
	}
	out.AllDay = startProp.ValueType() == goical.ValueDate

	startTime, err := ev.DateTimeStart(loc)
	if err != nil {
		return Event{}, false
	}
	out.Start = startTime.In(loc)

	endTime, err := ev.DateTimeEnd(loc)
	if err != nil || endTime.IsZero() {
		endTime = out.Start
		if out.AllDay {
			endTime = out.Start.AddDate(0, 0, 1)
		}
	}
	out.End = endTime.In(loc)

	return out, true
}

// occurrences returns base itself, or one copy per recurrence instance when
// the event carries an RRULE.
func occurrences(ev goical.Event, base Event, start, end time.Time, loc *time.Location) []Event {
	set, err := ev.RecurrenceSet(loc)
	if err != nil || set == nil {
		return []Event{base}
	}

	duration := base.End.Sub(base.Start)
	// Widen the lower bound so instances that started before the window
	// but are still running are kept.
	instants := set.Between(start.Add(-duration), end, true)

	out := make([]Event, 0, len(instants))
	for _, at := range instants {
		occ := base
		occ.Start = at.In(loc)
		occ.End = occ.Start.Add(duration)
		out = append(out, occ)
	}
	return out
}

func overlaps(ev Event, start, end time.Time) bool {
	if !ev.Start.Before(end) {
		return false
	}
	if ev.End.After(ev.Start) {
		return ev.End.After(start)
	}
	return !ev.Start.Before(start)
}
