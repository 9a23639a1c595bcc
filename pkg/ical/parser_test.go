package ical_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weekly-rollover/pkg/ical"
)

const feed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:standup\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"SUMMARY:Standup\r\n" +
	"DTSTART:20240102T090000Z\r\n" +
	"DTEND:20240102T091500Z\r\n" +
	"RRULE:FREQ=DAILY;COUNT=30\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:offsite\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"SUMMARY:Offsite\r\n" +
	"DTSTART;VALUE=DATE:20240110\r\n" +
	"DTEND;VALUE=DATE:20240111\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:cancelled\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"SUMMARY:Review\r\n" +
	"STATUS:CANCELLED\r\n" +
	"DTSTART:20240109T140000Z\r\n" +
	"DTEND:20240109T150000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:last-week\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"SUMMARY:Retro\r\n" +
	"DTSTART:20240103T140000Z\r\n" +
	"DTEND:20240103T150000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseEvents(t *testing.T) {
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	events, err := ical.ParseEvents(strings.NewReader(feed), start, end, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Seven standup instances plus the offsite.
	if len(events) != 8 {
		t.Fatalf("expected 8 events, got %d: %+v", len(events), events)
	}

	standups := 0
	for _, ev := range events {
		switch ev.Title {
		case "Standup":
			standups++
			if ev.End.Sub(ev.Start) != 15*time.Minute {
				t.Errorf("unexpected standup duration: %v", ev.End.Sub(ev.Start))
			}
		case "Offsite":
			if !ev.AllDay {
				t.Error("expected offsite to be all-day")
			}
		default:
			t.Errorf("unexpected event %q", ev.Title)
		}
	}
	if standups != 7 {
		t.Errorf("expected 7 standups, got %d", standups)
	}

	for i := 1; i < len(events); i++ {
		if events[i].Start.Before(events[i-1].Start) {
			t.Fatalf("events not sorted at %d", i)
		}
	}
}

func TestParseEvents_Invalid(t *testing.T) {
	_, err := ical.ParseEvents(strings.NewReader("BEGIN:VCALENDAR\r\nBROKEN"), time.Now(), time.Now(), time.UTC)
	if err == nil {
		t.Error("expected decode error")
	}
}

func TestClient_FetchEvents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed.ics":
			w.Write([]byte(feed))
		case "/login":
			w.Write([]byte("<!DOCTYPE html><html></html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	client := ical.NewClient(ts.Client())
	ctx := context.Background()
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	events, err := client.FetchEvents(ctx, ts.URL+"/feed.ics", start, start.AddDate(0, 0, 7), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 8 {
		t.Errorf("expected 8 events, got %d", len(events))
	}

	if _, err := client.FetchEvents(ctx, ts.URL+"/login", start, start, time.UTC); err == nil || !strings.Contains(err.Error(), "HTML") {
		t.Errorf("expected HTML error, got %v", err)
	}
	if _, err := client.FetchEvents(ctx, ts.URL+"/missing", start, start, time.UTC); err == nil {
		t.Error("expected status error")
	}
}
