package ical

import "time"

// Feed is a named iCalendar URL.
type Feed struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url" yaml:"url"`
}

// Event is an occurrence parsed from a feed.
type Event struct {
	UID    string
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
	Status string
}
