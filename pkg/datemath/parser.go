package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormatISO is the layout used for date labels and absolute input.
const DateFormatISO = "2006-01-02"

var (
	inDurationPattern = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)

	weekdays = map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}
)

// Parser converts relative date strings to absolute time.Time values
// and computes week boundaries in a fixed timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// "Local" selects the system timezone.
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse converts a date expression to the start of the matching day.
// Accepted: "", "today", "tomorrow", "yesterday", "in N days|weeks|months",
// "next <weekday>", "last <weekday>", "last week", "next week" and YYYY-MM-DD.
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))

	switch relative {
	case "", "today", "this week":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	case "next week":
		return p.startOfDay(baseTime.AddDate(0, 0, 7)), nil
	case "last week":
		return p.startOfDay(baseTime.AddDate(0, 0, -7)), nil
	}

	if strings.HasPrefix(relative, "in ") {
		return p.parseInDuration(relative, baseTime)
	}

	if strings.HasPrefix(relative, "next ") {
		return p.parseWeekday(strings.TrimPrefix(relative, "next "), baseTime, 1)
	}

	if strings.HasPrefix(relative, "last ") {
		return p.parseWeekday(strings.TrimPrefix(relative, "last "), baseTime, -1)
	}

	if t, err := time.ParseInLocation(DateFormatISO, relative, p.location); err == nil {
		return t, nil
	}

	return baseTime, fmt.Errorf("unrecognised date expression: %q", relative)
}

// WeekStart returns 00:00 of the most recent Monday on or before t.
func (p *Parser) WeekStart(t time.Time) time.Time {
	day := p.startOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// WeekWindow returns the seven-day window [Monday 00:00, next Monday 00:00)
// containing t.
func (p *Parser) WeekWindow(t time.Time) (time.Time, time.Time) {
	start := p.WeekStart(t)
	return start, start.AddDate(0, 0, 7)
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(relative string, baseTime time.Time) (time.Time, error) {
	matches := inDurationPattern.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", relative)
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return baseTime, fmt.Errorf("invalid duration amount: %q", matches[1])
	}
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	default:
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}
}

// parseWeekday handles "next <weekday>" (direction 1) and "last <weekday>"
// (direction -1). The same weekday as baseTime is a full week away.
func (p *Parser) parseWeekday(dayName string, baseTime time.Time, direction int) (time.Time, error) {
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	base := p.startOfDay(baseTime)
	days := int(targetWeekday-base.Weekday()) * direction
	if days <= 0 {
		days += 7
	}

	return base.AddDate(0, 0, days*direction), nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}
