package usecase

import (
	"strings"
	"time"

	"weekly-rollover/internal/checklist"
	"weekly-rollover/internal/model"
	"weekly-rollover/internal/rollover"
)

const (
	todosHeader   = "## Todos"
	updatesHeader = "## Updates"
)

// composeNote renders the body of a new weekly note.
func composeNote(s rollover.Settings, label string, carried []string, events []model.Event, loc *time.Location) string {
	var sb strings.Builder

	sb.WriteString(s.TitlePrefix() + " " + label + "\n\n")
	sb.WriteString(todosHeader + "\n\n")

	if len(carried) == 0 {
		sb.WriteString(checklist.CheckboxUnchecked + " \n")
	}
	for _, item := range carried {
		sb.WriteString(item + "\n")
	}

	sb.WriteString("\n" + updatesHeader)
	if s.DatedUpdates {
		sb.WriteString(" " + label)
	}
	sb.WriteString("\n")

	for _, e := range events {
		sb.WriteString("- " + formatEvent(e, loc) + "\n")
	}

	return sb.String()
}

// formatEvent renders "Mon 01/08 09:00-10:00 Standup" or
// "Mon 01/08 (all day) Standup".
func formatEvent(e model.Event, loc *time.Location) string {
	start := e.Start.In(loc)
	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = "(untitled)"
	}

	if e.AllDay {
		return start.Format("Mon 01/02") + " (all day) " + title
	}
	return start.Format("Mon 01/02 15:04") + "-" + e.End.In(loc).Format("15:04") + " " + title
}
