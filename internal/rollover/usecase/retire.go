package usecase

import (
	"strings"

	"weekly-rollover/internal/model"
	"weekly-rollover/internal/rollover"
)

const completedPrefix = "Completed item: "

// retire applies the lifecycle transition to a copy of prev.
// Untouched notes are only marked deleted. Modified notes are unpinned,
// archived when configured, and get one summary line per completed item.
func retire(prev model.Note, s rollover.Settings, completed []string) (model.Note, rollover.Retirement) {
	if !prev.Modified() {
		prev.Deleted = true
		return prev, rollover.RetirementDeleted
	}

	prev.Pinned = false
	if s.ArchivePrevious {
		prev.Archived = true
	}
	if s.CompletedPolicy == rollover.CompletedSummarize && len(completed) > 0 {
		prev.Content = appendSummary(prev.Content, completed)
	}
	return prev, rollover.RetirementRetired
}

func appendSummary(content string, completed []string) string {
	var sb strings.Builder
	sb.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	for _, item := range completed {
		sb.WriteString(completedPrefix + item + "\n")
	}
	return sb.String()
}
