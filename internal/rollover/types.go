package rollover

import (
	"fmt"
	"strings"
	"time"

	"weekly-rollover/internal/model"
)

// LookupPolicy decides which notes qualify as "previous".
type LookupPolicy string

const (
	LookupTitle        LookupPolicy = "title"          // title prefix only
	LookupTitleAndTags LookupPolicy = "title_and_tags" // title prefix and every tag
)

// CompletedPolicy decides what happens to checked items of the previous note.
type CompletedPolicy string

const (
	CompletedDrop      CompletedPolicy = "drop"
	CompletedSummarize CompletedPolicy = "summarize" // append "Completed item: ..." lines
)

// DateLabel selects the date shown in the title.
type DateLabel string

const (
	DateLabelWeekStart DateLabel = "week_start"
	DateLabelToday     DateLabel = "today"
)

// Retirement is what happened to the previous note.
type Retirement string

const (
	RetirementNone    Retirement = "none"    // no previous note
	RetirementDeleted Retirement = "deleted" // untouched since creation
	RetirementRetired Retirement = "retired" // unpinned, maybe archived
)

// Settings is the per-run configuration.
type Settings struct {
	Title           string   // Text after "# " on the title line
	Tags            []string // Applied to the new note; lookup filter
	PinNew          bool
	ArchivePrevious bool
	LookupPolicy    LookupPolicy
	CompletedPolicy CompletedPolicy
	DateLabel       DateLabel
	DatedUpdates    bool // Suffix the Updates header with the date label
	SkipCalendar    bool
	DefaultCalendar string // Calendar name; empty prompts each run
}

// TitlePrefix is the line start that identifies a weekly note.
func (s Settings) TitlePrefix() string {
	return "# " + strings.TrimSpace(s.Title)
}

// Validate checks enum values and required fields.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: title is empty", ErrInvalidPolicy)
	}
	switch s.LookupPolicy {
	case LookupTitle, LookupTitleAndTags:
	default:
		return fmt.Errorf("%w: lookup policy %q", ErrInvalidPolicy, s.LookupPolicy)
	}
	switch s.CompletedPolicy {
	case CompletedDrop, CompletedSummarize:
	default:
		return fmt.Errorf("%w: completed policy %q", ErrInvalidPolicy, s.CompletedPolicy)
	}
	switch s.DateLabel {
	case DateLabelWeekStart, DateLabelToday:
	default:
		return fmt.Errorf("%w: date label %q", ErrInvalidPolicy, s.DateLabel)
	}
	return nil
}

// RunInput is the input for Run.
type RunInput struct {
	Settings  Settings
	Reference time.Time // Day the rollover is for; zero means now
	DryRun    bool      // Compose only: no store writes, prompts or editor
}

// RunOutput is the result of Run.
type RunOutput struct {
	Note       model.Note    // The new note (unsaved in dry run)
	Previous   *model.Note   // Previous note after retirement, nil if none
	Retirement Retirement    // What happened to Previous
	Carried    []string      // Lines carried into the new note
	Completed  []string      // Completed items summarised on Previous
	Events     []model.Event // Calendar events added to Updates
	WeekStart  time.Time
	DryRun     bool
}
