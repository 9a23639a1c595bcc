package usecase

import (
	"context"
	"fmt"
	"strings"

	"weekly-rollover/internal/checklist"
	"weekly-rollover/internal/model"
	"weekly-rollover/internal/note/repository"
	"weekly-rollover/internal/rollover"
)

// locatePrevious returns the most recent active note whose body starts with
// the title prefix, or nil when there is none. Every active note is scanned.
func (uc *implUseCase) locatePrevious(ctx context.Context, s rollover.Settings) (*model.Note, error) {
	var opts repository.QueryOptions
	if s.LookupPolicy == rollover.LookupTitleAndTags {
		opts.Tags = s.Tags
	}

	notes, err := uc.repo.Query(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "locatePrevious: query failed: %v", err)
		return nil, fmt.Errorf("%w: query notes: %w", rollover.ErrStoreUnavailable, err)
	}

	prefix := s.TitlePrefix()
	for i := range notes {
		n := notes[i]
		if n.Archived || n.Deleted {
			continue
		}
		if !strings.HasPrefix(n.Content, prefix) {
			continue
		}
		if s.LookupPolicy == rollover.LookupTitleAndTags && !n.HasAllTags(s.Tags) {
			uc.l.Debugf(ctx, "locatePrevious: note %s matches title but lacks tags", n.ID)
			continue
		}
		return &n, nil
	}
	return nil, nil
}

// carryOver returns the unchecked lines of content with their counters
// bumped. Empty placeholder items are dropped.
func (uc *implUseCase) carryOver(content string) []string {
	lines := uc.checklist.ExtractUnfinished(content)
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		if checklist.IsBlank(line) {
			continue
		}
		items = append(items, uc.checklist.IncrementCarryOver(line))
	}
	return items
}
