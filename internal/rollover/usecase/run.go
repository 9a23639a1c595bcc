package usecase

import (
	"context"
	"fmt"
	"time"

	"weekly-rollover/internal/model"
	"weekly-rollover/internal/note/repository"
	"weekly-rollover/internal/rollover"
	"weekly-rollover/pkg/datemath"
)

// Run performs one weekly rollover.
// The previous note is located before the new note exists, so the new note
// is never its own predecessor. The new note is stored before the previous
// one is retired; a failed create leaves last week untouched.
func (uc *implUseCase) Run(ctx context.Context, input rollover.RunInput) (rollover.RunOutput, error) {
	s := input.Settings
	if err := s.Validate(); err != nil {
		return rollover.RunOutput{}, err
	}

	ref := input.Reference
	if ref.IsZero() {
		ref = uc.now()
	}
	ref = ref.In(uc.dateMath.Location())
	weekStart, weekEnd := uc.dateMath.WeekWindow(ref)
	label := dateLabel(s, ref, weekStart)

	uc.l.Infof(ctx, "Run: week_start=%s label=%s dry_run=%t", weekStart.Format(datemath.DateFormatISO), label, input.DryRun)

	prev, err := uc.locatePrevious(ctx, s)
	if err != nil {
		return rollover.RunOutput{}, err
	}

	out := rollover.RunOutput{
		Retirement: rollover.RetirementNone,
		WeekStart:  weekStart,
		DryRun:     input.DryRun,
	}

	if prev != nil {
		out.Carried = uc.carryOver(prev.Content)
		uc.l.Infof(ctx, "Run: previous note %s carries %d items", prev.ID, len(out.Carried))
	} else {
		uc.l.Infof(ctx, "Run: no previous note found")
	}

	if !input.DryRun {
		out.Events = uc.selectEvents(ctx, s, weekStart, weekEnd)
	}

	body := composeNote(s, label, out.Carried, out.Events, uc.dateMath.Location())

	var retired model.Note
	if prev != nil {
		var completed []string
		if s.CompletedPolicy == rollover.CompletedSummarize {
			completed = uc.checklist.CompletedItems(prev.Content)
		}
		retired, out.Retirement = retire(*prev, s, completed)
		if out.Retirement == rollover.RetirementRetired {
			out.Completed = completed
		}
	}

	if input.DryRun {
		out.Note = model.Note{Content: body, Tags: s.Tags, Pinned: s.PinNew}
		if prev != nil {
			out.Previous = &retired
		}
		return out, nil
	}

	created, err := uc.repo.Create(ctx, repository.CreateOptions{
		Content: body,
		Tags:    s.Tags,
		Pinned:  s.PinNew,
	})
	if err != nil {
		uc.l.Errorf(ctx, "Run: failed to create weekly note: %v", err)
		return rollover.RunOutput{}, fmt.Errorf("%w: create note: %w", rollover.ErrStoreUnavailable, err)
	}
	out.Note = created
	uc.l.Infof(ctx, "Run: created weekly note %s", created.ID)

	if prev != nil {
		saved, err := uc.repo.Update(ctx, retired)
		if err != nil {
			uc.l.Errorf(ctx, "Run: failed to retire previous note %s: %v", prev.ID, err)
			return out, fmt.Errorf("%w: retire note %s: %w", rollover.ErrStoreUnavailable, prev.ID, err)
		}
		out.Previous = &saved
		uc.l.Infof(ctx, "Run: previous note %s %s", prev.ID, out.Retirement)
	}

	if err := uc.editor.Load(ctx, created); err != nil {
		uc.l.Warnf(ctx, "Run: editor failed for note %s: %v", created.ID, err)
		return out, fmt.Errorf("load note %s in editor: %w", created.ID, err)
	}

	return out, nil
}

func dateLabel(s rollover.Settings, ref, weekStart time.Time) string {
	if s.DateLabel == rollover.DateLabelToday {
		return ref.Format(datemath.DateFormatISO)
	}
	return weekStart.Format(datemath.DateFormatISO)
}
