package usecase

import (
	"time"

	"weekly-rollover/internal/calendar"
	"weekly-rollover/internal/checklist"
	"weekly-rollover/internal/editor"
	"weekly-rollover/internal/note/repository"
	"weekly-rollover/internal/prompt"
	"weekly-rollover/pkg/datemath"
	pkgLog "weekly-rollover/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	repo      repository.NoteRepository
	checklist checklist.Service
	calendar  calendar.Source // nil disables the calendar prompt
	prompter  prompt.Prompter
	editor    editor.Loader
	dateMath  *datemath.Parser
	now       func() time.Time
}

// New creates a new rollover UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.NoteRepository,
	checklistSvc checklist.Service,
	calendarSource calendar.Source,
	prompter prompt.Prompter,
	editorLoader editor.Loader,
	dateMath *datemath.Parser,
) *implUseCase {
	if editorLoader == nil {
		editorLoader = editor.NewNop()
	}
	return &implUseCase{
		l:         l,
		repo:      repo,
		checklist: checklistSvc,
		calendar:  calendarSource,
		prompter:  prompter,
		editor:    editorLoader,
		dateMath:  dateMath,
		now:       time.Now,
	}
}
