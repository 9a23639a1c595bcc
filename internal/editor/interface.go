package editor

import (
	"context"

	"weekly-rollover/internal/model"
)

const (
	ModeLink     = "link"
	ModeTerminal = "terminal"
	ModeNone     = "none"
)

// Loader hands a note to the user for further editing.
type Loader interface {
	Load(ctx context.Context, note model.Note) error
}

// NoteUpdater persists edited notes.
type NoteUpdater interface {
	Update(ctx context.Context, note model.Note) (model.Note, error)
}

type nop struct{}

// NewNop returns a Loader that does nothing.
func NewNop() Loader { return nop{} }

func (nop) Load(ctx context.Context, note model.Note) error { return nil }
