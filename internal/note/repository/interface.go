package repository

import (
	"context"

	"weekly-rollover/internal/model"
)

// NoteRepository is the note store the rollover reads and mutates.
type NoteRepository interface {
	// Query returns notes in descending creation order.
	Query(ctx context.Context, opt QueryOptions) ([]model.Note, error)
	Get(ctx context.Context, id string) (model.Note, error)
	Create(ctx context.Context, opt CreateOptions) (model.Note, error)
	// Update persists content, tags, pinned, archived and deleted.
	Update(ctx context.Context, note model.Note) (model.Note, error)
}
