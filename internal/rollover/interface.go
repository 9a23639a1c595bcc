package rollover

import "context"

// UseCase runs the weekly rollover.
type UseCase interface {
	// Run locates last week's note, composes and stores this week's note,
	// retires the previous one and hands the new note to the editor.
	Run(ctx context.Context, input RunInput) (RunOutput, error)
}
