package editor

import (
	"context"
	"fmt"
	"io"

	"weekly-rollover/internal/model"
)

type link struct {
	out io.Writer
}

// NewLink prints the note's deep link, or its body when it has none.
func NewLink(out io.Writer) Loader {
	return &link{out: out}
}

func (e *link) Load(ctx context.Context, note model.Note) error {
	if note.URL != "" {
		_, err := fmt.Fprintf(e.out, "Open %s\n", note.URL)
		return err
	}
	_, err := fmt.Fprintf(e.out, "%s\n\n%s", note.ID, note.Content)
	return err
}
