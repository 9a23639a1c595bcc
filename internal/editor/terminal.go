package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"weekly-rollover/internal/model"
	pkgLog "weekly-rollover/pkg/log"
)

const defaultEditor = "vi"

type runFunc func(ctx context.Context, name string, args ...string) error

type terminal struct {
	repo    NoteUpdater
	command []string
	l       pkgLog.Logger
	run     runFunc
}

// NewTerminal opens the note in command (e.g. $EDITOR, "code -w") and saves
// the edited body back through repo.
func NewTerminal(repo NoteUpdater, command string, l pkgLog.Logger) Loader {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{defaultEditor}
	}
	return &terminal{repo: repo, command: fields, l: l, run: runInteractive}
}

func (e *terminal) Load(ctx context.Context, note model.Note) error {
	f, err := os.CreateTemp("", "weekly-*.md")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(note.Content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	args := append(append([]string{}, e.command[1:]...), path)
	if err := e.run(ctx, e.command[0], args...); err != nil {
		return fmt.Errorf("editor %s failed: %w", e.command[0], err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read edited note: %w", err)
	}
	if string(edited) == note.Content {
		e.l.Debugf(ctx, "editor: %s unchanged", note.ID)
		return nil
	}

	note.Content = string(edited)
	if _, err := e.repo.Update(ctx, note); err != nil {
		return fmt.Errorf("failed to save edited note: %w", err)
	}
	e.l.Infof(ctx, "editor: saved %s", note.ID)
	return nil
}

func runInteractive(ctx context.Context, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
