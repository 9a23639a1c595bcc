package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxAttempts = 3

var errInvalidSelection = errors.New("invalid selection")

type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a line-based prompt on in/out.
//
// Input grammar: "1,3", "2-4", "all", "none", empty line keeps the
// preselected options, "q" cancels. End of input cancels.
func NewTerminal(in io.Reader, out io.Writer) Prompter {
	return &terminal{in: bufio.NewReader(in), out: out}
}

func (t *terminal) Prompt(ctx context.Context, p Prompt) (Result, error) {
	confirm := "OK"
	if len(p.Buttons) > 0 {
		confirm = p.Buttons[0]
	}

	t.render(p, confirm)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		fmt.Fprint(t.out, "> ")
		line, err := t.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return Result{Button: ButtonCancel}, nil
			}
			return Result{}, fmt.Errorf("failed to read answer: %w", err)
		}

		answer := strings.ToLower(strings.TrimSpace(line))
		if answer == "q" || answer == "quit" || answer == "cancel" {
			return Result{Button: ButtonCancel}, nil
		}

		selected, selErr := parseSelection(answer, p)
		if selErr != nil {
			fmt.Fprintf(t.out, "%v, try again\n", selErr)
			continue
		}

		values := make([]string, 0, len(selected))
		for i, opt := range p.Options {
			if selected[i] {
				values = append(values, opt.Value)
			}
		}
		return Result{Button: confirm, Values: values}, nil
	}

	return Result{Button: ButtonCancel}, nil
}

func (t *terminal) render(p Prompt, confirm string) {
	if p.Title != "" {
		fmt.Fprintf(t.out, "== %s ==\n", p.Title)
	}
	if p.Message != "" {
		fmt.Fprintln(t.out, p.Message)
	}
	for i, opt := range p.Options {
		mark := " "
		if opt.Selected {
			mark = "x"
		}
		fmt.Fprintf(t.out, "  [%s] %d. %s\n", mark, i+1, opt.Label)
	}

	if p.Multi {
		fmt.Fprintf(t.out, "Select for %q: numbers (1,3 or 2-4), all, none; Enter keeps [x]; q cancels\n", confirm)
	} else {
		fmt.Fprintf(t.out, "Pick one number for %q; Enter keeps [x]; q cancels\n", confirm)
	}
}

func parseSelection(answer string, p Prompt) (map[int]bool, error) {
	selected := make(map[int]bool)

	switch answer {
	case "":
		for i, opt := range p.Options {
			if opt.Selected {
				selected[i] = true
			}
		}
		if !p.Multi && len(selected) != 1 {
			return nil, fmt.Errorf("%w: pick exactly one", errInvalidSelection)
		}
		return selected, nil
	case "all":
		if !p.Multi {
			return nil, fmt.Errorf("%w: pick exactly one", errInvalidSelection)
		}
		for i := range p.Options {
			selected[i] = true
		}
		return selected, nil
	case "none":
		if !p.Multi {
			return nil, fmt.Errorf("%w: pick exactly one", errInvalidSelection)
		}
		return selected, nil
	}

	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errInvalidSelection, part)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("%w: %q", errInvalidSelection, part)
			}
		}
		if from < 1 || to > len(p.Options) || from > to {
			return nil, fmt.Errorf("%w: %q out of range 1-%d", errInvalidSelection, part, len(p.Options))
		}
		for i := from; i <= to; i++ {
			selected[i-1] = true
		}
	}

	if !p.Multi && len(selected) != 1 {
		return nil, fmt.Errorf("%w: pick exactly one", errInvalidSelection)
	}
	return selected, nil
}
