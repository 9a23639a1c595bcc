package prompt

import "context"

const (
	ButtonCancel = "Cancel"
)

// Prompter shows a prompt and blocks until the user answers or dismisses it.
type Prompter interface {
	Prompt(ctx context.Context, p Prompt) (Result, error)
}

// Option is one selectable entry.
type Option struct {
	Label    string
	Value    string
	Selected bool // Preselected
}

// Prompt describes a selection dialog. Buttons[0] confirms; a "Cancel"
// button is implied when none is listed.
type Prompt struct {
	Title   string
	Message string
	Options []Option
	Buttons []string
	Multi   bool // Allow selecting several options
}

// Result is the user's answer.
type Result struct {
	Button string   // Pressed button, ButtonCancel or "" when dismissed
	Values []string // Values of the selected options, in option order
}

// Cancelled reports whether the prompt was dismissed.
func (r Result) Cancelled() bool {
	return r.Button == "" || r.Button == ButtonCancel
}
