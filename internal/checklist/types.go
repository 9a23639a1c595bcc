package checklist

// Checkbox is one "- [ ]" or "- [x]" line of a note body.
type Checkbox struct {
	Line    int    // Index into the note's lines
	Indent  string // Whitespace before the list marker
	Checked bool
	Text    string // Item text, counter included
	RawLine string
}

// ChecklistStats summarises the todo items of one note for `notes list`.
type ChecklistStats struct {
	Total     int
	Completed int     // Items marked [x]
	Pending   int     // Items still open, shown in the OPEN column
	Progress  float64 // Completed share of Total, 0-100
}

// UpdateCheckboxInput selects the items to toggle by substring of their text.
type UpdateCheckboxInput struct {
	Content      string
	CheckboxText string
	Checked      bool // Target state
}

// UpdateCheckboxOutput carries the rewritten body.
type UpdateCheckboxOutput struct {
	Content string
	Updated bool
	Count   int // Items toggled
}
