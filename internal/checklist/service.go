package checklist

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	CheckboxUnchecked = `- [ ]`
	CheckboxChecked   = `- [x]`
	// Regex pattern: captures indent, checkbox state, and text
	// Example: "  - [x] Task name" → groups: ["  ", "x", "Task name"]
	CheckboxPattern = `^(\s*)- \[([ xX])\] (.+)$`
	// Trailing carry-over counter: canonical "(3)" or legacy "(c/o 3)",
	// optionally followed by whitespace.
	CarryOverPattern = `\((?:c/o )?(\d+)\)(\s*)$`

	codeFence = "```"
)

type Service interface {
	// ParseCheckboxes extracts all checkboxes from markdown content
	ParseCheckboxes(content string) []Checkbox

	// GetStats calculates checklist statistics
	GetStats(content string) ChecklistStats

	// UpdateCheckbox updates checkbox state by text match
	UpdateCheckbox(ctx context.Context, input UpdateCheckboxInput) (UpdateCheckboxOutput, error)

	// ExtractUnfinished returns the raw lines that start with the unchecked marker
	ExtractUnfinished(content string) []string

	// CompletedItems returns the text of every checked checkbox
	CompletedItems(content string) []string

	// IncrementCarryOver bumps the trailing carry-over counter of a line
	IncrementCarryOver(line string) string
}

type service struct {
	pattern   *regexp.Regexp
	carryOver *regexp.Regexp
}

func New() Service {
	return &service{
		pattern:   regexp.MustCompile(CheckboxPattern),
		carryOver: regexp.MustCompile(CarryOverPattern),
	}
}

// ParseCheckboxes extracts all checkboxes from markdown.
// Lines inside fenced code blocks are ignored.
func (s *service) ParseCheckboxes(content string) []Checkbox {
	lines := strings.Split(content, "\n")
	checkboxes := make([]Checkbox, 0)

	inFence := false
	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		if strings.HasPrefix(strings.TrimSpace(line), codeFence) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		match := s.pattern.FindStringSubmatch(line)
		if len(match) != 4 {
			continue
		}

		checkboxes = append(checkboxes, Checkbox{
			Line:    i,
			Indent:  match[1],
			Checked: strings.ToLower(match[2]) == "x",
			Text:    strings.TrimSpace(match[3]),
			RawLine: raw,
		})
	}

	return checkboxes
}

// GetStats calculates checklist statistics
func (s *service) GetStats(content string) ChecklistStats {
	checkboxes := s.ParseCheckboxes(content)
	total := len(checkboxes)

	if total == 0 {
		return ChecklistStats{}
	}

	completed := 0
	for _, cb := range checkboxes {
		if cb.Checked {
			completed++
		}
	}

	return ChecklistStats{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
		Progress:  float64(completed) / float64(total) * 100,
	}
}

// UpdateCheckbox updates checkbox state by text match (partial match)
func (s *service) UpdateCheckbox(ctx context.Context, input UpdateCheckboxInput) (UpdateCheckboxOutput, error) {
	if input.Content == "" {
		return UpdateCheckboxOutput{Content: input.Content, Updated: false}, nil
	}

	searchText := strings.ToLower(strings.TrimSpace(input.CheckboxText))
	if searchText == "" {
		return UpdateCheckboxOutput{}, fmt.Errorf("checkbox text is empty")
	}

	lines := strings.Split(input.Content, "\n")
	count := 0

	for i, line := range lines {
		if !strings.Contains(line, "- [") {
			continue
		}

		trimmed := strings.TrimRight(line, "\r")
		matches := s.pattern.FindStringSubmatch(trimmed)
		if len(matches) != 4 {
			continue
		}

		if !strings.Contains(strings.ToLower(matches[3]), searchText) {
			continue
		}

		indent := matches[1]
		text := matches[3]
		state := CheckboxUnchecked
		if input.Checked {
			state = CheckboxChecked
		}
		lines[i] = indent + state + " " + text + line[len(trimmed):]
		count++
	}

	return UpdateCheckboxOutput{
		Content: strings.Join(lines, "\n"),
		Updated: count > 0,
		Count:   count,
	}, nil
}

// ExtractUnfinished returns every line beginning with "- [ ]", in order.
// Indented sub-items are not included.
func (s *service) ExtractUnfinished(content string) []string {
	items := make([]string, 0)
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, CheckboxUnchecked) {
			items = append(items, line)
		}
	}
	return items
}

// CompletedItems returns the text of each checked checkbox with any
// carry-over counter removed.
func (s *service) CompletedItems(content string) []string {
	items := make([]string, 0)
	for _, cb := range s.ParseCheckboxes(content) {
		if !cb.Checked {
			continue
		}
		text := strings.TrimSpace(s.carryOver.ReplaceAllString(cb.Text, ""))
		if text == "" {
			continue
		}
		items = append(items, text)
	}
	return items
}

// IncrementCarryOver increments a trailing counter or appends " (1)".
// Trailing whitespace stays after the counter. A counter that does not
// parse is treated as absent.
func (s *service) IncrementCarryOver(line string) string {
	if loc := s.carryOver.FindStringSubmatchIndex(line); loc != nil {
		n, err := strconv.Atoi(line[loc[2]:loc[3]])
		if err == nil && n < int(^uint(0)>>1) {
			return line[:loc[0]] + formatCounter(n+1) + line[loc[4]:loc[5]]
		}
	}

	body := strings.TrimRightFunc(line, unicode.IsSpace)
	trailing := line[len(body):]
	return body + " " + formatCounter(1) + trailing
}

// IsBlank reports whether an unchecked line carries no text.
func IsBlank(line string) bool {
	return strings.TrimSpace(strings.TrimPrefix(line, CheckboxUnchecked)) == ""
}

func formatCounter(n int) string {
	return "(" + strconv.Itoa(n) + ")"
}
