package checklist_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"weekly-rollover/internal/checklist"
)

func TestIncrementCarryOver(t *testing.T) {
	svc := checklist.New()

	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "no counter", line: "- [ ] Buy milk", want: "- [ ] Buy milk (1)"},
		{name: "existing counter", line: "- [ ] Buy milk (1)", want: "- [ ] Buy milk (2)"},
		{name: "multi digit", line: "- [ ] Buy milk (19)", want: "- [ ] Buy milk (20)"},
		{name: "legacy counter", line: "- [ ] Buy milk (c/o 4)", want: "- [ ] Buy milk (5)"},
		{name: "trailing spaces kept", line: "- [ ] Buy milk (2)  ", want: "- [ ] Buy milk (3)  "},
		{name: "carriage return kept", line: "- [ ] Buy milk\r", want: "- [ ] Buy milk (1)\r"},
		{name: "malformed counter", line: "- [ ] Buy milk (c/o x)", want: "- [ ] Buy milk (c/o x) (1)"},
		{name: "counter not at end", line: "- [ ] Read (2) chapters", want: "- [ ] Read (2) chapters (1)"},
		{name: "overflowing counter", line: "- [ ] a (99999999999999999999)", want: "- [ ] a (99999999999999999999) (1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.IncrementCarryOver(tt.line); got != tt.want {
				t.Errorf("IncrementCarryOver(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestIncrementCarryOver_Repeated(t *testing.T) {
	svc := checklist.New()

	line := "- [ ] Write report"
	for i := 1; i <= 5; i++ {
		line = svc.IncrementCarryOver(line)
		want := "- [ ] Write report (" + string(rune('0'+i)) + ")"
		if line != want {
			t.Fatalf("after %d increments got %q, want %q", i, line, want)
		}
	}
}

func TestExtractUnfinished(t *testing.T) {
	svc := checklist.New()

	body := strings.Join([]string{
		"# This week at work 2024-01-01",
		"",
		"## Todos",
		"",
		"- [ ] Buy milk",
		"- [x] Ship release",
		"  - [ ] indented child",
		"- [ ] Call plumber (2)",
		"- [ ] ",
		"",
		"## Updates",
	}, "\n")

	got := svc.ExtractUnfinished(body)
	want := []string{"- [ ] Buy milk", "- [ ] Call plumber (2)", "- [ ] "}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractUnfinished() = %q, want %q", got, want)
	}

	if got := svc.ExtractUnfinished("# Title\n\n- [x] done\n"); len(got) != 0 {
		t.Errorf("expected no unfinished items, got %q", got)
	}
}

func TestCompletedItems(t *testing.T) {
	svc := checklist.New()

	body := "- [ ] Buy milk\n- [x] Ship release\n- [X] Fix bug (3)\n```\n- [x] in code\n```\n"
	got := svc.CompletedItems(body)
	want := []string{"Ship release", "Fix bug"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompletedItems() = %q, want %q", got, want)
	}
}

func TestParseCheckboxesAndStats(t *testing.T) {
	svc := checklist.New()

	body := "# T\n- [ ] one\n  - [x] two\n```\n- [ ] fenced\n```\n- [x] three"
	boxes := svc.ParseCheckboxes(body)
	if len(boxes) != 3 {
		t.Fatalf("expected 3 checkboxes, got %d", len(boxes))
	}
	if boxes[1].Line != 2 || boxes[1].Indent != "  " || !boxes[1].Checked {
		t.Errorf("unexpected second checkbox: %+v", boxes[1])
	}
	if boxes[2].Line != 6 || boxes[2].Text != "three" {
		t.Errorf("unexpected third checkbox: %+v", boxes[2])
	}

	stats := svc.GetStats(body)
	if stats.Total != 3 || stats.Completed != 2 || stats.Pending != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if empty := svc.GetStats("no boxes"); empty.Total != 0 || empty.Progress != 0 {
		t.Errorf("expected zero stats, got %+v", empty)
	}
}

func TestUpdateCheckbox(t *testing.T) {
	svc := checklist.New()
	ctx := context.Background()

	out, err := svc.UpdateCheckbox(ctx, checklist.UpdateCheckboxInput{
		Content:      "- [ ] Buy milk (1)\n- [ ] Call mom\n",
		CheckboxText: "milk",
		Checked:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Updated || out.Count != 1 {
		t.Fatalf("expected one update, got %+v", out)
	}
	if out.Content != "- [x] Buy milk (1)\n- [ ] Call mom\n" {
		t.Errorf("unexpected content: %q", out.Content)
	}

	out, err = svc.UpdateCheckbox(ctx, checklist.UpdateCheckboxInput{
		Content:      "- [x] Ship\n",
		CheckboxText: "ship",
		Checked:      false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Content != "- [ ] Ship\n" {
		t.Errorf("unexpected content: %q", out.Content)
	}

	if _, err := svc.UpdateCheckbox(ctx, checklist.UpdateCheckboxInput{Content: "- [ ] a", CheckboxText: " "}); err == nil {
		t.Error("expected error for empty search text")
	}
}

func TestIsBlank(t *testing.T) {
	if !checklist.IsBlank("- [ ] ") || !checklist.IsBlank("- [ ]") {
		t.Error("expected placeholder to be blank")
	}
	if checklist.IsBlank("- [ ] x") {
		t.Error("expected item with text to be non-blank")
	}
}
