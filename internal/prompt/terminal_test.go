package prompt_test

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"weekly-rollover/internal/prompt"
)

func eventsPrompt() prompt.Prompt {
	return prompt.Prompt{
		Title:   "Events",
		Message: "Pick events",
		Buttons: []string{"Insert", prompt.ButtonCancel},
		Multi:   true,
		Options: []prompt.Option{
			{Label: "Standup", Value: "a", Selected: true},
			{Label: "Planning", Value: "b"},
			{Label: "Retro", Value: "c", Selected: true},
			{Label: "Demo", Value: "d"},
		},
	}
}

func TestTerminalPrompt_Multi(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantValues []string
		cancelled  bool
	}{
		{name: "enter keeps preselected", input: "\n", wantValues: []string{"a", "c"}},
		{name: "list", input: "2, 4\n", wantValues: []string{"b", "d"}},
		{name: "range", input: "1-3\n", wantValues: []string{"a", "b", "c"}},
		{name: "all", input: "all\n", wantValues: []string{"a", "b", "c", "d"}},
		{name: "none", input: "none\n", wantValues: []string{}},
		{name: "cancel", input: "q\n", cancelled: true},
		{name: "eof cancels", input: "", cancelled: true},
		{name: "retry after invalid", input: "9\nx\n2\n", wantValues: []string{"b"}},
		{name: "too many invalid", input: "9\n9\n9\n2\n", cancelled: true},
		{name: "last line without newline", input: "3", wantValues: []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := prompt.NewTerminal(strings.NewReader(tt.input), &out)

			res, err := p.Prompt(context.Background(), eventsPrompt())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Cancelled() != tt.cancelled {
				t.Fatalf("Cancelled() = %v, want %v (result %+v)", res.Cancelled(), tt.cancelled, res)
			}
			if tt.cancelled {
				return
			}
			if res.Button != "Insert" {
				t.Errorf("unexpected button %q", res.Button)
			}
			if !reflect.DeepEqual(res.Values, tt.wantValues) {
				t.Errorf("Values = %v, want %v", res.Values, tt.wantValues)
			}
		})
	}
}

func TestTerminalPrompt_Single(t *testing.T) {
	p := prompt.Prompt{
		Title:   "Calendar",
		Options: []prompt.Option{{Label: "Work", Value: "w"}, {Label: "Home", Value: "h"}},
		Buttons: []string{"Use"},
	}

	var out bytes.Buffer
	res, err := prompt.NewTerminal(strings.NewReader("1,2\nall\n2\n"), &out).Prompt(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cancelled() || !reflect.DeepEqual(res.Values, []string{"h"}) {
		t.Errorf("unexpected result: %+v", res)
	}
	if !strings.Contains(out.String(), "== Calendar ==") || !strings.Contains(out.String(), "2. Home") {
		t.Errorf("unexpected rendering:\n%s", out.String())
	}
}

func TestTerminalPrompt_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := prompt.NewTerminal(strings.NewReader("1\n"), &bytes.Buffer{}).Prompt(ctx, eventsPrompt())
	if err == nil {
		t.Error("expected context error")
	}
}
