package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.File != "" {
		t.Errorf("File = %q, want none", cfg.File)
	}
	if cfg.Rollover.Title != "This week at work" {
		t.Errorf("Title = %q", cfg.Rollover.Title)
	}
	if len(cfg.Rollover.Tags) != 2 || cfg.Rollover.Tags[0] != "work" || cfg.Rollover.Tags[1] != "weekly" {
		t.Errorf("Tags = %v", cfg.Rollover.Tags)
	}
	if !cfg.Rollover.ArchivePrevious || !cfg.Rollover.PinNew || cfg.Rollover.DatedUpdates {
		t.Errorf("unexpected rollover flags: %+v", cfg.Rollover)
	}
	if cfg.Rollover.LookupPolicy != "title_and_tags" || cfg.Rollover.CompletedPolicy != "summarize" || cfg.Rollover.DateLabel != "week_start" {
		t.Errorf("unexpected policies: %+v", cfg.Rollover)
	}
	if cfg.Store.Backend != BackendSQLite || cfg.Store.SQLite.Path != "./data/notes.db" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Calendar.Timezone != "Local" || cfg.Calendar.Skip {
		t.Errorf("Calendar = %+v", cfg.Calendar)
	}
	if cfg.Editor.Mode != "terminal" {
		t.Errorf("Editor.Mode = %q", cfg.Editor.Mode)
	}
	if cfg.Logger.Level != "info" || cfg.Logger.Mode != "production" {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
rollover:
  title: Sprint notes
  tags: [team]
  lookup_policy: title
  completed_policy: drop
  archive_previous: false
calendar:
  skip: true
  default_name: Work
  ical:
    feeds:
      - name: Team
        url: https://example.com/team.ics
store:
  backend: memos
memos:
  url: http://memos.local:5230
  access_token: secret
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.File != path {
		t.Errorf("File = %q", cfg.File)
	}
	if cfg.Rollover.Title != "Sprint notes" || cfg.Rollover.LookupPolicy != "title" || cfg.Rollover.CompletedPolicy != "drop" {
		t.Errorf("Rollover = %+v", cfg.Rollover)
	}
	if cfg.Rollover.ArchivePrevious {
		t.Error("archive_previous should be false")
	}
	if len(cfg.Rollover.Tags) != 1 || cfg.Rollover.Tags[0] != "team" {
		t.Errorf("Tags = %v", cfg.Rollover.Tags)
	}
	if !cfg.Calendar.Skip || cfg.Calendar.DefaultName != "Work" {
		t.Errorf("Calendar = %+v", cfg.Calendar)
	}
	if len(cfg.Calendar.ICal.Feeds) != 1 || cfg.Calendar.ICal.Feeds[0].Name != "Team" || cfg.Calendar.ICal.Feeds[0].URL != "https://example.com/team.ics" {
		t.Errorf("Feeds = %+v", cfg.Calendar.ICal.Feeds)
	}
	if cfg.Memos.ExternalURL != "http://memos.local:5230" {
		t.Errorf("ExternalURL should default to URL, got %q", cfg.Memos.ExternalURL)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "rollover:\n  title: From file\n")
	t.Setenv("WEEKLY_ROLLOVER_TITLE", "From env")
	t.Setenv("WEEKLY_ROLLOVER_TAGS", "a, b")
	t.Setenv("WEEKLY_CALENDAR_SKIP", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Rollover.Title != "From env" {
		t.Errorf("Title = %q", cfg.Rollover.Title)
	}
	if len(cfg.Rollover.Tags) != 2 || cfg.Rollover.Tags[1] != "b" {
		t.Errorf("Tags = %v", cfg.Rollover.Tags)
	}
	if !cfg.Calendar.Skip {
		t.Error("calendar.skip should come from env")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown backend", body: "store:\n  backend: redis\n"},
		{name: "memos without token", body: "store:\n  backend: memos\nmemos:\n  url: http://x\n"},
		{name: "feed without url", body: "calendar:\n  ical:\n    feeds:\n      - name: Team\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}
