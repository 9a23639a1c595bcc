package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"weekly-rollover/config"
	"weekly-rollover/internal/calendar"
	"weekly-rollover/internal/editor"
	"weekly-rollover/internal/model"
	"weekly-rollover/internal/note/repository"
	memosRepo "weekly-rollover/internal/note/repository/memos"
	sqliteRepo "weekly-rollover/internal/note/repository/sqlite"
	"weekly-rollover/internal/rollover"
	"weekly-rollover/pkg/datemath"
	"weekly-rollover/pkg/gcalendar"
	"weekly-rollover/pkg/ical"
	"weekly-rollover/pkg/log"
)

// app holds the dependencies shared by subcommands.
type app struct {
	cfg      *config.Config
	l        log.Logger
	repo     repository.NoteRepository
	dateMath *datemath.Parser
	db       *sql.DB
}

func (o *rootOptions) open(ctx context.Context) (*app, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Logger.Level
	if o.verbose {
		level = "debug"
	}
	logger := log.Init(log.ZapConfig{
		Level:        level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	if cfg.File != "" {
		logger.Debugf(ctx, "Config file: %s", cfg.File)
	}

	dateMath, err := datemath.NewParser(cfg.Calendar.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Calendar.Timezone, err)
		dateMath, _ = datemath.NewParser("UTC")
	}

	a := &app{cfg: cfg, l: logger, dateMath: dateMath}

	switch cfg.Store.Backend {
	case config.BackendMemos:
		client := memosRepo.NewClient(cfg.Memos.URL, cfg.Memos.AccessToken, cfg.Memos.RatePerSec)
		a.repo = memosRepo.New(client, cfg.Memos.ExternalURL, logger)
		logger.Debugf(ctx, "Note store: memos %s", cfg.Memos.URL)
	default:
		db, err := sqliteRepo.Open(ctx, cfg.Store.SQLite.Path)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.repo = sqliteRepo.New(db, logger)
		logger.Debugf(ctx, "Note store: sqlite %s", cfg.Store.SQLite.Path)
	}

	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

func (a *app) settings() rollover.Settings {
	r := a.cfg.Rollover
	return rollover.Settings{
		Title:           r.Title,
		Tags:            r.Tags,
		PinNew:          r.PinNew,
		ArchivePrevious: r.ArchivePrevious,
		LookupPolicy:    rollover.LookupPolicy(r.LookupPolicy),
		CompletedPolicy: rollover.CompletedPolicy(r.CompletedPolicy),
		DateLabel:       rollover.DateLabel(r.DateLabel),
		DatedUpdates:    r.DatedUpdates,
		SkipCalendar:    a.cfg.Calendar.Skip,
		DefaultCalendar: a.cfg.Calendar.DefaultName,
	}
}

// calendarSource merges the configured calendar backends. It returns nil
// when none is usable.
func (a *app) calendarSource(ctx context.Context) calendar.Source {
	sources := make(map[model.SourceKind]calendar.Source)

	g := a.cfg.Calendar.Google
	if g.CredentialsPath != "" {
		client, err := gcalendar.NewClientFromCredentialsFile(ctx, g.CredentialsPath, g.TokenPath)
		if err != nil {
			a.l.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			a.l.Warn(ctx, "Run `weekly gcal-auth` to generate a token")
		} else {
			sources[model.SourceGoogle] = calendar.NewGoogle(client)
		}
	}

	if feeds := a.cfg.Calendar.ICal.Feeds; len(feeds) > 0 {
		sources[model.SourceICal] = calendar.NewICal(ical.NewClient(nil), feeds, a.dateMath.Location())
	}

	if len(sources) == 0 {
		a.l.Debug(ctx, "No calendar source configured")
		return nil
	}
	return calendar.NewMulti(a.l, sources)
}

func (a *app) editor(out io.Writer) editor.Loader {
	switch a.cfg.Editor.Mode {
	case editor.ModeLink:
		return editor.NewLink(out)
	case editor.ModeNone:
		return editor.NewNop()
	default:
		command := a.cfg.Editor.Command
		if command == "" {
			command = os.Getenv("EDITOR")
		}
		return editor.NewTerminal(a.repo, command, a.l)
	}
}
