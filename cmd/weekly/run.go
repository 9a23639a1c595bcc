package main

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"weekly-rollover/internal/calendar"
	"weekly-rollover/internal/checklist"
	"weekly-rollover/internal/prompt"
	"weekly-rollover/internal/rollover"
	"weekly-rollover/internal/rollover/usecase"
	"weekly-rollover/pkg/datemath"
	"weekly-rollover/pkg/log"
)

type runOptions struct {
	dryRun       bool
	week         string
	skipCalendar bool
	noArchive    bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create this week's note and retire last week's",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRollover(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the new note without touching the store")
	cmd.Flags().StringVar(&opts.week, "week", "", `Day inside the target week ("today", "next monday", "in 1 week", YYYY-MM-DD)`)
	cmd.Flags().BoolVar(&opts.skipCalendar, "skip-calendar", false, "Do not pull calendar events")
	cmd.Flags().BoolVar(&opts.noArchive, "no-archive", false, "Unpin last week's note without archiving it")
	return cmd
}

func runRollover(cmd *cobra.Command, root *rootOptions, opts *runOptions) error {
	ctx := log.WithRunID(cmd.Context(), uuid.NewString())

	a, err := root.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ref, err := a.dateMath.Parse(opts.week, time.Now())
	if err != nil {
		return fmt.Errorf("invalid --week: %w", err)
	}

	settings := a.settings()
	if opts.skipCalendar {
		settings.SkipCalendar = true
	}
	if opts.noArchive {
		settings.ArchivePrevious = false
	}

	var source calendar.Source
	if !settings.SkipCalendar && !opts.dryRun {
		source = a.calendarSource(ctx)
	}

	out := cmd.OutOrStdout()
	uc := usecase.New(
		a.l,
		a.repo,
		checklist.New(),
		source,
		prompt.NewTerminal(cmd.InOrStdin(), out),
		a.editor(out),
		a.dateMath,
	)

	result, err := uc.Run(ctx, rollover.RunInput{
		Settings:  settings,
		Reference: ref,
		DryRun:    opts.dryRun,
	})
	if err != nil && result.Note.ID == "" {
		return err
	}

	printResult(out, result)
	return err
}

func printResult(w io.Writer, r rollover.RunOutput) {
	week := r.WeekStart.Format(datemath.DateFormatISO)

	if r.DryRun {
		fmt.Fprintf(w, "Dry run for the week of %s\n\n", week)
		fmt.Fprint(w, r.Note.Content)
		fmt.Fprintln(w)
	} else {
		fmt.Fprintf(w, "Created weekly note %s for the week of %s\n", r.Note.ID, week)
	}

	fmt.Fprintf(w, "Carried items: %d\n", len(r.Carried))
	if len(r.Events) > 0 {
		fmt.Fprintf(w, "Calendar events: %d\n", len(r.Events))
	}

	if r.Previous == nil {
		fmt.Fprintln(w, "Previous note: none")
		return
	}

	verb := string(r.Retirement)
	if r.DryRun {
		verb = "would be " + verb
	}
	fmt.Fprintf(w, "Previous note %s %s", r.Previous.ID, verb)
	if r.Retirement == rollover.RetirementRetired {
		if r.Previous.Archived {
			fmt.Fprint(w, " and archived")
		}
		if len(r.Completed) > 0 {
			fmt.Fprintf(w, ", %d completed items summarised", len(r.Completed))
		}
	}
	fmt.Fprintln(w)
}
