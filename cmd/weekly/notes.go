package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"weekly-rollover/internal/checklist"
	"weekly-rollover/internal/note/repository"
)

func newNotesCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Inspect and edit weekly notes",
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List notes carrying the configured tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotesList(cmd, root, all)
		},
	}
	list.Flags().BoolVar(&all, "all", false, "Include archived notes")

	cmd.AddCommand(list)
	cmd.AddCommand(newCheckCmd(root, "check", true))
	cmd.AddCommand(newCheckCmd(root, "uncheck", false))
	return cmd
}

func runNotesList(cmd *cobra.Command, root *rootOptions, all bool) error {
	ctx := cmd.Context()
	a, err := root.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	notes, err := a.repo.Query(ctx, repository.QueryOptions{
		Tags:            a.cfg.Rollover.Tags,
		IncludeArchived: all,
		Limit:           repository.DefaultQueryLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(notes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No notes found")
		return nil
	}

	svc := checklist.New()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSTATE\tOPEN\tDONE\tTITLE")
	for _, n := range notes {
		state := "active"
		switch {
		case n.Archived:
			state = "archived"
		case n.Pinned:
			state = "pinned"
		}
		stats := svc.GetStats(n.Content)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d/%d (%.0f%%)\t%s\n",
			n.ID, n.CreatedAt.Local().Format("2006-01-02 15:04"), state,
			stats.Pending, stats.Completed, stats.Total, stats.Progress, n.Title())
	}
	return tw.Flush()
}

func newCheckCmd(root *rootOptions, use string, checked bool) *cobra.Command {
	state := "open"
	if checked {
		state = "done"
	}
	return &cobra.Command{
		Use:   use + " <note-id> <text>",
		Short: "Mark matching checklist items as " + state,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, args[0], args[1], checked)
		},
	}
}

func runCheck(cmd *cobra.Command, root *rootOptions, id, text string, checked bool) error {
	ctx := cmd.Context()
	a, err := root.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	note, err := a.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load note %s: %w", id, err)
	}

	res, err := checklist.New().UpdateCheckbox(ctx, checklist.UpdateCheckboxInput{
		Content:      note.Content,
		CheckboxText: text,
		Checked:      checked,
	})
	if err != nil {
		return err
	}
	if !res.Updated {
		return fmt.Errorf("no checklist item matching %q in note %s", text, id)
	}

	note.Content = res.Content
	if _, err := a.repo.Update(ctx, note); err != nil {
		return fmt.Errorf("failed to save note %s: %w", id, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %d item(s) in note %s\n", res.Count, id)
	return nil
}
