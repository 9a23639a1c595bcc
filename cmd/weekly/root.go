package main

import (
	"context"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Weekly note rollover",
		Long: `weekly creates this week's work note, carries unfinished checklist items
forward from last week's note and retires the old one.

Running without a subcommand performs the rollover.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: ./config/config.yaml, ./config.yaml or ~/.config/weekly/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	run := newRunCmd(opts)
	cmd.RunE = run.RunE
	cmd.Flags().AddFlagSet(run.Flags())

	cmd.AddCommand(run)
	cmd.AddCommand(newNotesCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newGcalAuthCmd())
	return cmd
}

func execute(ctx context.Context, version string, args []string) error {
	cmd := newRootCmd(version)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
