package main

import (
	"github.com/spf13/cobra"

	"github.com/sarvind1/tat-calculator/internal/logging"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "tatcalc",
		Short:         "tatcalc computes per-stage turnaround-time timelines for Purchase Orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !flags.verbose {
				return nil
			}
			logger, err := logging.New(logging.Options{Level: "debug", Component: "cli"})
			if err != nil {
				return err
			}
			app.Logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newValidateCmd(app, flags))
	cmd.AddCommand(newRunCmd(app, flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
