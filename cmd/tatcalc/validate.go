package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarvind1/tat-calculator/internal/config"
)

func newValidateCmd(app *AppContext, root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog>",
		Short: "Validate a stage catalog document without processing any rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(args[0])
			ctx, log := app.CommandContext(cmd, "validate")

			cat, err := config.LoadCatalog(path)
			if err != nil {
				return err
			}

			log.Info(ctx, "catalog valid", "path", path, "stage_count", len(cat.Stages))
			fmt.Fprintf(cmd.OutOrStdout(), "catalog %s is valid: %d stages\n", path, len(cat.Stages))
			return nil
		},
	}

	return cmd
}
