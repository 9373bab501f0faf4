package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarvind1/tat-calculator/internal/components"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			cardData := components.CardData{
				Title:       "tatcalc",
				Description: "Stage-level turnaround-time calculator for Purchase Orders",
				Icon:        "📦",
				Metadata: map[string]string{
					"Version": version,
					"Commit":  commit,
					"Built":   date,
				},
			}

			card := components.StatusCard(cardData, "info")
			fmt.Fprintln(cmd.OutOrStdout(), card.View())
			return nil
		},
	}

	return cmd
}
