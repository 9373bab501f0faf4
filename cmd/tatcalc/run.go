package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sarvind1/tat-calculator/internal/batch"
	"github.com/sarvind1/tat-calculator/internal/components"
	"github.com/sarvind1/tat-calculator/internal/config"
	"github.com/sarvind1/tat-calculator/internal/diagnostics"
	"github.com/sarvind1/tat-calculator/internal/export"
	"github.com/sarvind1/tat-calculator/internal/rowdata"
	"github.com/sarvind1/tat-calculator/internal/tui"
)

type runOptions struct {
	CatalogPath string
	RowsPath    string
	Sheet       string
	IDColumn    string
	OutDir      string
	Workers     int
	Watch       bool
}

func newRunCmd(app *AppContext, root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run <catalog> <rows.xlsx>",
		Short: "Process every PO row in a workbook against a stage catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.CatalogPath = strings.TrimSpace(args[0])
			opts.RowsPath = strings.TrimSpace(args[1])

			if err := validateRunOptions(opts); err != nil {
				return err
			}

			return runBatch(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Sheet, "sheet", "Sheet1", "Worksheet name holding the PO rows")
	cmd.Flags().StringVar(&opts.IDColumn, "id-column", "po_id", "Column naming the PO identifier")
	cmd.Flags().StringVar(&opts.OutDir, "out", ".", "Directory the result matrix workbook is written to")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "Maximum number of PO rows processed concurrently")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Show a live batch-progress dashboard")

	return cmd
}

func runBatch(cmd *cobra.Command, app *AppContext, opts runOptions) error {
	ctx, log := app.CommandContext(cmd, "batch")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	catalog, err := config.LoadCatalog(opts.CatalogPath)
	if err != nil {
		return err
	}

	xlsxSource, err := export.NewXLSXRowSource(opts.RowsPath, opts.Sheet, opts.IDColumn)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	rows, err := xlsxSource.Rows()
	if err != nil {
		return err
	}
	source := batch.NewSliceRowSource(opts.IDColumn, rows)

	sink := diagnostics.NewSink(os.Stderr)
	var runID string
	warn := func(poID, stageID, message string) { sink.Warn(runID, poID, stageID, message) }

	driver := batch.NewDriver(catalog, opts.Workers, warn)
	driver.OnRunStart = func(id string) { runID = id }

	poIDs := make([]string, len(rows))
	for i, row := range rows {
		poIDs[i] = rowdata.POID(row, opts.IDColumn, i)
	}

	interactive := opts.Watch && term.IsTerminal(int(os.Stdout.Fd()))
	modelState := tui.NewModel("", poIDs, !interactive)

	var program *tea.Program
	var programErr error
	done := make(chan struct{})

	if interactive {
		program = tea.NewProgram(modelState)
		go func() {
			_, programErr = program.Run()
			close(done)
		}()

		driver.OnRowStart = func(poID string) { program.Send(tui.RowStartMsg{POID: poID}) }
		driver.OnRowComplete = func(poID string, errored bool) {
			program.Send(tui.RowCompleteMsg{POID: poID, Errored: errored})
		}
	}

	result, err := driver.Run(ctx, source, time.Now())

	if interactive {
		program.Send(tea.QuitMsg{})
		<-done
		if programErr != nil {
			return programErr
		}
	}
	if err != nil {
		return err
	}

	for _, errRec := range result.Errors {
		sink.RowError(result.RunID, errRec.POID, errRec.ErrorMessage)
	}

	outPath := filepath.Join(opts.OutDir, fmt.Sprintf("tat-matrix-%s.xlsx", result.RunID))
	if err := export.WriteMatrix(outPath, catalog, result.Results); err != nil {
		return fmt.Errorf("write matrix: %w", err)
	}

	log.Info(ctx, "batch run complete",
		"run_id", result.RunID,
		"rows", len(result.Results),
		"errors", len(result.Errors),
		"out", outPath,
	)

	if !interactive {
		card := components.StatusCard(components.CardData{
			Title:       "Batch run complete",
			Description: outPath,
			Icon:        "✅",
			Metadata: map[string]string{
				"Run ID":  result.RunID,
				"Rows":    fmt.Sprintf("%d", len(result.Results)),
				"Errors":  fmt.Sprintf("%d", len(result.Errors)),
				"Catalog": opts.CatalogPath,
			},
		}, statusFor(len(result.Errors)))
		fmt.Fprintln(cmd.OutOrStdout(), card.View())
	}

	return nil
}

func statusFor(errorCount int) string {
	if errorCount > 0 {
		return "warning"
	}
	return "success"
}

func validateRunOptions(opts runOptions) error {
	if strings.TrimSpace(opts.CatalogPath) == "" {
		return fmt.Errorf("catalog path is required")
	}
	if strings.TrimSpace(opts.RowsPath) == "" {
		return fmt.Errorf("rows workbook path is required")
	}
	if _, err := os.Stat(opts.CatalogPath); err != nil {
		return fmt.Errorf("catalog file does not exist: %w", err)
	}
	if _, err := os.Stat(opts.RowsPath); err != nil {
		return fmt.Errorf("rows workbook does not exist: %w", err)
	}
	return nil
}
