// Command tatcalc computes stage-level turnaround-time timelines for a
// batch of Purchase Order rows against a configurable stage catalog.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sarvind1/tat-calculator/internal/logging"
)

func main() {
	appLogger, err := logging.New(logging.Options{
		Level:     "info",
		Component: "cli",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create application logger: %v\n", err)
		os.Exit(1)
	}

	correlationID := logging.GenerateCorrelationID()
	ctx := logging.WithCorrelationID(context.Background(), correlationID)

	app := &AppContext{Logger: appLogger}

	rootCmd := newRootCmd(app)
	appLogger.Info(ctx, "starting tatcalc command", "pid", os.Getpid())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
