package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sarvind1/tat-calculator/internal/logging"
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Logger logging.Logger
}

// CommandContext returns the command context (falling back to Background)
// together with a component-scoped logger.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, logging.Logger) {
	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}
	return ctx, a.LoggerFor(component)
}

// LoggerFor derives a child logger with the supplied component name.
func (a *AppContext) LoggerFor(component string) logging.Logger {
	if a == nil || a.Logger == nil {
		return logging.NoOp()
	}
	return a.Logger.With("component", component)
}
