// Package batch implements the Batch Driver (§4.5): it iterates many PO
// rows, processes each behind a fault boundary so a single bad row cannot
// halt the run, and hands the ordered results to an exporter.
package batch

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sarvind1/tat-calculator/internal/config"
	"github.com/sarvind1/tat-calculator/internal/rowdata"
	"github.com/sarvind1/tat-calculator/internal/tat"
	tatcalcerrors "github.com/sarvind1/tat-calculator/pkg/errors"
)

// RowSource is the narrow boundary interface the driver consumes: an
// iterable of PO rows with an identifying id column name (§6: "a row must
// carry a po_razin_id (or equivalent id column)").
type RowSource interface {
	// Rows returns every row in the source, in input order.
	Rows() ([]rowdata.Row, error)
	// IDColumn names the row field that carries the PO identifier.
	IDColumn() string
}

// ErrorRecord captures one row the processor could not complete (§6: "a
// list of {index, po_id, error_message, stack} entries").
type ErrorRecord struct {
	Index           int
	POID            string
	ErrorMessage    string
	Stack           string
	CalculationDate time.Time
}

// RunResult is the outcome of one batch run: ordered PO results plus any
// error records, tagged with a correlation id for diagnostics.
type RunResult struct {
	RunID   string
	Results []*tat.Result
	Errors  []ErrorRecord
}

// WarnFunc receives scoped diagnostics emitted while resolving a stage.
type WarnFunc func(poID, stageID, message string)

// Driver iterates a RowSource and processes each row concurrently with a
// bounded worker pool (§5: "each PO owns a private resolver instance and
// cache... Implementations may process rows concurrently with a bounded
// worker pool").
type Driver struct {
	catalog *config.Catalog
	warn    WarnFunc
	workers int

	// OnRunStart, OnRowStart, and OnRowComplete, when non-nil, are invoked as
	// the run id is assigned and as each row is dispatched and finishes. They
	// let a caller (e.g. the TUI dashboard or a diagnostics sink that tags
	// warnings with the run id) observe live progress without the driver
	// depending on any rendering package. OnRunStart runs synchronously
	// before any row is dispatched; OnRowStart/OnRowComplete are called from
	// worker goroutines and must be concurrency-safe.
	OnRunStart    func(runID string)
	OnRowStart    func(poID string)
	OnRowComplete func(poID string, errored bool)
}

// NewDriver constructs a Driver bound to one catalog. workers bounds
// concurrency; values below 1 are clamped to 1. warn may be nil.
func NewDriver(catalog *config.Catalog, workers int, warn WarnFunc) *Driver {
	if workers < 1 {
		workers = 1
	}
	if warn == nil {
		warn = func(string, string, string) {}
	}
	return &Driver{catalog: catalog, warn: warn, workers: workers}
}

type indexedOutcome struct {
	index  int
	result *tat.Result
	errRec *ErrorRecord
}

// Run processes every row in source and returns the batch outcome.
// Cancellation is honored between row dispatches; a single PO's resolution
// is bounded work and is not itself interruptible (§5).
func (d *Driver) Run(ctx context.Context, source RowSource, calculationDate time.Time) (*RunResult, error) {
	rows, err := source.Rows()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	if d.OnRunStart != nil {
		d.OnRunStart(runID)
	}
	idColumn := source.IDColumn()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	outcomes := make([]indexedOutcome, len(rows))

	for i, row := range rows {
		i, row := i, row
		poID := rowdata.POID(row, idColumn, i)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if d.OnRowStart != nil {
				d.OnRowStart(poID)
			}
			outcome := d.processRow(poID, i, row, calculationDate)
			outcomes[i] = outcome
			if d.OnRowComplete != nil {
				d.OnRowComplete(poID, outcome.errRec != nil)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Re-sort by input index before returning: concurrent execution may
	// complete out of order, but output must match input order (§5).
	sort.SliceStable(outcomes, func(a, b int) bool { return outcomes[a].index < outcomes[b].index })

	run := &RunResult{RunID: runID}
	for _, o := range outcomes {
		if o.errRec != nil {
			run.Errors = append(run.Errors, *o.errRec)
			continue
		}
		run.Results = append(run.Results, o.result)
	}
	return run, nil
}

// processRow is the fault boundary (§4.5): any panic or error while
// resolving one PO is captured into an ErrorRecord instead of propagating.
func (d *Driver) processRow(poID string, index int, row rowdata.Row, calculationDate time.Time) (outcome indexedOutcome) {
	outcome.index = index

	defer func() {
		if r := recover(); r != nil {
			err := tatcalcerrors.NewRowProcessingError(poID, fmt.Errorf("panic: %v", r))
			outcome.errRec = &ErrorRecord{
				Index:           index,
				POID:            poID,
				ErrorMessage:    err.Error(),
				Stack:           string(debug.Stack()),
				CalculationDate: calculationDate,
			}
			outcome.result = nil
		}
	}()

	processor := tat.NewProcessor(d.catalog, d.warn)
	outcome.result = processor.Process(poID, row, calculationDate)
	return outcome
}
