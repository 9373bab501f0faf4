// Package tat implements the PO Processor (§4.4): it drives the stage
// resolver across every stage in catalog order for one PO row and produces
// the per-PO result document, including summary counters.
package tat

import (
	"time"

	"github.com/sarvind1/tat-calculator/internal/config"
	"github.com/sarvind1/tat-calculator/internal/rowdata"
	"github.com/sarvind1/tat-calculator/internal/stage"
)

// Summary aggregates counters across a PO's resolved stages.
type Summary struct {
	MethodsUsed         map[stage.Method]int
	CalculatedStages    int
	TotalStages         int
	StagesWithDelays    int
	TotalDelayDays      int
	CriticalPathDelays  int
	CompletionRate      float64
	AverageDelayDays    *float64
}

// Result is the per-PO result document (§3, §6).
type Result struct {
	POID            string
	CalculationDate time.Time
	Stages          map[string]*stage.Result
	Summary         Summary
}

// Processor drives the resolver across one catalog's stages for each row it
// is given (§4.4). It may be reused across rows: Process resets the
// resolver's cache at the start of every call so no state survives between
// POs (§4.4 step 1, §9). It holds mutable resolver state and is not safe for
// concurrent use; the batch driver constructs a new Processor for every row.
type Processor struct {
	catalog  *config.Catalog
	resolver *stage.Resolver
	warn     func(poID, stageID, message string)
}

// NewProcessor constructs a Processor bound to one catalog. warn may be nil.
func NewProcessor(catalog *config.Catalog, warn func(poID, stageID, message string)) *Processor {
	if warn == nil {
		warn = func(string, string, string) {}
	}
	return &Processor{catalog: catalog, warn: warn}
}

// Process resolves every stage in catalog order for one row and returns the
// composed result document (§4.4).
func (p *Processor) Process(poID string, row rowdata.Row, calculationDate time.Time) *Result {
	stageWarn := func(stageID, message string) { p.warn(poID, stageID, message) }

	if p.resolver == nil {
		p.resolver = stage.NewResolver(p.catalog, row, stageWarn)
	} else {
		p.resolver.Reset(row)
	}

	stages := make(map[string]*stage.Result, len(p.catalog.Stages))
	summary := Summary{
		MethodsUsed: make(map[stage.Method]int),
		TotalStages: len(p.catalog.Stages),
	}

	for _, desc := range p.catalog.Stages {
		res := p.resolver.Resolve(desc.ID)
		stages[desc.ID] = res
		accumulate(&summary, desc, res)
	}

	if summary.TotalStages > 0 {
		summary.CompletionRate = float64(summary.CalculatedStages) / float64(summary.TotalStages)
	}
	if summary.StagesWithDelays > 0 {
		avg := float64(summary.TotalDelayDays) / float64(summary.StagesWithDelays)
		summary.AverageDelayDays = &avg
	}

	return &Result{
		POID:            poID,
		CalculationDate: calculationDate,
		Stages:          stages,
		Summary:         summary,
	}
}

func accumulate(summary *Summary, desc config.StageDescriptor, res *stage.Result) {
	summary.MethodsUsed[res.Method]++

	if res.FinalTimestamp != nil {
		summary.CalculatedStages++
	}

	if res.Delay != nil {
		summary.StagesWithDelays++
		summary.TotalDelayDays += *res.Delay

		if criticalPath(desc) && (res.Method == stage.Actual || res.Method == stage.Adjusted) && *res.Delay > 0 {
			summary.CriticalPathDelays++
		}
	}
}

func criticalPath(desc config.StageDescriptor) bool {
	flag, ok := desc.ProcessFlow["critical_path"]
	if !ok {
		return false
	}
	b, ok := flag.(bool)
	return ok && b
}
