// Package stage implements the memoized per-PO stage resolution engine
// (§4.3): given a stage catalog and a PO row, it computes each stage's
// target/actual/final timestamps, method classification, and delay,
// recursing over predecessors and caching results for the lifetime of one
// PO's evaluation pass.
package stage

import "time"

// Method classifies how a stage's final_timestamp was derived.
type Method string

const (
	// Projected means no current actual was recorded; final is the target.
	Projected Method = "Projected"
	// Actual means the stage's own actual_timestamp field was authoritative.
	Actual Method = "Actual"
	// Adjusted means a predecessor's actual superseded the stage's own actual.
	Adjusted Method = "Adjusted"
	// Error means the resolver could not produce a meaningful result.
	Error Method = "Error"
)

// PrecedenceMethod summarizes whether any predecessor was still Projected.
type PrecedenceMethod string

const (
	// PrecedenceProjected means at least one predecessor was Projected.
	PrecedenceProjected PrecedenceMethod = "Projected"
	// PrecedenceActualOrAdjusted means every predecessor (if any) had
	// settled on Actual or Adjusted, or there were no predecessors.
	PrecedenceActualOrAdjusted PrecedenceMethod = "Actual/Adjusted"
)

// Dependency records one predecessor actually consulted while resolving a
// stage (§3: "dependencies: ordered list of (predecessor-id, name,
// final_timestamp, method) actually used").
type Dependency struct {
	StageID        string
	Name           string
	FinalTimestamp *time.Time
	Method         Method
}

// Result is one stage's resolved outcome for one PO.
type Result struct {
	StageID            string
	Method             Method
	TargetTimestamp    *time.Time
	ActualTimestamp    *time.Time
	FinalTimestamp     *time.Time
	Delay              *int
	PrecedenceMethod   PrecedenceMethod
	CalculationSource  string
	Dependencies       []Dependency
}
