package stage

import (
	"time"

	"github.com/sarvind1/tat-calculator/internal/config"
	"github.com/sarvind1/tat-calculator/internal/expr"
	"github.com/sarvind1/tat-calculator/internal/rowdata"
	tatcalcerrors "github.com/sarvind1/tat-calculator/pkg/errors"
)

// Resolver resolves stages for exactly one PO row. It owns a private cache
// and visiting-set; neither is shared across POs or across goroutines (§5,
// §9: "a per-PO owned map keyed by stage-id; clear at the start of each PO").
type Resolver struct {
	catalog  *config.Catalog
	row      rowdata.Row
	warn     func(stageID, message string)
	cache    map[string]*Result
	visiting map[string]bool
}

// NewResolver constructs a Resolver bound to one catalog and one row. warn
// may be nil; it is invoked with scoped diagnostics (missing field, skipped
// predecessor, expression failure).
func NewResolver(catalog *config.Catalog, row rowdata.Row, warn func(stageID, message string)) *Resolver {
	if warn == nil {
		warn = func(string, string) {}
	}
	return &Resolver{
		catalog:  catalog,
		row:      row,
		warn:     warn,
		cache:    make(map[string]*Result),
		visiting: make(map[string]bool),
	}
}

// Reset clears the cache, starting a fresh resolution pass for a new row
// against the same catalog (§4.4 step 1). It is equivalent to constructing
// a new Resolver but avoids reallocating the catalog binding.
func (r *Resolver) Reset(row rowdata.Row) {
	r.row = row
	r.cache = make(map[string]*Result)
	r.visiting = make(map[string]bool)
}

// Resolve returns the memoized Result for stageID, computing it (and any
// predecessors it needs) on first request (§4.3).
func (r *Resolver) Resolve(stageID string) *Result {
	if cached, ok := r.cache[stageID]; ok {
		return cached
	}

	if r.visiting[stageID] {
		// Data-dependent cycle hidden behind a conditional: the static
		// analyzer in internal/config cannot see it (§9).
		res := &Result{StageID: stageID, Method: Error, CalculationSource: "cycle_detected"}
		r.cache[stageID] = res
		return res
	}

	desc, ok := r.catalog.Lookup(stageID)
	if !ok {
		res := &Result{StageID: stageID, Method: Error, CalculationSource: "unknown_stage"}
		r.cache[stageID] = res
		return res
	}

	r.visiting[stageID] = true
	res := r.resolveStage(desc)
	delete(r.visiting, stageID)

	r.cache[stageID] = res
	return res
}

func (r *Resolver) resolveStage(desc config.StageDescriptor) *Result {
	preds := r.resolvePredecessors(desc)

	target, calcSource := r.computeTarget(desc, preds)
	precedence := classifyPrecedence(preds)
	currentActual := r.readCurrentActual(desc)
	maxPredActual := maxActual(preds)

	method, actual, final, source := selectMethod(currentActual, maxPredActual, target, calcSource)

	var delay *int
	if (method == Actual || method == Adjusted) && target != nil && actual != nil {
		d := int(daysBetween(*actual, *target))
		delay = &d
	}

	return &Result{
		StageID:           desc.ID,
		Method:            method,
		TargetTimestamp:   target,
		ActualTimestamp:   actual,
		FinalTimestamp:    final,
		Delay:             delay,
		PrecedenceMethod:  precedence,
		CalculationSource: source,
		Dependencies:      toDependencies(preds),
	}
}

// predecessor is an internal bookkeeping record for one consulted predecessor.
type predecessor struct {
	stageID string
	name    string
	final   *time.Time
	actual  *time.Time
	method  Method
}

func (r *Resolver) resolvePredecessors(desc config.StageDescriptor) []predecessor {
	if desc.PrecedingStage == "" {
		return nil
	}

	node, err := expr.Parse(desc.PrecedingStage)
	if err != nil {
		r.warn(desc.ID, "preceding_stage failed to parse: "+err.Error())
		return nil
	}

	env := &expr.Env{
		Row:        r.row,
		StageFinal: r.stageFinal,
		Warn:       func(message string) { r.warn(desc.ID, message) },
	}
	ev, err := expr.Eval(node, env, desc.PrecedingStage)
	if err != nil {
		r.warn(desc.ID, "preceding_stage evaluation failed: "+err.Error())
		return nil
	}

	ids := expr.AsStageList(ev)
	preds := make([]predecessor, 0, len(ids))
	for _, id := range ids {
		predDesc, ok := r.catalog.Lookup(id)
		if !ok {
			r.warn(desc.ID, tatcalcerrors.NewUnknownStageIDError(id).Error())
			continue
		}
		predRes := r.Resolve(id)
		if predRes.FinalTimestamp == nil {
			// A null final_timestamp does not contribute to base or
			// max_pred_actual but does not propagate failure (§4.3 edge case).
			continue
		}
		preds = append(preds, predecessor{
			stageID: id,
			name:    predDesc.Name,
			final:   predRes.FinalTimestamp,
			actual:  predRes.ActualTimestamp,
			method:  predRes.Method,
		})
	}
	return preds
}

func (r *Resolver) stageFinal(stageID string) rowdata.Value {
	cached, ok := r.cache[stageID]
	if !ok || cached.FinalTimestamp == nil {
		return rowdata.Null()
	}
	return rowdata.Instant(*cached.FinalTimestamp)
}

func (r *Resolver) readCurrentActual(desc config.StageDescriptor) *time.Time {
	if desc.ActualTimestamp == "" {
		return nil
	}
	node, err := expr.Parse(desc.ActualTimestamp)
	if err != nil {
		r.warn(desc.ID, "actual_timestamp failed to parse: "+err.Error())
		return nil
	}
	env := &expr.Env{
		Row:  r.row,
		Warn: func(message string) { r.warn(desc.ID, message) },
	}
	ev, err := expr.Eval(node, env, desc.ActualTimestamp)
	if err != nil {
		r.warn(desc.ID, "actual_timestamp evaluation failed: "+err.Error())
		return nil
	}
	inst, ok := expr.AsInstant(ev)
	if !ok {
		return nil
	}
	return &inst
}

func (r *Resolver) computeTarget(desc config.StageDescriptor, preds []predecessor) (*time.Time, string) {
	if base, ok := maxFinal(preds); ok {
		target := base.AddDate(0, 0, desc.LeadTime)
		return &target, "precedence_based"
	}

	node, err := expr.Parse(desc.FallbackCalculation.Expression)
	if err != nil {
		r.warn(desc.ID, "fallback_calculation failed to parse: "+err.Error())
		return nil, "fallback_based"
	}
	env := &expr.Env{
		Row:  r.row,
		Warn: func(message string) { r.warn(desc.ID, message) },
	}
	ev, err := expr.Eval(node, env, desc.FallbackCalculation.Expression)
	if err != nil {
		r.warn(desc.ID, "fallback_calculation evaluation failed: "+err.Error())
		return nil, "fallback_based"
	}
	inst, ok := expr.AsInstant(ev)
	if !ok {
		return nil, "fallback_based"
	}
	target := inst.AddDate(0, 0, desc.LeadTime)
	return &target, "fallback_based"
}

// selectMethod implements §4.3 step 6: method and final selection given
// current_actual, max_pred_actual, target, and the calculation_source
// derived from step 3.
func selectMethod(currentActual, maxPredActual, target *time.Time, calcSource string) (Method, *time.Time, *time.Time, string) {
	if currentActual != nil {
		if maxPredActual != nil && maxPredActual.After(*currentActual) {
			return Adjusted, maxPredActual, maxPredActual, "actual_from_precedence"
		}
		return Actual, currentActual, currentActual, "actual_from_field"
	}
	return Projected, maxPredActual, target, calcSource + "_target"
}

func classifyPrecedence(preds []predecessor) PrecedenceMethod {
	for _, p := range preds {
		if p.method == Projected {
			return PrecedenceProjected
		}
	}
	return PrecedenceActualOrAdjusted
}

func maxFinal(preds []predecessor) (time.Time, bool) {
	var best time.Time
	found := false
	for _, p := range preds {
		if p.final == nil {
			continue
		}
		if !found || p.final.After(best) {
			best = *p.final
			found = true
		}
	}
	return best, found
}

func maxActual(preds []predecessor) *time.Time {
	var best *time.Time
	for _, p := range preds {
		if p.actual == nil {
			continue
		}
		if best == nil || p.actual.After(*best) {
			v := *p.actual
			best = &v
		}
	}
	return best
}

func toDependencies(preds []predecessor) []Dependency {
	deps := make([]Dependency, 0, len(preds))
	for _, p := range preds {
		deps = append(deps, Dependency{
			StageID:        p.stageID,
			Name:           p.name,
			FinalTimestamp: p.final,
			Method:         p.method,
		})
	}
	return deps
}

// daysBetween truncates toward zero at the calendar-day boundary; both
// instants are already UTC midnight so the division is exact.
func daysBetween(a, b time.Time) int64 {
	return int64(a.Sub(b).Hours() / 24)
}
