package stage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarvind1/tat-calculator/internal/config"
	"github.com/sarvind1/tat-calculator/internal/rowdata"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func desc(id, name, actualTS, precedingStage, fallback string, leadTime int) config.StageDescriptor {
	return config.StageDescriptor{
		ID:              id,
		Name:            name,
		ActualTimestamp: actualTS,
		PrecedingStage:  precedingStage,
		ProcessFlow:     map[string]interface{}{"team_owner": "X"},
		FallbackCalculation: config.FallbackCalculation{
			Expression: fallback,
		},
		LeadTime: leadTime,
	}
}

func newCatalog(stages ...config.StageDescriptor) *config.Catalog {
	cat := &config.Catalog{Stages: stages}
	return cat
}

func TestResolveStraightActualPath(t *testing.T) {
	t.Parallel()

	cat := newCatalog(desc("1", "Approval", "po_approval_date", "", "po_created_date", 1))
	row := rowdata.MapRow{
		"po_created_date":  rowdata.Instant(date(2025, 6, 1)),
		"po_approval_date": rowdata.Instant(date(2025, 6, 2)),
	}
	r := NewResolver(cat, row, nil)
	res := r.Resolve("1")

	require.Equal(t, Actual, res.Method)
	assert.True(t, res.FinalTimestamp.Equal(date(2025, 6, 2)))
	assert.True(t, res.TargetTimestamp.Equal(date(2025, 6, 2)))
	require.NotNil(t, res.Delay)
	assert.Equal(t, 0, *res.Delay)
}

func TestResolveConditionalPredecessorBranchA(t *testing.T) {
	t.Parallel()

	cat := newCatalog(
		desc("2", "Supplier Confirmation", "supplier_confirmation_date", "", "po_created_date", 2),
		desc("5", "PI Review", "", "", "po_created_date", 7),
		desc("8", "Invoice Approval", "pi_invoice_approval_date", "iff(pi_applicable==1,[5],[2])", "po_created_date", 3),
	)
	// Stage 5 has no actual field, so it resolves Projected with final
	// 2025-06-01 + 7 = 2025-06-08 and contributes no predecessor actual.
	row := rowdata.MapRow{
		"po_created_date":            rowdata.Instant(date(2025, 6, 1)),
		"pi_applicable":               rowdata.Number(1),
		"pi_invoice_approval_date":    rowdata.Instant(date(2025, 6, 5)),
		"supplier_confirmation_date": rowdata.Instant(date(2025, 6, 3)),
	}
	r := NewResolver(cat, row, nil)
	res := r.Resolve("8")

	assert.Equal(t, Actual, res.Method)
	assert.True(t, res.FinalTimestamp.Equal(date(2025, 6, 5)))
	require.NotNil(t, res.Delay)
	assert.Equal(t, -6, *res.Delay)
}

func TestResolveConditionalPredecessorBranchB(t *testing.T) {
	t.Parallel()

	cat := newCatalog(
		desc("2", "Supplier Confirmation", "supplier_confirmation_date", "", "po_created_date", 2),
		desc("5", "PI Review", "pi_review_date", "", "po_created_date", 0),
		desc("8", "Invoice Approval", "pi_invoice_approval_date", "iff(pi_applicable==1,[5],[2])", "po_created_date", 3),
	)
	row := rowdata.MapRow{
		"po_created_date":            rowdata.Instant(date(2025, 6, 1)),
		"pi_applicable":               rowdata.Number(0),
		"pi_invoice_approval_date":    rowdata.Instant(date(2025, 6, 5)),
		"supplier_confirmation_date": rowdata.Instant(date(2025, 6, 3)),
	}
	r := NewResolver(cat, row, nil)
	res := r.Resolve("8")

	assert.Equal(t, Actual, res.Method)
	assert.True(t, res.FinalTimestamp.Equal(date(2025, 6, 5)))
	require.NotNil(t, res.Delay)
	assert.Equal(t, -1, *res.Delay)
}

func TestResolveAdjustedPropagation(t *testing.T) {
	t.Parallel()

	cat := newCatalog(
		desc("1", "Pred", "pred_actual", "", "po_created_date", 0),
		desc("t", "Target Stage", "t_actual", "[1]", "po_created_date", 0),
	)
	row := rowdata.MapRow{
		"po_created_date": rowdata.Instant(date(2025, 6, 1)),
		"pred_actual":     rowdata.Instant(date(2025, 6, 12)),
		"t_actual":        rowdata.Instant(date(2025, 6, 9)),
	}
	r := NewResolver(cat, row, nil)
	res := r.Resolve("t")

	assert.Equal(t, Adjusted, res.Method)
	assert.True(t, res.FinalTimestamp.Equal(date(2025, 6, 12)))
	assert.True(t, res.ActualTimestamp.Equal(date(2025, 6, 12)))
}

func TestResolveMissingActualProjected(t *testing.T) {
	t.Parallel()

	cat := newCatalog(
		desc("1", "Pred", "", "", "po_created_date", 0),
		desc("t", "Target Stage", "", "[1]", "po_created_date", 5),
	)
	row := rowdata.MapRow{
		"po_created_date": rowdata.Instant(date(2025, 6, 1)),
	}
	// stage 1 has no actual_timestamp so falls back; give it a final via
	// its own fallback (po_created_date), lead_time 0.
	r := NewResolver(cat, row, nil)
	predRes := r.Resolve("1")
	require.NotNil(t, predRes.FinalTimestamp)

	res := r.Resolve("t")
	assert.Equal(t, Projected, res.Method)
	require.NotNil(t, res.FinalTimestamp)
	assert.Nil(t, res.Delay)
}

func TestResolveDeadPredecessorTreatedAsRoot(t *testing.T) {
	t.Parallel()

	cat := newCatalog(
		desc("1", "Root", "root_actual", "[99]", "po_created_date", 0),
	)
	row := rowdata.MapRow{
		"po_created_date": rowdata.Instant(date(2025, 6, 1)),
		"root_actual":      rowdata.Instant(date(2025, 6, 2)),
	}
	var warnings []string
	r := NewResolver(cat, row, func(stageID, msg string) { warnings = append(warnings, msg) })
	res := r.Resolve("1")

	assert.Equal(t, Actual, res.Method)
	assert.NotEmpty(t, warnings)
}

func TestResolveEqualActualAndMaxPredActualYieldsActual(t *testing.T) {
	t.Parallel()

	cat := newCatalog(
		desc("1", "Pred", "pred_actual", "", "po_created_date", 0),
		desc("t", "Target Stage", "t_actual", "[1]", "po_created_date", 0),
	)
	row := rowdata.MapRow{
		"po_created_date": rowdata.Instant(date(2025, 6, 1)),
		"pred_actual":     rowdata.Instant(date(2025, 6, 9)),
		"t_actual":        rowdata.Instant(date(2025, 6, 9)),
	}
	r := NewResolver(cat, row, nil)
	res := r.Resolve("t")

	assert.Equal(t, Actual, res.Method)
}

func TestResolveLeadTimeZeroTargetEqualsBase(t *testing.T) {
	t.Parallel()

	cat := newCatalog(
		desc("1", "Pred", "pred_actual", "", "po_created_date", 0),
		desc("t", "Target Stage", "", "[1]", "po_created_date", 0),
	)
	row := rowdata.MapRow{
		"po_created_date": rowdata.Instant(date(2025, 6, 1)),
		"pred_actual":     rowdata.Instant(date(2025, 6, 4)),
	}
	r := NewResolver(cat, row, nil)
	res := r.Resolve("t")

	require.NotNil(t, res.TargetTimestamp)
	assert.True(t, res.TargetTimestamp.Equal(date(2025, 6, 4)))
}

func TestResolveRuntimeCycleGuardTerminates(t *testing.T) {
	t.Parallel()

	cat := newCatalog(
		desc("1", "A", "", "iff(x==1,[2],[])", "po_created_date", 0),
		desc("2", "B", "", "iff(y==1,[1],[])", "po_created_date", 0),
	)
	row := rowdata.MapRow{
		"po_created_date": rowdata.Instant(date(2025, 6, 1)),
		"x":               rowdata.Number(1),
		"y":               rowdata.Number(1),
	}
	r := NewResolver(cat, row, nil)
	res := r.Resolve("1")

	// The cycle never resolves an actual predecessor final, so the chain
	// falls back to the fallback expression rather than erroring out —
	// the runtime guard only fires for the re-entrant call itself.
	require.NotNil(t, res)
}

func TestResolveMemoizationIsDeterministic(t *testing.T) {
	t.Parallel()

	cat := newCatalog(
		desc("1", "Pred", "pred_actual", "", "po_created_date", 1),
		desc("2", "Succ", "succ_actual", "[1]", "po_created_date", 2),
	)
	row := rowdata.MapRow{
		"po_created_date": rowdata.Instant(date(2025, 6, 1)),
		"pred_actual":     rowdata.Instant(date(2025, 6, 3)),
		"succ_actual":     rowdata.Instant(date(2025, 6, 10)),
	}

	r1 := NewResolver(cat, row, nil)
	first := r1.Resolve("2")

	r2 := NewResolver(cat, row, nil)
	second := r2.Resolve("2")

	assert.Equal(t, first.Method, second.Method)
	assert.True(t, first.FinalTimestamp.Equal(*second.FinalTimestamp))
}
