package expr

import (
	"fmt"
	"time"

	"github.com/sarvind1/tat-calculator/internal/rowdata"
	tatcalcerrors "github.com/sarvind1/tat-calculator/pkg/errors"
)

func evalBinOp(n *BinOp, env *Env, source string) (Evaluated, error) {
	left, err := evalNode(n.Left, env, source)
	if err != nil {
		return Evaluated{}, err
	}
	right, err := evalNode(n.Right, env, source)
	if err != nil {
		return Evaluated{}, err
	}
	if left.IsList || right.IsList {
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprTypeMismatch, source,
			fmt.Errorf("arithmetic operands must be scalar"))
	}

	l, r := left.Scalar, right.Scalar
	if l.IsNull() || r.IsNull() {
		return scalarResult(rowdata.Null()), nil
	}

	switch n.Op {
	case "+":
		return addOp(l, r, source)
	case "-":
		return subOp(l, r, source)
	case "*":
		return numericOp(l, r, source, func(a, b float64) float64 { return a * b })
	case "/":
		return divOp(l, r, source)
	default:
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprParseError, source,
			fmt.Errorf("unsupported operator %q", n.Op))
	}
}

func addOp(l, r rowdata.Value, source string) (Evaluated, error) {
	if inst, ok := l.AsInstant(); ok {
		if days, ok := r.AsNumber(); ok {
			return scalarResult(rowdata.Instant(inst.AddDate(0, 0, int(days)))), nil
		}
	}
	if inst, ok := r.AsInstant(); ok {
		if days, ok := l.AsNumber(); ok {
			return scalarResult(rowdata.Instant(inst.AddDate(0, 0, int(days)))), nil
		}
	}
	return numericOp(l, r, source, func(a, b float64) float64 { return a + b })
}

func subOp(l, r rowdata.Value, source string) (Evaluated, error) {
	if li, ok := l.AsInstant(); ok {
		if ri, ok := r.AsInstant(); ok {
			return scalarResult(rowdata.Number(float64(daysBetween(li, ri)))), nil
		}
		if days, ok := r.AsNumber(); ok {
			return scalarResult(rowdata.Instant(li.AddDate(0, 0, -int(days)))), nil
		}
	}
	return numericOp(l, r, source, func(a, b float64) float64 { return a - b })
}

// daysBetween truncates the difference toward zero at the day boundary
// (§9); since both instants are already UTC-midnight values, the
// subtraction is exact.
func daysBetween(a, b time.Time) int64 {
	return int64(a.Sub(b).Hours() / 24)
}

func numericOp(l, r rowdata.Value, source string, fn func(a, b float64) float64) (Evaluated, error) {
	ln, ok := l.AsNumber()
	if !ok {
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprTypeMismatch, source,
			fmt.Errorf("expected number, got %s", l.Kind()))
	}
	rn, ok := r.AsNumber()
	if !ok {
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprTypeMismatch, source,
			fmt.Errorf("expected number, got %s", r.Kind()))
	}
	return scalarResult(rowdata.Number(fn(ln, rn))), nil
}

func divOp(l, r rowdata.Value, source string) (Evaluated, error) {
	ln, ok := l.AsNumber()
	if !ok {
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprTypeMismatch, source,
			fmt.Errorf("expected number, got %s", l.Kind()))
	}
	rn, ok := r.AsNumber()
	if !ok {
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprTypeMismatch, source,
			fmt.Errorf("expected number, got %s", r.Kind()))
	}
	if rn == 0 {
		// Division by zero degrades to null, not a fault (§4.2).
		return scalarResult(rowdata.Null()), nil
	}
	return scalarResult(rowdata.Number(ln / rn)), nil
}

func evalCompare(n *Compare, env *Env, source string) (Evaluated, error) {
	left, err := evalNode(n.Left, env, source)
	if err != nil {
		return Evaluated{}, err
	}
	right, err := evalNode(n.Right, env, source)
	if err != nil {
		return Evaluated{}, err
	}
	if left.IsList || right.IsList {
		return scalarResult(rowdata.Bool(false)), nil
	}

	l, r := left.Scalar, right.Scalar
	// "Comparisons where either side is null yield false" (§4.2).
	if l.IsNull() || r.IsNull() {
		return scalarResult(rowdata.Bool(false)), nil
	}

	switch n.Op {
	case "==":
		return scalarResult(rowdata.Bool(l.Equal(r))), nil
	case "!=":
		return scalarResult(rowdata.Bool(!l.Equal(r))), nil
	case "<", "<=", ">", ">=":
		return scalarResult(rowdata.Bool(orderedCompare(n.Op, l, r))), nil
	default:
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprParseError, source,
			fmt.Errorf("unsupported comparison operator %q", n.Op))
	}
}

func orderedCompare(op string, l, r rowdata.Value) bool {
	if ln, ok := l.AsNumber(); ok {
		if rn, ok := r.AsNumber(); ok {
			return applyOrder(op, compareFloats(ln, rn))
		}
		return false
	}
	if li, ok := l.AsInstant(); ok {
		if ri, ok := r.AsInstant(); ok {
			switch {
			case li.Before(ri):
				return applyOrder(op, -1)
			case li.After(ri):
				return applyOrder(op, 1)
			default:
				return applyOrder(op, 0)
			}
		}
		return false
	}
	return false
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func applyOrder(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}
