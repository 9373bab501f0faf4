package expr

import (
	"fmt"

	"github.com/sarvind1/tat-calculator/internal/rowdata"
	tatcalcerrors "github.com/sarvind1/tat-calculator/pkg/errors"
)

// evalCall dispatches the fixed, exhaustive function allow-list (§4.2).
// Any other call name resolves to UnknownFunction and aborts only this
// expression evaluation, per the Security note.
func evalCall(n *Call, env *Env, source string) (Evaluated, error) {
	switch n.Func {
	case "iff", "cond":
		return evalConditional(n, env, source)
	case "max":
		return evalMax(n, env, source)
	case "add_days":
		return evalAddDays(n, env, source)
	default:
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprUnknownFunction, source,
			fmt.Errorf("unknown function %q", n.Func))
	}
}

// evalConditional implements iff/cond with lazy branch selection: only the
// selected branch is evaluated, so a losing division-by-zero or null
// dereference in the other branch never surfaces (§9 Design Notes).
func evalConditional(n *Call, env *Env, source string) (Evaluated, error) {
	if len(n.Args) != 3 {
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprParseError, source,
			fmt.Errorf("%s requires exactly 3 arguments", n.Func))
	}
	cond, err := evalNode(n.Args[0], env, source)
	if err != nil {
		return Evaluated{}, err
	}
	if cond.IsList {
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprTypeMismatch, source,
			fmt.Errorf("%s condition must be scalar", n.Func))
	}
	if cond.Scalar.Truthy() {
		return evalNode(n.Args[1], env, source)
	}
	return evalNode(n.Args[2], env, source)
}

// evalMax returns the latest of its non-null instant arguments, or null
// when none are instants.
func evalMax(n *Call, env *Env, source string) (Evaluated, error) {
	var best rowdata.Value
	found := false
	for _, argNode := range n.Args {
		arg, err := evalNode(argNode, env, source)
		if err != nil {
			return Evaluated{}, err
		}
		if arg.IsList {
			continue
		}
		inst, ok := arg.Scalar.AsInstant()
		if !ok {
			continue
		}
		if !found {
			best = arg.Scalar
			found = true
			continue
		}
		bestInst, _ := best.AsInstant()
		if inst.After(bestInst) {
			best = arg.Scalar
		}
	}
	if !found {
		return scalarResult(rowdata.Null()), nil
	}
	return scalarResult(best), nil
}

func evalAddDays(n *Call, env *Env, source string) (Evaluated, error) {
	if len(n.Args) != 2 {
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprParseError, source,
			fmt.Errorf("add_days requires exactly 2 arguments"))
	}
	base, err := evalNode(n.Args[0], env, source)
	if err != nil {
		return Evaluated{}, err
	}
	days, err := evalNode(n.Args[1], env, source)
	if err != nil {
		return Evaluated{}, err
	}
	if base.IsList || days.IsList {
		return scalarResult(rowdata.Null()), nil
	}
	inst, ok := base.Scalar.AsInstant()
	if !ok {
		return scalarResult(rowdata.Null()), nil
	}
	n2, ok := days.Scalar.AsNumber()
	if !ok {
		return scalarResult(rowdata.Null()), nil
	}
	return scalarResult(rowdata.Instant(inst.AddDate(0, 0, int(n2)))), nil
}
