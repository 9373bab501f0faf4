package expr

import (
	"fmt"
	"strings"

	"github.com/sarvind1/tat-calculator/internal/rowdata"
	tatcalcerrors "github.com/sarvind1/tat-calculator/pkg/errors"
)

// stageRefPrefix marks a back-reference to an already-resolved stage's
// final timestamp (§4.2 name resolution rule 1).
const stageRefPrefix = "stage_"

// WarnFunc receives a non-fatal diagnostic message produced while
// evaluating an expression (e.g. a missing row field). It never aborts
// evaluation.
type WarnFunc func(message string)

// Env supplies the two name-resolution sources an expression can read:
// the PO row, and already-memoized stage final timestamps.
type Env struct {
	Row rowdata.Row
	// StageFinal returns the cached final timestamp for stageID, or a
	// null Value when the stage hasn't been resolved yet or has no
	// final timestamp. It must never trigger recursive resolution
	// (§4.3: "must not trigger recursion").
	StageFinal func(stageID string) rowdata.Value
	// Warn receives diagnostics; may be nil.
	Warn WarnFunc
}

func (e *Env) warn(format string, args ...interface{}) {
	if e == nil || e.Warn == nil {
		return
	}
	e.Warn(fmt.Sprintf(format, args...))
}

// Evaluated is the result of evaluating an expression: either a scalar
// Value or an ordered list of Values. The grammar's only list-producing
// construct is a list literal, so List evaluation always yields IsList.
type Evaluated struct {
	IsList bool
	Scalar rowdata.Value
	List   []rowdata.Value
}

func scalarResult(v rowdata.Value) Evaluated { return Evaluated{Scalar: v} }

// Eval evaluates a parsed expression against env. Any failure is returned
// as a scoped *tatcalcerrors.ExpressionError; it never panics.
func Eval(node Node, env *Env, source string) (result Evaluated, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = Evaluated{}
			err = tatcalcerrors.NewExpressionError(tatcalcerrors.ExprTypeMismatch, source, fmt.Errorf("%v", r))
		}
	}()
	return evalNode(node, env, source)
}

func evalNode(node Node, env *Env, source string) (Evaluated, error) {
	switch n := node.(type) {
	case *Literal:
		return evalLiteral(n), nil
	case *Name:
		return evalName(n, env), nil
	case *List:
		return evalList(n, env, source)
	case *BinOp:
		return evalBinOp(n, env, source)
	case *Compare:
		return evalCompare(n, env, source)
	case *Call:
		return evalCall(n, env, source)
	default:
		return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprParseError, source,
			fmt.Errorf("unsupported node type %T", node))
	}
}

func evalLiteral(n *Literal) Evaluated {
	switch n.Kind {
	case "int":
		return scalarResult(rowdata.Number(float64(n.Int)))
	case "float":
		return scalarResult(rowdata.Number(n.Float))
	case "string":
		return scalarResult(rowdata.String(n.Str))
	default:
		return scalarResult(rowdata.Null())
	}
}

func evalName(n *Name, env *Env) Evaluated {
	if strings.HasPrefix(n.Ident, stageRefPrefix) {
		stageID := strings.TrimPrefix(n.Ident, stageRefPrefix)
		if env == nil || env.StageFinal == nil {
			return scalarResult(rowdata.Null())
		}
		return scalarResult(env.StageFinal(stageID))
	}

	if env == nil || env.Row == nil {
		return scalarResult(rowdata.Null())
	}
	v, ok := env.Row.Get(n.Ident)
	if !ok {
		env.warn("field %q not found in PO row", n.Ident)
	}
	return scalarResult(v)
}

func evalList(n *List, env *Env, source string) (Evaluated, error) {
	values := make([]rowdata.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		v, err := evalNode(el, env, source)
		if err != nil {
			return Evaluated{}, err
		}
		if v.IsList {
			return Evaluated{}, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprTypeMismatch, source,
				fmt.Errorf("nested lists are not supported"))
		}
		values = append(values, v.Scalar)
	}
	return Evaluated{IsList: true, List: values}, nil
}
