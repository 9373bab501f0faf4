package expr

import (
	"strconv"
	"time"

	"github.com/sarvind1/tat-calculator/internal/rowdata"
)

// AsStageList coerces an Evaluated result into stage-list mode: a
// non-list result is coerced to a singleton, and numeric stage ids are
// coerced to strings (§4.2 Return-type discipline). Coercion never fails
// the calling expression; it degrades silently to an empty list.
func AsStageList(ev Evaluated) []string {
	values := ev.List
	if !ev.IsList {
		if ev.Scalar.IsNull() {
			return nil
		}
		values = []rowdata.Value{ev.Scalar}
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := stageIDOf(v); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func stageIDOf(v rowdata.Value) (string, bool) {
	if s, ok := v.AsString(); ok {
		return s, true
	}
	if n, ok := v.AsNumber(); ok {
		return numberToStageID(n), true
	}
	return "", false
}

func numberToStageID(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// AsInstant coerces an Evaluated result into instant mode: expect an
// instant or null; anything else coerces to null.
func AsInstant(ev Evaluated) (time.Time, bool) {
	if ev.IsList {
		return time.Time{}, false
	}
	return ev.Scalar.AsInstant()
}

// AsRaw returns the Evaluated result's scalar unchanged (raw mode); list
// results coerce to null since raw mode is only used where a scalar is
// expected.
func AsRaw(ev Evaluated) rowdata.Value {
	if ev.IsList {
		return rowdata.Null()
	}
	return ev.Scalar
}
