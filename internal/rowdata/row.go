package rowdata

// Row is the narrow boundary interface the core consumes: a finite mapping
// from column name to scalar value. Missing keys are treated identically to
// a present null (§3: "Missing keys are treated identically to null").
type Row interface {
	// Get returns the value stored under key and whether the key was
	// present at all. Callers that don't care about presence can ignore
	// the second return value; a missing key and Null() both read back
	// as Null().
	Get(key string) (Value, bool)
}

// MapRow is the simplest Row implementation: an in-memory map, used by
// tests and by programmatic callers that already have PO data in hand.
type MapRow map[string]Value

// Get implements Row.
func (r MapRow) Get(key string) (Value, bool) {
	v, ok := r[key]
	if !ok {
		return Null(), false
	}
	return v, true
}

// POID extracts the row's purchase-order identifier from the given column,
// falling back to a positional placeholder when the column is absent
// (§6: "absence is tolerated by substituting Row_<index>").
func POID(row Row, idColumn string, index int) string {
	v, ok := row.Get(idColumn)
	if !ok || v.IsNull() {
		return defaultPOID(index)
	}
	if s, ok := v.AsString(); ok && s != "" {
		return s
	}
	if n, ok := v.AsNumber(); ok {
		return formatNumberID(n)
	}
	return defaultPOID(index)
}

func defaultPOID(index int) string {
	return "Row_" + itoa(index)
}
