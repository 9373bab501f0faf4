package batch

import "github.com/sarvind1/tat-calculator/internal/rowdata"

// SliceRowSource adapts an already-materialized slice of rows into a
// RowSource, letting a caller inspect rows (e.g. to enumerate PO ids for a
// progress dashboard) before handing the same rows to a Driver.
type SliceRowSource struct {
	idColumn string
	rows     []rowdata.Row
}

// NewSliceRowSource wraps rows with the given id column name.
func NewSliceRowSource(idColumn string, rows []rowdata.Row) *SliceRowSource {
	return &SliceRowSource{idColumn: idColumn, rows: rows}
}

// Rows returns the wrapped rows unchanged.
func (s *SliceRowSource) Rows() ([]rowdata.Row, error) {
	return s.rows, nil
}

// IDColumn returns the configured id column name.
func (s *SliceRowSource) IDColumn() string {
	return s.idColumn
}
