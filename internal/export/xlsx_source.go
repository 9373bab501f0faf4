package export

import (
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/sarvind1/tat-calculator/internal/rowdata"
)

// XLSXRowSource adapts a single-sheet .xlsx workbook into a batch.RowSource:
// the first row is a header naming each column, subsequent rows are PO data
// (§6's "row source" external interface, instantiated for tabular ingestion).
type XLSXRowSource struct {
	idColumn string
	rows     []rowdata.Row
}

// NewXLSXRowSource reads sheet from the workbook at path and indexes rows by
// the given PO id column name.
func NewXLSXRowSource(path, sheet, idColumn string) (*XLSXRowSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return &XLSXRowSource{idColumn: idColumn}, nil
	}

	header := raw[0]
	rows := make([]rowdata.Row, 0, len(raw)-1)
	for _, record := range raw[1:] {
		rows = append(rows, decodeRow(header, record))
	}

	return &XLSXRowSource{idColumn: idColumn, rows: rows}, nil
}

// Rows implements batch.RowSource.
func (s *XLSXRowSource) Rows() ([]rowdata.Row, error) { return s.rows, nil }

// IDColumn implements batch.RowSource.
func (s *XLSXRowSource) IDColumn() string { return s.idColumn }

func decodeRow(header, record []string) rowdata.Row {
	row := make(rowdata.MapRow, len(header))
	for i, col := range header {
		if i >= len(record) {
			row[col] = rowdata.Null()
			continue
		}
		row[col] = decodeCell(record[i])
	}
	return row
}

// decodeCell infers a scalar kind from a spreadsheet cell's text: cells
// carry no type tag by the time GetRows returns, so numbers and everything
// else must be distinguished heuristically, matching what a tabular row
// source that isn't allowed attribute-level access would do.
func decodeCell(text string) rowdata.Value {
	if text == "" {
		return rowdata.Null()
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return rowdata.Number(n)
	}
	return rowdata.String(text)
}
