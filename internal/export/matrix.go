// Package export pivots a batch run's per-PO results into the wide matrix
// workbook described in §4.5 and §6: one sheet per facet, rows indexed by
// PO id, columns indexed by stage in catalog order.
package export

import (
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sarvind1/tat-calculator/internal/config"
	"github.com/sarvind1/tat-calculator/internal/stage"
	"github.com/sarvind1/tat-calculator/internal/tat"
)

const idColumnHeader = "PO_ID"

// sheet names match §6's seven named facets exactly.
const (
	SheetMethod            = "Method"
	SheetActualTimestamps   = "Actual_Timestamps"
	SheetTargetTimestamps   = "Target_Timestamps"
	SheetFinalTimestamps    = "Final_Timestamps"
	SheetDelay              = "Delay"
	SheetPrecedenceMethod   = "Precedence_Method"
	SheetCalculationSource  = "Calculation_Source"
)

var sheetOrder = []string{
	SheetMethod,
	SheetActualTimestamps,
	SheetTargetTimestamps,
	SheetFinalTimestamps,
	SheetDelay,
	SheetPrecedenceMethod,
	SheetCalculationSource,
}

// WriteMatrix builds the seven-sheet workbook and saves it at path.
func WriteMatrix(path string, catalog *config.Catalog, results []*tat.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range sheetOrder {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	for _, name := range sheetOrder {
		if err := writeHeader(f, name, catalog); err != nil {
			return err
		}
	}

	for rowIdx, result := range results {
		excelRow := rowIdx + 2 // header occupies row 1
		for _, name := range sheetOrder {
			if err := f.SetCellValue(name, cellRef(1, excelRow), result.POID); err != nil {
				return err
			}
		}
		for colIdx, desc := range catalog.Stages {
			res, ok := result.Stages[desc.ID]
			if !ok {
				continue
			}
			col := colIdx + 2
			if err := writeFacets(f, excelRow, col, res); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func writeHeader(f *excelize.File, sheet string, catalog *config.Catalog) error {
	if err := f.SetCellValue(sheet, cellRef(1, 1), idColumnHeader); err != nil {
		return err
	}
	for i, desc := range catalog.Stages {
		if err := f.SetCellValue(sheet, cellRef(i+2, 1), desc.Name); err != nil {
			return err
		}
	}
	return nil
}

func writeFacets(f *excelize.File, row, col int, res *stage.Result) error {
	setters := map[string]interface{}{
		SheetMethod:            string(res.Method),
		SheetPrecedenceMethod:  string(res.PrecedenceMethod),
		SheetCalculationSource: res.CalculationSource,
		SheetActualTimestamps:  instantCell(res.ActualTimestamp),
		SheetTargetTimestamps:  instantCell(res.TargetTimestamp),
		SheetFinalTimestamps:   instantCell(res.FinalTimestamp),
		SheetDelay:             delayCell(res.Delay),
	}
	for sheet, value := range setters {
		if value == nil {
			// Missing cells are represented as empty (§4.5); skip the write.
			continue
		}
		if err := f.SetCellValue(sheet, cellRef(col, row), value); err != nil {
			return err
		}
	}
	return nil
}

func instantCell(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func delayCell(d *int) interface{} {
	if d == nil {
		return nil
	}
	return *d
}

func cellRef(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
