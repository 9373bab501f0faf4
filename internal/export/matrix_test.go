package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sarvind1/tat-calculator/internal/config"
	"github.com/sarvind1/tat-calculator/internal/stage"
	"github.com/sarvind1/tat-calculator/internal/tat"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWriteMatrixProducesSevenNamedSheets(t *testing.T) {
	t.Parallel()

	catalog := &config.Catalog{Stages: []config.StageDescriptor{
		{ID: "1", Name: "Approval"},
		{ID: "2", Name: "Confirmation"},
	}}

	final1 := date(2025, 6, 2)
	target1 := date(2025, 6, 2)
	delay1 := 0
	results := []*tat.Result{
		{
			POID: "PO-1",
			Stages: map[string]*stage.Result{
				"1": {
					StageID:           "1",
					Method:            stage.Actual,
					TargetTimestamp:   &target1,
					ActualTimestamp:   &final1,
					FinalTimestamp:    &final1,
					Delay:             &delay1,
					PrecedenceMethod:  stage.PrecedenceActualOrAdjusted,
					CalculationSource: "actual_from_field",
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "matrix.xlsx")
	require.NoError(t, WriteMatrix(path, catalog, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for _, name := range sheetOrder {
		assert.Contains(t, f.GetSheetList(), name)
	}

	header, err := f.GetCellValue(SheetMethod, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Approval", header)

	idCell, err := f.GetCellValue(SheetMethod, "A2")
	require.NoError(t, err)
	assert.Equal(t, "PO-1", idCell)

	methodCell, err := f.GetCellValue(SheetMethod, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Actual", methodCell)

	delayCell, err := f.GetCellValue(SheetDelay, "B2")
	require.NoError(t, err)
	assert.Equal(t, "0", delayCell)

	// Missing stage "2" for PO-1 renders as an empty cell.
	missing, err := f.GetCellValue(SheetMethod, "C2")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestXLSXRowSourceRoundTrip(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "po_id"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "lead_time"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "PO-1"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "3"))
	path := filepath.Join(t.TempDir(), "rows.xlsx")
	require.NoError(t, f.SaveAs(path))

	source, err := NewXLSXRowSource(path, "Sheet1", "po_id")
	require.NoError(t, err)
	rows, err := source.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	v, ok := rows[0].Get("po_id")
	require.True(t, ok)
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "PO-1", s)

	lv, ok := rows[0].Get("lead_time")
	require.True(t, ok)
	n, ok := lv.AsNumber()
	require.True(t, ok)
	assert.Equal(t, float64(3), n)
}
