package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarvind1/tat-calculator/internal/rowdata"
)

func TestSliceRowSourceReturnsWrappedRows(t *testing.T) {
	t.Parallel()

	rows := []rowdata.Row{
		rowdata.MapRow{"po_id": rowdata.String("PO-1")},
	}
	source := NewSliceRowSource("po_id", rows)

	got, err := source.Rows()
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Equal(t, "po_id", source.IDColumn())
}
