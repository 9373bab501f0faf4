package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sarvind1/tat-calculator/internal/tui/components"
)

func TestViewRendersBasicLayout(t *testing.T) {
	m := NewModel("run-42", []string{"PO-1", "PO-2"}, false)
	m.rows["PO-1"] = components.RowEntry{POID: "PO-1", Status: components.RowDone, Message: "done"}
	m.rows["PO-2"] = components.RowEntry{POID: "PO-2", Status: components.RowRunning}
	m.completed = 1

	view := m.View()
	require.Contains(t, view, "run-42")
	require.Contains(t, view, "PO-1")
	require.Contains(t, view, "PO-2")
	require.Contains(t, view, "done")
}

func TestViewShowsSummaryWhenFinished(t *testing.T) {
	m := NewModel("run-7", nil, false)
	m.finished = true
	m.completed = 3
	m.total = 4

	view := m.View()
	require.Contains(t, view, "3/4")
}

func TestViewShowsMethodBreakdown(t *testing.T) {
	m := NewModel("run-7", nil, false)
	m.finished = true
	m.methodCounts = map[string]int{"Actual": 2, "Projected": 1}

	view := m.View()
	require.Contains(t, view, "Methods used:")
	require.Contains(t, view, "Actual: 2")
	require.Contains(t, view, "Projected: 1")
}

func TestStatusIcon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   components.RowStatus
		expected string
	}{
		{"done shows checkmark", components.RowDone, "✓"},
		{"running shows hourglass", components.RowRunning, "⏳"},
		{"errored shows cross", components.RowErrored, "✗"},
		{"pending shows ellipsis", components.RowPending, "…"},
		{"unknown shows ellipsis", components.RowStatus("unknown"), "…"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			icon := StatusIcon(tt.status)
			require.Contains(t, icon, tt.expected)
		})
	}
}
