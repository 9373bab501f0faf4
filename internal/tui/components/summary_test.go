package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSummary(t *testing.T) {
	t.Parallel()

	t.Run("creates summary with data", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{
			Total:     10,
			Completed: 5,
			Finished:  false,
		}
		summary := NewSummary(data)
		require.Equal(t, data, summary.data)
	})
}

func TestSummaryView(t *testing.T) {
	t.Parallel()

	t.Run("renders empty summary", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{}
		summary := NewSummary(data)
		view := summary.View()
		require.Equal(t, "", view)
	})

	t.Run("renders rows progress", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{Total: 10, Completed: 5}
		summary := NewSummary(data)
		view := summary.View()
		require.Contains(t, view, "Rows: 5/10 processed")
	})

	t.Run("renders successful completion", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{Total: 10, Completed: 10, Finished: true}
		summary := NewSummary(data)
		view := summary.View()
		require.Contains(t, view, "Rows: 10/10 processed")
		require.Contains(t, view, "Batch finished successfully")
	})

	t.Run("renders finished with errors", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{Total: 10, Completed: 10, Errored: 2, Finished: true}
		summary := NewSummary(data)
		view := summary.View()
		require.Contains(t, view, "Rows failed: 2")
		require.Contains(t, view, "Batch finished with errors")
	})

	t.Run("renders cancelled batch", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{Total: 10, Completed: 3, Cancelled: true}
		summary := NewSummary(data)
		view := summary.View()
		require.Contains(t, view, "Batch cancelled")
	})

	t.Run("renders method breakdown", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{
			Total:     5,
			Completed: 5,
			Finished:  true,
			MethodCounts: []MethodCount{
				{Method: "Actual", Count: 3},
				{Method: "Projected", Count: 2},
			},
		}
		summary := NewSummary(data)
		view := summary.View()
		require.Contains(t, view, "Methods used:")
		require.Contains(t, view, "Actual: 3")
		require.Contains(t, view, "Projected: 2")
	})

	t.Run("renders method breakdown without rows", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{
			MethodCounts: []MethodCount{{Method: "Error", Count: 1}},
		}
		summary := NewSummary(data)
		view := summary.View()
		require.Contains(t, view, "Methods used:")
		require.Contains(t, view, "Error: 1")
	})

	t.Run("omits method breakdown when empty", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{Total: 5, Completed: 5, Finished: true, MethodCounts: []MethodCount{}}
		summary := NewSummary(data)
		view := summary.View()
		require.NotContains(t, view, "Methods used:")
	})

	t.Run("multiline output format", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{
			Total:     10,
			Completed: 10,
			Finished:  true,
			MethodCounts: []MethodCount{
				{Method: "Actual", Count: 10},
			},
		}
		summary := NewSummary(data)
		view := summary.View()
		lines := strings.Split(view, "\n")
		require.True(t, len(lines) >= 3)
	})
}

func TestSummaryViewEdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("cancelled shows before finished message", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{Total: 10, Completed: 5, Finished: true, Cancelled: true}
		summary := NewSummary(data)
		view := summary.View()
		require.Contains(t, view, "Batch cancelled")
		require.NotContains(t, view, "finished successfully")
		require.NotContains(t, view, "finished with errors")
	})

	t.Run("zero completed with finished flag", func(t *testing.T) {
		t.Parallel()
		data := SummaryData{Total: 5, Completed: 0, Finished: true}
		summary := NewSummary(data)
		view := summary.View()
		require.Contains(t, view, "Rows: 0/5 processed")
		require.Contains(t, view, "Batch finished with errors")
	})
}
