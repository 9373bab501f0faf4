package components

import (
	"fmt"
	"strings"
)

// MethodCount reports how many stages across the batch resolved via a given
// classification method (§4.4's per-run Method_Used_Summary).
type MethodCount struct {
	Method string
	Count  int
}

// SummaryData aggregates counts for rendering a batch-run summary.
type SummaryData struct {
	Total        int
	Completed    int
	Errored      int
	Finished     bool
	Cancelled    bool
	MethodCounts []MethodCount
}

// Summary renders a textual batch-run summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Rows: %d/%d processed", s.data.Completed, s.data.Total))
	}
	if s.data.Errored > 0 {
		lines = append(lines, fmt.Sprintf("Rows failed: %d", s.data.Errored))
	}

	if s.data.Cancelled {
		lines = append(lines, "Batch cancelled")
	} else if s.data.Finished && s.data.Total > 0 {
		if s.data.Completed == s.data.Total && s.data.Errored == 0 {
			lines = append(lines, "Batch finished successfully")
		} else {
			lines = append(lines, "Batch finished with errors")
		}
	}

	if len(s.data.MethodCounts) > 0 {
		lines = append(lines, "Methods used:")
		for _, mc := range s.data.MethodCounts {
			lines = append(lines, fmt.Sprintf("  %s: %d", mc.Method, mc.Count))
		}
	}

	return strings.Join(lines, "\n")
}
