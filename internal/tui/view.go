package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sarvind1/tat-calculator/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	title := titleStyle.Render(fmt.Sprintf("tatcalc • run %s", m.runID))
	sections = append(sections, title)

	progress := components.NewProgress(m.total).View(m.completed)
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	listComp := components.NewRowList(m.order, m.rows)
	entries := listComp.Entries()
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Rows"))
		sections = append(sections, renderRowEntries(entries))
	}

	summary := components.NewSummary(components.SummaryData{
		Total:        m.total,
		Completed:    m.completed,
		Errored:      m.errored,
		Finished:     m.finished,
		Cancelled:    m.cancelled,
		MethodCounts: methodCounts(m.methodCounts),
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderRowEntries(entries []components.RowEntry) string {
	var lines []string
	for _, entry := range entries {
		icon := StatusIcon(entry.Status)
		line := fmt.Sprintf(" %s %s", icon, entry.POID)
		if strings.TrimSpace(entry.Message) != "" {
			line = fmt.Sprintf("%s — %s", line, entry.Message)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func methodCounts(counts map[string]int) []components.MethodCount {
	if len(counts) == 0 {
		return nil
	}
	methods := make([]string, 0, len(counts))
	for method := range counts {
		methods = append(methods, method)
	}
	sort.Strings(methods)

	out := make([]components.MethodCount, 0, len(methods))
	for _, method := range methods {
		out = append(out, components.MethodCount{Method: method, Count: counts[method]})
	}
	return out
}

// StatusIcon returns the glyph representing a PO row's status.
func StatusIcon(status components.RowStatus) string {
	switch status {
	case components.RowDone:
		return successStyle.Render("✓")
	case components.RowRunning:
		return runningStyle.Render("⏳")
	case components.RowErrored:
		return failureStyle.Render("✗")
	default:
		return pendingStyle.Render("…")
	}
}
