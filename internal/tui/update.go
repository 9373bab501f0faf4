package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sarvind1/tat-calculator/internal/tui/components"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil
	case RowStartMsg:
		m.ensureRow(msg.POID)
		row := m.rows[msg.POID]
		row.Status = components.RowRunning
		m.rows[msg.POID] = row
		return m, nil
	case RowCompleteMsg:
		if msg.POID == "" {
			return m, nil
		}
		m.ensureRow(msg.POID)
		existing := m.rows[msg.POID]
		previouslyDone := existing.Status == components.RowDone || existing.Status == components.RowErrored
		status := components.RowDone
		if msg.Errored {
			status = components.RowErrored
			m.errored++
		}
		m.rows[msg.POID] = components.RowEntry{POID: msg.POID, Status: status, Message: msg.Message}
		if !previouslyDone {
			m.completed++
			m.markFinishedIfComplete()
		}
		return m, nil
	case MethodTallyMsg:
		for method, count := range msg.Counts {
			m.methodCounts[method] += count
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.finished = true
			return m, nil
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
