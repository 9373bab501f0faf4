package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sarvind1/tat-calculator/internal/tui/components"
)

// RowStartMsg indicates a PO row has begun processing.
type RowStartMsg struct {
	POID string
	Time time.Time
}

// RowCompleteMsg reports that a PO row has finished processing, successfully
// or not.
type RowCompleteMsg struct {
	POID    string
	Errored bool
	Message string
}

// MethodTallyMsg reports the classification methods used across a row's
// resolved stages, for the running Methods-used breakdown (§4.4).
type MethodTallyMsg struct {
	Counts map[string]int
}

type tickMsg struct{}

// Model contains the Bubbletea state for the batch-run progress dashboard.
type Model struct {
	runID          string
	rows           map[string]components.RowEntry
	order          []string
	methodCounts   map[string]int
	total          int
	completed      int
	errored        int
	finished       bool
	cancelled      bool
	nonInteractive bool
}

// NewModel constructs a TUI model for a batch run over the given PO ids,
// known up front from the row source.
func NewModel(runID string, poIDs []string, nonInteractive bool) Model {
	m := Model{
		runID:          runID,
		rows:           make(map[string]components.RowEntry),
		order:          make([]string, 0, len(poIDs)),
		methodCounts:   make(map[string]int),
		nonInteractive: nonInteractive,
	}

	for _, id := range poIDs {
		m.ensureRow(id)
	}

	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// TotalRows returns the total number of PO rows tracked by the model.
func (m Model) TotalRows() int {
	return m.total
}

// CompletedRows returns the number of rows that have finished (successfully
// or with an error).
func (m Model) CompletedRows() int {
	return m.completed
}

// IsFinished reports whether the batch run has completed.
func (m Model) IsFinished() bool {
	return m.finished
}

func (m *Model) ensureRow(poID string) {
	if poID == "" {
		return
	}
	if _, exists := m.rows[poID]; !exists {
		m.rows[poID] = components.RowEntry{POID: poID, Status: components.RowPending}
		m.order = append(m.order, poID)
		m.total++
	}
}

func (m *Model) markFinishedIfComplete() {
	if m.total > 0 && m.completed >= m.total {
		m.finished = true
	}
}
