package components

// RowStatus describes where a PO row stands in a batch run.
type RowStatus string

const (
	RowPending RowStatus = "pending"
	RowRunning RowStatus = "running"
	RowDone    RowStatus = "done"
	RowErrored RowStatus = "errored"
)

// RowEntry represents a single PO row's processing status for rendering.
type RowEntry struct {
	POID    string
	Status  RowStatus
	Message string
}

// RowList renders a list of PO rows with their current status.
type RowList struct {
	entries []RowEntry
}

// NewRowList constructs a row list component.
func NewRowList(order []string, rows map[string]RowEntry) RowList {
	entries := make([]RowEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, rows[id])
	}
	return RowList{entries: entries}
}

// Entries returns the ordered row entries.
func (r RowList) Entries() []RowEntry {
	clone := make([]RowEntry, len(r.entries))
	copy(clone, r.entries)
	return clone
}
