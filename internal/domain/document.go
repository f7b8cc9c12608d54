package domain

// Section is a read-only document clause rendered as a collapsible group.
// Sections have no identity beyond their array position and are never
// mutated by this service.
type Section struct {
	Clause string `json:"clause"`
	Text   string `json:"text"`
}

// FileHighlights is the full highlight state for one document: the envelope
// exchanged with the backend on load and save. Saves are whole-snapshot
// overwrites, never incremental diffs.
type FileHighlights struct {
	Highlights []Highlight `json:"highlights"`
	Name       string      `json:"name"`
	Entities   []string    `json:"entities,omitempty"`
	Sections   []Section   `json:"sections,omitempty"`
}
