package service

import (
	"testing"

	"pdf-annotator/internal/domain"
)

// Mock implementations shared by the service package tests.
type MockLogger struct {
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.messages = append(m.messages, "INFO: "+msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.messages = append(m.messages, "ERROR: "+msg+" - "+err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.messages = append(m.messages, "DEBUG: "+msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.messages = append(m.messages, "WARN: "+msg)
}

func testDraft(label, text string) domain.DraftHighlight {
	return domain.DraftHighlight{
		Comment: domain.Comment{Text: text, Label: label},
		Content: domain.Content{Text: text},
		Position: domain.Position{
			BoundingRect: domain.Rect{X1: 10, Y1: 10, X2: 110, Y2: 30, Width: 100, Height: 20},
			PageNumber:   1,
		},
	}
}

func TestHighlightStore_AddAssignsDistinctIDs(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		h, err := store.Add(testDraft("ISSUE", "highlight"))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if h.ID == "" {
			t.Fatal("Expected a non-empty id")
		}
		if seen[h.ID] {
			t.Fatalf("Expected distinct ids, got duplicate %s", h.ID)
		}
		seen[h.ID] = true
	}
}

func TestHighlightStore_AddPrepends(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())

	first, _ := store.Add(testDraft("ISSUE", "first"))
	second, _ := store.Add(testDraft("ISSUE", "second"))

	all := store.List("")
	if len(all) != 2 {
		t.Fatalf("Expected 2 highlights, got %d", len(all))
	}
	if all[0].ID != second.ID {
		t.Errorf("Expected newest highlight first, got %s", all[0].ID)
	}
	if all[1].ID != first.ID {
		t.Errorf("Expected oldest highlight last, got %s", all[1].ID)
	}
}

func TestHighlightStore_AddRejectsInvalidPage(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())

	draft := testDraft("ISSUE", "bad page")
	draft.Position.PageNumber = 0
	if _, err := store.Add(draft); err == nil {
		t.Error("Expected error for page number 0")
	}

	store.SetPageCount(5)
	draft.Position.PageNumber = 6
	if _, err := store.Add(draft); err == nil {
		t.Error("Expected error for page number beyond page count")
	}

	draft.Position.PageNumber = 5
	if _, err := store.Add(draft); err != nil {
		t.Errorf("Expected page 5 of 5 to be valid, got %v", err)
	}
}

func TestHighlightStore_AddThenGetByID(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())

	added, err := store.Add(domain.DraftHighlight{
		Content:  domain.Content{Text: "foo"},
		Position: domain.Position{PageNumber: 1},
		Comment:  domain.Comment{Text: "ISSUE"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, ok := store.GetByID(added.ID)
	if !ok {
		t.Fatal("Expected to find the added highlight")
	}
	if got.Comment.Text != "ISSUE" {
		t.Errorf("Expected comment text 'ISSUE', got '%s'", got.Comment.Text)
	}
	if got.Content.Text != "foo" {
		t.Errorf("Expected content text 'foo', got '%s'", got.Content.Text)
	}
}

func TestHighlightStore_UpdateMergesPositionAndContent(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	h, _ := store.Add(testDraft("ISSUE", "area"))

	newRect := domain.Rect{X1: 1, Y1: 2, X2: 3, Y2: 4, Width: 2, Height: 2}
	image := "data:image/png;base64,xyz"
	store.Update(h.ID,
		domain.PositionPatch{BoundingRect: &newRect},
		domain.ContentPatch{Image: &image},
	)

	got, _ := store.GetByID(h.ID)
	if got.Position.BoundingRect != newRect {
		t.Errorf("Expected bounding rect to be replaced, got %+v", got.Position.BoundingRect)
	}
	if got.Content.Image != image {
		t.Errorf("Expected image to be set, got '%s'", got.Content.Image)
	}
	if got.Content.Text != "area" {
		t.Errorf("Expected untouched content text to survive merge, got '%s'", got.Content.Text)
	}
	if got.Comment.Text != "area" {
		t.Errorf("Expected comment to be left untouched, got '%s'", got.Comment.Text)
	}
	if got.Position.PageNumber != 1 {
		t.Errorf("Expected page number to survive merge, got %d", got.Position.PageNumber)
	}
}

func TestHighlightStore_UpdateUnknownIDIsNoOp(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	h, _ := store.Add(testDraft("ISSUE", "only"))

	rect := domain.Rect{X1: 9}
	store.Update("missing", domain.PositionPatch{BoundingRect: &rect}, domain.ContentPatch{})

	all := store.List("")
	if len(all) != 1 {
		t.Fatalf("Expected collection unchanged, got %d highlights", len(all))
	}
	if all[0].ID != h.ID || all[0].Position.BoundingRect == rect {
		t.Error("Expected existing highlight to be untouched")
	}
}

func TestHighlightStore_RemoveIsIdempotent(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	h, _ := store.Add(testDraft("ISSUE", "to remove"))
	keep, _ := store.Add(testDraft("AXIOM", "to keep"))

	store.Remove(h.ID)
	if store.Len() != 1 {
		t.Fatalf("Expected 1 highlight after remove, got %d", store.Len())
	}

	// Second remove of the same id is a no-op.
	store.Remove(h.ID)
	if store.Len() != 1 {
		t.Fatalf("Expected second remove to be a no-op, got %d highlights", store.Len())
	}
	if _, ok := store.GetByID(keep.ID); !ok {
		t.Error("Expected unrelated highlight to survive")
	}
}

func TestHighlightStore_Reset(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	store.Add(testDraft("ISSUE", "one"))
	store.Add(testDraft("AXIOM", "two"))

	store.Reset()
	if store.Len() != 0 {
		t.Errorf("Expected empty store after reset, got %d", store.Len())
	}
}

func TestHighlightStore_ListFilterIsOrderPreservingSubsequence(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	store.Add(testDraft("ISSUE", "first issue"))
	store.Add(testDraft("LEGAL_TEST", "a test"))
	store.Add(testDraft("ISSUE", "second issue"))

	// Case-insensitive filter returns exactly the two ISSUE records in
	// store order.
	filtered := store.List("issue")
	if len(filtered) != 2 {
		t.Fatalf("Expected 2 ISSUE highlights, got %d", len(filtered))
	}
	if filtered[0].Content.Text != "second issue" {
		t.Errorf("Expected newest issue first, got '%s'", filtered[0].Content.Text)
	}
	if filtered[1].Content.Text != "first issue" {
		t.Errorf("Expected oldest issue last, got '%s'", filtered[1].Content.Text)
	}

	// The filtered view is a subsequence of the full list.
	all := store.List("")
	idx := 0
	for _, h := range all {
		if idx < len(filtered) && filtered[idx].ID == h.ID {
			idx++
		}
	}
	if idx != len(filtered) {
		t.Error("Expected filtered list to be a subsequence of the full list")
	}
}

func TestHighlightStore_EmptyFilterReturnsAll(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	store.Add(testDraft("ISSUE", "one"))
	store.Add(testDraft("CONCLUSION", "two"))

	if len(store.List("")) != store.Len() {
		t.Errorf("Expected empty filter to return all %d highlights", store.Len())
	}
}

func TestHighlightStore_ReplaceSwapsWholeCollection(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	store.Add(testDraft("ISSUE", "old one"))
	store.Add(testDraft("ISSUE", "old two"))

	replacement := []domain.Highlight{{
		ID:       "h1",
		Comment:  domain.Comment{Text: "loaded"},
		Position: domain.Position{PageNumber: 2},
	}}
	store.Replace(replacement)

	all := store.List("")
	if len(all) != 1 {
		t.Fatalf("Expected full replace to yield 1 highlight, got %d", len(all))
	}
	if all[0].ID != "h1" {
		t.Errorf("Expected loaded highlight, got %s", all[0].ID)
	}
}

func TestHighlightStore_UpdateComment(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	h, _ := store.Add(testDraft("", ""))

	store.UpdateComment(h.ID, "now annotated")
	got, _ := store.GetByID(h.ID)
	if got.Comment.Text != "now annotated" {
		t.Errorf("Expected comment to be updated, got '%s'", got.Comment.Text)
	}

	// Unknown id is silent.
	store.UpdateComment("missing", "whatever")
	if store.Len() != 1 {
		t.Errorf("Expected collection unchanged, got %d", store.Len())
	}
}
