package service

import (
	"testing"

	"pdf-annotator/internal/domain"
)

// MockRenderer stands in for the external PDF layout engine.
type MockRenderer struct {
	scrolledTo  []string
	screenshots int
}

func (m *MockRenderer) ViewportToScaled(viewport domain.Rect) domain.Rect {
	// The fake transform halves every coordinate so tests can tell scaled
	// rects from raw viewport rects.
	return domain.Rect{
		X1: viewport.X1 / 2, Y1: viewport.Y1 / 2,
		X2: viewport.X2 / 2, Y2: viewport.Y2 / 2,
		Width: viewport.Width / 2, Height: viewport.Height / 2,
	}
}

func (m *MockRenderer) ScrollToHighlight(id string) {
	m.scrolledTo = append(m.scrolledTo, id)
}

func (m *MockRenderer) Screenshot(viewport domain.Rect) string {
	m.screenshots++
	return "data:image/png;base64,mock"
}

func testSelection(text string) domain.Selection {
	return domain.Selection{
		Content: domain.Content{Text: text},
		Position: domain.Position{
			BoundingRect: domain.Rect{X1: 10, Y1: 10, X2: 50, Y2: 20, Width: 40, Height: 10},
			PageNumber:   2,
		},
		Type: domain.SelectionText,
	}
}

func TestSelectionPipeline_TwoPhaseAuthoringCommits(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	pipeline := NewSelectionPipeline(store, &MockRenderer{}, NewMockLogger())

	if err := pipeline.SelectionFinished(testSelection("quoted text")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if pipeline.State() != StateSelected {
		t.Fatalf("Expected StateSelected, got %v", pipeline.State())
	}

	if err := pipeline.ShowPrompt(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := pipeline.ExpandCommentForm(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	h, err := pipeline.SubmitComment("looks important")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if pipeline.State() != StateIdle {
		t.Errorf("Expected pipeline back at idle, got %v", pipeline.State())
	}

	stored, ok := store.GetByID(h.ID)
	if !ok {
		t.Fatal("Expected highlight in store")
	}
	if stored.Comment.Text != "looks important" {
		t.Errorf("Expected comment 'looks important', got '%s'", stored.Comment.Text)
	}
	if stored.Content.Text != "quoted text" {
		t.Errorf("Expected content 'quoted text', got '%s'", stored.Content.Text)
	}
}

func TestSelectionPipeline_SnapshotSurvivesGhostMutation(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	pipeline := NewSelectionPipeline(store, &MockRenderer{}, NewMockLogger())

	_ = pipeline.SelectionFinished(testSelection("original"))
	_ = pipeline.ShowPrompt()
	_ = pipeline.ExpandCommentForm()

	// A reflow reports a new selection after the snapshot was taken; the
	// in-flight authoring must not pick it up.
	_ = pipeline.SelectionFinished(testSelection("reflowed"))
	pipeline.state = StateCommenting // the reflow does not close the open form

	h, err := pipeline.SubmitComment("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if h.Content.Text != "original" {
		t.Errorf("Expected snapshotted content 'original', got '%s'", h.Content.Text)
	}
}

func TestSelectionPipeline_EmptyCommentIsValid(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	pipeline := NewSelectionPipeline(store, &MockRenderer{}, NewMockLogger())

	_ = pipeline.SelectionFinished(testSelection("text"))
	_ = pipeline.ShowPrompt()
	_ = pipeline.ExpandCommentForm()

	h, err := pipeline.SubmitComment("")
	if err != nil {
		t.Fatalf("Expected empty comment to be accepted, got %v", err)
	}
	if _, ok := store.GetByID(h.ID); !ok {
		t.Error("Expected highlight with empty comment in store")
	}
}

func TestSelectionPipeline_CancelDiscardsWithoutMutation(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	pipeline := NewSelectionPipeline(store, &MockRenderer{}, NewMockLogger())

	_ = pipeline.SelectionFinished(testSelection("to discard"))
	_ = pipeline.ShowPrompt()
	_ = pipeline.ExpandCommentForm()
	pipeline.Cancel()

	if pipeline.State() != StateIdle {
		t.Errorf("Expected idle after cancel, got %v", pipeline.State())
	}
	if store.Len() != 0 {
		t.Errorf("Expected store untouched, got %d highlights", store.Len())
	}

	if _, err := pipeline.SubmitComment("late"); err == nil {
		t.Error("Expected submit after cancel to be rejected")
	}
}

func TestSelectionPipeline_OutOfStateTransitionsRejected(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	pipeline := NewSelectionPipeline(store, &MockRenderer{}, NewMockLogger())

	if err := pipeline.ShowPrompt(); err == nil {
		t.Error("Expected prompt without selection to be rejected")
	}
	if err := pipeline.ExpandCommentForm(); err == nil {
		t.Error("Expected expand without prompt to be rejected")
	}
}

func TestSelectionPipeline_PenModeCommitsImmediately(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	pipeline := NewSelectionPipeline(store, &MockRenderer{}, NewMockLogger())
	pipeline.SetPenMode(true)

	if err := pipeline.SelectionFinished(testSelection("pen stroke")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if pipeline.State() != StateIdle {
		t.Errorf("Expected pen mode to stay idle, got %v", pipeline.State())
	}
	if store.Len() != 1 {
		t.Fatalf("Expected immediate commit, got %d highlights", store.Len())
	}

	h := store.List("")[0]
	if h.Comment.Text != "" {
		t.Errorf("Expected empty comment in pen mode, got '%s'", h.Comment.Text)
	}

	// Editing later binds to an update, not a second add.
	pipeline.EditComment(h.ID, "added afterwards")
	got, _ := store.GetByID(h.ID)
	if got.Comment.Text != "added afterwards" {
		t.Errorf("Expected updated comment, got '%s'", got.Comment.Text)
	}
	if store.Len() != 1 {
		t.Errorf("Expected no extra highlight, got %d", store.Len())
	}
}

func TestSelectionPipeline_AdjustAreaHighlightConvertsCoordinates(t *testing.T) {
	store := NewHighlightStore(NewMockLogger())
	renderer := &MockRenderer{}
	pipeline := NewSelectionPipeline(store, renderer, NewMockLogger())

	h, _ := store.Add(testDraft("ISSUE", "area highlight"))

	viewport := domain.Rect{X1: 100, Y1: 200, X2: 300, Y2: 400, Width: 200, Height: 200}
	pipeline.AdjustAreaHighlight(h.ID, viewport)

	got, _ := store.GetByID(h.ID)
	want := renderer.ViewportToScaled(viewport)
	if got.Position.BoundingRect != want {
		t.Errorf("Expected scaled rect %+v, got %+v", want, got.Position.BoundingRect)
	}
	if got.Content.Image == "" {
		t.Error("Expected a fresh screenshot on the highlight")
	}
	if renderer.screenshots != 1 {
		t.Errorf("Expected 1 screenshot capture, got %d", renderer.screenshots)
	}
}
