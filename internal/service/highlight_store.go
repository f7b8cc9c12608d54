package service

import (
	"strings"

	"pdf-annotator/internal/domain"
	apperrors "pdf-annotator/pkg/errors"

	"github.com/google/uuid"
)

// HighlightStore owns the canonical in-memory highlight collection for the
// currently open document. It is order-preserving: Add prepends so the most
// recent highlight displays first, and filtering only subsets, never
// reorders.
//
// The store follows the single event-loop model of the UI it backs: mutations
// are synchronous and the store is owned by exactly one DocumentSession, so
// it carries no internal locking.
type HighlightStore struct {
	highlights []domain.Highlight
	pageCount  int
	logger     domain.Logger
}

func NewHighlightStore(logger domain.Logger) *HighlightStore {
	return &HighlightStore{
		highlights: []domain.Highlight{},
		logger:     logger,
	}
}

// SetPageCount records the open document's page count, used to validate page
// numbers at creation time. Zero disables the upper bound (page count not
// yet reported by the renderer).
func (s *HighlightStore) SetPageCount(count int) {
	s.pageCount = count
}

// Add assigns a fresh id to the draft, prepends it to the collection and
// returns the full record.
func (s *HighlightStore) Add(draft domain.DraftHighlight) (domain.Highlight, error) {
	if draft.Position.PageNumber < 1 {
		return domain.Highlight{}, apperrors.NewValidationError("page number must be at least 1")
	}
	if s.pageCount > 0 && draft.Position.PageNumber > s.pageCount {
		return domain.Highlight{}, apperrors.NewValidationError("page number exceeds document page count")
	}

	highlight := domain.Highlight{
		ID:       uuid.NewString(),
		Comment:  draft.Comment,
		Content:  draft.Content,
		Position: draft.Position,
	}
	s.highlights = append([]domain.Highlight{highlight}, s.highlights...)
	return highlight, nil
}

// Update shallow-merges position and content fields of an existing
// highlight, leaving the comment untouched. Unknown ids are a silent no-op.
func (s *HighlightStore) Update(id string, position domain.PositionPatch, content domain.ContentPatch) {
	for i := range s.highlights {
		if s.highlights[i].ID != id {
			continue
		}
		h := &s.highlights[i]
		if position.BoundingRect != nil {
			h.Position.BoundingRect = *position.BoundingRect
		}
		if position.Rects != nil {
			h.Position.Rects = position.Rects
		}
		if content.Text != nil {
			h.Content.Text = *content.Text
		}
		if content.Image != nil {
			h.Content.Image = *content.Image
		}
		return
	}
	s.logger.Debug("Update on unknown highlight ignored", "highlight_id", id)
}

// UpdateComment replaces the comment text of an existing highlight. Unknown
// ids are a silent no-op.
func (s *HighlightStore) UpdateComment(id, text string) {
	for i := range s.highlights {
		if s.highlights[i].ID == id {
			s.highlights[i].Comment.Text = text
			return
		}
	}
}

// Remove deletes the highlight with the given id. Removing an unknown id is
// a no-op, so repeated removes are idempotent.
func (s *HighlightStore) Remove(id string) {
	for i := range s.highlights {
		if s.highlights[i].ID == id {
			s.highlights = append(s.highlights[:i], s.highlights[i+1:]...)
			return
		}
	}
}

// Reset clears the entire collection. Used when switching documents.
func (s *HighlightStore) Reset() {
	s.highlights = []domain.Highlight{}
}

// GetByID returns the highlight with the given id.
func (s *HighlightStore) GetByID(id string) (domain.Highlight, bool) {
	for _, h := range s.highlights {
		if h.ID == id {
			return h, true
		}
	}
	return domain.Highlight{}, false
}

// List returns the highlights matching the filter token, preserving store
// order. The match is case-insensitive against the comment label, falling
// back to the comment text for highlights without a label. An empty filter
// returns everything.
func (s *HighlightStore) List(filter string) []domain.Highlight {
	out := make([]domain.Highlight, 0, len(s.highlights))
	for _, h := range s.highlights {
		if matchesFilter(h, filter) {
			out = append(out, h)
		}
	}
	return out
}

// Len reports the total number of highlights in the store.
func (s *HighlightStore) Len() int {
	return len(s.highlights)
}

// Replace swaps the whole collection for a freshly loaded one (full replace,
// not merge).
func (s *HighlightStore) Replace(highlights []domain.Highlight) {
	s.highlights = make([]domain.Highlight, len(highlights))
	copy(s.highlights, highlights)
}

// Snapshot returns a copy of the collection in store order, suitable for
// handing to the sync adapter.
func (s *HighlightStore) Snapshot() []domain.Highlight {
	out := make([]domain.Highlight, len(s.highlights))
	copy(out, s.highlights)
	return out
}

func matchesFilter(h domain.Highlight, filter string) bool {
	if filter == "" {
		return true
	}
	token := strings.ToUpper(filter)
	if h.Comment.Label != "" {
		return strings.Contains(strings.ToUpper(h.Comment.Label), token)
	}
	return strings.Contains(strings.ToUpper(h.Comment.Text), token)
}
