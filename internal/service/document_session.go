package service

import (
	"context"

	"pdf-annotator/internal/domain"
	apperrors "pdf-annotator/pkg/errors"
)

// DocumentSession owns the highlight state for one open document: the store,
// the hash router, the navigation cursor and the remote sync client. It is
// the only writer of the store, matching the single event-loop model of the
// UI it backs.
//
// Network calls suspend only at their await point; the session stays
// re-entrant during the wait, so a second action (switching documents) can
// race an in-flight load or save. Every async completion therefore compares
// the file name it captured against the live one and discards itself
// silently when the context has moved on. There is no hard abort of
// in-flight requests.
type DocumentSession struct {
	store    *HighlightStore
	router   *HashRouter
	nav      *Navigator
	sync     domain.HighlightSyncClient
	renderer domain.Renderer
	logger   domain.Logger

	userID   string
	fileName string
	sections []domain.Section
	entities []string
}

func NewDocumentSession(sync domain.HighlightSyncClient, renderer domain.Renderer, logger domain.Logger, userID string) *DocumentSession {
	store := NewHighlightStore(logger)
	router := NewHashRouter()

	s := &DocumentSession{
		store:    store,
		router:   router,
		nav:      NewNavigator(store, router),
		sync:     sync,
		renderer: renderer,
		logger:   logger,
		userID:   userID,
	}
	router.OnChange(s.scrollToHighlightFromHash)
	return s
}

// Store exposes the session's highlight store.
func (s *DocumentSession) Store() *HighlightStore {
	return s.store
}

// Router exposes the session's hash router.
func (s *DocumentSession) Router() *HashRouter {
	return s.router
}

// Navigator exposes the session's navigation cursor.
func (s *DocumentSession) Navigator() *Navigator {
	return s.nav
}

// FileName returns the currently open document, empty when none is open.
func (s *DocumentSession) FileName() string {
	return s.fileName
}

// Sections returns the read-only clause sections of the open document.
func (s *DocumentSession) Sections() []domain.Section {
	return s.sections
}

// Entities returns the entities extracted for the open document.
func (s *DocumentSession) Entities() []string {
	return s.entities
}

// OpenDocument loads the highlight set for fileName, replacing the session's
// whole state. A failed load leaves the store empty and returns the error; an
// empty server response is a valid empty document, not a failure.
func (s *DocumentSession) OpenDocument(ctx context.Context, fileName string) error {
	s.fileName = fileName
	s.store.Reset()
	s.router.ResetHash()
	s.sections = nil
	s.entities = nil

	captured := fileName
	loaded, err := s.sync.Load(ctx, s.userID, fileName)

	// The user may have switched documents while the load was in flight;
	// a response for a superseded document is dropped on the floor.
	if s.fileName != captured {
		s.logger.Debug("Discarding stale load response", "file", captured, "current", s.fileName)
		return nil
	}
	if err != nil {
		return apperrors.NewNetworkError("failed to load highlights", err)
	}

	s.store.Replace(loaded.Highlights)
	s.sections = loaded.Sections
	s.entities = loaded.Entities
	s.logger.Info("Document opened", "file", fileName, "highlights", len(loaded.Highlights))
	return nil
}

// SaveHighlights uploads the complete current state as a snapshot overwrite.
// A failed save leaves local state untouched and returns the error.
func (s *DocumentSession) SaveHighlights(ctx context.Context) (string, error) {
	if s.fileName == "" {
		return "", apperrors.NewValidationError("no document is open")
	}

	captured := s.fileName
	payload := &domain.FileHighlights{
		Highlights: s.store.Snapshot(),
		Name:       captured,
		Entities:   s.entities,
		Sections:   s.sections,
	}

	message, err := s.sync.Save(ctx, payload)
	if s.fileName != captured {
		s.logger.Debug("Discarding stale save response", "file", captured, "current", s.fileName)
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewNetworkError("failed to save highlights", err)
	}

	s.logger.Info("Highlights saved", "file", captured, "count", len(payload.Highlights))
	return message, nil
}

// scrollToHighlightFromHash resolves the fragment against the store and asks
// the renderer to scroll there. An id that no longer resolves is normal (the
// highlight may belong to a since-replaced document) and is ignored.
func (s *DocumentSession) scrollToHighlightFromHash(string) {
	id := s.router.ParseIDFromHash()
	if id == "" {
		return
	}
	if _, ok := s.store.GetByID(id); ok {
		s.renderer.ScrollToHighlight(id)
	}
}

// ScrolledAway is the renderer's notification that the view left all tracked
// highlights; the deep-link fragment is cleared so it cannot go stale.
func (s *DocumentSession) ScrolledAway() {
	s.router.ResetHash()
}
