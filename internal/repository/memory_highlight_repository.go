package repository

import (
	"sync"

	"pdf-annotator/internal/domain"
)

// MemoryHighlightRepository keeps highlight sets in process memory. It is the
// default backing store for local development and tests.
type MemoryHighlightRepository struct {
	mu     sync.RWMutex
	sets   map[string]*domain.FileHighlights
	logger domain.Logger
}

func NewMemoryHighlightRepository(logger domain.Logger) domain.FileHighlightRepository {
	return &MemoryHighlightRepository{
		sets:   make(map[string]*domain.FileHighlights),
		logger: logger,
	}
}

func setKey(userID, fileName string) string {
	return userID + "/" + fileName
}

// Get returns the stored set for a document. An unknown document yields an
// empty envelope, not an error.
func (r *MemoryHighlightRepository) Get(userID, fileName string) (*domain.FileHighlights, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.sets[setKey(userID, fileName)]
	if !ok {
		return &domain.FileHighlights{
			Highlights: []domain.Highlight{},
			Name:       fileName,
		}, nil
	}
	return cloneFileHighlights(stored), nil
}

// Save overwrites the whole set for a document.
func (r *MemoryHighlightRepository) Save(userID string, fileHighlights *domain.FileHighlights) error {
	if fileHighlights == nil {
		return &domain.ValidationError{Field: "fileHighlights", Message: "is required"}
	}
	if fileHighlights.Name == "" {
		return &domain.ValidationError{Field: "name", Message: "is required"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sets[setKey(userID, fileHighlights.Name)] = cloneFileHighlights(fileHighlights)
	return nil
}

func (r *MemoryHighlightRepository) Delete(userID, fileName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sets, setKey(userID, fileName))
	return nil
}

// cloneFileHighlights copies the envelope so callers cannot mutate stored
// state through retained slices.
func cloneFileHighlights(in *domain.FileHighlights) *domain.FileHighlights {
	out := &domain.FileHighlights{
		Name:       in.Name,
		Highlights: make([]domain.Highlight, len(in.Highlights)),
	}
	copy(out.Highlights, in.Highlights)
	if in.Entities != nil {
		out.Entities = append([]string{}, in.Entities...)
	}
	if in.Sections != nil {
		out.Sections = append([]domain.Section{}, in.Sections...)
	}
	return out
}
