package service

import (
	"fmt"
	"sync"

	"pdf-annotator/internal/domain"

	"github.com/google/uuid"
)

// mediaEntry is one registered blob plus the resource handle backing its
// serving URL. release runs exactly once, on removal or registry cleanup.
type mediaEntry struct {
	name    string
	data    []byte
	url     string
	release func()
	once    sync.Once
}

func (e *mediaEntry) revoke() {
	if e.release != nil {
		e.once.Do(e.release)
	}
}

// MediaRegistry owns the uploaded video blobs and their serving URLs for the
// lifetime of a session. Initialized empty, passed by reference, cleaned up
// explicitly.
type MediaRegistry struct {
	mu      sync.Mutex
	entries map[string]*mediaEntry
	logger  domain.Logger

	// urlFactory mints a serving URL and its release function for a blob.
	// Tests substitute it to observe release discipline.
	urlFactory func(id, name string) (string, func())
}

func NewMediaRegistry(logger domain.Logger) *MediaRegistry {
	return &MediaRegistry{
		entries: make(map[string]*mediaEntry),
		logger:  logger,
		urlFactory: func(id, name string) (string, func()) {
			return "blob:" + id + "/" + name, func() {}
		},
	}
}

// SetURLFactory overrides how serving URLs are minted.
func (m *MediaRegistry) SetURLFactory(factory func(id, name string) (string, func())) {
	m.urlFactory = factory
}

// Store registers a blob and returns its identifier.
func (m *MediaRegistry) Store(name string, data []byte) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	url, release := m.urlFactory(id, name)
	m.entries[id] = &mediaEntry{name: name, data: data, url: url, release: release}
	return id
}

// Get returns the blob registered under id.
func (m *MediaRegistry) Get(id string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	return entry.data, true
}

// URL returns the serving URL for id.
func (m *MediaRegistry) URL(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return "", false
	}
	return entry.url, true
}

// Remove releases the entry's URL and drops it. It reports whether an entry
// existed; removing an unknown id is a no-op.
func (m *MediaRegistry) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return false
	}
	entry.revoke()
	delete(m.entries, id)
	return true
}

// Crop registers a trimmed copy of the source blob under a new id. The
// actual frame trimming happens server-side; the registry only tracks the
// derived entry.
func (m *MediaRegistry) Crop(sourceID string, startFrame, endFrame int) (string, error) {
	if startFrame < 0 || endFrame < startFrame {
		return "", fmt.Errorf("invalid frame range %d..%d", startFrame, endFrame)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	source, ok := m.entries[sourceID]
	if !ok {
		return "", fmt.Errorf("crop source %s: %w", sourceID, domain.ErrMediaNotFound)
	}

	id := uuid.NewString()
	url, release := m.urlFactory(id, source.name)
	m.entries[id] = &mediaEntry{name: source.name, data: source.data, url: url, release: release}
	return id, nil
}

// Len reports the number of registered entries.
func (m *MediaRegistry) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Cleanup releases every URL and clears the registry.
func (m *MediaRegistry) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range m.entries {
		entry.revoke()
	}
	m.entries = make(map[string]*mediaEntry)
}
