package domain

import (
	"context"
	"io"

	"github.com/supabase-community/supabase-go"
)

// FileHighlightRepository defines server-side persistence for whole highlight
// sets. Save is a full snapshot overwrite; Get returns an empty envelope,
// not an error, for an unknown document.
type FileHighlightRepository interface {
	Get(userID, fileName string) (*FileHighlights, error)
	Save(userID string, fileHighlights *FileHighlights) error
	Delete(userID, fileName string) error
}

// HighlightSyncClient bridges the in-memory highlight state to the backend
// document store.
type HighlightSyncClient interface {
	Load(ctx context.Context, userID, fileName string) (*FileHighlights, error)
	Save(ctx context.Context, fileHighlights *FileHighlights) (string, error)
	Upload(ctx context.Context, fileName string, file io.Reader) (string, error)
}

// SupabaseClient wraps access to the Supabase project backing the optional
// hosted repository.
type SupabaseClient interface {
	Initialize() error
	GetSupabaseClient() *supabase.Client
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSwingAPIBaseURL() string
}
