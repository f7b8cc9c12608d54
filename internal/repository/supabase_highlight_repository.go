package repository

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"pdf-annotator/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseHighlightRepository persists highlight sets in a Supabase
// `file_highlights` table, one row per (user_id, file_name) with the whole
// envelope as a JSON payload.
type SupabaseHighlightRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

func NewSupabaseHighlightRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.FileHighlightRepository {
	return &SupabaseHighlightRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

func (r *SupabaseHighlightRepository) Get(userID, fileName string) (*domain.FileHighlights, error) {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("file_highlights").
		Select("payload", "", false).
		Eq("user_id", userID).
		Eq("file_name", fileName).
		Order("updated_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get highlights: %w", err)
	}

	var rows []struct {
		Payload domain.FileHighlights `json:"payload"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return &domain.FileHighlights{
			Highlights: []domain.Highlight{},
			Name:       fileName,
		}, nil
	}

	payload := rows[0].Payload
	if payload.Highlights == nil {
		payload.Highlights = []domain.Highlight{}
	}
	return &payload, nil
}

func (r *SupabaseHighlightRepository) Save(userID string, fileHighlights *domain.FileHighlights) error {
	if fileHighlights == nil || fileHighlights.Name == "" {
		return fmt.Errorf("file highlights with a document name are required")
	}
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	sanitized := *fileHighlights
	sanitized.Highlights = make([]domain.Highlight, len(fileHighlights.Highlights))
	for i, h := range fileHighlights.Highlights {
		h.Comment.Text = sanitizeText(h.Comment.Text)
		h.Content.Text = sanitizeText(h.Content.Text)
		sanitized.Highlights[i] = h
	}

	row := map[string]interface{}{
		"user_id":   userID,
		"file_name": sanitized.Name,
		"payload":   sanitized,
	}

	// Upsert on (user_id, file_name): a save is a whole-snapshot overwrite.
	_, _, err := client.From("file_highlights").
		Insert(row, true, "user_id,file_name", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save highlights: %w", err)
	}
	return nil
}

func (r *SupabaseHighlightRepository) Delete(userID, fileName string) error {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From("file_highlights").
		Delete("", "").
		Eq("user_id", userID).
		Eq("file_name", fileName).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete highlights: %w", err)
	}
	return nil
}

var reControl = regexp.MustCompile(`[\x00]`)

// sanitizeText removes characters that PostgreSQL rejects in text fields (notably NUL bytes).
func sanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = reControl.ReplaceAllString(s, "")
	// Also remove escaped unicode NUL sequences that can appear in some extracted content.
	s = strings.ReplaceAll(s, "\\u0000", "")
	return s
}
