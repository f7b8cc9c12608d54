package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"pdf-annotator/internal/domain"
)

// HighlightsClient is the remote sync adapter: it bridges the in-memory
// highlight state to the backend document store over its JSON surface.
type HighlightsClient struct {
	baseURL    string
	httpClient *http.Client
	logger     domain.Logger
}

func NewHighlightsClient(baseURL string, logger domain.Logger) domain.HighlightSyncClient {
	return &HighlightsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Load fetches the full highlight set for a document. A missing or empty
// server-side set comes back as empty collections, not an error.
func (c *HighlightsClient) Load(ctx context.Context, userID, fileName string) (*domain.FileHighlights, error) {
	endpoint := fmt.Sprintf("%s/highlights-json/%s/%s",
		c.baseURL, url.PathEscape(userID), url.PathEscape(fileName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build load request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to load highlights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("load highlights returned status %d", resp.StatusCode)
	}

	var fileHighlights domain.FileHighlights
	if err := json.NewDecoder(resp.Body).Decode(&fileHighlights); err != nil {
		return nil, fmt.Errorf("failed to decode highlights: %w", err)
	}
	if fileHighlights.Highlights == nil {
		fileHighlights.Highlights = []domain.Highlight{}
	}
	return &fileHighlights, nil
}

// Save uploads the complete current state as a snapshot overwrite and
// returns the server's confirmation message.
func (c *HighlightsClient) Save(ctx context.Context, fileHighlights *domain.FileHighlights) (string, error) {
	body, err := json.Marshal(map[string]*domain.FileHighlights{
		"fileHighlights": fileHighlights,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode highlights: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/save-highlights", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to save highlights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("save highlights returned status %d", resp.StatusCode)
	}

	var result struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode save response: %w", err)
	}
	return result.Message, nil
}

// Upload sends a document to the backend as multipart form data under the
// `file` field.
func (c *HighlightsClient) Upload(ctx context.Context, fileName string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/file", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upload returned status %d", resp.StatusCode)
	}

	var result struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	return result.Message, nil
}
