package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"pdf-annotator/internal/domain"

	"golang.org/x/time/rate"
)

// GolfClient talks to the swing-analysis backend: video upload, key-frame
// analysis, cropping, training and golfer verification. The backend does the
// actual video work; this client only issues requests and decodes responses.
type GolfClient struct {
	baseURL    string
	httpClient *http.Client
	logger     domain.Logger

	// uploadLimiter paces per-file requests during batch training uploads so
	// a large session does not flood the backend.
	uploadLimiter *rate.Limiter
}

// UploadResult is the backend's acknowledgement of a stored video.
type UploadResult struct {
	UploadID string `json:"upload_id"`
	Message  string `json:"message,omitempty"`
}

// AnalysisResult reports the key frames detected in an uploaded swing.
type AnalysisResult struct {
	UploadID   string `json:"upload_id"`
	StartFrame int    `json:"start_frame"`
	EndFrame   int    `json:"end_frame"`
	FrameCount int    `json:"frame_count"`
}

// CropResult identifies the trimmed clip produced from an upload.
type CropResult struct {
	CropID  string `json:"crop_id"`
	Message string `json:"message,omitempty"`
}

// VerificationResult is the identity decision for a cropped swing.
type VerificationResult struct {
	Match      bool    `json:"match"`
	Confidence float64 `json:"confidence"`
	GolferID   string  `json:"golfer_id"`
}

func NewGolfClient(baseURL string, logger domain.Logger) *GolfClient {
	return &GolfClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Large uploads need more headroom than the default.
			Timeout: 60 * time.Second,
		},
		logger:        logger,
		uploadLimiter: rate.NewLimiter(rate.Limit(2), 1),
	}
}

// UploadVideo sends a single video as multipart form data under the `video`
// field with its golfer id.
func (c *GolfClient) UploadVideo(ctx context.Context, fileName string, video io.Reader, golferID string) (*UploadResult, error) {
	if golferID == "" {
		golferID = "unknown"
	}

	body, contentType, err := videoForm(fileName, video, golferID)
	if err != nil {
		return nil, err
	}

	var result UploadResult
	if err := c.post(ctx, "/upload", contentType, body, &result); err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}
	return &result, nil
}

// BatchTrainingUpload uploads a set of training videos for one golfer,
// pacing the per-file requests, and returns the created session id.
func (c *GolfClient) BatchTrainingUpload(ctx context.Context, fileNames []string, videos []io.Reader, golferID string) (string, error) {
	if len(fileNames) != len(videos) {
		return "", fmt.Errorf("file name count %d does not match video count %d", len(fileNames), len(videos))
	}
	if golferID == "" {
		return "", fmt.Errorf("golfer id is required for training")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for i, name := range fileNames {
		if err := c.uploadLimiter.Wait(ctx); err != nil {
			return "", err
		}
		part, err := writer.CreateFormFile("videos", name)
		if err != nil {
			return "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, videos[i]); err != nil {
			return "", fmt.Errorf("failed to read video %s: %w", name, err)
		}
	}
	if err := writer.WriteField("golferId", golferID); err != nil {
		return "", fmt.Errorf("failed to write golfer id: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	var result struct {
		SessionID string `json:"session_id"`
	}
	if err := c.post(ctx, "/batch-training-upload", writer.FormDataContentType(), &buf, &result); err != nil {
		return "", fmt.Errorf("failed to upload training videos: %w", err)
	}
	return result.SessionID, nil
}

// ProcessTrainingSession kicks off model training on an uploaded session and
// returns the agent task id to poll.
func (c *GolfClient) ProcessTrainingSession(ctx context.Context, sessionID string) (string, error) {
	var result struct {
		TaskID string `json:"task_id"`
	}
	if err := c.post(ctx, "/process-training-session/"+sessionID, "application/json", nil, &result); err != nil {
		return "", fmt.Errorf("failed to process training session: %w", err)
	}
	return result.TaskID, nil
}

// AnalyzeVideo extracts the key swing frames from an upload.
func (c *GolfClient) AnalyzeVideo(ctx context.Context, uploadID string) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := c.post(ctx, "/analyze/"+uploadID, "application/json", nil, &result); err != nil {
		return nil, fmt.Errorf("failed to analyze video: %w", err)
	}
	return &result, nil
}

// CropVideo trims an upload to the given frame range.
func (c *GolfClient) CropVideo(ctx context.Context, uploadID string, startFrame, endFrame int, golferID string) (*CropResult, error) {
	if golferID == "" {
		golferID = "unknown"
	}
	body, err := json.Marshal(map[string]interface{}{
		"upload_id":   uploadID,
		"start_frame": startFrame,
		"end_frame":   endFrame,
		"golfer_id":   golferID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode crop request: %w", err)
	}

	var result CropResult
	if err := c.post(ctx, "/crop", "application/json", bytes.NewReader(body), &result); err != nil {
		return nil, fmt.Errorf("failed to crop video: %w", err)
	}
	return &result, nil
}

// VerifyGolfer asks whether a cropped swing belongs to the given golfer.
func (c *GolfClient) VerifyGolfer(ctx context.Context, cropID, golferID string) (*VerificationResult, error) {
	body, err := json.Marshal(map[string]string{
		"crop_id":   cropID,
		"golfer_id": golferID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode verify request: %w", err)
	}

	var result VerificationResult
	if err := c.post(ctx, "/verify-golfer", "application/json", bytes.NewReader(body), &result); err != nil {
		return nil, fmt.Errorf("failed to verify golfer: %w", err)
	}
	return &result, nil
}

func (c *GolfClient) post(ctx context.Context, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Prefer the backend's error field when it sent one.
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func videoForm(fileName string, video io.Reader, golferID string) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("video", fileName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, video); err != nil {
		return nil, "", fmt.Errorf("failed to read video: %w", err)
	}
	if err := writer.WriteField("golferId", golferID); err != nil {
		return nil, "", fmt.Errorf("failed to write golfer id: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
