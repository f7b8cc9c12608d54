package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pdf-annotator/internal/config"
	"pdf-annotator/internal/domain"

	"github.com/gorilla/mux"
)

// HighlightHandler serves the highlight persistence surface consumed by the
// viewer's sync adapter.
type HighlightHandler struct {
	container *config.Container
	logger    domain.Logger
	repo      domain.FileHighlightRepository
}

func NewHighlightHandler(container *config.Container, logger domain.Logger) *HighlightHandler {
	return &HighlightHandler{
		container: container,
		logger:    logger,
		repo:      container.HighlightRepository,
	}
}

// GetHighlights handles GET /highlights-json/{userId}/{fileName}
func (h *HighlightHandler) GetHighlights(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	fileName := vars["fileName"]
	if userID == "" || fileName == "" {
		writeError(w, http.StatusBadRequest, "User ID and file name are required")
		return
	}

	fileHighlights, err := h.repo.Get(userID, fileName)
	if err != nil {
		h.logger.Error("Failed to get highlights", err, "user_id", userID, "file_name", fileName)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve highlights")
		return
	}

	writeJSON(w, http.StatusOK, fileHighlights)
}

type saveHighlightsRequest struct {
	UserID         string                 `json:"user_id,omitempty"`
	FileHighlights *domain.FileHighlights `json:"fileHighlights"`
}

// SaveHighlights handles POST /save-highlights
func (h *HighlightHandler) SaveHighlights(w http.ResponseWriter, r *http.Request) {
	var req saveHighlightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FileHighlights == nil {
		writeError(w, http.StatusBadRequest, "fileHighlights is required")
		return
	}
	if req.FileHighlights.Name == "" {
		writeError(w, http.StatusBadRequest, "fileHighlights.name is required")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = "user123"
	}

	if err := h.repo.Save(userID, req.FileHighlights); err != nil {
		h.logger.Error("Failed to save highlights", err, "user_id", userID, "file_name", req.FileHighlights.Name)
		writeError(w, http.StatusInternalServerError, "Failed to save highlights")
		return
	}

	h.logger.Info("Highlights saved",
		"user_id", userID,
		"file_name", req.FileHighlights.Name,
		"count", len(req.FileHighlights.Highlights))
	writeMessage(w, http.StatusOK,
		fmt.Sprintf("Saved %d highlights for %s", len(req.FileHighlights.Highlights), req.FileHighlights.Name))
}
