package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"pdf-annotator/internal/config"
	"pdf-annotator/internal/domain"
)

// UploadHandler accepts document uploads from the viewer.
type UploadHandler struct {
	container *config.Container
	logger    domain.Logger
	config    domain.Config
}

func NewUploadHandler(container *config.Container, logger domain.Logger) *UploadHandler {
	return &UploadHandler{
		container: container,
		logger:    logger,
		config:    container.Config,
	}
}

// UploadFile handles POST /upload/file (multipart, field `file`)
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.GetMaxFileSize())
	if err := r.ParseMultipartForm(h.config.GetMaxFileSize()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	// Only the base name is trusted; anything path-like in the client's
	// file name is stripped.
	fileName := filepath.Base(header.Filename)
	if fileName == "." || fileName == string(filepath.Separator) {
		writeError(w, http.StatusBadRequest, "Invalid file name")
		return
	}

	if err := os.MkdirAll(h.config.GetUploadPath(), 0o755); err != nil {
		h.logger.Error("Failed to create upload directory", err)
		writeError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	dst, err := os.Create(filepath.Join(h.config.GetUploadPath(), fileName))
	if err != nil {
		h.logger.Error("Failed to create file", err, "file_name", fileName)
		writeError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		h.logger.Error("Failed to write file", err, "file_name", fileName)
		writeError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	h.logger.Info("File uploaded", "file_name", fileName, "bytes", written)
	writeMessage(w, http.StatusOK, fmt.Sprintf("File %q uploaded successfully", fileName))
}
