package handler

import (
	"net/http"

	"pdf-annotator/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-annotator"}`))
	}).Methods("GET")

	// Initialize handlers
	highlightHandler := NewHighlightHandler(container, container.Logger)
	uploadHandler := NewUploadHandler(container, container.Logger)

	// Highlight persistence surface consumed by the viewer
	router.HandleFunc("/highlights-json/{userId}/{fileName}", highlightHandler.GetHighlights).Methods("GET")
	router.HandleFunc("/save-highlights", highlightHandler.SaveHighlights).Methods("POST")
	router.HandleFunc("/upload/file", uploadHandler.UploadFile).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:4173", // Vite preview
			"http://localhost:3000", // Alternative dev port
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
