package handler

import (
	"net/http"

	"ryloze-converter/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api").Subrouter()

	// Initialize handlers
	healthHandler := NewHealthHandler(container.HistoryRepository, container.Logger)
	fileHandler := NewFileHandler(
		container.ArtifactStore,
		container.CleanupService,
		container.Config.GetMaxFileSize(),
		container.Logger,
	)
	convertHandler := NewConvertHandler(container.ConversionService, container.Logger)

	// Service info and health
	api.HandleFunc("/", healthHandler.Root).Methods("GET")
	api.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// File routes
	api.HandleFunc("/upload", fileHandler.Upload).Methods("POST")
	api.HandleFunc("/download/{id}", fileHandler.Download).Methods("GET")

	// Conversion routes
	api.HandleFunc("/convert", convertHandler.StartConversion).Methods("POST")
	api.HandleFunc("/convert/status/{id}", convertHandler.GetStatus).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: container.Config.GetCORSOrigins(),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
