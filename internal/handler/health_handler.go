package handler

import (
	"net/http"
	"time"

	"ryloze-converter/internal/domain"
)

// HealthHandler reports service liveness and history-store reachability
type HealthHandler struct {
	history domain.HistoryRepository
	logger  domain.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(history domain.HistoryRepository, logger domain.Logger) *HealthHandler {
	return &HealthHandler{
		history: history,
		logger:  logger,
	}
}

// Root returns basic service information
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Ryloze Converter API",
		"version": "1.0.0",
		"status":  "running",
	})
}

// Health checks the service and its history collaborator
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	historyStatus := "connected"
	if err := h.history.Ping(); err != nil {
		historyStatus = "error: " + err.Error()
		h.logger.Error("History store health check failed", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"database":  historyStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
