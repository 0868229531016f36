package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"ryloze-converter/internal/domain"
	"ryloze-converter/internal/service"

	"github.com/gorilla/mux"
)

// ConvertHandler handles conversion submission and status polling
type ConvertHandler struct {
	conversions *service.ConversionService
	logger      domain.Logger
}

// NewConvertHandler creates a new conversion handler
func NewConvertHandler(conversions *service.ConversionService, logger domain.Logger) *ConvertHandler {
	return &ConvertHandler{
		conversions: conversions,
		logger:      logger,
	}
}

type convertResponse struct {
	ConversionID string           `json:"conversion_id"`
	Status       domain.JobStatus `json:"status"`
	Message      string           `json:"message"`
}

// StartConversion accepts a conversion request and schedules it
func (h *ConvertHandler) StartConversion(w http.ResponseWriter, r *http.Request) {
	var req domain.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FileID == "" {
		writeError(w, http.StatusBadRequest, "file_id is required")
		return
	}
	if req.TargetFormat == "" {
		writeError(w, http.StatusBadRequest, "target_format is required")
		return
	}
	if !domain.ValidCategory(string(req.FileType)) {
		writeError(w, http.StatusBadRequest, "file_type must be image or document")
		return
	}

	h.logger.Info("Starting conversion", "file_id", req.FileID, "target", req.TargetFormat)

	jobID, err := h.conversions.Submit(req)
	if err != nil {
		if errors.Is(err, domain.ErrQueueFull) {
			writeError(w, http.StatusServiceUnavailable, "Too many conversions in progress, try again later")
			return
		}
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		ConversionID: jobID,
		Status:       domain.JobStatusProcessing,
		Message:      "Conversion started",
	})
}

// GetStatus returns the current snapshot of a conversion job
func (h *ConvertHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID := vars["id"]
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "Conversion ID is required")
		return
	}

	job, err := h.conversions.Status(jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "Conversion job not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}
