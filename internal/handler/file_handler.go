package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"ryloze-converter/internal/domain"
	"ryloze-converter/internal/service"

	"github.com/gorilla/mux"
)

// FileHandler handles upload and download HTTP requests
type FileHandler struct {
	store       *service.ArtifactStore
	cleanup     *service.CleanupService
	maxFileSize int64
	logger      domain.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(store *service.ArtifactStore, cleanup *service.CleanupService, maxFileSize int64, logger domain.Logger) *FileHandler {
	return &FileHandler{
		store:       store,
		cleanup:     cleanup,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

type uploadResponse struct {
	FileID   string              `json:"file_id"`
	Filename string              `json:"filename"`
	FileType domain.FileCategory `json:"file_type"`
	Size     int64               `json:"size"`
	MimeType string              `json:"mime_type"`
	Message  string              `json:"message"`
	Status   string              `json:"status"`
}

// Upload stores a file for later conversion
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+1)

	file, header, err := r.FormFile("file")
	if err != nil {
		// MaxBytesReader aborts multipart parsing mid-stream when the
		// body exceeds the cap, before header.Size is ever seen.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "File size exceeds maximum allowed")
			return
		}
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	// Strip any path components clients may send along.
	originalName := strings.TrimSpace(filepath.Base(header.Filename))
	if originalName == "" || originalName == "." {
		originalName = "upload"
	}

	contentType := header.Header.Get("Content-Type")
	h.logger.Info("Uploading file", "filename", originalName, "content_type", contentType)

	category, ok := detectCategory(contentType, originalName)
	if !ok {
		h.logger.Warn("Unsupported upload type", "filename", originalName, "content_type", contentType)
		writeError(w, http.StatusBadRequest, "Unsupported file type: "+firstNonEmpty(contentType, "unknown"))
		return
	}

	if header.Size > h.maxFileSize {
		writeError(w, http.StatusRequestEntityTooLarge, "File size exceeds maximum allowed")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	fileID, err := h.store.Store(content, originalName, category)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		FileID:   fileID,
		Filename: originalName,
		FileType: category,
		Size:     int64(len(content)),
		MimeType: contentType,
		Message:  "File uploaded successfully",
		Status:   "success",
	})
}

// Download streams a conversion output and triggers an opportunistic
// retention sweep once the response is on its way.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	outputID := vars["id"]
	if outputID == "" {
		writeError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	path, err := h.store.ResolveOutput(outputID)
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)

	h.logger.Info("Download request", "output_id", outputID)
	http.ServeFile(w, r, path)

	h.cleanup.Trigger()
}

// detectCategory infers the artifact category from the Content-Type
// header, falling back to the filename extension.
func detectCategory(contentType, filename string) (domain.FileCategory, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return domain.CategoryImage, true
	case strings.Contains(contentType, "pdf"),
		strings.Contains(contentType, "document"),
		strings.HasPrefix(contentType, "application/"):
		return domain.CategoryDocument, true
	}
	return domain.CategoryForFilename(filename)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
