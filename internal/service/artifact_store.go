package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ryloze-converter/internal/domain"
	apperrors "ryloze-converter/pkg/errors"

	"github.com/google/uuid"
)

// ArtifactStore manages on-disk persistence of uploaded sources and
// conversion outputs. Uploads live under uploadDir/<category>/,
// outputs directly under convertedDir. Files are named
// <id><original extension>, so lookups go by id prefix.
type ArtifactStore struct {
	uploadDir    string
	convertedDir string
	maxFileSize  int64
	logger       domain.Logger
}

// NewArtifactStore creates the store and its root directories
func NewArtifactStore(uploadDir, convertedDir string, maxFileSize int64, logger domain.Logger) (*ArtifactStore, error) {
	for _, dir := range []string{uploadDir, convertedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return &ArtifactStore{
		uploadDir:    uploadDir,
		convertedDir: convertedDir,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}, nil
}

// UploadDir returns the upload root
func (s *ArtifactStore) UploadDir() string {
	return s.uploadDir
}

// ConvertedDir returns the conversion output root
func (s *ArtifactStore) ConvertedDir() string {
	return s.convertedDir
}

// Store writes the uploaded content under a fresh id and validates it.
// Validation runs against the persisted file (size and extension are
// cheapest to check there); on failure the partial write is rolled
// back and the validation error returned.
func (s *ArtifactStore) Store(content []byte, originalFilename string, category domain.FileCategory) (string, error) {
	fileID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(originalFilename))

	categoryDir := filepath.Join(s.uploadDir, string(category))
	if err := os.MkdirAll(categoryDir, 0o755); err != nil {
		return "", apperrors.NewStorageError("failed to create category directory", err)
	}

	path := filepath.Join(categoryDir, fileID+ext)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", apperrors.NewStorageError("failed to write uploaded file", err)
	}

	if err := s.Validate(fileID, category); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("Failed to roll back invalid upload", "file_id", fileID, "error", rmErr)
		}
		return "", err
	}

	s.logger.Info("File stored", "file_id", fileID, "category", category, "size", len(content))
	return fileID, nil
}

// Validate checks that the stored artifact exists, fits the size cap
// and carries an allowed extension for its category.
func (s *ArtifactStore) Validate(fileID string, category domain.FileCategory) error {
	path, err := s.Resolve(fileID, category)
	if err != nil {
		return apperrors.NewNotFoundError("file not found")
	}

	info, err := os.Stat(path)
	if err != nil {
		return apperrors.NewNotFoundError("file not found")
	}

	if info.Size() > s.maxFileSize {
		return apperrors.NewTooLargeError(
			fmt.Sprintf("file size exceeds maximum allowed: %dGB", s.maxFileSize/(1024*1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !domain.ExtensionAllowed(category, ext) {
		return apperrors.NewValidationError("unsupported file extension", ext)
	}

	return nil
}

// Resolve locates an uploaded file by id prefix within its category
// directory. The stored extension is not known to callers, hence the
// glob.
func (s *ArtifactStore) Resolve(fileID string, category domain.FileCategory) (string, error) {
	return resolveByPrefix(filepath.Join(s.uploadDir, string(category)), fileID)
}

// ResolveOutput locates a conversion output file by id prefix
func (s *ArtifactStore) ResolveOutput(fileID string) (string, error) {
	return resolveByPrefix(s.convertedDir, fileID)
}

// CreateOutput allocates a fresh output id and its on-disk path for
// the given extension. Outputs never collide with sources or with each
// other because every id is newly generated.
func (s *ArtifactStore) CreateOutput(ext string) (string, string) {
	fileID := uuid.New().String()
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fileID, filepath.Join(s.convertedDir, fileID+strings.ToLower(ext))
}

// Delete removes an uploaded file, best-effort
func (s *ArtifactStore) Delete(fileID string, category domain.FileCategory) error {
	path, err := s.Resolve(fileID, category)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// PurgeOlderThan walks root and removes every regular file whose
// modification time is older than maxAge. Per-file errors are logged
// and skipped so one bad entry never aborts the sweep.
func (s *ArtifactStore) PurgeOlderThan(root string, maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	removed := 0

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			s.logger.Warn("Cleanup walk error", "path", path, "error", err)
			return nil
		}
		if info.IsDir() || !info.ModTime().Before(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			s.logger.Warn("Failed to delete old file", "path", path, "error", err)
			return nil
		}
		removed++
		s.logger.Info("Deleted old file", "path", path)
		return nil
	})
	if err != nil {
		s.logger.Error("Cleanup sweep failed", err, "root", root)
	}

	return removed
}

// safeID reports whether an id looks like one the store could have
// issued. Ids are UUIDs; anything carrying path separators or glob
// metacharacters is client input that must never reach the filesystem.
func safeID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

func resolveByPrefix(dir, fileID string) (string, error) {
	if !safeID(fileID) {
		return "", domain.ErrFileNotFound
	}
	matches, err := filepath.Glob(filepath.Join(dir, fileID+"*"))
	if err != nil {
		return "", domain.ErrFileNotFound
	}
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && !info.IsDir() {
			return match, nil
		}
	}
	return "", domain.ErrFileNotFound
}
