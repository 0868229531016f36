package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// FileCategory partitions stored artifacts by conversion family.
type FileCategory string

const (
	CategoryImage    FileCategory = "image"
	CategoryDocument FileCategory = "document"
)

// allowedExtensions is the upload allow-list per category.
var allowedExtensions = map[FileCategory][]string{
	CategoryImage:    {".jpg", ".jpeg", ".png", ".webp", ".gif", ".tiff", ".ico", ".bmp"},
	CategoryDocument: {".pdf", ".doc", ".docx"},
}

// ValidCategory reports whether s names a known file category.
func ValidCategory(s string) bool {
	return FileCategory(s) == CategoryImage || FileCategory(s) == CategoryDocument
}

// ExtensionAllowed reports whether ext (including the leading dot) is
// accepted for the given category.
func ExtensionAllowed(category FileCategory, ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range allowedExtensions[category] {
		if ext == allowed {
			return true
		}
	}
	return false
}

// CategoryForFilename infers a category from a filename extension.
// Returns false when the extension belongs to neither category.
func CategoryForFilename(filename string) (FileCategory, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ExtensionAllowed(CategoryImage, ext) {
		return CategoryImage, true
	}
	if ExtensionAllowed(CategoryDocument, ext) {
		return CategoryDocument, true
	}
	return "", false
}

// Artifact describes one stored file, either an upload or a
// conversion output. Artifacts are immutable once written; conversions
// always produce a new artifact under a fresh id.
type Artifact struct {
	ID               string       `json:"id"`
	Category         FileCategory `json:"category"`
	OriginalFilename string       `json:"original_filename"`
	Size             int64        `json:"size"`
	Path             string       `json:"-"`
	CreatedAt        time.Time    `json:"created_at"`
}
