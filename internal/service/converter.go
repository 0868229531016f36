package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"ryloze-converter/internal/domain"
	apperrors "ryloze-converter/pkg/errors"
)

type conversionPair struct {
	sourceExt string
	target    string
}

// Converter performs format conversions, dispatched by category. The
// set of image targets and document pairs it can actually perform is
// registered at construction, so unsupported requests are rejected
// before any work is scheduled.
type Converter struct {
	store        *ArtifactStore
	logger       domain.Logger
	imageTargets map[string]bool
	docPairs     map[conversionPair]bool
}

// NewConverter creates a converter with the capabilities the bundled
// libraries provide: the common raster image targets plus
// DOCX->PDF and PDF->DOCX. Legacy .doc has no parser here, so it is
// deliberately not registered as a conversion source.
func NewConverter(store *ArtifactStore, logger domain.Logger) *Converter {
	return &Converter{
		store:  store,
		logger: logger,
		imageTargets: map[string]bool{
			"jpg":  true,
			"jpeg": true,
			"png":  true,
			"gif":  true,
			"tiff": true,
			"bmp":  true,
			"webp": true,
			"ico":  true,
		},
		docPairs: map[conversionPair]bool{
			{sourceExt: ".docx", target: "pdf"}: true,
			{sourceExt: ".pdf", target: "docx"}: true,
		},
	}
}

// Supports reports whether the converter can perform the requested
// conversion. Returns a validation AppError describing the rejection.
func (c *Converter) Supports(category domain.FileCategory, sourceFilename, targetFormat string) error {
	target := normalizeFormat(targetFormat)

	switch category {
	case domain.CategoryImage:
		if !c.imageTargets[target] {
			return apperrors.NewValidationError("unsupported target format", target)
		}
	case domain.CategoryDocument:
		ext := strings.ToLower(filepath.Ext(sourceFilename))
		if !c.docPairs[conversionPair{sourceExt: ext, target: target}] {
			return apperrors.NewValidationError(
				fmt.Sprintf("conversion %s -> %s is not supported", ext, target))
		}
	default:
		return apperrors.NewValidationError("unsupported file type", string(category))
	}

	return nil
}

// Convert runs the conversion and always returns an outcome: every
// fault, including panics out of the decoding libraries, is translated
// into a failure outcome rather than propagated.
func (c *Converter) Convert(sourcePath string, category domain.FileCategory, targetFormat string, opts domain.ConversionOptions) (outcome domain.ConversionOutcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Conversion panicked", fmt.Errorf("%v", r), "source", sourcePath)
			outcome = failureOutcome(fmt.Sprintf("conversion error: %v", r))
		}
	}()

	target := normalizeFormat(targetFormat)

	switch category {
	case domain.CategoryImage:
		return c.convertImage(sourcePath, target, opts)
	case domain.CategoryDocument:
		return c.convertDocument(sourcePath, target)
	default:
		return failureOutcome(fmt.Sprintf("unsupported file type: %s", category))
	}
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}

func failureOutcome(message string) domain.ConversionOutcome {
	return domain.ConversionOutcome{Success: false, Message: message}
}
