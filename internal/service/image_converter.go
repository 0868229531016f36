package service

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"ryloze-converter/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
	"github.com/sergeymakinen/go-ico"
)

const defaultImageQuality = 90

// ICO directory entries cap dimensions at 256 pixels.
const maxICODimension = 256

// convertImage decodes the source, flattens transparency for targets
// without alpha support, applies optional resizing and encodes to the
// target format under a fresh output id.
func (c *Converter) convertImage(sourcePath, target string, opts domain.ConversionOptions) domain.ConversionOutcome {
	img, err := c.decodeImage(sourcePath)
	if err != nil {
		return failureOutcome(fmt.Sprintf("failed to decode image: %v", err))
	}

	// JPEG has no alpha channel; composite onto an opaque white
	// background instead of letting the encoder produce black.
	if (target == "jpg" || target == "jpeg") && !isOpaque(img) {
		img = flattenOntoWhite(img)
	}

	if opts.Resize && opts.Width > 0 && opts.Height > 0 {
		img = imaging.Resize(img, opts.Width, opts.Height, imaging.Lanczos)
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = defaultImageQuality
	}

	fileID, outPath := c.store.CreateOutput(target)

	switch target {
	case "jpg", "jpeg":
		err = imaging.Save(img, outPath, imaging.JPEGQuality(quality))
	case "png", "gif", "tiff", "bmp":
		err = imaging.Save(img, outPath)
	case "webp":
		err = c.encodeWEBP(img, outPath, quality)
	case "ico":
		err = c.encodeICO(img, outPath)
	default:
		return failureOutcome(fmt.Sprintf("unsupported target format: %s", target))
	}
	if err != nil {
		return failureOutcome(fmt.Sprintf("failed to encode image: %v", err))
	}

	c.logger.Debug("Image converted", "output_id", fileID, "target", target)
	return domain.ConversionOutcome{
		Success:      true,
		Message:      "image converted successfully",
		OutputFileID: fileID,
		OutputPath:   outPath,
	}
}

func (c *Converter) decodeImage(sourcePath string) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(sourcePath)) {
	case ".webp":
		f, err := os.Open(sourcePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return webp.Decode(f)
	case ".ico":
		f, err := os.Open(sourcePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ico.Decode(f)
	default:
		return imaging.Open(sourcePath)
	}
}

func (c *Converter) encodeWEBP(img image.Image, outPath string, quality int) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return webp.Encode(f, img, webp.Options{Quality: quality})
}

// encodeICO shrinks the image into the ICO size limit, preserving
// aspect ratio, before encoding.
func (c *Converter) encodeICO(img image.Image, outPath string) error {
	bounds := img.Bounds()
	if bounds.Dx() > maxICODimension || bounds.Dy() > maxICODimension {
		img = imaging.Fit(img, maxICODimension, maxICODimension, imaging.Lanczos)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return ico.Encode(f, img)
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}

// flattenOntoWhite composites an image with transparency onto an
// opaque white background at the original dimensions.
func flattenOntoWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	flat := image.NewNRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}
