package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ryloze-converter/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/fumiama/go-docx"
	"github.com/gen2brain/go-fitz"
	"github.com/go-pdf/fpdf"
)

// convertDocument dispatches strictly by (source extension, target
// format). Only DOCX->PDF and PDF->DOCX are wired; everything else is
// rejected here as a final guard even though Supports filters earlier.
func (c *Converter) convertDocument(sourcePath, target string) domain.ConversionOutcome {
	ext := strings.ToLower(filepath.Ext(sourcePath))

	switch {
	case ext == ".docx" && target == "pdf":
		return c.docxToPDF(sourcePath)
	case ext == ".pdf" && target == "docx":
		return c.pdfToDocx(sourcePath)
	default:
		return failureOutcome(fmt.Sprintf("conversion %s -> %s is not supported", ext, target))
	}
}

// docxToPDF extracts paragraph text from the DOCX body and renders it
// into a fresh PDF. Formatting beyond paragraph breaks is not carried
// over.
func (c *Converter) docxToPDF(sourcePath string) domain.ConversionOutcome {
	f, err := os.Open(sourcePath)
	if err != nil {
		return failureOutcome(fmt.Sprintf("failed to open document: %v", err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return failureOutcome(fmt.Sprintf("failed to stat document: %v", err))
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return failureOutcome(fmt.Sprintf("failed to parse DOCX: %v", err))
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPage()
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	paragraphs := 0
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := strings.TrimSpace(para.String())
		if text == "" {
			continue
		}
		pdf.MultiCell(0, 6, translate(text), "", "L", false)
		pdf.Ln(2)
		paragraphs++
	}

	fileID, outPath := c.store.CreateOutput("pdf")
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return failureOutcome(fmt.Sprintf("failed to write PDF: %v", err))
	}

	c.logger.Debug("DOCX converted to PDF", "output_id", fileID, "paragraphs", paragraphs)
	return domain.ConversionOutcome{
		Success:      true,
		Message:      "DOCX converted to PDF successfully",
		OutputFileID: fileID,
		OutputPath:   outPath,
	}
}

// pdfToDocx rasterizes each PDF page and embeds the images one page
// per image in a new DOCX. This is a lossy, image-based
// reconstruction; document structure and editable text are not
// recovered.
func (c *Converter) pdfToDocx(sourcePath string) domain.ConversionOutcome {
	doc, err := fitz.New(sourcePath)
	if err != nil {
		return failureOutcome(fmt.Sprintf("failed to open PDF: %v", err))
	}
	defer doc.Close()

	tmpDir, err := os.MkdirTemp("", "pdf2docx")
	if err != nil {
		return failureOutcome(fmt.Sprintf("failed to create temp directory: %v", err))
	}
	defer os.RemoveAll(tmpDir)

	out := docx.New().WithDefaultTheme()

	numPages := doc.NumPage()
	for n := 0; n < numPages; n++ {
		img, err := doc.Image(n)
		if err != nil {
			return failureOutcome(fmt.Sprintf("failed to render page %d: %v", n+1, err))
		}

		pagePath := filepath.Join(tmpDir, fmt.Sprintf("page-%d.png", n+1))
		if err := imaging.Save(img, pagePath); err != nil {
			return failureOutcome(fmt.Sprintf("failed to save page %d image: %v", n+1, err))
		}

		out.AddParagraph().AddText(fmt.Sprintf("Page %d", n+1))
		if _, err := out.AddParagraph().AddInlineDrawingFrom(pagePath); err != nil {
			return failureOutcome(fmt.Sprintf("failed to embed page %d image: %v", n+1, err))
		}
	}

	fileID, outPath := c.store.CreateOutput("docx")
	outFile, err := os.Create(outPath)
	if err != nil {
		return failureOutcome(fmt.Sprintf("failed to create output file: %v", err))
	}
	defer outFile.Close()

	if _, err := out.WriteTo(outFile); err != nil {
		return failureOutcome(fmt.Sprintf("failed to write DOCX: %v", err))
	}

	c.logger.Debug("PDF converted to DOCX", "output_id", fileID, "pages", numPages)
	return domain.ConversionOutcome{
		Success:      true,
		Message:      fmt.Sprintf("PDF converted to DOCX successfully (%d pages)", numPages),
		OutputFileID: fileID,
		OutputPath:   outPath,
	}
}
