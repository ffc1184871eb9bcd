package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finlytics-dev/finlytics/internal/config"
	"github.com/finlytics-dev/finlytics/internal/extractor"
	"github.com/finlytics-dev/finlytics/internal/models"
)

// ErrUnsupportedFormat is returned for file extensions no adapter handles.
var ErrUnsupportedFormat = errors.New("unsupported statement format")

// OCRClient is the optional text-recognition collaborator. extractor.OCR is
// the production implementation, backed by the tesseract binary.
type OCRClient interface {
	// ImageText OCRs a single statement image.
	ImageText(path string) (string, error)
	// PDFPagesText re-renders each PDF page and OCRs it, in page order.
	PDFPagesText(path string) ([]string, error)
}

// Service runs the statement-to-transaction pipeline. The OCR collaborator is
// resolved once at process start and injected here; a nil OCR degrades image
// parsing to a placeholder and PDF parsing to text-layer-only.
type Service struct {
	layout *config.Layout
	ocr    OCRClient
	log    zerolog.Logger
}

// New creates a Service. A nil layout uses the default statement layout.
func New(layout *config.Layout, ocr OCRClient, log zerolog.Logger) *Service {
	if layout == nil {
		layout = config.Default()
	}
	return &Service{layout: layout, ocr: ocr, log: log}
}

// OCREnabled reports whether the OCR collaborator is available.
func (s *Service) OCREnabled() bool {
	return s.ocr != nil
}

// ParseFile selects the adapter by file extension and returns the extracted
// transactions.
func (s *Service) ParseFile(path string) ([]models.Transaction, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening CSV: %w", err)
		}
		defer f.Close()
		return ParseCSV(f, s.layout)
	case ".pdf":
		return s.ParsePDF(path)
	case ".png", ".jpg", ".jpeg":
		return s.ParseImage(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ParsePDF extracts the PDF text layer and feeds it through the line
// pipeline. When the text layer is too short to be a real statement and OCR
// is available, pages are re-rendered and OCR'd; the OCR text is kept only if
// it is strictly longer than the text layer. OCR failures never fail the
// request.
func (s *Service) ParsePDF(path string) ([]models.Transaction, error) {
	pages, err := extractor.ExtractText(path)
	if err != nil {
		if !s.OCREnabled() {
			return nil, fmt.Errorf("PDF text extraction: %w", err)
		}
		s.log.Warn().Err(err).Msg("PDF text layer unreadable, relying on OCR fallback")
	}

	text := s.resolveStatementText(path, strings.Join(pages, "\n"))
	return s.ParseTextLines(splitLines(text)), nil
}

// resolveStatementText applies the OCR fallback policy to a PDF's text
// layer: when the stripped text layer is shorter than the layout threshold
// and OCR is available, pages are re-rendered and OCR'd, and the OCR output
// replaces the text layer only if it is strictly longer. OCR failures keep
// the text layer.
func (s *Service) resolveStatementText(path, textLayer string) string {
	stripped := len(strings.TrimSpace(textLayer))
	s.log.Debug().Int("chars", stripped).Msg("extracted PDF text layer")

	if stripped >= s.layout.OCRFallbackThreshold || !s.OCREnabled() {
		return textLayer
	}

	s.log.Info().Int("chars", stripped).Msg("text layer below threshold, trying OCR fallback")
	ocrPages, err := s.ocr.PDFPagesText(path)
	if err != nil {
		s.log.Warn().Err(err).Msg("OCR fallback failed, keeping text layer")
		return textLayer
	}

	ocrText := strings.Join(ocrPages, "\n")
	if len(strings.TrimSpace(ocrText)) > stripped {
		return ocrText
	}
	return textLayer
}

// ParseImage OCRs an uploaded statement image. Without the OCR collaborator
// it returns a single informative placeholder rather than a silent empty
// result.
func (s *Service) ParseImage(path string) ([]models.Transaction, error) {
	if !s.OCREnabled() {
		return []models.Transaction{{
			Description: "Image uploaded but OCR is not available on this server.",
			Category:    models.Other,
		}}, nil
	}
	text, err := s.ocr.ImageText(path)
	if err != nil {
		return nil, fmt.Errorf("image OCR: %w", err)
	}
	return s.ParseTextLines(splitLines(text)), nil
}

// ParseTextLines runs the scanner and decomposer over extracted lines.
func (s *Service) ParseTextLines(lines []string) []models.Transaction {
	scanner := NewTableScanner(s.layout)
	var txns []models.Transaction
	for _, line := range lines {
		if scanner.Classify(line) != LineCandidate {
			continue
		}
		if txn, ok := DecomposeLine(line, s.layout); ok {
			txns = append(txns, txn)
		}
	}
	s.log.Debug().Int("count", len(txns)).Msg("parsed transaction lines")
	return txns
}

// splitLines breaks extracted text into trimmed, non-blank lines.
func splitLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
