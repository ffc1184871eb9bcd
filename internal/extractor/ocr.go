package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// OCR is the optional text-recognition collaborator, backed by the external
// tesseract binary (plus pdftoppm for PDF page rendering). A nil *OCR means
// the capability is absent for this process.
type OCR struct {
	tesseract string
	pdftoppm  string
	log       zerolog.Logger
}

// DetectOCR probes for the OCR toolchain once at process start. Returns nil
// when tesseract is not installed; absence is a degraded mode, not an error.
func DetectOCR(log zerolog.Logger) *OCR {
	tess, err := exec.LookPath("tesseract")
	if err != nil {
		log.Info().Msg("tesseract not found, OCR disabled")
		return nil
	}
	o := &OCR{tesseract: tess, log: log}
	if ppm, err := exec.LookPath("pdftoppm"); err == nil {
		o.pdftoppm = ppm
	} else {
		log.Info().Msg("pdftoppm not found, PDF OCR fallback disabled")
	}
	return o
}

// ImageText OCRs one statement image. The image is grayscale-converted
// first, which measurably improves tesseract accuracy on photographed
// statements.
func (o *OCR) ImageText(imagePath string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "ocr-image-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	grayPath := filepath.Join(tmpDir, "gray.png")
	if err := grayscalePNG(imagePath, grayPath); err != nil {
		// Unsupported encodings still OCR, just without preprocessing.
		o.log.Warn().Err(err).Msg("grayscale conversion failed, using original image")
		grayPath = imagePath
	}

	return o.runTesseract(grayPath, filepath.Join(tmpDir, "out"))
}

// PDFPagesText re-renders each PDF page as an image and OCRs it, preserving
// page order in the returned slice. Individual page failures are logged and
// skipped.
func (o *OCR) PDFPagesText(pdfPath string) ([]string, error) {
	if o.pdftoppm == "" {
		return nil, fmt.Errorf("pdftoppm not available, cannot render PDF pages")
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// 300 DPI gives tesseract enough resolution for statement body text.
	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command(o.pdftoppm, "-r", "300", "-gray", "-png", pdfPath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %v (output: %s)", err, out)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("reading rendered pages: %w", err)
	}
	var images []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			images = append(images, filepath.Join(tmpDir, e.Name()))
		}
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(images)
	if len(images) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, img := range images {
		text, err := o.runTesseract(img, strings.TrimSuffix(img, ".png")+"-ocr")
		if err != nil {
			o.log.Warn().Err(err).Str("page", filepath.Base(img)).Msg("page OCR failed, skipping")
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("OCR produced no text from %d page images", len(images))
	}
	return pages, nil
}

// runTesseract invokes tesseract on one image and returns the recognized
// text. PSM 4 assumes a single column of variable-size text, which fits
// statement pages.
func (o *OCR) runTesseract(imagePath, outBase string) (string, error) {
	cmd := exec.Command(o.tesseract, imagePath, outBase, "-l", "eng", "--psm", "4")
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("tesseract: %v (output: %s)", err, out)
	}
	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return "", fmt.Errorf("reading tesseract output: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
