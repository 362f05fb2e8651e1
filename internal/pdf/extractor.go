package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnreadable means the bytes could not be opened as a PDF at all.
	ErrUnreadable = errors.New("failed to extract text from PDF")
	// ErrImageBased means the text layer was empty or too small and OCR was
	// unavailable or produced nothing.
	ErrImageBased = errors.New("document appears to be image-based and could not be read")
)

const (
	// DefaultMinTextLength is the trimmed text-layer length below which the
	// document is treated as scanned and handed to OCR.
	DefaultMinTextLength = 100

	defaultDPI      = 300
	defaultMaxPages = 20
)

type Config struct {
	MinTextLength int
	OCREnabled    bool
	Pdftoppm      string // path to the pdftoppm binary
	Tesseract     string // path to the tesseract binary
	DPI           int
	MaxPages      int
}

// Extractor converts PDF bytes into plain text. The embedded text layer is
// the primary path; scanned documents fall back to rasterize-and-OCR.
type Extractor struct {
	cfg Config
}

func NewExtractor(cfg Config) *Extractor {
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = DefaultMinTextLength
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = defaultDPI
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	return &Extractor{cfg: cfg}
}

// ExtractText returns the trimmed plain text of the document. Internal
// whitespace is left alone; normalization happens downstream.
func (e *Extractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	text, pages, err := e.textLayer(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	text = strings.TrimSpace(text)
	if len(text) >= e.cfg.MinTextLength || pages == 0 {
		return text, nil
	}

	// Likely a scanned document.
	if !e.cfg.OCREnabled {
		return "", ErrImageBased
	}
	ocrText, err := e.ocr(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageBased, err)
	}
	ocrText = strings.TrimSpace(ocrText)
	if ocrText == "" {
		return "", ErrImageBased
	}
	return ocrText, nil
}

// Metadata reports the page count without extracting text.
func (e *Extractor) Metadata(data []byte) (pages int, err error) {
	defer recoverParse(&err)
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return reader.NumPage(), nil
}

func (e *Extractor) textLayer(data []byte) (text string, pages int, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer recoverParse(&err)

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, err
	}

	var b strings.Builder
	pages = reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, _ := page.GetPlainText(nil)
		b.WriteString(pageText)
	}
	return b.String(), pages, nil
}

func recoverParse(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("malformed pdf: %v", r)
	}
}
