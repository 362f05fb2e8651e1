package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextRejectsNonPDFBytes(t *testing.T) {
	e := NewExtractor(Config{})

	_, err := e.ExtractText(context.Background(), []byte("this is plain text, not a pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestExtractTextRejectsTruncatedPDF(t *testing.T) {
	e := NewExtractor(Config{})

	// A valid magic number with no body behind it.
	_, err := e.ExtractText(context.Background(), []byte("%PDF-1.4\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestMetadataRejectsGarbage(t *testing.T) {
	e := NewExtractor(Config{})

	_, err := e.Metadata([]byte{0x00, 0x01, 0x02})
	require.Error(t, err)
}

func TestNewExtractorDefaults(t *testing.T) {
	e := NewExtractor(Config{OCREnabled: true})

	assert.Equal(t, DefaultMinTextLength, e.cfg.MinTextLength)
	assert.Equal(t, "pdftoppm", e.cfg.Pdftoppm)
	assert.Equal(t, "tesseract", e.cfg.Tesseract)
	assert.Equal(t, defaultDPI, e.cfg.DPI)
	assert.Equal(t, defaultMaxPages, e.cfg.MaxPages)
	assert.True(t, e.cfg.OCREnabled)
}

func TestNewExtractorKeepsExplicitConfig(t *testing.T) {
	e := NewExtractor(Config{
		MinTextLength: 50,
		Pdftoppm:      "/opt/poppler/pdftoppm",
		Tesseract:     "/opt/tesseract/tesseract",
		DPI:           150,
		MaxPages:      5,
	})

	assert.Equal(t, 50, e.cfg.MinTextLength)
	assert.Equal(t, "/opt/poppler/pdftoppm", e.cfg.Pdftoppm)
	assert.Equal(t, 150, e.cfg.DPI)
	assert.Equal(t, 5, e.cfg.MaxPages)
}
