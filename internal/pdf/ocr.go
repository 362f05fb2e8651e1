package pdf

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ocr rasterizes the document with pdftoppm and runs tesseract over every
// page. All intermediate files live in one temp dir that is removed on both
// success and failure paths.
func (e *Extractor) ocr(ctx context.Context, data []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "resumeparser-ocr-*")
	if err != nil {
		return "", err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			log.Printf("ocr: failed to remove temp dir %q: %v", tmpDir, rmErr)
		}
	}()

	inPath := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(inPath, data, 0600); err != nil {
		return "", err
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png in.pdf <tmp>/page
	if out, err := exec.CommandContext(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", inPath, prefix).CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm: %v: %s", err, strings.TrimSpace(string(out)))
	}

	// pdftoppm names pages prefix-1.png, prefix-2.png, ...
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no images")
	}
	if len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}

	var b strings.Builder
	for _, img := range matches {
		// tesseract <img> stdout
		out, err := exec.CommandContext(ctx, e.cfg.Tesseract, img, "stdout").Output()
		if err != nil {
			return "", fmt.Errorf("tesseract: %v", err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.Write(out)
	}
	return b.String(), nil
}
