package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store persists raw uploaded bytes and hands back a locator. The pipeline
// carries bytes in memory; the stored copy exists so a file can be inspected
// or re-ingested later.
type Store interface {
	Save(fileID, originalName string, data []byte) (string, error)
	Open(locator string) ([]byte, error)
}

// DiskStore writes uploads under baseDir/YYYY/MM/DD/.
type DiskStore struct {
	baseDir string
}

func NewDiskStore(baseDir string) *DiskStore {
	return &DiskStore{baseDir: baseDir}
}

func (s *DiskStore) Save(fileID, originalName string, data []byte) (string, error) {
	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.pdf", fileID, sanitizeName(originalName))
	absPath := filepath.Join(absDir, filename)
	if err := os.WriteFile(absPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath := filepath.Join(relDir, filename)
	return strings.ReplaceAll(relPath, "\\", "/"), nil
}

func (s *DiskStore) Open(locator string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.baseDir, locator))
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}
