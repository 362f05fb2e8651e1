package storage

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	data := []byte("%PDF-1.4 payload")
	locator, err := store.Save("abc-123", "My Resume (final).pdf", data)
	require.NoError(t, err)

	now := time.Now()
	assert.True(t, strings.HasPrefix(locator, fmt.Sprintf("%d/", now.Year())))
	assert.True(t, strings.HasSuffix(locator, ".pdf"))
	assert.Contains(t, locator, "abc-123_")

	got, err := store.Open(locator)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"resume.pdf":             "resume",
		"../../etc/passwd":       "passwd",
		"My Resume (final).pdf":  "My_Resume__final_",
		"":                       "file",
		strings.Repeat("a", 60):  strings.Repeat("a", 40),
		"ivan-petrov_cv 2024.pdf": "ivan-petrov_cv_2024",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeName(in), "input: %q", in)
	}
}
