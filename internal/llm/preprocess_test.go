package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPreprocessTextCollapsesWhitespace(t *testing.T) {
	in := "John  Doe\tEngineer\n\n\n\nExperience:\n\n- Go"
	out := PreprocessText(in, 0)

	assert.Equal(t, "John Doe Engineer\n\nExperience:\n\n- Go", out)
}

func TestPreprocessTextTruncates(t *testing.T) {
	in := strings.Repeat("a", 150)
	out := PreprocessText(in, 100)

	assert.Equal(t, 100+len("...[truncated]"), len(out))
	assert.True(t, strings.HasSuffix(out, "...[truncated]"))
}

func TestPreprocessTextTruncatesOnRuneBoundary(t *testing.T) {
	// Two-byte runes with an odd limit put the cut inside a rune.
	in := strings.Repeat("é", 60)
	out := PreprocessText(in, 99)

	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, "...[truncated]"))
	assert.Equal(t, 98+len("...[truncated]"), len(out))
}

func TestPreprocessTextShortInputUntouched(t *testing.T) {
	out := PreprocessText("short resume", 100)
	assert.Equal(t, "short resume", out)
	assert.False(t, strings.Contains(out, "truncated"))
}

func TestCleanJSONStripsFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      "{\"a\":1}",
		"```json\n{\"a\":1}\n```":        "{\"a\":1}",
		"```\n{\"a\":1}\n```":            "{\"a\":1}",
		"  \n```json\n{\"a\":1}\n```\n ": "{\"a\":1}",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanJSON(in))
	}
}
