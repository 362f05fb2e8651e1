package llm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxTextLength caps the text sent to the model at roughly 5000
// tokens, which bounds per-file cost and latency.
const DefaultMaxTextLength = 20000

const truncationMarker = "...[truncated]"

var (
	newlineRuns    = regexp.MustCompile(`\n{3,}`)
	whitespaceRuns = regexp.MustCompile(`[ \t]{2,}`)
)

// PreprocessText collapses whitespace runs and truncates the text to
// maxLen, keeping the head of the document where the important information
// usually lives.
func PreprocessText(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxTextLength
	}

	cleaned := newlineRuns.ReplaceAllString(text, "\n\n")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxLen {
		// Never cut through a multi-byte rune.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut] + truncationMarker
	}
	return cleaned
}

// cleanJSON strips markdown code fences some models wrap around the JSON
// despite being asked not to.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
