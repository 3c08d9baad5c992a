package extract

import (
	"regexp"
	"strings"
)

var (
	excessBlankLines = regexp.MustCompile(`\n\s*\n\s*\n`)
	spaceRuns        = regexp.MustCompile(` +`)
)

// Normalize cleans extracted text: trims, converts CRLF/CR line endings to
// LF, collapses 3+ consecutive blank-separated newlines to a single paragraph
// break, and collapses runs of spaces. Idempotent.
func Normalize(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")
	cleaned = strings.ReplaceAll(cleaned, "\r", "\n")
	for {
		next := excessBlankLines.ReplaceAllString(cleaned, "\n\n")
		if next == cleaned {
			break
		}
		cleaned = next
	}
	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	return cleaned
}
