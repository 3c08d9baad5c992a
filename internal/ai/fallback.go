package ai

import "strings"

// fallbackMaxChars caps fallback output size. The cap is applied after
// appending the sentence that crosses it, so output may exceed it by at most
// one sentence but the loop always stops there.
const fallbackMaxChars = 1000

// FallbackSummary produces a deterministic extractive summary: the first
// max(1, floor(totalSentences*ratio)) sentences in order, joined by single
// spaces. Sentence boundaries are a period followed by whitespace. Empty
// input yields empty output.
func FallbackSummary(text string, ratio float64) string {
	if text == "" {
		return ""
	}

	sentences := splitSentences(text)
	targetCount := int(float64(len(sentences)) * ratio)
	if targetCount < 1 {
		targetCount = 1
	}

	var summary strings.Builder
	for i := 0; i < targetCount && i < len(sentences); i++ {
		summary.WriteString(sentences[i])
		summary.WriteString(" ")
		if summary.Len() > fallbackMaxChars {
			break
		}
	}

	return strings.TrimSpace(summary.String())
}

// splitSentences splits on a period followed by whitespace, keeping the
// period with its sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		if text[i] == '.' && isSpace(text[i+1]) {
			out = append(out, text[start:i+1])
			j := i + 1
			for j < len(text) && isSpace(text[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
