// Package extract mines assistant prose for actionable items and computes
// project memory digests. Extraction is heuristic and never errors: the
// worst case is a single fallback task or an empty theme list.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxTasks    = 5
	minTaskLen  = 6
	maxTaskLen  = 99
	fallbackCap = 50
)

// The four pattern passes run in this order; discovery order is preserved
// across passes when deduplicating.
var taskPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^[-•]\s*(.+)$`),       // bullet lines
	regexp.MustCompile(`(?m)^\d+\.\s*(.+)$`),      // numbered lines
	regexp.MustCompile(`\*\*([^*]+)\*\*`),         // bold spans
	regexp.MustCompile(`(?m)Do this now:\s*(.+)$`), // daily focus actions
}

var markupRe = regexp.MustCompile(`<[^>]+>`)

// Tasks pulls up to five deduplicated task candidates out of assistant text.
// Candidates outside the [6,99] character window are rejected; when nothing
// matches, a single "Review:" task is synthesized from the first sentence.
func Tasks(text string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, re := range taskPatterns {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			candidate := cleanCandidate(match[1])

			n := utf8.RuneCountInString(candidate)
			if n < minTaskLen || n > maxTaskLen {
				continue
			}
			if seen[candidate] {
				continue
			}

			seen[candidate] = true
			out = append(out, candidate)
		}
	}

	if len(out) == 0 {
		if sentence := firstSentence(text); sentence != "" {
			out = append(out, "Review: "+truncate(sentence, fallbackCap)+"...")
		}
	}

	if len(out) > maxTasks {
		out = out[:maxTasks]
	}

	return out
}

func cleanCandidate(raw string) string {
	c := strings.TrimSpace(raw)
	c = strings.ReplaceAll(c, "**", "")
	c = markupRe.ReplaceAllString(c, "")

	return strings.TrimSpace(c)
}

func firstSentence(text string) string {
	end := strings.IndexAny(text, ".!?")
	if end >= 0 {
		text = text[:end]
	}

	return strings.TrimSpace(text)
}

func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[:n])
}
