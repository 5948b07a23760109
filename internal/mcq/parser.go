// Package mcq turns model output in the "Q<n>. / A) .. D) / Answer: X" grammar
// into quiz items.
package mcq

import (
	"regexp"
	"strings"

	"notes-assistant/internal/domain"
)

const (
	answerPrefix = "Answer:"
	// question line + 4 options + answer line
	minBlockLines = 1 + domain.OptionCount + 1
)

var questionMarker = regexp.MustCompile(`Q\d+\.`)

// Parse extracts quiz items from raw generated text. Text before the first
// "Q<digits>." marker is ignored. Blocks with fewer than six non-blank lines
// are dropped; Parse never fails, it only omits items.
func Parse(raw string) []domain.QuizItem {
	fragments := questionMarker.Split(raw, -1)
	items := make([]domain.QuizItem, 0, len(fragments))
	for _, fragment := range fragments[1:] {
		if item, ok := parseBlock(fragment); ok {
			items = append(items, item)
		}
	}
	return items
}

func parseBlock(fragment string) (domain.QuizItem, bool) {
	lines := nonBlankLines(strings.TrimSpace(fragment))
	if len(lines) < minBlockLines {
		return domain.QuizItem{}, false
	}

	options := make([]string, domain.OptionCount)
	// Options are positional; the model's own A)-D) lettering is trusted.
	copy(options, lines[1:1+domain.OptionCount])

	return domain.QuizItem{
		Question: lines[0],
		Options:  options,
		Answer:   findAnswer(lines),
	}, true
}

func findAnswer(lines []string) string {
	for _, line := range lines {
		if strings.HasPrefix(line, answerPrefix) {
			_, code, _ := strings.Cut(line, ":")
			return strings.TrimSpace(code)
		}
	}
	return ""
}

func nonBlankLines(s string) []string {
	raw := strings.Split(s, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
