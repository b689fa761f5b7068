package services

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{85}]+`)
	newlineRun    = regexp.MustCompile(`\n+`)
)

// NormalizeText collapses every whitespace run to a single space, every
// newline run to one newline, and trims the result. It is idempotent.
func NormalizeText(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
