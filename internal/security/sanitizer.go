package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeText strips every HTML tag and null byte from user-submitted text
// and trims surrounding whitespace.
func SanitizeText(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.TrimSpace(htmlPolicy.Sanitize(input))
}

// SanitizeSearch normalises a search substring and caps its length.
func SanitizeSearch(input string) string {
	input = strings.TrimSpace(strings.ReplaceAll(input, "\x00", ""))
	if len(input) > 100 {
		input = input[:100]
	}
	return input
}
