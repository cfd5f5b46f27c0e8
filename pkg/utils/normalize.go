package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// NormalizeText strips markup from a free-text form value and trims surrounding whitespace
func NormalizeText(input string) string {
	// the strict policy escapes entities; undo that so stored values stay plain text
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(input)))
}
