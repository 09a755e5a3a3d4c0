package helpers

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// StripMarkup removes every HTML tag from s and unescapes the entities left
// behind, returning plain text.
func StripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
