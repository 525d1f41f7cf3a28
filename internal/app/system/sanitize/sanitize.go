// internal/app/system/sanitize/sanitize.go
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element, keeping only text content.
var strict = bluemonday.StrictPolicy()

// Name returns s as plain text suitable for storing as a display name:
// markup is removed, entities are decoded, and runs of whitespace are
// collapsed to a single space.
func Name(s string) string {
	if s == "" {
		return ""
	}
	cleaned := html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(cleaned), " ")
}
