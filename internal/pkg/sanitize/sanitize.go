package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// StripTags removes all HTML markup from s and unescapes the remaining
// entities, leaving plain text.
func StripTags(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

// StripControl removes CR/LF from s. Single-line values handed to the spam
// classifier and to mail headers must not contain line breaks.
func StripControl(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}
