package htmlutil

import (
	"strings"

	"github.com/k3a/html2text"
)

// ToText converts HTML to plain text using a proper HTML parser.
// Handles entities, strips tags, and preserves readable text.
func ToText(s string) string {
	return html2text.HTML2Text(s)
}

// CleanNote reduces a free-text note that may have been pasted as HTML to
// trimmed plain text. Plain input without markup or entities is returned
// trimmed but otherwise untouched.
func CleanNote(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return strings.TrimSpace(ToText(s))
}
