// Package markup turns the simple HTML found in article bodies into text
// that reads well in a terminal.
package markup

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

var converter = md.NewConverter("", true, nil)

// ToText converts HTML markup to markdown. Plain text is returned as is,
// and markup the converter rejects is returned verbatim.
func ToText(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	out, err := converter.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(out)
}

// OneLine converts s like ToText and collapses all whitespace runs,
// newlines included, into single spaces.
func OneLine(s string) string {
	return strings.Join(strings.Fields(ToText(s)), " ")
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
