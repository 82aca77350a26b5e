package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToTextPlainPassesThrough(t *testing.T) {
	assert.Equal(t, "no markup here", ToText("no markup here"))
	assert.Equal(t, "", ToText(""))
}

func TestToTextConvertsMarkup(t *testing.T) {
	got := ToText("<p>Hello <strong>world</strong></p>")
	assert.Equal(t, "Hello **world**", got)

	list := ToText("<ul><li>alpha</li><li>beta</li></ul>")
	assert.Contains(t, list, "alpha")
	assert.Contains(t, list, "beta")
	assert.NotContains(t, list, "<li>")
}

func TestToTextKeepsLinkTargets(t *testing.T) {
	got := ToText(`<a href="https://example.com">site</a>`)
	assert.Contains(t, got, "https://example.com")
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "A new dataset", OneLine("<p>A new   dataset</p>"))
	assert.Equal(t, "first second", OneLine("first\n\n  second "))
	assert.Equal(t, "**Bold** and _italic_", OneLine("<b>Bold</b> and <i>italic</i>"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"this is a long string", 10, "this is..."},
		{"こんにちは世界です", 5, "こん..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		if got := Truncate(tt.input, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}
