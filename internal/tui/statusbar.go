package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(left, hints string, width int) string {
	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

// modeHints lists the keys that do something in the current input mode.
func modeHints(m inputMode, detail bool) string {
	switch m {
	case modeSearch:
		return "type to filter  enter keep  esc clear"
	case modeTags:
		return "←/→ pick tag  enter toggle  esc back"
	case modeActive:
		return "←/→ pick filter  enter remove  esc back"
	case modeHelp:
		return "? close  q quit"
	}
	if detail {
		return "j/k scroll  1-9 open link  [ ] category  / search  esc back"
	}
	return "/ search  0-6 category  t tags  a filters  enter open  ? help"
}
