package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
)

// categoryTabs is the selector order: "all" first, then A..F.
func categoryTabs() []catalog.Category {
	return append([]catalog.Category{catalog.AllCategories}, catalog.Categories()...)
}

// categoryByDigit maps the keys 0-6 to a selector entry.
func categoryByDigit(key string) (catalog.Category, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '6' {
		return "", false
	}
	return categoryTabs()[key[0]-'0'], true
}

// cycleCategory returns the entry delta steps away from current, wrapping.
func cycleCategory(current catalog.Category, delta int) catalog.Category {
	tabs := categoryTabs()
	idx := 0
	for i, c := range tabs {
		if c == current {
			idx = i
			break
		}
	}
	n := len(tabs)
	return tabs[((idx+delta)%n+n)%n]
}

func renderCategoryBar(active catalog.Category, counts map[catalog.Category]int, total int, th theme, width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	for _, c := range categoryTabs() {
		var label string
		if c == catalog.AllCategories {
			label = fmt.Sprintf("All (%d)", total)
		} else {
			label = fmt.Sprintf("%s (%d)", string(c), counts[c])
			if m, ok := th.categories[c]; ok && m.Icon != "" && m.Icon != string(c) {
				label = fmt.Sprintf("%s %s (%d)", string(c), m.Icon, counts[c])
			}
		}

		style := tabInactiveStyle
		if c == active {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}

// renderActiveTags draws the "active filters" strip. cursor is the
// highlighted tag, or -1. The strip scrolls so the highlighted tag stays
// on screen.
func renderActiveTags(tags []catalog.Tag, cursor int, th theme, width int) string {
	if len(tags) == 0 {
		return " " + noTagsStyle.Render("no tags selected · t pick a tag from the selected card")
	}

	parts := make([]string, len(tags))
	widths := make([]int, len(tags))
	for i, t := range tags {
		parts[i] = th.tag(t, true, i == cursor) + searchHintStyle.Render(" ✕")
		widths[i] = lipgloss.Width(parts[i])
	}

	start := tagWindowStart(widths, cursor, 2, width-1)
	row := " "
	if start > 0 {
		row += searchHintStyle.Render(fmt.Sprintf("+%d", start))
	}
	for i := start; i < len(parts); i++ {
		candidate := row
		if i > start || start > 0 {
			candidate += "  "
		}
		candidate += parts[i]
		if lipgloss.Width(candidate) > width && i > start && i > cursor {
			row += searchHintStyle.Render(fmt.Sprintf("  +%d", len(tags)-i))
			break
		}
		row = candidate
	}
	return row
}
