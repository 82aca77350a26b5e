package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/markup"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/view"
)

const (
	minCardWidth = 40
	// 5 content lines + top and bottom border
	cardHeight = 7
)

func gridColumns(width int) int {
	cols := width / minCardWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// gridWindow returns the first row to draw and how many rows fit so that
// the cursor row stays visible.
func gridWindow(cursor, cols, total, height int) (start, rows int) {
	rows = height / cardHeight
	if rows < 1 {
		rows = 1
	}
	totalRows := (total + cols - 1) / cols
	cursorRow := cursor / cols
	if cursorRow >= rows {
		start = cursorRow - rows + 1
	}
	if start+rows > totalRows {
		rows = totalRows - start
	}
	if rows < 0 {
		rows = 0
	}
	return start, rows
}

// renderGrid lays the filtered articles out as summary cards. tagCursor
// highlights one tag of the selected card, or -1 for none.
func renderGrid(v view.View, cursor, tagCursor int, th theme, width, height int) string {
	if v.Empty() {
		msg := "No articles match the current filters"
		if v.Total == 0 {
			msg = "The catalog is empty"
		}
		return lipglossCenter(msg, width, height)
	}

	cols := gridColumns(width)
	outer := width / cols
	inner := outer - 4 // border + padding
	if inner < 10 {
		inner = 10
	}

	start, rows := gridWindow(cursor, cols, len(v.Results), height)

	var lines []string
	for r := start; r < start+rows; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(v.Results) {
				break
			}
			tc := -1
			if i == cursor {
				tc = tagCursor
			}
			cards = append(cards, renderCard(v.Results[i], v, i == cursor, tc, th, inner))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(lines, "\n")
}

func renderCard(a catalog.Article, v view.View, selected bool, tagCursor int, th theme, inner int) string {
	badge := th.badge(a.Category)
	titleWidth := inner - lipgloss.Width(badge) - 1

	titleStyle := cardTitleStyle
	if selected {
		titleStyle = cardTitleSelectedStyle
	}
	title := badge + " " + titleStyle.MaxHeight(1).Render(markup.Truncate(a.Title, titleWidth))

	sub := strings.TrimSpace(a.Subcategory + " " + a.SubcategoryName)
	meta := cardMetaStyle.Render(markup.Truncate(sub, inner-lipgloss.Width(a.LastVerified)-3))
	if a.LastVerified != "" {
		meta += cardDateStyle.Render(" · " + a.LastVerified)
	}

	summaryBlock := cardSummaryStyle.Width(inner).Height(2).MaxHeight(2).Render(markup.OneLine(a.Summary))

	tags := renderTagLine(a.Tags, v, tagCursor, th, inner)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().MaxHeight(1).Render(title),
		lipgloss.NewStyle().MaxHeight(1).Render(meta),
		summaryBlock,
		tags,
	)

	style := cardStyle
	if selected {
		style = cardActiveStyle
	}
	return style.Width(inner + 2).Render(content)
}

// renderTagLine fits as many tags as the width allows and counts the rest.
// When cursor points past the visible tags the line starts later, with the
// number of skipped tags in front.
func renderTagLine(tags []catalog.Tag, v view.View, cursor int, th theme, width int) string {
	parts := make([]string, len(tags))
	widths := make([]int, len(tags))
	for i, t := range tags {
		parts[i] = th.tag(t, v.TagActive(t), i == cursor)
		widths[i] = lipgloss.Width(parts[i])
	}

	start := tagWindowStart(widths, cursor, 1, width)
	var line string
	if start > 0 {
		line = cardDateStyle.Render(fmt.Sprintf("+%d", start))
	}
	for i := start; i < len(parts); i++ {
		candidate := line
		if candidate != "" {
			candidate += " "
		}
		candidate += parts[i]

		more := fmt.Sprintf(" +%d", len(tags)-i-1)
		if i == len(tags)-1 {
			more = ""
		}
		if lipgloss.Width(candidate)+len(more) > width && i > start && i > cursor {
			return line + cardDateStyle.Render(fmt.Sprintf(" +%d", len(tags)-i))
		}
		line = candidate
	}
	return line
}

// tagMarkerWidth is the room kept for a "+N" marker and its separator.
const tagMarkerWidth = 4

// tagWindowStart returns the index of the first tag to draw so that the
// tag at cursor fits within width. Items have the given widths and are
// joined by sep columns.
func tagWindowStart(widths []int, cursor, sep, width int) int {
	if cursor <= 0 || cursor >= len(widths) {
		return 0
	}

	used := 0
	for i := 0; i <= cursor; i++ {
		if i > 0 {
			used += sep
		}
		used += widths[i]
	}
	if used+tagMarkerWidth <= width {
		return 0
	}

	start := cursor
	used = widths[cursor] + tagMarkerWidth
	for start > 0 && used+widths[start-1]+sep <= width {
		start--
		used += widths[start] + sep
	}
	return start
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
