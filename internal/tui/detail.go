package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/markup"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/view"
)

// renderDetail builds the full article page shown inside the detail
// viewport. Links are numbered so they can be opened with 1-9.
func renderDetail(a catalog.Article, v view.View, tagCursor int, th theme, width int) string {
	if width < 20 {
		width = 20
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder

	b.WriteString(th.badge(a.Category))
	b.WriteString(" ")
	b.WriteString(cardMetaStyle.Render(th.categoryName(a.Category)))
	if a.ID != "" {
		b.WriteString(cardDateStyle.Render("  " + a.ID))
	}
	b.WriteString("\n\n")

	b.WriteString(detailTitleStyle.Width(width).Render(a.Title))
	b.WriteString("\n")

	if sub := strings.TrimSpace(a.Subcategory + " " + a.SubcategoryName); sub != "" {
		b.WriteString(cardMetaStyle.Render(sub))
		b.WriteString("\n")
	}

	var dates []string
	if a.ReleaseDate != "" {
		dates = append(dates, "released "+a.ReleaseDate)
	}
	if a.LastVerified != "" {
		dates = append(dates, "verified "+a.LastVerified)
	}
	if len(dates) > 0 {
		b.WriteString(cardDateStyle.Render(strings.Join(dates, " · ")))
		b.WriteString("\n")
	}

	if len(a.Tags) > 0 {
		b.WriteString(detailSectionStyle.Render("Tags"))
		b.WriteString("\n")
		parts := make([]string, len(a.Tags))
		for i, t := range a.Tags {
			parts[i] = th.tag(t, v.TagActive(t), i == tagCursor)
		}
		b.WriteString(wrap.Render(strings.Join(parts, "  ")))
		b.WriteString("\n")
	}

	if summary := markup.ToText(a.Summary); summary != "" {
		b.WriteString(detailSectionStyle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(detailSummaryStyle.Width(width).Render(summary))
		b.WriteString("\n")
	}

	if body := markup.ToText(a.Body); body != "" {
		b.WriteString(detailSectionStyle.Render("Details"))
		b.WriteString("\n")
		b.WriteString(detailBodyStyle.Width(width).Render(body))
		b.WriteString("\n")
	}

	if len(a.Links) > 0 {
		b.WriteString(detailSectionStyle.Render("Links"))
		b.WriteString("\n")
		for i, l := range a.Links {
			prefix := "   "
			if i < 9 {
				prefix = fmt.Sprintf("%d. ", i+1)
			}
			b.WriteString(cardDateStyle.Render(prefix))
			b.WriteString(detailLinkStyle.Render(l))
			b.WriteString("\n")
		}
	}

	return b.String()
}
