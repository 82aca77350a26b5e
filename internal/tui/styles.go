package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/config"
)

var (
	// Adaptive colors for dark/light terminals
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorText      = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#E4E4E4"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorActiveBdr = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorTabActive = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorTabBg     = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A3E"}
	colorSurface   = lipgloss.AdaptiveColor{Light: "#F4F4F4", Dark: "#1E1E2E"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerCountStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Align(lipgloss.Right)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	cardActiveStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorActiveBdr).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	cardTitleSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	cardMetaStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	cardDateStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	cardSummaryStyle = lipgloss.NewStyle().
				Foreground(colorSecondary)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	detailSummaryStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Italic(true)

	detailBodyStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	detailSectionStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Bold(true).
				MarginTop(1)

	detailLinkStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Underline(true)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorTabActive).
			Padding(0, 1).
			Bold(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Background(colorTabBg).
				Padding(0, 1)

	tabSeparatorStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Background(colorSurface)

	noTagsStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	searchPromptStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	searchHintStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 3)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	genericBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorDim).
				Padding(0, 1).
				Bold(true)
)

// theme resolves per-category and per-tag-type styles from config. Keys
// without metadata fall back to generic styles.
type theme struct {
	categories map[catalog.Category]config.CategoryMeta
	tagColors  map[catalog.TagType]string
}

func newTheme(cfg *config.Config) theme {
	t := theme{
		categories: make(map[catalog.Category]config.CategoryMeta),
		tagColors:  make(map[catalog.TagType]string),
	}
	if cfg == nil {
		return t
	}
	for _, m := range cfg.Categories {
		t.categories[catalog.Category(m.Key)] = m
	}
	for _, m := range cfg.TagTypes {
		t.tagColors[catalog.TagType(m.Key)] = m.Color
	}
	return t
}

func (t theme) categoryName(cat catalog.Category) string {
	if m, ok := t.categories[cat]; ok && m.Name != "" {
		return m.Name
	}
	return string(cat)
}

func (t theme) badge(cat catalog.Category) string {
	m, ok := t.categories[cat]
	if !ok {
		label := string(cat)
		if label == "" {
			label = "?"
		}
		return genericBadgeStyle.Render(label)
	}
	icon := m.Icon
	if icon == "" {
		icon = m.Key
	}
	style := genericBadgeStyle
	if m.Color != "" {
		style = style.Background(lipgloss.Color(m.Color))
	}
	return style.Render(icon)
}

func (t theme) tag(tag catalog.Tag, active, selected bool) string {
	color := lipgloss.TerminalColor(colorDim)
	if c, ok := t.tagColors[tag.Type]; ok && c != "" {
		color = lipgloss.Color(c)
	}

	style := lipgloss.NewStyle().Foreground(color)
	if active {
		style = style.Bold(true).Underline(true)
	}
	if selected {
		style = style.Reverse(true)
	}
	return style.Render(tag.String())
}
