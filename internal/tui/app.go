package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/browser"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/config"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/view"
	"go.uber.org/zap"
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeTags   // picking a tag on the selected card or open article
	modeActive // picking an active filter tag to remove
	modeHelp
)

// header, category bar, search line, active tags, status bar
const chromeHeight = 5

type App struct {
	cfg  *config.Config
	log  *zap.Logger
	load func(context.Context) *catalog.Catalog

	ctrl       *view.Controller
	view       view.View
	loaded     bool
	refreshing bool

	mode         inputMode
	cursor       int
	tagCursor    int
	activeCursor int

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	detail      viewport.Model

	theme theme
	err   error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg *config.Config
	Log *zap.Logger
	// Load builds the catalog. It runs off the UI goroutine, once at
	// startup and again on every refresh.
	Load func(ctx context.Context) *catalog.Catalog
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search title, summary and body..."
	ti.Prompt = searchPromptStyle.Render("/ ")

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	ctrl := view.New(nil)

	return &App{
		cfg:         opts.Cfg,
		log:         log,
		load:        opts.Load,
		ctrl:        ctrl,
		view:        ctrl.View(),
		searchInput: ti,
		spinner:     sp,
		detail:      viewport.New(0, 0),
		theme:       newTheme(opts.Cfg),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCatalogCmd())
}

func (a *App) loadCatalogCmd() tea.Cmd {
	load := a.load
	return func() tea.Msg {
		if load == nil {
			return catalogLoadedMsg{catalog: catalog.New(nil)}
		}
		return catalogLoadedMsg{catalog: load(context.Background())}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.detail.Width = max(0, a.width-2)
		a.detail.Height = max(1, a.height-chromeHeight)
		a.refreshDetail()
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case catalogLoadedMsg:
		a.setCatalog(msg.catalog)
		return a, nil

	case openErrMsg:
		a.log.Warn("failed to open link", zap.Error(msg.err))
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if a.view.Mode == view.ModeDetail {
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	}
	return a, nil
}

// setCatalog installs a freshly loaded catalog. On refresh the filter
// state carries over to the new controller.
func (a *App) setCatalog(c *catalog.Catalog) {
	prev := a.ctrl.State()
	a.ctrl = view.New(c)
	if a.loaded {
		a.ctrl.SelectCategory(prev.Category)
		for _, t := range prev.Tags {
			a.ctrl.ToggleTag(t.Type, t.Value)
		}
		a.ctrl.SetSearchQuery(prev.Query)
	}
	a.loaded = true
	a.refreshing = false
	// Tag cursors point into the old results. Search and help stay open.
	if a.mode == modeTags || a.mode == modeActive {
		a.mode = modeBrowse
	}
	a.log.Info("catalog loaded", zap.Int("articles", c.Len()))
	a.apply("load", a.ctrl.View())
}

// apply installs the view returned by a controller operation. Filter
// changes move the cursor back to the first card.
func (a *App) apply(op string, v view.View) {
	a.log.Debug("view updated",
		zap.String("op", op),
		zap.Stringer("mode", v.Mode),
		zap.String("category", string(v.Category)),
		zap.Int("tags", len(v.Tags)),
		zap.String("query", v.Query),
		zap.Int("results", v.Filtered),
	)
	a.view = v
	a.cursor = 0
	a.refreshDetail()
}

func (a *App) refreshDetail() {
	if a.view.Mode != view.ModeDetail || a.view.Detail == nil {
		return
	}
	tc := -1
	if a.mode == modeTags {
		tc = a.tagCursor
	}
	a.detail.SetContent(renderDetail(*a.view.Detail, a.view, tc, a.theme, a.detail.Width-2))
}

func (a *App) selected() (catalog.Article, bool) {
	if a.cursor < 0 || a.cursor >= len(a.view.Results) {
		return catalog.Article{}, false
	}
	return a.view.Results[a.cursor], true
}

// focusedTags returns the tags of the open article, or of the selected
// card in the grid.
func (a *App) focusedTags() []catalog.Tag {
	if a.view.Mode == view.ModeDetail && a.view.Detail != nil {
		return a.view.Detail.Tags
	}
	if art, ok := a.selected(); ok {
		return art.Tags
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	if !a.loaded {
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeTags:
		return a.handleTagKey(msg)
	case modeActive:
		return a.handleActiveKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc":
			a.mode = modeBrowse
			return a, nil
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	if a.view.Mode == view.ModeDetail {
		return a.handleDetailKey(msg)
	}
	return a.handleGridKey(msg)
}

func (a *App) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(a.view.Results)
	cols := gridColumns(a.width)

	key := msg.String()
	if cat, ok := categoryByDigit(key); ok {
		a.apply("select_category", a.ctrl.SelectCategory(cat))
		return a, nil
	}

	if cmd, ok := a.handleFilterKey(key); ok {
		return a, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.mode = modeHelp
		return a, nil
	case "h", "left":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "l", "right":
		if a.cursor < n-1 {
			a.cursor++
		}
		return a, nil
	case "j", "down":
		if a.cursor+cols < n {
			a.cursor += cols
		}
		return a, nil
	case "k", "up":
		if a.cursor-cols >= 0 {
			a.cursor -= cols
		}
		return a, nil
	case "g", "home":
		a.cursor = 0
		return a, nil
	case "G", "end":
		a.cursor = max(0, n-1)
		return a, nil
	case "enter":
		if art, ok := a.selected(); ok {
			a.openDetail(art.ID)
		}
		return a, nil
	case "t":
		if len(a.focusedTags()) > 0 {
			a.mode = modeTags
			a.tagCursor = 0
		}
		return a, nil
	case "a":
		if len(a.view.Tags) > 0 {
			a.mode = modeActive
			a.activeCursor = 0
		}
		return a, nil
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.loadCatalogCmd(), a.spinner.Tick)
		}
		return a, nil
	}
	return a, nil
}

// handleFilterKey handles the category and search keys shared by the grid
// and the detail view. Any filter change lands in the grid.
func (a *App) handleFilterKey(key string) (tea.Cmd, bool) {
	switch key {
	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue(a.view.Query)
		a.searchInput.CursorEnd()
		a.searchInput.Focus()
		return textinput.Blink, true
	case "x":
		if a.view.Query != "" {
			a.searchInput.SetValue("")
			a.apply("clear_search", a.ctrl.ClearSearch())
		}
		return nil, true
	case "[", "shift+tab":
		a.apply("select_category", a.ctrl.SelectCategory(cycleCategory(a.view.Category, -1)))
		return nil, true
	case "]", "tab":
		a.apply("select_category", a.ctrl.SelectCategory(cycleCategory(a.view.Category, 1)))
		return nil, true
	}
	return nil, false
}

func (a *App) openDetail(id string) {
	v := a.ctrl.OpenDetail(id)
	a.log.Debug("view updated", zap.String("op", "open_detail"), zap.String("id", id))
	cursor := a.cursor
	a.view = v
	a.cursor = cursor
	a.detail.GotoTop()
	a.refreshDetail()
}

func (a *App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	// digits open links here, so only the non-digit filter keys apply
	if cmd, ok := a.handleFilterKey(key); ok {
		return a, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.mode = modeHelp
		return a, nil
	case "esc", "backspace", "b":
		cursor := a.cursor
		a.apply("close_detail", a.ctrl.CloseDetail())
		a.cursor = cursor
		return a, nil
	case "t":
		if len(a.focusedTags()) > 0 {
			a.mode = modeTags
			a.tagCursor = 0
			a.refreshDetail()
		}
		return a, nil
	case "o":
		return a, a.openLink(0)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return a, a.openLink(int(key[0] - '1'))
	}

	var cmd tea.Cmd
	a.detail, cmd = a.detail.Update(msg)
	return a, cmd
}

func (a *App) openLink(i int) tea.Cmd {
	if a.view.Detail == nil || i < 0 || i >= len(a.view.Detail.Links) {
		return nil
	}
	url := a.view.Detail.Links[i]
	a.log.Info("opening link", zap.String("id", a.view.Detail.ID), zap.String("url", url))
	return openBrowserCmd(url)
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeBrowse
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.apply("clear_search", a.ctrl.ClearSearch())
		return a, nil
	case "enter":
		a.mode = modeBrowse
		a.searchInput.Blur()
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	// Only re-filter on actual value changes, not cursor moves etc.
	if a.searchInput.Value() != before {
		a.apply("set_search_query", a.ctrl.SetSearchQuery(a.searchInput.Value()))
	}
	return a, cmd
}

func (a *App) handleTagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := a.focusedTags()
	if len(tags) == 0 {
		a.mode = modeBrowse
		return a, nil
	}

	switch msg.String() {
	case "esc", "t":
		a.mode = modeBrowse
		a.refreshDetail()
		return a, nil
	case "h", "left":
		if a.tagCursor > 0 {
			a.tagCursor--
			a.refreshDetail()
		}
		return a, nil
	case "l", "right":
		if a.tagCursor < len(tags)-1 {
			a.tagCursor++
			a.refreshDetail()
		}
		return a, nil
	case "enter", " ":
		t := tags[min(a.tagCursor, len(tags)-1)]
		a.mode = modeBrowse
		a.apply("toggle_tag", a.ctrl.ToggleTag(t.Type, t.Value))
		return a, nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleActiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := a.view.Tags
	if len(tags) == 0 {
		a.mode = modeBrowse
		return a, nil
	}

	switch msg.String() {
	case "esc", "a":
		a.mode = modeBrowse
		return a, nil
	case "h", "left":
		if a.activeCursor > 0 {
			a.activeCursor--
		}
		return a, nil
	case "l", "right":
		if a.activeCursor < len(tags)-1 {
			a.activeCursor++
		}
		return a, nil
	case "enter", " ", "x", "backspace":
		t := tags[min(a.activeCursor, len(tags)-1)]
		a.apply("toggle_tag", a.ctrl.ToggleTag(t.Type, t.Value))
		if len(a.view.Tags) == 0 {
			a.mode = modeBrowse
		} else if a.activeCursor >= len(a.view.Tags) {
			a.activeCursor = len(a.view.Tags) - 1
		}
		return a, nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return headerStyle.Render("aidb")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	contentHeight := max(1, a.height-chromeHeight)
	header := a.renderHeader()

	if !a.loaded {
		body := lipglossCenter(a.spinner.View()+" Loading catalog...", a.width, contentHeight)
		status := renderStatusBar(" loading", "q quit", a.width)
		return strings.Join([]string{header, "", "", "", fitHeight(body, contentHeight), status}, "\n")
	}

	cats := renderCategoryBar(a.view.Category, a.view.CategoryCounts, a.view.Total, a.theme, a.width)

	activeCursor := -1
	if a.mode == modeActive {
		activeCursor = a.activeCursor
	}
	active := renderActiveTags(a.view.Tags, activeCursor, a.theme, a.width)

	var content string
	if a.view.Mode == view.ModeDetail && a.view.Detail != nil {
		content = lipgloss.NewStyle().PaddingLeft(1).Render(a.detail.View())
	} else {
		tc := -1
		if a.mode == modeTags {
			tc = a.tagCursor
		}
		content = renderGrid(a.view, a.cursor, tc, a.theme, a.width, contentHeight)
	}

	return strings.Join([]string{
		header,
		cats,
		a.renderSearchLine(),
		active,
		fitHeight(content, contentHeight),
		a.renderStatus(),
	}, "\n")
}

func (a *App) renderHeader() string {
	left := headerStyle.Render("aidb") + cardDateStyle.Render("  AI catalog")
	if a.refreshing {
		left += " " + a.spinner.View()
	}
	right := headerCountStyle.Render(fmt.Sprintf("%d shown · %d total ", a.view.Filtered, a.view.Total))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + fmt.Sprintf("%*s", gap, "") + right
}

func (a *App) renderSearchLine() string {
	if a.mode == modeSearch {
		return " " + a.searchInput.View()
	}
	if a.view.Query != "" {
		return " " + searchPromptStyle.Render("/ ") + a.view.Query + searchHintStyle.Render("  x clear")
	}
	return " " + searchHintStyle.Render("/ search")
}

func (a *App) renderStatus() string {
	left := fmt.Sprintf(" %d articles", a.view.Filtered)
	if a.view.Category != catalog.AllCategories {
		left += " · " + a.theme.categoryName(a.view.Category)
	}
	if a.view.Mode == view.ModeDetail && a.view.Detail != nil {
		left = " " + a.view.Detail.ID + fmt.Sprintf(" · %3.f%%", a.detail.ScrollPercent()*100)
	}
	if a.err != nil {
		left = " " + errorStyle.Render(a.err.Error())
	}
	return renderStatusBar(left, modeHints(a.mode, a.view.Mode == view.ModeDetail), a.width)
}

func fitHeight(content string, height int) string {
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("aidb")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Grid") + "\n" +
		"  h/j/k/l, arrows  Move between cards\n" +
		"  enter            Open article detail\n" +
		"  0-6, [ ]         Select category (0 is all)\n" +
		"  /                Search title, summary and body\n" +
		"  x                Clear search\n" +
		"  r                Reload sources\n\n" +
		dim.Render("Tags") + "\n" +
		"  t                Pick a tag on the card to toggle\n" +
		"  a                Pick an active filter to remove\n" +
		"  ←/→, enter       Move, toggle\n\n" +
		dim.Render("Detail") + "\n" +
		"  j/k, pgup/pgdn   Scroll\n" +
		"  [ ], /, x        Category and search (back to grid)\n" +
		"  o, 1-9           Open link in browser\n" +
		"  esc, b           Back to grid\n\n" +
		dim.Render("General") + "\n" +
		"  ?                Toggle this help\n" +
		"  q, ctrl+c        Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
