// Package view holds the mutable browsing state and derives what should be
// on screen from it. All changes go through Controller methods, and each
// one returns a freshly derived View.
package view

import (
	"strings"

	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/filter"
)

type Mode int

const (
	ModeGrid Mode = iota
	ModeDetail
)

func (m Mode) String() string {
	if m == ModeDetail {
		return "detail"
	}
	return "grid"
}

// View is an immutable snapshot of what the presentation layer renders.
type View struct {
	Mode     Mode
	Category catalog.Category
	Tags     []catalog.Tag
	Query    string

	Results []catalog.Article
	Detail  *catalog.Article

	Total          int
	Filtered       int
	CategoryCounts map[catalog.Category]int
}

// Empty reports whether the current filters match nothing.
func (v View) Empty() bool {
	return v.Filtered == 0
}

// TagActive reports whether t is one of the active filter tags.
func (v View) TagActive(t catalog.Tag) bool {
	for _, at := range v.Tags {
		if at == t {
			return true
		}
	}
	return false
}

type Controller struct {
	catalog  *catalog.Catalog
	state    filter.State
	mode     Mode
	detailID string
	counts   map[catalog.Category]int
}

// New returns a controller in the initial state: grid view, all
// categories, no tags, empty query.
func New(c *catalog.Catalog) *Controller {
	if c == nil {
		c = catalog.New(nil)
	}
	return &Controller{
		catalog: c,
		state:   filter.Default(),
		mode:    ModeGrid,
		counts:  c.CategoryCounts(),
	}
}

func (c *Controller) SelectCategory(cat catalog.Category) View {
	if cat == "" {
		cat = catalog.AllCategories
	}
	c.state.Category = cat
	c.showGrid()
	return c.View()
}

func (c *Controller) SetSearchQuery(text string) View {
	c.state.Query = strings.TrimSpace(text)
	c.showGrid()
	return c.View()
}

func (c *Controller) ClearSearch() View {
	return c.SetSearchQuery("")
}

// ToggleTag removes the tag if it is active and appends it otherwise. The
// view always returns to the grid so the effect on the results is visible.
func (c *Controller) ToggleTag(typ catalog.TagType, value string) View {
	t := catalog.Tag{Type: typ, Value: value}
	if i := c.tagIndex(t); i >= 0 {
		c.state.Tags = append(c.state.Tags[:i:i], c.state.Tags[i+1:]...)
	} else {
		c.state.Tags = append(c.state.Tags, t)
	}
	c.showGrid()
	return c.View()
}

// OpenDetail switches to the detail view for id. Unknown ids are ignored.
func (c *Controller) OpenDetail(id string) View {
	if _, ok := c.catalog.Lookup(id); !ok {
		return c.View()
	}
	c.mode = ModeDetail
	c.detailID = id
	return c.View()
}

func (c *Controller) CloseDetail() View {
	c.showGrid()
	return c.View()
}

// View derives the current snapshot without changing any state.
func (c *Controller) View() View {
	results := filter.Apply(c.catalog.Articles(), c.state)

	v := View{
		Mode:           c.mode,
		Category:       c.state.Category,
		Tags:           append([]catalog.Tag(nil), c.state.Tags...),
		Query:          c.state.Query,
		Results:        results,
		Total:          c.catalog.Len(),
		Filtered:       len(results),
		CategoryCounts: c.counts,
	}
	if c.mode == ModeDetail {
		if a, ok := c.catalog.Lookup(c.detailID); ok {
			v.Detail = &a
		}
	}
	return v
}

// State returns a copy of the filter state.
func (c *Controller) State() filter.State {
	st := c.state
	st.Tags = append([]catalog.Tag(nil), c.state.Tags...)
	return st
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) HasTag(t catalog.Tag) bool {
	return c.tagIndex(t) >= 0
}

func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

func (c *Controller) tagIndex(t catalog.Tag) int {
	for i, at := range c.state.Tags {
		if at == t {
			return i
		}
	}
	return -1
}

func (c *Controller) showGrid() {
	c.mode = ModeGrid
	c.detailID = ""
}
