// Package filter derives the visible subset of a catalog from the current
// filter state. Everything here is pure: the same inputs always produce the
// same output and nothing is cached.
package filter

import (
	"strings"

	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
)

// State is the filtering part of the view state.
type State struct {
	Category catalog.Category
	Tags     []catalog.Tag
	Query    string
}

// Default returns the initial state: every category, no tags, no query.
func Default() State {
	return State{Category: catalog.AllCategories}
}

// Match reports whether a passes the category, tag and search filters.
func Match(a catalog.Article, st State) bool {
	if st.Category != "" && st.Category != catalog.AllCategories && a.Category != st.Category {
		return false
	}

	// Every active tag must be present (AND).
	for _, t := range st.Tags {
		if !a.HasTag(t) {
			return false
		}
	}

	if st.Query != "" {
		haystack := strings.ToLower(a.Title + " " + a.Summary + " " + a.Body)
		if !strings.Contains(haystack, strings.ToLower(st.Query)) {
			return false
		}
	}
	return true
}

// Apply returns the articles that match st, in their original order.
func Apply(articles []catalog.Article, st State) []catalog.Article {
	out := make([]catalog.Article, 0, len(articles))
	for _, a := range articles {
		if Match(a, st) {
			out = append(out, a)
		}
	}
	return out
}

// Count returns len(Apply(articles, st)) without building the slice.
func Count(articles []catalog.Article, st State) int {
	n := 0
	for _, a := range articles {
		if Match(a, st) {
			n++
		}
	}
	return n
}
