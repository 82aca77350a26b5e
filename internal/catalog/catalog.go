package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Source produces raw articles from one external location.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Article, error)
}

// Catalog is the normalized, session-lifetime article list.
type Catalog struct {
	articles []Article
	byID     map[string]int
	counts   map[Category]int
}

// New normalizes articles and builds a catalog over them. The slice is
// taken over by the catalog.
func New(articles []Article) *Catalog {
	Normalize(articles)

	c := &Catalog{
		articles: articles,
		byID:     make(map[string]int, len(articles)),
		counts:   make(map[Category]int, len(Categories())),
	}
	for _, k := range Categories() {
		c.counts[k] = 0
	}
	for i, a := range articles {
		c.byID[a.ID] = i
		if _, ok := c.counts[a.Category]; ok {
			c.counts[a.Category]++
		}
	}
	return c
}

// Load fetches every source in order and builds a catalog from whatever
// succeeded. A failing source is logged and contributes nothing, so the
// result is never nil.
func Load(ctx context.Context, sources []Source, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}

	var all []Article
	for _, src := range sources {
		start := time.Now()
		articles, err := src.Fetch(ctx)
		if err != nil {
			log.Warn("failed to load source, skipping",
				zap.String("source", src.Name()),
				zap.Error(err))
			continue
		}
		log.Info("loaded source",
			zap.String("source", src.Name()),
			zap.Int("articles", len(articles)),
			zap.Duration("took", time.Since(start)))
		all = append(all, articles...)
	}

	c := New(all)
	log.Info("catalog ready", zap.Int("total", c.Len()))
	return c
}

// Normalize sorts articles newest first and assigns per-category IDs.
// Articles without a release date sort last; equal dates keep their
// relative order.
func Normalize(articles []Article) {
	slices.SortStableFunc(articles, compareRelease)

	counters := make(map[Category]int)
	for i := range articles {
		bucket := articles[i].Category
		if !bucket.Valid() {
			bucket = FallbackCategory
		}
		counters[bucket]++
		articles[i].ID = fmt.Sprintf("%s%03d", bucket, counters[bucket])
	}
}

// compareRelease orders by ReleaseDate descending with missing dates last.
func compareRelease(a, b Article) int {
	switch {
	case a.ReleaseDate == b.ReleaseDate:
		return 0
	case a.ReleaseDate == "":
		return 1
	case b.ReleaseDate == "":
		return -1
	}
	return strings.Compare(b.ReleaseDate, a.ReleaseDate)
}

// Articles returns the normalized list. Callers must not modify it.
func (c *Catalog) Articles() []Article {
	return c.articles
}

func (c *Catalog) Len() int {
	return len(c.articles)
}

// Lookup finds an article by its assigned ID.
func (c *Catalog) Lookup(id string) (Article, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Article{}, false
	}
	return c.articles[i], true
}

// Count returns the load-time total for a category key.
func (c *Catalog) Count(cat Category) int {
	return c.counts[cat]
}

// CategoryCounts returns a copy of the per-category totals for A..F.
func (c *Catalog) CategoryCounts() map[Category]int {
	out := make(map[Category]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
