package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/config"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/markup"
	"github.com/mmcdole/gofeed"
)

const (
	dateLayout    = "2006-01-02"
	summaryLength = 300
)

// FeedSource turns an RSS or Atom feed into catalog articles, all filed
// under the category configured for the feed.
type FeedSource struct {
	cfg    config.Source
	parser *gofeed.Parser
	now    func() time.Time
}

func NewFeedSource(cfg config.Source, client *http.Client) *FeedSource {
	p := gofeed.NewParser()
	if client != nil {
		p.Client = client
	}
	return &FeedSource{cfg: cfg, parser: p, now: time.Now}
}

func (f *FeedSource) Name() string { return f.cfg.Name }

func (f *FeedSource) Fetch(ctx context.Context) ([]catalog.Article, error) {
	feed, err := f.parser.ParseURLWithContext(f.cfg.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", f.cfg.Name, err)
	}
	return f.articles(feed), nil
}

func (f *FeedSource) articles(feed *gofeed.Feed) []catalog.Article {
	verified := f.now().Format(dateLayout)

	articles := make([]catalog.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		var released string
		if item.PublishedParsed != nil {
			released = item.PublishedParsed.Format(dateLayout)
		} else if item.UpdatedParsed != nil {
			released = item.UpdatedParsed.Format(dateLayout)
		}

		body := item.Content
		if body == "" {
			body = item.Description
		}

		articles = append(articles, catalog.Article{
			Category:        catalog.Category(f.cfg.Category),
			Subcategory:     f.cfg.Subcategory,
			SubcategoryName: feedName(feed, f.cfg.Name),
			Title:           item.Title,
			Summary:         markup.Truncate(markup.OneLine(item.Description), summaryLength),
			Body:            body,
			Tags:            f.tags(item),
			Links:           itemLinks(item),
			ReleaseDate:     released,
			LastVerified:    verified,
		})
	}
	return articles
}

func (f *FeedSource) tags(item *gofeed.Item) []catalog.Tag {
	var tags []catalog.Tag
	if f.cfg.Org != "" {
		tags = append(tags, catalog.Tag{Type: catalog.TagOrg, Value: f.cfg.Org})
	}
	for _, c := range item.Categories {
		c = strings.TrimSpace(c)
		if c != "" {
			tags = append(tags, catalog.Tag{Type: catalog.TagTopic, Value: c})
		}
	}
	return tags
}

func feedName(feed *gofeed.Feed, fallback string) string {
	if feed.Title != "" {
		return feed.Title
	}
	return fallback
}

func itemLinks(item *gofeed.Item) []string {
	seen := make(map[string]bool)
	var links []string
	for _, l := range append([]string{item.Link}, item.Links...) {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		links = append(links, l)
	}
	return links
}
