// Package source provides the catalog backends the loader reads from.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/config"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/store"
)

var ErrUnsupported = errors.New("unsupported source type")

// FromConfig builds one catalog.Source per enabled config entry, in order.
func FromConfig(cfg *config.Config) ([]catalog.Source, error) {
	client := &http.Client{Timeout: cfg.FetchTimeoutDuration()}

	var out []catalog.Source
	for _, s := range cfg.EnabledSources() {
		src, err := New(s, client)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

// New builds the source for a single config entry.
func New(s config.Source, client *http.Client) (catalog.Source, error) {
	switch s.Type {
	case config.SourceJSON:
		if s.URL != "" {
			return NewJSONURL(s.Name, s.URL, client), nil
		}
		return NewJSONFile(s.Name, s.Path), nil
	case config.SourceSQLite:
		return &SQLiteSource{name: s.Name, path: s.Path}, nil
	case config.SourceFeed:
		return NewFeedSource(s, client), nil
	default:
		return nil, fmt.Errorf("source %q: %w: %q", s.Name, ErrUnsupported, s.Type)
	}
}

// SQLiteSource reads a catalog exported to a SQLite database.
type SQLiteSource struct {
	name string
	path string
}

func (s *SQLiteSource) Name() string { return s.name }

func (s *SQLiteSource) Fetch(ctx context.Context) ([]catalog.Article, error) {
	db, err := store.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Articles(ctx)
}
