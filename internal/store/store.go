// Package store reads a catalog from a SQLite database. The database is
// opened read-only; the viewer never writes to it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	_ "modernc.org/sqlite"
)

// Schema is the table layout the store expects. tags and links hold JSON
// arrays.
const Schema = `
	CREATE TABLE IF NOT EXISTS articles (
		category         TEXT NOT NULL DEFAULT '',
		subcategory      TEXT NOT NULL DEFAULT '',
		subcategory_name TEXT NOT NULL DEFAULT '',
		title            TEXT NOT NULL DEFAULT '',
		summary          TEXT NOT NULL DEFAULT '',
		body             TEXT NOT NULL DEFAULT '',
		tags             TEXT NOT NULL DEFAULT '[]',
		links            TEXT NOT NULL DEFAULT '[]',
		release_date     TEXT NOT NULL DEFAULT '',
		last_verified    TEXT NOT NULL DEFAULT ''
	);
`

type Store struct {
	readDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}

	readDB, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	if err := readDB.Ping(); err != nil {
		readDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	return &Store{readDB: readDB}, nil
}

func (s *Store) Close() error {
	if s.readDB != nil {
		return s.readDB.Close()
	}
	return nil
}

// Articles returns every row in insertion order.
func (s *Store) Articles(ctx context.Context) ([]catalog.Article, error) {
	rows, err := s.readDB.QueryContext(ctx, `
		SELECT category, subcategory, subcategory_name, title, summary, body,
		       tags, links, release_date, last_verified
		FROM articles
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []catalog.Article
	for rows.Next() {
		var (
			a           catalog.Article
			category    string
			tags, links string
		)
		if err := rows.Scan(&category, &a.Subcategory, &a.SubcategoryName, &a.Title, &a.Summary, &a.Body,
			&tags, &links, &a.ReleaseDate, &a.LastVerified); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		a.Category = catalog.Category(category)
		if err := decodeJSONColumn(tags, &a.Tags); err != nil {
			return nil, fmt.Errorf("article %q: tags: %w", a.Title, err)
		}
		if err := decodeJSONColumn(links, &a.Links); err != nil {
			return nil, fmt.Errorf("article %q: links: %w", a.Title, err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func decodeJSONColumn(raw string, v any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}

// Stats returns the row count and the database file size.
func (s *Store) Stats(ctx context.Context, dbPath string) (int, int64, error) {
	var count int
	if err := s.readDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return 0, 0, err
	}

	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, nil
	}
	return count, info.Size(), nil
}
