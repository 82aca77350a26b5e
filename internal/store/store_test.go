package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
)

// seedDB writes rows through a separate read-write handle, the way an
// export job would produce the file.
func seedDB(t *testing.T, rows [][]any) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening seed db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO articles
			(category, subcategory, subcategory_name, title, summary, body, tags, links, release_date, last_verified)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, r...)
		if err != nil {
			t.Fatalf("inserting row: %v", err)
		}
	}
	return dbPath
}

func testStore(t *testing.T, rows [][]any) (*Store, string) {
	t.Helper()
	path := seedDB(t, rows)
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestArticlesInInsertionOrder(t *testing.T) {
	s, _ := testStore(t, [][]any{
		{"A", "A-1", "基盤モデル", "First", "s1", "b1", `[{"type":"Tech","value":"LLM"}]`, `["https://a.example"]`, "2024-01", "2024-02-01"},
		{"C", "C-2", "文書", "Second", "s2", "b2", `[]`, `[]`, "", ""},
	})

	got, err := s.Articles(context.Background())
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(got))
	}
	first := got[0]
	if first.Title != "First" || first.Category != catalog.CategoryA || first.SubcategoryName != "基盤モデル" {
		t.Errorf("unexpected first article: %+v", first)
	}
	if len(first.Tags) != 1 || first.Tags[0] != (catalog.Tag{Type: catalog.TagTech, Value: "LLM"}) {
		t.Errorf("unexpected tags: %+v", first.Tags)
	}
	if len(first.Links) != 1 || first.Links[0] != "https://a.example" {
		t.Errorf("unexpected links: %+v", first.Links)
	}
	if first.ID != "" {
		t.Errorf("store must not assign ids, got %q", first.ID)
	}
	if got[1].Title != "Second" || got[1].ReleaseDate != "" {
		t.Errorf("unexpected second article: %+v", got[1])
	}
}

func TestArticlesBadTagsJSON(t *testing.T) {
	s, _ := testStore(t, [][]any{
		{"A", "", "", "Broken", "", "", `{not json`, `[]`, "", ""},
	})
	if _, err := s.Articles(context.Background()); err == nil {
		t.Error("expected error for malformed tags column")
	}
}

func TestEmptyDB(t *testing.T) {
	s, _ := testStore(t, nil)
	got, err := s.Articles(context.Background())
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 articles in empty db, got %d", len(got))
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"))
	if err == nil {
		t.Error("expected error for missing database")
	}
}

func TestStats(t *testing.T) {
	s, path := testStore(t, [][]any{
		{"B", "", "", "One", "", "", `[]`, `[]`, "", ""},
		{"B", "", "", "Two", "", "", `[]`, `[]`, "", ""},
	})
	count, size, err := s.Stats(context.Background(), path)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if size == 0 {
		t.Error("expected non-zero db size")
	}
}
