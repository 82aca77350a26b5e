package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/config"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/source"
	"go.uber.org/zap"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.input); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPrintStats(t *testing.T) {
	cfg := &config.Config{Categories: []config.CategoryMeta{{Key: "A", Name: "Foundation models"}}}
	c := catalog.New([]catalog.Article{
		{Category: catalog.CategoryA, Title: "one"},
		{Category: catalog.CategoryA, Title: "two"},
		{Category: catalog.CategoryD, Title: "three"},
		{Category: "Z", Title: "stray"},
	})

	var buf bytes.Buffer
	printStats(&buf, cfg, c)
	out := buf.String()

	for _, want := range []string{"Articles: 4", "Foundation models", "uncategorized"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "  D  D") {
		t.Errorf("category without metadata should fall back to its key:\n%s", out)
	}
}

func TestCatalogLoaderReadsJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.json")
	data := `[{"category":"C","title":"Robot arm","releaseDate":"2024-01-01"},
	          {"category":"C","title":"Drone","releaseDate":"2024-03-01"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{FetchTimeout: "5s"}
	cfg.OverrideSource(path)
	sources, err := source.FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}

	c := catalogLoader(cfg, sources, zap.NewNop())(context.Background())
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if a, ok := c.Lookup("C001"); !ok || a.Title != "Drone" {
		t.Errorf("C001 = %+v, want the newest article", a)
	}
}

func TestSetupSourceOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	yaml := "log:\n  level: debug\n  file: " + filepath.Join(dir, "aidb.log") + "\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	oldConfig, oldSource := flagConfig, flagSource
	t.Cleanup(func() { flagConfig, flagSource = oldConfig, oldSource })
	flagConfig = cfgPath
	flagSource = ""
	t.Setenv("AIDB_SOURCE", filepath.Join(dir, "catalog.db"))

	cfg, log, err := setup()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer log.Sync()

	if len(cfg.Sources) != 1 || cfg.Sources[0].Type != config.SourceSQLite {
		t.Fatalf("Sources = %+v, want a single sqlite source", cfg.Sources)
	}
	if _, err := os.Stat(filepath.Join(dir, "aidb.log")); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := buf.String(); got != "aidb 1.2.3 (commit: abc, built: today)\n" {
		t.Errorf("version output = %q", got)
	}
}
