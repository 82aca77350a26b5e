package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/config"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/source"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Load the catalog from the configured sources and print the article
count per category. SQLite sources also report their row count and size.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		sources, err := source.FromConfig(cfg)
		if err != nil {
			return fmt.Errorf("building sources: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		c := catalogLoader(cfg, sources, log)(ctx)
		out := cmd.OutOrStdout()
		printStats(out, cfg, c)

		for _, s := range cfg.EnabledSources() {
			if s.Type == config.SourceSQLite {
				printStoreStats(ctx, out, s)
			}
		}
		return nil
	},
}

func printStats(w io.Writer, cfg *config.Config, c *catalog.Catalog) {
	fmt.Fprintf(w, "Articles: %d\n", c.Len())

	known := 0
	for _, cat := range catalog.Categories() {
		n := c.Count(cat)
		known += n
		name := string(cat)
		if m, ok := cfg.Category(cat); ok && m.Name != "" {
			name = m.Name
		}
		fmt.Fprintf(w, "  %s  %-28s %d\n", cat, name, n)
	}
	if other := c.Len() - known; other > 0 {
		fmt.Fprintf(w, "  %s  %-28s %d\n", catalog.FallbackCategory, "uncategorized", other)
	}
}

func printStoreStats(ctx context.Context, w io.Writer, s config.Source) {
	db, err := store.Open(s.Path)
	if err != nil {
		fmt.Fprintf(w, "Database %s: %v\n", s.Path, err)
		return
	}
	defer db.Close()

	count, size, err := db.Stats(ctx, s.Path)
	if err != nil {
		fmt.Fprintf(w, "Database %s: reading stats: %v\n", s.Path, err)
		return
	}

	fmt.Fprintf(w, "Database: %s\n", s.Path)
	fmt.Fprintf(w, "  Rows: %d\n", count)
	fmt.Fprintf(w, "  Size: %s\n", formatBytes(size))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
