package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/catalog"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/config"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/logging"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/source"
	"github.com/lowpixelmildorbit/ai-database-tsukuba/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	sources, err := source.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("building sources: %w", err)
	}

	log.Info("starting", zap.String("version", version), zap.Int("sources", len(sources)))

	return tui.Run(tui.RunOpts{
		Cfg:  cfg,
		Log:  log.Named("tui"),
		Load: catalogLoader(cfg, sources, log),
	})
}

// setup loads config, applies the single-source override and opens the
// log file.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	location := flagSource
	if location == "" {
		location = os.Getenv("AIDB_SOURCE")
	}
	if location != "" {
		cfg.OverrideSource(location)
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel(), Path: cfg.LogPath()})
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}
	return cfg, log, nil
}

// catalogLoader bounds each load by the configured fetch timeout.
func catalogLoader(cfg *config.Config, sources []catalog.Source, log *zap.Logger) func(context.Context) *catalog.Catalog {
	log = log.Named("catalog")
	return func(ctx context.Context) *catalog.Catalog {
		ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeoutDuration())
		defer cancel()
		return catalog.Load(ctx, sources, log)
	}
}
