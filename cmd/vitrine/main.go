// Command vitrine crawls an e-commerce product catalog incrementally.
//
// Usage:
//
//	vitrine -config vitrine.yaml            # full run from YAML config
//	vitrine -url https://shop.example/cat   # quick run against one listing
//	vitrine -db catalog.db -stats           # print catalog stats and exit
//	vitrine -db catalog.db -export out.csv  # export the catalog and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/vitrine/browser"
	"github.com/hazyhaar/vitrine/catalog"
)

func main() {
	configPath := flag.String("config", "", "path to vitrine.yaml config file")
	listingURL := flag.String("url", "", "listing URL (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	limit := flag.Int("limit", 0, "max product pages per run (overrides config)")
	recheck := flag.Bool("recheck", false, "re-scrape processed URLs older than the re-check window")
	statsOnly := flag.Bool("stats", false, "print catalog stats and exit")
	exportPath := flag.String("export", "", "export the catalog as CSV to this file and exit")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *listingURL, *dbPath, *limit, *recheck, *statsOnly, *exportPath); err != nil {
		logger.Error("vitrine: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, listingURL, dbPath string, limit int, recheck, statsOnly bool, exportPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if listingURL != "" {
		cfg.ListingURL = listingURL
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if limit > 0 {
		cfg.DetailLimit = limit
	}
	if recheck {
		cfg.Recheck = true
	}

	// Stats and export read the store without touching a browser.
	if statsOnly || exportPath != "" {
		svc, err := catalog.New(nil, cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		if statsOnly {
			return printStats(ctx, svc)
		}
		return exportCSV(ctx, svc, exportPath)
	}

	if cfg.ListingURL == "" {
		fmt.Fprintln(os.Stderr, "usage: vitrine -config <file> | -url <listing-url> [-db <file>] [-limit n] [-recheck]")
		os.Exit(1)
	}

	mgr := browser.NewManager(browser.Config{Logger: logger})
	if err := mgr.Start(); err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer mgr.Close()

	fetcher := browser.NewFetcher(mgr)
	defer fetcher.Close()

	svc, err := catalog.New(fetcher, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	sum, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Printf("run %s: %d new / %d updated / %d unchanged, %d failed of %d\n",
		sum.RunID, sum.New, sum.Updated, sum.Unchanged, sum.Failed, sum.Total)
	return printStats(ctx, svc)
}

func loadConfig(path string) (*catalog.Config, error) {
	if path == "" {
		return &catalog.Config{}, nil
	}
	return catalog.LoadConfig(path)
}

func printStats(ctx context.Context, svc *catalog.Service) error {
	stats, err := svc.Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	fmt.Printf("urls: %d total, %d pending, %d processed, %d inactive\n",
		stats.TotalURLs, stats.Pending, stats.Processed, stats.Inactive)
	fmt.Printf("details: %d stored, %d checked and %d updated in last 24h\n",
		stats.TotalDetails, stats.CheckedLast24h, stats.UpdatedLast24h)
	fmt.Printf("errors: %d total\n", stats.TotalErrors)
	for kind, n := range stats.ErrorsByKind {
		fmt.Printf("  %s: %d\n", kind, n)
	}
	return nil
}

func exportCSV(ctx context.Context, svc *catalog.Service, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	n, err := svc.ExportCSV(ctx, f)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Printf("exported %d rows to %s\n", n, path)
	return nil
}
