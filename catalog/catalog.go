// Package catalog coordinates incremental scraping of an e-commerce
// product catalog: listing discovery, per-product detail fetching,
// and fingerprint-based reconciliation into a SQLite store.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hazyhaar/vitrine/catalog/internal/store"
	"github.com/hazyhaar/vitrine/catalog/record"
	"github.com/hazyhaar/vitrine/idgen"
)

// Re-exported store types so callers never import the internal package.
type (
	DiscoveredURL = store.DiscoveredURL
	StoredDetails = store.StoredDetails
	ScrapeError   = store.ScrapeError
	Stats         = store.CatalogStats

	ProductDetails = record.ProductDetails
)

// URL lifecycle states.
const (
	StatusPending   = store.StatusPending
	StatusProcessed = store.StatusProcessed
	StatusInactive  = store.StatusInactive
)

// PageFetcher renders a URL and returns the page HTML. The browser
// package provides the production implementation; tests use fakes.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Service is the catalog orchestrator.
type Service struct {
	store     *store.Store
	fetcher   PageFetcher
	config    *Config
	logger    *slog.Logger
	newID     idgen.Generator
	retryBase time.Duration
}

// Option configures a Service during creation.
type Option func(*Service)

// WithDB uses an existing database handle instead of opening
// cfg.DBPath. Intended for tests with in-memory databases.
func WithDB(db *sql.DB) Option {
	return func(svc *Service) { svc.store = store.NewStore(db) }
}

// WithIDGenerator overrides run-ID generation.
func WithIDGenerator(g idgen.Generator) Option {
	return func(svc *Service) { svc.newID = g }
}

// New creates a catalog Service. Unless WithDB is given, the store is
// opened at cfg.DBPath with the schema applied.
func New(fetcher PageFetcher, cfg *Config, logger *slog.Logger, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = defaultConfig()
	}
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	svc := &Service{
		fetcher:   fetcher,
		config:    cfg,
		logger:    logger,
		newID:     idgen.Prefixed("run_", idgen.Default),
		retryBase: time.Second,
	}
	for _, opt := range opts {
		opt(svc)
	}

	if svc.store == nil {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("catalog: open store: %w", err)
		}
		svc.store = st
	}
	return svc, nil
}

// Close releases the underlying database handle.
func (svc *Service) Close() error {
	return svc.store.Close()
}

// Stats returns catalog-wide counters and the error breakdown.
func (svc *Service) Stats(ctx context.Context) (*Stats, error) {
	return svc.store.Stats(ctx)
}

// RecentErrors returns the newest ledger entries, most recent first.
func (svc *Service) RecentErrors(ctx context.Context, limit int) ([]*ScrapeError, error) {
	return svc.store.RecentErrors(ctx, limit)
}

// Details returns the stored record for a discovered URL.
func (svc *Service) Details(ctx context.Context, urlID int64) (*StoredDetails, error) {
	return svc.store.GetDetails(ctx, urlID)
}

// ExportCSV writes the full catalog as CSV and returns the row count.
// Every discovered URL exports, with empty detail columns when no
// product record exists yet.
func (svc *Service) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	return svc.store.ExportCSV(ctx, w)
}
