package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hazyhaar/vitrine/catalog/internal/extract"
)

// RunSummary reports what a crawl run did.
type RunSummary struct {
	RunID string

	// Stage 1: listing discovery.
	DiscoveredNew     int
	DiscoveredSkipped int

	// Stage 2: product page processing.
	Total     int
	Succeeded int
	Failed    int

	// Reconciliation outcomes among the successes.
	New       int
	Updated   int
	Unchanged int
}

// Run executes one full crawl: discover product URLs from the listing
// page, then fetch and reconcile each pending (and optionally stale)
// product page. Individual page failures are logged to the error ledger
// and do not stop the run; a listing failure aborts it.
func (svc *Service) Run(ctx context.Context) (*RunSummary, error) {
	if svc.config.ListingURL == "" {
		return nil, ErrNoListingURL
	}

	sum := &RunSummary{RunID: svc.newID()}
	log := svc.logger.With("run_id", sum.RunID)

	start := time.Now()
	log.Info("run started", "listing_url", svc.config.ListingURL)

	if err := svc.discover(ctx, log, sum); err != nil {
		return nil, err
	}

	if err := svc.processPending(ctx, log, sum); err != nil {
		return sum, err
	}

	log.Info("run finished",
		"duration", time.Since(start).Round(time.Millisecond),
		"total", sum.Total,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
		"new", sum.New,
		"updated", sum.Updated,
		"unchanged", sum.Unchanged)

	if svc.config.ExportPath != "" {
		if err := svc.exportToFile(ctx, log); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// exportToFile writes the catalog CSV to the configured export path.
func (svc *Service) exportToFile(ctx context.Context, log *slog.Logger) error {
	f, err := os.Create(svc.config.ExportPath)
	if err != nil {
		return fmt.Errorf("catalog: create export file: %w", err)
	}

	n, err := svc.store.ExportCSV(ctx, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("catalog: export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("catalog: close export file: %w", err)
	}

	log.Info("catalog exported", "path", svc.config.ExportPath, "rows", n)
	return nil
}

// discover fetches the listing page and records every product URL.
// Fails fast: without a URL inventory there is nothing to process.
func (svc *Service) discover(ctx context.Context, log *slog.Logger, sum *RunSummary) error {
	var html string
	attempts, err := withRetry(ctx, svc.config.MaxAttempts, svc.retryBase, func() error {
		var ferr error
		html, ferr = svc.fetcher.Fetch(ctx, svc.config.ListingURL)
		return ferr
	})
	if err != nil {
		if ctx.Err() == nil {
			svc.logScrapeError(ctx, log, &ScrapeError{
				URL:        svc.config.ListingURL,
				Kind:       KindFetch,
				Message:    err.Error(),
				RetryCount: attempts,
				RunID:      sum.RunID,
			})
		}
		return fmt.Errorf("catalog: fetch listing %s: %w", svc.config.ListingURL, err)
	}

	links := extract.Listing(html, svc.config.ListingURL, svc.config.selectors())

	normalized := make([]string, 0, len(links))
	for _, link := range links {
		u, err := NormalizeProductURL(link)
		if err != nil {
			log.Debug("skipping unusable link", "url", link, "error", err)
			continue
		}
		normalized = append(normalized, u)
	}

	inserted, skipped, err := svc.store.BatchRecordDiscoveredURLs(ctx, normalized)
	if err != nil {
		return fmt.Errorf("catalog: record discovered urls: %w", err)
	}
	sum.DiscoveredNew = inserted
	sum.DiscoveredSkipped = skipped

	log.Info("discovery complete",
		"links", len(links), "new", inserted, "known", skipped)
	return nil
}

// processPending works through the pending (and stale, when re-checking
// is on) URLs one at a time, pacing fetches with a jittered delay.
func (svc *Service) processPending(ctx context.Context, log *slog.Logger, sum *RunSummary) error {
	batch, err := svc.store.SelectPendingOrStale(ctx, svc.config.DetailLimit, svc.config.Recheck)
	if err != nil {
		return fmt.Errorf("catalog: select batch: %w", err)
	}
	sum.Total = len(batch)
	if len(batch) == 0 {
		log.Info("nothing to process")
		return nil
	}

	sel := svc.config.selectors()
	for i, u := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := svc.processOne(ctx, log, sum, u, sel); err == nil {
			sum.Succeeded++
		} else {
			sum.Failed++
		}

		if i < len(batch)-1 {
			if err := svc.pace(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// processOne fetches, extracts, and reconciles a single product page.
// Failures are written to the ledger; the returned error only signals
// the outcome to the run counters.
func (svc *Service) processOne(ctx context.Context, log *slog.Logger, sum *RunSummary, u *DiscoveredURL, sel extract.Selectors) error {
	if err := svc.store.MarkChecked(ctx, u.ID); err != nil {
		return fmt.Errorf("catalog: mark checked: %w", err)
	}

	var html string
	attempts, err := withRetry(ctx, svc.config.MaxAttempts, svc.retryBase, func() error {
		var ferr error
		html, ferr = svc.fetcher.Fetch(ctx, u.URL)
		return ferr
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		log.Warn("page fetch failed", "url", u.URL, "attempts", attempts, "error", err)
		svc.logScrapeError(ctx, log, &ScrapeError{
			URLID:      &u.ID,
			URL:        u.URL,
			Kind:       KindMaxRetries,
			Message:    err.Error(),
			RetryCount: attempts,
			RunID:      sum.RunID,
		})
		return err
	}

	details, err := extract.Product(html, sel)
	if err != nil {
		log.Warn("extraction failed", "url", u.URL, "error", err)
		svc.logScrapeError(ctx, log, &ScrapeError{
			URLID:   &u.ID,
			URL:     u.URL,
			Kind:    KindExtraction,
			Message: err.Error(),
			RunID:   sum.RunID,
		})
		return err
	}

	inserted, changed, err := svc.store.UpsertDetails(ctx, u.ID, details)
	if err != nil {
		log.Error("persist failed", "url", u.URL, "error", err)
		svc.logScrapeError(ctx, log, &ScrapeError{
			URLID:   &u.ID,
			URL:     u.URL,
			Kind:    KindPersistence,
			Message: err.Error(),
			RunID:   sum.RunID,
		})
		return err
	}

	switch {
	case inserted:
		sum.New++
		log.Info("product recorded", "url", u.URL, "name", details.Name)
	case changed:
		sum.Updated++
		log.Info("product changed", "url", u.URL, "name", details.Name)
	default:
		sum.Unchanged++
		log.Debug("product unchanged", "url", u.URL)
	}
	return nil
}

// pace sleeps the configured rate limit plus random jitter, honoring
// context cancellation.
func (svc *Service) pace(ctx context.Context) error {
	delay := svc.config.RateLimit
	if svc.config.RateJitter > 0 {
		delay += time.Duration(rand.Int63n(int64(svc.config.RateJitter)))
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// logScrapeError appends to the ledger; a ledger write failure is
// logged but never escalates past the original error.
func (svc *Service) logScrapeError(ctx context.Context, log *slog.Logger, e *ScrapeError) {
	if err := svc.store.LogError(ctx, e); err != nil {
		log.Error("error ledger write failed", "url", e.URL, "error", err)
	}
}
