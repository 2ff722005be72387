package store

import (
	"context"
	"fmt"
	"time"
)

// Stats aggregates the catalog state for operational visibility. Read-only;
// reflects whatever has been committed so far.
func (s *Store) Stats(ctx context.Context) (*CatalogStats, error) {
	stats := &CatalogStats{ErrorsByKind: make(map[string]int)}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM discovered_urls`, &stats.TotalURLs},
		{`SELECT COUNT(*) FROM discovered_urls WHERE status = 'pending'`, &stats.Pending},
		{`SELECT COUNT(*) FROM discovered_urls WHERE status = 'processed'`, &stats.Processed},
		{`SELECT COUNT(*) FROM discovered_urls WHERE status = 'inactive'`, &stats.Inactive},
		{`SELECT COUNT(*) FROM product_details`, &stats.TotalDetails},
		{`SELECT COUNT(*) FROM scrape_errors`, &stats.TotalErrors},
	}
	for _, c := range counts {
		if err := s.DB.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("store: stats: %w", err)
		}
	}

	cutoff := time.Now().Add(-24 * time.Hour).UnixMilli()
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM discovered_urls WHERE last_checked >= ?`, cutoff,
	).Scan(&stats.CheckedLast24h); err != nil {
		return nil, fmt.Errorf("store: stats activity: %w", err)
	}
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM product_details WHERE updated_at >= ?`, cutoff,
	).Scan(&stats.UpdatedLast24h); err != nil {
		return nil, fmt.Errorf("store: stats activity: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT error_kind, COUNT(*) FROM scrape_errors GROUP BY error_kind`)
	if err != nil {
		return nil, fmt.Errorf("store: stats errors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("store: scan error breakdown: %w", err)
		}
		stats.ErrorsByKind[kind] = count
	}
	return stats, rows.Err()
}
