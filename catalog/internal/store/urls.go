package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hazyhaar/vitrine/dbopen"
)

// RecordDiscoveredURL inserts a URL into the catalog. A duplicate is a
// silent no-op, not an error. Reports whether the row was newly inserted.
func (s *Store) RecordDiscoveredURL(ctx context.Context, url string) (bool, error) {
	res, err := dbopen.Exec(ctx, s.DB,
		`INSERT OR IGNORE INTO discovered_urls (url, status, discovered_at)
		VALUES (?, ?, ?)`, url, StatusPending, time.Now().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("store: record url: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: rows affected: %w", err)
	}
	return n > 0, nil
}

// BatchRecordDiscoveredURLs inserts a discovery batch inside one
// transaction. A failure rolls back the whole batch: the catalog is never
// left with a partial discovery commit. Returns how many URLs were new and
// how many were already known.
func (s *Store) BatchRecordDiscoveredURLs(ctx context.Context, urls []string) (inserted, skipped int, err error) {
	now := time.Now().UnixMilli()
	err = dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		inserted, skipped = 0, 0
		for _, u := range urls {
			res, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO discovered_urls (url, status, discovered_at)
				VALUES (?, ?, ?)`, u, StatusPending, now)
			if err != nil {
				return fmt.Errorf("store: batch insert %s: %w", u, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("store: batch rows affected: %w", err)
			}
			if n > 0 {
				inserted++
			} else {
				skipped++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return inserted, skipped, nil
}

// SelectPendingOrStale returns URLs awaiting a detail scrape: every
// pending URL, plus — when includeStale is set — processed URLs whose last
// check is older than the re-check window. Insertion order (id ASC).
// limit <= 0 returns all matches.
func (s *Store) SelectPendingOrStale(ctx context.Context, limit int, includeStale bool) ([]*DiscoveredURL, error) {
	staleCutoff := time.Now().Add(-RecheckWindow).UnixMilli()
	stale := 0
	if includeStale {
		stale = 1
	}

	q := `SELECT id, url, status, discovered_at, last_checked
		FROM discovered_urls
		WHERE status = ?
		   OR (? = 1 AND status = ? AND (last_checked IS NULL OR last_checked < ?))
		ORDER BY id ASC`
	args := []any{StatusPending, stale, StatusProcessed, staleCutoff}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: select pending: %w", err)
	}
	defer rows.Close()

	var urls []*DiscoveredURL
	for rows.Next() {
		u, err := scanURL(rows)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// GetURL retrieves one catalog row by id, or nil if absent.
func (s *Store) GetURL(ctx context.Context, id int64) (*DiscoveredURL, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, url, status, discovered_at, last_checked
		FROM discovered_urls WHERE id = ?`, id)

	var u DiscoveredURL
	var lastChecked sql.NullInt64
	err := row.Scan(&u.ID, &u.URL, &u.Status, &u.DiscoveredAt, &lastChecked)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get url: %w", err)
	}
	if lastChecked.Valid {
		u.LastChecked = &lastChecked.Int64
	}
	return &u, nil
}

// MarkChecked refreshes last_checked regardless of scrape outcome. Called
// before a fetch attempt, so a failing URL still leaves the stale window
// and is not hammered on every subsequent run.
func (s *Store) MarkChecked(ctx context.Context, id int64) error {
	_, err := dbopen.Exec(ctx, s.DB,
		`UPDATE discovered_urls SET last_checked = ? WHERE id = ?`,
		time.Now().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("store: mark checked: %w", err)
	}
	return nil
}

// MarkInactive retires a URL without deleting its history.
func (s *Store) MarkInactive(ctx context.Context, id int64) error {
	_, err := dbopen.Exec(ctx, s.DB,
		`UPDATE discovered_urls SET status = ? WHERE id = ?`, StatusInactive, id)
	if err != nil {
		return fmt.Errorf("store: mark inactive: %w", err)
	}
	return nil
}

func scanURL(rows *sql.Rows) (*DiscoveredURL, error) {
	var u DiscoveredURL
	var lastChecked sql.NullInt64
	if err := rows.Scan(&u.ID, &u.URL, &u.Status, &u.DiscoveredAt, &lastChecked); err != nil {
		return nil, fmt.Errorf("store: scan url: %w", err)
	}
	if lastChecked.Valid {
		u.LastChecked = &lastChecked.Int64
	}
	return &u, nil
}
