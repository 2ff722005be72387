package store

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/hazyhaar/vitrine/dbopen"
)

// truncate caps s at max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// maxErrorMessageLen bounds ledger growth: source error strings can embed
// whole page dumps.
const maxErrorMessageLen = 500

// LogError appends an entry to the error ledger. The message is truncated
// to 500 bytes, backing off to a rune boundary so multi-byte text stays
// valid UTF-8. Callers treat a returned error as advisory only —
// failure to log must never abort a run.
func (s *Store) LogError(ctx context.Context, e *ScrapeError) error {
	msg := truncate(e.Message, maxErrorMessageLen)
	createdAt := e.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().UnixMilli()
	}
	_, err := dbopen.Exec(ctx, s.DB,
		`INSERT INTO scrape_errors (url_id, url, error_kind, message, retry_count, run_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.URLID, e.URL, e.Kind, msg, e.RetryCount, e.RunID, createdAt)
	if err != nil {
		return fmt.Errorf("store: log error: %w", err)
	}
	return nil
}

// RecentErrors returns the newest ledger entries, most recent first.
func (s *Store) RecentErrors(ctx context.Context, limit int) ([]*ScrapeError, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, url_id, url, error_kind, message, retry_count, run_id, created_at
		FROM scrape_errors ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent errors: %w", err)
	}
	defer rows.Close()

	var entries []*ScrapeError
	for rows.Next() {
		var e ScrapeError
		if err := rows.Scan(&e.ID, &e.URLID, &e.URL, &e.Kind, &e.Message,
			&e.RetryCount, &e.RunID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan error entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
