package store

import "github.com/hazyhaar/vitrine/catalog/record"

// URL lifecycle statuses. There is no "failed" status: failures live in
// the error ledger and the URL stays eligible for the next run.
const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusInactive  = "inactive"
)

// DiscoveredURL is one catalog row.
type DiscoveredURL struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	Status       string `json:"status"`
	DiscoveredAt int64  `json:"discovered_at"`
	LastChecked  *int64 `json:"last_checked,omitempty"`
}

// StoredDetails is a product_details row: the record plus its storage
// identity and timestamps.
type StoredDetails struct {
	ID          int64  `json:"id"`
	URLID       int64  `json:"url_id"`
	Fingerprint string `json:"fingerprint"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
	record.ProductDetails
}

// ScrapeError is one error-ledger entry.
type ScrapeError struct {
	ID         int64  `json:"id"`
	URLID      *int64 `json:"url_id,omitempty"`
	URL        string `json:"url"`
	Kind       string `json:"error_kind"`
	Message    string `json:"message"`
	RetryCount int    `json:"retry_count"`
	RunID      string `json:"run_id,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}

// CatalogStats holds the read-side aggregation over the store.
type CatalogStats struct {
	TotalURLs      int            `json:"total_urls"`
	Pending        int            `json:"pending"`
	Processed      int            `json:"processed"`
	Inactive       int            `json:"inactive"`
	TotalDetails   int            `json:"total_details"`
	TotalErrors    int            `json:"total_errors"`
	CheckedLast24h int            `json:"checked_last_24h"`
	UpdatedLast24h int            `json:"updated_last_24h"`
	ErrorsByKind   map[string]int `json:"errors_by_kind,omitempty"`
}
