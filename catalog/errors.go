package catalog

import "errors"

// Error kinds recorded in the scrape_errors ledger. Stable strings:
// the stats breakdown and downstream dashboards group by them.
const (
	KindFetch       = "FetchError"
	KindMaxRetries  = "MaxRetries"
	KindExtraction  = "ExtractionError"
	KindPersistence = "PersistenceError"
)

// ErrInvalidInput is returned when a URL or config value fails validation.
var ErrInvalidInput = errors.New("catalog: invalid input")

// ErrNoListingURL is returned by Run when no listing URL is configured.
var ErrNoListingURL = errors.New("catalog: listing URL not configured")
