// Package store provides the SQLite persistence and reconciliation layer:
// the catalog of discovered URLs, the current details per URL, and the
// append-only error ledger.
package store

import (
	"database/sql"
	"time"

	"github.com/hazyhaar/vitrine/dbopen"
)

// RecheckWindow is the age after which a processed URL becomes stale and
// eligible for re-scraping.
const RecheckWindow = 24 * time.Hour

// Store is the catalog database handle.
type Store struct {
	DB *sql.DB
}

// NewStore wraps an open database. The schema must already be applied
// (Open does both).
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Open opens (or creates) the catalog database at path, applies the
// vitrine pragmas and the schema.
func Open(path string, opts ...dbopen.Option) (*Store, error) {
	allOpts := append([]dbopen.Option{
		dbopen.WithMkdirAll(),
		dbopen.WithSchema(Schema),
	}, opts...)

	db, err := dbopen.Open(path, allOpts...)
	if err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}
