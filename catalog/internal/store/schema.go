package store

// Schema is the complete catalog DDL. Timestamps are Unix milliseconds.
const Schema = `
-- Catalog of discovered product URLs. Append-only: rows are never deleted,
-- status encodes retirement.
CREATE TABLE IF NOT EXISTS discovered_urls (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    url           TEXT NOT NULL UNIQUE,
    status        TEXT NOT NULL DEFAULT 'pending',
    discovered_at INTEGER NOT NULL,
    last_checked  INTEGER
);
CREATE INDEX IF NOT EXISTS idx_urls_status ON discovered_urls(status, last_checked);

-- Current extracted state per URL (one-to-one with discovered_urls).
CREATE TABLE IF NOT EXISTS product_details (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    url_id        INTEGER NOT NULL UNIQUE REFERENCES discovered_urls(id),
    vendor_code   TEXT NOT NULL DEFAULT '',
    sku           TEXT NOT NULL DEFAULT '',
    name          TEXT NOT NULL DEFAULT '',
    description   TEXT NOT NULL DEFAULT '',
    price_retail  REAL,
    price_medium  REAL,
    price_large   REAL,
    image_url     TEXT NOT NULL DEFAULT '',
    rating        REAL,
    availability  TEXT NOT NULL DEFAULT '',
    delivery_info TEXT NOT NULL DEFAULT '',
    fingerprint   TEXT NOT NULL,
    raw_payload   TEXT NOT NULL DEFAULT '{}',
    created_at    INTEGER NOT NULL,
    updated_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_details_url ON product_details(url_id);

-- Append-only error ledger. Purely diagnostic; never mutated.
CREATE TABLE IF NOT EXISTS scrape_errors (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    url_id      INTEGER,
    url         TEXT NOT NULL,
    error_kind  TEXT NOT NULL,
    message     TEXT NOT NULL DEFAULT '',
    retry_count INTEGER NOT NULL DEFAULT 0,
    run_id      TEXT NOT NULL DEFAULT '',
    created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_errors_kind ON scrape_errors(error_kind);
CREATE INDEX IF NOT EXISTS idx_errors_time ON scrape_errors(created_at DESC);
`
