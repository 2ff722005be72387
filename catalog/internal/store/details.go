package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hazyhaar/vitrine/catalog/record"
	"github.com/hazyhaar/vitrine/dbopen"
)

// UpsertDetails reconciles a freshly extracted record against the stored
// state of a URL. Three outcomes:
//
//	(true,  true)  — no record existed; inserted, URL marked processed
//	(false, false) — fingerprint identical; only updated_at refreshed
//	(false, true)  — fingerprint differs; all fields overwritten
//
// updated_at is refreshed on every successful call so "when did we last
// successfully scrape this" is always answerable, change or not.
func (s *Store) UpsertDetails(ctx context.Context, urlID int64, d *record.ProductDetails) (inserted, changed bool, err error) {
	fp := d.Fingerprint()
	now := time.Now().UnixMilli()

	err = dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		var existingFP string
		row := tx.QueryRowContext(ctx,
			`SELECT fingerprint FROM product_details WHERE url_id = ?`, urlID)
		scanErr := row.Scan(&existingFP)

		switch {
		case scanErr == sql.ErrNoRows:
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO product_details (url_id, vendor_code, sku, name, description,
				price_retail, price_medium, price_large, image_url, rating, availability,
				delivery_info, fingerprint, raw_payload, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				urlID, d.VendorCode, d.SKU, d.Name, d.Description,
				d.PriceRetail, d.PriceMedium, d.PriceLarge, d.ImageURL, d.Rating,
				d.Availability, d.DeliveryInfo, fp, rawOrEmpty(d.RawPayload), now, now,
			); err != nil {
				return fmt.Errorf("store: insert details: %w", err)
			}
			inserted, changed = true, true

		case scanErr != nil:
			return fmt.Errorf("store: read fingerprint: %w", scanErr)

		case existingFP == fp:
			if _, err := tx.ExecContext(ctx,
				`UPDATE product_details SET updated_at = ? WHERE url_id = ?`, now, urlID); err != nil {
				return fmt.Errorf("store: touch details: %w", err)
			}
			inserted, changed = false, false

		default:
			if _, err := tx.ExecContext(ctx,
				`UPDATE product_details SET vendor_code=?, sku=?, name=?, description=?,
				price_retail=?, price_medium=?, price_large=?, image_url=?, rating=?,
				availability=?, delivery_info=?, fingerprint=?, raw_payload=?, updated_at=?
				WHERE url_id=?`,
				d.VendorCode, d.SKU, d.Name, d.Description,
				d.PriceRetail, d.PriceMedium, d.PriceLarge, d.ImageURL, d.Rating,
				d.Availability, d.DeliveryInfo, fp, rawOrEmpty(d.RawPayload), now, urlID,
			); err != nil {
				return fmt.Errorf("store: update details: %w", err)
			}
			inserted, changed = false, true
		}

		// Any successful save transitions the URL out of pending.
		if _, err := tx.ExecContext(ctx,
			`UPDATE discovered_urls SET status = ?, last_checked = ? WHERE id = ?`,
			StatusProcessed, now, urlID); err != nil {
			return fmt.Errorf("store: mark processed: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, false, err
	}
	return inserted, changed, nil
}

// GetDetails retrieves the stored details for a URL, or nil if none exist.
func (s *Store) GetDetails(ctx context.Context, urlID int64) (*StoredDetails, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, url_id, vendor_code, sku, name, description,
		price_retail, price_medium, price_large, image_url, rating, availability,
		delivery_info, fingerprint, raw_payload, created_at, updated_at
		FROM product_details WHERE url_id = ?`, urlID)

	var sd StoredDetails
	var retail, medium, large, rating sql.NullFloat64
	err := row.Scan(&sd.ID, &sd.URLID, &sd.VendorCode, &sd.SKU, &sd.Name, &sd.Description,
		&retail, &medium, &large, &sd.ImageURL, &rating, &sd.Availability,
		&sd.DeliveryInfo, &sd.Fingerprint, &sd.RawPayload, &sd.CreatedAt, &sd.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get details: %w", err)
	}
	sd.PriceRetail = nullFloat(retail)
	sd.PriceMedium = nullFloat(medium)
	sd.PriceLarge = nullFloat(large)
	sd.Rating = nullFloat(rating)
	return &sd, nil
}

// CountDetails returns the number of detail records.
func (s *Store) CountDetails(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM product_details`).Scan(&count)
	return count, err
}

func rawOrEmpty(raw string) string {
	if raw == "" {
		return "{}"
	}
	return raw
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
