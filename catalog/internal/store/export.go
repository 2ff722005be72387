package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// exportHeader is the fixed CSV column set: the denormalized join of a
// catalog row with its (possibly absent) details.
var exportHeader = []string{
	"id", "url", "status", "discovered_at", "last_checked",
	"vendor_code", "sku", "name", "description",
	"price_retail", "price_medium", "price_large",
	"image_url", "rating", "availability", "delivery_info",
	"detail_updated_at",
}

// ExportCSV writes the full catalog as delimited rows: discovered_urls
// left-joined with product_details, ordered by id, one row per URL whether
// or not details exist yet. Returns the number of data rows written.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT u.id, u.url, u.status, u.discovered_at, u.last_checked,
		       d.vendor_code, d.sku, d.name, d.description,
		       d.price_retail, d.price_medium, d.price_large,
		       d.image_url, d.rating, d.availability, d.delivery_info,
		       d.updated_at
		FROM discovered_urls u
		LEFT JOIN product_details d ON d.url_id = u.id
		ORDER BY u.id ASC`)
	if err != nil {
		return 0, fmt.Errorf("store: export query: %w", err)
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("store: export header: %w", err)
	}

	count := 0
	for rows.Next() {
		var (
			id                               int64
			url, status                      string
			discoveredAt                     int64
			lastChecked, updatedAt           sql.NullInt64
			vendorCode, sku, name, desc      sql.NullString
			retail, medium, large, rating    sql.NullFloat64
			imageURL, availability, delivery sql.NullString
		)
		if err := rows.Scan(&id, &url, &status, &discoveredAt, &lastChecked,
			&vendorCode, &sku, &name, &desc,
			&retail, &medium, &large,
			&imageURL, &rating, &availability, &delivery,
			&updatedAt); err != nil {
			return count, fmt.Errorf("store: export scan: %w", err)
		}

		rec := []string{
			strconv.FormatInt(id, 10), url, status,
			csvTime(discoveredAt), csvNullTime(lastChecked),
			vendorCode.String, sku.String, name.String, desc.String,
			csvFloat(retail), csvFloat(medium), csvFloat(large),
			imageURL.String, csvFloat(rating), availability.String, delivery.String,
			csvNullTime(updatedAt),
		}
		if err := cw.Write(rec); err != nil {
			return count, fmt.Errorf("store: export row: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}

	cw.Flush()
	return count, cw.Error()
}

func csvTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func csvNullTime(v sql.NullInt64) string {
	if !v.Valid {
		return ""
	}
	return csvTime(v.Int64)
}

func csvFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', 2, 64)
}
