// Package record defines the product detail record shared between the
// extraction pipeline and the reconciliation store, plus its content
// fingerprint.
package record

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ProductDetails is one product's extracted state. Partial records are
// valid: extraction produces empty strings and nil pointers for fields the
// page does not expose.
type ProductDetails struct {
	VendorCode   string   `json:"vendor_code"`
	SKU          string   `json:"sku"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PriceRetail  *float64 `json:"price_retail"`
	PriceMedium  *float64 `json:"price_medium"`
	PriceLarge   *float64 `json:"price_large"`
	ImageURL     string   `json:"image_url"`
	Rating       *float64 `json:"rating"`
	Availability string   `json:"availability"`
	DeliveryInfo string   `json:"delivery_info"`

	// RawPayload is the structured-data block (JSON-LD Product object) as
	// found on the page, preserved for forward compatibility. Not part of
	// the fingerprint.
	RawPayload string `json:"raw_payload,omitempty"`
}

// fingerprintFields is the canonical serialization shape. Only semantic
// fields appear here: no timestamps, row ids, or raw payload. Field order
// is fixed by the struct, so key ordering in any source payload cannot
// influence the digest.
type fingerprintFields struct {
	VendorCode   string   `json:"vendor_code"`
	SKU          string   `json:"sku"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PriceRetail  *float64 `json:"price_retail"`
	PriceMedium  *float64 `json:"price_medium"`
	PriceLarge   *float64 `json:"price_large"`
	ImageURL     string   `json:"image_url"`
	Rating       *float64 `json:"rating"`
	Availability string   `json:"availability"`
	DeliveryInfo string   `json:"delivery_info"`
}

// Fingerprint returns the SHA-256 hex digest of the record's semantic
// fields. Two records with the same logical content always produce the
// same value; re-scraping an unchanged page is detected as a no-op by
// comparing fingerprints.
func (d *ProductDetails) Fingerprint() string {
	canonical := fingerprintFields{
		VendorCode:   d.VendorCode,
		SKU:          d.SKU,
		Name:         d.Name,
		Description:  d.Description,
		PriceRetail:  d.PriceRetail,
		PriceMedium:  d.PriceMedium,
		PriceLarge:   d.PriceLarge,
		ImageURL:     d.ImageURL,
		Rating:       d.Rating,
		Availability: d.Availability,
		DeliveryInfo: d.DeliveryInfo,
	}
	// Marshal of a fixed struct cannot fail.
	data, _ := json.Marshal(canonical)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
