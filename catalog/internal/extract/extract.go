// Package extract implements the pure extraction pipeline: raw page HTML
// in, structured values out. No I/O happens here.
//
// Two entry points:
//   - Listing: category page → deduplicated absolute product URLs
//   - Product: product page → partial record.ProductDetails
//
// Every sub-step tolerates missing or renamed markup by producing empty
// values. Absence of data is not an error at this layer; only HTML that
// cannot be parsed at all is.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors carries the site-specific CSS selectors. They are the brittle,
// swappable part of the pipeline; everything else is site-agnostic.
type Selectors struct {
	// ProductPathPrefix filters listing links: only hrefs whose path starts
	// with this prefix are product URLs. Empty keeps every same-site link.
	ProductPathPrefix string

	Name        string   // product name heading
	PriceRetail string   // retail price element
	SizeDelta   string   // size-upgrade delta elements, document order
	VendorCode  string   // hidden input carrying the vendor's product id
	Delivery    []string // delivery info containers, tried in order
}

// DefaultSelectors returns the selector set for the currently targeted
// storefront.
func DefaultSelectors() Selectors {
	return Selectors{
		Name:        "h1.products-name",
		PriceRetail: "span.price-retail",
		SizeDelta:   "span.size-cost",
		VendorCode:  "input#productid",
		Delivery:    []string{"div.delivery-info", ".shipping-info", ".delivery-details"},
	}
}

func parse(htmlContent string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
}
