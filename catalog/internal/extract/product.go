package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hazyhaar/vitrine/catalog/record"
)

var (
	skuTextRe      = regexp.MustCompile(`(?i)(?:SKU|Product Code)[:\s]*([A-Z0-9\-]+)`)
	deliveryTextRe = regexp.MustCompile(`(?i)(?:Delivery|Shipping)[:\s]*([^\n]+)`)
)

// Product parses a single product page into a partial details record.
// Each field is extracted independently; a field the page does not expose
// is left empty. Only HTML that cannot be parsed at all returns an error.
func Product(htmlContent string, sel Selectors) (*record.ProductDetails, error) {
	doc, err := parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("extract: parse product page: %w", err)
	}

	ld, rawPayload := structuredProduct(doc)
	retail, medium, large := prices(doc, sel)

	d := &record.ProductDetails{
		VendorCode:   vendorCode(doc, sel),
		SKU:          sku(doc, ld),
		Name:         name(doc, ld, sel),
		Description:  description(doc),
		PriceRetail:  retail,
		PriceMedium:  medium,
		PriceLarge:   large,
		ImageURL:     ldImage(ld),
		Rating:       ldRating(ld),
		Availability: ldAvailability(ld),
		DeliveryInfo: deliveryInfo(doc, sel),
		RawPayload:   rawPayload,
	}
	return d, nil
}

// name resolves the product name: structured data, then the heading, then
// the page title.
func name(doc *goquery.Document, ld map[string]any, sel Selectors) string {
	if n := ldString(ld, "name"); n != "" {
		return n
	}
	if h := strings.TrimSpace(doc.Find(sel.Name).First().Text()); h != "" {
		return h
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// sku resolves the SKU: structured data, then a labeled-code text search.
func sku(doc *goquery.Document, ld map[string]any) string {
	if s := ldString(ld, "sku"); s != "" {
		return s
	}
	if m := skuTextRe.FindStringSubmatch(doc.Text()); m != nil {
		return m[1]
	}
	return ""
}

// description prefers the og:description meta tag over the plain
// description meta tag.
func description(doc *goquery.Document) string {
	if c, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok && c != "" {
		return c
	}
	c, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return c
}

// vendorCode reads the storefront's internal product id from its hidden
// form input.
func vendorCode(doc *goquery.Document, sel Selectors) string {
	v, _ := doc.Find(sel.VendorCode).First().Attr("value")
	return v
}

// deliveryInfo tries the known container selectors in order, then falls
// back to a labeled-text search over the whole page.
func deliveryInfo(doc *goquery.Document, sel Selectors) string {
	for _, s := range sel.Delivery {
		if text := strings.TrimSpace(doc.Find(s).First().Text()); text != "" {
			return text
		}
	}
	if m := deliveryTextRe.FindStringSubmatch(doc.Text()); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
