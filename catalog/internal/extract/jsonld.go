package extract

import (
	"encoding/json"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// structuredProduct scans the page's JSON-LD blocks and returns the first
// object tagged as a Product, plus its re-serialized JSON. Malformed blocks
// are skipped; no Product block yields (nil, "").
func structuredProduct(doc *goquery.Document) (map[string]any, string) {
	var product map[string]any

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true // skip malformed block, keep scanning
		}
		switch v := data.(type) {
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok && isProductType(m["@type"]) {
					product = m
					return false
				}
			}
		case map[string]any:
			if isProductType(v["@type"]) {
				product = v
				return false
			}
		}
		return true
	})

	if product == nil {
		return nil, ""
	}
	raw, err := json.Marshal(product)
	if err != nil {
		return product, ""
	}
	return product, string(raw)
}

// isProductType accepts "@type": "Product" as a string or inside a list.
func isProductType(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "Product"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Product" {
				return true
			}
		}
	}
	return false
}

// ldString reads a string field from a JSON-LD object. Nil maps and absent
// or non-string values yield "".
func ldString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// ldImage reads the image field, which may be a string or a list of
// strings; the first entry wins.
func ldImage(m map[string]any) string {
	if m == nil {
		return ""
	}
	switch v := m["image"].(type) {
	case string:
		return v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				return s
			}
		}
	}
	return ""
}

// ldRating reads aggregateRating.ratingValue, which sites publish either
// as a number or a string.
func ldRating(m map[string]any) *float64 {
	if m == nil {
		return nil
	}
	agg, ok := m["aggregateRating"].(map[string]any)
	if !ok {
		return nil
	}
	switch v := agg["ratingValue"].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

// ldAvailability reads offers.availability from a single offer or the
// first entry of an offer list.
func ldAvailability(m map[string]any) string {
	if m == nil {
		return ""
	}
	switch v := m["offers"].(type) {
	case map[string]any:
		return ldString(v, "availability")
	case []any:
		for _, item := range v {
			if offer, ok := item.(map[string]any); ok {
				return ldString(offer, "availability")
			}
		}
	}
	return ""
}
