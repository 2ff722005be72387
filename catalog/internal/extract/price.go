package extract

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

var priceTokenRe = regexp.MustCompile(`[£$€]?\s*(\d+(?:\.\d{1,2})?)`)

// parsePriceToken pulls the first numeric amount out of a price string
// ("£29.99", "+ £2.50"). Returns nil if no amount is present.
func parsePriceToken(text string) *float64 {
	m := priceTokenRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &f
}

// prices extracts the retail price and derives the medium/large tiers from
// size-upgrade deltas. The deltas are surcharges, never absolute prices:
// tier[i] = retail + delta[i]. Without a parsed retail price every tier is
// nil — a bare delta must never leak out as a price.
func prices(doc *goquery.Document, sel Selectors) (retail, medium, large *float64) {
	retailText := doc.Find(sel.PriceRetail).First().Text()
	retail = parsePriceToken(retailText)

	doc.Find(sel.SizeDelta).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i > 1 {
			return false // only medium and large upgrades exist
		}
		if retail == nil {
			return false
		}
		delta := parsePriceToken(s.Text())
		if delta == nil {
			return true
		}
		v := *retail + *delta
		if i == 0 {
			medium = &v
		} else {
			large = &v
		}
		return true
	})

	return retail, medium, large
}
