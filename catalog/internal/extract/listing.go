package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Listing parses a category-listing page and returns the product URLs it
// links to: absolute, fragment-stripped, deduplicated, in first-seen order.
// The category page itself is excluded. Unparseable HTML or absent markup
// yields an empty slice, never an error.
func Listing(htmlContent, baseURL string, sel Selectors) []string {
	doc, err := parse(htmlContent)
	if err != nil {
		return nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var urls []string

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		abs.Fragment = ""

		if sel.ProductPathPrefix != "" {
			if !strings.HasPrefix(abs.Path, sel.ProductPathPrefix) {
				return
			}
			// The category page links to itself; that is not a product.
			if strings.TrimRight(abs.Path, "/") == strings.TrimRight(sel.ProductPathPrefix, "/") {
				return
			}
		} else if abs.Host != base.Host {
			return
		}

		s := abs.String()
		if seen[s] {
			return
		}
		seen[s] = true
		urls = append(urls, s)
	})

	return urls
}
