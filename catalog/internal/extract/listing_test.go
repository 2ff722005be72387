package extract

import (
	"reflect"
	"testing"
)

func listingSelectors() Selectors {
	s := DefaultSelectors()
	s.ProductPathPrefix = "/christmas-plants/"
	return s
}

func TestListingExtractsProductURLs(t *testing.T) {
	html := `<html><body>
		<a href="/christmas-plants/poinsettia">Poinsettia</a>
		<a href="https://www.example.co.uk/christmas-plants/holly-wreath">Holly</a>
		<a href="/about-us">About</a>
		<a href="/christmas-plants/">Category itself</a>
	</body></html>`

	got := Listing(html, "https://www.example.co.uk/christmas-plants", listingSelectors())
	want := []string{
		"https://www.example.co.uk/christmas-plants/poinsettia",
		"https://www.example.co.uk/christmas-plants/holly-wreath",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Listing = %v, want %v", got, want)
	}
}

func TestListingDeduplicates(t *testing.T) {
	html := `<html><body>
		<a href="/christmas-plants/poinsettia"><img src="a.jpg"></a>
		<a href="/christmas-plants/poinsettia">Poinsettia</a>
		<a href="/christmas-plants/poinsettia#reviews">Reviews</a>
	</body></html>`

	got := Listing(html, "https://www.example.co.uk/", listingSelectors())
	if len(got) != 1 {
		t.Fatalf("got %d urls, want 1 (fragment variants and repeats collapse): %v", len(got), got)
	}
	if got[0] != "https://www.example.co.uk/christmas-plants/poinsettia" {
		t.Fatalf("url = %q", got[0])
	}
}

func TestListingStripsFragments(t *testing.T) {
	html := `<a href="/christmas-plants/rose#gallery">Rose</a>`
	got := Listing(html, "https://shop.example/", listingSelectors())
	if len(got) != 1 || got[0] != "https://shop.example/christmas-plants/rose" {
		t.Fatalf("got %v", got)
	}
}

func TestListingMissingMarkup(t *testing.T) {
	// Renamed or absent markup yields an empty set, not an error.
	for _, html := range []string{"", "<html><body><p>maintenance</p></body></html>", "<div><span>"} {
		if got := Listing(html, "https://shop.example/", listingSelectors()); len(got) != 0 {
			t.Errorf("Listing(%q) = %v, want empty", html, got)
		}
	}
}

func TestListingIgnoresForeignSchemes(t *testing.T) {
	html := `<body>
		<a href="mailto:help@example.com">Mail</a>
		<a href="javascript:void(0)">JS</a>
		<a href="/christmas-plants/ivy">Ivy</a>
	</body>`
	got := Listing(html, "https://shop.example/", listingSelectors())
	if len(got) != 1 {
		t.Fatalf("got %v, want only the product link", got)
	}
}

func TestListingNoPrefixKeepsSameHostOnly(t *testing.T) {
	sel := DefaultSelectors() // no path prefix
	html := `<body>
		<a href="/anything/here">Local</a>
		<a href="https://other.example/offsite">Offsite</a>
	</body>`
	got := Listing(html, "https://shop.example/", sel)
	if len(got) != 1 || got[0] != "https://shop.example/anything/here" {
		t.Fatalf("got %v", got)
	}
}
