package catalog

import (
	"errors"
	"testing"
)

func TestNormalizeProductURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase scheme and host", "HTTPS://Shop.Example/p/roses", "https://shop.example/p/roses"},
		{"fragment stripped", "https://shop.example/p/roses#reviews", "https://shop.example/p/roses"},
		{"trailing slash stripped", "https://shop.example/p/roses/", "https://shop.example/p/roses"},
		{"root path kept", "https://shop.example/", "https://shop.example/"},
		{"query params sorted", "https://shop.example/p?b=2&a=1", "https://shop.example/p?a=1&b=2"},
		{"path case preserved", "https://shop.example/p/Roses", "https://shop.example/p/Roses"},
		{"http not upgraded", "http://shop.example/p/roses", "http://shop.example/p/roses"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeProductURL(tc.in)
			if err != nil {
				t.Fatalf("NormalizeProductURL(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("NormalizeProductURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeProductURLRejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no scheme", "shop.example/p/roses"},
		{"ftp", "ftp://shop.example/p/roses"},
		{"mailto", "mailto:sales@shop.example"},
		{"missing host", "https:///p/roses"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeProductURL(tc.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("NormalizeProductURL(%q) err = %v, want ErrInvalidInput", tc.in, err)
			}
		})
	}
}

func TestNormalizeDedupsEquivalentURLs(t *testing.T) {
	// Two spellings of the same product must normalize identically, or
	// the catalog would carry duplicate rows.
	a, err := NormalizeProductURL("HTTPS://Shop.Example/p/roses/?b=2&a=1#top")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NormalizeProductURL("https://shop.example/p/roses?a=1&b=2")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("equivalent URLs normalized differently: %q vs %q", a, b)
	}
}
