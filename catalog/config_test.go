package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.DBPath == "" {
		t.Error("DBPath should default")
	}
	if cfg.RateLimit != 2*time.Second {
		t.Errorf("RateLimit = %v, want 2s", cfg.RateLimit)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vitrine.yaml")
	data := `
listing_url: https://shop.example/bouquets
db_path: /tmp/cat.db
detail_limit: 50
recheck: true
export_path: /tmp/cat.csv
rate_limit: 5s
selectors:
  name: "h2.title"
  product_path_prefix: "/bouquets/"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ListingURL != "https://shop.example/bouquets" {
		t.Errorf("ListingURL = %q", cfg.ListingURL)
	}
	if cfg.DetailLimit != 50 || !cfg.Recheck {
		t.Errorf("DetailLimit=%d Recheck=%v", cfg.DetailLimit, cfg.Recheck)
	}
	if cfg.ExportPath != "/tmp/cat.csv" {
		t.Errorf("ExportPath = %q", cfg.ExportPath)
	}
	if cfg.RateLimit != 5*time.Second {
		t.Errorf("RateLimit = %v, want 5s", cfg.RateLimit)
	}
	// Unset fields still get defaults.
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want default 3", cfg.MaxAttempts)
	}

	sel := cfg.selectors()
	if sel.Name != "h2.title" {
		t.Errorf("selector override lost: Name = %q", sel.Name)
	}
	if sel.ProductPathPrefix != "/bouquets/" {
		t.Errorf("ProductPathPrefix = %q", sel.ProductPathPrefix)
	}
	// Untouched selectors keep their defaults.
	if sel.PriceRetail == "" {
		t.Error("PriceRetail should keep its default")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/vitrine.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
