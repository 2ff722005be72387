package catalog

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/vitrine/catalog/internal/extract"
)

// Config configures a catalog Service.
type Config struct {
	// ListingURL is the category page crawled during discovery.
	ListingURL string `yaml:"listing_url"`

	// DBPath is the SQLite database file. Parent directories are created.
	DBPath string `yaml:"db_path"`

	// DetailLimit caps how many product pages a single run processes.
	// Zero means no cap.
	DetailLimit int `yaml:"detail_limit"`

	// Recheck re-queues processed URLs whose last check is older than
	// the re-check window, so price changes are picked up.
	Recheck bool `yaml:"recheck"`

	// ExportPath, when set, writes the full catalog as CSV to this file
	// after every successful run.
	ExportPath string `yaml:"export_path"`

	// RateLimit is the pause between product page fetches. A random
	// jitter up to RateJitter is added on top.
	RateLimit  time.Duration `yaml:"rate_limit"`
	RateJitter time.Duration `yaml:"rate_jitter"`

	// MaxAttempts bounds fetch retries per product page.
	MaxAttempts int `yaml:"max_attempts"`

	// Selectors override the extraction defaults per site.
	Selectors SelectorConfig `yaml:"selectors"`
}

// SelectorConfig is the YAML shape of the extraction selectors.
type SelectorConfig struct {
	ProductPathPrefix string   `yaml:"product_path_prefix"`
	Name              string   `yaml:"name"`
	PriceRetail       string   `yaml:"price_retail"`
	SizeDelta         string   `yaml:"size_delta"`
	VendorCode        string   `yaml:"vendor_code"`
	Delivery          []string `yaml:"delivery"`
}

// LoadConfig reads a YAML config file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("catalog: parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.DBPath == "" {
		c.DBPath = "data/catalog.db"
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 2 * time.Second
	}
	if c.RateJitter <= 0 {
		c.RateJitter = time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
}

// selectors merges the config overrides onto the extraction defaults.
func (c *Config) selectors() extract.Selectors {
	sel := extract.DefaultSelectors()
	if c.Selectors.ProductPathPrefix != "" {
		sel.ProductPathPrefix = c.Selectors.ProductPathPrefix
	}
	if c.Selectors.Name != "" {
		sel.Name = c.Selectors.Name
	}
	if c.Selectors.PriceRetail != "" {
		sel.PriceRetail = c.Selectors.PriceRetail
	}
	if c.Selectors.SizeDelta != "" {
		sel.SizeDelta = c.Selectors.SizeDelta
	}
	if c.Selectors.VendorCode != "" {
		sel.VendorCode = c.Selectors.VendorCode
	}
	if len(c.Selectors.Delivery) > 0 {
		sel.Delivery = c.Selectors.Delivery
	}
	return sel
}
