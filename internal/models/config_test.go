package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestReadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := ReadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}
	if cfg.Catalog.Source != CatalogStatic {
		t.Fatalf("expected static catalog, got %q", cfg.Catalog.Source)
	}
	if cfg.Pricing.TaxRate != 0.08 || cfg.Pricing.DeliveryFee != 3.99 || cfg.Pricing.FreeDeliveryThreshold != 50 {
		t.Fatalf("unexpected pricing defaults %+v", cfg.Pricing)
	}
	if cfg.Cart.MaxQuantity != 99 {
		t.Fatalf("expected max quantity 99, got %d", cfg.Cart.MaxQuantity)
	}
	if cfg.Delays.Checkout != 1500*time.Millisecond || cfg.Delays.Login != 500*time.Millisecond || cfg.Delays.Register != 800*time.Millisecond {
		t.Fatalf("unexpected delays %+v", cfg.Delays)
	}
	if cfg.Activity.Format != "none" {
		t.Fatalf("expected activity off, got %q", cfg.Activity.Format)
	}
}

func TestReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodstore.yaml")
	content := `
storage_path: /tmp/state.db
pricing:
  tax_rate: 0.1
delays:
  checkout: 2s
activity:
  format: json
  output_path: out
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := ReadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if cfg.StoragePath != "/tmp/state.db" {
		t.Fatalf("expected storage path from file, got %q", cfg.StoragePath)
	}
	if cfg.Pricing.TaxRate != 0.1 || cfg.Pricing.DeliveryFee != 3.99 {
		t.Fatalf("expected file value layered on defaults, got %+v", cfg.Pricing)
	}
	if cfg.Delays.Checkout != 2*time.Second {
		t.Fatalf("expected 2s checkout delay, got %s", cfg.Delays.Checkout)
	}
	if cfg.Activity.Format != "json" || cfg.Activity.OutputPath != "out" {
		t.Fatalf("unexpected activity config %+v", cfg.Activity)
	}
}

func TestReadConfigEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FOODSTORE_CART_MAX_QUANTITY", "5")
	cfg, err := ReadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if cfg.Cart.MaxQuantity != 5 {
		t.Fatalf("expected env override 5, got %d", cfg.Cart.MaxQuantity)
	}
}

func TestReadConfigMissingExplicitFile(t *testing.T) {
	if _, err := ReadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative tax", func(c *Config) { c.Pricing.TaxRate = -0.1 }, "tax_rate"},
		{"negative fee", func(c *Config) { c.Pricing.DeliveryFee = -1 }, "delivery_fee"},
		{"zero max quantity", func(c *Config) { c.Cart.MaxQuantity = 0 }, "max_quantity"},
		{"zero delay", func(c *Config) { c.Delays.Login = 0 }, "delays.login"},
		{"unknown source", func(c *Config) { c.Catalog.Source = "mongo" }, "catalog source"},
		{"empty synthetic", func(c *Config) {
			c.Catalog.Source = CatalogSynthetic
			c.Catalog.SyntheticItems = 0
		}, "synthetic"},
		{"unknown logger", func(c *Config) { c.Logger.Mode = "verbose" }, "logger mode"},
		{"unknown activity", func(c *Config) { c.Activity.Format = "csv" }, "activity format"},
		{"json without path", func(c *Config) {
			c.Activity.Format = "json"
			c.Activity.OutputPath = ""
		}, "output_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			cfg, err := ReadConfig(viper.New(), "")
			if err != nil {
				t.Fatalf("defaults: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
