package models

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CatalogConfig struct {
	Source               string `mapstructure:"source"`
	SyntheticRestaurants int    `mapstructure:"synthetic_restaurants"`
	SyntheticItems       int    `mapstructure:"synthetic_items"` // per restaurant
	Seed                 int64  `mapstructure:"seed"`
	FeaturedCount        int    `mapstructure:"featured_count"`
}

type PricingConfig struct {
	TaxRate               float64 `mapstructure:"tax_rate"`
	DeliveryFee           float64 `mapstructure:"delivery_fee"`
	FreeDeliveryThreshold float64 `mapstructure:"free_delivery_threshold"`
}

type CartConfig struct {
	MaxQuantity int `mapstructure:"max_quantity"`
}

// DelayConfig holds the artificial latencies of the simulated form submits.
type DelayConfig struct {
	Checkout time.Duration `mapstructure:"checkout"`
	Login    time.Duration `mapstructure:"login"`
	Register time.Duration `mapstructure:"register"`
	Tick     time.Duration `mapstructure:"tick"`
}

type LoggerConfig struct {
	Mode       string `mapstructure:"mode"`
	FileEnable bool   `mapstructure:"file_enable"`
	Filename   string `mapstructure:"filename"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN renders the keyword/value connection string understood by pgx.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type ActivityConfig struct {
	Format          string             `mapstructure:"format"`
	OutputPath      string             `mapstructure:"output_path"`
	OutputFolder    string             `mapstructure:"output_folder"`
	KafkaBrokerList string             `mapstructure:"kafka_broker_list"`
	CloudStorage    CloudStorageConfig `mapstructure:"cloud_storage"`
}

type Config struct {
	StoragePath string         `mapstructure:"storage_path"`
	ListenAddr  string         `mapstructure:"listen_addr"`
	Catalog     CatalogConfig  `mapstructure:"catalog"`
	Pricing     PricingConfig  `mapstructure:"pricing"`
	Cart        CartConfig     `mapstructure:"cart"`
	Delays      DelayConfig    `mapstructure:"delays"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Database    DatabaseConfig `mapstructure:"database"`
	Activity    ActivityConfig `mapstructure:"activity"`
}

// SetDefaults registers every key with its default so that environment
// overrides are picked up by Unmarshal even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage_path", "foodstore.db")
	v.SetDefault("listen_addr", ":8080")

	v.SetDefault("catalog.source", CatalogStatic)
	v.SetDefault("catalog.synthetic_restaurants", 10)
	v.SetDefault("catalog.synthetic_items", 8)
	v.SetDefault("catalog.seed", 42)
	v.SetDefault("catalog.featured_count", 4)

	v.SetDefault("pricing.tax_rate", 0.08)
	v.SetDefault("pricing.delivery_fee", 3.99)
	v.SetDefault("pricing.free_delivery_threshold", 50.0)

	v.SetDefault("cart.max_quantity", 99)

	v.SetDefault("delays.checkout", 1500*time.Millisecond)
	v.SetDefault("delays.login", 500*time.Millisecond)
	v.SetDefault("delays.register", 800*time.Millisecond)
	v.SetDefault("delays.tick", 50*time.Millisecond)

	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.file_enable", false)
	v.SetDefault("logger.filename", "foodstore.log")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "foodstore")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("activity.format", "none")
	v.SetDefault("activity.output_path", "activity")
	v.SetDefault("activity.output_folder", "events")
	v.SetDefault("activity.kafka_broker_list", "localhost:9092")
	v.SetDefault("activity.cloud_storage.provider", "")
	v.SetDefault("activity.cloud_storage.bucket_name", "")
	v.SetDefault("activity.cloud_storage.region", "")
}

// LoadConfig initializes and reads the configuration using the global Viper
// instance, which the CLI has already bound its flags to.
func LoadConfig(cfgFile string) (*Config, error) {
	return ReadConfig(viper.GetViper(), cfgFile)
}

// ReadConfig layers defaults, an optional config file and FOODSTORE_*
// environment variables on v and decodes the result. A missing default config
// file is fine; an explicit --config path that cannot be read is not.
func ReadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".foodstore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("FOODSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects values the storefront cannot run with.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Pricing.TaxRate < 0:
		return fmt.Errorf("pricing.tax_rate must not be negative, got %v", cfg.Pricing.TaxRate)
	case cfg.Pricing.DeliveryFee < 0:
		return fmt.Errorf("pricing.delivery_fee must not be negative, got %v", cfg.Pricing.DeliveryFee)
	case cfg.Pricing.FreeDeliveryThreshold < 0:
		return fmt.Errorf("pricing.free_delivery_threshold must not be negative, got %v", cfg.Pricing.FreeDeliveryThreshold)
	case cfg.Cart.MaxQuantity < 1:
		return fmt.Errorf("cart.max_quantity must be at least 1, got %d", cfg.Cart.MaxQuantity)
	case cfg.Catalog.FeaturedCount < 0:
		return fmt.Errorf("catalog.featured_count must not be negative, got %d", cfg.Catalog.FeaturedCount)
	}

	delays := map[string]time.Duration{
		"delays.checkout": cfg.Delays.Checkout,
		"delays.login":    cfg.Delays.Login,
		"delays.register": cfg.Delays.Register,
		"delays.tick":     cfg.Delays.Tick,
	}
	for key, d := range delays {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", key, d)
		}
	}

	switch cfg.Catalog.Source {
	case CatalogStatic, CatalogPostgres:
	case CatalogSynthetic:
		if cfg.Catalog.SyntheticRestaurants < 1 || cfg.Catalog.SyntheticItems < 1 {
			return fmt.Errorf("synthetic catalog needs at least one restaurant and one item per restaurant")
		}
	default:
		return fmt.Errorf("unsupported catalog source: %q", cfg.Catalog.Source)
	}

	switch cfg.Logger.Mode {
	case "development", "production":
	default:
		return fmt.Errorf("unsupported logger mode: %q", cfg.Logger.Mode)
	}

	switch cfg.Activity.Format {
	case "none", "console":
	case "json", "parquet":
		if cfg.Activity.OutputPath == "" {
			return fmt.Errorf("activity.output_path is required for %s output", cfg.Activity.Format)
		}
	case "kafka":
		if cfg.Activity.KafkaBrokerList == "" {
			return fmt.Errorf("activity.kafka_broker_list is required for kafka output")
		}
	default:
		return fmt.Errorf("unsupported activity format: %q", cfg.Activity.Format)
	}
	return nil
}
