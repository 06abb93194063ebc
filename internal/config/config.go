package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates runtime settings. Every key can be overridden by the
// upper-case environment variable of the same name, e.g. LOCK_TIMEOUT=3s.
type Config struct {
	HTTPAddr string `mapstructure:"http_addr"`
	LogLevel string `mapstructure:"log_level"`

	StoreDriver string `mapstructure:"store_driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`

	LockDriver   string        `mapstructure:"lock_driver"`
	RedisAddr    string        `mapstructure:"redis_addr"`
	RedisDB      int           `mapstructure:"redis_db"`
	LockTimeout  time.Duration `mapstructure:"lock_timeout"`
	LockLeaseTTL time.Duration `mapstructure:"lock_lease_ttl"`

	EventsDriver string   `mapstructure:"events_driver"`
	NATSURL      string   `mapstructure:"nats_url"`
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`

	AutoExtendWindow       time.Duration `mapstructure:"auto_extend_window"`
	AutoExtendMargin       time.Duration `mapstructure:"auto_extend_margin"`
	OpeningBidAtStartPrice bool          `mapstructure:"opening_bid_at_start_price"`
	MinBidderRatingPercent float64       `mapstructure:"min_bidder_rating_percent"`
	MaxCascadeIterations   int           `mapstructure:"max_cascade_iterations"`
	MaxConflictRetries     int           `mapstructure:"max_conflict_retries"`
	HighlightNewDuration   time.Duration `mapstructure:"highlight_new_duration"`
	FinalizeInterval       time.Duration `mapstructure:"finalize_interval"`
	FinalizerEnabled       bool          `mapstructure:"finalizer_enabled"`
	SeedDemoData           bool          `mapstructure:"seed_demo_data"`
}

// MinFinalizeInterval is the floor applied to FINALIZE_INTERVAL
const MinFinalizeInterval = time.Minute

var defaults = map[string]any{
	"http_addr":                  ":8080",
	"log_level":                  "info",
	"store_driver":               "memory",
	"sqlite_path":                "auction.db",
	"lock_driver":                "local",
	"redis_addr":                 "localhost:6379",
	"redis_db":                   0,
	"lock_timeout":               "2s",
	"lock_lease_ttl":             "5s",
	"events_driver":              "log",
	"nats_url":                   "nats://localhost:4222",
	"kafka_brokers":              "localhost:9092",
	"kafka_topic":                "auction-events",
	"auto_extend_window":         "5m",
	"auto_extend_margin":         "10m",
	"opening_bid_at_start_price": false,
	"min_bidder_rating_percent":  80,
	"max_cascade_iterations":     1000,
	"max_conflict_retries":       3,
	"highlight_new_duration":     "60m",
	"finalize_interval":          "5m",
	"finalizer_enabled":          true,
	"seed_demo_data":             false,
}

// Load reads optional .env files (default ".env"), then the environment, then validates
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.LockDriver = strings.ToLower(strings.TrimSpace(c.LockDriver))
	c.EventsDriver = strings.ToLower(strings.TrimSpace(c.EventsDriver))
	c.KafkaTopic = strings.TrimSpace(c.KafkaTopic)

	brokers := make([]string, 0, len(c.KafkaBrokers))
	for _, b := range c.KafkaBrokers {
		for _, part := range strings.Split(b, ",") {
			if p := strings.TrimSpace(part); p != "" {
				brokers = append(brokers, p)
			}
		}
	}
	c.KafkaBrokers = brokers

	if c.FinalizeInterval > 0 && c.FinalizeInterval < MinFinalizeInterval {
		c.FinalizeInterval = MinFinalizeInterval
	}
}

// Validate checks driver names and numeric bounds
func (c Config) Validate() error {
	switch c.StoreDriver {
	case "memory":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("config: SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.LockDriver {
	case "local":
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("config: REDIS_ADDR is required for the redis lock driver")
		}
		if c.LockLeaseTTL <= 0 {
			return fmt.Errorf("config: LOCK_LEASE_TTL must be > 0")
		}
	default:
		return fmt.Errorf("config: unknown LOCK_DRIVER %q", c.LockDriver)
	}

	switch c.EventsDriver {
	case "log", "none":
	case "nats":
		if c.NATSURL == "" {
			return fmt.Errorf("config: NATS_URL is required for the nats events driver")
		}
	case "kafka":
		if len(c.KafkaBrokers) == 0 || c.KafkaTopic == "" {
			return fmt.Errorf("config: KAFKA_BROKERS and KAFKA_TOPIC are required for the kafka events driver")
		}
	default:
		return fmt.Errorf("config: unknown EVENTS_DRIVER %q", c.EventsDriver)
	}

	if c.LockTimeout <= 0 {
		return fmt.Errorf("config: LOCK_TIMEOUT must be > 0")
	}
	if c.AutoExtendWindow < 0 || c.AutoExtendMargin < 0 {
		return fmt.Errorf("config: AUTO_EXTEND_WINDOW and AUTO_EXTEND_MARGIN must be >= 0")
	}
	if c.MinBidderRatingPercent < 0 || c.MinBidderRatingPercent > 100 {
		return fmt.Errorf("config: MIN_BIDDER_RATING_PERCENT must be within [0, 100]")
	}
	if c.MaxCascadeIterations <= 0 {
		return fmt.Errorf("config: MAX_CASCADE_ITERATIONS must be > 0")
	}
	if c.MaxConflictRetries < 0 {
		return fmt.Errorf("config: MAX_CONFLICT_RETRIES must be >= 0")
	}
	if c.HighlightNewDuration < 0 {
		return fmt.Errorf("config: HIGHLIGHT_NEW_DURATION must be >= 0")
	}
	if c.FinalizerEnabled && c.FinalizeInterval <= 0 {
		return fmt.Errorf("config: FINALIZE_INTERVAL must be > 0 when the finalizer is enabled")
	}
	return nil
}
