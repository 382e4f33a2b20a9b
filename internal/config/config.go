package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const maxSearchLimit = 20

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"ENV"`
	CatalogVersion string        `mapstructure:"CATALOG_VERSION"`
	TargetVersion  string        `mapstructure:"TARGET_VERSION"`
	ObserverLabel  string        `mapstructure:"OBSERVER_LABEL"`
	SearchLimit    int           `mapstructure:"SEARCH_LIMIT"`
	SeedFile       string        `mapstructure:"SEED_FILE"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32         `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int           `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CATALOG_VERSION", "2024-09")
	v.SetDefault("TARGET_VERSION", "2024-01")
	v.SetDefault("OBSERVER_LABEL", "swasthya-connect")
	v.SetDefault("SEARCH_LIMIT", maxSearchLimit)
	v.SetDefault("DB_MAX_CONNS", 4)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("REQUEST_TIMEOUT", "10s")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "CATALOG_VERSION", "TARGET_VERSION", "OBSERVER_LABEL",
		"SEARCH_LIMIT", "SEED_FILE", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REQUEST_TIMEOUT",
	} {
		_ = v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	cfg.SearchLimit = ClampSearchLimit(cfg.SearchLimit)

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasDatabase reports whether the catalog should be loaded from Postgres
// instead of the seed file.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// ClampSearchLimit bounds n to 1..20. Zero or negative means the maximum.
func ClampSearchLimit(n int) int {
	if n <= 0 || n > maxSearchLimit {
		return maxSearchLimit
	}
	return n
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "production" && c.Env != "test" {
		return fmt.Errorf("ENV must be \"development\", \"production\", or \"test\", got %q", c.Env)
	}
	if strings.TrimSpace(c.CatalogVersion) == "" {
		return fmt.Errorf("CATALOG_VERSION must not be empty")
	}
	if strings.TrimSpace(c.TargetVersion) == "" {
		return fmt.Errorf("TARGET_VERSION must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.HasDatabase() && c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}
