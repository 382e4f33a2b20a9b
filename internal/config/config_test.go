package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.CatalogVersion != "2024-09" || cfg.TargetVersion != "2024-01" {
		t.Errorf("unexpected versions %s / %s", cfg.CatalogVersion, cfg.TargetVersion)
	}
	if cfg.SearchLimit != 20 {
		t.Errorf("expected search limit 20, got %d", cfg.SearchLimit)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.HasDatabase() {
		t.Error("expected no database by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	os.Setenv("TARGET_VERSION", "2025-01")
	os.Setenv("SEARCH_LIMIT", "50")
	os.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	os.Setenv("REQUEST_TIMEOUT", "3s")
	defer func() {
		os.Unsetenv("TARGET_VERSION")
		os.Unsetenv("SEARCH_LIMIT")
		os.Unsetenv("CORS_ORIGINS")
		os.Unsetenv("REQUEST_TIMEOUT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TargetVersion != "2025-01" {
		t.Errorf("expected TARGET_VERSION from env, got %s", cfg.TargetVersion)
	}
	if cfg.SearchLimit != 20 {
		t.Errorf("expected search limit clamped to 20, got %d", cfg.SearchLimit)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %s", cfg.RequestTimeout)
	}
}

func TestClampSearchLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{-1, 20}, {0, 20}, {1, 1}, {15, 15}, {20, 20}, {21, 20},
	}
	for _, tt := range tests {
		if got := ClampSearchLimit(tt.in); got != tt.want {
			t.Errorf("ClampSearchLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func validConfig() *Config {
	return &Config{
		Env:            "development",
		CatalogVersion: "2024-09",
		TargetVersion:  "2024-01",
		RequestTimeout: time.Second,
		RateLimitRPS:   1,
		RateLimitBurst: 1,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad env", func(c *Config) { c.Env = "staging" }, true},
		{"empty catalog version", func(c *Config) { c.CatalogVersion = " " }, true},
		{"empty target version", func(c *Config) { c.TargetVersion = "" }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
		{"zero rps", func(c *Config) { c.RateLimitRPS = 0 }, true},
		{"db pool inverted", func(c *Config) {
			c.DatabaseURL = "postgres://x"
			c.DBMinConns, c.DBMaxConns = 5, 2
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() || !c.IsProduction() {
		t.Error("expected production mode")
	}
}
