// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Content backends.
const (
	BackendMock     = "mock"     // serve the built-in dataset through the backend contract
	BackendREST     = "rest"     // read a remote backend at ContentAPIURL
	BackendDocument = "document" // read the Postgres document store
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Content resolution
	ContentBackend string // BackendMock, BackendREST or BackendDocument
	ContentAPIURL  string
	HTTPTimeout    time.Duration
	MockFallback   bool // serve mock data when the backend fails

	// Tenancy
	MultiTenant      bool
	TenantDevDefault string

	// Caching and limits
	CacheTTL  time.Duration // 0 disables the content cache
	RateLimit int           // requests per minute per tenant and client; 0 disables

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
}

// LoadFile reads KEY=VALUE pairs from path into the environment. Variables
// already set win. A missing file is not an error.
func LoadFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error for malformed values
// and for combinations that cannot work.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ContentBackend: strings.ToLower(envOrDefault("CONTENT_BACKEND", BackendMock)),
		ContentAPIURL:  os.Getenv("CONTENT_API_URL"),

		TenantDevDefault: os.Getenv("TENANT_DEV_DEFAULT"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "sitecontent"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "sitecontent"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	var errs []error
	var err error
	if cfg.HTTPTimeout, err = envDuration("CONTENT_HTTP_TIMEOUT", 10*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.CacheTTL, err = envDuration("CONTENT_CACHE_TTL", 5*time.Minute); err != nil {
		errs = append(errs, err)
	}
	if cfg.MockFallback, err = envBool("CONTENT_MOCK_FALLBACK", true); err != nil {
		errs = append(errs, err)
	}
	if cfg.MultiTenant, err = envBool("MULTI_TENANT", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimit, err = envInt("RATE_LIMIT", 120); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.ContentBackend {
	case BackendMock, BackendDocument:
	case BackendREST:
		u, err := url.Parse(c.ContentAPIURL)
		if c.ContentAPIURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CONTENT_API_URL must be an absolute URL when CONTENT_BACKEND=rest")
		}
	default:
		return fmt.Errorf("CONTENT_BACKEND %q is not one of mock, rest, document", c.ContentBackend)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("CONTENT_HTTP_TIMEOUT must be positive")
	}
	if c.CacheTTL < 0 || c.RateLimit < 0 {
		return fmt.Errorf("CONTENT_CACHE_TTL and RATE_LIMIT must not be negative")
	}

	if c.Env == "production" && c.ContentBackend == BackendDocument {
		if c.DBPassword == "changeme" {
			return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether responses should be cached in Valkey.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != "" && c.CacheTTL > 0
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
