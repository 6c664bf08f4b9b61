package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load
const (
	EnvBackendURL   = "PLATEWATCH_BACKEND_URL"
	EnvViewURL      = "PLATEWATCH_VIEW_URL"
	EnvSessionToken = "PLATEWATCH_SESSION_TOKEN"
	EnvPageSize     = "PLATEWATCH_PAGE_SIZE"
	EnvTimeZone     = "PLATEWATCH_TIMEZONE"
	EnvLogFile      = "PLATEWATCH_LOG_FILE"
	EnvDebug        = "PLATEWATCH_DEBUG"
	EnvListenAddr   = "PLATEWATCH_LISTEN_ADDR"
	EnvDatabaseURL  = "PLATEWATCH_DATABASE_URL"
	EnvSeedCount    = "PLATEWATCH_SEED_COUNT"
	EnvHTTPTimeout  = "PLATEWATCH_HTTP_TIMEOUT"
)

// Config holds every runtime setting of platewatch
type Config struct {
	BackendURL   string
	ViewURL      string // base of the shareable list link
	SessionToken string
	PageSize     int
	TimeZone     string // zone date filters resolve in
	LogFile      string
	Debug        bool
	ListenAddr   string // dev backend
	DatabaseURL  string // dev backend: sqlite path or postgres:// URL
	SeedCount    int
	HTTPTimeout  time.Duration
}

// Overrides carries command-line values; nil fields keep the loaded value
type Overrides struct {
	BackendURL   *string
	ViewURL      *string
	SessionToken *string
	PageSize     *int
	Debug        *bool
	ListenAddr   *string
	DatabaseURL  *string
	SeedCount    *int
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		BackendURL:  "http://localhost:8080",
		ViewURL:     "http://localhost:3000/list",
		PageSize:    50,
		TimeZone:    "UTC",
		LogFile:     "platewatch.log",
		ListenAddr:  ":8080",
		DatabaseURL: "platewatch-dev.db",
		SeedCount:   200,
		HTTPTimeout: 30 * time.Second,
	}
}

// Load reads .env (if present) and the environment on top of the defaults
func Load() (*Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	cfg := Default()
	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnvironment overlays environment variables onto c
func (c *Config) LoadFromEnvironment() error {
	if v := os.Getenv(EnvBackendURL); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv(EnvViewURL); v != "" {
		c.ViewURL = v
	}
	if v := os.Getenv(EnvSessionToken); v != "" {
		c.SessionToken = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPageSize, err)
		}
		c.PageSize = n
	}
	if v := os.Getenv(EnvTimeZone); v != "" {
		c.TimeZone = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv(EnvSeedCount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeedCount, err)
		}
		c.SeedCount = n
	}
	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvHTTPTimeout, err)
		}
		c.HTTPTimeout = d
	}
	return nil
}

// Apply overlays command-line overrides onto c
func (c *Config) Apply(o Overrides) {
	if o.BackendURL != nil {
		c.BackendURL = *o.BackendURL
	}
	if o.ViewURL != nil {
		c.ViewURL = *o.ViewURL
	}
	if o.SessionToken != nil {
		c.SessionToken = *o.SessionToken
	}
	if o.PageSize != nil {
		c.PageSize = *o.PageSize
	}
	if o.Debug != nil {
		c.Debug = *o.Debug
	}
	if o.ListenAddr != nil {
		c.ListenAddr = *o.ListenAddr
	}
	if o.DatabaseURL != nil {
		c.DatabaseURL = *o.DatabaseURL
	}
	if o.SeedCount != nil {
		c.SeedCount = *o.SeedCount
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var errs []error

	if err := validateHTTPURL("backend URL", c.BackendURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateHTTPURL("view URL", c.ViewURL); err != nil {
		errs = append(errs, err)
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page size must be at least 1, got %d", c.PageSize))
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err))
	}
	if c.SeedCount < 0 {
		errs = append(errs, fmt.Errorf("seed count must not be negative, got %d", c.SeedCount))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP timeout must be positive, got %s", c.HTTPTimeout))
	}

	return errors.Join(errs...)
}

// Location returns the zone date filters resolve in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UsesPostgres reports whether the dev backend should connect to PostgreSQL
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an http(s) URL", name, raw)
	}
	return nil
}
