package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreCookie   = "cookie"
	SessionStorePostgres = "postgres"
)

// Config holds all configuration for the CMMS web front end.
type Config struct {
	// HTTP listener
	ListenAddr string

	// REST backend
	APIBaseURL string
	APITimeout time.Duration // 0 keeps the transport default

	// Browser sessions
	SessionSecret string
	SessionStore  string // cookie or postgres
	SessionMaxAge time.Duration
	CookieSecure  bool
	DatabaseURL   string

	// Dashboard push interval, 0 disables the live socket
	DashboardRefresh time.Duration

	// Logging
	LogLevel  string // DEBUG, INFO, WARN, ERROR
	LogFormat string // json or text
}

// Load reads an optional .env file, then the environment, and validates
// the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:    getEnv("CMMS_LISTEN_ADDR", ":8080"),
		APIBaseURL:    strings.TrimRight(getEnv("CMMS_API_BASE_URL", "http://localhost:5000/api"), "/"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", SessionStoreCookie)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		LogLevel:      strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}

	var err error
	if cfg.APITimeout, err = getDuration("CMMS_API_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getDuration("SESSION_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.DashboardRefresh, err = getDuration("DASHBOARD_REFRESH_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CookieSecure, err = strconv.ParseBool(getEnv("COOKIE_SECURE", "false")); err != nil {
		return nil, fmt.Errorf("COOKIE_SECURE: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("CMMS_API_BASE_URL must be an http(s) URL, got %q", c.APIBaseURL)
	}
	switch c.SessionStore {
	case SessionStoreCookie:
	case SessionStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SESSION_STORE=postgres")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreCookie, SessionStorePostgres, c.SessionStore)
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go durations ("30s") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("%s must not be negative", key)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
