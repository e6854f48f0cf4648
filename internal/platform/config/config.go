package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port           string
	GinMode        string
	ListingBaseURL string
	HTTPTimeout    time.Duration
	HTTPRetries    int
	RetryBackoff   time.Duration
	ScrapeWorkers  int
}

// Load reads environment variables into a Config with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "release"),
		ListingBaseURL: strings.TrimSuffix(getEnv("LISTING_BASE_URL", "https://www.redfin.com"), "/"),
	}

	var err error
	if cfg.HTTPTimeout, err = parseDurationEnv("HTTP_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse HTTP_TIMEOUT: %w", err)
	}
	if cfg.HTTPRetries, err = parseIntEnv("HTTP_RETRIES", 2); err != nil {
		return Config{}, fmt.Errorf("parse HTTP_RETRIES: %w", err)
	}
	if cfg.RetryBackoff, err = parseDurationEnv("HTTP_RETRY_BACKOFF", 2*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse HTTP_RETRY_BACKOFF: %w", err)
	}
	if cfg.ScrapeWorkers, err = parseIntEnv("SCRAPE_WORKERS", 1); err != nil {
		return Config{}, fmt.Errorf("parse SCRAPE_WORKERS: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required fields are present and sane.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if !strings.HasPrefix(c.ListingBaseURL, "http") {
		return fmt.Errorf("LISTING_BASE_URL must be an absolute URL, got %q", c.ListingBaseURL)
	}
	if c.ScrapeWorkers < 1 {
		return errors.New("SCRAPE_WORKERS must be at least 1")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func parseIntEnv(key string, defaultVal int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(val)
}

func parseDurationEnv(key string, defaultVal time.Duration) (time.Duration, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(val)
}
