// Package config builds the immutable run configuration from the
// environment. The .env file, if any, is loaded into the environment by the
// entrypoint before Load runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/martinsuchenak/clientusage/internal/log"
)

const (
	// DefaultTimespan is one day of client history.
	DefaultTimespan = 86400 * time.Second
	// MaxTimespan is the longest history window the dashboard serves (31 days).
	MaxTimespan = 2678400 * time.Second
	// MaxConcurrency caps parallel collection; the shared constraint is the
	// dashboard rate limit, not local resources.
	MaxConcurrency = 8
)

// Config holds the application configuration. Built once at startup and
// passed explicitly; never mutated after Validate.
type Config struct {
	APIKey          string
	OrgID           string
	OrgName         string
	Timespan        time.Duration
	Excel           bool
	ReportOrgWide   bool
	ReportByNetwork bool
	OutputDir       string
	RateLimitPause  time.Duration
	MaxRetries      int
	Concurrency     int
}

// Load reads configuration from environment variables, applying defaults for
// anything unset. Malformed numeric values fall back to their defaults with a
// warning; range violations are reported by Validate.
func Load() *Config {
	cfg := &Config{
		APIKey:          os.Getenv("MERAKI_API_KEY"),
		OrgID:           os.Getenv("MERAKI_ORG_ID"),
		OrgName:         os.Getenv("MERAKI_ORG_NAME"),
		Timespan:        DefaultTimespan,
		Excel:           envBool("EXCEL", false),
		ReportOrgWide:   envBool("REPORT_ORG_WIDE", true),
		ReportByNetwork: envBool("REPORT_BY_NETWORK", true),
		OutputDir:       coalesce(os.Getenv("OUTPUT_DIR"), "reports"),
		RateLimitPause:  time.Duration(envInt("RATE_LIMIT_PAUSE", 1)) * time.Second,
		MaxRetries:      envInt("MAX_RETRIES", 5),
		Concurrency:     envInt("COLLECT_CONCURRENCY", 1),
	}

	if raw := os.Getenv("TIMESPAN_IN_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("invalid TIMESPAN_IN_SECONDS, using default", "value", raw, "default", int(DefaultTimespan.Seconds()))
		} else {
			cfg.Timespan = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

// ValidationError reports a fatal configuration problem. Validation failures
// abort the run before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Field, e.Reason)
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return &ValidationError{Field: "MERAKI_API_KEY", Reason: "is required"}
	}
	if c.Timespan < time.Second || c.Timespan > MaxTimespan {
		return &ValidationError{
			Field:  "TIMESPAN_IN_SECONDS",
			Reason: fmt.Sprintf("must be between 1 and %d", int(MaxTimespan.Seconds())),
		}
	}
	if c.MaxRetries < 1 {
		return &ValidationError{Field: "MAX_RETRIES", Reason: "must be at least 1"}
	}
	if c.RateLimitPause < 0 {
		return &ValidationError{Field: "RATE_LIMIT_PAUSE", Reason: "must not be negative"}
	}
	if c.Concurrency < 1 || c.Concurrency > MaxConcurrency {
		return &ValidationError{
			Field:  "COLLECT_CONCURRENCY",
			Reason: fmt.Sprintf("must be between 1 and %d", MaxConcurrency),
		}
	}
	return nil
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn("invalid boolean environment variable, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("invalid integer environment variable, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

// coalesce returns the first non-empty string value.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
