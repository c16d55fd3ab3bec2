// Package config provides configuration for the research agent.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. It is constructed once at
// startup and passed into the client constructors.
type Config struct {
	// Provider credentials
	SerpAPIKey   string
	GeminiAPIKey string

	// Generation settings
	Model           string
	GenerateTimeout time.Duration

	// Search settings
	MaxResults    int
	SearchTimeout time.Duration

	// Pipeline settings
	MaxContextBytes int
	HistoryWindow   int
	PlanQueries     bool

	// Feature flags
	Debug bool
}

// Error reports a missing or invalid configuration value. It is fatal at
// startup; nothing else runs until the configuration is valid.
type Error struct {
	Var    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Var, e.Reason)
}

// New returns a configuration with default values.
func New() *Config {
	return &Config{
		Model:           "gemini-2.5-flash",
		GenerateTimeout: 120 * time.Second,

		MaxResults:    10,
		SearchTimeout: 10 * time.Second,

		MaxContextBytes: 24 * 1024,
		HistoryWindow:   10,
		PlanQueries:     true,
	}
}

// Load builds a configuration from defaults overlaid with environment
// variables. Call godotenv.Load first if a .env file should be honored.
func Load() *Config {
	cfg := New()

	cfg.SerpAPIKey = os.Getenv("SERPAPI_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Model = model
	}
	if raw := os.Getenv("SEARCH_MAX_RESULTS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.MaxResults = n
		}
	}

	return cfg
}

// Validate checks that the configuration is usable. Missing credentials and
// out-of-range values are reported as *Error.
func (c *Config) Validate() error {
	if c.SerpAPIKey == "" {
		return &Error{Var: "SERPAPI_API_KEY", Reason: "must be set"}
	}
	if c.GeminiAPIKey == "" {
		return &Error{Var: "GEMINI_API_KEY", Reason: "must be set"}
	}
	if c.Model == "" {
		return &Error{Var: "GEMINI_MODEL", Reason: "model name cannot be empty"}
	}
	if c.MaxResults < 1 || c.MaxResults > 10 {
		return &Error{Var: "SEARCH_MAX_RESULTS", Reason: "must be between 1 and 10"}
	}
	return nil
}
