// Package config provides configuration management for the TruckFinder application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Mode selects how the application is wired together.
type Mode string

const (
	// LocalMode runs everything in one process with the in-memory
	// broker and interaction store.
	LocalMode Mode = "local"

	// DistributedMode publishes telemetry to Redpanda and persists
	// interactions in Postgres, for running the analytics agent in its
	// own process.
	DistributedMode Mode = "distributed"
)

// Default values applied when the environment leaves a setting unset.
const (
	DefaultDataPath      = "data/inventory.csv"
	DefaultHTTPAddr      = ":8080"
	DefaultSessionDBPath = "data/sessions.db"
)

// Config holds the application configuration.
type Config struct {
	// DataPath is the inventory CSV export to load at startup.
	DataPath string

	// HTTPAddr is the listen address for the API server.
	HTTPAddr string

	// OpenRouterAPIKey authenticates against OpenRouter. Required by
	// the serve and chat commands; the mcp and search commands run
	// without a model.
	OpenRouterAPIKey string

	// OpenRouterModel overrides the default model slug.
	OpenRouterModel string

	// OpenRouterBaseURL points the client at an alternative
	// OpenAI-compatible endpoint.
	OpenRouterBaseURL string

	// SessionDBPath is the SQLite file holding chat transcripts.
	SessionDBPath string

	// RedpandaBrokers is the seed broker list for distributed mode.
	// Empty means local mode.
	RedpandaBrokers []string

	// PostgresDSN is the interaction store connection string for
	// distributed mode.
	PostgresDSN string

	// Verbose enables debug logging.
	Verbose bool
}

// Mode derives the wiring mode from the broker list, mirroring how the
// settings are usually deployed: setting REDPANDA_BROKERS opts into the
// distributed plane.
func (c *Config) Mode() Mode {
	if len(c.RedpandaBrokers) > 0 {
		return DistributedMode
	}
	return LocalMode
}

// Load reads configuration from a .env file (when present) and the
// environment. Missing optional settings fall back to defaults; no
// setting is validated here since which values are required depends on
// the command being run.
func Load() *Config {
	// A missing .env is fine; explicit environment always wins because
	// godotenv never overwrites existing variables.
	_ = godotenv.Load()

	return &Config{
		DataPath:          getEnv("TRUCKFINDER_DATA", DefaultDataPath),
		HTTPAddr:          getEnv("TRUCKFINDER_ADDR", DefaultHTTPAddr),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:   os.Getenv("OPENROUTER_MODEL"),
		OpenRouterBaseURL: os.Getenv("OPENROUTER_BASE_URL"),
		SessionDBPath:     getEnv("TRUCKFINDER_SESSION_DB", DefaultSessionDBPath),
		RedpandaBrokers:   splitList(os.Getenv("REDPANDA_BROKERS")),
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		Verbose:           getEnvBool("TRUCKFINDER_VERBOSE", false),
	}
}

// LoadForAgent loads configuration and validates the settings the
// conversational commands need.
func LoadForAgent() (*Config, error) {
	cfg := Load()
	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is required")
	}
	if cfg.Mode() == DistributedMode && cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN environment variable is required when REDPANDA_BROKERS is set")
	}
	return cfg, nil
}

// MustLoadForAgent loads agent configuration and panics on error.
// Useful for initialization in main() where configuration errors
// should be fatal.
func MustLoadForAgent() *Config {
	cfg, err := LoadForAgent()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// splitList reads a comma-separated list, dropping empty entries so
// "localhost:19092," parses cleanly.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
