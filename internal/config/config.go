package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration values for the client.
// These values are loaded from a .env file at startup.
type Config struct {
	// APIBaseURL is the base URL of the Amora API
	APIBaseURL string

	// AuthToken is the bearer token attached to every API call.
	// It is consumed as-is; the client never refreshes it.
	AuthToken string

	// PollInterval is the chat poll period
	PollInterval time.Duration

	// AssistRefreshDelay is how long after a successful send the AI panel
	// waits before re-fetching its analysis and suggestions
	AssistRefreshDelay time.Duration

	// PushStream enables the websocket refresh-hint watcher
	PushStream bool

	// MockListenAddr is the listen address for the local mock API server
	MockListenAddr string
}

// Load reads environment variables and returns a populated Config struct.
// It will load from a .env file if present, then read from environment
// variables. Falls back to sensible defaults if values are not set.
func Load() *Config {
	// Attempt to load .env file - not an error if it doesn't exist
	// as real environment variables may already be set
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		APIBaseURL:         getEnv("AMORA_API_URL", "http://localhost:8080"),
		AuthToken:          getEnv("AMORA_TOKEN", ""),
		PollInterval:       getDuration("AMORA_POLL_INTERVAL", 3*time.Second),
		AssistRefreshDelay: getDuration("AMORA_ASSIST_REFRESH_DELAY", 1500*time.Millisecond),
		PushStream:         getBool("AMORA_PUSH_STREAM", false),
		MockListenAddr:     getEnv("AMORA_MOCK_ADDR", ":8080"),
	}

	if cfg.AuthToken == "" {
		log.Println("WARNING: AMORA_TOKEN is not set")
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a duration environment variable (e.g. "3s", "1500ms")
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// getBool parses a boolean environment variable
func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}
