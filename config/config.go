// Package config provides configuration for the relay and the operator CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the relay configuration.
type Config struct {
	// Server settings
	Port int

	// Upstream analytics service
	UpstreamURL     string
	APIKey          string
	UpstreamTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables. The upstream URL,
// API key and port have no defaults; a missing or malformed value is
// reported by name.
func Load() (*Config, error) {
	upstreamURL, err := requireEnv("UPSTREAM_URL")
	if err != nil {
		return nil, err
	}
	apiKey, err := requireEnv("EMBED_API_KEY")
	if err != nil {
		return nil, err
	}
	rawPort, err := requireEnv("PORT")
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("PORT must be a valid port number, got %q", rawPort)
	}

	cfg := &Config{
		Port:            port,
		UpstreamURL:     strings.TrimSuffix(upstreamURL, "/"),
		APIKey:          apiKey,
		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT_MS", 30000)) * time.Millisecond,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

func requireEnv(key string) (string, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return "", fmt.Errorf("%s environment variable is required", key)
	}
	return val, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
