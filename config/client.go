package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ClientConfig holds the operator CLI configuration.
type ClientConfig struct {
	// RelayURL is where the relay listens, e.g. http://localhost:3000.
	RelayURL string `yaml:"relay_url"`
	// EmbedBaseURL is the public base of the upstream service used to build
	// embed URLs. It is never given the API key.
	EmbedBaseURL string `yaml:"embed_base_url"`
	// StorePath is the SQLite file backing the persisted form state.
	StorePath string `yaml:"store_path"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Timeout returns the relay request timeout.
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// DefaultClientConfigPath returns ~/.embed-demo/config.yaml.
func DefaultClientConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".embed-demo", "config.yaml")
}

// LoadClient reads the CLI configuration file at path. A missing file is
// not an error; defaults and environment overrides still apply.
func LoadClient(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.RelayURL = getEnv("RELAY_URL", cfg.RelayURL)
	cfg.EmbedBaseURL = getEnv("EMBED_BASE_URL", cfg.EmbedBaseURL)
	cfg.StorePath = getEnv("EMBED_STORE_PATH", cfg.StorePath)
	applyClientDefaults(cfg, filepath.Dir(path))

	return cfg, nil
}

func applyClientDefaults(cfg *ClientConfig, dir string) {
	if cfg.RelayURL == "" {
		cfg.RelayURL = "http://localhost:3000"
	}
	cfg.RelayURL = strings.TrimSuffix(cfg.RelayURL, "/")
	cfg.EmbedBaseURL = strings.TrimSuffix(cfg.EmbedBaseURL, "/")
	if cfg.StorePath == "" {
		cfg.StorePath = filepath.Join(dir, "local_storage.db")
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 30000
	}
}
