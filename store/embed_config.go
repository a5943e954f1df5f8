package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/xiaot623/embeddemo/domain"
)

// EmbedConfigKey is the well-known key holding the persisted form state.
const EmbedConfigKey = "embed-demo:config"

// LoadEmbedConfig reads the persisted configuration. A missing or
// unreadable blob yields the default configuration. Fields absent from
// the blob keep their default values, and the legacy "home" embed type
// is migrated to "app".
func LoadEmbedConfig(ctx context.Context, s Store) (domain.EmbedConfig, error) {
	cfg := domain.DefaultEmbedConfig()

	raw, err := s.GetItem(ctx, EmbedConfigKey)
	if errors.Is(err, ErrNotFound) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		log.Printf("WARN: discarding unreadable saved configuration: %v", err)
		return domain.DefaultEmbedConfig(), nil
	}

	return migrateEmbedConfig(cfg), nil
}

// SaveEmbedConfig writes the full configuration under EmbedConfigKey.
func SaveEmbedConfig(ctx context.Context, s Store, cfg domain.EmbedConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return s.SetItem(ctx, EmbedConfigKey, string(data))
}

// ClearEmbedConfig removes the saved configuration so the next load
// returns the defaults.
func ClearEmbedConfig(ctx context.Context, s Store) error {
	return s.RemoveItem(ctx, EmbedConfigKey)
}

func migrateEmbedConfig(cfg domain.EmbedConfig) domain.EmbedConfig {
	if cfg.EmbedType == domain.EmbedTypeLegacyHome {
		cfg.EmbedType = domain.EmbedTypeApp
	}
	return cfg
}
