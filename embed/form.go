package embed

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xiaot623/embeddemo/domain"
	"github.com/xiaot623/embeddemo/store"
)

// Fields lists the editable form fields by their persisted names.
var Fields = []string{
	"deploymentId",
	"userIdType",
	"externalId",
	"internalId",
	"embedType",
	"dashboardId",
	"userAttributes",
	"embedAfterGeneration",
}

// Form holds the editable configuration and saves it after every change.
type Form struct {
	store store.Store
	cfg   domain.EmbedConfig
}

// LoadForm restores the saved configuration from s.
func LoadForm(ctx context.Context, s store.Store) (*Form, error) {
	cfg, err := store.LoadEmbedConfig(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &Form{store: s, cfg: cfg}, nil
}

// Config returns the current configuration.
func (f *Form) Config() domain.EmbedConfig {
	return f.cfg
}

// Set changes one field and persists the full configuration. Saving is
// best-effort: failures are logged and the in-memory change is kept.
func (f *Form) Set(ctx context.Context, field, value string) error {
	next := f.cfg

	switch field {
	case "deploymentId":
		next.DeploymentID = value
	case "userIdType":
		t := domain.UserIDType(strings.ToLower(value))
		if !t.Valid() {
			return fmt.Errorf("userIdType must be %q or %q", domain.UserIDTypeExternal, domain.UserIDTypeInternal)
		}
		next.UserIDType = t
	case "externalId":
		next.ExternalID = value
	case "internalId":
		next.InternalID = value
	case "embedType":
		t := domain.EmbedType(strings.ToLower(value))
		if t == domain.EmbedTypeLegacyHome {
			t = domain.EmbedTypeApp
		}
		if !t.Valid() {
			return fmt.Errorf("embedType must be one of chat, dashboard, app")
		}
		next.EmbedType = t
	case "dashboardId":
		next.DashboardID = value
	case "userAttributes":
		next.UserAttributes = value
	case "embedAfterGeneration":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("embedAfterGeneration must be true or false: %w", err)
		}
		next.EmbedAfterGeneration = b
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	f.cfg = next
	f.save(ctx)
	return nil
}

// Reset restores the defaults and forgets the saved configuration.
func (f *Form) Reset(ctx context.Context) {
	f.cfg = domain.DefaultEmbedConfig()
	if err := store.ClearEmbedConfig(ctx, f.store); err != nil {
		log.Printf("WARN: failed to clear configuration: %v", err)
	}
}

func (f *Form) save(ctx context.Context) {
	if err := store.SaveEmbedConfig(ctx, f.store, f.cfg); err != nil {
		log.Printf("WARN: failed to save configuration: %v", err)
	}
}
