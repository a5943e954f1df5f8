package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/embeddemo/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreItems(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.GetItem(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.SetItem(ctx, "k", "v1"))
	require.NoError(t, store.SetItem(ctx, "k", "v2"))

	got, err := store.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, store.RemoveItem(ctx, "k"))
	require.NoError(t, store.RemoveItem(ctx, "k"))
	_, err = store.GetItem(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s1, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.SetItem(ctx, "k", "v"))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestLoadEmbedConfigDefaults(t *testing.T) {
	store := newTestStore(t)

	cfg, err := LoadEmbedConfig(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEmbedConfig(), cfg)
}

func TestEmbedConfigRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	want := domain.EmbedConfig{
		DeploymentID:         "32",
		UserIDType:           domain.UserIDTypeInternal,
		ExternalID:           "ext-1",
		InternalID:           "ops@example.com",
		EmbedType:            domain.EmbedTypeDashboard,
		DashboardID:          "pub-1",
		UserAttributes:       `[{"name":"city","value":"Paris"}]`,
		EmbedAfterGeneration: false,
	}
	require.NoError(t, SaveEmbedConfig(ctx, store, want))

	got, err := LoadEmbedConfig(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadEmbedConfigMigratesHome(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	saved := domain.DefaultEmbedConfig()
	saved.DeploymentID = "7"
	saved.EmbedType = domain.EmbedTypeLegacyHome
	require.NoError(t, SaveEmbedConfig(ctx, store, saved))

	got, err := LoadEmbedConfig(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, domain.EmbedTypeApp, got.EmbedType)
	assert.Equal(t, "7", got.DeploymentID)
}

func TestLoadEmbedConfigPartialBlob(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SetItem(ctx, EmbedConfigKey, `{"deploymentId":"5"}`))

	got, err := LoadEmbedConfig(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, "5", got.DeploymentID)
	assert.Equal(t, domain.EmbedTypeChat, got.EmbedType)
	assert.True(t, got.EmbedAfterGeneration)
}

func TestLoadEmbedConfigCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SetItem(ctx, EmbedConfigKey, `{not json`))

	got, err := LoadEmbedConfig(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEmbedConfig(), got)
}

func TestClearEmbedConfig(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	cfg := domain.DefaultEmbedConfig()
	cfg.DeploymentID = "3"
	require.NoError(t, SaveEmbedConfig(ctx, store, cfg))
	require.NoError(t, ClearEmbedConfig(ctx, store))

	_, err := store.GetItem(ctx, EmbedConfigKey)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := LoadEmbedConfig(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEmbedConfig(), got)
}
