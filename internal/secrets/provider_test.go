package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore map[string]string

func (f fakeStore) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := f[name]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func TestResolveSource(t *testing.T) {
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceAuto, "development"))
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceAuto, ""))
	assert.Equal(t, SourceVault, ResolveSource(SourceAuto, "production"))
	assert.Equal(t, SourceVault, ResolveSource(SourceAuto, "staging"))
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceEnvironment, "production"))
}

func TestProvider_GetSecretOrEnv(t *testing.T) {
	provider := NewProviderWithStore(SourceVault, fakeStore{"db-password": "from-vault"}, zap.NewNop())

	t.Run("falls back to store", func(t *testing.T) {
		value, err := provider.GetSecretOrEnv(context.Background(), "db-password", "SALES_TEST_DB_PASSWORD")
		require.NoError(t, err)
		assert.Equal(t, "from-vault", value)
	})

	t.Run("environment override wins", func(t *testing.T) {
		t.Setenv("SALES_TEST_DB_PASSWORD", "from-env")
		value, err := provider.GetSecretOrEnv(context.Background(), "db-password", "SALES_TEST_DB_PASSWORD")
		require.NoError(t, err)
		assert.Equal(t, "from-env", value)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := provider.GetSecretOrEnv(context.Background(), "unknown", "SALES_TEST_UNKNOWN")
		assert.Error(t, err)
	})

	assert.True(t, provider.IsVaultEnabled())
}

func TestNewProvider_Environment(t *testing.T) {
	provider, err := NewProvider(&ProviderConfig{Source: SourceAuto, Environment: "development"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, SourceEnvironment, provider.Source())

	t.Setenv("SALES_TEST_API_KEY", "key")
	value, err := provider.GetSecret(context.Background(), "SALES_TEST_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "key", value)
}

func TestNewProvider_VaultRequiresName(t *testing.T) {
	_, err := NewProvider(&ProviderConfig{Source: SourceVault}, zap.NewNop())
	assert.Error(t, err)
}

func TestTTLCache_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := newTTLCache(time.Minute, func() time.Time { return now })

	cache.set("a", "1")
	value, ok := cache.get("a")
	require.True(t, ok)
	assert.Equal(t, "1", value)

	now = now.Add(2 * time.Minute)
	_, ok = cache.get("a")
	assert.False(t, ok)
}
