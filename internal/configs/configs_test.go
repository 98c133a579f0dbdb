package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.AppURL())
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.AppURL())
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("PASSWORD_HASH_COST", "99")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, "STORE_DRIVER")
	assert.ErrorContains(t, err, "RATE_LIMIT_PER_MINUTE")
	assert.ErrorContains(t, err, "PASSWORD_HASH_COST")
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger("verbose", "json")
	assert.Error(t, err)

	log, err := NewLogger("debug", "console")
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewStore(t *testing.T) {
	cfg := &Config{StoreDriver: StoreMemory}
	store, err := NewStore(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.IsType(t, &repository.MemoryStore{}, store)

	cfg = &Config{StoreDriver: StoreSQLite, DatabaseDSN: "file:" + t.Name() + "?mode=memory&cache=shared"}
	store, err = NewStore(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.IsType(t, &repository.GormStore{}, store)
	require.NoError(t, store.Close())
}
