package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-estoque/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "http://localhost:5000", cfg.Upstream.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 10, cfg.Catalog.PageSize)
	assert.Equal(t, 564, cfg.Catalog.SupplierID)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("UPSTREAM_BASE_URL", "http://api.interna:5000")
	t.Setenv("SESSION_STORE", "REDIS")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("CATALOG_PAGE_SIZE", "abc")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "http://api.interna:5000", cfg.Upstream.BaseURL)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 10, cfg.Catalog.PageSize, "valor no numérico usa el defecto")
}

func TestLoad_SessionStoreInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_STORE", "memcached")

	_, err := config.Load()
	assert.Error(t, err)
}
