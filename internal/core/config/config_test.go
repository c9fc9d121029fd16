package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3002, c.App.External.Port)
	assert.Equal(t, 3001, c.App.Internal.Port)
	assert.Equal(t, "http://localhost:3000", c.App.CORSOrigin)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, 100, c.Pagination.DefaultLimit)
	assert.Equal(t, 100, c.Pagination.MaxLimit)
	assert.Equal(t, 64, c.Store.MaxConcurrent)
	assert.Equal(t, 5*time.Second, c.App.External.ReadTimeout())
	assert.Empty(t, c.Redis.Addr)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  corsOrigin: https://shop.example
  external:
    port: 8080
db:
  driver: mysql
  dsn: root:pw@tcp(127.0.0.1:3306)/shop
pagination:
  maxLimit: 50
  defaultLimit: 20
`), 0o600))

	t.Setenv("STOREFRONT_APP_EXTERNAL_PORT", "9090")
	t.Setenv("STOREFRONT_REDIS_ADDR", "127.0.0.1:6379")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example", c.App.CORSOrigin)
	assert.Equal(t, 9090, c.App.External.Port)
	assert.Equal(t, 3001, c.App.Internal.Port)
	assert.Equal(t, "mysql", c.DB.Driver)
	assert.Equal(t, 50, c.Pagination.MaxLimit)
	assert.Equal(t, 20, c.Pagination.DefaultLimit)
	assert.Equal(t, "127.0.0.1:6379", c.Redis.Addr)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsBadPagination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pagination:\n  defaultLimit: 200\n  maxLimit: 100\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
