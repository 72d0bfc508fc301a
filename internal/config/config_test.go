package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, CatalogStatic, cfg.CatalogSource)
	assert.Equal(t, StoreMemory, cfg.SessionStore)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3*time.Second, cfg.NotificationTTL)
	assert.Equal(t, "shop-checkout-completed", cfg.CheckoutTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.True(t, cfg.ShopOpen)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SHOP_HTTP_PORT", "9090")
	t.Setenv("SHOP_SESSION_STORE", "redis")
	t.Setenv("SHOP_SESSION_TTL", "5m")
	t.Setenv("SHOP_LOG_DEVELOPMENT", "true")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, StoreRedis, cfg.SessionStore)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.LogDevelopment)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	content := `
catalog_source: sqlite
db_path: /var/lib/shop.db
kafka_brokers:
  - kafka-1:9092
  - kafka-2:9092
shop_name: Community Shop
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load([]string{"--config", path})
	require.NoError(t, err)

	assert.Equal(t, CatalogSQLite, cfg.CatalogSource)
	assert.Equal(t, "/var/lib/shop.db", cfg.DBPath)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "Community Shop", cfg.ShopName)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_port: \"7000\"\n"), 0o600))
	t.Setenv("SHOP_CONFIG_FILE", path)
	t.Setenv("SHOP_HTTP_PORT", "7100")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "7100", cfg.HTTPPort)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load([]string{"--config", "/does/not/exist.yaml"})
	assert.ErrorContains(t, err, "read config file")
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("SHOP_CATALOG_SOURCE", "file")
	t.Setenv("SHOP_SESSION_STORE", "mongo")

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog_file is required")
	assert.Contains(t, err.Error(), `unknown session_store "mongo"`)
}
