package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cr3t")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("PORT", "")
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("CACHE_KIND", "")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", c.Server.Addr)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, "best-seller", c.Storage.Mongo.Database)
	assert.Equal(t, "none", c.Cache.Kind)
	assert.Equal(t, "usd", c.Payment.Currency)
	assert.Equal(t, "24h", c.JWT.TTL)
	assert.Equal(t, DefaultPolicy(), c.Policy)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cr3t")
	t.Setenv("STORAGE_DRIVER", "memory")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("STORAGE_DRIVER", "memory")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_SECRET")
}

func TestLoad_MongoNeedsURL(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cr3t")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("MONGODB_URL", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URL")
}

func TestLoad_YAMLThenEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
server:
  addr: ":9000"
storage:
  driver: memory
jwt:
  secret: from-yaml
  ttl: 1h
policy:
  enforce_product_owner: true
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("PORT", "7000")
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("POLICY_LEGACY_ORDER_PRODUCT_BY_NAME", "false")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", c.Server.Addr)
	assert.Equal(t, "from-yaml", c.JWT.Secret)
	assert.Equal(t, time.Hour, Duration(c.JWT.TTL, 0))
	assert.True(t, c.Policy.EnforceProductOwner)
	assert.True(t, c.Policy.UpdateProductRequiresAuth, "toggle no mencionado mantiene default")
	assert.False(t, c.Policy.LegacyOrderProductByName)
}

func TestValidate_Unknowns(t *testing.T) {
	c := &Config{}
	c.JWT.Secret = "x"
	c.Storage.Driver = "cassandra"
	c.Cache.Kind = "none"
	assert.Error(t, c.Validate())

	c.Storage.Driver = "memory"
	c.Cache.Kind = "memcached"
	assert.Error(t, c.Validate())

	c.Cache.Kind = "redis"
	assert.Error(t, c.Validate(), "redis sin addr")

	c.Cache.Redis.Addr = "localhost:6379"
	c.JWT.TTL = "forever"
	assert.Error(t, c.Validate())
}

func TestDSN(t *testing.T) {
	c := &Config{}
	c.Storage.Driver = "postgres"
	c.Storage.Postgres.DSN = "postgres://x"
	assert.Equal(t, "postgres://x", c.DSN())

	c.Storage.Driver = "memory"
	assert.Empty(t, c.DSN())
}
