package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_MySQLFromParts(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "flavor")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "app:pw@tcp(db:3306)/flavor?charset=utf8mb4&parseTime=true&loc=UTC", cfg.DBDSN)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.Dev())
}

func TestFromEnv_CollectsMissing(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("BCRYPT_COST", "ten")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "")

	_, err := FromEnv()
	require.Error(t, err)
	for _, want := range []string{"APP_ENV", "JWT_SECRET", "BCRYPT_COST", "DB_DSN"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestFromEnv_Memory(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Dev())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "10s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	c := LoadRateLimitConfig()
	assert.Equal(t, 1, c.Capacity)
	assert.Equal(t, 20*time.Second, c.TTL)
}

func TestLoadMediaConfig(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "k")
	t.Setenv("CLOUDINARY_API_SECRET", "")
	m := LoadMediaConfig()
	assert.False(t, m.Enabled())
	assert.Equal(t, "dish-assets", m.Folder)
	assert.Equal(t, 5, m.MaxMB)
}

func TestStoreFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "flavor")

	driver, dsn := StoreFromEnv()
	assert.Equal(t, "mysql", driver)
	assert.Equal(t, "app@tcp(db:3307)/flavor?charset=utf8mb4&parseTime=true&loc=UTC", dsn)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:flavor.db")
	driver, dsn = StoreFromEnv()
	assert.Equal(t, "sqlite", driver)
	assert.Equal(t, "file:flavor.db", dsn)
}

func TestConfig_Location(t *testing.T) {
	assert.Equal(t, "Asia/Ho_Chi_Minh", Config{TimeZone: "Asia/Ho_Chi_Minh"}.Location().String())
	assert.Equal(t, time.UTC, Config{TimeZone: "Mars/Olympus"}.Location())
}
