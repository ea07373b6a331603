package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for key := range defaults {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8010", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.TrustProxy)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 20, cfg.RateLimit.Capacity)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "cotizador_", cfg.Redis.Prefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_CAPACITY", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://ventas.example.cl, ,https://admin.example.cl")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.RateLimit.Capacity)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, []string{"https://ventas.example.cl", "https://admin.example.cl"}, cfg.AllowedOrigins)
}
