package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestDefaults(t *testing.T) {
	cfg, err := unmarshal(newDefaults())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 2, cfg.Fetch.MaxAttempts)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 4, cfg.Queue.Workers)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Lexicon.File)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APP_QUEUE_WORKERS", "8")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.Queue.Workers)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  interface{}
		errMsg string
	}{
		{name: "port", key: "server.port", value: 0, errMsg: "server port is required"},
		{name: "fetch attempts", key: "fetch.max_attempts", value: 0, errMsg: "invalid fetch max attempts"},
		{name: "backend", key: "cache.backend", value: "disk", errMsg: "unknown cache backend"},
		{name: "cache size", key: "cache.max_size", value: 0, errMsg: "invalid cache max size"},
		{name: "workers", key: "queue.workers", value: 0, errMsg: "invalid queue workers"},
		{name: "rate limit", key: "rate_limit.requests", value: 0, errMsg: "invalid rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newDefaults()
			v.Set(tt.key, tt.value)
			_, err := unmarshal(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCacheDisabledSkipsCacheValidation(t *testing.T) {
	v := newDefaults()
	v.Set("cache.enabled", false)
	v.Set("cache.backend", "disk")
	_, err := unmarshal(v)
	assert.NoError(t, err)
}
