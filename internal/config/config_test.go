package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "0.0.0.0", cfg.ServerHost)
		assert.Equal(t, 8080, cfg.ServerPort)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.MasterSecret)
		assert.Empty(t, cfg.MasterSecretWrapped)
		assert.Empty(t, cfg.APITokenHash)
		assert.True(t, cfg.RateLimitEnabled)
		assert.Equal(t, 10.0, cfg.RateLimitRequestsPerSec)
		assert.Equal(t, 20, cfg.RateLimitBurst)
		assert.False(t, cfg.CORSEnabled)
		assert.True(t, cfg.MetricsEnabled)
		assert.Equal(t, "envseal", cfg.MetricsNamespace)
		assert.Equal(t, 8081, cfg.MetricsPort)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("MASTER_SECRET", "c2VjcmV0")
		t.Setenv("METRICS_ENABLED", "false")

		cfg := Load()

		assert.Equal(t, 9090, cfg.ServerPort)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "c2VjcmV0", cfg.MasterSecret)
		assert.False(t, cfg.MetricsEnabled)
	})
}

func TestConfig_GetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, cfg.GetGinMode())
		})
	}
}
