package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable the tests touch and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "READ_TIMEOUT", "STORAGE_BACKEND", "MAX_SCALE_FACTOR", "MAX_INPUT_PIXELS",
		"RESULTS_DIR", "RABBITMQ_QUEUE", "CORS_ALLOWED_ORIGINS", "CACHE_DURATION",
		"SUPABASE_URL", "SUPABASE_BUCKET", "MINIO_ENDPOINT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "none", cfg.Storage.Backend)
	assert.Equal(t, 16.0, cfg.Storage.MaxScaleFactor)
	assert.Equal(t, int64(40_000_000), cfg.Storage.MaxInputPixels)
	assert.Equal(t, "./results", cfg.Storage.ResultsDir)
	assert.Equal(t, "image_enlarge", cfg.RabbitMQ.Queue)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_SCALE_FACTOR", "4.5")
	t.Setenv("CACHE_DURATION", "10m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://*.example.org")
	t.Setenv("STORAGE_BACKEND", "minio")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 4.5, cfg.Storage.MaxScaleFactor)
	assert.Equal(t, 10*time.Minute, cfg.Cache.Duration)
	assert.Equal(t, []string{"https://a.example.com", "https://*.example.org"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "minio", cfg.Storage.Backend)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown backend":        {"STORAGE_BACKEND": "s3"},
		"supabase without url":   {"STORAGE_BACKEND": "supabase"},
		"minio without endpoint": {"STORAGE_BACKEND": "minio"},
		"zero scale cap":         {"MAX_SCALE_FACTOR": "0"},
		"zero pixel cap":         {"MAX_INPUT_PIXELS": "0"},
		"bad duration":           {"CACHE_DURATION": "soon"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
