package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "http://localhost:3000", cfg.BackendBaseURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout())
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.OTELEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com")
	t.Setenv("SESSION_TTL_MINUTES", "10")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "https://api.example.com", cfg.BackendBaseURL)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestValidate(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad backend url", func(t *testing.T) {
		t.Setenv("BACKEND_BASE_URL", "not a url")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("zero session ttl", func(t *testing.T) {
		t.Setenv("SESSION_TTL_MINUTES", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad sample rate", func(t *testing.T) {
		t.Setenv("OTEL_SAMPLE_RATE", "1.5")
		_, err := Load()
		assert.Error(t, err)
	})
}
