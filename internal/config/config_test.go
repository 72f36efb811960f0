package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "u1", cfg.Session.InitialUser)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Gemini.Model)
	assert.Equal(t, "email_queue", cfg.RabbitMQ.Queue)
	assert.Equal(t, 465, cfg.Email.SMTP.Port)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_RATE_LIMIT", "0.5")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("SESSION_INITIAL_USER", "u2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.Equal(t, 0.5, cfg.Gemini.RateLimit)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "u2", cfg.Session.InitialUser)
}

func TestLoadConfigInvalidValue(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-number")

	_, err := LoadConfig()
	assert.Error(t, err)
}
