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

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 1, cfg.Worker.Count)
	assert.True(t, cfg.Feed.Enabled)
	assert.Equal(t, "embedded", cfg.Feed.Source)
	assert.Equal(t, 5*time.Minute, cfg.Feed.PollInterval)
	assert.Equal(t, "@every 1m", cfg.Feed.ExpirySchedule)
	assert.Empty(t, cfg.Catalog.Path)
	assert.Equal(t, 3, cfg.API.SuggestLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FEED_SOURCE", "https://example.com/alerts.json")
	t.Setenv("FEED_POLL_INTERVAL", "30s")
	t.Setenv("CATALOG_PATH", "/etc/weather/catalog.json")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("API_SUGGEST_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://example.com/alerts.json", cfg.Feed.Source)
	assert.Equal(t, 30*time.Second, cfg.Feed.PollInterval)
	assert.Equal(t, "/etc/weather/catalog.json", cfg.Catalog.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 5, cfg.API.SuggestLimit)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("FEED_ENABLED", "maybe")
	t.Setenv("FEED_POLL_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Feed.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Feed.PollInterval)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{"port too high", map[string]string{"SERVER_PORT": "70000"}, "invalid server port"},
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}, "invalid log level"},
		{"log format", map[string]string{"LOG_FORMAT": "xml"}, "invalid log format"},
		{"worker count", map[string]string{"WORKER_COUNT": "0"}, "worker count"},
		{"poll interval", map[string]string{"FEED_POLL_INTERVAL": "10ms"}, "poll interval"},
		{"expiry schedule", map[string]string{"FEED_EXPIRY_SCHEDULE": "every minute"}, "invalid expiry schedule"},
		{"rate limit", map[string]string{"API_RATE_LIMIT": "0"}, "rate limit"},
		{"suggest limit", map[string]string{"API_SUGGEST_LIMIT": "-1"}, "suggestion limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad_DisabledFeedSkipsFeedValidation(t *testing.T) {
	t.Setenv("FEED_ENABLED", "false")
	t.Setenv("FEED_POLL_INTERVAL", "1ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Feed.Enabled)
}

func TestLoad_ExpirySweepOff(t *testing.T) {
	t.Setenv("FEED_EXPIRY_SCHEDULE", "off")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Feed.ExpirySchedule)
}
