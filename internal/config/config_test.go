package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Crawler.MaxPagesPerTerm)
	assert.Equal(t, 1000, cfg.Crawler.TotalLimit)
	assert.Equal(t, 5, cfg.Crawler.MaxNoNewPages)
	assert.True(t, cfg.Crawler.FetchDetails)
	assert.Equal(t, time.Second, cfg.Crawler.PoliteDelay)
	assert.Equal(t, "data/processed", cfg.Crawler.OutputDir)
	assert.True(t, cfg.Scraper.HeadlessMode)
	assert.True(t, cfg.Scraper.StealthMode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Tasks.TTL)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("does/not/exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfigFromYAML(t *testing.T) {
	content := `
server:
  port: 9090
crawler:
  terms:
    - data scientist
  max_pages_per_term: 3
  total_limit: 50
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"data scientist"}, cfg.Crawler.Terms)
	assert.Equal(t, 3, cfg.Crawler.MaxPagesPerTerm)
	assert.Equal(t, 50, cfg.Crawler.TotalLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched sections keep their defaults.
	assert.Equal(t, 5, cfg.Crawler.MaxNoNewPages)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("CRAWLER_TERMS", "data engineer, ml engineer")
	t.Setenv("CRAWLER_FETCH_DETAILS", "false")
	t.Setenv("REDIS_URL", "redis://cache:6379")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"data engineer", "ml engineer"}, cfg.Crawler.Terms)
	assert.False(t, cfg.Crawler.FetchDetails)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis://cache:6379", cfg.Redis.URL)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_REDIS_PASSWORD", "hunter2")

	assert.Equal(t, "password: hunter2", expandEnvVars("password: ${TEST_REDIS_PASSWORD}"))
	assert.Equal(t, "password: hunter2", expandEnvVars("password: $TEST_REDIS_PASSWORD"))
	assert.Equal(t, "plain text", expandEnvVars("plain text"))
}
