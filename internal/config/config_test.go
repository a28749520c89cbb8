// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://user:pw@localhost:5432/analytics?sslmode=disable")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
		assert.Equal(t, 10*time.Second, cfg.DBTimeout)
		assert.Equal(t, time.Minute, cfg.RateLimitWindow)
		assert.Equal(t, 30, cfg.IngestPerPage)
		assert.Equal(t, 1, cfg.IngestMaxPages)
		assert.Empty(t, cfg.GithubToken)
		assert.Empty(t, cfg.IngestRepos)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://localhost/analytics")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("UPSTREAM_TIMEOUT", "5s")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://dash.example.com")
		t.Setenv("INGEST_REPOS", "octocat/Hello-World,golang/go")
		t.Setenv("INGEST_PER_PAGE", "100")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
		assert.Equal(t, []string{"http://localhost:5173", "https://dash.example.com"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, []string{"octocat/Hello-World", "golang/go"}, cfg.IngestRepos)
		assert.Equal(t, 100, cfg.IngestPerPage)
	})

	t.Run("requires DB_URL", func(t *testing.T) {
		t.Setenv("DB_URL", "")

		_, err := LoadConfig()

		assert.EqualError(t, err, "DB_URL is a required configuration field")
	})

	t.Run("rejects out of range page size", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://localhost/analytics")
		t.Setenv("INGEST_PER_PAGE", "101")

		_, err := LoadConfig()

		assert.Error(t, err)
	})

	t.Run("rejects out of range page ceiling", func(t *testing.T) {
		t.Setenv("DB_URL", "postgres://localhost/analytics")
		t.Setenv("INGEST_MAX_PAGES", "500")

		_, err := LoadConfig()

		assert.EqualError(t, err, "INGEST_MAX_PAGES must be between 1 and 100")
	})
}
