// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	DBURL           string        `mapstructure:"DB_URL"`
	GithubToken     string        `mapstructure:"GITHUB_TOKEN"`
	GithubAPIURL    string        `mapstructure:"GITHUB_API_URL"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR"`
	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	DBTimeout       time.Duration `mapstructure:"DB_TIMEOUT"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitRequests  int           `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow    time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`

	OTLPEndpoint    string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	IngestRepos       []string `mapstructure:"INGEST_REPOS"`
	IngestPerPage     int      `mapstructure:"INGEST_PER_PAGE"`
	IngestMaxPages    int      `mapstructure:"INGEST_MAX_PAGES"`
	IngestConcurrency int      `mapstructure:"INGEST_CONCURRENCY"`
}

var defaults = map[string]any{
	"LOG_LEVEL":                   "info",
	"DB_URL":                      "",
	"GITHUB_TOKEN":                "",
	"GITHUB_API_URL":              "",
	"HTTP_ADDR":                   ":8080",
	"UPSTREAM_TIMEOUT":            "30s",
	"DB_TIMEOUT":                  "10s",
	"REQUEST_TIMEOUT":             "60s",
	"CORS_ALLOWED_ORIGINS":        "",
	"RATE_LIMIT_REQUESTS":         100,
	"RATE_LIMIT_WINDOW":           "1m",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_SERVICE_NAME":           "github-activity-analytics",
	"INGEST_REPOS":                "",
	"INGEST_PER_PAGE":             30,
	"INGEST_MAX_PAGES":            1,
	"INGEST_CONCURRENCY":          4,
}

// LoadConfig reads configuration from an optional .env file and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Every key gets a default so AutomaticEnv picks it up during Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Load from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if file not found

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.CORSAllowedOrigins = compact(cfg.CORSAllowedOrigins)
	cfg.IngestRepos = compact(cfg.IngestRepos)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DBURL == "" {
		return errors.New("DB_URL is a required configuration field")
	}
	if c.UpstreamTimeout <= 0 || c.DBTimeout <= 0 || c.RequestTimeout <= 0 {
		return errors.New("UPSTREAM_TIMEOUT, DB_TIMEOUT and REQUEST_TIMEOUT must be positive durations")
	}
	if c.RateLimitRequests < 0 || c.RateLimitWindow <= 0 {
		return errors.New("RATE_LIMIT_REQUESTS must be >= 0 and RATE_LIMIT_WINDOW positive")
	}
	if c.IngestPerPage < 1 || c.IngestPerPage > 100 {
		return errors.New("INGEST_PER_PAGE must be between 1 and 100")
	}
	if c.IngestMaxPages < 1 || c.IngestMaxPages > 100 {
		return errors.New("INGEST_MAX_PAGES must be between 1 and 100")
	}
	if c.IngestConcurrency < 1 {
		return errors.New("INGEST_CONCURRENCY must be at least 1")
	}
	return nil
}

// compact trims entries of a comma separated list and drops empty ones.
func compact(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
