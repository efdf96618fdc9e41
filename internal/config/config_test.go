package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ANALYZER_URL", "")
	t.Setenv("ANALYZER_TIMEOUT", "")
	t.Setenv("WORKER_CONCURRENCY", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()

	assert.Equal(t, DefaultAnalyzerURL, cfg.Analyzer.URL)
	assert.Equal(t, time.Duration(0), cfg.Analyzer.Timeout)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ANALYZER_URL", "http://analyzer.local/compare")
	t.Setenv("ANALYZER_TIMEOUT", "45s")
	t.Setenv("WORKER_CONCURRENCY", "7")
	t.Setenv("ENV", "production")

	cfg := Load()

	assert.Equal(t, "http://analyzer.local/compare", cfg.Analyzer.URL)
	assert.Equal(t, 45*time.Second, cfg.Analyzer.Timeout)
	assert.Equal(t, 7, cfg.Worker.Concurrency)
	assert.False(t, cfg.IsDevelopment())
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")

	assert.Equal(t, 2*time.Second, getEnvAsDuration("SESSION_TTL", "2s"))
}

func TestGetEnvAsInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "many")

	assert.Equal(t, 3, getEnvAsInt("WORKER_CONCURRENCY", 3))
}
