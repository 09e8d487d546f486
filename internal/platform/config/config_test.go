package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_chart/internal/platform/externalapi/quandl"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"HTTP_ADDR", "LOG_FORMAT", "CHART_VALUE_UNIT", "QUANDL_API_KEY",
		"QUANDL_BASE_URL", "QUANDL_TIMEOUT", "QUANDL_RATE_PER_SEC", "QUANDL_BURST",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg := Load(nil)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.ValueUnit)
	assert.Equal(t, quandl.Config{
		BaseURL: quandl.DefaultBaseURL,
		Timeout: quandl.DefaultTimeout,
		Burst:   1,
	}, cfg.Quandl)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("CHART_VALUE_UNIT", "EUR")
	t.Setenv("QUANDL_API_KEY", "secret")
	t.Setenv("QUANDL_BASE_URL", "http://localhost:1234/datasets/FSE")
	t.Setenv("QUANDL_TIMEOUT", "2s")
	t.Setenv("QUANDL_RATE_PER_SEC", "2.5")
	t.Setenv("QUANDL_BURST", "3")

	cfg := Load(New())

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "EUR", cfg.ValueUnit)
	assert.Equal(t, quandl.Config{
		APIKey:        "secret",
		BaseURL:       "http://localhost:1234/datasets/FSE",
		Timeout:       2 * time.Second,
		RatePerSecond: 2.5,
		Burst:         3,
	}, cfg.Quandl)
}

func TestLoad_NonPositiveTimeout(t *testing.T) {
	t.Setenv("QUANDL_TIMEOUT", "0s")

	cfg := Load(nil)

	assert.Equal(t, quandl.DefaultTimeout, cfg.Quandl.Timeout)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CHART_VALUE_UNIT=CHF\n"), 0o600))

	t.Setenv("CHART_VALUE_UNIT", "")
	require.NoError(t, os.Unsetenv("CHART_VALUE_UNIT"))

	LoadDotEnv(filepath.Join(dir, "missing.env"), path)

	assert.Equal(t, "CHF", os.Getenv("CHART_VALUE_UNIT"))
	assert.Equal(t, "CHF", Load(nil).ValueUnit)
}
