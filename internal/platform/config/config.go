// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"stock_chart/internal/platform/externalapi/quandl"
)

// Config holds all settings of the chart service.
type Config struct {
	HTTPAddr  string
	LogFormat string // "text" or "json"
	ValueUnit string // currency unit appended to the y-axis label, e.g. "EUR"
	Quandl    quandl.Config
}

// LoadDotEnv reads variables from the given .env files into the process environment.
// A missing file is not an error.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Info(".env not found; using system environment variables", "file", f)
				continue
			}
			slog.Warn("failed to load .env", "file", f, "error", err)
		}
	}
}

// New returns a viper instance bound to the environment with defaults applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("log_format", "text")
	v.SetDefault("chart_value_unit", "")
	v.SetDefault("quandl_api_key", "")
	v.SetDefault("quandl_base_url", quandl.DefaultBaseURL)
	v.SetDefault("quandl_timeout", quandl.DefaultTimeout)
	v.SetDefault("quandl_rate_per_sec", 0.0)
	v.SetDefault("quandl_burst", 1)
	return v
}

// Load reads Config from v. A nil v uses New().
func Load(v *viper.Viper) Config {
	if v == nil {
		v = New()
	}
	timeout := v.GetDuration("quandl_timeout")
	if timeout <= 0 {
		timeout = quandl.DefaultTimeout
	}
	return Config{
		HTTPAddr:  v.GetString("http_addr"),
		LogFormat: strings.ToLower(v.GetString("log_format")),
		ValueUnit: v.GetString("chart_value_unit"),
		Quandl: quandl.Config{
			APIKey:        v.GetString("quandl_api_key"),
			BaseURL:       v.GetString("quandl_base_url"),
			Timeout:       timeout,
			RatePerSecond: v.GetFloat64("quandl_rate_per_sec"),
			Burst:         v.GetInt("quandl_burst"),
		},
	}
}
