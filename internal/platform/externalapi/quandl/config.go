// Package quandl provides a client and payload decoder for the Quandl dataset API.
package quandl

import "time"

const (
	// DefaultBaseURL is the dataset endpoint of the Frankfurt Stock Exchange database.
	DefaultBaseURL = "https://www.quandl.com/api/v3/datasets/FSE"
	// DefaultTimeout bounds a single fetch; on expiry the fetch fails without retry.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the Quandl API client.
type Config struct {
	APIKey        string        // API key sent as the api_key query parameter
	BaseURL       string        // Base URL; "<BaseURL>/<datasetID>.json" is requested
	Timeout       time.Duration // HTTP request timeout
	RatePerSecond float64       // Outbound request rate; 0 disables pacing
	Burst         int           // Requests allowed back-to-back
}

// withDefaults fills zero fields with package defaults.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Burst < 1 {
		c.Burst = 1
	}
	return c
}
