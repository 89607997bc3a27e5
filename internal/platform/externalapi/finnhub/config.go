// Package finnhub provides a client for the Finnhub company news API.
package finnhub

import (
	"os"
	"time"
)

// Config holds configuration for the Finnhub API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL for the API (e.g., "https://finnhub.io/api/v1")
	Timeout time.Duration // HTTP request timeout
	// Lookback はcompany-newsの取得対象期間です。
	Lookback time.Duration
}

// LoadConfig loads Finnhub configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("FINNHUB_BASE_URL")
	if base == "" {
		base = "https://finnhub.io/api/v1"
	}
	return Config{
		APIKey:   os.Getenv("FINNHUB_API_KEY"),
		BaseURL:  base,
		Timeout:  10 * time.Second,
		Lookback: 7 * 24 * time.Hour,
	}
}
