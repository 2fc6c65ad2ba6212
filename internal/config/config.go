package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderFinnhub = "finnhub"
	ProviderYahoo   = "yahoo"
	ProviderAlpaca  = "alpaca"
)

// symbols shown on the dashboard when nothing else is configured
var DefaultWatchSymbols = []string{
	"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA",
	"META", "NFLX", "NVDA", "IBM", "INTC",
}

type AlpacaSecrets struct {
	ApiKey       string
	ApiSecret    string
	Endpoint     string
	DataEndpoint string
}

type Config struct {
	Env           string
	Port          int
	PortfolioFile string

	QuoteProvider   string
	FinnhubApiKey   string
	FinnhubBaseURL  string
	Alpaca          AlpacaSecrets
	UpstreamTimeout time.Duration

	CorsAllowOrigins []string

	WatchSymbols  []string
	WatchInterval time.Duration
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:           envStr("STOCKDASH_ENV", "prod"),
		Port:          envInt("PORT", 4000),
		PortfolioFile: envStr("PORTFOLIO_FILE", "./portfolio.json"),

		QuoteProvider:  strings.ToLower(envStr("QUOTE_PROVIDER", ProviderFinnhub)),
		FinnhubApiKey:  envStr("FINNHUB_API_KEY", ""),
		FinnhubBaseURL: envStr("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
		Alpaca: AlpacaSecrets{
			ApiKey:       envStr("APCA_API_KEY_ID", ""),
			ApiSecret:    envStr("APCA_API_SECRET_KEY", ""),
			Endpoint:     envStr("APCA_API_BASE_URL", "https://paper-api.alpaca.markets"),
			DataEndpoint: envStr("APCA_DATA_BASE_URL", "https://data.alpaca.markets"),
		},
		UpstreamTimeout: time.Duration(envInt("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,

		CorsAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),

		WatchSymbols:  envList("WATCH_SYMBOLS", DefaultWatchSymbols),
		WatchInterval: time.Duration(envInt("WATCH_INTERVAL_SECONDS", 60)) * time.Second,
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	switch c.QuoteProvider {
	case ProviderFinnhub:
		if c.FinnhubApiKey == "" {
			errs = append(errs, "FINNHUB_API_KEY is required for the finnhub provider")
		}
	case ProviderAlpaca:
		if c.Alpaca.ApiKey == "" || c.Alpaca.ApiSecret == "" {
			errs = append(errs, "APCA_API_KEY_ID and APCA_API_SECRET_KEY are required for the alpaca provider")
		}
	case ProviderYahoo:
	default:
		errs = append(errs, fmt.Sprintf("unknown QUOTE_PROVIDER %q", c.QuoteProvider))
	}
	if c.PortfolioFile == "" {
		errs = append(errs, "PORTFOLIO_FILE cannot be empty")
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, "UPSTREAM_TIMEOUT_SECONDS must be positive")
	}
	if c.WatchInterval <= 0 {
		errs = append(errs, "WATCH_INTERVAL_SECONDS must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
