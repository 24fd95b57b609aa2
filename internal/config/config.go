package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

// Fundamentals provider names accepted by FUNDAMENTALS_PROVIDER.
const (
	ProviderSheet    = "sheet"
	ProviderScreener = "screener"
	ProviderNone     = "none"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	CORS         CORSConfig
	Logging      LoggingConfig
	Refresh      RefreshConfig
	Yahoo        YahooConfig
	Fundamentals FundamentalsConfig
	Holdings     HoldingsConfig
	Display      DisplayConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string        `env:"SERVER_PORT" envDefault:"5001"`
	Host         string        `env:"SERVER_HOST" envDefault:"localhost"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	Addr         string        // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `env:"DB_PATH" envDefault:"./data/portfolio_dashboard.db"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	JSON  bool   `env:"LOG_JSON" envDefault:"false"`
}

// RefreshConfig drives the polling loop.
type RefreshConfig struct {
	Interval     time.Duration `env:"REFRESH_INTERVAL" envDefault:"15s"`
	FetchTimeout time.Duration `env:"REFRESH_FETCH_TIMEOUT" envDefault:"10s"`
	Concurrency  int           `env:"REFRESH_CONCURRENCY" envDefault:"8"`
	MoverCount   int           `env:"TOP_MOVERS_COUNT" envDefault:"5"`
}

// YahooConfig configures the quote source.
type YahooConfig struct {
	BaseURL   string        `env:"YAHOO_BASE_URL" envDefault:"https://query1.finance.yahoo.com"`
	RateLimit int           `env:"YAHOO_RATE_LIMIT" envDefault:"5"`
	Timeout   time.Duration `env:"YAHOO_TIMEOUT" envDefault:"10s"`
}

// FundamentalsConfig selects and configures the fundamentals source.
type FundamentalsConfig struct {
	Provider        string        `env:"FUNDAMENTALS_PROVIDER" envDefault:"sheet"`
	SheetURL        string        `env:"FUNDAMENTALS_SHEET_URL"`
	SheetRowsPath   string        `env:"FUNDAMENTALS_SHEET_ROWS_PATH" envDefault:"$"`
	SheetCacheTTL   time.Duration `env:"FUNDAMENTALS_SHEET_CACHE_TTL" envDefault:"10s"`
	ScreenerBaseURL string        `env:"FUNDAMENTALS_SCREENER_BASE_URL" envDefault:"https://www.screener.in"`
	RateLimit       int           `env:"FUNDAMENTALS_RATE_LIMIT" envDefault:"1"`
}

// HoldingsConfig points at an optional TOML catalogue that replaces the database.
type HoldingsConfig struct {
	File string `env:"HOLDINGS_FILE"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Currency string `env:"DISPLAY_CURRENCY" envDefault:"INR"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidConfig, err)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the refresh loop or the clients cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Refresh.Interval <= 0:
		return fmt.Errorf("%w: REFRESH_INTERVAL must be positive", apperrors.ErrInvalidConfig)
	case c.Refresh.FetchTimeout <= 0:
		return fmt.Errorf("%w: REFRESH_FETCH_TIMEOUT must be positive", apperrors.ErrInvalidConfig)
	case c.Refresh.Concurrency <= 0:
		return fmt.Errorf("%w: REFRESH_CONCURRENCY must be positive", apperrors.ErrInvalidConfig)
	case c.Refresh.MoverCount <= 0:
		return fmt.Errorf("%w: TOP_MOVERS_COUNT: %w", apperrors.ErrInvalidConfig, apperrors.ErrInvalidMoverCount)
	case c.Yahoo.RateLimit <= 0:
		return fmt.Errorf("%w: YAHOO_RATE_LIMIT must be positive", apperrors.ErrInvalidConfig)
	case c.Fundamentals.RateLimit <= 0:
		return fmt.Errorf("%w: FUNDAMENTALS_RATE_LIMIT must be positive", apperrors.ErrInvalidConfig)
	}

	switch c.Fundamentals.Provider {
	case ProviderSheet, ProviderScreener, ProviderNone:
	default:
		return fmt.Errorf("%w: %w %q", apperrors.ErrInvalidConfig, apperrors.ErrUnknownProvider, c.Fundamentals.Provider)
	}

	return nil
}
