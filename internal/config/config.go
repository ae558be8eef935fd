// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Schiphol  SchipholConfig
	FlightAPI FlightAPIConfig
	Airports  AirportsConfig
	Cache     CacheConfig
	Fetch     FetchConfig
	Logging   LoggingConfig
	App       AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

// SchipholConfig holds the primary arrivals feed credentials and origin.
// Missing credentials are not a load error; the orchestrator rejects
// requests with a degraded 500 instead, so the service can still start
// and serve its health endpoint.
type SchipholConfig struct {
	AppID   string `env:"SCHIPHOL_APP_ID"`
	AppKey  string `env:"SCHIPHOL_APP_KEY"`
	BaseURL string `env:"SCHIPHOL_BASE_URL" envDefault:"https://api.schiphol.nl"`
}

// FlightAPIConfig holds the aggregator feed credentials and origin. The
// same access key authenticates the airport metadata lookups.
type FlightAPIConfig struct {
	APIKey  string `env:"FLIGHTDATA_API_KEY"`
	BaseURL string `env:"FLIGHTDATA_BASE_URL" envDefault:"https://api.aviationstack.com/v1"`
}

// AirportsConfig holds the metadata resolver settings.
type AirportsConfig struct {
	DatasetURL string        `env:"AIRPORTS_DATASET_URL" envDefault:"https://davidmegginson.github.io/ourairports-data/airports.csv"`
	CallBudget int           `env:"AIRPORTS_CALL_BUDGET" envDefault:"90"`
	TableTTL   time.Duration `env:"AIRPORTS_TABLE_TTL" envDefault:"24h"`
}

// CacheConfig holds the response cache TTLs.
type CacheConfig struct {
	ArrivalsTTL time.Duration `env:"CACHE_ARRIVALS_TTL" envDefault:"15m"`
	LiveTTL     time.Duration `env:"CACHE_LIVE_TTL" envDefault:"5m"`
}

// FetchConfig tunes the paginate loop and the home airport context.
type FetchConfig struct {
	HomeAirport     string  `env:"HOME_AIRPORT" envDefault:"AMS"`
	Timezone        string  `env:"HOME_TIMEZONE" envDefault:"Europe/Amsterdam"`
	MaxPages        int     `env:"FETCH_MAX_PAGES" envDefault:"200"`
	ArrivalsPerHour int     `env:"FETCH_ARRIVALS_PER_HOUR" envDefault:"40"`
	PageSize        int     `env:"FETCH_PAGE_SIZE" envDefault:"20"`
	RateLimit       float64 `env:"FETCH_RATE_LIMIT" envDefault:"5"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	if cfg.Cache.ArrivalsTTL <= 0 {
		return fmt.Errorf("CACHE_ARRIVALS_TTL must be positive")
	}
	if cfg.Cache.LiveTTL <= 0 {
		return fmt.Errorf("CACHE_LIVE_TTL must be positive")
	}
	if cfg.Airports.CallBudget < 0 {
		return fmt.Errorf("AIRPORTS_CALL_BUDGET must not be negative")
	}
	if cfg.Airports.TableTTL <= 0 {
		return fmt.Errorf("AIRPORTS_TABLE_TTL must be positive")
	}

	if len(cfg.Fetch.HomeAirport) != 3 {
		return fmt.Errorf("HOME_AIRPORT must be a 3-letter IATA code, got %q", cfg.Fetch.HomeAirport)
	}
	if cfg.Fetch.MaxPages < 1 {
		return fmt.Errorf("FETCH_MAX_PAGES must be at least 1")
	}
	if cfg.Fetch.RateLimit <= 0 {
		return fmt.Errorf("FETCH_RATE_LIMIT must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
