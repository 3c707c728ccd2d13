package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// External rate providers
	ExchangeRateAPIURL string
	FixerAPIKey        string
	CurrencyAPIKey     string
	ProviderTimeout    time.Duration

	// Refresh and staleness
	RateRefreshInterval time.Duration
	RateMaxAge          time.Duration

	// Calculation defaults
	DefaultTargetProfitRate float64

	// Request rate limiting, in ulule/limiter format (e.g. "100-M")
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("EXCHANGE_RATE_API_URL", "")
	viper.SetDefault("FIXER_API_KEY", "")
	viper.SetDefault("CURRENCY_API_KEY", "")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("RATE_REFRESH_INTERVAL", "1h")
	viper.SetDefault("RATE_MAX_AGE_MINUTES", 60)
	viper.SetDefault("DEFAULT_TARGET_PROFIT_RATE", 15.0)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.ExchangeRateAPIURL = viper.GetString("EXCHANGE_RATE_API_URL")
	cfg.FixerAPIKey = viper.GetString("FIXER_API_KEY")
	cfg.CurrencyAPIKey = viper.GetString("CURRENCY_API_KEY")

	cfg.ProviderTimeout = viper.GetDuration("PROVIDER_TIMEOUT")
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 10 * time.Second
		log.Println("Warning: Invalid PROVIDER_TIMEOUT. Defaulting to 10s.")
	}

	cfg.RateRefreshInterval = viper.GetDuration("RATE_REFRESH_INTERVAL")
	if cfg.RateRefreshInterval <= 0 {
		cfg.RateRefreshInterval = time.Hour
		log.Println("Warning: Invalid RATE_REFRESH_INTERVAL. Defaulting to 1h.")
	}

	maxAgeMinutes := viper.GetInt("RATE_MAX_AGE_MINUTES")
	if maxAgeMinutes <= 0 {
		maxAgeMinutes = 60
		log.Println("Warning: Invalid RATE_MAX_AGE_MINUTES. Defaulting to 60.")
	}
	cfg.RateMaxAge = time.Duration(maxAgeMinutes) * time.Minute

	cfg.DefaultTargetProfitRate = viper.GetFloat64("DEFAULT_TARGET_PROFIT_RATE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
