package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	// TxTimeout bounds every composite database transaction.
	TxTimeout time.Duration
	// EnableLatePenalties switches the flat overdue penalty strategy on.
	EnableLatePenalties bool
	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if
// present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("TX_TIMEOUT", "5s")
	viper.SetDefault("ENABLE_LATE_PENALTIES", false)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.EnableLatePenalties = viper.GetBool("ENABLE_LATE_PENALTIES")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	txTimeoutStr := viper.GetString("TX_TIMEOUT")
	txTimeout, err := time.ParseDuration(txTimeoutStr)
	if err != nil {
		txTimeout = 5 * time.Second
		if txTimeoutStr != "" {
			log.Printf("Warning: Invalid value for TX_TIMEOUT ('%s'). Defaulting to %s.\n", txTimeoutStr, txTimeout)
		}
	}
	cfg.TxTimeout = txTimeout

	return cfg, nil
}
