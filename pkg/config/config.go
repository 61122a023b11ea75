package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Rate limiting, in ulule/limiter notation (e.g. "100-M").
	RateLimit string

	// Classification pipeline. AMQPURL empty disables the dispatcher; the
	// ledger stays fully functional without it.
	AMQPURL                 string
	ClassifierQueue         string
	ClassifierMinConfidence float64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("CLASSIFIER_QUEUE", "transactions.classify")
	viper.SetDefault("CLASSIFIER_MIN_CONFIDENCE", 0.8)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:             viper.GetString("PGSQL_URL"),
		Port:                    viper.GetString("PORT"),
		IsProduction:            viper.GetBool("IS_PRODUCTION"),
		JWTSecret:               viper.GetString("JWT_SECRET"),
		RateLimit:               viper.GetString("RATE_LIMIT"),
		AMQPURL:                 viper.GetString("AMQP_URL"),
		ClassifierQueue:         viper.GetString("CLASSIFIER_QUEUE"),
		ClassifierMinConfidence: viper.GetFloat64("CLASSIFIER_MIN_CONFIDENCE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Classification dispatch is disabled.")
	}

	return cfg, nil
}
