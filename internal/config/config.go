package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is loaded env-first; a local .env file is honoured when present.
// DatabaseDSN empty means the service runs on the in-memory store, which is
// what the test wiring uses.
type Config struct {
	HTTPAddr           string `mapstructure:"HTTP_ADDR" validate:"required"`
	DatabaseDSN        string `mapstructure:"DATABASE_DSN"`
	MigrationsDir      string `mapstructure:"MIGRATIONS_DIR"`
	BankPrefix         string `mapstructure:"BANK_PREFIX" validate:"required,len=7,numeric"`
	UserServiceURL     string `mapstructure:"USER_SERVICE_URL" validate:"required,url"`
	CardServiceURL     string `mapstructure:"CARD_SERVICE_URL" validate:"required,url"`
	DestinationEmail   string `mapstructure:"DESTINATION_EMAIL" validate:"required"`
	NotifyMaxRetries   int    `mapstructure:"NOTIFY_MAX_RETRIES" validate:"min=0"`
	AccountNumberTries int    `mapstructure:"ACCOUNT_NUMBER_TRIES" validate:"min=1"`
}

func Load() (Config, error) {
	// A missing .env file is fine; the system environment wins anyway.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8082")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("BANK_PREFIX", "1110001")
	v.SetDefault("USER_SERVICE_URL", "http://localhost:8081")
	v.SetDefault("CARD_SERVICE_URL", "http://localhost:8083")
	v.SetDefault("DESTINATION_EMAIL", "send-email")
	v.SetDefault("NOTIFY_MAX_RETRIES", 5)
	v.SetDefault("ACCOUNT_NUMBER_TRIES", 100)

	keys := []string{
		"HTTP_ADDR", "DATABASE_DSN", "MIGRATIONS_DIR", "BANK_PREFIX",
		"USER_SERVICE_URL", "CARD_SERVICE_URL",
		"DESTINATION_EMAIL", "NOTIFY_MAX_RETRIES", "ACCOUNT_NUMBER_TRIES",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.DatabaseDSN = strings.TrimSpace(cfg.DatabaseDSN)
	cfg.BankPrefix = strings.TrimSpace(cfg.BankPrefix)

	if err := validator.New().Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
