// Package config loads the application configuration from the environment and
// an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	AppName         string        `mapstructure:"APP_NAME" validate:"required"`
	AppPort         string        `mapstructure:"APP_PORT" validate:"required"`
	DBDriver        string        `mapstructure:"DB_DRIVER" validate:"required,oneof=sqlite postgres"`
	DatabaseDSN     string        `mapstructure:"DATABASE_DSN" validate:"required"`
	LogLevel        string        `mapstructure:"LOG_LEVEL" validate:"required,oneof=trace debug info warn error"`
	LogFormat       string        `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`
	RabbitMQURL     string        `mapstructure:"RABBITMQ_URL"`
	EventsExchange  string        `mapstructure:"EVENTS_EXCHANGE" validate:"required_with=RabbitMQURL"`
	SeedData        bool          `mapstructure:"SEED_DATA"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "storeApp")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "file:store.db?cache=shared")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_EXCHANGE", "store.events")
	v.SetDefault("SEED_DATA", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
}

// Load reads envFile when it exists, then the process environment, into a validated Config.
// Values already bound on v (for example command-line flags) take precedence.
func Load(v *viper.Viper, envFile string) (*Config, error) {
	if envFile != "" {
		// A missing file is fine; the environment alone is enough.
		_ = godotenv.Load(envFile)
	}

	SetDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
