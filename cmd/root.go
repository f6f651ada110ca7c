package cmd

import (
	"fmt"
	"os"

	"store/internal/config"
	"store/internal/database"
	"store/internal/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "store",
	Short:         "E-commerce store backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before the environment")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
	_ = viper.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the logger.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(viper.GetViper(), envFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat).With().Str("app", cfg.AppName).Logger()
	return cfg, log, nil
}

func openDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	return database.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
}
