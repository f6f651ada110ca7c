package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"store/internal/app"
	"store/internal/database"
	"store/internal/services"
	"store/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("port", "", "Address to listen on, for example :8080")
	serveCmd.Flags().Bool("seed", false, "Populate an empty catalog with sample data")
	_ = viper.BindPFlag("APP_PORT", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("SEED_DATA", serveCmd.Flags().Lookup("seed"))
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	// Entity events are optional; without a broker URL nothing is published.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.EventsExchange}, log)
		if err != nil {
			return err
		}
		defer mqClient.Close()
		events = mqClient
	} else {
		log.Warn().Msg("RABBITMQ_URL is empty, entity events are disabled")
	}

	application := app.New(cfg, db, events, log)

	if cfg.SeedData {
		if err := application.Seed(context.Background()); err != nil {
			return err
		}
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.AppPort).Msg("Starting server")
		serverErr <- application.Fiber.Listen(cfg.AppPort)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")
	if err := application.Fiber.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}
