package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"store/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Log entity events published by a running server",
	RunE:  runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().String("queue", "store.events.log", "Queue to consume from")
	eventsCmd.Flags().String("binding", "#", "Routing key pattern, for example product.* or *.deleted")
	_ = viper.BindPFlag("EVENTS_QUEUE", eventsCmd.Flags().Lookup("queue"))
	_ = viper.BindPFlag("EVENTS_BINDING", eventsCmd.Flags().Lookup("binding"))
}

func runEvents(_ *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	if cfg.RabbitMQURL == "" {
		return fmt.Errorf("RABBITMQ_URL is required")
	}

	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.EventsExchange}, log)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return client.ConsumeEvents(ctx, viper.GetString("EVENTS_QUEUE"), viper.GetString("EVENTS_BINDING"), func(event rabbitmq.Event) error {
		log.Info().
			Str("event_id", event.ID).
			Str("entity", event.Entity).
			Str("action", event.Action).
			Int64("entity_id", event.EntityID).
			Time("occurred_at", event.OccurredAt).
			Msg("Entity event")
		return nil
	})
}
