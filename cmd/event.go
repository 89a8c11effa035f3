package cmd

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/frahmantamala/portfolio/internal"
	"github.com/frahmantamala/portfolio/internal/core/events"
	"github.com/frahmantamala/portfolio/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Inspect budget event types and publish test events, optionally forwarding them to AMQP`,
}

var listEventTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List budget event types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range events.BudgetEventTypes {
			fmt.Println(t)
		}
	},
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test budget event",
	Long:  `Publish a budget event to the in-process bus, and to the configured AMQP exchange with --forward`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(cmd.Context(), args[0])
	},
}

var (
	eventPeriodID int64
	eventEntityID int64
	eventForward  bool
)

func publishTestEvent(ctx context.Context, eventType string) error {
	if !slices.Contains(events.BudgetEventTypes, eventType) {
		return fmt.Errorf("unknown event type %q, see 'event types'", eventType)
	}

	log := logger.LoggerWrapper()
	eventBus := events.NewEventBus(log)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		log.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	if eventForward {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		if cfg.Messaging.AMQPURL == "" {
			return fmt.Errorf("--forward needs messaging.amqp_url to be configured")
		}
		forwarder, err := events.DialAMQPForwarder(cfg.Messaging.AMQPURL, cfg.Messaging.AMQPExchange, log)
		if err != nil {
			return err
		}
		defer forwarder.Close()
		eventBus.Subscribe(eventType, forwarder.Handle)
	}

	event := events.NewBudgetChangedEvent(eventType, eventPeriodID, eventEntityID)
	log.Info("publishing test event", "event_type", eventType, "event_id", event.EventID())

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := internal.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := eventBus.PublishSync(ctx, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Info("test event published successfully")
	return nil
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventPeriodID, "period-id", 1, "budget period id carried by the event")
	publishEventCmd.Flags().Int64Var(&eventEntityID, "entity-id", 1, "category or transaction id carried by the event")
	publishEventCmd.Flags().BoolVar(&eventForward, "forward", false, "also forward the event to the configured AMQP exchange")

	eventCmd.AddCommand(listEventTypesCmd)
	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
