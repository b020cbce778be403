package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tripmates/trip_planner_app/internal/platform/config"
	"github.com/tripmates/trip_planner_app/internal/platform/events"
)

// Audit worker: consumes expense events from the broker and writes them to
// the structured log, giving every room an append-only activity trail
// independent of the API process.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("Starting expense event worker")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL must be set for the worker")
		os.Exit(1)
	}

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer client.Close()

	// Graceful shutdown on SIGINT/SIGTERM; in-flight deliveries are acked
	// or requeued by the consumer loop before it returns.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = client.ConsumeExpenseEvents(ctx, func(msg *events.ExpenseEventMessage) error {
		logger.Info("Expense activity",
			slog.String("action", msg.Action),
			slog.String("expense_id", msg.ExpenseID),
			slog.String("room_id", msg.RoomID),
			slog.Time("occurred_at", msg.Timestamp))
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Event consumption failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
