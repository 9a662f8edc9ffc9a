package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkrall/pennywise/backend/internal/config"
	"github.com/mkrall/pennywise/backend/internal/events"
	"github.com/mkrall/pennywise/backend/internal/scheduler"
	"github.com/mkrall/pennywise/backend/internal/service"
	"github.com/mkrall/pennywise/backend/internal/store"
)

func main() {
	// Load .env for local development; absent in production
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, cleanup, err := store.Open(ctx, cfg.StoreBackend, cfg.ProjectID, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}
	defer cleanup()

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Printf("Failed to connect to AMQP, continuing without batch events: %v", err)
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
			log.Println("AMQP publisher initialized")
		}
	}

	triggers := service.NewNotificationTrigger(st)
	processor := service.NewRecurringProcessor(st, triggers, cfg.WorkerCount, cfg.PageSize)
	sched := scheduler.New(processor, st, publisher, triggers,
		cfg.ProcessInterval, cfg.ReminderLeadDays, cfg.RunOnStart)

	log.Printf("Recurring worker configured: backend=%s interval=%s workers=%d pageSize=%d",
		cfg.StoreBackend, cfg.ProcessInterval, cfg.WorkerCount, cfg.PageSize)

	done := make(chan struct{})
	go func() {
		defer close(done)
		sched.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Shutdown signal received: %s", sig)

	cancel()
	select {
	case <-done:
		log.Println("Recurring worker shutdown complete")
	case <-time.After(30 * time.Second):
		log.Println("Shutdown timeout reached")
	}
}
