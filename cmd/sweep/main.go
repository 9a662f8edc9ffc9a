package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkrall/pennywise/backend/internal/config"
	"github.com/mkrall/pennywise/backend/internal/scheduler"
	"github.com/mkrall/pennywise/backend/internal/service"
	"github.com/mkrall/pennywise/backend/internal/store"
)

func main() {
	asOfFlag := flag.String("as-of", "", "process templates as of this date (2006-01-02), defaults to today")
	flag.Parse()

	asOf := time.Now().UTC()
	if *asOfFlag != "" {
		parsed, err := time.Parse("2006-01-02", *asOfFlag)
		if err != nil {
			log.Fatalf("Invalid -as-of date %q: %v", *asOfFlag, err)
		}
		asOf = parsed
	}

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	st, cleanup, err := store.Open(ctx, cfg.StoreBackend, cfg.ProjectID, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}
	defer cleanup()

	triggers := service.NewNotificationTrigger(st)
	processor := service.NewRecurringProcessor(st, triggers, cfg.WorkerCount, cfg.PageSize)
	sched := scheduler.New(processor, st, nil, triggers,
		cfg.ProcessInterval, cfg.ReminderLeadDays, false)

	run, err := sched.RunOnce(ctx, asOf)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	log.Printf("Sweep %s complete: expenses=%d incomes=%d expired=%d failed=%d total=%d",
		run.AsOf.Format("2006-01-02"), run.ExpensesCreated, run.IncomesCreated,
		run.Expired, run.Failed, run.TotalProcessed)
}
