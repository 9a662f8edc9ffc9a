// Package scheduler drives the recurring-transaction sweep: a periodic
// ticker, an out-of-band trigger for manual runs, and the bookkeeping
// around each run (persisted batch runs, completion events, reminders).
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkrall/pennywise/backend/internal/events"
	"github.com/mkrall/pennywise/backend/internal/model"
	"github.com/mkrall/pennywise/backend/internal/service"
	"github.com/mkrall/pennywise/backend/internal/store"
)

type Scheduler struct {
	processor  *service.RecurringProcessor
	store      store.Store
	publisher  events.Publisher
	triggers   *service.NotificationTrigger
	interval   time.Duration
	leadDays   int
	runOnStart bool

	// mu serializes sweeps so a manual run can never overlap a scheduled
	// one.
	mu       sync.Mutex
	notifyCh chan struct{}
}

// New creates a scheduler. publisher and triggers may be nil to disable
// completion events and reminders respectively.
func New(
	processor *service.RecurringProcessor,
	st store.Store,
	publisher events.Publisher,
	triggers *service.NotificationTrigger,
	interval time.Duration,
	leadDays int,
	runOnStart bool,
) *Scheduler {
	return &Scheduler{
		processor:  processor,
		store:      st,
		publisher:  publisher,
		triggers:   triggers,
		interval:   interval,
		leadDays:   leadDays,
		runOnStart: runOnStart,
		notifyCh:   make(chan struct{}, 1),
	}
}

// Notify triggers an immediate sweep. Non-blocking if one is already pending.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
		// A sweep is already queued, skip
	}
}

// Start runs the scheduling loop until ctx is cancelled. The loop executes
// one sweep at a time: ticks arriving mid-sweep are dropped by the ticker
// and manual triggers queue at most one deep, so runs never overlap.
func (s *Scheduler) Start(ctx context.Context) {
	log.Println("[Scheduler] started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if s.runOnStart {
		s.runSweep(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("[Scheduler] stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		case <-s.notifyCh:
			log.Println("[Scheduler] triggered by notification")
			s.runSweep(ctx)
		}
	}
}

// RunOnce executes a single sweep for asOf, identical in behavior to a
// scheduled tick. The batch run is persisted even when the sweep fails, so
// the failure is visible in the run history.
func (s *Scheduler) RunOnce(ctx context.Context, asOf time.Time) (*model.BatchRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := &model.BatchRun{
		ID:        uuid.New().String(),
		AsOf:      model.DateOnly(asOf),
		StartedAt: time.Now().UTC(),
	}

	result, err := s.processor.ProcessAll(ctx, asOf)
	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.Error = err.Error()
	} else {
		run.ExpensesCreated = result.ExpensesCreated
		run.IncomesCreated = result.IncomesCreated
		run.TotalProcessed = result.TotalProcessed
		run.Expired = result.Expired
		run.Failed = result.Failed
	}

	if storeErr := s.store.CreateBatchRun(ctx, run); storeErr != nil {
		log.Printf("[Scheduler] Failed to persist batch run %s: %v", run.ID, storeErr)
	}

	if err != nil {
		return run, err
	}

	if s.publisher != nil {
		if pubErr := s.publisher.PublishBatchCompleted(ctx, run); pubErr != nil {
			log.Printf("[Scheduler] Failed to publish batch completion: %v", pubErr)
		}
	}

	if s.triggers != nil {
		s.triggers.SendBillReminders(ctx, asOf, s.leadDays)
	}

	return run, nil
}

// runSweep wraps RunOnce for the loop: a failed sweep is logged and the
// loop keeps waiting for the next tick.
func (s *Scheduler) runSweep(ctx context.Context) {
	if _, err := s.RunOnce(ctx, time.Now()); err != nil {
		log.Printf("[Scheduler] sweep failed: %v", err)
	}
}
