package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mkrall/pennywise/backend/internal/model"
	"github.com/mkrall/pennywise/backend/internal/recurrence"
	"github.com/mkrall/pennywise/backend/internal/store"
)

// RecurringProcessor generates expense and income records from due templates
// and advances each template's schedule. One sweep covers every owner; it is
// a system-wide pass, not a per-user operation.
type RecurringProcessor struct {
	store    store.Store
	triggers *NotificationTrigger
	workers  int
	pageSize int
}

// NewRecurringProcessor creates a processor. triggers may be nil to disable
// notifications. workers bounds per-page concurrency; pageSize bounds how
// many due templates are listed per store round trip.
func NewRecurringProcessor(store store.Store, triggers *NotificationTrigger, workers, pageSize int) *RecurringProcessor {
	if workers < 1 {
		workers = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}
	return &RecurringProcessor{
		store:    store,
		triggers: triggers,
		workers:  workers,
		pageSize: pageSize,
	}
}

type sweepOutcome int

const (
	outcomeSkipped sweepOutcome = iota
	outcomeCreated
	outcomeExpired
)

type sweepTotals struct {
	created int
	expired int
	failed  int
	skipped int
}

// ProcessAll sweeps both template collections as of the given date. A
// failure on one template is logged and counted, never aborts the batch;
// the failed template stays due and is retried on the next run. Only a
// store-level listing failure surfaces as an error.
func (p *RecurringProcessor) ProcessAll(ctx context.Context, asOf time.Time) (*model.BatchResult, error) {
	asOf = model.DateOnly(asOf)

	expenses, err := p.sweepExpenseTemplates(ctx, asOf)
	if err != nil {
		return nil, err
	}
	incomes, err := p.sweepIncomeTemplates(ctx, asOf)
	if err != nil {
		return nil, err
	}

	result := &model.BatchResult{
		ExpensesCreated: expenses.created,
		IncomesCreated:  incomes.created,
		Expired:         expenses.expired + incomes.expired,
		Failed:          expenses.failed + incomes.failed,
	}
	result.TotalProcessed = result.ExpensesCreated + result.IncomesCreated + result.Expired + result.Failed

	log.Printf("[RecurringProcessor] completed asOf=%s: expenses=%d incomes=%d expired=%d skipped=%d errors=%d",
		asOf.Format("2006-01-02"), result.ExpensesCreated, result.IncomesCreated,
		result.Expired, expenses.skipped+incomes.skipped, result.Failed)

	return result, nil
}

func (p *RecurringProcessor) sweepExpenseTemplates(ctx context.Context, asOf time.Time) (sweepTotals, error) {
	var totals sweepTotals

	pageToken := ""
	for {
		if err := ctx.Err(); err != nil {
			return totals, err
		}

		tmpls, nextToken, err := p.store.ListDueExpenseTemplates(ctx, asOf, p.pageSize, pageToken)
		if err != nil {
			return totals, fmt.Errorf("failed to list due expense templates: %w", err)
		}

		outcomes := make([]sweepOutcome, len(tmpls))
		failures := make([]bool, len(tmpls))
		var g errgroup.Group
		g.SetLimit(p.workers)
		for i, tmpl := range tmpls {
			i, tmpl := i, tmpl
			g.Go(func() error {
				outcome, procErr := p.processExpenseTemplate(ctx, tmpl, asOf)
				if procErr != nil {
					log.Printf("[RecurringProcessor] error processing expense template %s (user %s): %v",
						tmpl.ID, tmpl.UserID, procErr)
					failures[i] = true
					return nil
				}
				outcomes[i] = outcome
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return totals, err
		}
		totals.tally(outcomes, failures)

		if nextToken == "" {
			break
		}
		pageToken = nextToken
	}

	return totals, nil
}

func (p *RecurringProcessor) sweepIncomeTemplates(ctx context.Context, asOf time.Time) (sweepTotals, error) {
	var totals sweepTotals

	pageToken := ""
	for {
		if err := ctx.Err(); err != nil {
			return totals, err
		}

		tmpls, nextToken, err := p.store.ListDueIncomeTemplates(ctx, asOf, p.pageSize, pageToken)
		if err != nil {
			return totals, fmt.Errorf("failed to list due income templates: %w", err)
		}

		outcomes := make([]sweepOutcome, len(tmpls))
		failures := make([]bool, len(tmpls))
		var g errgroup.Group
		g.SetLimit(p.workers)
		for i, tmpl := range tmpls {
			i, tmpl := i, tmpl
			g.Go(func() error {
				outcome, procErr := p.processIncomeTemplate(ctx, tmpl, asOf)
				if procErr != nil {
					log.Printf("[RecurringProcessor] error processing income template %s (user %s): %v",
						tmpl.ID, tmpl.UserID, procErr)
					failures[i] = true
					return nil
				}
				outcomes[i] = outcome
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return totals, err
		}
		totals.tally(outcomes, failures)

		if nextToken == "" {
			break
		}
		pageToken = nextToken
	}

	return totals, nil
}

func (t *sweepTotals) tally(outcomes []sweepOutcome, failures []bool) {
	for i, outcome := range outcomes {
		if failures[i] {
			t.failed++
			continue
		}
		switch outcome {
		case outcomeCreated:
			t.created++
		case outcomeExpired:
			t.expired++
		default:
			t.skipped++
		}
	}
}

// processExpenseTemplate handles one due template: either retires a template
// whose expiry already lapsed, or generates the scheduled record and
// advances the template in a single claim-checked write.
func (p *RecurringProcessor) processExpenseTemplate(ctx context.Context, tmpl *model.ExpenseTemplate, asOf time.Time) (sweepOutcome, error) {
	next := model.DateOnly(tmpl.NextOccurrence)

	// A concurrent pass may have advanced the template between listing and
	// processing.
	if next.After(asOf) {
		return outcomeSkipped, nil
	}

	// Expiry lapsed before this sweep ran, e.g. the processor was down past
	// the template's end. Retire it without generating. An expiry equal to
	// asOf still generates below; only the following candidate is blocked.
	if tmpl.ExpiryDate != nil && tmpl.ExpiryDate.Before(asOf) {
		if err := p.store.DeactivateExpenseTemplate(ctx, tmpl.ID, next); err != nil {
			if errors.Is(err, model.ErrStaleTemplate) {
				return outcomeSkipped, nil
			}
			return outcomeSkipped, fmt.Errorf("failed to deactivate expired expense template: %w", err)
		}
		p.notifyExpenseEnded(ctx, tmpl)
		return outcomeExpired, nil
	}

	candidate, err := recurrence.Next(next, tmpl.Frequency)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("failed to compute next occurrence: %w", err)
	}

	now := time.Now().UTC()
	updated := tmpl.Clone()
	updated.NextOccurrence = candidate
	updated.UpdatedAt = now
	lastOccurrence := updated.ExpiryDate != nil && candidate.After(*updated.ExpiryDate)
	if lastOccurrence {
		updated.Active = false
	}

	// The record is dated for the scheduled occurrence, which may lag
	// behind asOf if the processor has not run for a while.
	rec := &model.Expense{
		ID:          uuid.New().String(),
		UserID:      tmpl.UserID,
		Amount:      tmpl.Amount,
		AmountCents: tmpl.AmountCents,
		Description: tmpl.Description,
		Category:    tmpl.Category,
		Date:        next,
		Generated:   true,
		TemplateID:  tmpl.ID,
		CreatedAt:   now,
	}

	if err := p.store.RecordExpenseOccurrence(ctx, updated, next, rec); err != nil {
		if errors.Is(err, model.ErrStaleTemplate) {
			// Another pass claimed this occurrence first.
			return outcomeSkipped, nil
		}
		return outcomeSkipped, fmt.Errorf("failed to record expense occurrence: %w", err)
	}

	if lastOccurrence {
		p.notifyExpenseEnded(ctx, updated)
	}
	return outcomeCreated, nil
}

func (p *RecurringProcessor) processIncomeTemplate(ctx context.Context, tmpl *model.IncomeTemplate, asOf time.Time) (sweepOutcome, error) {
	next := model.DateOnly(tmpl.NextOccurrence)

	if next.After(asOf) {
		return outcomeSkipped, nil
	}

	if tmpl.ExpiryDate != nil && tmpl.ExpiryDate.Before(asOf) {
		if err := p.store.DeactivateIncomeTemplate(ctx, tmpl.ID, next); err != nil {
			if errors.Is(err, model.ErrStaleTemplate) {
				return outcomeSkipped, nil
			}
			return outcomeSkipped, fmt.Errorf("failed to deactivate expired income template: %w", err)
		}
		p.notifyIncomeEnded(ctx, tmpl)
		return outcomeExpired, nil
	}

	candidate, err := recurrence.Next(next, tmpl.Frequency)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("failed to compute next occurrence: %w", err)
	}

	now := time.Now().UTC()
	updated := tmpl.Clone()
	updated.NextOccurrence = candidate
	updated.UpdatedAt = now
	lastOccurrence := updated.ExpiryDate != nil && candidate.After(*updated.ExpiryDate)
	if lastOccurrence {
		updated.Active = false
	}

	rec := &model.Income{
		ID:          uuid.New().String(),
		UserID:      tmpl.UserID,
		Amount:      tmpl.Amount,
		AmountCents: tmpl.AmountCents,
		Source:      tmpl.Source,
		Date:        next,
		Generated:   true,
		TemplateID:  tmpl.ID,
		CreatedAt:   now,
	}

	if err := p.store.RecordIncomeOccurrence(ctx, updated, next, rec); err != nil {
		if errors.Is(err, model.ErrStaleTemplate) {
			return outcomeSkipped, nil
		}
		return outcomeSkipped, fmt.Errorf("failed to record income occurrence: %w", err)
	}

	if lastOccurrence {
		p.notifyIncomeEnded(ctx, updated)
	}
	return outcomeCreated, nil
}

func (p *RecurringProcessor) notifyExpenseEnded(ctx context.Context, tmpl *model.ExpenseTemplate) {
	if p.triggers == nil {
		return
	}
	p.triggers.RecurringExpenseEnded(ctx, tmpl)
}

func (p *RecurringProcessor) notifyIncomeEnded(ctx context.Context, tmpl *model.IncomeTemplate) {
	if p.triggers == nil {
		return
	}
	p.triggers.RecurringIncomeEnded(ctx, tmpl)
}
