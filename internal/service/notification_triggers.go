package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mkrall/pennywise/backend/internal/model"
	"github.com/mkrall/pennywise/backend/internal/store"
)

const reminderPageSize = 200

// NotificationTrigger handles creating notifications based on recurring
// transaction events. Failures are logged and swallowed; a notification is
// never worth failing the operation that triggered it.
type NotificationTrigger struct {
	store store.Store
}

func NewNotificationTrigger(store store.Store) *NotificationTrigger {
	return &NotificationTrigger{store: store}
}

// RecurringExpenseEnded notifies the owner that an expense template reached
// its expiry and was deactivated.
// Deduplication: one notice per template per end date.
func (t *NotificationTrigger) RecurringExpenseEnded(ctx context.Context, tmpl *model.ExpenseTemplate) {
	endDate := model.DateOnly(tmpl.NextOccurrence)
	if tmpl.ExpiryDate != nil {
		endDate = *tmpl.ExpiryDate
	}

	exists, err := t.store.HasNotification(ctx, tmpl.UserID, model.NotificationRecurringEnded, tmpl.ID, endDate)
	if err != nil {
		log.Printf("[NotificationTrigger] Failed to check for existing ended notification: %v", err)
		return
	}
	if exists {
		return
	}

	notification := &model.Notification{
		ID:         uuid.New().String(),
		UserID:     tmpl.UserID,
		Kind:       model.NotificationRecurringEnded,
		TemplateID: tmpl.ID,
		Title:      fmt.Sprintf("Recurring Expense Ended: %s", tmpl.Description),
		Message:    fmt.Sprintf("Your recurring expense %s has passed its end date and will no longer generate transactions.", tmpl.Description),
		Date:       endDate,
		Read:       false,
		CreatedAt:  time.Now().UTC(),
	}

	if err := t.store.CreateNotification(ctx, notification); err != nil {
		log.Printf("[NotificationTrigger] Failed to create recurring ended notification: %v", err)
	}
}

// RecurringIncomeEnded notifies the owner that an income template reached
// its expiry and was deactivated.
func (t *NotificationTrigger) RecurringIncomeEnded(ctx context.Context, tmpl *model.IncomeTemplate) {
	endDate := model.DateOnly(tmpl.NextOccurrence)
	if tmpl.ExpiryDate != nil {
		endDate = *tmpl.ExpiryDate
	}

	exists, err := t.store.HasNotification(ctx, tmpl.UserID, model.NotificationRecurringEnded, tmpl.ID, endDate)
	if err != nil {
		log.Printf("[NotificationTrigger] Failed to check for existing ended notification: %v", err)
		return
	}
	if exists {
		return
	}

	notification := &model.Notification{
		ID:         uuid.New().String(),
		UserID:     tmpl.UserID,
		Kind:       model.NotificationRecurringEnded,
		TemplateID: tmpl.ID,
		Title:      fmt.Sprintf("Recurring Income Ended: %s", tmpl.Source),
		Message:    fmt.Sprintf("Your recurring income %s has passed its end date and will no longer generate transactions.", tmpl.Source),
		Date:       endDate,
		Read:       false,
		CreatedAt:  time.Now().UTC(),
	}

	if err := t.store.CreateNotification(ctx, notification); err != nil {
		log.Printf("[NotificationTrigger] Failed to create recurring ended notification: %v", err)
	}
}

// SendBillReminders creates reminders for expense occurrences falling within
// the next leadDays after asOf. Occurrences due on asOf or earlier are the
// sweep's job, not a reminder's.
func (t *NotificationTrigger) SendBillReminders(ctx context.Context, asOf time.Time, leadDays int) {
	if leadDays <= 0 {
		return
	}
	asOf = model.DateOnly(asOf)
	cutoff := asOf.AddDate(0, 0, leadDays)

	pageToken := ""
	for {
		tmpls, nextToken, err := t.store.ListDueExpenseTemplates(ctx, cutoff, reminderPageSize, pageToken)
		if err != nil {
			log.Printf("[NotificationTrigger] Failed to list upcoming expense templates: %v", err)
			return
		}

		for _, tmpl := range tmpls {
			next := model.DateOnly(tmpl.NextOccurrence)
			if !next.After(asOf) {
				continue
			}
			// An occurrence past the expiry will never fire.
			if tmpl.ExpiryDate != nil && next.After(*tmpl.ExpiryDate) {
				continue
			}
			t.billReminder(ctx, tmpl, next)
		}

		if nextToken == "" {
			break
		}
		pageToken = nextToken
	}
}

// billReminder creates one reminder for an upcoming occurrence.
// Deduplication: one reminder per template per occurrence date.
func (t *NotificationTrigger) billReminder(ctx context.Context, tmpl *model.ExpenseTemplate, occurrence time.Time) {
	exists, err := t.store.HasNotification(ctx, tmpl.UserID, model.NotificationBillReminder, tmpl.ID, occurrence)
	if err != nil {
		log.Printf("[NotificationTrigger] Failed to check for existing bill reminder: %v", err)
		return
	}
	if exists {
		return
	}

	notification := &model.Notification{
		ID:         uuid.New().String(),
		UserID:     tmpl.UserID,
		Kind:       model.NotificationBillReminder,
		TemplateID: tmpl.ID,
		Title:      fmt.Sprintf("Upcoming Bill: %s", tmpl.Description),
		Message:    fmt.Sprintf("Your %s payment of $%.2f is due on %s.", tmpl.Description, tmpl.Amount, occurrence.Format("Jan 2")),
		Date:       occurrence,
		Read:       false,
		CreatedAt:  time.Now().UTC(),
	}

	if err := t.store.CreateNotification(ctx, notification); err != nil {
		log.Printf("[NotificationTrigger] Failed to create bill reminder notification: %v", err)
	}
}
