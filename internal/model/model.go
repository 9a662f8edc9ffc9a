// Package model holds the domain types shared by the store, the services and
// the recurring engine: recurrence templates, the transaction records they
// generate, and the error taxonomy surfaced to callers.
package model

import (
	"fmt"
	"math"
	"time"
)

// Frequency is the cadence of a recurrence template.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// ParseFrequency converts a raw string into a Frequency, rejecting anything
// outside the allowed set.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
	return f, nil
}

// Valid reports whether f is one of the four supported cadences.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// DateOnly normalizes t to midnight UTC. All template dates are stored and
// compared in this form; time-of-day never participates in due checks.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Cents converts a decimal amount to integer cents, rounding half away from
// zero.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ExpenseTemplate defines a recurring expense. The batch processor reads
// NextOccurrence to decide dueness and advances it after each generation;
// AnchorDate and UserID are immutable after creation.
type ExpenseTemplate struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Amount         float64    `json:"amount"`
	AmountCents    int64      `json:"amountCents"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Frequency      Frequency  `json:"frequency"`
	AnchorDate     time.Time  `json:"anchorDate"`
	NextOccurrence time.Time  `json:"nextOccurrence"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Clone returns a deep copy of the template.
func (t *ExpenseTemplate) Clone() *ExpenseTemplate {
	cp := *t
	if t.ExpiryDate != nil {
		d := *t.ExpiryDate
		cp.ExpiryDate = &d
	}
	return &cp
}

// IncomeTemplate defines a recurring income. Same lifecycle as
// ExpenseTemplate; the descriptor is a single Source field.
type IncomeTemplate struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Amount         float64    `json:"amount"`
	AmountCents    int64      `json:"amountCents"`
	Source         string     `json:"source"`
	Frequency      Frequency  `json:"frequency"`
	AnchorDate     time.Time  `json:"anchorDate"`
	NextOccurrence time.Time  `json:"nextOccurrence"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Clone returns a deep copy of the template.
func (t *IncomeTemplate) Clone() *IncomeTemplate {
	cp := *t
	if t.ExpiryDate != nil {
		d := *t.ExpiryDate
		cp.ExpiryDate = &d
	}
	return &cp
}

// Expense is a concrete expense record. Generated ones carry the originating
// template's ID; the reference is left dangling when the template is deleted.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Amount      float64   `json:"amount"`
	AmountCents int64     `json:"amountCents"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Generated   bool      `json:"generated"`
	TemplateID  string    `json:"templateId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a copy of the expense.
func (e *Expense) Clone() *Expense {
	cp := *e
	return &cp
}

// Income is a concrete income record, expense's counterpart.
type Income struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Amount      float64   `json:"amount"`
	AmountCents int64     `json:"amountCents"`
	Source      string    `json:"source"`
	Date        time.Time `json:"date"`
	Generated   bool      `json:"generated"`
	TemplateID  string    `json:"templateId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a copy of the income.
func (i *Income) Clone() *Income {
	cp := *i
	return &cp
}

// Budget caps spending for one category in one month. At most one budget may
// exist per (user, category, month); duplicates surface as ErrConflict.
type Budget struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Category    string    `json:"category"`
	Month       string    `json:"month"` // formatted 2006-01
	Amount      float64   `json:"amount"`
	AmountCents int64     `json:"amountCents"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a copy of the budget.
func (b *Budget) Clone() *Budget {
	cp := *b
	return &cp
}

// Notification kinds written by the engine's best-effort triggers.
const (
	NotificationRecurringEnded = "recurring_ended"
	NotificationBillReminder   = "bill_reminder"
)

// Notification is an in-app message for a user. Deduplicated per
// (user, kind, template, date) via Store.HasNotification.
type Notification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Kind       string    `json:"kind"`
	TemplateID string    `json:"templateId,omitempty"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Date       time.Time `json:"date"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Clone returns a copy of the notification.
func (n *Notification) Clone() *Notification {
	cp := *n
	return &cp
}

// BatchResult aggregates one sweep of the batch processor. TotalProcessed
// counts every due template the sweep acted on: generated, expired, or
// failed.
type BatchResult struct {
	ExpensesCreated int `json:"expensesCreated"`
	IncomesCreated  int `json:"incomesCreated"`
	TotalProcessed  int `json:"totalProcessed"`
	Expired         int `json:"expired"`
	Failed          int `json:"failed"`
}

// BatchRun is the persisted audit record of one sweep.
type BatchRun struct {
	ID              string    `json:"id"`
	AsOf            time.Time `json:"asOf"`
	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	ExpensesCreated int       `json:"expensesCreated"`
	IncomesCreated  int       `json:"incomesCreated"`
	TotalProcessed  int       `json:"totalProcessed"`
	Expired         int       `json:"expired"`
	Failed          int       `json:"failed"`
	Error           string    `json:"error,omitempty"`
}

// Clone returns a copy of the batch run.
func (r *BatchRun) Clone() *BatchRun {
	cp := *r
	return &cp
}
