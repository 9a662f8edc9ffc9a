package store

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/mkrall/pennywise/backend/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// Store defines the interface for all persistence operations used by the
// services and the recurring engine.
//
// Lookup failures and cross-owner lookups both surface as model.ErrNotFound.
// The conditional operations (RecordExpenseOccurrence, RecordIncomeOccurrence,
// DeactivateExpenseTemplate, DeactivateIncomeTemplate) take the NextOccurrence
// value the caller read and fail with model.ErrStaleTemplate when the stored
// value has moved since; this is the per-template claim that keeps concurrent
// sweeps from generating twice.
type Store interface {
	// Expense template operations
	CreateExpenseTemplate(ctx context.Context, tmpl *model.ExpenseTemplate) error
	GetExpenseTemplate(ctx context.Context, templateID string) (*model.ExpenseTemplate, error)
	UpdateExpenseTemplate(ctx context.Context, tmpl *model.ExpenseTemplate) error
	DeleteExpenseTemplate(ctx context.Context, templateID string) error
	ListExpenseTemplates(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.ExpenseTemplate, string, error)
	// ListDueExpenseTemplates returns active templates with
	// NextOccurrence <= asOf across all owners. Iteration order is stable
	// per backend but otherwise unspecified; a page may hold fewer than
	// pageSize items while the next token is still non-empty.
	ListDueExpenseTemplates(ctx context.Context, asOf time.Time, pageSize int, pageToken string) ([]*model.ExpenseTemplate, string, error)
	// RecordExpenseOccurrence atomically inserts rec and writes tmpl's new
	// NextOccurrence/Active, conditional on the stored NextOccurrence still
	// equaling expectedNext. Neither write happens on a failed claim.
	RecordExpenseOccurrence(ctx context.Context, tmpl *model.ExpenseTemplate, expectedNext time.Time, rec *model.Expense) error
	// DeactivateExpenseTemplate flips Active to false without generating,
	// conditional on expectedNext. Used when a template outlived its expiry.
	DeactivateExpenseTemplate(ctx context.Context, templateID string, expectedNext time.Time) error

	// Income template operations
	CreateIncomeTemplate(ctx context.Context, tmpl *model.IncomeTemplate) error
	GetIncomeTemplate(ctx context.Context, templateID string) (*model.IncomeTemplate, error)
	UpdateIncomeTemplate(ctx context.Context, tmpl *model.IncomeTemplate) error
	DeleteIncomeTemplate(ctx context.Context, templateID string) error
	ListIncomeTemplates(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.IncomeTemplate, string, error)
	ListDueIncomeTemplates(ctx context.Context, asOf time.Time, pageSize int, pageToken string) ([]*model.IncomeTemplate, string, error)
	RecordIncomeOccurrence(ctx context.Context, tmpl *model.IncomeTemplate, expectedNext time.Time, rec *model.Income) error
	DeactivateIncomeTemplate(ctx context.Context, templateID string, expectedNext time.Time) error

	// Expense record operations
	CreateExpense(ctx context.Context, expense *model.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*model.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
	ListExpenses(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Expense, string, error)

	// Income record operations
	CreateIncome(ctx context.Context, income *model.Income) error
	GetIncome(ctx context.Context, incomeID string) (*model.Income, error)
	DeleteIncome(ctx context.Context, incomeID string) error
	ListIncomes(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Income, string, error)

	// Budget operations
	CreateBudget(ctx context.Context, budget *model.Budget) error
	GetBudget(ctx context.Context, budgetID string) (*model.Budget, error)
	// GetBudgetByCategoryMonth backs the duplicate pre-check; returns
	// model.ErrNotFound when no budget exists for the triple.
	GetBudgetByCategoryMonth(ctx context.Context, userID, category, month string) (*model.Budget, error)
	UpdateBudget(ctx context.Context, budget *model.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
	ListBudgets(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Budget, string, error)

	// Notification operations
	CreateNotification(ctx context.Context, notification *model.Notification) error
	// HasNotification reports whether a notification with the same user,
	// kind, template and date already exists (write deduplication).
	HasNotification(ctx context.Context, userID, kind, templateID string, date time.Time) (bool, error)
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, pageSize int, pageToken string) ([]*model.Notification, string, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error

	// Batch run operations
	CreateBatchRun(ctx context.Context, run *model.BatchRun) error
	ListBatchRuns(ctx context.Context, limit int) ([]*model.BatchRun, error)
}

// EncodePageToken encodes a document ID into a page token.
func EncodePageToken(docID string) string {
	if docID == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(docID))
}

// DecodePageToken decodes a page token back to a document ID.
func DecodePageToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
