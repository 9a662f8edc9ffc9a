package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkrall/pennywise/backend/internal/model"
	"github.com/mkrall/pennywise/backend/internal/store"
)

// BudgetService manages monthly per-category spending limits. At most one
// budget may exist per (user, category, month); duplicates surface as a
// typed ErrConflict rather than a generic store failure.
type BudgetService struct {
	store store.Store
}

func NewBudgetService(store store.Store) *BudgetService {
	return &BudgetService{store: store}
}

// BudgetInput carries the caller-controlled fields at creation.
type BudgetInput struct {
	UserID   string
	Category string
	Month    string // formatted 2006-01
	Amount   float64
}

// BudgetUpdate is a partial update; nil fields are left unchanged.
type BudgetUpdate struct {
	Category *string
	Month    *string
	Amount   *float64
}

// CreateBudget validates and persists a new budget.
func (s *BudgetService) CreateBudget(ctx context.Context, input BudgetInput) (*model.Budget, error) {
	if err := validateBudgetFields(input.UserID, input.Category, input.Month, input.Amount); err != nil {
		return nil, err
	}

	// Pre-check for a friendlier error; the store constraint still backs
	// this up when two creates race.
	if _, err := s.store.GetBudgetByCategoryMonth(ctx, input.UserID, input.Category, input.Month); err == nil {
		return nil, fmt.Errorf("budget for %s %s already exists: %w", input.Category, input.Month, model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing budget: %w", err)
	}

	now := time.Now().UTC()
	budget := &model.Budget{
		ID:          uuid.New().String(),
		UserID:      input.UserID,
		Category:    input.Category,
		Month:       input.Month,
		Amount:      input.Amount,
		AmountCents: model.Cents(input.Amount),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return budget, nil
}

// GetBudget returns a budget owned by userID.
func (s *BudgetService) GetBudget(ctx context.Context, userID, budgetID string) (*model.Budget, error) {
	return s.getOwnedBudget(ctx, userID, budgetID)
}

// ListBudgets pages through the budgets owned by userID.
func (s *BudgetService) ListBudgets(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Budget, string, error) {
	if userID == "" {
		return nil, "", fmt.Errorf("user id is required: %w", model.ErrInvalidInput)
	}
	return s.store.ListBudgets(ctx, userID, pageSize, pageToken)
}

// UpdateBudget applies a partial update to an owned budget. Moving a budget
// to another category or month re-checks uniqueness first.
func (s *BudgetService) UpdateBudget(ctx context.Context, userID, budgetID string, update BudgetUpdate) (*model.Budget, error) {
	budget, err := s.getOwnedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if update.Category != nil {
		budget.Category = *update.Category
	}
	if update.Month != nil {
		budget.Month = *update.Month
	}
	if update.Amount != nil {
		budget.Amount = *update.Amount
		budget.AmountCents = model.Cents(*update.Amount)
	}
	if err := validateBudgetFields(budget.UserID, budget.Category, budget.Month, budget.Amount); err != nil {
		return nil, err
	}

	if update.Category != nil || update.Month != nil {
		existing, err := s.store.GetBudgetByCategoryMonth(ctx, budget.UserID, budget.Category, budget.Month)
		if err == nil && existing.ID != budget.ID {
			return nil, fmt.Errorf("budget for %s %s already exists: %w", budget.Category, budget.Month, model.ErrConflict)
		}
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("failed to check for existing budget: %w", err)
		}
	}

	budget.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, nil
}

// DeleteBudget removes an owned budget.
func (s *BudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	if _, err := s.getOwnedBudget(ctx, userID, budgetID); err != nil {
		return err
	}
	if err := s.store.DeleteBudget(ctx, budgetID); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func (s *BudgetService) getOwnedBudget(ctx context.Context, userID, budgetID string) (*model.Budget, error) {
	if userID == "" || budgetID == "" {
		return nil, fmt.Errorf("user id and budget id are required: %w", model.ErrInvalidInput)
	}
	budget, err := s.store.GetBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, fmt.Errorf("budget %s: %w", budgetID, model.ErrNotFound)
	}
	return budget, nil
}

func validateBudgetFields(userID, category, month string, amount float64) error {
	if userID == "" {
		return fmt.Errorf("user id is required: %w", model.ErrInvalidInput)
	}
	if category == "" {
		return fmt.Errorf("category is required: %w", model.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("month %q must be formatted 2006-01: %w", month, model.ErrInvalidInput)
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive: %w", model.ErrInvalidInput)
	}
	return nil
}
