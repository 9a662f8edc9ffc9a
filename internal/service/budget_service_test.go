package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkrall/pennywise/backend/internal/model"
	"github.com/mkrall/pennywise/backend/internal/store"
)

func storedBudget(userID string) *model.Budget {
	return &model.Budget{
		ID:          "budget-1",
		UserID:      userID,
		Category:    "food",
		Month:       "2025-03",
		Amount:      500,
		AmountCents: 50000,
		CreatedAt:   date(2025, time.February, 20),
		UpdatedAt:   date(2025, time.February, 20),
	}
}

func TestBudgetServiceCreateBudget(t *testing.T) {
	validInput := BudgetInput{
		UserID:   "user-1",
		Category: "food",
		Month:    "2025-03",
		Amount:   500,
	}

	tests := []struct {
		name      string
		input     BudgetInput
		setupMock func(m *store.MockStore)
		errIs     error
		validate  func(t *testing.T, budget *model.Budget)
	}{
		{
			name:  "creates budget",
			input: validInput,
			setupMock: func(m *store.MockStore) {
				m.EXPECT().GetBudgetByCategoryMonth(gomock.Any(), "user-1", "food", "2025-03").
					Return(nil, model.ErrNotFound)
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, budget *model.Budget) {
				assert.NotEmpty(t, budget.ID)
				assert.Equal(t, "food", budget.Category)
				assert.Equal(t, "2025-03", budget.Month)
				assert.Equal(t, int64(50000), budget.AmountCents)
			},
		},
		{
			name:  "duplicate category and month conflicts",
			input: validInput,
			setupMock: func(m *store.MockStore) {
				m.EXPECT().GetBudgetByCategoryMonth(gomock.Any(), "user-1", "food", "2025-03").
					Return(storedBudget("user-1"), nil)
			},
			errIs: model.ErrConflict,
		},
		{
			name:  "racing create surfaces store conflict",
			input: validInput,
			setupMock: func(m *store.MockStore) {
				m.EXPECT().GetBudgetByCategoryMonth(gomock.Any(), "user-1", "food", "2025-03").
					Return(nil, model.ErrNotFound)
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(model.ErrConflict)
			},
			errIs: model.ErrConflict,
		},
		{
			name: "rejects malformed month",
			input: BudgetInput{
				UserID:   "user-1",
				Category: "food",
				Month:    "March 2025",
				Amount:   500,
			},
			errIs: model.ErrInvalidInput,
		},
		{
			name: "rejects non-positive amount",
			input: BudgetInput{
				UserID:   "user-1",
				Category: "food",
				Month:    "2025-03",
				Amount:   0,
			},
			errIs: model.ErrInvalidInput,
		},
		{
			name: "rejects blank category",
			input: BudgetInput{
				UserID: "user-1",
				Month:  "2025-03",
				Amount: 500,
			},
			errIs: model.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := store.NewMockStore(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(mockStore)
			}
			svc := NewBudgetService(mockStore)

			budget, err := svc.CreateBudget(context.Background(), tt.input)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, budget)
			}
		})
	}
}

func TestBudgetServiceUpdateBudget(t *testing.T) {
	t.Run("amount change skips uniqueness check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := store.NewMockStore(ctrl)
		mockStore.EXPECT().GetBudget(gomock.Any(), "budget-1").Return(storedBudget("user-1"), nil)

		var updated *model.Budget
		mockStore.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, budget *model.Budget) error {
				updated = budget
				return nil
			})

		svc := NewBudgetService(mockStore)
		_, err := svc.UpdateBudget(context.Background(), "user-1", "budget-1", BudgetUpdate{
			Amount: floatPtr(750),
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, 750.0, updated.Amount)
		assert.Equal(t, int64(75000), updated.AmountCents)
		assert.Equal(t, "food", updated.Category)
	})

	t.Run("moving to an occupied month conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		occupant := storedBudget("user-1")
		occupant.ID = "budget-2"
		occupant.Month = "2025-04"

		mockStore := store.NewMockStore(ctrl)
		mockStore.EXPECT().GetBudget(gomock.Any(), "budget-1").Return(storedBudget("user-1"), nil)
		mockStore.EXPECT().GetBudgetByCategoryMonth(gomock.Any(), "user-1", "food", "2025-04").
			Return(occupant, nil)

		svc := NewBudgetService(mockStore)
		_, err := svc.UpdateBudget(context.Background(), "user-1", "budget-1", BudgetUpdate{
			Month: stringPtr("2025-04"),
		})
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("rekey to a free month succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := store.NewMockStore(ctrl)
		mockStore.EXPECT().GetBudget(gomock.Any(), "budget-1").Return(storedBudget("user-1"), nil)
		mockStore.EXPECT().GetBudgetByCategoryMonth(gomock.Any(), "user-1", "food", "2025-04").
			Return(nil, model.ErrNotFound)
		mockStore.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(nil)

		svc := NewBudgetService(mockStore)
		budget, err := svc.UpdateBudget(context.Background(), "user-1", "budget-1", BudgetUpdate{
			Month: stringPtr("2025-04"),
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-04", budget.Month)
	})

	t.Run("foreign budget is not updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := store.NewMockStore(ctrl)
		mockStore.EXPECT().GetBudget(gomock.Any(), "budget-1").Return(storedBudget("someone-else"), nil)

		svc := NewBudgetService(mockStore)
		_, err := svc.UpdateBudget(context.Background(), "user-1", "budget-1", BudgetUpdate{
			Amount: floatPtr(750),
		})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestBudgetServiceDeleteBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	svc := NewBudgetService(mockStore)

	t.Run("deletes owned budget", func(t *testing.T) {
		mockStore.EXPECT().GetBudget(gomock.Any(), "budget-1").Return(storedBudget("user-1"), nil)
		mockStore.EXPECT().DeleteBudget(gomock.Any(), "budget-1").Return(nil)

		assert.NoError(t, svc.DeleteBudget(context.Background(), "user-1", "budget-1"))
	})

	t.Run("foreign budget reads as not found", func(t *testing.T) {
		mockStore.EXPECT().GetBudget(gomock.Any(), "budget-1").Return(storedBudget("someone-else"), nil)

		err := svc.DeleteBudget(context.Background(), "user-1", "budget-1")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
