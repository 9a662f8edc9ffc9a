package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkrall/pennywise/backend/internal/categorize"
	"github.com/mkrall/pennywise/backend/internal/model"
	"github.com/mkrall/pennywise/backend/internal/store"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func storedExpenseTemplate(userID string) *model.ExpenseTemplate {
	expiry := date(2025, time.December, 31)
	return &model.ExpenseTemplate{
		ID:             "tmpl-1",
		UserID:         userID,
		Amount:         15.99,
		AmountCents:    1599,
		Description:    "Netflix subscription",
		Category:       "entertainment",
		Frequency:      model.FrequencyMonthly,
		AnchorDate:     date(2025, time.January, 15),
		NextOccurrence: date(2025, time.March, 15),
		ExpiryDate:     &expiry,
		Active:         true,
		CreatedAt:      date(2025, time.January, 1),
		UpdatedAt:      date(2025, time.January, 1),
	}
}

func TestTemplateServiceCreateExpenseTemplate(t *testing.T) {
	anchor := date(2025, time.January, 15)
	expiry := date(2025, time.June, 15)

	tests := []struct {
		name      string
		input     ExpenseTemplateInput
		setupMock func(m *store.MockStore)
		errIs     error
		validate  func(t *testing.T, tmpl *model.ExpenseTemplate)
	}{
		{
			name: "creates monthly template scheduled from anchor",
			input: ExpenseTemplateInput{
				UserID:      "user-1",
				Amount:      15.99,
				Description: "Netflix subscription",
				Category:    "entertainment",
				Frequency:   "monthly",
				AnchorDate:  anchor.Add(9 * time.Hour),
				ExpiryDate:  &expiry,
			},
			setupMock: func(m *store.MockStore) {
				m.EXPECT().CreateExpenseTemplate(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, tmpl *model.ExpenseTemplate) {
				assert.NotEmpty(t, tmpl.ID)
				assert.True(t, tmpl.Active)
				assert.Equal(t, anchor, tmpl.AnchorDate)
				assert.Equal(t, anchor, tmpl.NextOccurrence)
				assert.Equal(t, int64(1599), tmpl.AmountCents)
				assert.Equal(t, model.FrequencyMonthly, tmpl.Frequency)
				require.NotNil(t, tmpl.ExpiryDate)
				assert.Equal(t, expiry, *tmpl.ExpiryDate)
			},
		},
		{
			name: "blank category defaults to other without categorizer",
			input: ExpenseTemplateInput{
				UserID:      "user-1",
				Amount:      9.50,
				Description: "mystery charge",
				Frequency:   "weekly",
				AnchorDate:  anchor,
			},
			setupMock: func(m *store.MockStore) {
				m.EXPECT().CreateExpenseTemplate(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, tmpl *model.ExpenseTemplate) {
				assert.Equal(t, "other", tmpl.Category)
			},
		},
		{
			name: "rejects non-positive amount",
			input: ExpenseTemplateInput{
				UserID:     "user-1",
				Amount:     0,
				Frequency:  "monthly",
				AnchorDate: anchor,
			},
			errIs: model.ErrInvalidInput,
		},
		{
			name: "rejects unknown frequency",
			input: ExpenseTemplateInput{
				UserID:     "user-1",
				Amount:     10,
				Frequency:  "fortnightly",
				AnchorDate: anchor,
			},
			errIs: model.ErrInvalidInput,
		},
		{
			name: "rejects missing user",
			input: ExpenseTemplateInput{
				Amount:     10,
				Frequency:  "monthly",
				AnchorDate: anchor,
			},
			errIs: model.ErrInvalidInput,
		},
		{
			name: "rejects zero anchor date",
			input: ExpenseTemplateInput{
				UserID:    "user-1",
				Amount:    10,
				Frequency: "monthly",
			},
			errIs: model.ErrInvalidInput,
		},
		{
			name: "rejects expiry on the anchor date",
			input: ExpenseTemplateInput{
				UserID:     "user-1",
				Amount:     10,
				Frequency:  "monthly",
				AnchorDate: anchor,
				ExpiryDate: &anchor,
			},
			errIs: model.ErrInvalidInput,
		},
		{
			name: "propagates store failure",
			input: ExpenseTemplateInput{
				UserID:     "user-1",
				Amount:     10,
				Category:   "food",
				Frequency:  "monthly",
				AnchorDate: anchor,
			},
			setupMock: func(m *store.MockStore) {
				m.EXPECT().CreateExpenseTemplate(gomock.Any(), gomock.Any()).Return(assert.AnError)
			},
			errIs: assert.AnError,
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
			svc := NewTemplateService(mockStore, nil)

			tmpl, err := svc.CreateExpenseTemplate(context.Background(), tt.input)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, tmpl)
			}
		})
	}
}

type stubSuggester struct {
	category string
	err      error
	calls    int
}

func (s *stubSuggester) SuggestCategory(ctx context.Context, description string) (*categorize.Suggestion, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &categorize.Suggestion{Category: s.category, Confidence: 0.9}, nil
}

func TestTemplateServiceCreateExpenseTemplateSuggestsCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	mockStore.EXPECT().CreateExpenseTemplate(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	input := ExpenseTemplateInput{
		UserID:      "user-1",
		Amount:      42.00,
		Description: "Corner Bakery",
		Frequency:   "weekly",
		AnchorDate:  date(2025, time.February, 3),
	}

	t.Run("uses suggestion for blank category", func(t *testing.T) {
		suggester := &stubSuggester{category: "food"}
		svc := NewTemplateService(mockStore, categorize.NewCategorizer(suggester, 8))

		tmpl, err := svc.CreateExpenseTemplate(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "food", tmpl.Category)
		assert.Equal(t, 1, suggester.calls)
	})

	t.Run("falls back to other when suggestion fails", func(t *testing.T) {
		suggester := &stubSuggester{err: assert.AnError}
		svc := NewTemplateService(mockStore, categorize.NewCategorizer(suggester, 8))

		tmpl, err := svc.CreateExpenseTemplate(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "other", tmpl.Category)
	})

	t.Run("keeps caller category without consulting suggester", func(t *testing.T) {
		suggester := &stubSuggester{category: "food"}
		svc := NewTemplateService(mockStore, categorize.NewCategorizer(suggester, 8))

		withCategory := input
		withCategory.Category = "shopping"
		tmpl, err := svc.CreateExpenseTemplate(context.Background(), withCategory)
		require.NoError(t, err)
		assert.Equal(t, "shopping", tmpl.Category)
		assert.Equal(t, 0, suggester.calls)
	})
}

func TestTemplateServiceGetExpenseTemplateOwnerScoped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	svc := NewTemplateService(mockStore, nil)

	t.Run("returns owned template", func(t *testing.T) {
		mockStore.EXPECT().GetExpenseTemplate(gomock.Any(), "tmpl-1").Return(storedExpenseTemplate("user-1"), nil)

		tmpl, err := svc.GetExpenseTemplate(context.Background(), "user-1", "tmpl-1")
		require.NoError(t, err)
		assert.Equal(t, "tmpl-1", tmpl.ID)
	})

	t.Run("foreign template reads as not found", func(t *testing.T) {
		mockStore.EXPECT().GetExpenseTemplate(gomock.Any(), "tmpl-1").Return(storedExpenseTemplate("someone-else"), nil)

		_, err := svc.GetExpenseTemplate(context.Background(), "user-1", "tmpl-1")
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.NotErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("missing template propagates not found", func(t *testing.T) {
		mockStore.EXPECT().GetExpenseTemplate(gomock.Any(), "ghost").Return(nil, model.ErrNotFound)

		_, err := svc.GetExpenseTemplate(context.Background(), "user-1", "ghost")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("blank ids rejected before store access", func(t *testing.T) {
		_, err := svc.GetExpenseTemplate(context.Background(), "", "tmpl-1")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestTemplateServiceUpdateExpenseTemplate(t *testing.T) {
	tests := []struct {
		name      string
		update    ExpenseTemplateUpdate
		setupMock func(m *store.MockStore, updated **model.ExpenseTemplate)
		errIs     error
		validate  func(t *testing.T, tmpl *model.ExpenseTemplate)
	}{
		{
			name:   "amount change recomputes cents",
			update: ExpenseTemplateUpdate{Amount: floatPtr(19.99)},
			setupMock: func(m *store.MockStore, updated **model.ExpenseTemplate) {
				m.EXPECT().GetExpenseTemplate(gomock.Any(), "tmpl-1").Return(storedExpenseTemplate("user-1"), nil)
				m.EXPECT().UpdateExpenseTemplate(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tmpl *model.ExpenseTemplate) error {
						*updated = tmpl
						return nil
					})
			},
			validate: func(t *testing.T, tmpl *model.ExpenseTemplate) {
				assert.Equal(t, 19.99, tmpl.Amount)
				assert.Equal(t, int64(1999), tmpl.AmountCents)
				assert.Equal(t, "Netflix subscription", tmpl.Description)
			},
		},
		{
			name:   "pause leaves schedule untouched",
			update: ExpenseTemplateUpdate{Active: boolPtr(false)},
			setupMock: func(m *store.MockStore, updated **model.ExpenseTemplate) {
				m.EXPECT().GetExpenseTemplate(gomock.Any(), "tmpl-1").Return(storedExpenseTemplate("user-1"), nil)
				m.EXPECT().UpdateExpenseTemplate(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tmpl *model.ExpenseTemplate) error {
						*updated = tmpl
						return nil
					})
			},
			validate: func(t *testing.T, tmpl *model.ExpenseTemplate) {
				assert.False(t, tmpl.Active)
				assert.Equal(t, date(2025, time.March, 15), tmpl.NextOccurrence)
				assert.Equal(t, date(2025, time.January, 15), tmpl.AnchorDate)
			},
		},
		{
			name:   "clear expiry removes the end date",
			update: ExpenseTemplateUpdate{ClearExpiry: true},
			setupMock: func(m *store.MockStore, updated **model.ExpenseTemplate) {
				m.EXPECT().GetExpenseTemplate(gomock.Any(), "tmpl-1").Return(storedExpenseTemplate("user-1"), nil)
				m.EXPECT().UpdateExpenseTemplate(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tmpl *model.ExpenseTemplate) error {
						*updated = tmpl
						return nil
					})
			},
			validate: func(t *testing.T, tmpl *model.ExpenseTemplate) {
				assert.Nil(t, tmpl.ExpiryDate)
			},
		},
		{
			name:   "rejects expiry before anchor",
			update: ExpenseTemplateUpdate{ExpiryDate: timePtr(date(2024, time.December, 1))},
			setupMock: func(m *store.MockStore, updated **model.ExpenseTemplate) {
				m.EXPECT().GetExpenseTemplate(gomock.Any(), "tmpl-1").Return(storedExpenseTemplate("user-1"), nil)
			},
			errIs: model.ErrInvalidInput,
		},
		{
			name:   "rejects unknown frequency",
			update: ExpenseTemplateUpdate{Frequency: stringPtr("hourly")},
			setupMock: func(m *store.MockStore, updated **model.ExpenseTemplate) {
				m.EXPECT().GetExpenseTemplate(gomock.Any(), "tmpl-1").Return(storedExpenseTemplate("user-1"), nil)
			},
			errIs: model.ErrInvalidInput,
		},
		{
			name:   "foreign template is not updated",
			update: ExpenseTemplateUpdate{Amount: floatPtr(5)},
			setupMock: func(m *store.MockStore, updated **model.ExpenseTemplate) {
				m.EXPECT().GetExpenseTemplate(gomock.Any(), "tmpl-1").Return(storedExpenseTemplate("someone-else"), nil)
			},
			errIs: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := store.NewMockStore(ctrl)
			var updated *model.ExpenseTemplate
			tt.setupMock(mockStore, &updated)
			svc := NewTemplateService(mockStore, nil)

			tmpl, err := svc.UpdateExpenseTemplate(context.Background(), "user-1", "tmpl-1", tt.update)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, updated)
			assert.Same(t, updated, tmpl)
			assert.True(t, tmpl.UpdatedAt.After(date(2025, time.January, 1)))
			if tt.validate != nil {
				tt.validate(t, tmpl)
			}
		})
	}
}

func TestTemplateServiceDeleteExpenseTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	svc := NewTemplateService(mockStore, nil)

	t.Run("deletes owned template", func(t *testing.T) {
		mockStore.EXPECT().GetExpenseTemplate(gomock.Any(), "tmpl-1").Return(storedExpenseTemplate("user-1"), nil)
		mockStore.EXPECT().DeleteExpenseTemplate(gomock.Any(), "tmpl-1").Return(nil)

		err := svc.DeleteExpenseTemplate(context.Background(), "user-1", "tmpl-1")
		assert.NoError(t, err)
	})

	t.Run("foreign template is not deleted", func(t *testing.T) {
		mockStore.EXPECT().GetExpenseTemplate(gomock.Any(), "tmpl-1").Return(storedExpenseTemplate("someone-else"), nil)

		err := svc.DeleteExpenseTemplate(context.Background(), "user-1", "tmpl-1")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestTemplateServiceCreateIncomeTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	svc := NewTemplateService(mockStore, nil)

	t.Run("creates weekly salary", func(t *testing.T) {
		var created *model.IncomeTemplate
		mockStore.EXPECT().CreateIncomeTemplate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, tmpl *model.IncomeTemplate) error {
				created = tmpl
				return nil
			})

		tmpl, err := svc.CreateIncomeTemplate(context.Background(), IncomeTemplateInput{
			UserID:     "user-1",
			Amount:     2500,
			Source:     "Acme Corp salary",
			Frequency:  "weekly",
			AnchorDate: date(2025, time.January, 3),
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, model.FrequencyWeekly, created.Frequency)
		assert.Equal(t, date(2025, time.January, 3), created.NextOccurrence)
		assert.Equal(t, int64(250000), created.AmountCents)
		assert.True(t, created.Active)
		assert.Same(t, created, tmpl)
	})

	t.Run("rejects unknown frequency", func(t *testing.T) {
		_, err := svc.CreateIncomeTemplate(context.Background(), IncomeTemplateInput{
			UserID:     "user-1",
			Amount:     2500,
			Source:     "Acme Corp salary",
			Frequency:  "quarterly",
			AnchorDate: date(2025, time.January, 3),
		})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestTemplateServiceUpdateIncomeTemplateResume(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	svc := NewTemplateService(mockStore, nil)

	stored := &model.IncomeTemplate{
		ID:             "inc-1",
		UserID:         "user-1",
		Amount:         2500,
		AmountCents:    250000,
		Source:         "Acme Corp salary",
		Frequency:      model.FrequencyWeekly,
		AnchorDate:     date(2025, time.January, 3),
		NextOccurrence: date(2025, time.February, 14),
		Active:         false,
		CreatedAt:      date(2025, time.January, 1),
		UpdatedAt:      date(2025, time.January, 20),
	}
	mockStore.EXPECT().GetIncomeTemplate(gomock.Any(), "inc-1").Return(stored, nil)

	var updated *model.IncomeTemplate
	mockStore.EXPECT().UpdateIncomeTemplate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tmpl *model.IncomeTemplate) error {
			updated = tmpl
			return nil
		})

	_, err := svc.UpdateIncomeTemplate(context.Background(), "user-1", "inc-1", IncomeTemplateUpdate{
		Active: boolPtr(true),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.Active)
	// Resuming picks up where the schedule left off.
	assert.Equal(t, date(2025, time.February, 14), updated.NextOccurrence)
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func stringPtr(v string) *string { return &v }

func timePtr(v time.Time) *time.Time { return &v }
