package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrall/pennywise/backend/internal/events"
	"github.com/mkrall/pennywise/backend/internal/model"
	"github.com/mkrall/pennywise/backend/internal/scheduler"
	"github.com/mkrall/pennywise/backend/internal/service"
	"github.com/mkrall/pennywise/backend/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestRecurringLifecycle walks a user's templates through four months of
// sweeps on the memory store: creation through the management service,
// catch-up generation, month-end clamping, expiry, reminders and the
// batch run history.
func TestRecurringLifecycle(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	userID := "user-e2e"

	templates := service.NewTemplateService(st, nil)
	triggers := service.NewNotificationTrigger(st)
	processor := service.NewRecurringProcessor(st, triggers, 4, 100)
	sched := scheduler.New(processor, st, events.NopPublisher{}, triggers, time.Hour, 3, false)

	rent, err := templates.CreateExpenseTemplate(ctx, service.ExpenseTemplateInput{
		UserID:      userID,
		Amount:      2200,
		Description: "Rent payment",
		Category:    "housing",
		Frequency:   "monthly",
		AnchorDate:  date(2025, time.January, 31),
	})
	require.NoError(t, err)

	gymExpiry := date(2025, time.March, 1)
	gym, err := templates.CreateExpenseTemplate(ctx, service.ExpenseTemplateInput{
		UserID:      userID,
		Amount:      65,
		Description: "Gym membership",
		Category:    "healthcare",
		Frequency:   "monthly",
		AnchorDate:  date(2025, time.January, 15),
		ExpiryDate:  &gymExpiry,
	})
	require.NoError(t, err)

	paperExpiry := date(2025, time.February, 20)
	paper, err := templates.CreateExpenseTemplate(ctx, service.ExpenseTemplateInput{
		UserID:      userID,
		Amount:      18.50,
		Description: "Newspaper delivery",
		Category:    "entertainment",
		Frequency:   "monthly",
		AnchorDate:  date(2025, time.January, 10),
		ExpiryDate:  &paperExpiry,
	})
	require.NoError(t, err)

	salary, err := templates.CreateIncomeTemplate(ctx, service.IncomeTemplateInput{
		UserID:     userID,
		Amount:     8500,
		Source:     "Software Engineer Salary",
		Frequency:  "monthly",
		AnchorDate: date(2025, time.January, 1),
	})
	require.NoError(t, err)

	// Jan 1: only the salary is due yet.
	run, err := sched.RunOnce(ctx, date(2025, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, run.ExpensesCreated)
	assert.Equal(t, 1, run.IncomesCreated)
	assert.Equal(t, 1, run.TotalProcessed)

	// Jan 29: gym and newspaper catch up one occurrence each, and the
	// rent due Jan 31 falls inside the 3-day reminder window.
	run, err = sched.RunOnce(ctx, date(2025, time.January, 29))
	require.NoError(t, err)
	assert.Equal(t, 2, run.ExpensesCreated)
	assert.Equal(t, 0, run.IncomesCreated)

	reminders := notificationsOfKind(t, st, userID, model.NotificationBillReminder)
	require.Len(t, reminders, 1)
	assert.Equal(t, rent.ID, reminders[0].TemplateID)
	assert.Contains(t, reminders[0].Title, "Rent payment")
	assert.Equal(t, date(2025, time.January, 31), reminders[0].Date)

	// Feb 1: rent fires on its scheduled date, salary rolls over.
	run, err = sched.RunOnce(ctx, date(2025, time.February, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, run.ExpensesCreated)
	assert.Equal(t, 1, run.IncomesCreated)

	// Mar 1: rent clamps to Feb 28, the gym fires its final occurrence
	// (expiry falls exactly on the run date), and the newspaper's expiry
	// lapsed during downtime so it deactivates without generating.
	run, err = sched.RunOnce(ctx, date(2025, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, run.ExpensesCreated)
	assert.Equal(t, 1, run.IncomesCreated)
	assert.Equal(t, 1, run.Expired)
	assert.Equal(t, 4, run.TotalProcessed)

	// Apr 1: the clamp holds at day 28 instead of reverting to day 31.
	run, err = sched.RunOnce(ctx, date(2025, time.April, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, run.ExpensesCreated)
	assert.Equal(t, 1, run.IncomesCreated)

	reloadedRent, err := templates.GetExpenseTemplate(ctx, userID, rent.ID)
	require.NoError(t, err)
	assert.True(t, reloadedRent.Active)
	assert.Equal(t, date(2025, time.April, 28), reloadedRent.NextOccurrence)

	reloadedGym, err := templates.GetExpenseTemplate(ctx, userID, gym.ID)
	require.NoError(t, err)
	assert.False(t, reloadedGym.Active)

	reloadedPaper, err := templates.GetExpenseTemplate(ctx, userID, paper.ID)
	require.NoError(t, err)
	assert.False(t, reloadedPaper.Active)
	// The lapsed schedule is frozen, not advanced.
	assert.Equal(t, date(2025, time.February, 10), reloadedPaper.NextOccurrence)

	expenses, _, err := st.ListExpenses(ctx, userID, 100, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []time.Time{
		date(2025, time.January, 10),
		date(2025, time.January, 15),
		date(2025, time.January, 31),
		date(2025, time.February, 15),
		date(2025, time.February, 28),
		date(2025, time.March, 28),
	}, expenseDates(expenses))
	for _, expense := range expenses {
		assert.True(t, expense.Generated)
		assert.NotEmpty(t, expense.TemplateID)
	}

	incomes, _, err := st.ListIncomes(ctx, userID, 100, "")
	require.NoError(t, err)
	require.Len(t, incomes, 4)
	for _, income := range incomes {
		assert.Equal(t, salary.ID, income.TemplateID)
		assert.Equal(t, int64(850000), income.AmountCents)
	}

	ended := notificationsOfKind(t, st, userID, model.NotificationRecurringEnded)
	assert.Len(t, ended, 2)

	runs, err := st.ListBatchRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 5)
	// Newest first.
	assert.Equal(t, date(2025, time.April, 1), runs[0].AsOf)
	assert.Equal(t, date(2025, time.January, 1), runs[4].AsOf)
	for _, r := range runs {
		assert.Empty(t, r.Error)
	}
}

// TestTemplateDeletionKeepsRecords deletes a template after it generated
// and checks the records survive with their back-reference dangling.
func TestTemplateDeletionKeepsRecords(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	userID := "user-e2e"

	templates := service.NewTemplateService(st, nil)
	processor := service.NewRecurringProcessor(st, nil, 1, 100)

	tmpl, err := templates.CreateExpenseTemplate(ctx, service.ExpenseTemplateInput{
		UserID:      userID,
		Amount:      22.99,
		Description: "Netflix subscription",
		Category:    "entertainment",
		Frequency:   "monthly",
		AnchorDate:  date(2025, time.May, 5),
	})
	require.NoError(t, err)

	_, err = processor.ProcessAll(ctx, date(2025, time.May, 5))
	require.NoError(t, err)

	require.NoError(t, templates.DeleteExpenseTemplate(ctx, userID, tmpl.ID))

	_, err = templates.GetExpenseTemplate(ctx, userID, tmpl.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	expenses, _, err := st.ListExpenses(ctx, userID, 100, "")
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, tmpl.ID, expenses[0].TemplateID)

	// A later sweep has nothing to resurrect.
	result, err := processor.ProcessAll(ctx, date(2025, time.June, 5))
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalProcessed)
}

// TestOwnerIsolation verifies one user's templates, budgets and records
// are invisible to another.
func TestOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	templates := service.NewTemplateService(st, nil)
	budgets := service.NewBudgetService(st)

	tmpl, err := templates.CreateExpenseTemplate(ctx, service.ExpenseTemplateInput{
		UserID:      "alice",
		Amount:      100,
		Description: "Utilities",
		Category:    "utilities",
		Frequency:   "monthly",
		AnchorDate:  date(2025, time.June, 1),
	})
	require.NoError(t, err)

	budget, err := budgets.CreateBudget(ctx, service.BudgetInput{
		UserID:   "alice",
		Category: "utilities",
		Month:    "2025-06",
		Amount:   300,
	})
	require.NoError(t, err)

	_, err = templates.GetExpenseTemplate(ctx, "bob", tmpl.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = budgets.GetBudget(ctx, "bob", budget.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	list, _, err := templates.ListExpenseTemplates(ctx, "bob", 100, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func notificationsOfKind(t *testing.T, st store.Store, userID, kind string) []*model.Notification {
	t.Helper()
	notifications, _, err := st.ListNotifications(context.Background(), userID, false, 100, "")
	require.NoError(t, err)

	var matched []*model.Notification
	for _, n := range notifications {
		if n.Kind == kind {
			matched = append(matched, n)
		}
	}
	return matched
}

func expenseDates(expenses []*model.Expense) []time.Time {
	dates := make([]time.Time, 0, len(expenses))
	for _, e := range expenses {
		dates = append(dates, e.Date)
	}
	return dates
}
