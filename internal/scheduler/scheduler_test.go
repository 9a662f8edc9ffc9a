package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkrall/pennywise/backend/internal/model"
	"github.com/mkrall/pennywise/backend/internal/service"
	"github.com/mkrall/pennywise/backend/internal/store"
)

type capturingPublisher struct {
	mu   sync.Mutex
	runs []*model.BatchRun
}

func (p *capturingPublisher) PublishBatchCompleted(_ context.Context, run *model.BatchRun) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runs = append(p.runs, run)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.runs)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedDueTemplate(t *testing.T, s store.Store, next time.Time) *model.ExpenseTemplate {
	t.Helper()
	tmpl := &model.ExpenseTemplate{
		ID:             uuid.New().String(),
		UserID:         "user-1",
		Amount:         15.99,
		AmountCents:    1599,
		Description:    "Netflix subscription",
		Category:       "entertainment",
		Frequency:      model.FrequencyMonthly,
		AnchorDate:     next,
		NextOccurrence: next,
		Active:         true,
		CreatedAt:      next,
		UpdatedAt:      next,
	}
	require.NoError(t, s.CreateExpenseTemplate(context.Background(), tmpl))
	return tmpl
}

func TestSchedulerRunOnce(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seedDueTemplate(t, st, date(2025, time.March, 1))

	publisher := &capturingPublisher{}
	triggers := service.NewNotificationTrigger(st)
	processor := service.NewRecurringProcessor(st, triggers, 2, 100)
	sched := New(processor, st, publisher, triggers, time.Hour, 3, false)

	run, err := sched.RunOnce(ctx, date(2025, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, run.ExpensesCreated)
	assert.Equal(t, 1, run.TotalProcessed)
	assert.Equal(t, date(2025, time.March, 1), run.AsOf)
	assert.Empty(t, run.Error)
	assert.False(t, run.FinishedAt.Before(run.StartedAt))

	// The run lands in the persisted history and on the event stream.
	history, err := st.ListBatchRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, run.ID, history[0].ID)
	assert.Equal(t, 1, publisher.published())
}

func TestSchedulerRunOncePersistsFailedRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	asOf := date(2025, time.March, 1)
	mockStore := store.NewMockStore(ctrl)
	mockStore.EXPECT().ListDueExpenseTemplates(gomock.Any(), asOf, 100, "").
		Return(nil, "", assert.AnError)

	var persisted *model.BatchRun
	mockStore.EXPECT().CreateBatchRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, run *model.BatchRun) error {
			persisted = run
			return nil
		})

	publisher := &capturingPublisher{}
	processor := service.NewRecurringProcessor(mockStore, nil, 1, 100)
	sched := New(processor, mockStore, publisher, nil, time.Hour, 0, false)

	_, err := sched.RunOnce(context.Background(), asOf)
	require.Error(t, err)

	// The failure is recorded in the run history but never published as a
	// completion.
	require.NotNil(t, persisted)
	assert.NotEmpty(t, persisted.Error)
	assert.Zero(t, persisted.TotalProcessed)
	assert.Zero(t, publisher.published())
}

func TestSchedulerRunOnceSendsReminders(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	seedDueTemplate(t, st, date(2025, time.March, 3))

	triggers := service.NewNotificationTrigger(st)
	processor := service.NewRecurringProcessor(st, triggers, 2, 100)
	sched := New(processor, st, nil, triggers, time.Hour, 3, false)

	_, err := sched.RunOnce(ctx, date(2025, time.March, 1))
	require.NoError(t, err)

	notifications, _, err := st.ListNotifications(ctx, "user-1", false, 10, "")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationBillReminder, notifications[0].Kind)
}

func TestSchedulerNotifyQueuesAtMostOne(t *testing.T) {
	processor := service.NewRecurringProcessor(store.NewMemoryStore(), nil, 1, 100)
	sched := New(processor, store.NewMemoryStore(), nil, nil, time.Hour, 0, false)

	sched.Notify()
	sched.Notify()
	sched.Notify()

	assert.Len(t, sched.notifyCh, 1)
}

func TestSchedulerStartRunsOnStartAndOnNotify(t *testing.T) {
	st := store.NewMemoryStore()
	processor := service.NewRecurringProcessor(st, nil, 1, 100)
	sched := New(processor, st, nil, nil, time.Hour, 0, true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		sched.Start(ctx)
	}()

	countRuns := func() int {
		runs, err := st.ListBatchRuns(context.Background(), 10)
		if err != nil {
			return -1
		}
		return len(runs)
	}

	assert.Eventually(t, func() bool { return countRuns() == 1 }, time.Second, 10*time.Millisecond)

	sched.Notify()
	assert.Eventually(t, func() bool { return countRuns() == 2 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
