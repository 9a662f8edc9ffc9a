package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkrall/pennywise/backend/internal/model"
)

// MemoryStore implements the Store interface with in-memory maps. It backs
// local development and tests; a single mutex makes every operation atomic,
// including the conditional occurrence commits.
type MemoryStore struct {
	mu sync.RWMutex

	expenseTemplates map[string]*model.ExpenseTemplate
	incomeTemplates  map[string]*model.IncomeTemplate
	expenses         map[string]*model.Expense
	incomes          map[string]*model.Income
	budgets          map[string]*model.Budget
	notifications    map[string]*model.Notification
	batchRuns        map[string]*model.BatchRun
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		expenseTemplates: make(map[string]*model.ExpenseTemplate),
		incomeTemplates:  make(map[string]*model.IncomeTemplate),
		expenses:         make(map[string]*model.Expense),
		incomes:          make(map[string]*model.Income),
		budgets:          make(map[string]*model.Budget),
		notifications:    make(map[string]*model.Notification),
		batchRuns:        make(map[string]*model.BatchRun),
	}
}

// paginateIDs applies cursor-based pagination to a slice of IDs.
// Returns the paginated IDs and the next page token (empty if no more pages).
func paginateIDs(ids []string, pageSize int, pageToken string) ([]string, string) {
	if pageSize <= 0 {
		pageSize = 100
	}

	sort.Strings(ids)

	startIdx := 0
	if pageToken != "" {
		cursorID, err := DecodePageToken(pageToken)
		if err == nil {
			for i, id := range ids {
				if id > cursorID {
					startIdx = i
					break
				}
				if i == len(ids)-1 {
					return nil, ""
				}
			}
		}
	}

	ids = ids[startIdx:]

	var nextToken string
	if len(ids) > pageSize {
		nextToken = EncodePageToken(ids[pageSize-1])
		ids = ids[:pageSize]
	}

	return ids, nextToken
}

// Expense template operations

func (m *MemoryStore) CreateExpenseTemplate(ctx context.Context, tmpl *model.ExpenseTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}

	m.expenseTemplates[tmpl.ID] = tmpl.Clone()
	return nil
}

func (m *MemoryStore) GetExpenseTemplate(ctx context.Context, templateID string) (*model.ExpenseTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tmpl, ok := m.expenseTemplates[templateID]
	if !ok {
		return nil, fmt.Errorf("expense template %s: %w", templateID, model.ErrNotFound)
	}
	return tmpl.Clone(), nil
}

func (m *MemoryStore) UpdateExpenseTemplate(ctx context.Context, tmpl *model.ExpenseTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.expenseTemplates[tmpl.ID]; !ok {
		return fmt.Errorf("expense template %s: %w", tmpl.ID, model.ErrNotFound)
	}
	m.expenseTemplates[tmpl.ID] = tmpl.Clone()
	return nil
}

func (m *MemoryStore) DeleteExpenseTemplate(ctx context.Context, templateID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.expenseTemplates[templateID]; !ok {
		return fmt.Errorf("expense template %s: %w", templateID, model.ErrNotFound)
	}
	delete(m.expenseTemplates, templateID)
	return nil
}

func (m *MemoryStore) ListExpenseTemplates(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.ExpenseTemplate, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, tmpl := range m.expenseTemplates {
		if userID == "" || tmpl.UserID == userID {
			ids = append(ids, id)
		}
	}

	ids, nextToken := paginateIDs(ids, pageSize, pageToken)

	templates := make([]*model.ExpenseTemplate, 0, len(ids))
	for _, id := range ids {
		templates = append(templates, m.expenseTemplates[id].Clone())
	}
	return templates, nextToken, nil
}

func (m *MemoryStore) ListDueExpenseTemplates(ctx context.Context, asOf time.Time, pageSize int, pageToken string) ([]*model.ExpenseTemplate, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Page over the active set; the dueness filter runs after pagination so
	// tokens stay stable while a sweep advances templates.
	var ids []string
	for id, tmpl := range m.expenseTemplates {
		if tmpl.Active {
			ids = append(ids, id)
		}
	}

	ids, nextToken := paginateIDs(ids, pageSize, pageToken)

	cutoff := model.DateOnly(asOf)
	templates := make([]*model.ExpenseTemplate, 0, len(ids))
	for _, id := range ids {
		tmpl := m.expenseTemplates[id]
		if !tmpl.NextOccurrence.After(cutoff) {
			templates = append(templates, tmpl.Clone())
		}
	}
	return templates, nextToken, nil
}

func (m *MemoryStore) RecordExpenseOccurrence(ctx context.Context, tmpl *model.ExpenseTemplate, expectedNext time.Time, rec *model.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.expenseTemplates[tmpl.ID]
	if !ok {
		return fmt.Errorf("expense template %s: %w", tmpl.ID, model.ErrNotFound)
	}
	if !stored.NextOccurrence.Equal(expectedNext) {
		return fmt.Errorf("expense template %s: %w", tmpl.ID, model.ErrStaleTemplate)
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	m.expenses[rec.ID] = rec.Clone()
	m.expenseTemplates[tmpl.ID] = tmpl.Clone()
	return nil
}

func (m *MemoryStore) DeactivateExpenseTemplate(ctx context.Context, templateID string, expectedNext time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.expenseTemplates[templateID]
	if !ok {
		return fmt.Errorf("expense template %s: %w", templateID, model.ErrNotFound)
	}
	if !stored.NextOccurrence.Equal(expectedNext) {
		return fmt.Errorf("expense template %s: %w", templateID, model.ErrStaleTemplate)
	}

	stored.Active = false
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

// Income template operations

func (m *MemoryStore) CreateIncomeTemplate(ctx context.Context, tmpl *model.IncomeTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}

	m.incomeTemplates[tmpl.ID] = tmpl.Clone()
	return nil
}

func (m *MemoryStore) GetIncomeTemplate(ctx context.Context, templateID string) (*model.IncomeTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tmpl, ok := m.incomeTemplates[templateID]
	if !ok {
		return nil, fmt.Errorf("income template %s: %w", templateID, model.ErrNotFound)
	}
	return tmpl.Clone(), nil
}

func (m *MemoryStore) UpdateIncomeTemplate(ctx context.Context, tmpl *model.IncomeTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.incomeTemplates[tmpl.ID]; !ok {
		return fmt.Errorf("income template %s: %w", tmpl.ID, model.ErrNotFound)
	}
	m.incomeTemplates[tmpl.ID] = tmpl.Clone()
	return nil
}

func (m *MemoryStore) DeleteIncomeTemplate(ctx context.Context, templateID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.incomeTemplates[templateID]; !ok {
		return fmt.Errorf("income template %s: %w", templateID, model.ErrNotFound)
	}
	delete(m.incomeTemplates, templateID)
	return nil
}

func (m *MemoryStore) ListIncomeTemplates(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.IncomeTemplate, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, tmpl := range m.incomeTemplates {
		if userID == "" || tmpl.UserID == userID {
			ids = append(ids, id)
		}
	}

	ids, nextToken := paginateIDs(ids, pageSize, pageToken)

	templates := make([]*model.IncomeTemplate, 0, len(ids))
	for _, id := range ids {
		templates = append(templates, m.incomeTemplates[id].Clone())
	}
	return templates, nextToken, nil
}

func (m *MemoryStore) ListDueIncomeTemplates(ctx context.Context, asOf time.Time, pageSize int, pageToken string) ([]*model.IncomeTemplate, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, tmpl := range m.incomeTemplates {
		if tmpl.Active {
			ids = append(ids, id)
		}
	}

	ids, nextToken := paginateIDs(ids, pageSize, pageToken)

	cutoff := model.DateOnly(asOf)
	templates := make([]*model.IncomeTemplate, 0, len(ids))
	for _, id := range ids {
		tmpl := m.incomeTemplates[id]
		if !tmpl.NextOccurrence.After(cutoff) {
			templates = append(templates, tmpl.Clone())
		}
	}
	return templates, nextToken, nil
}

func (m *MemoryStore) RecordIncomeOccurrence(ctx context.Context, tmpl *model.IncomeTemplate, expectedNext time.Time, rec *model.Income) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.incomeTemplates[tmpl.ID]
	if !ok {
		return fmt.Errorf("income template %s: %w", tmpl.ID, model.ErrNotFound)
	}
	if !stored.NextOccurrence.Equal(expectedNext) {
		return fmt.Errorf("income template %s: %w", tmpl.ID, model.ErrStaleTemplate)
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	m.incomes[rec.ID] = rec.Clone()
	m.incomeTemplates[tmpl.ID] = tmpl.Clone()
	return nil
}

func (m *MemoryStore) DeactivateIncomeTemplate(ctx context.Context, templateID string, expectedNext time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.incomeTemplates[templateID]
	if !ok {
		return fmt.Errorf("income template %s: %w", templateID, model.ErrNotFound)
	}
	if !stored.NextOccurrence.Equal(expectedNext) {
		return fmt.Errorf("income template %s: %w", templateID, model.ErrStaleTemplate)
	}

	stored.Active = false
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

// Expense record operations

func (m *MemoryStore) CreateExpense(ctx context.Context, expense *model.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}

	m.expenses[expense.ID] = expense.Clone()
	return nil
}

func (m *MemoryStore) GetExpense(ctx context.Context, expenseID string) (*model.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	expense, ok := m.expenses[expenseID]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", expenseID, model.ErrNotFound)
	}
	return expense.Clone(), nil
}

func (m *MemoryStore) DeleteExpense(ctx context.Context, expenseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.expenses[expenseID]; !ok {
		return fmt.Errorf("expense %s: %w", expenseID, model.ErrNotFound)
	}
	delete(m.expenses, expenseID)
	return nil
}

func (m *MemoryStore) ListExpenses(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Expense, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, expense := range m.expenses {
		if userID == "" || expense.UserID == userID {
			ids = append(ids, id)
		}
	}

	ids, nextToken := paginateIDs(ids, pageSize, pageToken)

	expenses := make([]*model.Expense, 0, len(ids))
	for _, id := range ids {
		expenses = append(expenses, m.expenses[id].Clone())
	}
	return expenses, nextToken, nil
}

// Income record operations

func (m *MemoryStore) CreateIncome(ctx context.Context, income *model.Income) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if income.ID == "" {
		income.ID = uuid.New().String()
	}

	m.incomes[income.ID] = income.Clone()
	return nil
}

func (m *MemoryStore) GetIncome(ctx context.Context, incomeID string) (*model.Income, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	income, ok := m.incomes[incomeID]
	if !ok {
		return nil, fmt.Errorf("income %s: %w", incomeID, model.ErrNotFound)
	}
	return income.Clone(), nil
}

func (m *MemoryStore) DeleteIncome(ctx context.Context, incomeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.incomes[incomeID]; !ok {
		return fmt.Errorf("income %s: %w", incomeID, model.ErrNotFound)
	}
	delete(m.incomes, incomeID)
	return nil
}

func (m *MemoryStore) ListIncomes(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Income, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, income := range m.incomes {
		if userID == "" || income.UserID == userID {
			ids = append(ids, id)
		}
	}

	ids, nextToken := paginateIDs(ids, pageSize, pageToken)

	incomes := make([]*model.Income, 0, len(ids))
	for _, id := range ids {
		incomes = append(incomes, m.incomes[id].Clone())
	}
	return incomes, nextToken, nil
}

// Budget operations

func (m *MemoryStore) CreateBudget(ctx context.Context, budget *model.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Uniqueness per (user, category, month) backs the service's pre-check
	// against races between check and insert.
	for _, existing := range m.budgets {
		if existing.UserID == budget.UserID && existing.Category == budget.Category && existing.Month == budget.Month {
			return fmt.Errorf("budget for %s %s: %w", budget.Category, budget.Month, model.ErrConflict)
		}
	}

	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}

	m.budgets[budget.ID] = budget.Clone()
	return nil
}

func (m *MemoryStore) GetBudget(ctx context.Context, budgetID string) (*model.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	budget, ok := m.budgets[budgetID]
	if !ok {
		return nil, fmt.Errorf("budget %s: %w", budgetID, model.ErrNotFound)
	}
	return budget.Clone(), nil
}

func (m *MemoryStore) GetBudgetByCategoryMonth(ctx context.Context, userID, category, month string) (*model.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, budget := range m.budgets {
		if budget.UserID == userID && budget.Category == category && budget.Month == month {
			return budget.Clone(), nil
		}
	}
	return nil, fmt.Errorf("budget for %s %s: %w", category, month, model.ErrNotFound)
}

func (m *MemoryStore) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.budgets[budget.ID]; !ok {
		return fmt.Errorf("budget %s: %w", budget.ID, model.ErrNotFound)
	}
	m.budgets[budget.ID] = budget.Clone()
	return nil
}

func (m *MemoryStore) DeleteBudget(ctx context.Context, budgetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.budgets[budgetID]; !ok {
		return fmt.Errorf("budget %s: %w", budgetID, model.ErrNotFound)
	}
	delete(m.budgets, budgetID)
	return nil
}

func (m *MemoryStore) ListBudgets(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Budget, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, budget := range m.budgets {
		if userID == "" || budget.UserID == userID {
			ids = append(ids, id)
		}
	}

	ids, nextToken := paginateIDs(ids, pageSize, pageToken)

	budgets := make([]*model.Budget, 0, len(ids))
	for _, id := range ids {
		budgets = append(budgets, m.budgets[id].Clone())
	}
	return budgets, nextToken, nil
}

// Notification operations

func (m *MemoryStore) CreateNotification(ctx context.Context, notification *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}

	m.notifications[notification.ID] = notification.Clone()
	return nil
}

func (m *MemoryStore) HasNotification(ctx context.Context, userID, kind, templateID string, date time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	day := model.DateOnly(date)
	for _, n := range m.notifications {
		if n.UserID == userID && n.Kind == kind && n.TemplateID == templateID && model.DateOnly(n.Date).Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) ListNotifications(ctx context.Context, userID string, unreadOnly bool, pageSize int, pageToken string) ([]*model.Notification, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		ids = append(ids, id)
	}

	ids, nextToken := paginateIDs(ids, pageSize, pageToken)

	notifications := make([]*model.Notification, 0, len(ids))
	for _, id := range ids {
		notifications = append(notifications, m.notifications[id].Clone())
	}
	return notifications, nextToken, nil
}

func (m *MemoryStore) MarkNotificationRead(ctx context.Context, notificationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notifications[notificationID]
	if !ok {
		return fmt.Errorf("notification %s: %w", notificationID, model.ErrNotFound)
	}
	n.Read = true
	return nil
}

// Batch run operations

func (m *MemoryStore) CreateBatchRun(ctx context.Context, run *model.BatchRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	m.batchRuns[run.ID] = run.Clone()
	return nil
}

func (m *MemoryStore) ListBatchRuns(ctx context.Context, limit int) ([]*model.BatchRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*model.BatchRun, 0, len(m.batchRuns))
	for _, run := range m.batchRuns {
		runs = append(runs, run.Clone())
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
