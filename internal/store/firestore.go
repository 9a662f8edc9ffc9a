package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/mkrall/pennywise/backend/internal/model"
)

// Firestore collection names. Field names in queries must match the Go struct
// field names (PascalCase) because that is how Firestore serializes the
// model structs.
const (
	collExpenseTemplates = "expense_templates"
	collIncomeTemplates  = "income_templates"
	collExpenses         = "expenses"
	collIncomes          = "incomes"
	collBudgets          = "budgets"
	collNotifications    = "notifications"
	collBatchRuns        = "batch_runs"
)

// FirestoreStore implements the Store interface using Firestore. The
// conditional occurrence commits run inside Firestore transactions so the
// record insert and template advance land together or not at all.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// applyCursorPagination adds OrderBy + StartAfter + Limit to a query for
// cursor-based pagination. It fetches pageSize+1 docs so the caller can detect
// whether a next page exists.
func (s *FirestoreStore) applyCursorPagination(query firestore.Query, pageSize int, pageToken string) (firestore.Query, error) {
	query = query.OrderBy(firestore.DocumentID, firestore.Asc)

	if pageToken != "" {
		docID, err := DecodePageToken(pageToken)
		if err != nil {
			return query, fmt.Errorf("invalid page token: %w", err)
		}
		query = query.StartAfter(docID)
	}

	if pageSize <= 0 {
		pageSize = 100
	}
	query = query.Limit(pageSize + 1) // +1 to detect next page
	return query, nil
}

// trimPage cuts a fetched page down to pageSize and derives the next token
// from the last kept document.
func trimPage(docs []*firestore.DocumentSnapshot, pageSize int) ([]*firestore.DocumentSnapshot, string) {
	if pageSize <= 0 {
		pageSize = 100
	}
	var nextToken string
	if len(docs) > pageSize {
		docs = docs[:pageSize]
		nextToken = EncodePageToken(docs[pageSize-1].Ref.ID)
	}
	return docs, nextToken
}

// Expense template operations

func (s *FirestoreStore) CreateExpenseTemplate(ctx context.Context, tmpl *model.ExpenseTemplate) error {
	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}
	_, err := s.client.Collection(collExpenseTemplates).Doc(tmpl.ID).Set(ctx, tmpl)
	return err
}

func (s *FirestoreStore) GetExpenseTemplate(ctx context.Context, templateID string) (*model.ExpenseTemplate, error) {
	doc, err := s.client.Collection(collExpenseTemplates).Doc(templateID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("expense template %s: %w", templateID, model.ErrNotFound)
	}

	var tmpl model.ExpenseTemplate
	if err := doc.DataTo(&tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse expense template: %w", err)
	}
	return &tmpl, nil
}

func (s *FirestoreStore) UpdateExpenseTemplate(ctx context.Context, tmpl *model.ExpenseTemplate) error {
	_, err := s.client.Collection(collExpenseTemplates).Doc(tmpl.ID).Set(ctx, tmpl)
	return err
}

func (s *FirestoreStore) DeleteExpenseTemplate(ctx context.Context, templateID string) error {
	_, err := s.client.Collection(collExpenseTemplates).Doc(templateID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListExpenseTemplates(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.ExpenseTemplate, string, error) {
	query := s.client.Collection(collExpenseTemplates).Query
	if userID != "" {
		query = query.Where("UserID", "==", userID)
	}

	query, err := s.applyCursorPagination(query, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list expense templates: %w", err)
	}
	docs, nextToken := trimPage(docs, pageSize)

	templates := make([]*model.ExpenseTemplate, 0, len(docs))
	for _, doc := range docs {
		var tmpl model.ExpenseTemplate
		if err := doc.DataTo(&tmpl); err != nil {
			return nil, "", fmt.Errorf("failed to parse expense template: %w", err)
		}
		templates = append(templates, &tmpl)
	}
	return templates, nextToken, nil
}

func (s *FirestoreStore) ListDueExpenseTemplates(ctx context.Context, asOf time.Time, pageSize int, pageToken string) ([]*model.ExpenseTemplate, string, error) {
	// A range filter on NextOccurrence would force ordering by that field,
	// and a sweep mutates it as it goes, which breaks cursors. Page over the
	// stable Active set instead and apply the dueness cutoff per page.
	query := s.client.Collection(collExpenseTemplates).Where("Active", "==", true)

	pagedQuery, err := s.applyCursorPagination(query, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	docs, err := pagedQuery.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list due expense templates: %w", err)
	}
	docs, nextToken := trimPage(docs, pageSize)

	cutoff := model.DateOnly(asOf)
	templates := make([]*model.ExpenseTemplate, 0, len(docs))
	for _, doc := range docs {
		var tmpl model.ExpenseTemplate
		if err := doc.DataTo(&tmpl); err != nil {
			return nil, "", fmt.Errorf("failed to parse expense template: %w", err)
		}
		if !tmpl.NextOccurrence.After(cutoff) {
			templates = append(templates, &tmpl)
		}
	}
	return templates, nextToken, nil
}

func (s *FirestoreStore) RecordExpenseOccurrence(ctx context.Context, tmpl *model.ExpenseTemplate, expectedNext time.Time, rec *model.Expense) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	tmplRef := s.client.Collection(collExpenseTemplates).Doc(tmpl.ID)
	recRef := s.client.Collection(collExpenses).Doc(rec.ID)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(tmplRef)
		if err != nil {
			return fmt.Errorf("expense template %s: %w", tmpl.ID, model.ErrNotFound)
		}

		var stored model.ExpenseTemplate
		if err := doc.DataTo(&stored); err != nil {
			return fmt.Errorf("failed to parse expense template: %w", err)
		}
		if !stored.NextOccurrence.Equal(expectedNext) {
			return fmt.Errorf("expense template %s: %w", tmpl.ID, model.ErrStaleTemplate)
		}

		if err := tx.Set(recRef, rec); err != nil {
			return err
		}
		return tx.Set(tmplRef, tmpl)
	})
}

func (s *FirestoreStore) DeactivateExpenseTemplate(ctx context.Context, templateID string, expectedNext time.Time) error {
	tmplRef := s.client.Collection(collExpenseTemplates).Doc(templateID)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(tmplRef)
		if err != nil {
			return fmt.Errorf("expense template %s: %w", templateID, model.ErrNotFound)
		}

		var stored model.ExpenseTemplate
		if err := doc.DataTo(&stored); err != nil {
			return fmt.Errorf("failed to parse expense template: %w", err)
		}
		if !stored.NextOccurrence.Equal(expectedNext) {
			return fmt.Errorf("expense template %s: %w", templateID, model.ErrStaleTemplate)
		}

		stored.Active = false
		stored.UpdatedAt = time.Now().UTC()
		return tx.Set(tmplRef, &stored)
	})
}

// Income template operations

func (s *FirestoreStore) CreateIncomeTemplate(ctx context.Context, tmpl *model.IncomeTemplate) error {
	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}
	_, err := s.client.Collection(collIncomeTemplates).Doc(tmpl.ID).Set(ctx, tmpl)
	return err
}

func (s *FirestoreStore) GetIncomeTemplate(ctx context.Context, templateID string) (*model.IncomeTemplate, error) {
	doc, err := s.client.Collection(collIncomeTemplates).Doc(templateID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("income template %s: %w", templateID, model.ErrNotFound)
	}

	var tmpl model.IncomeTemplate
	if err := doc.DataTo(&tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse income template: %w", err)
	}
	return &tmpl, nil
}

func (s *FirestoreStore) UpdateIncomeTemplate(ctx context.Context, tmpl *model.IncomeTemplate) error {
	_, err := s.client.Collection(collIncomeTemplates).Doc(tmpl.ID).Set(ctx, tmpl)
	return err
}

func (s *FirestoreStore) DeleteIncomeTemplate(ctx context.Context, templateID string) error {
	_, err := s.client.Collection(collIncomeTemplates).Doc(templateID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListIncomeTemplates(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.IncomeTemplate, string, error) {
	query := s.client.Collection(collIncomeTemplates).Query
	if userID != "" {
		query = query.Where("UserID", "==", userID)
	}

	query, err := s.applyCursorPagination(query, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list income templates: %w", err)
	}
	docs, nextToken := trimPage(docs, pageSize)

	templates := make([]*model.IncomeTemplate, 0, len(docs))
	for _, doc := range docs {
		var tmpl model.IncomeTemplate
		if err := doc.DataTo(&tmpl); err != nil {
			return nil, "", fmt.Errorf("failed to parse income template: %w", err)
		}
		templates = append(templates, &tmpl)
	}
	return templates, nextToken, nil
}

func (s *FirestoreStore) ListDueIncomeTemplates(ctx context.Context, asOf time.Time, pageSize int, pageToken string) ([]*model.IncomeTemplate, string, error) {
	query := s.client.Collection(collIncomeTemplates).Where("Active", "==", true)

	pagedQuery, err := s.applyCursorPagination(query, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	docs, err := pagedQuery.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list due income templates: %w", err)
	}
	docs, nextToken := trimPage(docs, pageSize)

	cutoff := model.DateOnly(asOf)
	templates := make([]*model.IncomeTemplate, 0, len(docs))
	for _, doc := range docs {
		var tmpl model.IncomeTemplate
		if err := doc.DataTo(&tmpl); err != nil {
			return nil, "", fmt.Errorf("failed to parse income template: %w", err)
		}
		if !tmpl.NextOccurrence.After(cutoff) {
			templates = append(templates, &tmpl)
		}
	}
	return templates, nextToken, nil
}

func (s *FirestoreStore) RecordIncomeOccurrence(ctx context.Context, tmpl *model.IncomeTemplate, expectedNext time.Time, rec *model.Income) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	tmplRef := s.client.Collection(collIncomeTemplates).Doc(tmpl.ID)
	recRef := s.client.Collection(collIncomes).Doc(rec.ID)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(tmplRef)
		if err != nil {
			return fmt.Errorf("income template %s: %w", tmpl.ID, model.ErrNotFound)
		}

		var stored model.IncomeTemplate
		if err := doc.DataTo(&stored); err != nil {
			return fmt.Errorf("failed to parse income template: %w", err)
		}
		if !stored.NextOccurrence.Equal(expectedNext) {
			return fmt.Errorf("income template %s: %w", tmpl.ID, model.ErrStaleTemplate)
		}

		if err := tx.Set(recRef, rec); err != nil {
			return err
		}
		return tx.Set(tmplRef, tmpl)
	})
}

func (s *FirestoreStore) DeactivateIncomeTemplate(ctx context.Context, templateID string, expectedNext time.Time) error {
	tmplRef := s.client.Collection(collIncomeTemplates).Doc(templateID)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(tmplRef)
		if err != nil {
			return fmt.Errorf("income template %s: %w", templateID, model.ErrNotFound)
		}

		var stored model.IncomeTemplate
		if err := doc.DataTo(&stored); err != nil {
			return fmt.Errorf("failed to parse income template: %w", err)
		}
		if !stored.NextOccurrence.Equal(expectedNext) {
			return fmt.Errorf("income template %s: %w", templateID, model.ErrStaleTemplate)
		}

		stored.Active = false
		stored.UpdatedAt = time.Now().UTC()
		return tx.Set(tmplRef, &stored)
	})
}

// Expense record operations

func (s *FirestoreStore) CreateExpense(ctx context.Context, expense *model.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	_, err := s.client.Collection(collExpenses).Doc(expense.ID).Set(ctx, expense)
	return err
}

func (s *FirestoreStore) GetExpense(ctx context.Context, expenseID string) (*model.Expense, error) {
	doc, err := s.client.Collection(collExpenses).Doc(expenseID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("expense %s: %w", expenseID, model.ErrNotFound)
	}

	var expense model.Expense
	if err := doc.DataTo(&expense); err != nil {
		return nil, fmt.Errorf("failed to parse expense: %w", err)
	}
	return &expense, nil
}

func (s *FirestoreStore) DeleteExpense(ctx context.Context, expenseID string) error {
	_, err := s.client.Collection(collExpenses).Doc(expenseID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListExpenses(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Expense, string, error) {
	query := s.client.Collection(collExpenses).Query
	if userID != "" {
		query = query.Where("UserID", "==", userID)
	}

	query, err := s.applyCursorPagination(query, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list expenses: %w", err)
	}
	docs, nextToken := trimPage(docs, pageSize)

	expenses := make([]*model.Expense, 0, len(docs))
	for _, doc := range docs {
		var expense model.Expense
		if err := doc.DataTo(&expense); err != nil {
			return nil, "", fmt.Errorf("failed to parse expense: %w", err)
		}
		expenses = append(expenses, &expense)
	}
	return expenses, nextToken, nil
}

// Income record operations

func (s *FirestoreStore) CreateIncome(ctx context.Context, income *model.Income) error {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	_, err := s.client.Collection(collIncomes).Doc(income.ID).Set(ctx, income)
	return err
}

func (s *FirestoreStore) GetIncome(ctx context.Context, incomeID string) (*model.Income, error) {
	doc, err := s.client.Collection(collIncomes).Doc(incomeID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("income %s: %w", incomeID, model.ErrNotFound)
	}

	var income model.Income
	if err := doc.DataTo(&income); err != nil {
		return nil, fmt.Errorf("failed to parse income: %w", err)
	}
	return &income, nil
}

func (s *FirestoreStore) DeleteIncome(ctx context.Context, incomeID string) error {
	_, err := s.client.Collection(collIncomes).Doc(incomeID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListIncomes(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Income, string, error) {
	query := s.client.Collection(collIncomes).Query
	if userID != "" {
		query = query.Where("UserID", "==", userID)
	}

	query, err := s.applyCursorPagination(query, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list incomes: %w", err)
	}
	docs, nextToken := trimPage(docs, pageSize)

	incomes := make([]*model.Income, 0, len(docs))
	for _, doc := range docs {
		var income model.Income
		if err := doc.DataTo(&income); err != nil {
			return nil, "", fmt.Errorf("failed to parse income: %w", err)
		}
		incomes = append(incomes, &income)
	}
	return incomes, nextToken, nil
}

// Budget operations
//
// Firestore has no unique constraints; budget uniqueness relies on the
// service's pre-check. The SQL backend enforces it with an index as well.

func (s *FirestoreStore) CreateBudget(ctx context.Context, budget *model.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	_, err := s.client.Collection(collBudgets).Doc(budget.ID).Set(ctx, budget)
	return err
}

func (s *FirestoreStore) GetBudget(ctx context.Context, budgetID string) (*model.Budget, error) {
	doc, err := s.client.Collection(collBudgets).Doc(budgetID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("budget %s: %w", budgetID, model.ErrNotFound)
	}

	var budget model.Budget
	if err := doc.DataTo(&budget); err != nil {
		return nil, fmt.Errorf("failed to parse budget: %w", err)
	}
	return &budget, nil
}

func (s *FirestoreStore) GetBudgetByCategoryMonth(ctx context.Context, userID, category, month string) (*model.Budget, error) {
	docs, err := s.client.Collection(collBudgets).
		Where("UserID", "==", userID).
		Where("Category", "==", category).
		Where("Month", "==", month).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("budget for %s %s: %w", category, month, model.ErrNotFound)
	}

	var budget model.Budget
	if err := docs[0].DataTo(&budget); err != nil {
		return nil, fmt.Errorf("failed to parse budget: %w", err)
	}
	return &budget, nil
}

func (s *FirestoreStore) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	_, err := s.client.Collection(collBudgets).Doc(budget.ID).Set(ctx, budget)
	return err
}

func (s *FirestoreStore) DeleteBudget(ctx context.Context, budgetID string) error {
	_, err := s.client.Collection(collBudgets).Doc(budgetID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListBudgets(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Budget, string, error) {
	query := s.client.Collection(collBudgets).Query
	if userID != "" {
		query = query.Where("UserID", "==", userID)
	}

	query, err := s.applyCursorPagination(query, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list budgets: %w", err)
	}
	docs, nextToken := trimPage(docs, pageSize)

	budgets := make([]*model.Budget, 0, len(docs))
	for _, doc := range docs {
		var budget model.Budget
		if err := doc.DataTo(&budget); err != nil {
			return nil, "", fmt.Errorf("failed to parse budget: %w", err)
		}
		budgets = append(budgets, &budget)
	}
	return budgets, nextToken, nil
}

// Notification operations

func (s *FirestoreStore) CreateNotification(ctx context.Context, notification *model.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	_, err := s.client.Collection(collNotifications).Doc(notification.ID).Set(ctx, notification)
	return err
}

func (s *FirestoreStore) HasNotification(ctx context.Context, userID, kind, templateID string, date time.Time) (bool, error) {
	docs, err := s.client.Collection(collNotifications).
		Where("UserID", "==", userID).
		Where("Kind", "==", kind).
		Where("TemplateID", "==", templateID).
		Where("Date", "==", model.DateOnly(date)).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return false, fmt.Errorf("failed to query notifications: %w", err)
	}
	return len(docs) > 0, nil
}

func (s *FirestoreStore) ListNotifications(ctx context.Context, userID string, unreadOnly bool, pageSize int, pageToken string) ([]*model.Notification, string, error) {
	query := s.client.Collection(collNotifications).Where("UserID", "==", userID)
	if unreadOnly {
		query = query.Where("Read", "==", false)
	}

	query, err := s.applyCursorPagination(query, pageSize, pageToken)
	if err != nil {
		return nil, "", err
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list notifications: %w", err)
	}
	docs, nextToken := trimPage(docs, pageSize)

	notifications := make([]*model.Notification, 0, len(docs))
	for _, doc := range docs {
		var notification model.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, "", fmt.Errorf("failed to parse notification: %w", err)
		}
		notifications = append(notifications, &notification)
	}
	return notifications, nextToken, nil
}

func (s *FirestoreStore) MarkNotificationRead(ctx context.Context, notificationID string) error {
	_, err := s.client.Collection(collNotifications).Doc(notificationID).Update(ctx, []firestore.Update{
		{Path: "Read", Value: true},
	})
	if err != nil {
		return fmt.Errorf("notification %s: %w", notificationID, model.ErrNotFound)
	}
	return nil
}

// Batch run operations

func (s *FirestoreStore) CreateBatchRun(ctx context.Context, run *model.BatchRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	_, err := s.client.Collection(collBatchRuns).Doc(run.ID).Set(ctx, run)
	return err
}

func (s *FirestoreStore) ListBatchRuns(ctx context.Context, limit int) ([]*model.BatchRun, error) {
	if limit <= 0 {
		limit = 50
	}

	docs, err := s.client.Collection(collBatchRuns).
		OrderBy("StartedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list batch runs: %w", err)
	}

	runs := make([]*model.BatchRun, 0, len(docs))
	for _, doc := range docs {
		var run model.BatchRun
		if err := doc.DataTo(&run); err != nil {
			return nil, fmt.Errorf("failed to parse batch run: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, nil
}
