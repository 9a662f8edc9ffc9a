package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkrall/pennywise/backend/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const uniqueViolation = "23505"

// NewPostgresPool connects a pgx pool and verifies the connection.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// MigratePostgres applies the embedded schema migrations. Safe to call on
// every startup; a database already at the current version is a no-op.
func MigratePostgres(databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	// The migrate pgx driver registers itself under the pgx5 scheme.
	url := strings.Replace(databaseURL, "postgres://", "pgx5://", 1)
	url = strings.Replace(url, "postgresql://", "pgx5://", 1)

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// PostgresStore implements the Store interface over Postgres with raw SQL.
// Conditional occurrence commits use `WHERE next_occurrence = $expected` as
// the claim, so the row update and the record insert share one transaction.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres-backed store.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &PostgresStore{pool: pool}
}

const expenseTemplateCols = "id, user_id, amount, amount_cents, description, category, frequency, anchor_date, next_occurrence, expiry_date, active, created_at, updated_at"

func scanExpenseTemplate(row pgx.Row) (*model.ExpenseTemplate, error) {
	var t model.ExpenseTemplate
	err := row.Scan(&t.ID, &t.UserID, &t.Amount, &t.AmountCents, &t.Description, &t.Category,
		&t.Frequency, &t.AnchorDate, &t.NextOccurrence, &t.ExpiryDate, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const incomeTemplateCols = "id, user_id, amount, amount_cents, source, frequency, anchor_date, next_occurrence, expiry_date, active, created_at, updated_at"

func scanIncomeTemplate(row pgx.Row) (*model.IncomeTemplate, error) {
	var t model.IncomeTemplate
	err := row.Scan(&t.ID, &t.UserID, &t.Amount, &t.AmountCents, &t.Source,
		&t.Frequency, &t.AnchorDate, &t.NextOccurrence, &t.ExpiryDate, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Expense template operations

func (s *PostgresStore) CreateExpenseTemplate(ctx context.Context, tmpl *model.ExpenseTemplate) error {
	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO expense_templates (id, user_id, amount, amount_cents, description, category, frequency, anchor_date, next_occurrence, expiry_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		tmpl.ID, tmpl.UserID, tmpl.Amount, tmpl.AmountCents, tmpl.Description, tmpl.Category,
		tmpl.Frequency, tmpl.AnchorDate, tmpl.NextOccurrence, tmpl.ExpiryDate, tmpl.Active, tmpl.CreatedAt, tmpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense template: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetExpenseTemplate(ctx context.Context, templateID string) (*model.ExpenseTemplate, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+expenseTemplateCols+" FROM expense_templates WHERE id = $1", templateID)

	tmpl, err := scanExpenseTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("expense template %s: %w", templateID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense template: %w", err)
	}
	return tmpl, nil
}

func (s *PostgresStore) UpdateExpenseTemplate(ctx context.Context, tmpl *model.ExpenseTemplate) error {
	ct, err := s.pool.Exec(ctx, `
		UPDATE expense_templates
		SET amount = $1, amount_cents = $2, description = $3, category = $4, frequency = $5,
		    next_occurrence = $6, expiry_date = $7, active = $8, updated_at = $9
		WHERE id = $10`,
		tmpl.Amount, tmpl.AmountCents, tmpl.Description, tmpl.Category, tmpl.Frequency,
		tmpl.NextOccurrence, tmpl.ExpiryDate, tmpl.Active, tmpl.UpdatedAt, tmpl.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense template: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("expense template %s: %w", tmpl.ID, model.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) DeleteExpenseTemplate(ctx context.Context, templateID string) error {
	ct, err := s.pool.Exec(ctx, "DELETE FROM expense_templates WHERE id = $1", templateID)
	if err != nil {
		return fmt.Errorf("failed to delete expense template: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("expense template %s: %w", templateID, model.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) ListExpenseTemplates(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.ExpenseTemplate, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	cursor, err := DecodePageToken(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page token: %w", err)
	}

	query := "SELECT " + expenseTemplateCols + " FROM expense_templates WHERE id > $1"
	args := []any{cursor}
	if userID != "" {
		query += " AND user_id = $2"
		args = append(args, userID)
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT %d", pageSize+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list expense templates: %w", err)
	}
	defer rows.Close()

	var templates []*model.ExpenseTemplate
	for rows.Next() {
		tmpl, err := scanExpenseTemplate(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan expense template: %w", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to list expense templates: %w", err)
	}

	var nextToken string
	if len(templates) > pageSize {
		templates = templates[:pageSize]
		nextToken = EncodePageToken(templates[pageSize-1].ID)
	}
	return templates, nextToken, nil
}

func (s *PostgresStore) ListDueExpenseTemplates(ctx context.Context, asOf time.Time, pageSize int, pageToken string) ([]*model.ExpenseTemplate, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	cursor, err := DecodePageToken(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page token: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+expenseTemplateCols+` FROM expense_templates
		WHERE id > $1 AND active AND next_occurrence <= $2
		ORDER BY id LIMIT $3`,
		cursor, model.DateOnly(asOf), pageSize+1)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list due expense templates: %w", err)
	}
	defer rows.Close()

	var templates []*model.ExpenseTemplate
	for rows.Next() {
		tmpl, err := scanExpenseTemplate(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan expense template: %w", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to list due expense templates: %w", err)
	}

	var nextToken string
	if len(templates) > pageSize {
		templates = templates[:pageSize]
		nextToken = EncodePageToken(templates[pageSize-1].ID)
	}
	return templates, nextToken, nil
}

func (s *PostgresStore) RecordExpenseOccurrence(ctx context.Context, tmpl *model.ExpenseTemplate, expectedNext time.Time, rec *model.Expense) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE expense_templates
		SET amount = $1, amount_cents = $2, description = $3, category = $4, frequency = $5,
		    next_occurrence = $6, expiry_date = $7, active = $8, updated_at = $9
		WHERE id = $10 AND next_occurrence = $11`,
		tmpl.Amount, tmpl.AmountCents, tmpl.Description, tmpl.Category, tmpl.Frequency,
		tmpl.NextOccurrence, tmpl.ExpiryDate, tmpl.Active, tmpl.UpdatedAt, tmpl.ID, expectedNext)
	if err != nil {
		return fmt.Errorf("failed to advance expense template: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return s.diagnoseClaimFailure(ctx, tx, "expense_templates", "expense template", tmpl.ID)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO expenses (id, user_id, amount, amount_cents, description, category, date, generated, template_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.UserID, rec.Amount, rec.AmountCents, rec.Description, rec.Category,
		rec.Date, rec.Generated, rec.TemplateID, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert generated expense: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) DeactivateExpenseTemplate(ctx context.Context, templateID string, expectedNext time.Time) error {
	ct, err := s.pool.Exec(ctx, `
		UPDATE expense_templates SET active = FALSE, updated_at = $1
		WHERE id = $2 AND next_occurrence = $3`,
		time.Now().UTC(), templateID, expectedNext)
	if err != nil {
		return fmt.Errorf("failed to deactivate expense template: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return s.diagnoseClaimFailure(ctx, s.pool, "expense_templates", "expense template", templateID)
	}
	return nil
}

// queryRower is satisfied by both *pgxpool.Pool and pgx.Tx.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// diagnoseClaimFailure turns a zero-row conditional update into the right
// sentinel: the template is either gone or its NextOccurrence moved.
func (s *PostgresStore) diagnoseClaimFailure(ctx context.Context, q queryRower, table, label, id string) error {
	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM "+table+" WHERE id = $1)", id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check %s: %w", label, err)
	}
	if !exists {
		return fmt.Errorf("%s %s: %w", label, id, model.ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", label, id, model.ErrStaleTemplate)
}

// Income template operations

func (s *PostgresStore) CreateIncomeTemplate(ctx context.Context, tmpl *model.IncomeTemplate) error {
	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO income_templates (id, user_id, amount, amount_cents, source, frequency, anchor_date, next_occurrence, expiry_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		tmpl.ID, tmpl.UserID, tmpl.Amount, tmpl.AmountCents, tmpl.Source,
		tmpl.Frequency, tmpl.AnchorDate, tmpl.NextOccurrence, tmpl.ExpiryDate, tmpl.Active, tmpl.CreatedAt, tmpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income template: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetIncomeTemplate(ctx context.Context, templateID string) (*model.IncomeTemplate, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+incomeTemplateCols+" FROM income_templates WHERE id = $1", templateID)

	tmpl, err := scanIncomeTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("income template %s: %w", templateID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get income template: %w", err)
	}
	return tmpl, nil
}

func (s *PostgresStore) UpdateIncomeTemplate(ctx context.Context, tmpl *model.IncomeTemplate) error {
	ct, err := s.pool.Exec(ctx, `
		UPDATE income_templates
		SET amount = $1, amount_cents = $2, source = $3, frequency = $4,
		    next_occurrence = $5, expiry_date = $6, active = $7, updated_at = $8
		WHERE id = $9`,
		tmpl.Amount, tmpl.AmountCents, tmpl.Source, tmpl.Frequency,
		tmpl.NextOccurrence, tmpl.ExpiryDate, tmpl.Active, tmpl.UpdatedAt, tmpl.ID)
	if err != nil {
		return fmt.Errorf("failed to update income template: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("income template %s: %w", tmpl.ID, model.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) DeleteIncomeTemplate(ctx context.Context, templateID string) error {
	ct, err := s.pool.Exec(ctx, "DELETE FROM income_templates WHERE id = $1", templateID)
	if err != nil {
		return fmt.Errorf("failed to delete income template: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("income template %s: %w", templateID, model.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) ListIncomeTemplates(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.IncomeTemplate, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	cursor, err := DecodePageToken(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page token: %w", err)
	}

	query := "SELECT " + incomeTemplateCols + " FROM income_templates WHERE id > $1"
	args := []any{cursor}
	if userID != "" {
		query += " AND user_id = $2"
		args = append(args, userID)
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT %d", pageSize+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list income templates: %w", err)
	}
	defer rows.Close()

	var templates []*model.IncomeTemplate
	for rows.Next() {
		tmpl, err := scanIncomeTemplate(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan income template: %w", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to list income templates: %w", err)
	}

	var nextToken string
	if len(templates) > pageSize {
		templates = templates[:pageSize]
		nextToken = EncodePageToken(templates[pageSize-1].ID)
	}
	return templates, nextToken, nil
}

func (s *PostgresStore) ListDueIncomeTemplates(ctx context.Context, asOf time.Time, pageSize int, pageToken string) ([]*model.IncomeTemplate, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	cursor, err := DecodePageToken(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page token: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+incomeTemplateCols+` FROM income_templates
		WHERE id > $1 AND active AND next_occurrence <= $2
		ORDER BY id LIMIT $3`,
		cursor, model.DateOnly(asOf), pageSize+1)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list due income templates: %w", err)
	}
	defer rows.Close()

	var templates []*model.IncomeTemplate
	for rows.Next() {
		tmpl, err := scanIncomeTemplate(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan income template: %w", err)
		}
		templates = append(templates, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to list due income templates: %w", err)
	}

	var nextToken string
	if len(templates) > pageSize {
		templates = templates[:pageSize]
		nextToken = EncodePageToken(templates[pageSize-1].ID)
	}
	return templates, nextToken, nil
}

func (s *PostgresStore) RecordIncomeOccurrence(ctx context.Context, tmpl *model.IncomeTemplate, expectedNext time.Time, rec *model.Income) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE income_templates
		SET amount = $1, amount_cents = $2, source = $3, frequency = $4,
		    next_occurrence = $5, expiry_date = $6, active = $7, updated_at = $8
		WHERE id = $9 AND next_occurrence = $10`,
		tmpl.Amount, tmpl.AmountCents, tmpl.Source, tmpl.Frequency,
		tmpl.NextOccurrence, tmpl.ExpiryDate, tmpl.Active, tmpl.UpdatedAt, tmpl.ID, expectedNext)
	if err != nil {
		return fmt.Errorf("failed to advance income template: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return s.diagnoseClaimFailure(ctx, tx, "income_templates", "income template", tmpl.ID)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO incomes (id, user_id, amount, amount_cents, source, date, generated, template_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.UserID, rec.Amount, rec.AmountCents, rec.Source,
		rec.Date, rec.Generated, rec.TemplateID, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert generated income: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) DeactivateIncomeTemplate(ctx context.Context, templateID string, expectedNext time.Time) error {
	ct, err := s.pool.Exec(ctx, `
		UPDATE income_templates SET active = FALSE, updated_at = $1
		WHERE id = $2 AND next_occurrence = $3`,
		time.Now().UTC(), templateID, expectedNext)
	if err != nil {
		return fmt.Errorf("failed to deactivate income template: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return s.diagnoseClaimFailure(ctx, s.pool, "income_templates", "income template", templateID)
	}
	return nil
}

// Expense record operations

const expenseCols = "id, user_id, amount, amount_cents, description, category, date, generated, template_id, created_at"

func scanExpense(row pgx.Row) (*model.Expense, error) {
	var e model.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.AmountCents, &e.Description, &e.Category,
		&e.Date, &e.Generated, &e.TemplateID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *PostgresStore) CreateExpense(ctx context.Context, expense *model.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO expenses (id, user_id, amount, amount_cents, description, category, date, generated, template_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		expense.ID, expense.UserID, expense.Amount, expense.AmountCents, expense.Description, expense.Category,
		expense.Date, expense.Generated, expense.TemplateID, expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetExpense(ctx context.Context, expenseID string) (*model.Expense, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+expenseCols+" FROM expenses WHERE id = $1", expenseID)

	expense, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

func (s *PostgresStore) DeleteExpense(ctx context.Context, expenseID string) error {
	ct, err := s.pool.Exec(ctx, "DELETE FROM expenses WHERE id = $1", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, model.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) ListExpenses(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Expense, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	cursor, err := DecodePageToken(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page token: %w", err)
	}

	query := "SELECT " + expenseCols + " FROM expenses WHERE id > $1"
	args := []any{cursor}
	if userID != "" {
		query += " AND user_id = $2"
		args = append(args, userID)
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT %d", pageSize+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to list expenses: %w", err)
	}

	var nextToken string
	if len(expenses) > pageSize {
		expenses = expenses[:pageSize]
		nextToken = EncodePageToken(expenses[pageSize-1].ID)
	}
	return expenses, nextToken, nil
}

// Income record operations

const incomeCols = "id, user_id, amount, amount_cents, source, date, generated, template_id, created_at"

func scanIncome(row pgx.Row) (*model.Income, error) {
	var i model.Income
	err := row.Scan(&i.ID, &i.UserID, &i.Amount, &i.AmountCents, &i.Source,
		&i.Date, &i.Generated, &i.TemplateID, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *PostgresStore) CreateIncome(ctx context.Context, income *model.Income) error {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO incomes (id, user_id, amount, amount_cents, source, date, generated, template_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		income.ID, income.UserID, income.Amount, income.AmountCents, income.Source,
		income.Date, income.Generated, income.TemplateID, income.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetIncome(ctx context.Context, incomeID string) (*model.Income, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+incomeCols+" FROM incomes WHERE id = $1", incomeID)

	income, err := scanIncome(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("income %s: %w", incomeID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	return income, nil
}

func (s *PostgresStore) DeleteIncome(ctx context.Context, incomeID string) error {
	ct, err := s.pool.Exec(ctx, "DELETE FROM incomes WHERE id = $1", incomeID)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("income %s: %w", incomeID, model.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) ListIncomes(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Income, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	cursor, err := DecodePageToken(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page token: %w", err)
	}

	query := "SELECT " + incomeCols + " FROM incomes WHERE id > $1"
	args := []any{cursor}
	if userID != "" {
		query += " AND user_id = $2"
		args = append(args, userID)
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT %d", pageSize+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []*model.Income
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, income)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to list incomes: %w", err)
	}

	var nextToken string
	if len(incomes) > pageSize {
		incomes = incomes[:pageSize]
		nextToken = EncodePageToken(incomes[pageSize-1].ID)
	}
	return incomes, nextToken, nil
}

// Budget operations

const budgetCols = "id, user_id, category, month, amount, amount_cents, created_at, updated_at"

func scanBudget(row pgx.Row) (*model.Budget, error) {
	var b model.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Month, &b.Amount, &b.AmountCents, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PostgresStore) CreateBudget(ctx context.Context, budget *model.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO budgets (id, user_id, category, month, amount, amount_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		budget.ID, budget.UserID, budget.Category, budget.Month, budget.Amount, budget.AmountCents, budget.CreatedAt, budget.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("budget for %s %s: %w", budget.Category, budget.Month, model.ErrConflict)
		}
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetBudget(ctx context.Context, budgetID string) (*model.Budget, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+budgetCols+" FROM budgets WHERE id = $1", budgetID)

	budget, err := scanBudget(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("budget %s: %w", budgetID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

func (s *PostgresStore) GetBudgetByCategoryMonth(ctx context.Context, userID, category, month string) (*model.Budget, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+budgetCols+" FROM budgets WHERE user_id = $1 AND category = $2 AND month = $3",
		userID, category, month)

	budget, err := scanBudget(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("budget for %s %s: %w", category, month, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

func (s *PostgresStore) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	ct, err := s.pool.Exec(ctx, `
		UPDATE budgets SET category = $1, month = $2, amount = $3, amount_cents = $4, updated_at = $5
		WHERE id = $6`,
		budget.Category, budget.Month, budget.Amount, budget.AmountCents, budget.UpdatedAt, budget.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("budget for %s %s: %w", budget.Category, budget.Month, model.ErrConflict)
		}
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("budget %s: %w", budget.ID, model.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) DeleteBudget(ctx context.Context, budgetID string) error {
	ct, err := s.pool.Exec(ctx, "DELETE FROM budgets WHERE id = $1", budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("budget %s: %w", budgetID, model.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) ListBudgets(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.Budget, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	cursor, err := DecodePageToken(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page token: %w", err)
	}

	query := "SELECT " + budgetCols + " FROM budgets WHERE id > $1"
	args := []any{cursor}
	if userID != "" {
		query += " AND user_id = $2"
		args = append(args, userID)
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT %d", pageSize+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*model.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to list budgets: %w", err)
	}

	var nextToken string
	if len(budgets) > pageSize {
		budgets = budgets[:pageSize]
		nextToken = EncodePageToken(budgets[pageSize-1].ID)
	}
	return budgets, nextToken, nil
}

// Notification operations

const notificationCols = "id, user_id, kind, template_id, title, message, date, read, created_at"

func scanNotification(row pgx.Row) (*model.Notification, error) {
	var n model.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Kind, &n.TemplateID, &n.Title, &n.Message, &n.Date, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *PostgresStore) CreateNotification(ctx context.Context, notification *model.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, kind, template_id, title, message, date, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		notification.ID, notification.UserID, notification.Kind, notification.TemplateID,
		notification.Title, notification.Message, notification.Date, notification.Read, notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) HasNotification(ctx context.Context, userID, kind, templateID string, date time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND kind = $2 AND template_id = $3 AND date = $4
		)`,
		userID, kind, templateID, model.DateOnly(date)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query notifications: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListNotifications(ctx context.Context, userID string, unreadOnly bool, pageSize int, pageToken string) ([]*model.Notification, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}
	cursor, err := DecodePageToken(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("invalid page token: %w", err)
	}

	query := "SELECT " + notificationCols + " FROM notifications WHERE id > $1 AND user_id = $2"
	args := []any{cursor, userID}
	if unreadOnly {
		query += " AND NOT read"
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT %d", pageSize+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to list notifications: %w", err)
	}

	var nextToken string
	if len(notifications) > pageSize {
		notifications = notifications[:pageSize]
		nextToken = EncodePageToken(notifications[pageSize-1].ID)
	}
	return notifications, nextToken, nil
}

func (s *PostgresStore) MarkNotificationRead(ctx context.Context, notificationID string) error {
	ct, err := s.pool.Exec(ctx, "UPDATE notifications SET read = TRUE WHERE id = $1", notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, model.ErrNotFound)
	}
	return nil
}

// Batch run operations

func (s *PostgresStore) CreateBatchRun(ctx context.Context, run *model.BatchRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO batch_runs (id, as_of, started_at, finished_at, expenses_created, incomes_created, total_processed, expired, failed, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		run.ID, run.AsOf, run.StartedAt, run.FinishedAt, run.ExpensesCreated, run.IncomesCreated,
		run.TotalProcessed, run.Expired, run.Failed, run.Error)
	if err != nil {
		return fmt.Errorf("failed to create batch run: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListBatchRuns(ctx context.Context, limit int) ([]*model.BatchRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, as_of, started_at, finished_at, expenses_created, incomes_created, total_processed, expired, failed, error
		FROM batch_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.BatchRun
	for rows.Next() {
		var run model.BatchRun
		err := rows.Scan(&run.ID, &run.AsOf, &run.StartedAt, &run.FinishedAt, &run.ExpensesCreated,
			&run.IncomesCreated, &run.TotalProcessed, &run.Expired, &run.Failed, &run.Error)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch run: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list batch runs: %w", err)
	}
	return runs, nil
}
