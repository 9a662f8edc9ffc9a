package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mkrall/pennywise/backend/internal/categorize"
	"github.com/mkrall/pennywise/backend/internal/model"
	"github.com/mkrall/pennywise/backend/internal/store"
)

// TemplateService manages recurring expense and income templates. All reads
// and mutations are owner-scoped: a template belonging to another user is
// reported as not found, never as forbidden.
type TemplateService struct {
	store       store.Store
	categorizer *categorize.Categorizer
}

// NewTemplateService creates a template service. categorizer may be nil, in
// which case uncategorized expense templates default to "other".
func NewTemplateService(store store.Store, categorizer *categorize.Categorizer) *TemplateService {
	return &TemplateService{
		store:       store,
		categorizer: categorizer,
	}
}

// ExpenseTemplateInput carries the fields a caller controls at creation.
type ExpenseTemplateInput struct {
	UserID      string
	Amount      float64
	Description string
	Category    string
	Frequency   string
	AnchorDate  time.Time
	ExpiryDate  *time.Time
}

// ExpenseTemplateUpdate is a partial update; nil fields are left unchanged.
// The anchor date and owner are immutable.
type ExpenseTemplateUpdate struct {
	Amount      *float64
	Description *string
	Category    *string
	Frequency   *string
	ExpiryDate  *time.Time
	ClearExpiry bool
	Active      *bool
}

// IncomeTemplateInput carries the fields a caller controls at creation.
type IncomeTemplateInput struct {
	UserID     string
	Amount     float64
	Source     string
	Frequency  string
	AnchorDate time.Time
	ExpiryDate *time.Time
}

// IncomeTemplateUpdate is a partial update; nil fields are left unchanged.
type IncomeTemplateUpdate struct {
	Amount      *float64
	Source      *string
	Frequency   *string
	ExpiryDate  *time.Time
	ClearExpiry bool
	Active      *bool
}

// CreateExpenseTemplate validates and persists a new expense template. The
// first occurrence is scheduled for the anchor date itself.
func (s *TemplateService) CreateExpenseTemplate(ctx context.Context, input ExpenseTemplateInput) (*model.ExpenseTemplate, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("user id is required: %w", model.ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", model.ErrInvalidInput)
	}
	if input.AnchorDate.IsZero() {
		return nil, fmt.Errorf("anchor date is required: %w", model.ErrInvalidInput)
	}

	frequency, err := model.ParseFrequency(input.Frequency)
	if err != nil {
		return nil, fmt.Errorf("frequency %q: %w", input.Frequency, model.ErrInvalidInput)
	}

	anchor := model.DateOnly(input.AnchorDate)
	expiry, err := normalizeExpiry(input.ExpiryDate, anchor)
	if err != nil {
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = s.suggestCategory(ctx, input.Description)
	}

	now := time.Now().UTC()
	tmpl := &model.ExpenseTemplate{
		ID:             uuid.New().String(),
		UserID:         input.UserID,
		Amount:         input.Amount,
		AmountCents:    model.Cents(input.Amount),
		Description:    input.Description,
		Category:       category,
		Frequency:      frequency,
		AnchorDate:     anchor,
		NextOccurrence: anchor,
		ExpiryDate:     expiry,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.CreateExpenseTemplate(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to create expense template: %w", err)
	}
	return tmpl, nil
}

// GetExpenseTemplate returns a template owned by userID.
func (s *TemplateService) GetExpenseTemplate(ctx context.Context, userID, templateID string) (*model.ExpenseTemplate, error) {
	return s.getOwnedExpenseTemplate(ctx, userID, templateID)
}

// ListExpenseTemplates pages through the templates owned by userID.
func (s *TemplateService) ListExpenseTemplates(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.ExpenseTemplate, string, error) {
	if userID == "" {
		return nil, "", fmt.Errorf("user id is required: %w", model.ErrInvalidInput)
	}
	return s.store.ListExpenseTemplates(ctx, userID, pageSize, pageToken)
}

// UpdateExpenseTemplate applies a partial update to an owned template.
// Toggling Active back on resumes from the stored NextOccurrence; the
// schedule is never reset to today.
func (s *TemplateService) UpdateExpenseTemplate(ctx context.Context, userID, templateID string, update ExpenseTemplateUpdate) (*model.ExpenseTemplate, error) {
	tmpl, err := s.getOwnedExpenseTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	if update.Amount != nil {
		if *update.Amount <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", model.ErrInvalidInput)
		}
		tmpl.Amount = *update.Amount
		tmpl.AmountCents = model.Cents(*update.Amount)
	}
	if update.Description != nil {
		tmpl.Description = *update.Description
	}
	if update.Category != nil {
		tmpl.Category = *update.Category
	}
	if update.Frequency != nil {
		frequency, err := model.ParseFrequency(*update.Frequency)
		if err != nil {
			return nil, fmt.Errorf("frequency %q: %w", *update.Frequency, model.ErrInvalidInput)
		}
		tmpl.Frequency = frequency
	}
	if update.ClearExpiry {
		tmpl.ExpiryDate = nil
	} else if update.ExpiryDate != nil {
		expiry, err := normalizeExpiry(update.ExpiryDate, tmpl.AnchorDate)
		if err != nil {
			return nil, err
		}
		tmpl.ExpiryDate = expiry
	}
	if update.Active != nil {
		tmpl.Active = *update.Active
	}

	tmpl.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateExpenseTemplate(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to update expense template: %w", err)
	}
	return tmpl, nil
}

// DeleteExpenseTemplate removes an owned template. Records already generated
// from it are untouched; their template reference simply goes dangling.
func (s *TemplateService) DeleteExpenseTemplate(ctx context.Context, userID, templateID string) error {
	if _, err := s.getOwnedExpenseTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	if err := s.store.DeleteExpenseTemplate(ctx, templateID); err != nil {
		return fmt.Errorf("failed to delete expense template: %w", err)
	}
	return nil
}

// CreateIncomeTemplate validates and persists a new income template.
func (s *TemplateService) CreateIncomeTemplate(ctx context.Context, input IncomeTemplateInput) (*model.IncomeTemplate, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("user id is required: %w", model.ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", model.ErrInvalidInput)
	}
	if input.AnchorDate.IsZero() {
		return nil, fmt.Errorf("anchor date is required: %w", model.ErrInvalidInput)
	}

	frequency, err := model.ParseFrequency(input.Frequency)
	if err != nil {
		return nil, fmt.Errorf("frequency %q: %w", input.Frequency, model.ErrInvalidInput)
	}

	anchor := model.DateOnly(input.AnchorDate)
	expiry, err := normalizeExpiry(input.ExpiryDate, anchor)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tmpl := &model.IncomeTemplate{
		ID:             uuid.New().String(),
		UserID:         input.UserID,
		Amount:         input.Amount,
		AmountCents:    model.Cents(input.Amount),
		Source:         input.Source,
		Frequency:      frequency,
		AnchorDate:     anchor,
		NextOccurrence: anchor,
		ExpiryDate:     expiry,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.CreateIncomeTemplate(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to create income template: %w", err)
	}
	return tmpl, nil
}

// GetIncomeTemplate returns a template owned by userID.
func (s *TemplateService) GetIncomeTemplate(ctx context.Context, userID, templateID string) (*model.IncomeTemplate, error) {
	return s.getOwnedIncomeTemplate(ctx, userID, templateID)
}

// ListIncomeTemplates pages through the templates owned by userID.
func (s *TemplateService) ListIncomeTemplates(ctx context.Context, userID string, pageSize int, pageToken string) ([]*model.IncomeTemplate, string, error) {
	if userID == "" {
		return nil, "", fmt.Errorf("user id is required: %w", model.ErrInvalidInput)
	}
	return s.store.ListIncomeTemplates(ctx, userID, pageSize, pageToken)
}

// UpdateIncomeTemplate applies a partial update to an owned template.
func (s *TemplateService) UpdateIncomeTemplate(ctx context.Context, userID, templateID string, update IncomeTemplateUpdate) (*model.IncomeTemplate, error) {
	tmpl, err := s.getOwnedIncomeTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	if update.Amount != nil {
		if *update.Amount <= 0 {
			return nil, fmt.Errorf("amount must be positive: %w", model.ErrInvalidInput)
		}
		tmpl.Amount = *update.Amount
		tmpl.AmountCents = model.Cents(*update.Amount)
	}
	if update.Source != nil {
		tmpl.Source = *update.Source
	}
	if update.Frequency != nil {
		frequency, err := model.ParseFrequency(*update.Frequency)
		if err != nil {
			return nil, fmt.Errorf("frequency %q: %w", *update.Frequency, model.ErrInvalidInput)
		}
		tmpl.Frequency = frequency
	}
	if update.ClearExpiry {
		tmpl.ExpiryDate = nil
	} else if update.ExpiryDate != nil {
		expiry, err := normalizeExpiry(update.ExpiryDate, tmpl.AnchorDate)
		if err != nil {
			return nil, err
		}
		tmpl.ExpiryDate = expiry
	}
	if update.Active != nil {
		tmpl.Active = *update.Active
	}

	tmpl.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateIncomeTemplate(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to update income template: %w", err)
	}
	return tmpl, nil
}

// DeleteIncomeTemplate removes an owned template without touching generated
// income records.
func (s *TemplateService) DeleteIncomeTemplate(ctx context.Context, userID, templateID string) error {
	if _, err := s.getOwnedIncomeTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	if err := s.store.DeleteIncomeTemplate(ctx, templateID); err != nil {
		return fmt.Errorf("failed to delete income template: %w", err)
	}
	return nil
}

func (s *TemplateService) getOwnedExpenseTemplate(ctx context.Context, userID, templateID string) (*model.ExpenseTemplate, error) {
	if userID == "" || templateID == "" {
		return nil, fmt.Errorf("user id and template id are required: %w", model.ErrInvalidInput)
	}
	tmpl, err := s.store.GetExpenseTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if tmpl.UserID != userID {
		// Same signal as a missing template so existence never leaks
		// across owners.
		return nil, fmt.Errorf("expense template %s: %w", templateID, model.ErrNotFound)
	}
	return tmpl, nil
}

func (s *TemplateService) getOwnedIncomeTemplate(ctx context.Context, userID, templateID string) (*model.IncomeTemplate, error) {
	if userID == "" || templateID == "" {
		return nil, fmt.Errorf("user id and template id are required: %w", model.ErrInvalidInput)
	}
	tmpl, err := s.store.GetIncomeTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if tmpl.UserID != userID {
		return nil, fmt.Errorf("income template %s: %w", templateID, model.ErrNotFound)
	}
	return tmpl, nil
}

// suggestCategory asks the categorizer for a label, falling back to "other"
// when no categorizer is wired or the call fails.
func (s *TemplateService) suggestCategory(ctx context.Context, description string) string {
	if s.categorizer == nil {
		return "other"
	}
	category, err := s.categorizer.Suggest(ctx, description)
	if err != nil {
		log.Printf("[TemplateService] Failed to suggest category for %q: %v", description, err)
		return "other"
	}
	return category
}

// normalizeExpiry snaps an optional expiry to a UTC date and enforces that
// it lies strictly after the anchor.
func normalizeExpiry(expiry *time.Time, anchor time.Time) (*time.Time, error) {
	if expiry == nil {
		return nil, nil
	}
	normalized := model.DateOnly(*expiry)
	if !normalized.After(anchor) {
		return nil, fmt.Errorf("expiry date must be after anchor date: %w", model.ErrInvalidInput)
	}
	return &normalized, nil
}
