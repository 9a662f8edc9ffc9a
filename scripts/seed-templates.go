//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkrall/pennywise/backend/internal/categorize"
	"github.com/mkrall/pennywise/backend/internal/config"
	"github.com/mkrall/pennywise/backend/internal/service"
	"github.com/mkrall/pennywise/backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	// Get user ID from environment or use default local dev user
	userID := os.Getenv("USER_ID")
	if userID == "" {
		userID = "local-dev-user"
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("🌱 Seeding recurring templates for user: %s", userID)
	log.Printf("🗄  Store backend: %s", cfg.StoreBackend)

	ctx := context.Background()
	st, cleanup, err := store.Open(ctx, cfg.StoreBackend, cfg.ProjectID, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}
	defer cleanup()

	var categorizer *categorize.Categorizer
	if cfg.OpenAIAPIKey != "" {
		client := categorize.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		categorizer = categorize.NewCategorizer(client, cfg.CategoryCacheSize)
		log.Println("🤖 Category suggestions enabled")
	} else {
		log.Println("ℹ️  No OPENAI_API_KEY - uncategorized templates default to 'other'")
	}

	templates := service.NewTemplateService(st, categorizer)
	budgets := service.NewBudgetService(st)

	if err := seedExpenseTemplates(ctx, templates, userID); err != nil {
		log.Fatalf("Failed to seed expense templates: %v", err)
	}

	if err := seedIncomeTemplates(ctx, templates, userID); err != nil {
		log.Fatalf("Failed to seed income templates: %v", err)
	}

	if err := seedBudgets(ctx, budgets, userID); err != nil {
		log.Fatalf("Failed to seed budgets: %v", err)
	}

	log.Println("✅ Successfully seeded all templates!")

	log.Println("")
	log.Println("🔍 Verifying seeded data is queryable...")
	if err := verifySeededData(ctx, templates, budgets, userID); err != nil {
		log.Fatalf("❌ Verification failed: %v", err)
	}
	log.Println("✅ All data verified! Run cmd/sweep to generate the backlog.")
}

func seedExpenseTemplates(ctx context.Context, svc *service.TemplateService, userID string) error {
	log.Println("📝 Creating expense templates...")

	// Anchors sit in the past so the next sweep has a backlog to generate.
	// Blank categories exercise the suggestion path.
	expenseTemplates := []struct {
		description string
		amount      float64
		category    string
		frequency   string
		anchorDays  int // days before today
		expiryDays  int // days after today, 0 for none
	}{
		{"Netflix subscription", 22.99, "entertainment", "monthly", 90, 0},
		{"Rent payment", 2200.00, "housing", "monthly", 60, 0},
		{"Gym membership", 65.00, "healthcare", "monthly", 45, 365},
		{"Weekly groceries", 150.00, "food", "weekly", 21, 0},
		{"Spotify Premium", 12.99, "", "monthly", 30, 0},
		{"Car insurance", 1450.00, "", "yearly", 10, 0},
		{"Daily coffee", 6.50, "food", "daily", 7, 14},
	}

	for _, tpl := range expenseTemplates {
		anchor := time.Now().AddDate(0, 0, -tpl.anchorDays)
		input := service.ExpenseTemplateInput{
			UserID:      userID,
			Amount:      tpl.amount,
			Description: tpl.description,
			Category:    tpl.category,
			Frequency:   tpl.frequency,
			AnchorDate:  anchor,
		}
		if tpl.expiryDays > 0 {
			expiry := time.Now().AddDate(0, 0, tpl.expiryDays)
			input.ExpiryDate = &expiry
		}

		created, err := svc.CreateExpenseTemplate(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to create expense template '%s': %w", tpl.description, err)
		}
		log.Printf("  ✓ Created expense template: %s ($%.2f %s, category=%s)",
			created.Description, created.Amount, created.Frequency, created.Category)
	}

	return nil
}

func seedIncomeTemplates(ctx context.Context, svc *service.TemplateService, userID string) error {
	log.Println("💰 Creating income templates...")

	incomeTemplates := []struct {
		source     string
		amount     float64
		frequency  string
		anchorDays int
	}{
		{"Software Engineer Salary", 8500.00, "monthly", 60},
		{"Freelance retainer", 1500.00, "monthly", 30},
		{"Dividend payment", 250.00, "monthly", 15},
	}

	for _, tpl := range incomeTemplates {
		anchor := time.Now().AddDate(0, 0, -tpl.anchorDays)
		created, err := svc.CreateIncomeTemplate(ctx, service.IncomeTemplateInput{
			UserID:     userID,
			Amount:     tpl.amount,
			Source:     tpl.source,
			Frequency:  tpl.frequency,
			AnchorDate: anchor,
		})
		if err != nil {
			return fmt.Errorf("failed to create income template '%s': %w", tpl.source, err)
		}
		log.Printf("  ✓ Created income template: %s ($%.2f %s)",
			created.Source, created.Amount, created.Frequency)
	}

	return nil
}

func seedBudgets(ctx context.Context, svc *service.BudgetService, userID string) error {
	log.Println("📊 Creating budgets...")

	month := time.Now().UTC().Format("2006-01")
	monthlyBudgets := []struct {
		category string
		amount   float64
	}{
		{"food", 800.00},
		{"entertainment", 200.00},
		{"transportation", 400.00},
		{"utilities", 450.00},
		{"housing", 2400.00},
	}

	for _, b := range monthlyBudgets {
		created, err := svc.CreateBudget(ctx, service.BudgetInput{
			UserID:   userID,
			Category: b.category,
			Month:    month,
			Amount:   b.amount,
		})
		if err != nil {
			return fmt.Errorf("failed to create budget '%s %s': %w", b.category, month, err)
		}
		log.Printf("  ✓ Created budget: %s %s ($%.2f)", created.Category, created.Month, created.Amount)
	}

	return nil
}

func verifySeededData(ctx context.Context, templates *service.TemplateService, budgets *service.BudgetService, userID string) error {
	expenseTemplates, _, err := templates.ListExpenseTemplates(ctx, userID, 100, "")
	if err != nil {
		return fmt.Errorf("failed to list expense templates: %w", err)
	}
	if len(expenseTemplates) == 0 {
		return fmt.Errorf("no expense templates found for user %s - data may not have been stored correctly", userID)
	}
	log.Printf("  ✓ Found %d expense templates for user", len(expenseTemplates))

	incomeTemplates, _, err := templates.ListIncomeTemplates(ctx, userID, 100, "")
	if err != nil {
		return fmt.Errorf("failed to list income templates: %w", err)
	}
	if len(incomeTemplates) == 0 {
		return fmt.Errorf("no income templates found for user %s - data may not have been stored correctly", userID)
	}
	log.Printf("  ✓ Found %d income templates for user", len(incomeTemplates))

	budgetList, _, err := budgets.ListBudgets(ctx, userID, 100, "")
	if err != nil {
		return fmt.Errorf("failed to list budgets: %w", err)
	}
	if len(budgetList) == 0 {
		return fmt.Errorf("no budgets found for user %s - data may not have been stored correctly", userID)
	}
	log.Printf("  ✓ Found %d budgets for user", len(budgetList))

	log.Printf("")
	log.Printf("📊 Summary: %d expense templates, %d income templates, %d budgets",
		len(expenseTemplates), len(incomeTemplates), len(budgetList))

	return nil
}
