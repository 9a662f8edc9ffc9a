// backfill-cents iterates through the Firestore collections and populates
// missing AmountCents fields from their double-precision Amount
// counterparts.
//
// This script is idempotent: if a cents field already has a non-zero value,
// the document is skipped.
//
// Usage:
//
//	export GOOGLE_APPLICATION_CREDENTIALS=/path/to/service-account.json
//	export GOOGLE_CLOUD_PROJECT=your-project-id
//	go run ./scripts/backfill-cents/
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/mkrall/pennywise/backend/internal/model"
)

// Every collection carries the same Amount/AmountCents pair. Field names are
// PascalCase because the Firestore SDK serializes the Go struct field names.
var collections = []string{
	"expense_templates",
	"income_templates",
	"expenses",
	"incomes",
	"budgets",
}

func main() {
	ctx := context.Background()

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		log.Fatal("GOOGLE_CLOUD_PROJECT environment variable is required")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()

	for _, name := range collections {
		processed, updated, err := backfillCollection(ctx, client, name)
		if err != nil {
			log.Printf("[%s] ERROR: %v", name, err)
			continue
		}
		fmt.Printf("[%s] Processed %d docs, updated %d\n", name, processed, updated)
	}

	fmt.Println("\nBackfill complete.")
}

// backfillCollection populates AmountCents from Amount on every document
// that is missing it. Returns (processed count, updated count, error).
func backfillCollection(ctx context.Context, client *firestore.Client, name string) (int, int, error) {
	iter := client.Collection(name).Documents(ctx)
	defer iter.Stop()

	processed := 0
	updated := 0

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return processed, updated, fmt.Errorf("iterating %s: %w", name, err)
		}
		processed++

		data := doc.Data()
		if getInt64(data, "AmountCents") != 0 {
			// Already backfilled.
			continue
		}
		amount := getFloat64(data, "Amount")
		if amount == 0 {
			continue
		}

		_, err = doc.Ref.Update(ctx, []firestore.Update{
			{Path: "AmountCents", Value: model.Cents(amount)},
		})
		if err != nil {
			log.Printf("[%s] Failed to update doc %s: %v", name, doc.Ref.ID, err)
			continue
		}
		updated++
	}

	return processed, updated, nil
}

// getFloat64 safely extracts a float64 value from a map.
// Firestore may store numbers as int64 or float64 depending on the value.
func getFloat64(data map[string]interface{}, key string) float64 {
	v, ok := data[key]
	if !ok || v == nil {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int64:
		return float64(val)
	case int:
		return float64(val)
	default:
		return 0
	}
}

// getInt64 safely extracts an int64 value from a map.
// Firestore may store numbers as int64 or float64 depending on the value.
func getInt64(data map[string]interface{}, key string) int64 {
	v, ok := data[key]
	if !ok || v == nil {
		return 0
	}
	switch val := v.(type) {
	case int64:
		return val
	case float64:
		return int64(val)
	case int:
		return int64(val)
	default:
		return 0
	}
}
