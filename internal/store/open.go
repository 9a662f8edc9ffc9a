package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// Open constructs the configured backend. For Postgres, pending migrations
// are applied first. The returned cleanup releases the underlying client or
// pool and is safe to call once.
func Open(ctx context.Context, backend, projectID, databaseURL string) (Store, func(), error) {
	switch backend {
	case "memory":
		return NewMemoryStore(), func() {}, nil
	case "firestore":
		client, err := firestore.NewClient(ctx, projectID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		return NewFirestoreStore(client), func() { client.Close() }, nil
	case "postgres":
		if err := MigratePostgres(databaseURL); err != nil {
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		pool, err := NewPostgresPool(ctx, databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Postgres pool: %w", err)
		}
		return NewPostgresStore(pool), func() { pool.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
