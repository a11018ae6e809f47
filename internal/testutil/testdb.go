package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/impulsoapp/impulso/internal/db"
	"github.com/impulsoapp/impulso/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUser inserts a user row and returns its id. Goals reference users
// by foreign key, so most fixtures need one.
func NewTestUser(t *testing.T, database *sql.DB) string {
	t.Helper()
	id := uuid.New().String()
	if err := repository.NewSQLiteUserRepo(database).Create(context.Background(), id); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return id
}
