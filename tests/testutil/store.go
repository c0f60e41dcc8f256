package testutil

import (
	"context"
	"testing"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// CreateTestUser inserts a user and returns it.
func CreateTestUser(t *testing.T, s *store.SQLiteStore, username string) model.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), model.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("creating test user %s: %v", username, err)
	}
	return user
}
