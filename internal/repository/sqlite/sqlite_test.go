package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/snippets-manager/internal/model"
)

// newTestDB creates a fresh in-memory database per test. It lives only for
// the duration of the test and is destroyed when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts an account to own the test data — categories,
// snippets and tags all carry a foreign key to users.
func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    email,
		Password: "$2a$04$notarealhashbutgoodenough",
	}
	if err := NewUserRepo(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestUserModel(email string) *model.User {
	return &model.User{
		Email:    email,
		Password: "$2a$04$notarealhashbutgoodenough",
	}
}

func createTestCategory(t *testing.T, db *DB, userID, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, UserID: userID}
	if err := NewCategoryRepo(db).Create(context.Background(), category); err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}
