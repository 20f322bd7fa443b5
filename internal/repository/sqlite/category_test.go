package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/snippets-manager/internal/apperror"
	"github.com/sakif/snippets-manager/internal/repository"
)

func TestCategoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)

	user := createTestUser(t, db, "alice@example.com")
	category := createTestCategory(t, db, user.ID, "Algorithms")

	got, err := repo.GetByID(context.Background(), user.ID, category.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Algorithms" {
		t.Errorf("Name = %q, want Algorithms", got.Name)
	}
}

func TestCategoryGet_OtherAccount(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	category := createTestCategory(t, db, alice.ID, "Private")

	// Bob asks for Alice's category by its real id — the ownership filter
	// makes it look like it doesn't exist.
	_, err := repo.GetByID(context.Background(), bob.ID, category.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByID() as other account error = %v, want ErrNotFound", err)
	}
}

func TestCategoryList_OrderedAndWindowed(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)

	user := createTestUser(t, db, "alice@example.com")
	for _, name := range []string{"c", "a", "b"} {
		createTestCategory(t, db, user.ID, name)
	}

	categories, err := repo.List(context.Background(), user.ID, repository.ListOptions{
		Skip: 0, Take: 2, OrderBy: "name", Direction: "asc",
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("List() returned %d categories, want 2", len(categories))
	}
	if categories[0].Name != "a" || categories[1].Name != "b" {
		t.Errorf("order = [%s %s], want [a b]", categories[0].Name, categories[1].Name)
	}

	total, err := repo.Count(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if total != 3 {
		t.Errorf("Count() = %d, want 3", total)
	}
}

func TestCategoryList_PastTheEnd(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)

	user := createTestUser(t, db, "alice@example.com")
	createTestCategory(t, db, user.ID, "only-one")

	categories, err := repo.List(context.Background(), user.ID, repository.ListOptions{
		Skip: 5, Take: 5, Direction: "asc",
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(categories) != 0 {
		t.Errorf("List() past the end returned %d rows, want 0", len(categories))
	}
}

func TestCategoryList_UnknownOrderColumn(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)

	user := createTestUser(t, db, "alice@example.com")

	_, err := repo.List(context.Background(), user.ID, repository.ListOptions{
		Take: 10, OrderBy: "password; DROP TABLE users", Direction: "asc",
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("List() with unknown orderBy error = %v, want ErrValidation", err)
	}
}

func TestCategoryUpdateName(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)

	user := createTestUser(t, db, "alice@example.com")
	category := createTestCategory(t, db, user.ID, "Old")

	if err := repo.UpdateName(context.Background(), user.ID, category.ID, "New"); err != nil {
		t.Fatalf("UpdateName() error = %v", err)
	}

	got, err := repo.GetByID(context.Background(), user.ID, category.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "New" {
		t.Errorf("Name = %q, want New", got.Name)
	}
}

func TestCategoryUpdateName_OtherAccount(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	category := createTestCategory(t, db, alice.ID, "Private")

	err := repo.UpdateName(context.Background(), bob.ID, category.ID, "Hijacked")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("UpdateName() as other account error = %v, want ErrNotFound", err)
	}

	got, err := repo.GetByID(context.Background(), alice.ID, category.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Private" {
		t.Errorf("Name = %q, category was modified by a non-owner", got.Name)
	}
}

func TestCategoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)

	user := createTestUser(t, db, "alice@example.com")
	category := createTestCategory(t, db, user.ID, "Doomed")

	if err := repo.Delete(context.Background(), user.ID, category.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := repo.GetByID(context.Background(), user.ID, category.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestCategoryDelete_OtherAccount(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	category := createTestCategory(t, db, alice.ID, "Private")

	err := repo.Delete(context.Background(), bob.ID, category.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Delete() as other account error = %v, want ErrNotFound", err)
	}

	// Alice's category is unaffected.
	if _, err := repo.GetByID(context.Background(), alice.ID, category.ID); err != nil {
		t.Fatalf("category disappeared after failed cross-account delete: %v", err)
	}
}
