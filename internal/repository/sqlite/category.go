package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/snippets-manager/internal/apperror"
	"github.com/sakif/snippets-manager/internal/model"
	"github.com/sakif/snippets-manager/internal/repository"
)

// compile-time check that *CategoryRepo implements repository.CategoryRepository
var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implements repository.CategoryRepository on top of the shared pool.
type CategoryRepo struct {
	db *DB
}

func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// categoryOrderColumns whitelists the sortable columns for category lists.
// ORDER BY cannot be parameterized, so the column name is interpolated into
// the SQL — only after passing through this map.
var categoryOrderColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

// Create inserts a category owned by category.UserID.
func (r *CategoryRepo) Create(ctx context.Context, category *model.Category) error {
	category.ID = xid.New().String()

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO categories (id, name, user_id) VALUES (?, ?, ?)`,
		category.ID,
		category.Name,
		category.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating category: %w", err)
	}

	return nil
}

// GetByID retrieves the category matching both id and owner.
// A category owned by another account is indistinguishable from a missing
// one — both come back as apperror.ErrNotFound.
func (r *CategoryRepo) GetByID(ctx context.Context, userID, id string) (*model.Category, error) {
	var category model.Category

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, name, user_id FROM categories WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&category.ID, &category.Name, &category.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("category", id)
		}
		return nil, fmt.Errorf("sqlite: getting category %s: %w", id, err)
	}

	return &category, nil
}

// List retrieves the account's categories, window-limited and ordered.
// The default order is by id — xid values sort by creation time, so this is
// insertion order.
func (r *CategoryRepo) List(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Category, error) {
	orderClause, err := orderClause(categoryOrderColumns, opts, "id")
	if err != nil {
		return nil, err
	}

	rows, err := r.db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, name, user_id FROM categories
		 WHERE user_id = ?
		 ORDER BY %s
		 LIMIT ? OFFSET ?`, orderClause),
		userID, opts.Take, opts.Skip,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0, opts.Take)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating categories: %w", err)
	}

	return categories, nil
}

// Count returns the total number of categories owned by the account,
// scoped identically to List.
func (r *CategoryRepo) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting categories: %w", err)
	}
	return count, nil
}

// UpdateName renames the category matching id and owner.
// Zero rows affected means the id doesn't exist or belongs to someone else;
// both are reported as not found.
func (r *CategoryRepo) UpdateName(ctx context.Context, userID, id, name string) error {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE id = ? AND user_id = ?`,
		name, id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating category %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("category", id)
	}

	return nil
}

// Delete removes the category matching id and owner. Snippets referencing
// it keep existing — the schema nulls out their category_id.
func (r *CategoryRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting category %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("category", id)
	}

	return nil
}

// orderClause resolves opts into a safe "column ASC|DESC" fragment using the
// given whitelist. An unknown orderBy is a validation error; an empty one
// falls back to fallback ascending.
func orderClause(columns map[string]string, opts repository.ListOptions, fallback string) (string, error) {
	column := fallback
	if opts.OrderBy != "" {
		c, ok := columns[opts.OrderBy]
		if !ok {
			return "", apperror.ValidationFailed("orderBy", fmt.Sprintf("cannot order by %q", opts.OrderBy))
		}
		column = c
	}

	direction := "ASC"
	if opts.Direction == "desc" {
		direction = "DESC"
	}

	return column + " " + direction, nil
}
