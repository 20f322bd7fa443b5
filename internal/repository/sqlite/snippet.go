package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/snippets-manager/internal/apperror"
	"github.com/sakif/snippets-manager/internal/model"
	"github.com/sakif/snippets-manager/internal/repository"
)

// compile-time check that *SnippetRepo implements repository.SnippetRepository
var _ repository.SnippetRepository = (*SnippetRepo)(nil)

// SnippetRepo implements repository.SnippetRepository on top of the shared
// pool.
//
// Snippet writes are multi-step (language lookup, snippet row, tag rows,
// join rows), so Create and Update run inside a single transaction: either
// the whole write lands or none of it does. A snippet can never be observed
// with half its tags.
type SnippetRepo struct {
	db *DB
}

func NewSnippetRepo(db *DB) *SnippetRepo {
	return &SnippetRepo{db: db}
}

// snippetOrderColumns whitelists the sortable columns for snippet lists.
var snippetOrderColumns = map[string]string{
	"id":         "s.id",
	"title":      "s.title",
	"created_at": "s.created_at",
	"updated_at": "s.updated_at",
}

// Create persists a new snippet together with its tag associations.
//
// The snippet's CategoryID must reference a category owned by snippet.UserID
// — ownership is checked inside the transaction, so a category id belonging
// to another account is rejected as not found, never silently linked.
// The language and each tag are connect-or-create: reuse the existing row
// by name, insert one otherwise.
func (r *SnippetRepo) Create(ctx context.Context, snippet *model.Snippet, tagNames []string) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if snippet.CategoryID != nil {
		var categoryID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM categories WHERE id = ? AND user_id = ?`,
			*snippet.CategoryID, snippet.UserID,
		).Scan(&categoryID)
		if err == sql.ErrNoRows {
			return apperror.NotFound("category", *snippet.CategoryID)
		}
		if err != nil {
			return fmt.Errorf("sqlite: checking category ownership: %w", err)
		}
	}

	languageID, err := connectOrCreateLanguage(ctx, tx, snippet.Language)
	if err != nil {
		return err
	}

	snippet.ID = xid.New().String()
	now := time.Now()
	snippet.CreatedAt = now
	snippet.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snippets (id, title, code, language_id, user_id, category_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snippet.ID,
		snippet.Title,
		snippet.Code,
		languageID,
		snippet.UserID,
		snippet.CategoryID,
		snippet.CreatedAt,
		snippet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating snippet: %w", err)
	}

	tags, err := connectTags(ctx, tx, snippet.UserID, snippet.ID, tagNames)
	if err != nil {
		return err
	}
	snippet.Tags = tags

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing snippet create: %w", err)
	}

	return nil
}

// GetByID retrieves a single snippet with its tags flattened, or
// apperror.ErrNotFound if no snippet matches id and owner.
func (r *SnippetRepo) GetByID(ctx context.Context, userID, id string) (*model.Snippet, error) {
	var snippet model.Snippet

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT s.id, s.title, s.code, l.name, s.user_id, s.category_id, s.created_at, s.updated_at
		 FROM snippets s
		 JOIN languages l ON l.id = s.language_id
		 WHERE s.id = ? AND s.user_id = ?`,
		id, userID,
	).Scan(
		&snippet.ID,
		&snippet.Title,
		&snippet.Code,
		&snippet.Language,
		&snippet.UserID,
		&snippet.CategoryID,
		&snippet.CreatedAt,
		&snippet.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("snippet", id)
		}
		return nil, fmt.Errorf("sqlite: getting snippet %s: %w", id, err)
	}

	tags, err := r.loadTags(ctx, snippet.ID)
	if err != nil {
		return nil, err
	}
	snippet.Tags = tags

	return &snippet, nil
}

// List retrieves the account's snippets with tags, window-limited and
// ordered (default: id ascending, which is creation order for xid keys).
func (r *SnippetRepo) List(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Snippet, error) {
	order, err := orderClause(snippetOrderColumns, opts, "s.id")
	if err != nil {
		return nil, err
	}

	rows, err := r.db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT s.id, s.title, s.code, l.name, s.user_id, s.category_id, s.created_at, s.updated_at
		 FROM snippets s
		 JOIN languages l ON l.id = s.language_id
		 WHERE s.user_id = ?
		 ORDER BY %s
		 LIMIT ? OFFSET ?`, order),
		userID, opts.Take, opts.Skip,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snippets: %w", err)
	}
	defer rows.Close()

	snippets := make([]model.Snippet, 0, opts.Take)
	for rows.Next() {
		var s model.Snippet
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Code, &s.Language, &s.UserID, &s.CategoryID,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning snippet row: %w", err)
		}
		snippets = append(snippets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating snippets: %w", err)
	}

	for i := range snippets {
		tags, err := r.loadTags(ctx, snippets[i].ID)
		if err != nil {
			return nil, err
		}
		snippets[i].Tags = tags
	}

	return snippets, nil
}

// Count returns the total number of snippets owned by the account, scoped
// identically to List.
func (r *SnippetRepo) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM snippets WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting snippets: %w", err)
	}
	return count, nil
}

// Update applies a partial update. Nil fields keep their value; a non-nil
// Tags replaces the snippet's entire tag set. The field update and the tag
// replacement run in one transaction, so a failure mid-way leaves the old
// state intact rather than a snippet stripped of its tags.
func (r *SnippetRepo) Update(ctx context.Context, userID, id string, upd repository.SnippetUpdate) error {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Confirm the snippet exists and is owned by the caller before
	// touching anything.
	var existingID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM snippets WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&existingID)
	if err == sql.ErrNoRows {
		return apperror.NotFound("snippet", id)
	}
	if err != nil {
		return fmt.Errorf("sqlite: checking snippet %s: %w", id, err)
	}

	sets := []string{"updated_at = ?"}
	args := []any{time.Now()}

	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Code != nil {
		sets = append(sets, "code = ?")
		args = append(args, *upd.Code)
	}
	if upd.Language != nil {
		languageID, err := connectOrCreateLanguage(ctx, tx, *upd.Language)
		if err != nil {
			return err
		}
		sets = append(sets, "language_id = ?")
		args = append(args, languageID)
	}
	args = append(args, id, userID)

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE snippets SET %s WHERE id = ? AND user_id = ?`, strings.Join(sets, ", ")),
		args...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating snippet %s: %w", id, err)
	}

	if upd.Tags != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM snippet_tags WHERE snippet_id = ?`, id,
		); err != nil {
			return fmt.Errorf("sqlite: clearing snippet tags: %w", err)
		}
		if _, err := connectTags(ctx, tx, userID, id, *upd.Tags); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing snippet update: %w", err)
	}

	return nil
}

// Delete removes the snippet matching id and owner; its join rows cascade.
func (r *SnippetRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM snippets WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting snippet %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("snippet", id)
	}

	return nil
}

// loadTags fetches a snippet's tags through the join table, flattened to
// {id, name} and ordered by name for stable output.
func (r *SnippetRepo) loadTags(ctx context.Context, snippetID string) ([]model.Tag, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT t.id, t.name
		 FROM snippet_tags st
		 JOIN tags t ON t.id = st.tag_id
		 WHERE st.snippet_id = ?
		 ORDER BY t.name`,
		snippetID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: loading snippet tags: %w", err)
	}
	defer rows.Close()

	tags := make([]model.Tag, 0, 4)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tags: %w", err)
	}

	return tags, nil
}

// connectTags connect-or-creates a tag row per name (scoped to the account)
// and inserts the join rows. Duplicate names in the input collapse onto the
// same tag, so ["a","a","b"] yields two associations.
func connectTags(ctx context.Context, tx *sql.Tx, userID, snippetID string, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		tag, err := connectOrCreateTag(ctx, tx, userID, name)
		if err != nil {
			return nil, err
		}

		// OR IGNORE: the composite primary key already guards against a
		// duplicate association.
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO snippet_tags (snippet_id, tag_id) VALUES (?, ?)`,
			snippetID, tag.ID,
		); err != nil {
			return nil, fmt.Errorf("sqlite: linking tag %q: %w", name, err)
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

// connectOrCreateTag looks a tag up by (owner, name) and inserts it if
// absent.
func connectOrCreateTag(ctx context.Context, tx *sql.Tx, userID, name string) (model.Tag, error) {
	var tag model.Tag

	err := tx.QueryRowContext(ctx,
		`SELECT id, name FROM tags WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&tag.ID, &tag.Name)
	if err == nil {
		return tag, nil
	}
	if err != sql.ErrNoRows {
		return model.Tag{}, fmt.Errorf("sqlite: looking up tag %q: %w", name, err)
	}

	tag = model.Tag{ID: xid.New().String(), Name: name}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tags (id, name, user_id) VALUES (?, ?, ?)`,
		tag.ID, tag.Name, userID,
	); err != nil {
		return model.Tag{}, fmt.Errorf("sqlite: creating tag %q: %w", name, err)
	}

	return tag, nil
}

// connectOrCreateLanguage looks a language up by name and inserts it if
// absent. Languages are a global lookup table, not account-scoped.
func connectOrCreateLanguage(ctx context.Context, tx *sql.Tx, name string) (string, error) {
	var id string

	err := tx.QueryRowContext(ctx,
		`SELECT id FROM languages WHERE name = ?`, name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("sqlite: looking up language %q: %w", name, err)
	}

	id = xid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO languages (id, name) VALUES (?, ?)`,
		id, name,
	); err != nil {
		return "", fmt.Errorf("sqlite: creating language %q: %w", name, err)
	}

	return id, nil
}
