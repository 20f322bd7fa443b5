// Package repository defines the storage interfaces consumed by the service
// layer.
//
// OWNER SCOPING BY CONSTRUCTION:
// Every method that touches account-owned data (categories, snippets, tags)
// takes the acting account's userID as an explicit parameter. There is no
// way to call into storage without saying whose data you want, so no code
// path can forget the ownership filter.
package repository

import (
	"context"

	"github.com/sakif/snippets-manager/internal/model"
)

// ListOptions is the pagination window applied to list queries.
// OrderBy is matched against a per-resource whitelist of sortable columns
// by the implementation; Direction is "asc" or "desc".
type ListOptions struct {
	Skip      int
	Take      int
	OrderBy   string
	Direction string
}

// ProfileUpdate is a partial update of an account's display attributes.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name        *string
	PicturePath *string
}

// SnippetUpdate is a partial update of a snippet. Nil fields are left
// untouched. A non-nil Tags replaces the snippet's entire tag set (an empty
// slice clears it).
type SnippetUpdate struct {
	Title    *string
	Code     *string
	Language *string
	Tags     *[]string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, userID, id string) (*model.Category, error)
	List(ctx context.Context, userID string, opts ListOptions) ([]model.Category, error)
	Count(ctx context.Context, userID string) (int, error)
	UpdateName(ctx context.Context, userID, id, name string) error
	Delete(ctx context.Context, userID, id string) error
}

type SnippetRepository interface {
	// Create persists the snippet and its tag associations in one
	// transaction. Tags and the language are connect-or-create.
	Create(ctx context.Context, snippet *model.Snippet, tagNames []string) error
	GetByID(ctx context.Context, userID, id string) (*model.Snippet, error)
	List(ctx context.Context, userID string, opts ListOptions) ([]model.Snippet, error)
	Count(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, userID, id string, upd SnippetUpdate) error
	Delete(ctx context.Context, userID, id string) error
}
