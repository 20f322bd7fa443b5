package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/snippets-manager/internal/apperror"
	"github.com/sakif/snippets-manager/internal/model"
	"github.com/sakif/snippets-manager/internal/pagination"
	"github.com/sakif/snippets-manager/internal/repository"
)

// MaxCategoryNameLength bounds category names.
const MaxCategoryNameLength = 50

// CategoryService handles business logic for snippet categories.
// Every operation takes the acting account's userID; it is threaded through
// to the repository, which scopes all reads and writes by it.
type CategoryService struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:   repo,
		logger: logger,
	}
}

// List returns one page of the account's categories plus the total count.
// The count comes from a separate query scoped identically to the listing.
func (s *CategoryService) List(ctx context.Context, userID string, page pagination.Page) ([]model.Category, int, error) {
	categories, err := s.repo.List(ctx, userID, listOptions(page))
	if err != nil {
		return nil, 0, fmt.Errorf("listing categories: %w", err)
	}

	total, err := s.repo.Count(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("counting categories: %w", err)
	}

	return categories, total, nil
}

// Get returns the category matching id and owner, or ErrNotFound.
func (s *CategoryService) Get(ctx context.Context, userID, id string) (*model.Category, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ValidationFailed("id", "category ID is required")
	}
	return s.repo.GetByID(ctx, userID, id)
}

// Create validates and inserts a new category owned by the account.
func (s *CategoryService) Create(ctx context.Context, userID, name string) (*model.Category, error) {
	name, err := validCategoryName(name)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:   name,
		UserID: userID,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	s.logger.Info("category created",
		slog.String("id", category.ID),
		slog.String("userID", userID),
	)

	return category, nil
}

// Update renames the category matching id and owner. A non-owned or missing
// id is not found — update and delete share the same strict policy.
func (s *CategoryService) Update(ctx context.Context, userID, id, name string) error {
	name, err := validCategoryName(name)
	if err != nil {
		return err
	}
	return s.repo.UpdateName(ctx, userID, id, name)
}

// Delete removes the category matching id and owner.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info("category deleted",
		slog.String("id", id),
		slog.String("userID", userID),
	)

	return nil
}

func validCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.ValidationFailed("name", "category name is required")
	}
	if len(name) > MaxCategoryNameLength {
		return "", apperror.ValidationFailed("name",
			fmt.Sprintf("category name must be %d characters or less", MaxCategoryNameLength))
	}
	return name, nil
}

// listOptions maps a parsed pagination window onto the repository's list
// options.
func listOptions(page pagination.Page) repository.ListOptions {
	return repository.ListOptions{
		Skip:      page.Skip,
		Take:      page.Take,
		OrderBy:   page.OrderBy,
		Direction: page.Direction,
	}
}
