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

// Validation bounds for snippet fields. The code body is intentionally
// unbounded.
const (
	MaxSnippetTitleLength = 50
	MaxLanguageLength     = 32
)

// CreateSnippetInput is the full set of fields required to create a
// snippet.
type CreateSnippetInput struct {
	Title      string
	Code       string
	Language   string
	Tags       []string
	CategoryID string
}

// UpdateSnippetInput is a partial update; nil fields are left unchanged.
// A non-nil Tags replaces the snippet's whole tag set.
type UpdateSnippetInput struct {
	Title    *string
	Code     *string
	Language *string
	Tags     *[]string
}

// SnippetService handles business logic for code snippets.
type SnippetService struct {
	repo   repository.SnippetRepository
	logger *slog.Logger
}

func NewSnippetService(repo repository.SnippetRepository, logger *slog.Logger) *SnippetService {
	return &SnippetService{
		repo:   repo,
		logger: logger,
	}
}

// List returns one page of the account's snippets, tags included, plus the
// total count from a separately scoped counting query.
func (s *SnippetService) List(ctx context.Context, userID string, page pagination.Page) ([]model.Snippet, int, error) {
	snippets, err := s.repo.List(ctx, userID, listOptions(page))
	if err != nil {
		return nil, 0, fmt.Errorf("listing snippets: %w", err)
	}

	total, err := s.repo.Count(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("counting snippets: %w", err)
	}

	return snippets, total, nil
}

// Get returns the snippet matching id and owner, or ErrNotFound.
func (s *SnippetService) Get(ctx context.Context, userID, id string) (*model.Snippet, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ValidationFailed("id", "snippet ID is required")
	}
	return s.repo.GetByID(ctx, userID, id)
}

// Create validates and persists a new snippet with its tag set. The
// referenced category must exist and belong to the same account.
func (s *SnippetService) Create(ctx context.Context, userID string, in CreateSnippetInput) (*model.Snippet, error) {
	title, err := validTitle(in.Title)
	if err != nil {
		return nil, err
	}
	language, err := validLanguage(in.Language)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return nil, apperror.ValidationFailed("category_id", "category_id is required")
	}

	categoryID := in.CategoryID
	snippet := &model.Snippet{
		Title:      title,
		Code:       in.Code,
		Language:   language,
		UserID:     userID,
		CategoryID: &categoryID,
	}
	if err := s.repo.Create(ctx, snippet, in.Tags); err != nil {
		return nil, fmt.Errorf("creating snippet: %w", err)
	}

	s.logger.Info("snippet created",
		slog.String("id", snippet.ID),
		slog.String("userID", userID),
		slog.Int("tags", len(snippet.Tags)),
	)

	return snippet, nil
}

// Update applies a partial update to the snippet matching id and owner.
func (s *SnippetService) Update(ctx context.Context, userID, id string, in UpdateSnippetInput) error {
	if strings.TrimSpace(id) == "" {
		return apperror.ValidationFailed("id", "snippet ID is required")
	}

	upd := repository.SnippetUpdate{
		Code: in.Code,
		Tags: in.Tags,
	}

	if in.Title != nil {
		title, err := validTitle(*in.Title)
		if err != nil {
			return err
		}
		upd.Title = &title
	}
	if in.Language != nil {
		language, err := validLanguage(*in.Language)
		if err != nil {
			return err
		}
		upd.Language = &language
	}

	return s.repo.Update(ctx, userID, id, upd)
}

// Delete removes the snippet matching id and owner.
func (s *SnippetService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info("snippet deleted",
		slog.String("id", id),
		slog.String("userID", userID),
	)

	return nil
}

func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperror.ValidationFailed("title", "snippet title is required")
	}
	if len(title) > MaxSnippetTitleLength {
		return "", apperror.ValidationFailed("title",
			fmt.Sprintf("snippet title must be %d characters or less", MaxSnippetTitleLength))
	}
	return title, nil
}

func validLanguage(language string) (string, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return "", apperror.ValidationFailed("language", "language is required")
	}
	if len(language) > MaxLanguageLength {
		return "", apperror.ValidationFailed("language",
			fmt.Sprintf("language must be %d characters or less", MaxLanguageLength))
	}
	return language, nil
}
