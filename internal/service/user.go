package service

import (
	"context"
	"log/slog"

	"github.com/sakif/snippets-manager/internal/repository"
)

// UserService handles updates to an account's display attributes.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// UpdateProfile applies a partial update of name and picture path. Nil
// fields are left as-is; supplying neither is a valid no-op.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, name, picturePath *string) error {
	err := s.repo.UpdateProfile(ctx, userID, repository.ProfileUpdate{
		Name:        name,
		PicturePath: picturePath,
	})
	if err != nil {
		return err
	}

	s.logger.Info("user profile updated", slog.String("userID", userID))

	return nil
}
