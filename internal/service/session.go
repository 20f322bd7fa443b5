// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and shape JSON; services enforce the business rules;
// repositories talk to the database. Each service receives its repository
// as an interface, so tests swap in in-memory mocks without touching SQL.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/snippets-manager/internal/apperror"
	"github.com/sakif/snippets-manager/internal/auth"
	"github.com/sakif/snippets-manager/internal/model"
	"github.com/sakif/snippets-manager/internal/repository"
)

// SessionService handles registration, login and the issuing of session
// tokens.
type SessionService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewSessionService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account with a hashed password and blank display
// attributes. No session token is issued — the caller must log in
// afterwards.
//
// Registering an email that already has an account is a conflict. Unlike
// login, register may say so explicitly: the caller just proved they know
// the email, so there is nothing to leak.
func (s *SessionService) Register(ctx context.Context, email, password string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperror.Conflict("email already linked to an account")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("checking email: %w", err)
	}

	hashed, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Email:    email,
		Password: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", slog.String("userID", user.ID))

	return nil
}

// Login verifies the credentials and returns a signed session token.
//
// Unknown email and wrong password produce the exact same error, so a
// caller cannot probe which addresses have accounts.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, error) {
	invalid := apperror.ValidationFailed("credentials", "Incorrect credentials.")

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", invalid
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.Password, password); err != nil {
		return "", invalid
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return token, nil
}
