package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/snippets-manager/internal/apperror"
	"github.com/sakif/snippets-manager/internal/auth"
	"github.com/sakif/snippets-manager/internal/model"
	"github.com/sakif/snippets-manager/internal/repository"
)

// memUserRepo is an in-memory UserRepository keyed by email.
type memUserRepo struct {
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := r.users[user.Email]; ok {
		return apperror.Conflict("email already linked to an account")
	}
	user.ID = xid.New().String()
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	return user, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id string, upd repository.ProfileUpdate) error {
	for _, user := range r.users {
		if user.ID != id {
			continue
		}
		if upd.Name != nil {
			user.Name = *upd.Name
		}
		if upd.PicturePath != nil {
			user.PicturePath = *upd.PicturePath
		}
		return nil
	}
	return apperror.NotFound("user", id)
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newTestSessionService(t *testing.T) (*SessionService, *memUserRepo, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-32-bytes-long!!")
	require.NoError(t, err)

	users := newMemUserRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewSessionService(users, tokens, auth.NewPasswordServiceForTest(4), logger)
	return svc, users, tokens
}

func TestSessionRegister(t *testing.T) {
	svc, users, _ := newTestSessionService(t)
	ctx := context.Background()

	err := svc.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	stored := users.users["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret", stored.Password, "password must be stored hashed")
}

func TestSessionRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestSessionService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@example.com", "secret"))

	err := svc.Register(ctx, "alice@example.com", "other")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestSessionLogin(t *testing.T) {
	svc, users, tokens := newTestSessionService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@example.com", "secret"))

	token, err := svc.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	userID, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, users.users["alice@example.com"].ID, userID)
}

func TestSessionLogin_BadCredentials(t *testing.T) {
	svc, _, _ := newTestSessionService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@example.com", "secret"))

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "secret")
	require.Error(t, unknownErr)

	_, wrongErr := svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, wrongErr)

	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.ErrorIs(t, unknownErr, apperror.ErrValidation)
	assert.ErrorIs(t, wrongErr, apperror.ErrValidation)
}
