package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/snippets-manager/internal/apperror"
	"github.com/sakif/snippets-manager/internal/auth"
	"github.com/sakif/snippets-manager/internal/service"
)

// SessionHandler exposes register, login and logout.
//
// Login is the only endpoint that issues the session cookie; logout is the
// only one that clears it. Both are unauthenticated — logout with no valid
// session is still a success (the cookie ends up gone either way).
type SessionHandler struct {
	sessions *service.SessionService
	logger   *slog.Logger
}

func NewSessionHandler(sessions *service.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// credentialsRequest is the body of both register and login.
// The password bounds (4–20) apply to the plaintext at the door; the stored
// credential is a bcrypt hash.
type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=20"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /v1/session/register
func (h *SessionHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Incorrect credentials format.")
		return
	}

	if err := h.sessions.Register(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			writeMessage(w, http.StatusBadRequest, "Email already linked to an account.")
			return
		}
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "User successfully created!")
}

// HandleLogin verifies credentials and sets the session cookie.
//
// HTTP: POST /v1/session/login
//
// Malformed credentials and failed verification both answer 400 with fixed
// messages; the login error never says whether the email exists.
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Incorrect credentials format.")
		return
	}

	token, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, auth.SessionCookie(token))
	writeMessage(w, http.StatusOK, "Logged in! httpOnly cookie set.")
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /v1/session/logout
//
// The JWT itself stays valid until it expires — stateless tokens cannot be
// revoked server-side — but without the cookie the browser stops sending it.
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredSessionCookie())
	writeMessage(w, http.StatusOK, "httpOnly cookie removed.")
}
