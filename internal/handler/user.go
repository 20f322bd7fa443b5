package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/snippets-manager/internal/auth"
	"github.com/sakif/snippets-manager/internal/service"
)

// UserHandler exposes the partial update of an account's display
// attributes.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// updateUserRequest carries the two mutable display fields. Unrecognized
// fields in the body are ignored by the decoder, not errors.
type updateUserRequest struct {
	Name        *string `json:"name"`
	PicturePath *string `json:"picture_path"`
}

// HandleUpdate applies a partial update to the acting account.
//
// HTTP: PUT /v1/user
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())

	if err := h.users.UpdateProfile(r.Context(), userID, req.Name, req.PicturePath); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "User successfully updated.")
}
