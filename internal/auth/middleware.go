package auth

import (
	"context"
	"fmt"
	"net/http"
)

// contextKey is an unexported type used for context keys in this package.
// A package-private key type prevents collisions: only this package can
// read or write the user ID stored in a request context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireUser is the guard middleware for protected routes.
//
// It reads the JWT from the "jwt" HttpOnly cookie, validates it, and stores
// the account ID in the request context. Identity is resolved exactly once
// here — downstream handlers read it via UserIDFromContext and never decode
// the token themselves.
//
// Both failure modes answer 400 with a message body, matching the rest of
// the API's error surface (the API does not use 401).
func RequireUser(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				// http.ErrNoCookie — the client never logged in (or the
				// cookie expired alongside the token)
				writeGuardError(w, "Cannot find jwt auth cookie.")
				return
			}

			userID, err := tokens.Validate(cookie.Value)
			if err != nil {
				writeGuardError(w, "Incorrect JWT.")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated account's ID from the
// request context.
//
// Returns ("", false) if no valid token was presented. On routes behind
// RequireUser it always returns (id, true).
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// writeGuardError answers a guard rejection. The body shape mirrors the
// handlers' error responses, but is written inline here to avoid an import
// cycle with the handler package.
func writeGuardError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, `{"message":%q}`, message)
}
