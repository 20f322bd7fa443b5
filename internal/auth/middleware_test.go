package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// guardedEcho runs the RequireUser middleware around a handler that writes
// back whatever user ID it finds in the context.
func guardedEcho(t *testing.T, ts *TokenService, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	handler := RequireUser(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("protected handler reached without a user ID in context")
		}
		w.Write([]byte(userID))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireUser_NoCookie(t *testing.T) {
	ts := newTestTokenService(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/category", nil)
	rec := guardedEcho(t, ts, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Cannot find jwt auth cookie.") {
		t.Errorf("body = %q, want the missing-cookie message", rec.Body.String())
	}
}

func TestRequireUser_InvalidToken(t *testing.T) {
	ts := newTestTokenService(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/category", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	rec := guardedEcho(t, ts, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Incorrect JWT.") {
		t.Errorf("body = %q, want the bad-token message", rec.Body.String())
	}
}

func TestRequireUser_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.GenerateWithDuration("user-1", -1)
	if err != nil {
		t.Fatalf("GenerateWithDuration: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/category", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := guardedEcho(t, ts, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRequireUser_ValidToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-42")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/category", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := guardedEcho(t, ts, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "user-42" {
		t.Errorf("context user ID = %q, want %q", rec.Body.String(), "user-42")
	}
}

func TestSessionCookie_Attributes(t *testing.T) {
	c := SessionCookie("some-token")

	if c.Name != CookieName || c.Value != "some-token" {
		t.Errorf("cookie = %s=%s, want %s=some-token", c.Name, c.Value, CookieName)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteStrictMode {
		t.Error("session cookie must be HttpOnly, Secure and SameSite=Strict")
	}
	if c.Path != "/" {
		t.Errorf("cookie path = %q, want /", c.Path)
	}
	if c.MaxAge != int(TokenTTL.Seconds()) {
		t.Errorf("cookie MaxAge = %d, want %d", c.MaxAge, int(TokenTTL.Seconds()))
	}
}

func TestExpiredSessionCookie_Deletes(t *testing.T) {
	c := ExpiredSessionCookie()

	if c.MaxAge != -1 {
		t.Errorf("MaxAge = %d, want -1", c.MaxAge)
	}
	if c.Value != "" {
		t.Errorf("value = %q, want empty", c.Value)
	}
}
