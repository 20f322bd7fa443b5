package auth

import "net/http"

// CookieName is the name of the session cookie carrying the JWT.
const CookieName = "jwt"

// SessionCookie builds the session cookie for an issued token.
//
// HttpOnly keeps the token out of reach of JavaScript (XSS protection),
// Secure restricts it to HTTPS, and SameSite=Strict stops the browser from
// attaching it to any cross-site request. MaxAge matches the token expiry
// so the browser drops the cookie at the same time the token dies.
func SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredSessionCookie builds the cookie that instructs the browser to
// delete the session cookie immediately (logout).
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
