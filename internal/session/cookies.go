// Package session binds auth tokens to the client through cookies.
package session

import (
	"net/http"
	"time"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieManager writes the access and refresh cookies. Both are HttpOnly and
// SameSite=Strict; Secure follows the deployment mode.
type CookieManager struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCookieManager(secure bool, accessTTL, refreshTTL time.Duration) *CookieManager {
	return &CookieManager{
		secure:     secure,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *CookieManager) SetAccessToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.cookie(AccessTokenCookie, token, m.accessTTL))
}

func (m *CookieManager) SetRefreshToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.cookie(RefreshTokenCookie, token, m.refreshTTL))
}

// Clear expires both cookies. It is safe to call without any cookie set.
func (m *CookieManager) Clear(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c := m.cookie(name, "", 0)
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

func (m *CookieManager) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// TokenFromRequest returns the named cookie value or "" when absent.
func TokenFromRequest(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
