package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestSetTokens_Attributes(t *testing.T) {
	for _, secure := range []bool{false, true} {
		m := NewCookieManager(secure, 15*time.Minute, 7*24*time.Hour)
		rec := httptest.NewRecorder()

		m.SetAccessToken(rec, "acc")
		m.SetRefreshToken(rec, "ref")

		got := cookiesByName(rec)
		require.Len(t, got, 2)

		access := got[AccessTokenCookie]
		require.NotNil(t, access)
		assert.Equal(t, "acc", access.Value)
		assert.Equal(t, 900, access.MaxAge)
		assert.True(t, access.HttpOnly)
		assert.Equal(t, secure, access.Secure)
		assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
		assert.Equal(t, "/", access.Path)

		refresh := got[RefreshTokenCookie]
		require.NotNil(t, refresh)
		assert.Equal(t, "ref", refresh.Value)
		assert.Equal(t, 7*24*60*60, refresh.MaxAge)
		assert.True(t, refresh.HttpOnly)
		assert.Equal(t, secure, refresh.Secure)
	}
}

func TestClear_ExpiresBothCookies(t *testing.T) {
	m := NewCookieManager(true, 15*time.Minute, 7*24*time.Hour)
	rec := httptest.NewRecorder()

	m.Clear(rec)

	got := cookiesByName(rec)
	require.Len(t, got, 2)
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		c := got[name]
		require.NotNil(t, c, name)
		assert.Empty(t, c.Value)
		assert.Equal(t, -1, c.MaxAge)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	}
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", TokenFromRequest(req, AccessTokenCookie))

	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "tok"})
	assert.Equal(t, "tok", TokenFromRequest(req, AccessTokenCookie))
}
