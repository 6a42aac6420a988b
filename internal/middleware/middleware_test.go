package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"my-chat/config"
	"my-chat/internal/redis"
	"my-chat/internal/repository/repositorytest"
	"my-chat/internal/services"
	"my-chat/internal/session"
	"my-chat/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthService() (*services.AuthService, *services.TokenIssuer) {
	cfg := &config.Config{
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessExpiryMin:  15,
		RefreshExpiry:    7,
	}
	tokens := services.NewTokenIssuer(cfg)
	svc := services.NewAuthService(repositorytest.NewMemoryUserRepository(), services.NewPasswordHasher(), tokens, nil)
	return svc, tokens
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	svc, tokens := newAuthService()

	var gotClaims services.AccessClaims
	var gotUserID any
	engine := gin.New()
	engine.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		gotClaims, _ = services.AccessClaimsFromContext(c.Request.Context())
		gotUserID = c.Request.Context().Value(logger.UserIdKey)
		c.Status(http.StatusNoContent)
	})

	t.Run("missing cookie", func(t *testing.T) {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Access token missing"}`, w.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: "not.a.jwt"})
		w := serve(engine, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"message":"Invalid or expired access token"}`, w.Body.String())
	})

	t.Run("refresh token in access cookie", func(t *testing.T) {
		refresh, err := tokens.IssueRefresh(services.RefreshClaims{UserID: "u1", Email: "a@x.com"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: refresh})
		w := serve(engine, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		access, err := tokens.IssueAccess(services.AccessClaims{UserID: "u1", Email: "a@x.com", Name: "Alice", PhoneNumber: "555-1"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: access})
		w := serve(engine, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "u1", gotClaims.UserID)
		assert.Equal(t, "Alice", gotClaims.Name)
		assert.Equal(t, "u1", gotUserID)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen any
	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.GET("/", func(c *gin.Context) {
		seen = c.Request.Context().Value(logger.RequestIdKey)
		c.Status(http.StatusOK)
	})

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get("X-Request-Id")
	assert.Len(t, id, 32)
	assert.Equal(t, id, seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc123")
	w = serve(engine, req)
	assert.Equal(t, "abc123", w.Header().Get("X-Request-Id"))
	assert.Equal(t, "abc123", seen)
}

func TestErrorHandler(t *testing.T) {
	engine := gin.New()
	engine.Use(ErrorHandler(logger.NewNop()))
	engine.GET("/unwritten", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	engine.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad"})
	})
	engine.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "fine")
	})

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/unwritten", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Server error"}`, w.Body.String())

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"bad"}`, w.Body.String())

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	engine := gin.New()
	engine.Use(LoggingMiddleware(logger.NewNop()))
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusTeapot, "tea") })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "tea", w.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	const origin = "http://localhost:5173"
	engine := gin.New()
	engine.Use(CORSMiddleware(origin))
	engine.GET("/profile", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Origin", origin)
	w := serve(engine, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	preflight := httptest.NewRequest(http.MethodOptions, "/profile", nil)
	preflight.Header.Set("Origin", origin)
	preflight.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w = serve(engine, preflight)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(engine, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func newLimitedEngine(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&config.Config{RedisHost: mr.Host(), RedisPort: mr.Port()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := redis.NewRateLimiter(client, redis.RateLimitConfig{AuthLimit: limit, AuthWindow: time.Minute})
	engine := gin.New()
	engine.POST("/login", AuthRateLimitMiddleware(limiter, logger.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine, mr
}

func TestAuthRateLimitMiddleware(t *testing.T) {
	engine, _ := newLimitedEngine(t, 2)

	for i := 0; i < 2; i++ {
		w := serve(engine, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := serve(engine, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	other := httptest.NewRequest(http.MethodPost, "/login", nil)
	other.RemoteAddr = "198.51.100.7:4321"
	w = serve(engine, other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRateLimitMiddleware_FailsOpen(t *testing.T) {
	engine, mr := newLimitedEngine(t, 1)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req := httptest.NewRequest(http.MethodPost, "/login", nil).WithContext(ctx)
	w := serve(engine, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}
