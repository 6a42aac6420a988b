// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"net/http"

	"my-chat/internal/services"
	"my-chat/internal/session"
	"my-chat/internal/transport/httpdto"
	chat_errors "my-chat/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP endpoints. Unexpected errors are
// attached with c.Error and logged by middleware.ErrorHandler.
type AuthHandler struct {
	service *services.AuthService
	cookies *session.CookieManager

	// exposeErrors puts store error text into register 500 bodies.
	exposeErrors bool
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService, cookies *session.CookieManager, exposeErrors bool) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookies:      cookies,
		exposeErrors: exposeErrors,
	}
}

// Register handles POST /registerUser.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewMessageResponse("Invalid request body"))
		return
	}

	profile, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNo,
	})
	if err != nil {
		_ = c.Error(err)
		msg := "Error registering user"
		if h.exposeErrors {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(msg))
		return
	}

	c.JSON(http.StatusOK, httpdto.RegisterResponse{
		Message: "User registered successfully",
		User:    profile,
	})
}

// Login handles POST /login and sets both token cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewMessageResponse("Invalid request body"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeLoginError(c, err)
		return
	}

	h.cookies.SetAccessToken(c.Writer, res.AccessToken)
	h.cookies.SetRefreshToken(c.Writer, res.RefreshToken)
	c.JSON(http.StatusOK, httpdto.LoginResponse{
		Message:      "Logged in successfully",
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// Refresh handles GET /refreshToken. Only the access cookie is replaced.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := session.TokenFromRequest(c.Request, session.RefreshTokenCookie)
	if token == "" {
		c.JSON(http.StatusUnauthorized, httpdto.NewMessageResponse("No refresh token found"))
		return
	}

	access, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, chat_errors.ErrNotFound) {
			c.JSON(http.StatusNotFound, httpdto.NewMessageResponse("User not found"))
			return
		}
		// A denylist outage also lands here; record it, the token may be fine.
		if !services.IsTokenError(err) {
			_ = c.Error(err)
		}
		c.JSON(http.StatusForbidden, httpdto.NewMessageResponse("Invalid refresh token"))
		return
	}

	h.cookies.SetAccessToken(c.Writer, access)
	c.JSON(http.StatusOK, httpdto.NewMessageResponse("Access token refreshed"))
}

// Logout handles POST /logout. It always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.service.Logout(c.Request.Context(),
		session.TokenFromRequest(c.Request, session.AccessTokenCookie),
		session.TokenFromRequest(c.Request, session.RefreshTokenCookie),
	)
	h.cookies.Clear(c.Writer)
	c.JSON(http.StatusOK, httpdto.NewMessageResponse("Logged out successfully"))
}

// Profile handles GET /profile behind AuthMiddleware.
func (h *AuthHandler) Profile(c *gin.Context) {
	claims, ok := services.AccessClaimsFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewMessageResponse("Access token missing"))
		return
	}

	view, err := h.service.Profile(c.Request.Context(), claims)
	if err != nil {
		if errors.Is(err, chat_errors.ErrNotFound) {
			c.JSON(http.StatusNotFound, httpdto.NewMessageResponse("User not found"))
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewMessageResponse("Failed to retrieve profile"))
		return
	}

	c.JSON(http.StatusOK, httpdto.ProfileResponse{
		Email:   view.Email,
		Name:    view.Name,
		PhoneNo: view.PhoneNumber,
	})
}

func writeLoginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat_errors.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, httpdto.NewMessageResponse("Invalid email or password"))
	case errors.Is(err, chat_errors.ErrNotFound):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewMessageResponse("User data not found"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewMessageResponse("Server error"))
	}
}

