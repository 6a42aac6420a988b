package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"my-chat/config"
	chat_errors "my-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims is the payload of the short-lived access token. Name and
// phone are a snapshot taken at issuance.
type AccessClaims struct {
	UserID      string `json:"userid"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneno"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of the long-lived refresh token.
type RefreshClaims struct {
	UserID string `json:"userid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenDenylist records revoked token ids until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
	denylist      TokenDenylist
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTTL(),
		refreshTTL:    cfg.RefreshTTL(),
		now:           time.Now,
	}
}

// WithDenylist enables revocation checks on verify.
func (t *TokenIssuer) WithDenylist(d TokenDenylist) *TokenIssuer {
	t.denylist = d
	return t
}

// WithClock replaces the time source used for issuance and expiry checks.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

func (t *TokenIssuer) AccessTTL() time.Duration  { return t.accessTTL }
func (t *TokenIssuer) RefreshTTL() time.Duration { return t.refreshTTL }

func (t *TokenIssuer) IssueAccess(claims AccessClaims) (string, error) {
	claims.RegisteredClaims = t.registered(claims.UserID, t.accessTTL)
	return sign(claims, t.accessSecret)
}

func (t *TokenIssuer) IssueRefresh(claims RefreshClaims) (string, error) {
	claims.RegisteredClaims = t.registered(claims.UserID, t.refreshTTL)
	return sign(claims, t.refreshSecret)
}

func (t *TokenIssuer) VerifyAccess(ctx context.Context, tokenString string) (AccessClaims, error) {
	var claims AccessClaims
	if err := t.verify(ctx, tokenString, &claims, t.accessSecret); err != nil {
		return AccessClaims{}, err
	}
	return claims, nil
}

func (t *TokenIssuer) VerifyRefresh(ctx context.Context, tokenString string) (RefreshClaims, error) {
	var claims RefreshClaims
	if err := t.verify(ctx, tokenString, &claims, t.refreshSecret); err != nil {
		return RefreshClaims{}, err
	}
	return claims, nil
}

// RevokeAccess and RevokeRefresh denylist a still-valid token for the rest of
// its lifetime. Without a denylist they are no-ops.
func (t *TokenIssuer) RevokeAccess(ctx context.Context, tokenString string) error {
	return t.revoke(ctx, tokenString, &AccessClaims{}, t.accessSecret)
}

func (t *TokenIssuer) RevokeRefresh(ctx context.Context, tokenString string) error {
	return t.revoke(ctx, tokenString, &RefreshClaims{}, t.refreshSecret)
}

func (t *TokenIssuer) registered(userID string, ttl time.Duration) jwt.RegisteredClaims {
	now := t.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func sign(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (t *TokenIssuer) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	if tokenString == "" {
		return chat_errors.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, chat_errors.ErrInvalidToken
		}
		return secret, nil
	},
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return chat_errors.ErrTokenExpired
		}
		return chat_errors.ErrInvalidToken
	}
	if !parsed.Valid {
		return chat_errors.ErrInvalidToken
	}
	return nil
}

func (t *TokenIssuer) verify(ctx context.Context, tokenString string, claims jwt.Claims, secret []byte) error {
	if err := t.parse(tokenString, claims, secret); err != nil {
		return err
	}
	if t.denylist == nil {
		return nil
	}

	id, err := tokenID(claims)
	if err != nil {
		return err
	}
	revoked, err := t.denylist.IsRevoked(ctx, id)
	if err != nil {
		return fmt.Errorf("check token denylist: %w", err)
	}
	if revoked {
		return chat_errors.ErrTokenRevoked
	}
	return nil
}

func (t *TokenIssuer) revoke(ctx context.Context, tokenString string, claims jwt.Claims, secret []byte) error {
	if t.denylist == nil {
		return nil
	}
	if err := t.parse(tokenString, claims, secret); err != nil {
		// Expired or forged tokens are already unusable.
		return nil
	}

	id, err := tokenID(claims)
	if err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	ttl := exp.Time.Sub(t.now())
	if ttl <= 0 {
		return nil
	}
	return t.denylist.Revoke(ctx, id, ttl)
}

// IsTokenError reports whether err is a verdict about the token itself, as
// opposed to a failure reaching the denylist.
func IsTokenError(err error) bool {
	return errors.Is(err, chat_errors.ErrInvalidToken) ||
		errors.Is(err, chat_errors.ErrTokenExpired) ||
		errors.Is(err, chat_errors.ErrTokenRevoked)
}

func tokenID(claims jwt.Claims) (string, error) {
	switch c := claims.(type) {
	case *AccessClaims:
		if c.ID != "" {
			return c.ID, nil
		}
	case *RefreshClaims:
		if c.ID != "" {
			return c.ID, nil
		}
	}
	return "", chat_errors.ErrInvalidToken
}
