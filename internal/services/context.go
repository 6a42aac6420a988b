package services

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

var claimsKey ctxKey = "access_claims"

// WithAccessClaims attaches verified access-token claims to ctx.
func WithAccessClaims(ctx context.Context, claims AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func AccessClaimsFromContext(ctx context.Context) (AccessClaims, bool) {
	value := ctx.Value(claimsKey)
	if value == nil {
		return AccessClaims{}, false
	}
	claims, ok := value.(AccessClaims)
	return claims, ok
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := AccessClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
