package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// TokenDenylist stores revoked token ids under denylist:{jti}. Each entry
// expires together with the token it revokes.
type TokenDenylist struct {
	client *goredis.Client
}

func NewTokenDenylist(client *goredis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

func denylistKey(tokenID string) string {
	return fmt.Sprintf("denylist:%s", tokenID)
}

func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistKey(tokenID), 1, ttl).Err()
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist lookup failed: %w", err)
	}
	return n > 0, nil
}
