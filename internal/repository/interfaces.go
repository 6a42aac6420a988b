package repository

import (
	"context"

	"my-chat/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository is the credential store: the auth and users tables.
type UserRepository interface {
	InsertAccount(ctx context.Context, email, passwordHash string) (user.Account, error)
	InsertProfile(ctx context.Context, userID uuid.UUID, name, phone string) (user.Profile, error)
	FindAccountByEmail(ctx context.Context, email string) (user.Account, error)
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error)

	// CreateAccountWithProfile inserts both rows in a single transaction.
	CreateAccountWithProfile(ctx context.Context, email, passwordHash, name, phone string) (user.Account, user.Profile, error)
}
