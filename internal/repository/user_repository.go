package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"my-chat/internal/domain/user"
	chat_errors "my-chat/pkg/errors"

	"github.com/google/uuid"
)

const (
	insertAccountQuery = `INSERT INTO auth (email, password)
		VALUES ($1, $2)
		RETURNING userid, email, password, created_at`

	insertProfileQuery = `INSERT INTO users (userid, name, phoneno)
		VALUES ($1, $2, $3)
		RETURNING userid, name, phoneno, created_at`

	findAccountByEmailQuery = `SELECT userid, email, password, created_at
		FROM auth
		WHERE email = $1`

	findProfileByUserIDQuery = `SELECT userid, name, phoneno, created_at
		FROM users
		WHERE userid = $1`
)

type PostgresUserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) InsertAccount(ctx context.Context, email, passwordHash string) (user.Account, error) {
	var a user.Account
	err := r.db.QueryRowContext(ctx, insertAccountQuery, email, passwordHash).
		Scan(&a.UserID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.Account{}, fmt.Errorf("%w: %v", chat_errors.ErrAlreadyExists, err)
		}
		return user.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return a, nil
}

func (r *PostgresUserRepository) InsertProfile(ctx context.Context, userID uuid.UUID, name, phone string) (user.Profile, error) {
	var p user.Profile
	err := r.db.QueryRowContext(ctx, insertProfileQuery, userID, name, phone).
		Scan(&p.UserID, &p.Name, &p.PhoneNumber, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.Profile{}, fmt.Errorf("%w: %v", chat_errors.ErrAlreadyExists, err)
		}
		return user.Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

func (r *PostgresUserRepository) FindAccountByEmail(ctx context.Context, email string) (user.Account, error) {
	var a user.Account
	err := r.db.QueryRowContext(ctx, findAccountByEmailQuery, email).
		Scan(&a.UserID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.Account{}, chat_errors.ErrNotFound
		}
		return user.Account{}, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}

func (r *PostgresUserRepository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	var p user.Profile
	err := r.db.QueryRowContext(ctx, findProfileByUserIDQuery, userID).
		Scan(&p.UserID, &p.Name, &p.PhoneNumber, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.Profile{}, chat_errors.ErrNotFound
		}
		return user.Profile{}, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

func (r *PostgresUserRepository) CreateAccountWithProfile(ctx context.Context, email, passwordHash, name, phone string) (user.Account, user.Profile, error) {
	var (
		account user.Account
		profile user.Profile
	)
	err := WithTx(ctx, r.db, func(tx DBTX) error {
		txRepo := &PostgresUserRepository{db: tx}

		var err error
		account, err = txRepo.InsertAccount(ctx, email, passwordHash)
		if err != nil {
			return err
		}
		profile, err = txRepo.InsertProfile(ctx, account.UserID, name, phone)
		return err
	})
	if err != nil {
		return user.Account{}, user.Profile{}, err
	}
	return account, profile, nil
}
