// Package repositorytest provides an in-memory UserRepository for tests.
package repositorytest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"my-chat/internal/domain/user"
	"my-chat/internal/repository"
	chat_errors "my-chat/pkg/errors"

	"github.com/google/uuid"
)

var _ repository.UserRepository = (*MemoryUserRepository)(nil)

// MemoryUserRepository is an in-process UserRepository with the same
// uniqueness and foreign-key rules as the SQL schema.
type MemoryUserRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]user.Account
	byEmail  map[string]uuid.UUID
	profiles map[uuid.UUID]user.Profile

	// FailProfileInsert, when set, is returned by every profile insert.
	FailProfileInsert error
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		accounts: make(map[uuid.UUID]user.Account),
		byEmail:  make(map[string]uuid.UUID),
		profiles: make(map[uuid.UUID]user.Profile),
	}
}

func (r *MemoryUserRepository) InsertAccount(_ context.Context, email, passwordHash string) (user.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertAccountLocked(email, passwordHash)
}

func (r *MemoryUserRepository) InsertProfile(_ context.Context, userID uuid.UUID, name, phone string) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertProfileLocked(userID, name, phone)
}

func (r *MemoryUserRepository) FindAccountByEmail(_ context.Context, email string) (user.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return user.Account{}, chat_errors.ErrNotFound
	}
	return r.accounts[id], nil
}

func (r *MemoryUserRepository) FindProfileByUserID(_ context.Context, userID uuid.UUID) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return user.Profile{}, chat_errors.ErrNotFound
	}
	return p, nil
}

func (r *MemoryUserRepository) CreateAccountWithProfile(_ context.Context, email, passwordHash, name, phone string) (user.Account, user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, err := r.insertAccountLocked(email, passwordHash)
	if err != nil {
		return user.Account{}, user.Profile{}, err
	}
	profile, err := r.insertProfileLocked(account.UserID, name, phone)
	if err != nil {
		delete(r.accounts, account.UserID)
		delete(r.byEmail, account.Email)
		return user.Account{}, user.Profile{}, err
	}
	return account, profile, nil
}

// UpdateProfile overwrites name and phone of an existing profile.
func (r *MemoryUserRepository) UpdateProfile(userID uuid.UUID, name, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return chat_errors.ErrNotFound
	}
	p.Name = name
	p.PhoneNumber = phone
	r.profiles[userID] = p
	return nil
}

// DeleteProfile removes a profile, leaving its account behind.
func (r *MemoryUserRepository) DeleteProfile(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, userID)
}

func (r *MemoryUserRepository) AccountCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

func (r *MemoryUserRepository) insertAccountLocked(email, passwordHash string) (user.Account, error) {
	if _, exists := r.byEmail[email]; exists {
		return user.Account{}, fmt.Errorf("%w: duplicate key value violates unique constraint \"auth_email_key\"", chat_errors.ErrAlreadyExists)
	}
	a := user.Account{
		UserID:       uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.accounts[a.UserID] = a
	r.byEmail[email] = a.UserID
	return a, nil
}

func (r *MemoryUserRepository) insertProfileLocked(userID uuid.UUID, name, phone string) (user.Profile, error) {
	if r.FailProfileInsert != nil {
		return user.Profile{}, fmt.Errorf("insert profile: %w", r.FailProfileInsert)
	}
	if _, ok := r.accounts[userID]; !ok {
		return user.Profile{}, fmt.Errorf("insert profile: account %s does not exist", userID)
	}
	if _, exists := r.profiles[userID]; exists {
		return user.Profile{}, fmt.Errorf("%w: profile for %s", chat_errors.ErrAlreadyExists, userID)
	}
	p := user.Profile{
		UserID:      userID,
		Name:        name,
		PhoneNumber: phone,
		CreatedAt:   time.Now(),
	}
	r.profiles[userID] = p
	return p, nil
}
