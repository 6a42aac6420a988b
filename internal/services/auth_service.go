package services

import (
	"context"
	"errors"
	"fmt"

	"my-chat/internal/domain/user"
	"my-chat/internal/repository"
	chat_errors "my-chat/pkg/errors"
	"my-chat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo repository.UserRepository
	hasher   *PasswordHasher
	tokens   *TokenIssuer
	logger   *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, hasher *PasswordHasher, tokens *TokenIssuer, l *logger.Logger) *AuthService {
	if l == nil {
		l = logger.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   l,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

type ProfileView struct {
	Email       string
	Name        string
	PhoneNumber string
}

// Register stores the account and its profile as one unit and returns the
// created profile.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (user.Profile, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return user.Profile{}, err
	}

	_, profile, err := s.userRepo.CreateAccountWithProfile(ctx, in.Email, hash, in.Name, in.PhoneNumber)
	if err != nil {
		return user.Profile{}, err
	}

	s.logger.InfoCtx(ctx, "user registered", zap.String("user_id", profile.UserID.String()))
	return profile, nil
}

// Login checks credentials and mints an access/refresh pair. Unknown email
// and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	account, err := s.userRepo.FindAccountByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, chat_errors.ErrNotFound) {
			return LoginResult{}, chat_errors.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	ok, err := s.hasher.Verify(in.Password, account.PasswordHash)
	if err != nil {
		return LoginResult{}, err
	}
	if !ok {
		return LoginResult{}, chat_errors.ErrInvalidCredentials
	}

	profile, err := s.userRepo.FindProfileByUserID(ctx, account.UserID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("profile for account %s: %w", account.UserID, err)
	}

	accessToken, err := s.tokens.IssueAccess(accessClaimsFor(account.UserID, account.Email, profile))
	if err != nil {
		return LoginResult{}, err
	}
	refreshToken, err := s.tokens.IssueRefresh(RefreshClaims{
		UserID: account.UserID.String(),
		Email:  account.Email,
	})
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh validates a refresh token and returns a new access token built
// from the current profile row. The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", chat_errors.ErrInvalidToken
	}

	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, chat_errors.ErrNotFound) {
			s.logger.ErrorCtx(ctx, "refresh profile lookup failed", err)
		}
		return "", chat_errors.ErrNotFound
	}

	return s.tokens.IssueAccess(accessClaimsFor(userID, claims.Email, profile))
}

// Logout revokes whichever tokens were presented when a denylist is
// configured. It never fails: clearing cookies is the caller's job.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) {
	if accessToken != "" {
		if err := s.tokens.RevokeAccess(ctx, accessToken); err != nil {
			s.logger.WarnCtx(ctx, "revoke access token failed", zap.Error(err))
		}
	}
	if refreshToken != "" {
		if err := s.tokens.RevokeRefresh(ctx, refreshToken); err != nil {
			s.logger.WarnCtx(ctx, "revoke refresh token failed", zap.Error(err))
		}
	}
}

// Profile re-reads name and phone from the store; email comes from claims.
func (s *AuthService) Profile(ctx context.Context, claims AccessClaims) (ProfileView, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ProfileView{}, chat_errors.ErrNotFound
	}

	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}

	return ProfileView{
		Email:       claims.Email,
		Name:        profile.Name,
		PhoneNumber: profile.PhoneNumber,
	}, nil
}

func (s *AuthService) ParseAccessToken(ctx context.Context, tokenString string) (AccessClaims, error) {
	return s.tokens.VerifyAccess(ctx, tokenString)
}

func accessClaimsFor(userID uuid.UUID, email string, profile user.Profile) AccessClaims {
	return AccessClaims{
		UserID:      userID.String(),
		Email:       email,
		Name:        profile.Name,
		PhoneNumber: profile.PhoneNumber,
	}
}
