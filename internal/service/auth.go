package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"authservice/internal/hasher"
	"authservice/internal/models"
	"authservice/internal/notifier"
	"authservice/internal/repository"
	"authservice/internal/token"

	"go.uber.org/zap"
)

var (
	ErrAccountExists = errors.New("account already exists")
	// ErrInvalidCredentials covers both an unknown account and a wrong
	// password, so the response cannot be used to probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error)
	Profile(ctx context.Context, email string) (*models.User, error)
}

type authService struct {
	repo     repository.UserRepository
	hasher   *hasher.Hasher
	tokens   *token.Manager
	notifier notifier.Notifier
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewAuthService(repo repository.UserRepository, h *hasher.Hasher, tm *token.Manager, n notifier.Notifier, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		hasher:   h,
		tokens:   tm,
		notifier: n,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to look up user by email", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the lookup above and
		// lose the insert race; the unique constraint is authoritative.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrAccountExists
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	if s.notifier != nil {
		s.notifier.AccountCreated(user.Email)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = normalizeEmail(email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to look up user by email", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		// Burn a hash comparison anyway so a missing account costs the
		// same wall-clock time as a wrong password.
		_, _ = s.hasher.Verify(password, dummyDigest)
		return "", time.Time{}, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("Stored digest is malformed", zap.Int64("user_id", user.ID), zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", time.Time{}, ErrInvalidCredentials
	}

	tokenString, expiresAt, err := s.tokens.Issue(user.ID, user.Email, s.tokenTTL)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return tokenString, expiresAt, nil
}

// Profile returns the stored public record for an authenticated identity.
func (s *authService) Profile(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.logger.Error("Failed to load profile", zap.Error(err))
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// dummyDigest is a bcrypt digest of a throwaway value, compared against when
// the account does not exist.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
