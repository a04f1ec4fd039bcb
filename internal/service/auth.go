package service

import (
	"context"
	"fmt"
	"strings"

	"labportal/internal/domain"
	"labportal/internal/repository"
	"labportal/internal/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication logic
type AuthService struct {
	accounts repository.AccountRepository
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(accounts repository.AccountRepository, sessions *session.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
	}
}

// Session returns the user's session once it has been rehydrated
func (s *AuthService) Session(ctx context.Context, userID int64) (session.State, error) {
	_, state, err := s.sessions.Load(ctx, userID)
	return state, err
}

// CheckCredentials verifies a username and password pair
func (s *AuthService) CheckCredentials(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// Login authenticates the chat user's session
func (s *AuthService) Login(ctx context.Context, userID int64, username, password string) (domain.Profile, error) {
	account, err := s.CheckCredentials(ctx, username, password)
	if err != nil {
		return domain.Profile{}, err
	}

	store, _, err := s.sessions.Load(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to load session: %w", err)
	}

	profile := account.Profile()
	if err := store.Login(ctx, profile); err != nil {
		return domain.Profile{}, err
	}

	s.logger.Info("User logged in",
		zap.Int64("user_id", userID),
		zap.String("account_id", profile.ID),
		zap.String("role", string(profile.Role)),
	)
	return profile, nil
}

// Logout clears the chat user's session
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	store, _, err := s.sessions.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := store.Logout(ctx); err != nil {
		return err
	}

	s.logger.Info("User logged out", zap.Int64("user_id", userID))
	return nil
}
