package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/tesseract/internal/ports/primary"
	"github.com/example/tesseract/internal/ports/secondary"
)

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	api         secondary.AuthAPI
	credentials secondary.CredentialStore
	logger      *slog.Logger
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(api secondary.AuthAPI, credentials secondary.CredentialStore, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		api:         api,
		credentials: credentials,
		logger:      logger,
	}
}

// Login exchanges credentials for a token and stores it.
// A previously stored token is kept when the login fails.
func (s *AuthServiceImpl) Login(ctx context.Context, req primary.LoginRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}

	token, err := s.api.Login(ctx, req.Email, req.Password)
	if errors.Is(err, secondary.ErrInvalidCredentials) {
		s.logger.Info("login refused", "email", req.Email)
		return ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("login request failed", "email", req.Email, "err", err)
		return ErrServerUnavailable
	}
	if token == "" {
		s.logger.Error("login response carried no token", "email", req.Email)
		return ErrServerUnavailable
	}

	if err := s.credentials.SetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	s.logger.Info("logged in", "email", req.Email)
	return nil
}

// Logout forgets the stored token.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	if err := s.credentials.ClearToken(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// Status reports whether a token is stored.
func (s *AuthServiceImpl) Status(ctx context.Context) (*primary.AuthStatus, error) {
	token, err := s.credentials.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	return &primary.AuthStatus{LoggedIn: token != ""}, nil
}

// Ensure AuthServiceImpl implements the interface
var _ primary.AuthService = (*AuthServiceImpl)(nil)
