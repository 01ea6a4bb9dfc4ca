package primary

import "context"

// AuthService defines the primary port for session management.
type AuthService interface {
	// Login exchanges credentials for a bearer token and stores it.
	Login(ctx context.Context, req LoginRequest) error

	// Logout forgets the stored token.
	Logout(ctx context.Context) error

	// Status reports whether a token is stored.
	Status(ctx context.Context) (*AuthStatus, error)
}

// LoginRequest contains the credentials for a login.
type LoginRequest struct {
	Email    string
	Password string
}

// AuthStatus describes the current session.
type AuthStatus struct {
	LoggedIn bool
}
