package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/tesseract/internal/ports/primary"
)

// AuthAdapter translates login commands to AuthService calls.
type AuthAdapter struct {
	service primary.AuthService
	out     io.Writer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(service primary.AuthService, out io.Writer) *AuthAdapter {
	return &AuthAdapter{service: service, out: out}
}

// Login authenticates and stores the session token.
func (a *AuthAdapter) Login(ctx context.Context, email, password string) error {
	if err := a.service.Login(ctx, primary.LoginRequest{Email: email, Password: password}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Logged in as %s\n", okMark(), email)
	return nil
}

// Logout forgets the session token.
func (a *AuthAdapter) Logout(ctx context.Context) error {
	if err := a.service.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Logged out\n", okMark())
	return nil
}

// Status prints whether a session token is stored.
func (a *AuthAdapter) Status(ctx context.Context) error {
	status, err := a.service.Status(ctx)
	if err != nil {
		return err
	}
	if status.LoggedIn {
		fmt.Fprintln(a.out, "Logged in")
	} else {
		fmt.Fprintln(a.out, "Not logged in (run 'tesseract login')")
	}
	return nil
}
