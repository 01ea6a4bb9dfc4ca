package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/tesseract/internal/ports/primary"
	"github.com/example/tesseract/internal/ports/secondary"
)

// mockAuthAPI implements secondary.AuthAPI for testing.
type mockAuthAPI struct {
	token string
	err   error
	calls int
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

// mockCredentialStore implements secondary.CredentialStore for testing.
type mockCredentialStore struct {
	token  string
	setErr error
}

func (m *mockCredentialStore) Token(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *mockCredentialStore) SetToken(ctx context.Context, token string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.token = token
	return nil
}

func (m *mockCredentialStore) ClearToken(ctx context.Context) error {
	m.token = ""
	return nil
}

func newTestAuthService() (*AuthServiceImpl, *mockAuthAPI, *mockCredentialStore) {
	api := &mockAuthAPI{token: "tok-123"}
	creds := &mockCredentialStore{}
	return NewAuthService(api, creds, discardLogger()), api, creds
}

func TestLogin_StoresToken(t *testing.T) {
	service, _, creds := newTestAuthService()
	ctx := context.Background()

	err := service.Login(ctx, primary.LoginRequest{Email: "a@b.c", Password: "pw"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if creds.token != "tok-123" {
		t.Errorf("expected token 'tok-123', got '%s'", creds.token)
	}
	status, _ := service.Status(ctx)
	if !status.LoggedIn {
		t.Error("expected logged in")
	}
}

func TestLogin_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  primary.LoginRequest
	}{
		{"missing email", primary.LoginRequest{Email: " ", Password: "pw"}},
		{"missing password", primary.LoginRequest{Email: "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, api, _ := newTestAuthService()

			err := service.Login(context.Background(), tt.req)

			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if api.calls != 0 {
				t.Errorf("expected no login request, got %d", api.calls)
			}
		})
	}
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		apiErr  error
		wantErr error
	}{
		{"refused", "", secondary.ErrInvalidCredentials, ErrInvalidCredentials},
		{"server error", "", errors.New("500"), ErrServerUnavailable},
		{"empty token", "", nil, ErrServerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, api, creds := newTestAuthService()
			creds.token = "previous"
			api.token = tt.token
			api.err = tt.apiErr

			err := service.Login(context.Background(), primary.LoginRequest{Email: "a@b.c", Password: "pw"})

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if creds.token != "previous" {
				t.Errorf("expected previous token to survive, got '%s'", creds.token)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	service, _, creds := newTestAuthService()
	creds.token = "tok"
	ctx := context.Background()

	if err := service.Logout(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	status, err := service.Status(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if status.LoggedIn {
		t.Error("expected logged out")
	}
}
