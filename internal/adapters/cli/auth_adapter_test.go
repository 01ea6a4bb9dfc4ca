package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/tesseract/internal/ports/primary"
)

// mockAuthService implements primary.AuthService for testing
type mockAuthService struct {
	loginFn  func(ctx context.Context, req primary.LoginRequest) error
	loggedIn bool
	lastReq  primary.LoginRequest
}

func (m *mockAuthService) Login(ctx context.Context, req primary.LoginRequest) error {
	m.lastReq = req
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	m.loggedIn = true
	return nil
}

func (m *mockAuthService) Logout(ctx context.Context) error {
	m.loggedIn = false
	return nil
}

func (m *mockAuthService) Status(ctx context.Context) (*primary.AuthStatus, error) {
	return &primary.AuthStatus{LoggedIn: m.loggedIn}, nil
}

func TestAuthAdapter_Login(t *testing.T) {
	mock := &mockAuthService{}
	var buf bytes.Buffer
	adapter := NewAuthAdapter(mock, &buf)

	if err := adapter.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastReq.Email != "a@b.c" || mock.lastReq.Password != "pw" {
		t.Errorf("unexpected request %+v", mock.lastReq)
	}
	if !strings.Contains(buf.String(), "Logged in as a@b.c") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestAuthAdapter_Login_Error(t *testing.T) {
	mock := &mockAuthService{
		loginFn: func(ctx context.Context, req primary.LoginRequest) error {
			return errors.New("refused")
		},
	}
	var buf bytes.Buffer
	adapter := NewAuthAdapter(mock, &buf)

	if err := adapter.Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Fatal("expected error, got nil")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %s", buf.String())
	}
}

func TestAuthAdapter_LogoutAndStatus(t *testing.T) {
	mock := &mockAuthService{loggedIn: true}
	var buf bytes.Buffer
	adapter := NewAuthAdapter(mock, &buf)
	ctx := context.Background()

	if err := adapter.Status(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := adapter.Logout(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := adapter.Status(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", lines)
	}
	if lines[0] != "Logged in" || !strings.HasPrefix(lines[2], "Not logged in") {
		t.Errorf("unexpected output: %q", lines)
	}
}
