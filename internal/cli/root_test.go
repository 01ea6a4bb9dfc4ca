package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/tesseract/internal/app"
	"github.com/example/tesseract/internal/ports/secondary"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid credentials", fmt.Errorf("login: %w", app.ErrInvalidCredentials), "Invalid email or password"},
		{"server unavailable", app.ErrServerUnavailable, "Server error, please try again later"},
		{"unauthorized", fmt.Errorf("list: %w", secondary.ErrUnauthorized), "Not logged in or session expired (run 'tesseract login')"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userMessage(tt.err); got != tt.want {
				t.Errorf("userMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMissionID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseMissionID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMissionID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseMissionID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVersionCmd_SkipsInit(t *testing.T) {
	root := RootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--config", filepath.Join(t.TempDir(), "missing.yaml")})

	// A missing explicit config file would fail wire.Init.
	if err := root.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(out.String(), "tesseract ") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestConfigInit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")

	root := RootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init", "--config", path})

	if err := root.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file, got %v", err)
	}
	if !strings.Contains(string(data), "localhost:5000") {
		t.Errorf("expected default api url in config, got:\n%s", data)
	}
	if !strings.Contains(out.String(), "Wrote "+path) {
		t.Errorf("unexpected output %q", out.String())
	}

	// Refuses to overwrite.
	root = RootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init", "--config", path})
	if err := root.Execute(); err == nil {
		t.Error("expected error writing over an existing config")
	}
}

func TestRootCmd_Commands(t *testing.T) {
	root := RootCmd()

	want := []string{"login", "logout", "status", "mission", "archive", "watch", "history", "config", "version"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected command %q to be registered", name)
		}
	}
}
