package persistence

import (
	"context"

	"github.com/example/tesseract/internal/ports/secondary"
)

// TokenKey is the storage key holding the bearer token.
const TokenKey = "token"

// CredentialStoreAdapter implements secondary.CredentialStore under TokenKey.
type CredentialStoreAdapter struct {
	kv secondary.KeyValueStore
}

// NewCredentialStore creates a new CredentialStoreAdapter.
func NewCredentialStore(kv secondary.KeyValueStore) *CredentialStoreAdapter {
	return &CredentialStoreAdapter{kv: kv}
}

// Token returns the stored token, or "" when none is stored.
func (c *CredentialStoreAdapter) Token(ctx context.Context) (string, error) {
	token, _, err := c.kv.Get(ctx, TokenKey)
	return token, err
}

// SetToken stores token, replacing any previous one.
func (c *CredentialStoreAdapter) SetToken(ctx context.Context, token string) error {
	return c.kv.Set(ctx, TokenKey, token)
}

// ClearToken removes the stored token.
func (c *CredentialStoreAdapter) ClearToken(ctx context.Context) error {
	return c.kv.Delete(ctx, TokenKey)
}

// Ensure CredentialStoreAdapter implements the interface
var _ secondary.CredentialStore = (*CredentialStoreAdapter)(nil)
