// Package persistence contains adapters that implement the local-storage
// ports on top of a key-value store.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/tesseract/internal/ports/secondary"
)

// ArchiveKey is the storage key holding the archived missions snapshot.
const ArchiveKey = "archivedMissions"

// ArchiveStoreAdapter implements secondary.ArchiveStore as a JSON array under ArchiveKey.
type ArchiveStoreAdapter struct {
	kv secondary.KeyValueStore
}

// NewArchiveStore creates a new ArchiveStoreAdapter.
func NewArchiveStore(kv secondary.KeyValueStore) *ArchiveStoreAdapter {
	return &ArchiveStoreAdapter{kv: kv}
}

// Load returns the persisted archive. A missing or empty value yields an
// empty archive; an undecodable value yields ErrCorruptSnapshot.
func (a *ArchiveStoreAdapter) Load(ctx context.Context) ([]*secondary.MissionRecord, error) {
	raw, ok, err := a.kv.Get(ctx, ArchiveKey)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var records []*secondary.MissionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", secondary.ErrCorruptSnapshot, ArchiveKey, err)
	}

	// Drop null entries rather than failing the whole snapshot
	out := records[:0]
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// Save replaces the persisted archive.
func (a *ArchiveStoreAdapter) Save(ctx context.Context, missions []*secondary.MissionRecord) error {
	if missions == nil {
		missions = []*secondary.MissionRecord{}
	}
	data, err := json.Marshal(missions)
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	return a.kv.Set(ctx, ArchiveKey, string(data))
}

// Ensure ArchiveStoreAdapter implements the interface
var _ secondary.ArchiveStore = (*ArchiveStoreAdapter)(nil)
