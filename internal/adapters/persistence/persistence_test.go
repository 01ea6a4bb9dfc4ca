package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/example/tesseract/internal/ports/secondary"
)

// memoryKV implements secondary.KeyValueStore in memory.
type memoryKV struct {
	values map[string]string
	getErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: make(map[string]string)}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memoryKV) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func TestArchiveStore_RoundTrip(t *testing.T) {
	kv := newMemoryKV()
	store := NewArchiveStore(kv)
	ctx := context.Background()

	missions := []*secondary.MissionRecord{
		{ID: 2, Name: "Gemini", Date: "2026-01-02T10:00", Description: "two"},
		{ID: 1, Name: "Mercury", Date: "2026-01-01", Image: "/img/m.png"},
	}
	if err := store.Save(ctx, missions); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 missions, got %d", len(got))
	}
	for i := range missions {
		if *got[i] != *missions[i] {
			t.Errorf("mission %d = %+v, want %+v", i, *got[i], *missions[i])
		}
	}
}

func TestArchiveStore_SaveEmptyWritesArray(t *testing.T) {
	kv := newMemoryKV()
	store := NewArchiveStore(kv)

	if err := store.Save(context.Background(), nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if kv.values[ArchiveKey] != "[]" {
		t.Errorf("stored %q, want %q", kv.values[ArchiveKey], "[]")
	}
}

func TestArchiveStore_Load(t *testing.T) {
	tests := []struct {
		name    string
		raw     *string
		want    int
		corrupt bool
	}{
		{name: "missing key", raw: nil, want: 0},
		{name: "empty value", raw: ptr(""), want: 0},
		{name: "null", raw: ptr("null"), want: 0},
		{name: "empty array", raw: ptr("[]"), want: 0},
		{name: "null entries dropped", raw: ptr(`[null,{"id":3,"name":"A","date":"2026-01-01","description":""}]`), want: 1},
		{name: "garbage", raw: ptr("{not json"), corrupt: true},
		{name: "wrong shape", raw: ptr(`{"id":1}`), corrupt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMemoryKV()
			if tt.raw != nil {
				kv.values[ArchiveKey] = *tt.raw
			}

			got, err := NewArchiveStore(kv).Load(context.Background())

			if tt.corrupt {
				if !errors.Is(err, secondary.ErrCorruptSnapshot) {
					t.Fatalf("expected ErrCorruptSnapshot, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d missions, got %d", tt.want, len(got))
			}
		})
	}
}

func TestArchiveStore_LoadStorageError(t *testing.T) {
	kv := newMemoryKV()
	kv.getErr = errors.New("disk I/O error")

	_, err := NewArchiveStore(kv).Load(context.Background())

	if err == nil || errors.Is(err, secondary.ErrCorruptSnapshot) {
		t.Errorf("expected plain storage error, got %v", err)
	}
}

func TestCredentialStore(t *testing.T) {
	kv := newMemoryKV()
	store := NewCredentialStore(kv)
	ctx := context.Background()

	token, err := store.Token(ctx)
	if err != nil || token != "" {
		t.Fatalf("expected no token, got %q (%v)", token, err)
	}

	if err := store.SetToken(ctx, "abc"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if kv.values[TokenKey] != "abc" {
		t.Errorf("stored %q under %s, want %q", kv.values[TokenKey], TokenKey, "abc")
	}

	if err := store.ClearToken(ctx); err != nil {
		t.Fatalf("ClearToken failed: %v", err)
	}
	if token, _ := store.Token(ctx); token != "" {
		t.Errorf("expected token to be cleared, got %q", token)
	}
}

func ptr(s string) *string { return &s }
