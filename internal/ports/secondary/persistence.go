// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// Sentinel errors returned by adapters. Callers match them with errors.Is.
var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the backend rejected the credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials means a login attempt was refused.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCorruptSnapshot means persisted local state could not be decoded.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// MissionRecord represents a mission as exchanged with the backend and
// persisted in the local archive snapshot.
type MissionRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// NewMissionRecord contains the fields sent when creating a mission.
type NewMissionRecord struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// MissionAPI defines the secondary port for the remote missions backend.
// Every call carries the stored credential when one is present.
type MissionAPI interface {
	// ListMissions returns all missions for the authenticated user.
	ListMissions(ctx context.Context) ([]*MissionRecord, error)

	// ListArchived returns the missions the backend has flagged as archived.
	ListArchived(ctx context.Context) ([]*MissionRecord, error)

	// CreateMission creates a mission; the backend assigns the ID.
	CreateMission(ctx context.Context, mission *NewMissionRecord) (*MissionRecord, error)

	// DeleteMission deletes a mission. Missing missions yield ErrNotFound.
	DeleteMission(ctx context.Context, id int64) error

	// UpdateMissionDate overwrites a mission's date.
	UpdateMissionDate(ctx context.Context, id int64, date string) error

	// SetArchiveFlag marks a mission archived on the backend.
	SetArchiveFlag(ctx context.Context, id int64) error

	// ClearArchiveFlag restores an archived mission on the backend.
	ClearArchiveFlag(ctx context.Context, id int64) error
}

// AuthAPI defines the secondary port for the authentication backend.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
}

// ArchiveStore defines the secondary port for the durable archive snapshot.
// It is loaded once when the controller starts and rewritten after every
// change to the archived partition.
type ArchiveStore interface {
	// Load returns the persisted archive, empty when nothing was saved.
	Load(ctx context.Context) ([]*MissionRecord, error)

	// Save replaces the persisted archive.
	Save(ctx context.Context, missions []*MissionRecord) error
}

// CredentialStore defines the secondary port for the stored bearer token.
type CredentialStore interface {
	// Token returns the stored token, or "" when none is stored.
	Token(ctx context.Context) (string, error)

	// SetToken stores token, replacing any previous one.
	SetToken(ctx context.Context, token string) error

	// ClearToken removes the stored token.
	ClearToken(ctx context.Context) error
}

// KeyValueStore defines the secondary port for browser-style local storage.
type KeyValueStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
