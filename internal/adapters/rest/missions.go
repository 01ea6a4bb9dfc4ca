package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/example/tesseract/internal/ports/secondary"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by POST /login.
type LoginResponse struct {
	Token string `json:"token"`
}

// UpdateDateRequest is the body of PATCH /missions/{id}.
type UpdateDateRequest struct {
	Date string `json:"date"`
}

// ArchiveFlagRequest is the body of PUT /missions/{id}/archive. The backend
// has no separate restore endpoint, so both directions go through the same
// PUT and the body states the desired flag.
type ArchiveFlagRequest struct {
	Archived bool `json:"archived"`
}

// ListMissions retrieves all missions for the authenticated user.
func (c *Client) ListMissions(ctx context.Context) ([]*secondary.MissionRecord, error) {
	resp, err := c.request(ctx, http.MethodGet, "/missions", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	return decodeMissions(resp)
}

// ListArchived retrieves the missions flagged as archived on the backend.
func (c *Client) ListArchived(ctx context.Context) ([]*secondary.MissionRecord, error) {
	resp, err := c.request(ctx, http.MethodGet, "/missions/archive", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived missions: %w", err)
	}
	return decodeMissions(resp)
}

// CreateMission creates a mission. When the backend answers without a body
// the returned record carries the submitted fields and a zero ID.
func (c *Client) CreateMission(ctx context.Context, mission *secondary.NewMissionRecord) (*secondary.MissionRecord, error) {
	resp, err := c.request(ctx, http.MethodPost, "/missions", mission)
	if err != nil {
		return nil, fmt.Errorf("failed to create mission: %w", err)
	}

	record := &secondary.MissionRecord{
		Name:        mission.Name,
		Date:        mission.Date,
		Description: mission.Description,
		Image:       mission.Image,
	}
	if len(bytes.TrimSpace(resp)) == 0 {
		return record, nil
	}
	if err := json.Unmarshal(resp, record); err != nil {
		return nil, fmt.Errorf("failed to parse created mission: %w", err)
	}
	return record, nil
}

// DeleteMission deletes a mission. A missing mission yields an error matching
// secondary.ErrNotFound.
func (c *Client) DeleteMission(ctx context.Context, id int64) error {
	if _, err := c.request(ctx, http.MethodDelete, missionPath(id), nil); err != nil {
		return fmt.Errorf("failed to delete mission %d: %w", id, err)
	}
	return nil
}

// UpdateMissionDate overwrites a mission's date.
func (c *Client) UpdateMissionDate(ctx context.Context, id int64, date string) error {
	if _, err := c.request(ctx, http.MethodPatch, missionPath(id), UpdateDateRequest{Date: date}); err != nil {
		return fmt.Errorf("failed to update mission %d: %w", id, err)
	}
	return nil
}

// SetArchiveFlag marks a mission archived on the backend.
func (c *Client) SetArchiveFlag(ctx context.Context, id int64) error {
	if _, err := c.request(ctx, http.MethodPut, archivePath(id), ArchiveFlagRequest{Archived: true}); err != nil {
		return fmt.Errorf("failed to archive mission %d: %w", id, err)
	}
	return nil
}

// ClearArchiveFlag restores an archived mission on the backend.
func (c *Client) ClearArchiveFlag(ctx context.Context, id int64) error {
	if _, err := c.request(ctx, http.MethodPut, archivePath(id), ArchiveFlagRequest{Archived: false}); err != nil {
		return fmt.Errorf("failed to restore mission %d: %w", id, err)
	}
	return nil
}

func missionPath(id int64) string {
	return fmt.Sprintf("/missions/%d", id)
}

func archivePath(id int64) string {
	return missionPath(id) + "/archive"
}

func decodeMissions(body []byte) ([]*secondary.MissionRecord, error) {
	var missions []*secondary.MissionRecord
	if err := json.Unmarshal(body, &missions); err != nil {
		return nil, fmt.Errorf("failed to parse missions: %w", err)
	}

	out := missions[:0]
	for _, m := range missions {
		if m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}

// Ensure Client implements the interface
var _ secondary.MissionAPI = (*Client)(nil)
