// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/example/tesseract/internal/countdown"
	"github.com/example/tesseract/internal/ports/primary"
	"github.com/example/tesseract/internal/timeparsing"
)

var stateTint = map[string]*color.Color{
	primary.PartitionUpcoming:  color.New(color.FgCyan),
	primary.PartitionPending:   color.New(color.FgYellow),
	primary.PartitionCompleted: color.New(color.FgGreen),
	primary.PartitionArchived:  color.New(color.FgHiBlack),
}

func okMark() string {
	return color.New(color.FgGreen).Sprint("✓")
}

// MissionAdapter is a thin adapter that translates CLI operations to MissionService calls.
// It depends only on the MissionService interface, enabling easy testing with mocks.
type MissionAdapter struct {
	service primary.MissionService
	out     io.Writer
	now     func() time.Time
}

// NewMissionAdapter creates a new MissionAdapter with the given service.
func NewMissionAdapter(service primary.MissionService, out io.Writer) *MissionAdapter {
	return &MissionAdapter{
		service: service,
		out:     out,
		now:     time.Now,
	}
}

// Create creates a new mission. date accepts absolute timestamps, compact
// offsets such as "+2h" and natural language such as "tomorrow 9am".
func (a *MissionAdapter) Create(ctx context.Context, name, date, description, image string) error {
	resolved, err := timeparsing.ParseInput(date, a.now())
	if err != nil {
		return err
	}

	resp, err := a.service.CreateMission(ctx, primary.CreateMissionRequest{
		Name:        name,
		Date:        resolved,
		Description: description,
		Image:       image,
	})
	if err != nil {
		return err
	}

	if resp.MissionID == 0 {
		fmt.Fprintf(a.out, "%s Created mission %s (%s); it will appear on refresh\n", okMark(), resp.Mission.Name, resp.Mission.Date)
		return nil
	}
	fmt.Fprintf(a.out, "%s Created mission %d: %s (%s)\n", okMark(), resp.MissionID, resp.Mission.Name, resp.Mission.Date)
	return nil
}

// List lists missions with an optional partition filter.
func (a *MissionAdapter) List(ctx context.Context, partition string) error {
	missions, err := a.service.ListMissions(ctx, primary.MissionFilters{
		Partition: partition,
	})
	if err != nil {
		return fmt.Errorf("failed to list missions: %w", err)
	}

	if len(missions) == 0 {
		fmt.Fprintln(a.out, "No missions found")
		return nil
	}

	a.table(missions)
	return nil
}

// Show displays details for a single mission.
func (a *MissionAdapter) Show(ctx context.Context, missionID int64) (*primary.Mission, error) {
	mission, err := a.service.GetMission(ctx, missionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}

	fmt.Fprintf(a.out, "\nMission: %d\n", mission.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", mission.Name)
	fmt.Fprintf(a.out, "State:   %s\n", tint(mission.State, mission.State))
	fmt.Fprintf(a.out, "Date:    %s\n", mission.Date)
	if mission.State == primary.PartitionUpcoming {
		fmt.Fprintf(a.out, "T-minus: %s\n", a.remaining(mission.Date))
	}
	if mission.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", mission.Description)
	}
	fmt.Fprintf(a.out, "Image:   %s\n", mission.Image)
	fmt.Fprintln(a.out)

	return mission, nil
}

// Delete deletes a mission.
func (a *MissionAdapter) Delete(ctx context.Context, missionID int64) error {
	if err := a.service.DeleteMission(ctx, missionID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Mission %d deleted\n", okMark(), missionID)
	return nil
}

// Reschedule gives an archived mission a new date.
func (a *MissionAdapter) Reschedule(ctx context.Context, missionID int64, date string) error {
	resolved, err := timeparsing.ParseInput(date, a.now())
	if err != nil {
		return err
	}

	err = a.service.RescheduleMission(ctx, primary.RescheduleMissionRequest{
		MissionID: missionID,
		Date:      resolved,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Mission %d rescheduled for %s\n", okMark(), missionID, resolved)
	return nil
}

// PullArchive merges the backend archive into the local one.
func (a *MissionAdapter) PullArchive(ctx context.Context) error {
	resp, err := a.service.PullArchive(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Pulled %d archived mission(s); archive holds %d\n", okMark(), resp.Added, resp.Archived)
	return nil
}

func (a *MissionAdapter) table(missions []*primary.Mission) {
	fmt.Fprintf(a.out, "\n%-6s %-10s %-26s %-10s %s\n", "ID", "STATE", "DATE", "T-MINUS", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────")
	for _, m := range missions {
		tminus := "-"
		if m.State == primary.PartitionUpcoming {
			tminus = a.remaining(m.Date)
		}
		// Pad before tinting so escape codes do not break alignment.
		state := tint(m.State, fmt.Sprintf("%-10s", m.State))
		fmt.Fprintf(a.out, "%-6d %s %-26s %-10s %s\n", m.ID, state, m.Date, tminus, m.Name)
	}
	fmt.Fprintln(a.out)
}

func (a *MissionAdapter) remaining(date string) string {
	at, err := timeparsing.ParseInstant(date)
	if err != nil {
		return countdown.Unknown
	}
	return countdown.Format(at.Sub(a.now()))
}

func tint(state, text string) string {
	if c, ok := stateTint[state]; ok {
		return c.Sprint(text)
	}
	return text
}
