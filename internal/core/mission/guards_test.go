package mission

import "testing"

func TestCanCreateMission(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CreateContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "name and valid date",
			ctx:         CreateContext{Name: "Artemis", Date: "2030-01-01T10:00", DateValid: true},
			wantAllowed: true,
		},
		{
			name:        "missing name",
			ctx:         CreateContext{Name: "", Date: "2030-01-01T10:00", DateValid: true},
			wantAllowed: false,
			wantReason:  "mission name is required",
		},
		{
			name:        "whitespace name",
			ctx:         CreateContext{Name: "   ", Date: "2030-01-01T10:00", DateValid: true},
			wantAllowed: false,
			wantReason:  "mission name is required",
		},
		{
			name:        "missing date",
			ctx:         CreateContext{Name: "Artemis"},
			wantAllowed: false,
			wantReason:  "mission date is required",
		},
		{
			name:        "unparseable date",
			ctx:         CreateContext{Name: "Artemis", Date: "someday"},
			wantAllowed: false,
			wantReason:  `mission date "someday" is not a valid date/time`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateMission(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanCreateMission() Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("CanCreateMission() Reason = %q, want %q", result.Reason, tt.wantReason)
			}

			err := result.Error()
			if tt.wantAllowed && err != nil {
				t.Errorf("Error() = %v, want nil", err)
			}
			if !tt.wantAllowed && err == nil {
				t.Error("Error() = nil, want error")
			}
		})
	}
}

func TestCanRescheduleMission(t *testing.T) {
	valid := RescheduleContext{
		MissionID: 5,
		Date:      "2030-01-01T10:00",
		DateValid: true,
		InFuture:  true,
		Current:   PartitionArchived,
	}

	tests := []struct {
		name        string
		mutate      func(c *RescheduleContext)
		wantAllowed bool
		wantReason  string
	}{
		{"archived with future date", func(c *RescheduleContext) {}, true, ""},
		{"no selection", func(c *RescheduleContext) { c.MissionID = 0 }, false, "no mission selected for reschedule"},
		{"no date", func(c *RescheduleContext) { c.Date = "" }, false, "new date is required"},
		{"invalid date", func(c *RescheduleContext) { c.DateValid = false }, false, `new date "2030-01-01T10:00" is not a valid date/time`},
		{"past date", func(c *RescheduleContext) { c.InFuture = false }, false, "new date 2030-01-01T10:00 is in the past"},
		{"not archived", func(c *RescheduleContext) { c.Current = PartitionCompleted }, false, "only archived missions can be rescheduled (mission 5 is completed)"},
		{"untracked", func(c *RescheduleContext) { c.Current = "" }, false, "only archived missions can be rescheduled (mission 5 is untracked)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := valid
			tt.mutate(&ctx)
			result := CanRescheduleMission(ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanRescheduleMission() Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("CanRescheduleMission() Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanResolveDecision(t *testing.T) {
	tests := []struct {
		name        string
		ctx         DecisionContext
		wantAllowed bool
	}{
		{"launch pending", DecisionContext{MissionID: 1, Decision: DecisionLaunch, Current: PartitionPending}, true},
		{"archive pending", DecisionContext{MissionID: 1, Decision: DecisionArchive, Current: PartitionPending}, true},
		{"upcoming is not pending", DecisionContext{MissionID: 1, Decision: DecisionLaunch, Current: PartitionUpcoming}, false},
		{"unknown decision", DecisionContext{MissionID: 1, Decision: "abort", Current: PartitionPending}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanResolveDecision(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanResolveDecision() Allowed = %v, want %v (reason %q)", result.Allowed, tt.wantAllowed, result.Reason)
			}
		})
	}
}
