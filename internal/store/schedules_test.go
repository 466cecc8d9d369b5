package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"teamsched/internal/api"
)

// flakyAPI fails availability fetches for the listed team ids.
type flakyAPI struct {
	fakeAPI
	failing map[string]bool
}

func (f *flakyAPI) Availability(ctx context.Context, teamID string) ([]api.Availability, error) {
	if f.failing[teamID] {
		return nil, errors.New("fetch failed")
	}
	return f.fakeAPI.Availability(ctx, teamID)
}

func TestLoadSchedulesIsolatesFailures(t *testing.T) {
	f := &flakyAPI{
		fakeAPI: fakeAPI{slots: map[string][]api.Availability{
			"ok": {
				{ID: "a", Weekday: api.Monday, StartTime: 540, EndTime: 600, Priority: 1},
			},
		}},
		failing: map[string]bool{"bad": true},
	}
	teams := []api.Team{
		{ID: "ok", Name: "Alpha"},
		{ID: "bad", Name: "Bravo"},
		{ID: "empty", Name: "Charlie"},
	}

	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	schedules := LoadSchedules(context.Background(), f, teams, now, zap.NewNop())

	if len(schedules) != 3 {
		t.Fatalf("got %d schedules, want 3", len(schedules))
	}
	// order follows the team list, not completion order
	for i, want := range []string{"Alpha", "Bravo", "Charlie"} {
		if schedules[i].Team.Name != want {
			t.Errorf("schedules[%d] = %q, want %q", i, schedules[i].Team.Name, want)
		}
	}

	if schedules[0].TotalHours != 1.0 {
		t.Errorf("Alpha hours = %v, want 1.0", schedules[0].TotalHours)
	}
	// the failing team degrades to an empty record
	if len(schedules[1].Availability) != 0 || schedules[1].TotalHours != 0 || schedules[1].NextSession != nil {
		t.Errorf("Bravo should be empty, got %+v", schedules[1])
	}
	if schedules[2].TotalHours != 0 {
		t.Errorf("Charlie hours = %v, want 0", schedules[2].TotalHours)
	}
}
