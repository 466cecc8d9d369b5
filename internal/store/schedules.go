package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"teamsched/internal/api"
	"teamsched/internal/schedule"
)

// LoadSchedules fetches every team's availability concurrently and derives
// its schedule. Per-team failures are isolated: a team whose fetch fails
// contributes an empty-availability record (zero hours, no next session)
// instead of aborting the rest. Results are keyed by position, so the
// order of completion does not matter.
func LoadSchedules(ctx context.Context, client AvailabilityAPI, teams []api.Team, now time.Time, log *zap.Logger) []schedule.TeamSchedule {
	schedules := make([]schedule.TeamSchedule, len(teams))

	var wg sync.WaitGroup
	for i, team := range teams {
		wg.Add(1)
		go func(i int, team api.Team) {
			defer wg.Done()
			slots, err := client.Availability(ctx, team.ID)
			if err != nil {
				log.Warn("load team schedule",
					zap.String("team", team.Name), zap.Error(err))
				schedules[i] = schedule.TeamSchedule{Team: team}
				return
			}
			schedules[i] = schedule.NewTeamSchedule(team, slots, now)
		}(i, team)
	}
	wg.Wait()

	return schedules
}
