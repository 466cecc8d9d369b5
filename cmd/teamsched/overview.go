package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"teamsched/internal/schedule"
	"teamsched/internal/store"
)

func (a *app) cmdOverview(ctx context.Context) error {
	teams, err := a.client.Teams(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	schedules := store.LoadSchedules(ctx, a.client, teams, now, a.log)
	o := schedule.BuildOverview(schedules, now)

	fmt.Printf("Weekly hours:     %.1fh across all teams\n", o.TotalWeeklyHours)
	fmt.Printf("Active teams:     %d of %d\n", o.ActiveTeams, len(teams))
	fmt.Printf("Today's sessions: %d\n\n", len(o.Today))

	fmt.Println("Today:")
	if len(o.Today) == 0 {
		fmt.Println("  no sessions today")
	}
	for _, s := range o.Today {
		fmt.Printf("  %-20s %s\n", s.Team, s.TimeRange)
	}

	fmt.Println("\nUpcoming:")
	if len(o.Upcoming) == 0 {
		fmt.Println("  no upcoming sessions")
	}
	for _, s := range o.Upcoming {
		fmt.Printf("  %-20s %s at %s\n", s.Team, schedule.FormatSessionDate(s.Date, now), s.Time)
	}

	fmt.Println("\nTeams:")
	for _, ts := range o.Schedules {
		next := "no next session"
		if ts.NextSession != nil {
			next = fmt.Sprintf("next %s %s", schedule.FormatSessionDate(ts.NextSession.Date, now), ts.NextSession.Time)
		}
		fmt.Printf("  %-20s %.1fh weekly, %d slot(s), %s\n",
			ts.Team.Name, ts.TotalHours, len(ts.Availability), next)
	}
	return nil
}

func (a *app) cmdWeek(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: teamsched week <teamID> [-date YYYY-MM-DD]")
	}
	teamID := args[0]

	fs := flag.NewFlagSet("week", flag.ContinueOnError)
	dateStr := fs.String("date", "", "any date inside the week to show")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	now := time.Now()
	selected := now
	if *dateStr != "" {
		var err error
		selected, err = time.ParseInLocation("2006-01-02", *dateStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -date: %w", err)
		}
	}

	slots, err := a.client.Availability(ctx, teamID)
	if err != nil {
		return err
	}

	week := schedule.WeekView(slots, selected, now)
	fmt.Printf("Week of %s\n", schedule.StartOfWeek(selected).Format("Jan 2, 2006"))
	for _, day := range week {
		marker := " "
		if day.IsToday {
			marker = "*"
		}
		if len(day.Slots) == 0 {
			fmt.Printf("%s %-9s %-6s  no availability\n", marker, day.Label, day.Date.Format("Jan 2"))
			continue
		}
		for i, s := range day.Slots {
			label, date := day.Label, day.Date.Format("Jan 2")
			if i > 0 {
				label, date, marker = "", "", " "
			}
			fmt.Printf("%s %-9s %-6s  %s - %s\n", marker, label, date,
				schedule.MinutesToTime(s.StartTime), schedule.MinutesToTime(s.EndTime))
		}
	}
	return nil
}
