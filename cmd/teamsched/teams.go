package main

import (
	"context"
	"flag"
	"fmt"

	"teamsched/internal/api"
)

func (a *app) cmdTeams(ctx context.Context) error {
	teams, err := a.client.Teams(ctx)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		fmt.Println("No teams yet. Create one with: teamsched team create <name>")
		return nil
	}
	for _, t := range teams {
		fmt.Printf("%-36s  %-20s  join code %s\n", t.ID, t.Name, t.JoinCode)
	}
	return nil
}

func (a *app) cmdTeam(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: teamsched team create|join|show <arg>")
	}
	switch args[0] {
	case "create":
		team, err := a.client.CreateTeam(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Created %s (id %s, join code %s)\n", team.Name, team.ID, team.JoinCode)
		return nil
	case "join":
		team, err := a.client.JoinTeam(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Joined %s (id %s)\n", team.Name, team.ID)
		return nil
	case "show":
		return a.showTeam(ctx, args[1])
	default:
		return fmt.Errorf("unknown team subcommand %q", args[0])
	}
}

func (a *app) showTeam(ctx context.Context, teamID string) error {
	team, err := a.client.Team(ctx, teamID)
	if err != nil {
		return err
	}

	fmt.Printf("%s  (join code %s)\n", team.Name, team.JoinCode)
	fmt.Printf("owner: %s\n", team.Owner.Username)
	fmt.Println("members:")
	for _, m := range team.Members {
		role := "-"
		if m.Role != nil {
			role = string(*m.Role)
		}
		coach := ""
		if m.IsCoach {
			coach = " (coach)"
		}
		fmt.Printf("  %-20s %s%s\n", m.User.Username, role, coach)
	}
	if p := team.Preferences; p != nil {
		fmt.Printf("goals: %d days/week, %dh/week, sessions %d-%d min\n",
			p.DaysPerWeek, p.HoursPerWeek, p.MinSlotMinutes, p.MaxSlotMinutes)
	}
	return nil
}

func (a *app) cmdPrefs(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: teamsched prefs <teamID> [-days N] [-hours N] [-min M] [-max M]")
	}
	teamID := args[0]

	fs := flag.NewFlagSet("prefs", flag.ContinueOnError)
	days := fs.Int("days", -1, "target training days per week")
	hours := fs.Int("hours", -1, "target hours per week")
	minSlot := fs.Int("min", -1, "minimum session length in minutes")
	maxSlot := fs.Int("max", -1, "maximum session length in minutes")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var update api.PreferenceUpdate
	if *days >= 0 {
		update.DaysPerWeek = days
	}
	if *hours >= 0 {
		update.HoursPerWeek = hours
	}
	if *minSlot >= 0 {
		update.MinSlotMinutes = minSlot
	}
	if *maxSlot >= 0 {
		update.MaxSlotMinutes = maxSlot
	}

	prefs, err := a.client.UpdatePreferences(ctx, teamID, update)
	if err != nil {
		return err
	}
	fmt.Printf("goals: %d days/week, %dh/week, sessions %d-%d min\n",
		prefs.DaysPerWeek, prefs.HoursPerWeek, prefs.MinSlotMinutes, prefs.MaxSlotMinutes)
	return nil
}
