package main

import (
	"context"
	"flag"
	"fmt"

	"teamsched/internal/api"
	"teamsched/internal/schedule"
	"teamsched/internal/store"
)

func (a *app) cmdAvail(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: teamsched avail list|add|rm <teamID> ...")
	}
	sub, teamID := args[0], args[1]
	st := store.New(a.client, a.log)

	switch sub {
	case "list":
		slots, err := st.Load(ctx, teamID)
		if err != nil {
			return err
		}
		printSlots(slots)
		return nil

	case "add":
		fs := flag.NewFlagSet("avail add", flag.ContinueOnError)
		day := fs.String("day", "", "weekday (MON..SUN)")
		start := fs.String("start", "", "start time, HH:MM")
		end := fs.String("end", "", "end time, HH:MM")
		prio := fs.Int("prio", 1, "priority (1=high, 2=medium, 3=low)")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *day == "" || *start == "" || *end == "" {
			return fmt.Errorf("avail add requires -day, -start and -end")
		}

		startMin, err := schedule.TimeToMinutes(*start)
		if err != nil {
			return err
		}
		endMin, err := schedule.TimeToMinutes(*end)
		if err != nil {
			return err
		}

		if _, err := st.Load(ctx, teamID); err != nil {
			return err
		}
		slots, err := st.AddSlot(ctx, teamID, store.SlotCandidate{
			Weekday:   api.Weekday(*day),
			StartTime: startMin,
			EndTime:   endMin,
			Priority:  *prio,
		})
		if err != nil {
			return err
		}
		fmt.Println("Slot added.")
		printSlots(slots)
		return nil

	case "rm":
		if len(args) < 3 {
			return fmt.Errorf("usage: teamsched avail rm <teamID> <slotID>")
		}
		if _, err := st.Load(ctx, teamID); err != nil {
			return err
		}
		slots, err := st.RemoveSlot(ctx, teamID, args[2])
		if err != nil {
			return err
		}
		fmt.Println("Slot removed.")
		printSlots(slots)
		return nil

	default:
		return fmt.Errorf("unknown avail subcommand %q", sub)
	}
}

func printSlots(slots []api.Availability) {
	if len(slots) == 0 {
		fmt.Println("No availability set.")
		return
	}
	for _, d := range schedule.Weekdays {
		for _, s := range schedule.SlotsForWeekday(slots, d.Key) {
			fmt.Printf("%-36s  %-9s %s - %s  priority %d\n",
				s.ID, d.Label,
				schedule.MinutesToTime(s.StartTime),
				schedule.MinutesToTime(s.EndTime),
				s.Priority)
		}
	}
}
