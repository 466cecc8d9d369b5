package main

import (
	"context"
	"flag"
	"fmt"

	"teamsched/internal/api"
)

func (a *app) cmdTasks(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: teamsched tasks <teamID>")
	}
	tasks, err := a.client.Tasks(ctx, args[0])
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	for _, t := range tasks {
		due := ""
		if t.DueAt != nil {
			due = "  due " + *t.DueAt
		}
		fmt.Printf("%-36s  [%-4s]  %s%s\n", t.ID, t.Status, t.Title, due)
	}
	return nil
}

func (a *app) cmdTask(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: teamsched task add|done|rm <teamID> ...")
	}
	sub, teamID := args[0], args[1]

	switch sub {
	case "add":
		fs := flag.NewFlagSet("task add", flag.ContinueOnError)
		title := fs.String("title", "", "task title")
		desc := fs.String("desc", "", "description")
		due := fs.String("due", "", "due date, RFC3339")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *title == "" {
			return fmt.Errorf("task add requires -title")
		}

		create := api.TaskCreate{Scope: api.ScopeTeam, Title: *title, Status: "OPEN"}
		if *desc != "" {
			create.Description = desc
		}
		if *due != "" {
			create.DueAt = due
		}

		task, err := a.client.CreateTask(ctx, teamID, create)
		if err != nil {
			return err
		}
		fmt.Printf("Created task %s\n", task.ID)
		return nil

	case "done":
		if len(args) < 3 {
			return fmt.Errorf("usage: teamsched task done <teamID> <taskID>")
		}
		done := "DONE"
		task, err := a.client.UpdateTask(ctx, teamID, args[2], api.TaskUpdate{Status: &done})
		if err != nil {
			return err
		}
		fmt.Printf("Task %q marked done\n", task.Title)
		return nil

	case "rm":
		if len(args) < 3 {
			return fmt.Errorf("usage: teamsched task rm <teamID> <taskID>")
		}
		if err := a.client.DeleteTask(ctx, teamID, args[2]); err != nil {
			return err
		}
		fmt.Println("Task removed.")
		return nil

	default:
		return fmt.Errorf("unknown task subcommand %q", sub)
	}
}
