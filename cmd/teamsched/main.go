// Command teamsched is the terminal client for the team-management
// backend: sign in, manage teams, availability and tasks, and view the
// training schedule overview.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"teamsched/internal/api"
	"teamsched/internal/config"
	"teamsched/internal/logging"
	"teamsched/internal/session"
)

const usage = `usage: teamsched <command> [arguments]

  login [-user NAME]     sign in through the backend auth redirect
  logout                 drop the stored session
  whoami                 show the signed-in user

  teams                  list your teams
  team create <name>     create a team
  team join <code>       join a team by join code
  team show <id>         show roster and preferences

  prefs <teamID> [-days N] [-hours N] [-min MINUTES] [-max MINUTES]

  avail list <teamID>
  avail add <teamID> -day MON -start 19:00 -end 21:00 [-prio 1]
  avail rm <teamID> <slotID>

  tasks <teamID>
  task add <teamID> -title TITLE [-desc TEXT] [-due RFC3339]
  task done <teamID> <taskID>
  task rm <teamID> <taskID>

  overview               schedule dashboard across all teams
  week <teamID> [-date YYYY-MM-DD]

  gcal auth              authorize Google Calendar export
  gcal sync              push upcoming sessions to Google Calendar
`

type app struct {
	cfg    *config.Config
	log    *zap.Logger
	sess   *session.Session
	client *api.Client
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer log.Sync()

	sessPath := cfg.SessionFile
	if sessPath == "" {
		sessPath, err = session.DefaultPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}
	sess, err := session.Load(sessPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	a := &app{
		cfg:    cfg,
		log:    log,
		sess:   sess,
		client: api.New(cfg.APIBaseURL, sess, log),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami(ctx)
	case "teams":
		return a.cmdTeams(ctx)
	case "team":
		return a.cmdTeam(ctx, args)
	case "prefs":
		return a.cmdPrefs(ctx, args)
	case "avail":
		return a.cmdAvail(ctx, args)
	case "tasks":
		return a.cmdTasks(ctx, args)
	case "task":
		return a.cmdTask(ctx, args)
	case "overview":
		return a.cmdOverview(ctx)
	case "week":
		return a.cmdWeek(ctx, args)
	case "gcal":
		return a.cmdGcal(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q (run teamsched help)", command)
	}
}
