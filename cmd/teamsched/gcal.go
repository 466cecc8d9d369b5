package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamsched/internal/gcal"
	"teamsched/internal/schedule"
	"teamsched/internal/store"
)

func gcalDefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "teamsched", "google_token.json"), nil
}

func (a *app) exporter() (*gcal.Exporter, error) {
	tokenPath := a.cfg.GoogleTokenFile
	if tokenPath == "" {
		p, err := gcalDefaultTokenPath()
		if err != nil {
			return nil, err
		}
		tokenPath = p
	}
	e := gcal.New(a.cfg.GoogleClientID, a.cfg.GoogleClientSecret, a.cfg.GoogleRedirectURL, tokenPath, a.log)
	if e == nil {
		return nil, errors.New("google calendar is not configured (set GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REDIRECT_URL)")
	}
	return e, nil
}

func (a *app) cmdGcal(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: teamsched gcal auth|sync")
	}
	switch args[0] {
	case "auth":
		return a.gcalAuth(ctx)
	case "sync":
		return a.gcalSync(ctx)
	default:
		return fmt.Errorf("unknown gcal subcommand %q", args[0])
	}
}

// gcalAuth runs the browser consent flow, catching the authorization code
// on the configured localhost redirect.
func (a *app) gcalAuth(ctx context.Context) error {
	exporter, err := a.exporter()
	if err != nil {
		return err
	}

	redirect, err := url.Parse(a.cfg.GoogleRedirectURL)
	if err != nil {
		return fmt.Errorf("invalid GOOGLE_REDIRECT_URL: %w", err)
	}

	codes := make(chan string, 1)
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.GET(redirect.Path, func(c *gin.Context) {
		code := c.Query("code")
		if code == "" {
			c.String(http.StatusBadRequest, "Authorization failed. You can close this tab.")
		} else {
			c.String(http.StatusOK, "Authorized. You can close this tab.")
		}
		codes <- code
	})

	srv := &http.Server{Addr: redirect.Host, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("gcal callback listener", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	state := uuid.NewString()
	fmt.Println("Open this URL in your browser to authorize calendar access:")
	fmt.Println("  " + exporter.AuthURL(state))

	select {
	case code := <-codes:
		if code == "" {
			return errors.New("authorization was denied")
		}
		if err := exporter.Exchange(ctx, code); err != nil {
			return err
		}
		fmt.Println("Google Calendar authorized.")
		return nil
	case <-ctx.Done():
		return errors.New("timed out waiting for authorization")
	}
}

// gcalSync pushes the upcoming session of every team to the calendar.
func (a *app) gcalSync(ctx context.Context) error {
	exporter, err := a.exporter()
	if err != nil {
		return err
	}

	teams, err := a.client.Teams(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	schedules := store.LoadSchedules(ctx, a.client, teams, now, a.log)
	o := schedule.BuildOverview(schedules, now)
	if len(o.Upcoming) == 0 {
		fmt.Println("No upcoming sessions to sync.")
		return nil
	}

	created, err := exporter.Sync(ctx, o.Upcoming)
	if err != nil {
		if errors.Is(err, gcal.ErrNotAuthorized) {
			return errors.New("not authorized yet, run: teamsched gcal auth")
		}
		return err
	}
	fmt.Printf("Created %d calendar event(s).\n", created)
	return nil
}
