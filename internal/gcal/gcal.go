// Package gcal exports upcoming training sessions to Google Calendar. The
// OAuth token obtained through the browser flow is cached in a file so one
// authorization covers subsequent syncs.
package gcal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"teamsched/internal/schedule"
)

// ErrNotAuthorized means no cached Google token exists yet; callers run
// the authorize flow first.
var ErrNotAuthorized = errors.New("google calendar not authorized")

type Exporter struct {
	config    *oauth2.Config
	tokenPath string
	log       *zap.Logger

	// endpoint overrides the calendar API base URL in tests.
	endpoint string
}

// New returns nil when the Google client is not configured; callers treat
// that as "feature disabled".
func New(clientID, clientSecret, redirectURL, tokenPath string, log *zap.Logger) *Exporter {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}
	return &Exporter{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
		tokenPath: tokenPath,
		log:       log,
	}
}

// AuthURL builds the consent URL the user opens in a browser.
func (e *Exporter) AuthURL(state string) string {
	return e.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the callback code for a token and caches it.
func (e *Exporter) Exchange(ctx context.Context, code string) error {
	token, err := e.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange code for token: %w", err)
	}
	return e.saveToken(token)
}

// Sync inserts one calendar event per upcoming session into the user's
// primary calendar. Sessions that already have a matching event (same
// summary and start time) are skipped, so repeated syncs do not pile up
// duplicates. It returns the number of events created.
func (e *Exporter) Sync(ctx context.Context, sessions []schedule.UpcomingSession) (int, error) {
	if len(sessions) == 0 {
		return 0, nil
	}
	srv, err := e.service(ctx)
	if err != nil {
		return 0, err
	}

	existing, err := e.existingEvents(ctx, srv, sessions)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, s := range sessions {
		start := sessionTime(s.Date, s.Start)
		summary := "Training: " + s.Team
		if existing[eventKey(summary, start)] {
			e.log.Debug("calendar event already exists",
				zap.String("team", s.Team), zap.Time("start", start))
			continue
		}
		event := &calendar.Event{
			Summary:     summary,
			Description: fmt.Sprintf("Scheduled %s training session", schedule.WeekdayLabel(s.Weekday)),
			Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
			End:         &calendar.EventDateTime{DateTime: sessionTime(s.Date, s.End).Format(time.RFC3339)},
		}
		if _, err := srv.Events.Insert("primary", event).Context(ctx).Do(); err != nil {
			return created, fmt.Errorf("insert event for %s: %w", s.Team, err)
		}
		e.log.Info("calendar event created",
			zap.String("team", s.Team), zap.String("start", event.Start.DateTime))
		created++
	}
	return created, nil
}

// existingEvents lists the primary calendar over the window spanning the
// sessions and keys every event by summary plus start time.
func (e *Exporter) existingEvents(ctx context.Context, srv *calendar.Service, sessions []schedule.UpcomingSession) (map[string]bool, error) {
	min := sessionTime(sessions[0].Date, sessions[0].Start)
	max := min
	for _, s := range sessions {
		if start := sessionTime(s.Date, s.Start); start.Before(min) {
			min = start
		}
		if end := sessionTime(s.Date, s.End); end.After(max) {
			max = end
		}
	}

	list, err := srv.Events.List("primary").
		SingleEvents(true).
		TimeMin(min.Add(-time.Minute).Format(time.RFC3339)).
		TimeMax(max.Add(time.Minute).Format(time.RFC3339)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	existing := make(map[string]bool, len(list.Items))
	for _, ev := range list.Items {
		if ev.Start == nil || ev.Start.DateTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
		if err != nil {
			continue
		}
		existing[eventKey(ev.Summary, start)] = true
	}
	return existing, nil
}

func eventKey(summary string, start time.Time) string {
	return summary + "|" + start.UTC().Format(time.RFC3339)
}

func (e *Exporter) service(ctx context.Context) (*calendar.Service, error) {
	token, err := e.loadToken()
	if err != nil {
		return nil, err
	}
	opts := []option.ClientOption{option.WithTokenSource(e.config.TokenSource(ctx, token))}
	if e.endpoint != "" {
		opts = append(opts, option.WithEndpoint(e.endpoint))
	}
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return srv, nil
}

// sessionTime anchors a minutes-since-midnight offset on the session's
// calendar date in local time.
func sessionTime(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, minutes, 0, 0, date.Location())
}

func (e *Exporter) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(e.tokenPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, fmt.Errorf("read google token: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("decode google token: %w", err)
	}
	return &token, nil
}

func (e *Exporter) saveToken(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(e.tokenPath), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode google token: %w", err)
	}
	if err := os.WriteFile(e.tokenPath, data, 0o600); err != nil {
		return fmt.Errorf("write google token: %w", err)
	}
	return nil
}
