package api

import (
	"context"
	"net/http"
)

func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var resp struct {
		Teams []Team `json:"teams"`
	}
	err := c.do(ctx, http.MethodGet, "/teams", nil, &resp)
	return resp.Teams, err
}

func (c *Client) CreateTeam(ctx context.Context, name string) (Team, error) {
	var resp struct {
		Team Team `json:"team"`
	}
	err := c.do(ctx, http.MethodPost, "/teams", map[string]string{"name": name}, &resp)
	return resp.Team, err
}

func (c *Client) JoinTeam(ctx context.Context, joinCode string) (Team, error) {
	var resp struct {
		Team Team `json:"team"`
	}
	err := c.do(ctx, http.MethodPost, "/teams/join", map[string]string{"joinCode": joinCode}, &resp)
	return resp.Team, err
}

func (c *Client) Team(ctx context.Context, teamID string) (TeamDetail, error) {
	var resp struct {
		Team TeamDetail `json:"team"`
	}
	err := c.do(ctx, http.MethodGet, "/teams/"+teamID, nil, &resp)
	return resp.Team, err
}

// UpdatePreferences sends a partial preference update; zero fields are
// omitted so the backend keeps their current values.
func (c *Client) UpdatePreferences(ctx context.Context, teamID string, prefs PreferenceUpdate) (TeamPreference, error) {
	var resp struct {
		Preferences TeamPreference `json:"preferences"`
	}
	err := c.do(ctx, http.MethodPut, "/teams/"+teamID+"/preferences", prefs, &resp)
	return resp.Preferences, err
}

type PreferenceUpdate struct {
	DaysPerWeek    *int `json:"daysPerWeek,omitempty"`
	HoursPerWeek   *int `json:"hoursPerWeek,omitempty"`
	MinSlotMinutes *int `json:"minSlotMinutes,omitempty"`
	MaxSlotMinutes *int `json:"maxSlotMinutes,omitempty"`
}
