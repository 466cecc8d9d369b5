package api

import (
	"context"
	"net/http"
)

type availabilityEnvelope struct {
	Availability []Availability `json:"availability"`
}

func (c *Client) Availability(ctx context.Context, teamID string) ([]Availability, error) {
	var resp availabilityEnvelope
	err := c.do(ctx, http.MethodGet, "/teams/"+teamID+"/availability", nil, &resp)
	return resp.Availability, err
}

// ReplaceAvailability submits the full slot list for a team. The backend
// treats it as a replacement: slots missing from the list are gone, new
// slots come back with assigned ids. The authoritative new list is
// returned.
func (c *Client) ReplaceAvailability(ctx context.Context, teamID string, slots []Availability) ([]Availability, error) {
	if slots == nil {
		slots = []Availability{}
	}
	var resp availabilityEnvelope
	err := c.do(ctx, http.MethodPut, "/teams/"+teamID+"/availability", availabilityEnvelope{Availability: slots}, &resp)
	return resp.Availability, err
}
