package api

import (
	"context"
	"net/http"
)

// Me returns the currently authenticated user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var resp struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp)
	return resp.User, err
}
