// Package api is the typed client for the team-management backend. It is
// the only component that talks to the network; everything above it works
// on the decoded structs.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"teamsched/internal/session"
)

const requestTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	sess    *session.Session
	log     *zap.Logger
}

func New(baseURL string, sess *session.Session, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		sess:    sess,
		log:     log,
	}
}

// do runs one request against the backend. Responses are decoded into out
// (which may be nil for empty bodies). An access token known to be expired
// is refreshed up front to save the wasted round trip; beyond that a 401
// triggers exactly one token refresh and retry, and a second 401, or a
// failed refresh, clears the session and yields ErrAuthRequired.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.sess.RefreshToken() != "" && c.sess.AccessExpired(time.Now()) {
		// best effort: on failure the request still goes out and the
		// reactive 401 path decides
		if err := c.refresh(ctx); err != nil {
			c.log.Debug("proactive token refresh failed", zap.Error(err))
		}
	}

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		if err := c.refresh(ctx); err != nil {
			c.log.Debug("token refresh failed", zap.Error(err))
			if clearErr := c.sess.Clear(); clearErr != nil {
				c.log.Warn("clear session", zap.Error(clearErr))
			}
			return ErrAuthRequired
		}
		resp, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)
			if clearErr := c.sess.Clear(); clearErr != nil {
				c.log.Warn("clear session", zap.Error(clearErr))
			}
			return ErrAuthRequired
		}
	}

	return decode(resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.sess.AccessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	return resp, nil
}

// refresh exchanges the stored refresh token for a new pair. It talks to
// the backend directly (no bearer header, no retry) so it cannot recurse
// into do.
func (c *Client) refresh(ctx context.Context) error {
	rt := c.sess.RefreshToken()
	if rt == "" {
		return fmt.Errorf("no refresh token")
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": rt})
	if err != nil {
		return fmt.Errorf("encode refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send refresh request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refresh rejected: %s", resp.Status)
	}

	var pair TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return fmt.Errorf("decode refresh response: %w", err)
	}
	if err := c.sess.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("store tokens: %w", err)
	}
	c.log.Debug("access token refreshed")
	return nil
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &body) == nil {
			httpErr.Message = body.Error
		}
		io.Copy(io.Discard, resp.Body)
		return httpErr
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
