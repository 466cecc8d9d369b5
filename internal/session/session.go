// Package session holds the access/refresh token pair for the signed-in
// user and persists it across CLI invocations. It replaces the browser
// localStorage the web client used: one JSON file under the user config
// dir, loaded at startup and cleared on logout or irrecoverable 401.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

const fileMode = 0o600

type Session struct {
	mu   sync.Mutex
	path string

	accessToken  string
	refreshToken string
}

type sessionFile struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// DefaultPath is where Load stores the session when no explicit path is
// configured.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "teamsched", "session.json"), nil
}

// Load reads the session file at path. A missing file yields an empty,
// unauthenticated session rather than an error.
func Load(path string) (*Session, error) {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	s.accessToken = f.AccessToken
	s.refreshToken = f.RefreshToken
	return s, nil
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken != ""
}

func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

// SetTokens replaces both tokens and writes the session file.
func (s *Session) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
	return s.save()
}

// Clear forgets both tokens and removes the session file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// AccessExpired reports whether the access token has an exp claim in the
// past. The client cannot verify the signature (it has no secret), so the
// claims are read unverified; the server remains the authority and a stale
// answer here only costs one extra round trip.
func (s *Session) AccessExpired(now time.Time) bool {
	s.mu.Lock()
	tok := s.accessToken
	s.mu.Unlock()
	if tok == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

func (s *Session) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(sessionFile{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, fileMode); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
