package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "teamsched", "session.json")
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(sessionPath(t))
	if err != nil {
		t.Fatal(err)
	}
	if s.Authenticated() {
		t.Error("missing file should yield an unauthenticated session")
	}
}

func TestSetTokensPersists(t *testing.T) {
	path := sessionPath(t)

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetTokens("access-1", "refresh-1"); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("session file mode = %o, want 0600", got)
	}

	// a fresh load sees the saved pair
	s2, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !s2.Authenticated() {
		t.Fatal("reloaded session should be authenticated")
	}
	if s2.AccessToken() != "access-1" || s2.RefreshToken() != "refresh-1" {
		t.Errorf("reloaded tokens = %q/%q", s2.AccessToken(), s2.RefreshToken())
	}
}

func TestClearRemovesFile(t *testing.T) {
	path := sessionPath(t)

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetTokens("a", "r"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if s.Authenticated() {
		t.Error("cleared session still authenticated")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still present after clear: %v", err)
	}

	// clearing an already-empty session is fine
	if err := s.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAccessExpired(t *testing.T) {
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	s, err := Load(sessionPath(t))
	if err != nil {
		t.Fatal(err)
	}

	if !s.AccessExpired(now) {
		t.Error("empty session should count as expired")
	}

	if err := s.SetTokens(signedToken(t, now.Add(time.Hour)), "r"); err != nil {
		t.Fatal(err)
	}
	if s.AccessExpired(now) {
		t.Error("token expiring in an hour reported expired")
	}

	if err := s.SetTokens(signedToken(t, now.Add(-time.Hour)), "r"); err != nil {
		t.Fatal(err)
	}
	if !s.AccessExpired(now) {
		t.Error("token expired an hour ago reported valid")
	}

	// garbage tokens are left for the server to reject
	if err := s.SetTokens("not-a-jwt", "r"); err != nil {
		t.Fatal(err)
	}
	if s.AccessExpired(now) {
		t.Error("unparseable token should not be treated as expired locally")
	}
}
