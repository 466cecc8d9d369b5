package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"teamsched/internal/session"
)

func testSession(t *testing.T, access, refresh string) *session.Session {
	t.Helper()
	s, err := session.Load(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatal(err)
	}
	if access != "" || refresh != "" {
		if err := s.SetTokens(access, refresh); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestDoRefreshesOnceOn401(t *testing.T) {
	var meCalls, refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"user": User{ID: "u1", Username: "demo"}})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["refreshToken"] != "refresh-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "fresh-access", RefreshToken: "refresh-2"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sess := testSession(t, "stale-access", "refresh-1")
	c := New(srv.URL, sess, zap.NewNop())

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if user.Username != "demo" {
		t.Errorf("username = %q, want demo", user.Username)
	}
	if got := atomic.LoadInt32(&meCalls); got != 2 {
		t.Errorf("me calls = %d, want 2 (original plus one retry)", got)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
	// the rotated pair is stored
	if sess.AccessToken() != "fresh-access" || sess.RefreshToken() != "refresh-2" {
		t.Errorf("stored tokens = %q/%q, want rotated pair", sess.AccessToken(), sess.RefreshToken())
	}
}

func expiredToken(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestDoRefreshesExpiredTokenBeforeSending(t *testing.T) {
	var meCalls, refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"user": User{ID: "u1", Username: "demo"}})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "fresh-access", RefreshToken: "refresh-2"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sess := testSession(t, expiredToken(t), "refresh-1")
	c := New(srv.URL, sess, zap.NewNop())

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if user.Username != "demo" {
		t.Errorf("username = %q, want demo", user.Username)
	}
	// the expired token never hits the protected endpoint
	if got := atomic.LoadInt32(&meCalls); got != 1 {
		t.Errorf("me calls = %d, want 1", got)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
	if sess.AccessToken() != "fresh-access" {
		t.Errorf("stored access token = %q, want the refreshed one", sess.AccessToken())
	}
}

func TestDoFailedRefreshClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sess := testSession(t, "stale-access", "dead-refresh")
	c := New(srv.URL, sess, zap.NewNop())

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("err = %v, want ErrAuthRequired", err)
	}
	if sess.Authenticated() {
		t.Error("session should be cleared after a failed refresh")
	}
}

func TestDoSecond401ClearsSession(t *testing.T) {
	var meCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&meCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "fresh", RefreshToken: "fresh-r"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sess := testSession(t, "stale", "refresh-1")
	c := New(srv.URL, sess, zap.NewNop())

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("err = %v, want ErrAuthRequired", err)
	}
	// exactly one retry, never a refresh loop
	if got := atomic.LoadInt32(&meCalls); got != 2 {
		t.Errorf("me calls = %d, want 2", got)
	}
	if sess.Authenticated() {
		t.Error("session should be cleared after the retried 401")
	}
}

func TestDoHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "team not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(t, "tok", "r"), zap.NewNop())

	_, err := c.Team(context.Background(), "missing")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", httpErr.StatusCode)
	}
	// the backend's reason survives into the error text
	if httpErr.Message != "team not found" {
		t.Errorf("message = %q, want %q", httpErr.Message, "team not found")
	}
	if got := httpErr.Error(); got != "HTTP 404: team not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestDoHTTPErrorNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(t, "tok", "r"), zap.NewNop())

	_, err := c.Team(context.Background(), "t1")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want *HTTPError", err)
	}
	if httpErr.Message != "" {
		t.Errorf("message = %q, want empty for a non-JSON body", httpErr.Message)
	}
	if got := httpErr.Error(); got != "HTTP 502: 502 Bad Gateway" {
		t.Errorf("Error() = %q", got)
	}
}

func TestReplaceAvailabilitySendsWholeEnvelope(t *testing.T) {
	var gotBody availabilityEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Error(err)
		}
		json.NewEncoder(w).Encode(availabilityEnvelope{Availability: []Availability{
			{ID: "srv-1", Weekday: Monday, StartTime: 540, EndTime: 600, Priority: 1},
		}})
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(t, "tok", "r"), zap.NewNop())

	saved, err := c.ReplaceAvailability(context.Background(), "t1", nil)
	if err != nil {
		t.Fatal(err)
	}
	// nil input still serializes as an empty list, not null
	if gotBody.Availability == nil {
		t.Error("request body carried null availability, want []")
	}
	if len(saved) != 1 || saved[0].ID != "srv-1" {
		t.Errorf("saved = %+v, want the server's authoritative list", saved)
	}
}
