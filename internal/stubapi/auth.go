package stubapi

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamsched/internal/api"
)

// GET /auth/discord?redirect_uri=...&username=...
//
// Stands in for the real Discord OAuth leg: it fabricates a user, issues a
// token pair and redirects back the way the production backend does, with
// tokens and the user snapshot in the query string.
func (s *Server) discordLoginHandler(c *gin.Context) {
	redirectURI := c.Query("redirect_uri")
	if redirectURI == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "redirect_uri required"})
		return
	}
	username := c.DefaultQuery("username", "demo")

	s.mu.Lock()
	user := s.findOrCreateUser(username)
	access, refresh, err := s.issueTokens(user.ID)
	s.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	target, err := url.Parse(redirectURI)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid redirect_uri"})
		return
	}
	q := target.Query()
	q.Set("access_token", access)
	q.Set("refresh_token", refresh)
	q.Set("user", string(userJSON))
	target.RawQuery = q.Encode()

	s.log.Info("login issued", zap.String("user", username))
	c.Redirect(http.StatusFound, target.String())
}

// findOrCreateUser reuses an existing user by name so repeated logins keep
// their teams. Caller must hold s.mu.
func (s *Server) findOrCreateUser(username string) api.User {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	u := api.User{
		ID:        uuid.NewString(),
		DiscordID: fmt.Sprintf("%d", uuid.New().ID()),
		Username:  username,
		CreatedAt: s.now().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	s.users[u.ID] = u
	return u
}

// POST /auth/refresh
//
// Rotates the refresh token: the presented token is revoked whether or not
// it was still valid, and a fresh pair is issued only if it was.
func (s *Server) refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.refresh[hashRefreshToken(req.RefreshToken)]
	if !ok || rec.revoked || rec.expiresAt.Before(s.now()) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	rec.revoked = true

	access, refresh, err := s.issueTokens(rec.userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access, "refreshToken": refresh})
}

// GET /auth/me
func (s *Server) meHandler(c *gin.Context) {
	s.mu.Lock()
	user, ok := s.users[c.GetString(userIDKey)]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
