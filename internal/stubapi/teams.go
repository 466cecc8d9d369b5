package stubapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teamsched/internal/api"
)

// GET /teams
func (s *Server) listTeamsHandler(c *gin.Context) {
	uid := c.GetString(userIDKey)

	s.mu.Lock()
	teams := []api.Team{}
	for id, rec := range s.teams {
		if s.teamForMember(id, uid) != nil {
			teams = append(teams, rec.team)
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// POST /teams
func (s *Server) createTeamHandler(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetString(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[uid]
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	team := api.Team{
		ID:        uuid.NewString(),
		Name:      req.Name,
		OwnerID:   uid,
		JoinCode:  strings.ToUpper(uuid.NewString()[:8]),
		CreatedAt: s.now().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	s.teams[team.ID] = &teamRecord{
		team: team,
		members: []api.TeamMember{{
			ID:   uuid.NewString(),
			User: memberUser(user),
		}},
	}

	c.JSON(http.StatusCreated, gin.H{"team": team})
}

// POST /teams/join
func (s *Server) joinTeamHandler(c *gin.Context) {
	var req struct {
		JoinCode string `json:"joinCode" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetString(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[uid]
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	for id, rec := range s.teams {
		if rec.team.JoinCode != strings.ToUpper(req.JoinCode) {
			continue
		}
		if s.teamForMember(id, uid) == nil {
			rec.members = append(rec.members, api.TeamMember{
				ID:   uuid.NewString(),
				User: memberUser(user),
			})
		}
		c.JSON(http.StatusOK, gin.H{"team": rec.team})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "invalid join code"})
}

// GET /teams/:id
func (s *Server) getTeamHandler(c *gin.Context) {
	uid := c.GetString(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.teamForMember(c.Param("id"), uid)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	owner := s.users[rec.team.OwnerID]
	detail := api.TeamDetail{
		Team:        rec.team,
		Owner:       memberUser(owner),
		Members:     rec.members,
		Preferences: rec.preferences,
	}
	c.JSON(http.StatusOK, gin.H{"team": detail})
}

// PUT /teams/:id/preferences
func (s *Server) updatePreferencesHandler(c *gin.Context) {
	var req api.PreferenceUpdate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := c.GetString(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.teamForMember(c.Param("id"), uid)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	if rec.preferences == nil {
		rec.preferences = &api.TeamPreference{ID: uuid.NewString()}
	}
	if req.DaysPerWeek != nil {
		rec.preferences.DaysPerWeek = *req.DaysPerWeek
	}
	if req.HoursPerWeek != nil {
		rec.preferences.HoursPerWeek = *req.HoursPerWeek
	}
	if req.MinSlotMinutes != nil {
		rec.preferences.MinSlotMinutes = *req.MinSlotMinutes
	}
	if req.MaxSlotMinutes != nil {
		rec.preferences.MaxSlotMinutes = *req.MaxSlotMinutes
	}

	c.JSON(http.StatusOK, gin.H{"preferences": rec.preferences})
}

func memberUser(u api.User) api.MemberUser {
	return api.MemberUser{
		ID:         u.ID,
		Username:   u.Username,
		DiscordID:  u.DiscordID,
		AvatarHash: u.AvatarHash,
	}
}
