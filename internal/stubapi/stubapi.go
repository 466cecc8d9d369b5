// Package stubapi is an in-memory reference implementation of the backend
// contract the client consumes. It exists for local development and for
// integration tests; state lives behind a mutex and nothing survives a
// restart.
package stubapi

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teamsched/internal/api"
)

type Server struct {
	log    *zap.Logger
	secret string
	now    func() time.Time

	mu      sync.Mutex
	users   map[string]api.User
	teams   map[string]*teamRecord
	refresh map[string]*refreshRecord // keyed by token hash
}

type teamRecord struct {
	team         api.Team
	members      []api.TeamMember
	preferences  *api.TeamPreference
	availability []api.Availability
	tasks        []api.Task
}

type refreshRecord struct {
	userID    string
	expiresAt time.Time
	revoked   bool
}

func New(secret string, log *zap.Logger) *Server {
	return &Server{
		log:     log,
		secret:  secret,
		now:     time.Now,
		users:   make(map[string]api.User),
		teams:   make(map[string]*teamRecord),
		refresh: make(map[string]*refreshRecord),
	}
}

// Router builds the gin engine with the full backend surface. Rate
// limiting guards the unauthenticated auth endpoints; everything under
// /teams requires a bearer token.
func (s *Server) Router(ratePerMin int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	auth := router.Group("/auth")
	auth.Use(rateLimit(newRateLimiter(float64(ratePerMin)/60, ratePerMin)))
	{
		auth.GET("/discord", s.discordLoginHandler)
		auth.POST("/refresh", s.refreshHandler)
		auth.GET("/me", s.authRequired(), s.meHandler)
	}

	teams := router.Group("/teams")
	teams.Use(s.authRequired())
	{
		teams.GET("", s.listTeamsHandler)
		teams.POST("", s.createTeamHandler)
		teams.POST("/join", s.joinTeamHandler)
		teams.GET("/:id", s.getTeamHandler)
		teams.PUT("/:id/preferences", s.updatePreferencesHandler)
		teams.GET("/:id/availability", s.getAvailabilityHandler)
		teams.PUT("/:id/availability", s.replaceAvailabilityHandler)
		teams.GET("/:id/tasks", s.listTasksHandler)
		teams.POST("/:id/tasks", s.createTaskHandler)
		teams.PUT("/:id/tasks/:taskId", s.updateTaskHandler)
		teams.DELETE("/:id/tasks/:taskId", s.deleteTaskHandler)
	}

	return router
}

// teamForMember returns the team record if the user belongs to it. Callers
// hold no lock; the returned pointer is only safe under s.mu.
func (s *Server) teamForMember(teamID, userID string) *teamRecord {
	rec, ok := s.teams[teamID]
	if !ok {
		return nil
	}
	for _, m := range rec.members {
		if m.User.ID == userID {
			return rec
		}
	}
	return nil
}
