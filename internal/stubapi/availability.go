package stubapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teamsched/internal/api"
)

// GET /teams/:id/availability
func (s *Server) getAvailabilityHandler(c *gin.Context) {
	uid := c.GetString(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.teamForMember(c.Param("id"), uid)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	slots := rec.availability
	if slots == nil {
		slots = []api.Availability{}
	}
	c.JSON(http.StatusOK, gin.H{"availability": slots})
}

var validWeekdays = map[api.Weekday]bool{
	api.Monday: true, api.Tuesday: true, api.Wednesday: true,
	api.Thursday: true, api.Friday: true, api.Saturday: true,
	api.Sunday: true,
}

// PUT /teams/:id/availability
//
// Full replacement: the submitted list becomes the team's availability,
// slots without ids get one assigned, and the authoritative new list is
// returned. Last submission wins when two callers race.
func (s *Server) replaceAvailabilityHandler(c *gin.Context) {
	var req struct {
		Availability []api.Availability `json:"availability"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for i, slot := range req.Availability {
		if !validWeekdays[slot.Weekday] {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("slot %d: invalid weekday %q", i, slot.Weekday)})
			return
		}
		if slot.StartTime < 0 || slot.EndTime > 1440 || slot.StartTime >= slot.EndTime {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("slot %d: end time must be after start time", i)})
			return
		}
	}

	uid := c.GetString(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.teamForMember(c.Param("id"), uid)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	saved := make([]api.Availability, len(req.Availability))
	for i, slot := range req.Availability {
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		saved[i] = slot
	}
	rec.availability = saved

	c.JSON(http.StatusOK, gin.H{"availability": saved})
}
