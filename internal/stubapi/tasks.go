package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teamsched/internal/api"
)

// GET /teams/:id/tasks
func (s *Server) listTasksHandler(c *gin.Context) {
	uid := c.GetString(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.teamForMember(c.Param("id"), uid)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	tasks := rec.tasks
	if tasks == nil {
		tasks = []api.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// POST /teams/:id/tasks
func (s *Server) createTaskHandler(c *gin.Context) {
	var req api.TaskCreate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}
	if req.Status == "" {
		req.Status = "OPEN"
	}
	if req.Scope == "" {
		req.Scope = api.ScopeTeam
	}

	uid := c.GetString(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.teamForMember(c.Param("id"), uid)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	task := api.Task{
		ID:          uuid.NewString(),
		Scope:       req.Scope,
		Title:       req.Title,
		Description: req.Description,
		Role:        req.Role,
		IsCoachOnly: req.IsCoachOnly,
		Status:      req.Status,
		DueAt:       req.DueAt,
		CreatedAt:   s.now().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	rec.tasks = append(rec.tasks, task)

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// PUT /teams/:id/tasks/:taskId
func (s *Server) updateTaskHandler(c *gin.Context) {
	var req api.TaskUpdate
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

	for i := range rec.tasks {
		if rec.tasks[i].ID != c.Param("taskId") {
			continue
		}
		if req.Title != nil {
			rec.tasks[i].Title = *req.Title
		}
		if req.Description != nil {
			rec.tasks[i].Description = req.Description
		}
		if req.Status != nil {
			rec.tasks[i].Status = *req.Status
		}
		if req.DueAt != nil {
			rec.tasks[i].DueAt = req.DueAt
		}
		c.JSON(http.StatusOK, gin.H{"task": rec.tasks[i]})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
}

// DELETE /teams/:id/tasks/:taskId
func (s *Server) deleteTaskHandler(c *gin.Context) {
	uid := c.GetString(userIDKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.teamForMember(c.Param("id"), uid)
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	for i := range rec.tasks {
		if rec.tasks[i].ID == c.Param("taskId") {
			rec.tasks = append(rec.tasks[:i], rec.tasks[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
}
