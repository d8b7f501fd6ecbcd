package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse is the GET /api/status payload: jobs newest-first
// plus the recent activity feed.
type StatusResponse struct {
	Jobs     []JobState `json:"jobs"`
	Activity []string   `json:"activity"`
}

// handleStatus reports every tracked job and recent activity.
// GET /api/status
func (s *Server) handleStatus(c *gin.Context) {
	jobs, activity := s.jobs.snapshot()
	c.JSON(http.StatusOK, StatusResponse{Jobs: jobs, Activity: activity})
}
