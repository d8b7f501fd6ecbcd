// Package api exposes the render engine over HTTP. Renders are
// accepted with 202 and executed in the background, one encode at a
// time per process; progress is visible through the status endpoint.
package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"newsreel/compose"
	"newsreel/engine"
)

// Renderer is the slice of the engine the server drives.
type Renderer interface {
	RenderStory(ctx context.Context, req engine.StoryRequest) (string, error)
	RenderBulletin(ctx context.Context, req engine.BulletinRequest) (string, error)
}

var _ Renderer = (*engine.Engine)(nil)

// Server handles HTTP render requests.
type Server struct {
	render Renderer
	jobs   *jobStore
	mu     sync.Mutex // serializes renders
}

// NewServer creates an API server around a renderer.
func NewServer(render Renderer) *Server {
	return &Server{render: render, jobs: newJobStore()}
}

// JobTransition feeds engine lifecycle callbacks into the status
// store. Wire it as engine.OnState.
func (s *Server) JobTransition(jobID string, st compose.State) {
	s.jobs.transition(jobID, st)
}

// Router constructs a Gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	g := r.Group("/api")
	g.POST("/render", s.handleRenderStory)
	g.POST("/render/bulletin", s.handleRenderBulletin)
	g.GET("/status", s.handleStatus)

	r.GET("/health", s.handleHealth)
	return r
}

// handleHealth provides a health check endpoint
// GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
