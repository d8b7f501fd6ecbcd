package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsreel/config"
	"newsreel/engine"
	"newsreel/layers"
	"newsreel/pipeline"
	"newsreel/timing"
)

// RenderStoryRequest is the narrated render payload. Duration may be
// zero, the timeline is then paced from the script at the speaking
// rate. Captions are optional; omitted means auto-segmentation.
type RenderStoryRequest struct {
	ID        string           `json:"id"`
	Hook      string           `json:"hook" binding:"required"`
	Script    string           `json:"script" binding:"required"`
	AudioPath string           `json:"audio_path"`
	Duration  float64          `json:"duration"`
	Captions  []timing.Segment `json:"captions"`
}

// RenderBulletinRequest carries the five board headlines in rank
// order.
type RenderBulletinRequest struct {
	ID     string   `json:"id"`
	Titles []string `json:"titles" binding:"required"`
}

// RenderResponse acknowledges an accepted render.
type RenderResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// handleRenderStory accepts a narrated render and runs it in the
// background.
// POST /api/render
func (s *Server) handleRenderStory(c *gin.Context) {
	var req RenderStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Duration < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration must not be negative"})
		return
	}

	narration := engine.Narration{Script: req.Script, AudioPath: req.AudioPath, Duration: req.Duration}
	if req.Duration == 0 {
		paced, err := pipeline.Pacer{}.Narrate(c.Request.Context(), req.Script)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		narration = paced
		narration.AudioPath = req.AudioPath
	}

	id := req.ID
	if id == "" {
		id = engine.JobID(req.Hook + req.Script)
	}
	if !s.jobs.begin(id, "story") {
		c.JSON(http.StatusConflict, gin.H{"error": "job " + id + " is already in progress"})
		return
	}

	log.Printf("📥 Received story render: job=%s hook=%.40q", id, req.Hook)
	storyReq := engine.StoryRequest{ID: id, Hook: req.Hook, Narration: narration, Captions: req.Captions}
	go s.runJob(id, func(ctx context.Context) (string, error) {
		return s.render.RenderStory(ctx, storyReq)
	})

	c.JSON(http.StatusAccepted, RenderResponse{JobID: id, Status: "render started"})
}

// handleRenderBulletin accepts a top-5 board render.
// POST /api/render/bulletin
func (s *Server) handleRenderBulletin(c *gin.Context) {
	var req RenderBulletinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Titles) != config.BulletinItemCount {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("need exactly %d titles, got %d", config.BulletinItemCount, len(req.Titles)),
		})
		return
	}

	items := make([]layers.Item, len(req.Titles))
	for i, title := range req.Titles {
		items[i] = layers.Item{Rank: i + 1, Title: title}
	}

	id := req.ID
	if id == "" {
		id = engine.JobID(strings.Join(req.Titles, "|"))
	}
	if !s.jobs.begin(id, "bulletin") {
		c.JSON(http.StatusConflict, gin.H{"error": "job " + id + " is already in progress"})
		return
	}

	log.Printf("📥 Received bulletin render: job=%s", id)
	bulletinReq := engine.BulletinRequest{ID: id, Items: items}
	go s.runJob(id, func(ctx context.Context) (string, error) {
		return s.render.RenderBulletin(ctx, bulletinReq)
	})

	c.JSON(http.StatusAccepted, RenderResponse{JobID: id, Status: "render started"})
}

// runJob executes one render under the server mutex and records the
// outcome. It never uses the request context, the HTTP response was
// already sent.
func (s *Server) runJob(id string, render func(ctx context.Context) (string, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs.markRunning(id)
	out, err := render(context.Background())
	if err != nil {
		log.Printf("❌ Render failed for job %s: %v", id, err)
	}
	s.jobs.finish(id, out, err)
}
