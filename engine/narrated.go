package engine

import (
	"context"
	"fmt"
	"log"
	"math"

	"newsreel/background"
	"newsreel/compose"
	"newsreel/config"
	"newsreel/layers"
	"newsreel/timing"
)

// Narration is the spoken track a narrated render is built around:
// the script text, the finished audio file, and its duration. The
// duration is the authoritative timeline length.
type Narration struct {
	Script    string  `json:"script"`
	AudioPath string  `json:"audio_path"`
	Duration  float64 `json:"duration"`
}

// NarrationSource turns a script into finished narration. The engine
// only consumes the result; synthesis lives with the caller.
type NarrationSource interface {
	Narrate(ctx context.Context, script string) (Narration, error)
}

// StoryRequest describes one narrated render. When Captions is empty
// the engine auto-segments the script by sentence; supplied captions
// are re-timed against the script by word position.
type StoryRequest struct {
	ID        string
	Hook      string
	Narration Narration
	Captions  []timing.Segment
}

// RenderStory produces a narrated vertical video and returns its path.
func (e *Engine) RenderStory(ctx context.Context, req StoryRequest) (string, error) {
	if req.Narration.Duration <= 0 {
		return "", fmt.Errorf("narration duration must be positive, got %.2f", req.Narration.Duration)
	}
	id := req.ID
	if id == "" {
		id = JobID(req.Hook + req.Narration.Script)
	}

	job, err := e.newJob("story", id, req.Narration.Duration, false)
	if err != nil {
		return "", err
	}
	defer job.Cleanup()
	job.Audio = req.Narration.AudioPath

	bg, err := e.Background.Produce(ctx, req.Narration.Duration, background.ModeNarration)
	if err != nil {
		return "", fmt.Errorf("background: %w", err)
	}
	job.Advance(compose.StateBackgroundReady)

	overlays := e.storyLayers(job, req)
	job.Advance(compose.StateLayersRendered)

	out, err := e.Comp.Render(job, bg, overlays)
	if err != nil {
		return "", err
	}
	log.Printf("✅ Story video ready: %s", out)
	return out, nil
}

// storyLayers rasterizes the hook and caption layers. A failed layer
// is logged and dropped; one bad caption never aborts the video.
func (e *Engine) storyLayers(job *compose.Job, req StoryRequest) []layers.Layer {
	var out []layers.Layer
	duration := req.Narration.Duration

	if req.Hook != "" {
		hookDur := math.Min(config.HookWindow, duration)
		l, err := e.rasterLayer(job, "hook", req.Hook, layers.HookStyle(e.Fonts.Hook), 0, hookDur, 0)
		if err != nil {
			log.Printf("⚠️ Dropping hook layer: %v", err)
		} else {
			out = append(out, l)
		}
	}

	segs := req.Captions
	if len(segs) == 0 {
		segs = timing.AutoSegments(req.Narration.Script, duration)
	} else {
		r := timing.NewResolver(req.Narration.Script)
		if req.Hook != "" {
			r.SkipHook()
		}
		segs = r.ResolveAll(segs)
	}

	for i, seg := range timing.Visible(segs, duration) {
		name := fmt.Sprintf("caption_%02d", i)
		l, err := e.rasterLayer(job, name, seg.Text, layers.CaptionStyle(e.Fonts.Caption), seg.Start, seg.Duration, 0)
		if err != nil {
			log.Printf("⚠️ Dropping caption layer %d: %v", i, err)
			continue
		}
		out = append(out, l)
	}
	return out
}
