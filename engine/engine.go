// Package engine orchestrates whole renders: it walks the background
// and music tiers, resolves caption timing, rasterizes layers into a
// per-job temp dir, and hands everything to the compositor. It never
// synthesizes speech; narration arrives as a finished audio file.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/font"

	"newsreel/background"
	"newsreel/compose"
	"newsreel/config"
	"newsreel/layers"
	"newsreel/music"
)

// BackgroundProducer yields a background clip of exactly the target
// duration at canvas size.
type BackgroundProducer interface {
	Produce(ctx context.Context, target float64, mode background.Mode) (string, error)
}

// MusicProducer yields a music track of exactly the target duration.
type MusicProducer interface {
	Produce(ctx context.Context, target float64) (string, error)
}

// Compositor renders a job's final video from its background and
// overlay layers.
type Compositor interface {
	Render(job *compose.Job, bgPath string, overlays []layers.Layer) (string, error)
}

// Fonts carries the sized faces the engine rasterizes with.
type Fonts struct {
	Hook    font.Face
	Caption font.Face
	Thumb   font.Face
	Board   layers.BoardFonts
}

// Engine wires the render collaborators together. OnState, when set,
// observes every job lifecycle transition (used by the API status
// store).
type Engine struct {
	Background BackgroundProducer
	Music      MusicProducer
	Comp       Compositor
	Fonts      Fonts
	OutputDir  string
	TmpRoot    string
	OnState    func(jobID string, s compose.State)
}

func New(bg BackgroundProducer, mus MusicProducer, comp Compositor, fonts Fonts, cfg *config.Config) *Engine {
	return &Engine{
		Background: bg,
		Music:      mus,
		Comp:       comp,
		Fonts:      fonts,
		OutputDir:  cfg.OutputDir,
		TmpRoot:    cfg.TmpDir,
	}
}

// JobID derives a stable short identifier from seed content.
func JobID(seed string) string {
	if seed == "" {
		seed = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	hash := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(hash[:])[:16]
}

// newJob creates the job record and its scratch dir. The output lands
// at outputDir/<mode>_<id>_<unix>.mp4.
func (e *Engine) newJob(mode, id string, target float64, requireAudio bool) (*compose.Job, error) {
	tmpDir, err := os.MkdirTemp(e.TmpRoot, fmt.Sprintf("%s_%s_", mode, id))
	if err != nil {
		return nil, fmt.Errorf("job temp dir: %w", err)
	}
	job := &compose.Job{
		ID:           id,
		Target:       target,
		RequireAudio: requireAudio,
		TmpDir:       tmpDir,
		OutPath:      filepath.Join(e.OutputDir, fmt.Sprintf("%s_%s_%d.mp4", mode, id, time.Now().Unix())),
	}
	if e.OnState != nil {
		job.OnState = func(s compose.State) { e.OnState(id, s) }
	}
	return job, nil
}

// rasterLayer draws one text layer into the job's scratch dir.
func (e *Engine) rasterLayer(job *compose.Job, name, text string, style layers.Style, start, dur, fade float64) (layers.Layer, error) {
	img := layers.RenderText(text, style, config.VideoWidth, config.VideoHeight)
	path := filepath.Join(job.TmpDir, name+".png")
	if err := layers.WritePNG(img, path); err != nil {
		return layers.Layer{}, err
	}
	return layers.Layer{Path: path, Start: start, Duration: dur, FadeIn: fade}, nil
}

var _ BackgroundProducer = (*background.Normalizer)(nil)
var _ MusicProducer = (*music.Normalizer)(nil)
var _ Compositor = (*compose.Compositor)(nil)
