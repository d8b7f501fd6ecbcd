package engine

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"newsreel/background"
	"newsreel/compose"
	"newsreel/config"
	"newsreel/layers"
)

// BulletinRequest carries the five ranked stories of one board.
type BulletinRequest struct {
	ID    string
	Items []layers.Item
}

// RenderBulletin produces a fixed-length bulletin video: all five
// items on one static board, faded in over the background, with a
// music track attached. Missing music is a hard error; a bulletin is
// never delivered silent.
func (e *Engine) RenderBulletin(ctx context.Context, req BulletinRequest) (string, error) {
	if len(req.Items) != config.BulletinItemCount {
		return "", fmt.Errorf("bulletin needs exactly %d items, got %d", config.BulletinItemCount, len(req.Items))
	}

	id := req.ID
	if id == "" {
		titles := make([]string, len(req.Items))
		for i, item := range req.Items {
			titles[i] = item.Title
		}
		id = JobID(strings.Join(titles, "|"))
	}

	job, err := e.newJob("bulletin", id, config.BulletinDuration, true)
	if err != nil {
		return "", err
	}
	defer job.Cleanup()

	bg, err := e.Background.Produce(ctx, config.BulletinDuration, background.ModeBulletin)
	if err != nil {
		return "", fmt.Errorf("background: %w", err)
	}
	job.Advance(compose.StateBackgroundReady)

	audio, err := e.Music.Produce(ctx, config.BulletinDuration)
	if err != nil {
		return "", fmt.Errorf("bulletin music: %w", err)
	}
	job.Audio = audio

	var overlays []layers.Layer
	board := layers.RenderBoard(req.Items, e.Fonts.Board, config.VideoWidth, config.VideoHeight)
	boardPath := filepath.Join(job.TmpDir, "board.png")
	if err := layers.WritePNG(board, boardPath); err != nil {
		log.Printf("⚠️ Dropping bulletin board layer: %v", err)
	} else {
		overlays = append(overlays, layers.Layer{
			Path:     boardPath,
			Start:    0,
			Duration: config.BulletinDuration,
			FadeIn:   0.5,
		})
	}
	job.Advance(compose.StateLayersRendered)

	out, err := e.Comp.Render(job, bg, overlays)
	if err != nil {
		return "", err
	}
	log.Printf("✅ Bulletin video ready: %s", out)
	return out, nil
}
