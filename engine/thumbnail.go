package engine

import (
	"log"
	"path/filepath"
	"strings"

	"newsreel/config"
	"newsreel/layers"
)

// Thumbnail writes a PNG preview next to a finished video and returns
// its path. Callers treat failure as skippable; the video itself is
// the deliverable.
func (e *Engine) Thumbnail(title, videoPath string) (string, error) {
	img := layers.RenderThumbnail(title, e.Fonts.Thumb, config.VideoWidth, config.VideoHeight)
	out := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "_thumb.png"
	if err := layers.WritePNG(img, out); err != nil {
		return "", err
	}
	log.Printf("✅ Thumbnail ready: %s", out)
	return out, nil
}
