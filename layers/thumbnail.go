package layers

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

const (
	thumbLineHeight = 100
	thumbWrapMargin = 100
)

var thumbBackground = color.NRGBA{30, 30, 50, 255}

// RenderThumbnail draws a video preview card: a flat deep-blue canvas
// with the title wrapped and centered in white. No outline pass; the
// background is uniform so plain fill stays legible.
func RenderThumbnail(title string, face font.Face, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), thumbBackground)

	lines := Wrap(title, face, width-thumbWrapMargin)
	y := (height - len(lines)*thumbLineHeight) / 2
	for _, line := range lines {
		x := (width - textWidth(face, line)) / 2
		drawString(img, face, line, x, y, color.NRGBA{255, 255, 255, 255})
		y += thumbLineHeight
	}
	return img
}
