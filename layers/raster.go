// Package layers rasterizes text and graphic overlays (hooks, captions,
// bulletin boards) into transparent images the compositor stacks over
// the background clip. Rendering is pure: all inputs, including fonts,
// arrive as parameters.
package layers

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// RenderText draws word-wrapped text onto a transparent canvas of the
// given size. The block of lines is centered as a whole, shifted up by
// the style's vertical bias, and every glyph is drawn twice: an outline
// ring pass, then the fill pass.
func RenderText(text string, style Style, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	lines := Wrap(text, style.Face, width-WrapMargin)
	startY := (height-len(lines)*style.LineHeight)/2 - style.VerticalBias

	for i, line := range lines {
		x := (width - textWidth(style.Face, line)) / 2
		y := startY + i*style.LineHeight
		drawOutlined(img, style.Face, line, x, y, style.Fill, style.Outline, style.OutlineWidth)
	}
	return img
}

// drawOutlined draws s anchored at the top-left corner (x, y): first at
// every offset in the ±width ring except (0,0) in the outline color,
// then once at (0,0) in the fill color.
func drawOutlined(dst draw.Image, face font.Face, s string, x, y int, fill, outline color.NRGBA, width int) {
	for dx := -width; dx <= width; dx++ {
		for dy := -width; dy <= width; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(dst, face, s, x+dx, y+dy, outline)
		}
	}
	drawString(dst, face, s, x, y, fill)
}

// drawString anchors text at its top-left corner, matching the
// coordinate convention of the layout math above.
func drawString(dst draw.Image, face font.Face, s string, x, yTop int, c color.NRGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, yTop+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

func fillRect(dst draw.Image, r image.Rectangle, c color.NRGBA) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// strokeRect draws a rectangle border of the given thickness inside r.
func strokeRect(dst draw.Image, r image.Rectangle, c color.NRGBA, thickness int) {
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y+thickness, r.Min.X+thickness, r.Max.Y-thickness), c)
	fillRect(dst, image.Rect(r.Max.X-thickness, r.Min.Y+thickness, r.Max.X, r.Max.Y-thickness), c)
}

// fillCircle rasterizes a filled circle by horizontal spans.
func fillCircle(dst draw.Image, cx, cy, radius int, c color.NRGBA) {
	for dy := -radius; dy <= radius; dy++ {
		span := int(math.Sqrt(float64(radius*radius - dy*dy)))
		fillRect(dst, image.Rect(cx-span, cy+dy, cx+span+1, cy+dy+1), c)
	}
}

// WritePNG writes the rendered layer image to path.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
