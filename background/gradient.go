package background

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
)

// narrationStops is the fixed gradient palette for narration mode:
// midnight blue into slate blues.
var narrationStops = [3]color.NRGBA{
	{25, 25, 112, 255},
	{72, 61, 139, 255},
	{123, 104, 238, 255},
}

// solidFallback is the flat color used when every richer tier failed.
var solidFallback = color.NRGBA{30, 30, 50, 255}

// GradientStops returns the three gradient colors for a mode. Narration
// mode is deterministic; bulletin mode draws pleasant darkish colors
// from the injected source.
func GradientStops(mode Mode, rng *rand.Rand) [3]color.NRGBA {
	if mode == ModeNarration {
		return narrationStops
	}
	randomColor := func() color.NRGBA {
		return color.NRGBA{
			R: uint8(20 + rng.Intn(81)),
			G: uint8(20 + rng.Intn(81)),
			B: uint8(50 + rng.Intn(101)),
			A: 255,
		}
	}
	return [3]color.NRGBA{randomColor(), randomColor(), randomColor()}
}

// RenderGradient paints a top-to-bottom linear interpolation through
// the three stops: first half blends stop 0 into stop 1, second half
// stop 1 into stop 2.
func RenderGradient(stops [3]color.NRGBA, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		p := float64(y) / float64(height)
		var c1, c2 color.NRGBA
		var ratio float64
		if p < 0.5 {
			c1, c2, ratio = stops[0], stops[1], p*2
		} else {
			c1, c2, ratio = stops[1], stops[2], (p-0.5)*2
		}
		row := color.NRGBA{
			R: blend(c1.R, c2.R, ratio),
			G: blend(c1.G, c2.G, ratio),
			B: blend(c1.B, c2.B, ratio),
			A: 255,
		}
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, row)
		}
	}
	return img
}

func blend(a, b uint8, ratio float64) uint8 {
	return uint8(float64(a)*(1-ratio) + float64(b)*ratio)
}

// Motion is the camera move applied to a still background.
type Motion uint8

const (
	MotionZoomIn Motion = iota
	MotionZoomOut
	MotionPan
)

func (m Motion) String() string {
	switch m {
	case MotionZoomIn:
		return "zoom-in"
	case MotionZoomOut:
		return "zoom-out"
	default:
		return "pan"
	}
}

// PickMotion chooses the gradient motion: always zoom-in for narration,
// random for bulletin boards.
func PickMotion(mode Mode, rng *rand.Rand) Motion {
	if mode == ModeNarration {
		return MotionZoomIn
	}
	return Motion(rng.Intn(3))
}

// zoompanExprs builds the z/x/y expressions animating a still over
// totalFrames output frames. maxZoom is the strongest scale reached.
func zoompanExprs(m Motion, maxZoom float64, totalFrames int) (z, x, y string) {
	step := (maxZoom - 1.0) / float64(totalFrames)
	centerX := "iw/2-(iw/zoom/2)"
	centerY := "ih/2-(ih/zoom/2)"
	switch m {
	case MotionZoomOut:
		return fmt.Sprintf("max(%.3f-%.6f*on,1.0)", maxZoom, step), centerX, centerY
	case MotionPan:
		// hold a slight zoom and drift down through the headroom
		return fmt.Sprintf("%.3f", maxZoom),
			centerX,
			fmt.Sprintf("(ih-ih/zoom)*on/%d", totalFrames)
	default:
		return fmt.Sprintf("min(zoom+%.6f,%.3f)", step, maxZoom), centerX, centerY
	}
}
