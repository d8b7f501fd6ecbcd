package layers

import (
	"image/color"

	"golang.org/x/image/font"
)

// WrapMargin is subtracted from the canvas width when wrapping
// narration-mode text (hook and captions).
const WrapMargin = 200

// Style controls how one text role is rasterized. Hook and caption
// share the same drawing path; only the style values differ.
type Style struct {
	Face         font.Face
	Fill         color.NRGBA
	Outline      color.NRGBA
	OutlineWidth int
	LineHeight   int
	VerticalBias int
}

// HookStyle is the opening headline look: bigger face, yellow fill.
func HookStyle(face font.Face) Style {
	return Style{
		Face:         face,
		Fill:         color.NRGBA{255, 255, 0, 255},
		Outline:      color.NRGBA{0, 0, 0, 255},
		OutlineWidth: 4,
		LineHeight:   225,
		VerticalBias: 100,
	}
}

// CaptionStyle is the regular on-screen text look.
func CaptionStyle(face font.Face) Style {
	return Style{
		Face:         face,
		Fill:         color.NRGBA{255, 255, 255, 255},
		Outline:      color.NRGBA{0, 0, 0, 255},
		OutlineWidth: 3,
		LineHeight:   165,
		VerticalBias: 100,
	}
}

// badgePalette holds the five badge colors used on bulletin boards.
var badgePalette = [5]color.NRGBA{
	{255, 59, 48, 255}, // red
	{255, 149, 0, 255}, // orange
	{255, 204, 0, 255}, // yellow
	{52, 199, 89, 255}, // green
	{0, 122, 255, 255}, // blue
}

// BadgeColor returns the badge color for a 1-based bulletin rank.
// Colors cycle through the palette, so rank 6 would wrap back to red.
func BadgeColor(rank int) color.NRGBA {
	idx := (rank - 1) % len(badgePalette)
	if idx < 0 {
		idx += len(badgePalette)
	}
	return badgePalette[idx]
}
