package layers

import (
	"strings"

	"golang.org/x/image/font"
)

// Wrap greedily packs words onto lines: a word joins the current line
// unless the joined line would exceed maxWidth, in which case it starts
// a new line. A single word wider than maxWidth gets a line of its own
// rather than being split.
func Wrap(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)
	var lines []string
	var current []string

	for _, word := range words {
		test := word
		if len(current) > 0 {
			test = strings.Join(current, " ") + " " + word
		}
		if textWidth(face, test) <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
