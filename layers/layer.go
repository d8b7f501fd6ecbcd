package layers

// Layer is one rendered overlay the compositor stacks over the
// background: a PNG on disk plus its slot on the timeline. FadeIn, when
// non-zero, is the alpha fade applied at the layer's start.
type Layer struct {
	Path     string
	Start    float64
	Duration float64
	FadeIn   float64
}

// End returns the absolute time the layer leaves the screen.
func (l Layer) End() float64 {
	return l.Start + l.Duration
}
