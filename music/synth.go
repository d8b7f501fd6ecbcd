package music

import (
	"math"
	"math/rand"
)

const sampleRate = 44100

// style parameterizes the generated-music tier: a base frequency, the
// just-intonation ratios of the notes layered over it, and the pulse
// rate of the rhythmic layer in beats per second.
type style struct {
	name     string
	baseFreq float64
	scale    []float64
	tempo    float64
}

var styles = []style{
	{name: "ambient", baseFreq: 220.00, scale: []float64{1, 5.0 / 4, 3.0 / 2, 2}, tempo: 0.5},
	{name: "upbeat", baseFreq: 261.63, scale: []float64{1, 9.0 / 8, 5.0 / 4, 3.0 / 2, 5.0 / 3, 2}, tempo: 4.0},
	{name: "calm", baseFreq: 196.00, scale: []float64{1, 6.0 / 5, 3.0 / 2}, tempo: 0.2},
	{name: "energetic", baseFreq: 329.63, scale: []float64{1, 4.0 / 3, 3.0 / 2, 15.0 / 8, 2}, tempo: 6.0},
	{name: "mysterious", baseFreq: 174.61, scale: []float64{1, 6.0 / 5, 3.0 / 2, 9.0 / 5}, tempo: 1.0},
	{name: "techno", baseFreq: 146.83, scale: []float64{1, 3.0 / 2, 2}, tempo: 8.0},
	{name: "ethereal", baseFreq: 392.00, scale: []float64{1, 5.0 / 4, 3.0 / 2, 15.0 / 8}, tempo: 0.3},
}

// triads for the last-resort tone tier.
var chords = []struct {
	name  string
	freqs [3]float64
}{
	{"C major", [3]float64{261.63, 329.63, 392.00}},
	{"D major", [3]float64{293.66, 369.99, 440.00}},
	{"E major", [3]float64{329.63, 415.30, 493.88}},
	{"A minor", [3]float64{220.00, 277.18, 329.63}},
	{"B minor", [3]float64{246.94, 311.13, 369.99}},
}

// ChordTrack synthesizes a mono music bed in a randomly chosen style:
// a slowly modulated pad over the style's scale, a pulsed rhythmic
// layer an octave up, and a decaying arpeggio note every half second.
// Peak amplitude is normalized to 0.3 so the bed sits under narration.
func ChordTrack(duration float64, rng *rand.Rand) []float64 {
	st := styles[rng.Intn(len(styles))]
	n := int(sampleRate * duration)
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		mod := 1 + 0.05*math.Sin(2*math.Pi*0.1*t)
		for _, ratio := range st.scale {
			out[i] += 0.1 * math.Sin(2*math.Pi*st.baseFreq*ratio*t*mod)
		}
		pulse := math.Pow(math.Sin(2*math.Pi*st.tempo*t), 4)
		out[i] += 0.05 * pulse * math.Sin(2*math.Pi*st.baseFreq*2*t)
	}

	// Arpeggio: one random scale note per half-second segment, two
	// octaves up, with an exponential decay envelope.
	segment := sampleRate / 2
	for start := 0; start+segment <= n; start += segment {
		ratio := st.scale[rng.Intn(len(st.scale))]
		noteFreq := st.baseFreq * 4 * ratio
		for j := 0; j < segment; j++ {
			lt := float64(j) / sampleRate
			envelope := math.Exp(-5 * lt)
			out[start+j] += 0.05 * envelope * math.Sin(2*math.Pi*noteFreq*lt)
		}
	}

	normalizeTo(out, 0.3)
	return out
}

// Tone synthesizes a plain modulated triad. It involves no I/O and no
// asset lookup, so the music fallback chain can always bottom out here.
func Tone(duration float64, rng *rand.Rand) []float64 {
	chord := chords[rng.Intn(len(chords))]
	n := int(sampleRate * duration)
	out := make([]float64, n)

	for i, freq := range chord.freqs {
		amplitude := 0.15 / float64(i+1)
		modFreq := 0.15 + rng.Float64()*0.2
		for j := 0; j < n; j++ {
			t := float64(j) / sampleRate
			wave := amplitude * math.Sin(2*math.Pi*freq*t)
			out[j] += wave * (1 + 0.1*math.Sin(2*math.Pi*modFreq*t))
		}
	}

	normalizeTo(out, 0.25)
	return out
}

func normalizeTo(samples []float64, peak float64) {
	var max float64
	for _, s := range samples {
		if a := math.Abs(s); a > max {
			max = a
		}
	}
	scale := peak / (max + 0.001)
	for i := range samples {
		samples[i] *= scale
	}
}
