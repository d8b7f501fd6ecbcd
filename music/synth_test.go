package music

import (
	"math"
	"math/rand"
	"testing"
)

func peak(samples []float64) float64 {
	var max float64
	for _, s := range samples {
		if a := math.Abs(s); a > max {
			max = a
		}
	}
	return max
}

func TestChordTrackLengthAndLevel(t *testing.T) {
	got := ChordTrack(2.0, rand.New(rand.NewSource(7)))
	if len(got) != 2*sampleRate {
		t.Fatalf("ChordTrack(2.0) produced %d samples; want %d", len(got), 2*sampleRate)
	}
	p := peak(got)
	if p > 0.3 {
		t.Fatalf("peak = %f; want at most 0.3", p)
	}
	if p < 0.2 {
		t.Fatalf("peak = %f; want a normalized level near 0.3", p)
	}
}

func TestToneLengthAndLevel(t *testing.T) {
	got := Tone(1.5, rand.New(rand.NewSource(7)))
	if len(got) != int(1.5*sampleRate) {
		t.Fatalf("Tone(1.5) produced %d samples; want %d", len(got), int(1.5*sampleRate))
	}
	p := peak(got)
	if p > 0.25 {
		t.Fatalf("peak = %f; want at most 0.25", p)
	}
	if p < 0.15 {
		t.Fatalf("peak = %f; want a normalized level near 0.25", p)
	}
}

func TestSynthDeterministicPerSeed(t *testing.T) {
	a := ChordTrack(0.5, rand.New(rand.NewSource(3)))
	b := ChordTrack(0.5, rand.New(rand.NewSource(3)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs for identical seeds: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestNormalizeToNeverExceedsPeak(t *testing.T) {
	samples := []float64{0.01, -0.02, 0.005}
	normalizeTo(samples, 0.25)
	if p := peak(samples); p > 0.25 {
		t.Fatalf("peak after normalize = %f; want at most 0.25", p)
	}

	loud := []float64{3, -8, 5}
	normalizeTo(loud, 0.3)
	if p := peak(loud); p > 0.3 {
		t.Fatalf("peak after normalize = %f; want at most 0.3", p)
	}
}
