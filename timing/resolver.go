// Package timing aligns on-screen caption segments with the spoken
// narration script so text appears exactly when its words are spoken.
package timing

import (
	"math"
	"strings"

	"newsreel/config"
)

// Segment is one on-screen caption with absolute timing.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start_time"`
	Duration float64 `json:"duration"`
}

// Resolver corrects segment timing by locating each segment's words
// inside the narration script. The script is tokenized once; lookups
// advance a monotonic word cursor so repeated phrases resolve in
// playback order.
type Resolver struct {
	words  []string
	cursor int
}

// NewResolver tokenizes the narration script by whitespace.
func NewResolver(script string) *Resolver {
	return &Resolver{words: strings.Fields(script)}
}

// SkipHook advances the cursor past the words spoken during the hook
// window, so captions resolved afterwards never overlap the hook.
func (r *Resolver) SkipHook() {
	span := int(math.Ceil(config.HookWindow * config.SpeakingRate))
	if r.cursor < span {
		r.cursor = span
	}
}

// Resolve computes start/duration for one segment from its word
// position in the script. If the segment's words do not appear verbatim
// at or after the cursor, the caller-supplied timing is returned
// unchanged and the cursor does not move.
func (r *Resolver) Resolve(seg Segment) Segment {
	segWords := strings.Fields(seg.Text)
	if len(segWords) == 0 {
		return seg
	}
	for i := r.cursor; i <= len(r.words)-len(segWords); i++ {
		if matchAt(r.words, segWords, i) {
			seg.Start = float64(i) / config.SpeakingRate
			seg.Duration = float64(len(segWords)) / config.SpeakingRate
			r.cursor = i + len(segWords)
			break
		}
	}
	return seg
}

// ResolveAll resolves every segment in playback order.
func (r *Resolver) ResolveAll(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, seg := range segs {
		out = append(out, r.Resolve(seg))
	}
	return out
}

func matchAt(script, segment []string, at int) bool {
	for j, w := range segment {
		if script[at+j] != w {
			return false
		}
	}
	return true
}

// AutoSegments generates caption segments from the script when the
// caller supplied none: one segment per sentence, durations clamped to
// [MinSentenceDuration, MaxSentenceDuration], start times from word
// positions with the first HookWindow seconds kept clear.
func AutoSegments(script string, narrationDuration float64) []Segment {
	sentences := splitSentences(script)
	scriptWords := strings.Fields(script)

	var segments []Segment
	currentTime := config.HookWindow
	wordIndex := 0

	for _, sentence := range sentences {
		if currentTime >= narrationDuration {
			break
		}
		words := strings.Fields(sentence)
		if len(words) == 0 {
			continue
		}

		segDuration := float64(len(words)) / config.SpeakingRate
		segDuration = math.Max(config.MinSentenceDuration, math.Min(config.MaxSentenceDuration, segDuration))

		if wordIndex < len(scriptWords) {
			start := float64(wordIndex) / config.SpeakingRate
			if start < config.HookWindow {
				start = currentTime
			}
			segments = append(segments, Segment{
				Text:     truncate(sentence, 100),
				Start:    start,
				Duration: segDuration,
			})
			wordIndex += len(words)
			currentTime = start + segDuration
		} else {
			segments = append(segments, Segment{
				Text:     truncate(sentence, 100),
				Start:    currentTime,
				Duration: segDuration,
			})
			currentTime += segDuration
		}
	}
	return segments
}

// Visible drops segments starting at or after the narration end and
// clips the rest so no segment outlives the narration. Segments whose
// clipped duration would be zero or negative are dropped too.
func Visible(segs []Segment, narrationDuration float64) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, seg := range segs {
		if seg.Start >= narrationDuration {
			continue
		}
		if remaining := narrationDuration - seg.Start; seg.Duration > remaining {
			seg.Duration = remaining
		}
		if seg.Duration <= 0 {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// splitSentences splits on sentence punctuation, keeping the
// punctuation attached to its sentence and dropping empties.
func splitSentences(script string) []string {
	var sentences []string
	var b strings.Builder
	runes := []rune(script)
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if isSentenceEnd(runes[i]) {
			// absorb runs like "?!" or "..."
			for i+1 < len(runes) && isSentenceEnd(runes[i+1]) {
				i++
				b.WriteRune(runes[i])
			}
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
