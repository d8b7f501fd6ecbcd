package music

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"path/filepath"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"newsreel/common"
	"newsreel/config"
)

// FitPlan says how to stretch a file-backed track to the target
// duration: trim a long one, or lay down whole copies of a short one
// and trim the tail.
type FitPlan struct {
	Trim  bool
	Loops int
}

// PlanFit computes the fit strategy for a track of native seconds
// against a target of target seconds.
func PlanFit(native, target float64) FitPlan {
	if native >= target {
		return FitPlan{Trim: true, Loops: 1}
	}
	return FitPlan{Loops: int(math.Ceil(target / native))}
}

// Normalizer produces a music track of exactly the requested duration,
// walking the Source tiers and synthesizing when no asset is usable.
type Normalizer struct {
	Source *Source
	TmpDir string
	Rng    *rand.Rand
}

func NewNormalizer(src *Source, tmpDir string, rng *rand.Rand) *Normalizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Normalizer{Source: src, TmpDir: tmpDir, Rng: rng}
}

// Produce returns the path to an audio file lasting exactly target
// seconds. File-backed candidates are fitted by trim or whole-copy
// looping; when none is usable the track is synthesized at the target
// duration directly, so only a filesystem failure on the last tier can
// make this return an error.
func (n *Normalizer) Produce(ctx context.Context, target float64) (string, error) {
	for _, path := range n.Source.Candidates(ctx) {
		fitted, err := n.fit(path, target)
		if err != nil {
			log.Printf("⚠️ Music asset %s unusable: %v", filepath.Base(path), err)
			continue
		}
		n.Source.MarkUsed(path)
		log.Printf("🎵 Music ready: %s", filepath.Base(path))
		return fitted, nil
	}

	path, err := n.generate(target, ChordTrack, "chord")
	if err == nil {
		log.Printf("🎵 Generated background music: %s", filepath.Base(path))
		return path, nil
	}
	log.Printf("⚠️ Music synthesis failed: %v", err)

	path, err = n.generate(target, Tone, "tone")
	if err != nil {
		return "", fmt.Errorf("all music tiers failed: %w", err)
	}
	log.Printf("🎵 Generated background tone: %s", filepath.Base(path))
	return path, nil
}

func (n *Normalizer) generate(target float64, synth func(float64, *rand.Rand) []float64, label string) (string, error) {
	out := n.tmpFile(label, ".wav")
	if err := WriteWAV(out, synth(target, n.Rng)); err != nil {
		return "", err
	}
	return out, nil
}

func (n *Normalizer) fit(path string, target float64) (string, error) {
	native, err := common.ProbeDuration(path)
	if err != nil {
		return "", err
	}
	plan := PlanFit(native, target)
	inKw := ffmpeg.KwArgs{}
	if !plan.Trim {
		log.Printf("🎵 Music %.2fs shorter than %.2fs target, looping %dx", native, target, plan.Loops)
		inKw["stream_loop"] = plan.Loops - 1
	}

	out := n.tmpFile("fit", ".m4a")
	err = ffmpeg.Input(path, inKw).
		Output(out, ffmpeg.KwArgs{
			"t":   fmt.Sprintf("%.2f", target),
			"c:a": config.AudioCodec,
			"b:a": config.AudioBitrate,
			"vn":  "",
		}).
		OverWriteOutput().Run()
	if err != nil {
		return "", err
	}
	return out, nil
}

func (n *Normalizer) tmpFile(label, ext string) string {
	return filepath.Join(n.TmpDir, fmt.Sprintf("music_%s_%d%s", label, time.Now().UnixNano(), ext))
}
