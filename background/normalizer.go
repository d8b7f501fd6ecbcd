package background

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"newsreel/common"
	"newsreel/config"
)

const (
	imageZoomMax    = 1.20
	imageOpacity    = 0.9
	gradientZoomMax = 1.15
	bulletinZoomMax = 1.10
)

// Normalizer produces a background clip of exactly the requested
// duration at the configured canvas size, falling through source tiers
// until one succeeds.
type Normalizer struct {
	Finder *Finder
	Width  int
	Height int
	FPS    int
	TmpDir string
	Rng    *rand.Rand
}

// NewNormalizer wires a Normalizer for the standard canvas.
func NewNormalizer(finder *Finder, tmpDir string, rng *rand.Rand) *Normalizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Normalizer{
		Finder: finder,
		Width:  config.VideoWidth,
		Height: config.VideoHeight,
		FPS:    config.VideoFPS,
		TmpDir: tmpDir,
		Rng:    rng,
	}
}

// Produce returns the path of a normalized background clip spanning
// exactly target seconds. Each failing tier logs and falls through; an
// error comes back only if even the flat-color tier failed.
func (n *Normalizer) Produce(ctx context.Context, target float64, mode Mode) (string, error) {
	var lastErr error
	for _, src := range n.Finder.Candidates(ctx) {
		path, err := n.normalize(src, target, mode)
		if err != nil {
			log.Printf("⚠️ Background tier %s failed (%s): %v", src.Kind, filepath.Base(src.Path), err)
			lastErr = err
			continue
		}
		log.Printf("🎬 Background ready via %s tier: %s", src.Kind, filepath.Base(path))
		return path, nil
	}
	return "", fmt.Errorf("all background tiers failed: %w", lastErr)
}

func (n *Normalizer) normalize(src Source, target float64, mode Mode) (string, error) {
	switch src.Kind {
	case KindVideo:
		return n.fitVideo(src.Path, target)
	case KindImage:
		return n.animateStill(src.Path, target, MotionZoomIn, imageZoomMax, imageOpacity)
	case KindGradient:
		return n.gradientClip(target, mode)
	default:
		return n.solidClip(target, mode)
	}
}

// fitVideo adapts a video of arbitrary native duration to the target:
// trim when long enough, otherwise time-remap or loop per the plan.
func (n *Normalizer) fitVideo(path string, target float64) (string, error) {
	native, err := common.ProbeDuration(path)
	if err != nil {
		return "", err
	}

	out := n.tmpFile("video", ".mp4")
	plan := FitVideoPlan(native, target)

	switch plan.Strategy {
	case StrategyTrim:
		return out, n.encode(n.cropScale(ffmpeg.Input(path)), out, target)

	case StrategyLoopSlowed:
		log.Printf("🎬 Clip %.2fs too short for %.2fs target, looping %dx with mild slow-down",
			native, target, plan.Loops)
		slowed := n.tmpFile("slowed", ".mp4")
		pass1 := n.cropScale(ffmpeg.Input(path)).
			Filter("setpts", ffmpeg.Args{fmt.Sprintf("%.6f*PTS", 1/mildSlowdown)})
		if err := n.encode(pass1, slowed, native/mildSlowdown); err != nil {
			return "", fmt.Errorf("slow pass: %w", err)
		}
		defer os.Remove(slowed)

		looped := ffmpeg.Input(slowed, ffmpeg.KwArgs{"stream_loop": plan.Loops - 1})
		return out, n.encode(looped, out, target)

	default: // StrategySlowDown
		remap := n.cropScale(ffmpeg.Input(path)).
			Filter("setpts", ffmpeg.Args{fmt.Sprintf("%.6f*PTS", 1/plan.SpeedFactor)})
		err := n.encode(remap, out, target)
		if err == nil {
			return out, nil
		}
		log.Printf("⚠️ Time remap failed, rescaling input timestamps: %v", err)

		rescaled := n.cropScale(ffmpeg.Input(path, ffmpeg.KwArgs{
			"itsscale": fmt.Sprintf("%.6f", 1/plan.SpeedFactor),
		}))
		if err = n.encode(rescaled, out, target); err == nil {
			return out, nil
		}
		log.Printf("⚠️ Timestamp rescale failed, looping unmodified clip: %v", err)

		looped := n.cropScale(ffmpeg.Input(path, ffmpeg.KwArgs{
			"stream_loop": LoopCount(native, target) - 1,
		}))
		return out, n.encode(looped, out, target)
	}
}

// animateStill wraps a still image at the target duration with a
// continuous zoom (or pan) and an optional opacity reduction for depth.
func (n *Normalizer) animateStill(path string, target float64, motion Motion, maxZoom, opacity float64) (string, error) {
	out := n.tmpFile("still", ".mp4")
	totalFrames := int(target * float64(n.FPS))
	z, x, y := zoompanExprs(motion, maxZoom, totalFrames)

	still := ffmpeg.Input(path, ffmpeg.KwArgs{"loop": 1, "t": fmt.Sprintf("%.2f", target)}).
		Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", 2*n.Width, 2*n.Height)}).
		Filter("zoompan", ffmpeg.Args{}, ffmpeg.KwArgs{
			"z":   z,
			"x":   x,
			"y":   y,
			"d":   totalFrames,
			"fps": n.FPS,
			"s":   fmt.Sprintf("%dx%d", n.Width, n.Height),
		})

	if opacity < 1.0 {
		faded := still.
			Filter("format", ffmpeg.Args{"rgba"}).
			Filter("colorchannelmixer", ffmpeg.Args{}, ffmpeg.KwArgs{"aa": fmt.Sprintf("%.2f", opacity)})
		base := ffmpeg.Input(n.lavfiColor("black", target), ffmpeg.KwArgs{"f": "lavfi"})
		merged := ffmpeg.Filter([]*ffmpeg.Stream{base, faded}, "overlay", ffmpeg.Args{}, ffmpeg.KwArgs{"shortest": 1})
		return out, n.encode(merged, out, target)
	}
	return out, n.encode(still, out, target)
}

// gradientClip renders the procedural gradient once and animates it.
func (n *Normalizer) gradientClip(target float64, mode Mode) (string, error) {
	stops := GradientStops(mode, n.Rng)
	img := RenderGradient(stops, n.Width, n.Height)

	pngPath := n.tmpFile("gradient", ".png")
	if err := savePNG(img, pngPath); err != nil {
		return "", fmt.Errorf("write gradient: %w", err)
	}
	defer os.Remove(pngPath)

	maxZoom := gradientZoomMax
	if mode == ModeBulletin {
		maxZoom = bulletinZoomMax
	}
	return n.animateStill(pngPath, target, PickMotion(mode, n.Rng), maxZoom, 1.0)
}

// solidClip is the last-resort tier: a flat color card. Bulletin mode
// draws a random dark color, narration mode uses the fixed fallback.
func (n *Normalizer) solidClip(target float64, mode Mode) (string, error) {
	c := solidFallback
	if mode == ModeBulletin {
		c.R = uint8(10 + n.Rng.Intn(41))
		c.G = uint8(10 + n.Rng.Intn(41))
		c.B = uint8(30 + n.Rng.Intn(51))
	}

	out := n.tmpFile("solid", ".mp4")
	src := fmt.Sprintf("0x%02X%02X%02X", c.R, c.G, c.B)
	in := ffmpeg.Input(n.lavfiColor(src, target), ffmpeg.KwArgs{"f": "lavfi"})
	return out, n.encode(in, out, target)
}

func (n *Normalizer) lavfiColor(c string, d float64) string {
	return fmt.Sprintf("color=c=%s:s=%dx%d:d=%.2f:r=%d", c, n.Width, n.Height, d, n.FPS)
}

// cropScale centers a 9:16 crop and scales to the canvas. Resizing
// always happens before any duration operation.
func (n *Normalizer) cropScale(in *ffmpeg.Stream) *ffmpeg.Stream {
	return in.
		Filter("crop", ffmpeg.Args{"ih*9/16:ih"}).
		Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", n.Width, n.Height)})
}

// encode writes the stream trimmed to exactly target seconds, silent,
// at the standard codec settings.
func (n *Normalizer) encode(stream *ffmpeg.Stream, out string, target float64) error {
	return ffmpeg.Output([]*ffmpeg.Stream{stream}, out, ffmpeg.KwArgs{
		"t":       fmt.Sprintf("%.2f", target),
		"c:v":     config.VideoCodec,
		"preset":  config.VideoPreset,
		"b:v":     config.VideoBitrate,
		"r":       n.FPS,
		"pix_fmt": "yuv420p",
		"an":      "",
	}).OverWriteOutput().Run()
}

func (n *Normalizer) tmpFile(label, ext string) string {
	return filepath.Join(n.TmpDir, fmt.Sprintf("bg_%s_%d%s", label, time.Now().UnixNano(), ext))
}

func savePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
