package compose

import (
	"errors"
	"fmt"
	"log"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"newsreel/config"
	"newsreel/layers"
)

// ErrNoAudioTrack is returned when a job that requires audio (bulletin
// renders must never go out silent) is started without a track.
var ErrNoAudioTrack = errors.New("render requires an audio track but none was provided")

// Compositor encodes final videos at a fixed vertical geometry.
type Compositor struct {
	Width  int
	Height int
	FPS    int
}

func NewCompositor() *Compositor {
	return &Compositor{Width: config.VideoWidth, Height: config.VideoHeight, FPS: config.VideoFPS}
}

// Render produces the job's output video from a background clip and
// timed overlay layers. Failures degrade in order: full composite,
// background plus audio, silent background. Jobs that require audio
// never take the silent rung. Returns the output path on any success.
func (c *Compositor) Render(job *Job, bgPath string, overlays []layers.Layer) (string, error) {
	if job.RequireAudio && job.Audio == "" {
		return "", ErrNoAudioTrack
	}

	err := c.encodePass(job, bgPath, overlays, true)
	if err == nil {
		return job.OutPath, nil
	}

	if len(overlays) > 0 {
		log.Printf("⚠️ Job %s: composited encode failed, retrying background-only: %v", job.ID, err)
		if err = c.encodePass(job, bgPath, nil, true); err == nil {
			return job.OutPath, nil
		}
	}

	if job.Audio != "" && !job.RequireAudio {
		log.Printf("⚠️ Job %s: audio mux failed, retrying silent: %v", job.ID, err)
		if err = c.encodePass(job, bgPath, nil, false); err == nil {
			return job.OutPath, nil
		}
	}

	return "", fmt.Errorf("job %s: every composite pass failed: %w", job.ID, err)
}

func (c *Compositor) encodePass(job *Job, bgPath string, overlays []layers.Layer, withAudio bool) error {
	out := c.buildOutput(job, bgPath, overlays, withAudio)
	if err := out.OverWriteOutput().Run(); err != nil {
		return err
	}
	job.Advance(StateEncoded)
	return nil
}

// buildOutput assembles the ffmpeg graph without running it.
func (c *Compositor) buildOutput(job *Job, bgPath string, overlays []layers.Layer, withAudio bool) *ffmpeg.Stream {
	video := c.overlayChain(bgPath, overlays, job.Target)
	job.Advance(StateComposited)

	streams := []*ffmpeg.Stream{video}
	kw := ffmpeg.KwArgs{
		"t":       fmt.Sprintf("%.2f", job.Target),
		"c:v":     config.VideoCodec,
		"preset":  config.VideoPreset,
		"b:v":     config.VideoBitrate,
		"r":       c.FPS,
		"s":       fmt.Sprintf("%dx%d", c.Width, c.Height),
		"pix_fmt": "yuv420p",
	}
	if withAudio && job.Audio != "" {
		streams = append(streams, ffmpeg.Input(job.Audio))
		kw["c:a"] = config.AudioCodec
		kw["b:a"] = config.AudioBitrate
		kw["shortest"] = ""
		job.Advance(StateAudioAttached)
	} else {
		kw["an"] = ""
	}

	return ffmpeg.Output(streams, job.OutPath, kw)
}

// overlayChain stacks each layer PNG over the background, shown only
// inside its own time window. Layers with a fade-in get an alpha ramp
// on their own timeline before the overlay.
func (c *Compositor) overlayChain(bgPath string, overlays []layers.Layer, target float64) *ffmpeg.Stream {
	video := ffmpeg.Input(bgPath, ffmpeg.KwArgs{"t": fmt.Sprintf("%.2f", target)})

	for _, l := range overlays {
		layer := ffmpeg.Input(l.Path, ffmpeg.KwArgs{"loop": 1})
		if l.FadeIn > 0 {
			layer = layer.
				Filter("format", ffmpeg.Args{"rgba"}).
				Filter("fade", ffmpeg.Args{}, ffmpeg.KwArgs{
					"t":     "in",
					"st":    fmt.Sprintf("%.2f", l.Start),
					"d":     fmt.Sprintf("%.2f", l.FadeIn),
					"alpha": 1,
				})
		}
		video = ffmpeg.Filter([]*ffmpeg.Stream{video, layer}, "overlay", ffmpeg.Args{}, ffmpeg.KwArgs{
			"enable": fmt.Sprintf("between(t,%.2f,%.2f)", l.Start, l.End()),
		})
	}

	return video
}
