package engine

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"

	"newsreel/background"
	"newsreel/compose"
	"newsreel/layers"
	"newsreel/timing"
)

type fakeBackground struct {
	path   string
	err    error
	calls  int
	target float64
	mode   background.Mode
}

func (f *fakeBackground) Produce(_ context.Context, target float64, mode background.Mode) (string, error) {
	f.calls++
	f.target = target
	f.mode = mode
	return f.path, f.err
}

type fakeMusic struct {
	path   string
	err    error
	calls  int
	target float64
}

func (f *fakeMusic) Produce(_ context.Context, target float64) (string, error) {
	f.calls++
	f.target = target
	return f.path, f.err
}

// fakeComp records the render call and checks that every overlay file
// exists while compositing runs, since scratch files are deleted on
// return.
type fakeComp struct {
	job            *compose.Job
	overlays       []layers.Layer
	err            error
	overlaysOnDisk bool
}

func (f *fakeComp) Render(job *compose.Job, _ string, overlays []layers.Layer) (string, error) {
	f.job = job
	f.overlays = overlays
	f.overlaysOnDisk = true
	for _, l := range overlays {
		if _, err := os.Stat(l.Path); err != nil {
			f.overlaysOnDisk = false
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return job.OutPath, nil
}

func testFonts() Fonts {
	face := basicfont.Face7x13
	return Fonts{
		Hook:    face,
		Caption: face,
		Thumb:   face,
		Board:   layers.BoardFonts{Header: face, Title: face, Number: face},
	}
}

func testEngine(t *testing.T, bg *fakeBackground, mus *fakeMusic, comp *fakeComp) *Engine {
	t.Helper()
	return &Engine{
		Background: bg,
		Music:      mus,
		Comp:       comp,
		Fonts:      testFonts(),
		OutputDir:  t.TempDir(),
		TmpRoot:    t.TempDir(),
	}
}

func TestRenderStoryBuildsHookAndAutoCaptions(t *testing.T) {
	bg := &fakeBackground{path: "bg.mp4"}
	comp := &fakeComp{}
	e := testEngine(t, bg, &fakeMusic{}, comp)

	req := StoryRequest{
		Hook: "Scientists stunned",
		Narration: Narration{
			Script:    "Breaking news today. Scientists discovered something amazing.",
			AudioPath: "voice.mp3",
			Duration:  30,
		},
	}
	out, err := e.RenderStory(context.Background(), req)
	if err != nil {
		t.Fatalf("RenderStory: %v", err)
	}

	base := filepath.Base(out)
	if !strings.HasPrefix(base, "story_") || !strings.HasSuffix(base, ".mp4") {
		t.Fatalf("output name = %q; want story_<id>_<unix>.mp4", base)
	}
	if bg.mode != background.ModeNarration || bg.target != 30 {
		t.Fatalf("background produced for mode %v target %.1f; want narration 30", bg.mode, bg.target)
	}
	if comp.job.Audio != "voice.mp3" || comp.job.RequireAudio {
		t.Fatalf("job audio = %q require=%v; want narration track, not required", comp.job.Audio, comp.job.RequireAudio)
	}

	if len(comp.overlays) != 3 {
		t.Fatalf("got %d overlays; want hook + 2 auto captions", len(comp.overlays))
	}
	hook := comp.overlays[0]
	if hook.Start != 0 || hook.Duration != 3.5 {
		t.Fatalf("hook layer start %.2f dur %.2f; want 0 and 3.5", hook.Start, hook.Duration)
	}
	if got := comp.overlays[1].Start; got != 3.5 {
		t.Fatalf("first caption starts at %.2f; want 3.5", got)
	}
	if got := comp.overlays[2].Start; got <= comp.overlays[1].Start {
		t.Fatalf("captions not ordered: %.2f then %.2f", comp.overlays[1].Start, got)
	}
	if !comp.overlaysOnDisk {
		t.Fatal("overlay files were missing at composite time")
	}
}

func TestRenderStoryCleansScratchDir(t *testing.T) {
	bg := &fakeBackground{path: "bg.mp4"}
	e := testEngine(t, bg, &fakeMusic{}, &fakeComp{})

	req := StoryRequest{
		Narration: Narration{Script: "One two three.", AudioPath: "voice.mp3", Duration: 10},
	}
	if _, err := e.RenderStory(context.Background(), req); err != nil {
		t.Fatalf("RenderStory: %v", err)
	}

	entries, err := os.ReadDir(e.TmpRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("scratch root still has %d entries after render", len(entries))
	}
}

func TestRenderStoryHookClampedToShortNarration(t *testing.T) {
	bg := &fakeBackground{path: "bg.mp4"}
	comp := &fakeComp{}
	e := testEngine(t, bg, &fakeMusic{}, comp)

	req := StoryRequest{
		Hook:      "Quick one",
		Narration: Narration{Script: "Tiny story.", AudioPath: "voice.mp3", Duration: 2},
	}
	if _, err := e.RenderStory(context.Background(), req); err != nil {
		t.Fatalf("RenderStory: %v", err)
	}

	if len(comp.overlays) != 1 {
		t.Fatalf("got %d overlays; want only the hook (no caption fits before 2s)", len(comp.overlays))
	}
	if comp.overlays[0].Duration != 2 {
		t.Fatalf("hook duration = %.2f; want clamped to 2", comp.overlays[0].Duration)
	}
}

func TestRenderStoryResolvesSuppliedCaptions(t *testing.T) {
	bg := &fakeBackground{path: "bg.mp4"}
	comp := &fakeComp{}
	e := testEngine(t, bg, &fakeMusic{}, comp)

	req := StoryRequest{
		Narration: Narration{Script: "alpha beta gamma delta", AudioPath: "voice.mp3", Duration: 10},
		Captions:  []timing.Segment{{Text: "gamma delta", Start: 99, Duration: 1}},
	}
	if _, err := e.RenderStory(context.Background(), req); err != nil {
		t.Fatalf("RenderStory: %v", err)
	}

	if len(comp.overlays) != 1 {
		t.Fatalf("got %d overlays; want the resolved caption", len(comp.overlays))
	}
	if got := comp.overlays[0].Start; got != 0.8 {
		t.Fatalf("resolved caption start = %.2f; want 0.8 (word index 2 at 2.5 wps)", got)
	}
}

func TestRenderStoryBackgroundFailureIsFatal(t *testing.T) {
	bg := &fakeBackground{err: errors.New("all background tiers failed")}
	comp := &fakeComp{}
	e := testEngine(t, bg, &fakeMusic{}, comp)

	req := StoryRequest{
		Narration: Narration{Script: "One two.", AudioPath: "voice.mp3", Duration: 10},
	}
	if _, err := e.RenderStory(context.Background(), req); err == nil {
		t.Fatal("RenderStory succeeded despite background failure")
	}
	if comp.job != nil {
		t.Fatal("compositor was invoked after a fatal background failure")
	}

	entries, err := os.ReadDir(e.TmpRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("scratch root still has %d entries after failed render", len(entries))
	}
}

func TestRenderStoryRejectsZeroDuration(t *testing.T) {
	e := testEngine(t, &fakeBackground{}, &fakeMusic{}, &fakeComp{})
	_, err := e.RenderStory(context.Background(), StoryRequest{
		Narration: Narration{Script: "Hi.", AudioPath: "voice.mp3"},
	})
	if err == nil {
		t.Fatal("RenderStory accepted a zero narration duration")
	}
}

func bulletinItems() []layers.Item {
	return []layers.Item{
		{Rank: 1, Title: "First story"},
		{Rank: 2, Title: "Second story"},
		{Rank: 3, Title: "Third story"},
		{Rank: 4, Title: "Fourth story"},
		{Rank: 5, Title: "Fifth story"},
	}
}

func TestRenderBulletinWiring(t *testing.T) {
	bg := &fakeBackground{path: "bg.mp4"}
	mus := &fakeMusic{path: "music.m4a"}
	comp := &fakeComp{}
	e := testEngine(t, bg, mus, comp)

	out, err := e.RenderBulletin(context.Background(), BulletinRequest{Items: bulletinItems()})
	if err != nil {
		t.Fatalf("RenderBulletin: %v", err)
	}

	if base := filepath.Base(out); !strings.HasPrefix(base, "bulletin_") {
		t.Fatalf("output name = %q; want bulletin_ prefix", base)
	}
	if bg.mode != background.ModeBulletin || bg.target != 20 {
		t.Fatalf("background mode %v target %.1f; want bulletin 20", bg.mode, bg.target)
	}
	if mus.target != 20 {
		t.Fatalf("music target = %.1f; want 20", mus.target)
	}
	if !comp.job.RequireAudio || comp.job.Audio != "music.m4a" {
		t.Fatalf("job audio = %q require=%v; want fitted music, required", comp.job.Audio, comp.job.RequireAudio)
	}

	if len(comp.overlays) != 1 {
		t.Fatalf("got %d overlays; want the single board layer", len(comp.overlays))
	}
	board := comp.overlays[0]
	if board.Start != 0 || board.Duration != 20 || board.FadeIn != 0.5 {
		t.Fatalf("board layer = %+v; want start 0, duration 20, fade 0.5", board)
	}
	if !comp.overlaysOnDisk {
		t.Fatal("board png was missing at composite time")
	}
}

func TestRenderBulletinRejectsWrongItemCount(t *testing.T) {
	bg := &fakeBackground{path: "bg.mp4"}
	e := testEngine(t, bg, &fakeMusic{path: "music.m4a"}, &fakeComp{})

	_, err := e.RenderBulletin(context.Background(), BulletinRequest{Items: bulletinItems()[:4]})
	if err == nil {
		t.Fatal("RenderBulletin accepted 4 items")
	}
	if bg.calls != 0 {
		t.Fatalf("background consulted %d times for an invalid request; want 0", bg.calls)
	}
}

func TestRenderBulletinMusicFailureIsFatal(t *testing.T) {
	comp := &fakeComp{}
	e := testEngine(t, &fakeBackground{path: "bg.mp4"}, &fakeMusic{err: errors.New("disk full")}, comp)

	_, err := e.RenderBulletin(context.Background(), BulletinRequest{Items: bulletinItems()})
	if err == nil {
		t.Fatal("RenderBulletin succeeded without music")
	}
	if comp.job != nil {
		t.Fatal("compositor was invoked without an audio track")
	}
}

func TestThumbnailWrittenNextToVideo(t *testing.T) {
	e := testEngine(t, &fakeBackground{}, &fakeMusic{}, &fakeComp{})
	video := filepath.Join(t.TempDir(), "story_abc_1.mp4")

	out, err := e.Thumbnail("Hello World", video)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if want := strings.TrimSuffix(video, ".mp4") + "_thumb.png"; out != want {
		t.Fatalf("thumbnail path = %q; want %q", out, want)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1080 || b.Dy() != 1920 {
		t.Fatalf("thumbnail size = %dx%d; want 1080x1920", b.Dx(), b.Dy())
	}
}

func TestJobIDStable(t *testing.T) {
	a := JobID("same seed")
	b := JobID("same seed")
	if a != b {
		t.Fatalf("JobID not stable: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("JobID length = %d; want 16", len(a))
	}
	if JobID("other seed") == a {
		t.Fatal("JobID collides for different seeds")
	}
	if JobID("") == "" {
		t.Fatal("JobID(\"\") returned empty id")
	}
}
