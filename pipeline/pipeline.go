// Package pipeline runs the end-to-end automation flows: fetch news,
// pick stories, render videos, publish them, and record what was used
// so no story is ever posted twice.
package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"newsreel/assets"
	"newsreel/config"
	"newsreel/content"
	"newsreel/engine"
	"newsreel/ledger"
	"newsreel/news"
	"newsreel/publish"
)

// storiesPerFeed caps how many items one feed contributes to a run.
const storiesPerFeed = 10

// fetchTimeout bounds the feed fetch + article extraction step.
const fetchTimeout = 30 * time.Second

// Renderer is the slice of the engine the pipelines call.
type Renderer interface {
	RenderStory(ctx context.Context, req engine.StoryRequest) (string, error)
	RenderBulletin(ctx context.Context, req engine.BulletinRequest) (string, error)
	Thumbnail(title, videoPath string) (string, error)
}

var _ Renderer = (*engine.Engine)(nil)

// Uploader pushes a finished video somewhere public and returns its
// URL. Platforms that ingest by URL need one; leaving it nil skips
// the step.
type Uploader interface {
	UploadArtifact(ctx context.Context, localPath, key string) (string, error)
}

var _ Uploader = (*assets.S3Store)(nil)

// Runner wires the automation flows together. Render and Ledger are
// required; the rest degrade when nil. A nil Rewriter keeps original
// headlines, a nil Narrator paces the timeline from the script, a nil
// Uploader leaves the video local only.
type Runner struct {
	Render     Renderer
	Ledger     ledger.Ledger
	Narrator   engine.NarrationSource
	Rewriter   content.HookRewriter
	Publishers []publish.Publisher
	Uploader   Uploader
	Feeds      []string

	// test seams, nil means the real news package
	fetch   func(ctx context.Context, feedURLs []string, perFeed int) []*news.Story
	extract func(stories []*news.Story)
}

func (r *Runner) fetchStories(ctx context.Context) []*news.Story {
	fetch := r.fetch
	if fetch == nil {
		fetch = news.FetchAll
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	return fetch(ctx, r.Feeds, storiesPerFeed)
}

func (r *Runner) extractStories(stories []*news.Story) {
	extract := r.extract
	if extract == nil {
		extract = news.ExtractAll
	}
	extract(stories)
}

// isUsed treats a ledger failure as "not used": a broken ledger must
// not stall the whole pipeline, a rare duplicate post is the lesser
// harm.
func (r *Runner) isUsed(ctx context.Context, storyID string) bool {
	used, err := r.Ledger.IsUsed(ctx, storyID)
	if err != nil {
		log.Printf("⚠️ Ledger check failed for %s: %v", storyID, err)
		return false
	}
	return used
}

func (r *Runner) markUsed(ctx context.Context, storyID string) {
	if err := r.Ledger.MarkUsed(ctx, storyID); err != nil {
		log.Printf("⚠️ Could not mark story %s as used: %v", storyID, err)
	}
}

// rewriteHooks runs the headline rewriter when one is configured and
// falls back to the originals otherwise.
func (r *Runner) rewriteHooks(ctx context.Context, titles []string) []string {
	if r.Rewriter == nil {
		return titles
	}
	return r.Rewriter.RewriteAll(ctx, titles)
}

// uploadVideo publishes the file to the artifact store and returns
// its public URL. Failure is soft: URL-pull platforms will report the
// missing URL themselves.
func (r *Runner) uploadVideo(ctx context.Context, videoPath, key string) string {
	if r.Uploader == nil {
		return ""
	}
	url, err := r.Uploader.UploadArtifact(ctx, videoPath, key)
	if err != nil {
		log.Printf("⚠️ Artifact upload failed: %v", err)
		return ""
	}
	return url
}

func logPublishes(results []publish.Result) int {
	ok := 0
	for _, res := range results {
		if res.Err == "" {
			ok++
			log.Printf("   ✅ %s: %s", res.Platform, res.URL)
		} else {
			log.Printf("   ❌ %s: %s", res.Platform, res.Err)
		}
	}
	return ok
}

// Pacer is the NarrationSource for runs without synthesized audio. It
// paces the timeline from the script alone at the configured speaking
// rate, so captions still land where the words would be spoken and
// the video goes out silent.
type Pacer struct{}

var _ engine.NarrationSource = Pacer{}

// Narrate derives the timeline length from the word count.
func (Pacer) Narrate(_ context.Context, script string) (engine.Narration, error) {
	words := len(strings.Fields(script))
	if words == 0 {
		return engine.Narration{}, errors.New("script has no words")
	}
	duration := float64(words) / config.SpeakingRate
	if floor := config.HookWindow + config.MinSentenceDuration; duration < floor {
		duration = floor
	}
	return engine.Narration{Script: script, Duration: duration}, nil
}
