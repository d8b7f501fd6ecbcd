package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"newsreel/config"
	"newsreel/content"
	"newsreel/engine"
	"newsreel/layers"
	"newsreel/news"
	"newsreel/publish"
)

// BulletinResult is the outcome of one top-5 board run.
type BulletinResult struct {
	Stories   []*news.Story    `json:"stories"`
	Hooks     []string         `json:"hooks"`
	VideoPath string           `json:"video_path"`
	ThumbPath string           `json:"thumb_path,omitempty"`
	VideoURL  string           `json:"video_url,omitempty"`
	Publishes []publish.Result `json:"publishes"`
	Elapsed   time.Duration    `json:"elapsed"`
}

// RunBulletin executes the top-5 flow: collect exactly five unused
// stories with distinct titles, rewrite each headline into a short
// hook, render the board, publish. Fewer than five candidates is a
// hard error, a four-item board is never produced.
func (r *Runner) RunBulletin(ctx context.Context) (*BulletinResult, error) {
	start := time.Now()
	log.Println("=== Bulletin pipeline ===")

	log.Printf("Step 1: Fetching exactly %d unused news items...", config.BulletinItemCount)
	stories := r.fetchStories(ctx)
	picked := r.pickDistinct(ctx, stories, config.BulletinItemCount)
	if len(picked) < config.BulletinItemCount {
		return nil, fmt.Errorf("could not find %d unused news items, found only %d", config.BulletinItemCount, len(picked))
	}
	for i, s := range picked {
		log.Printf("   %d. %s", i+1, s.Title)
	}

	log.Println("Step 2: Rewriting headlines into hooks...")
	titles := make([]string, len(picked))
	for i, s := range picked {
		titles[i] = s.Title
	}
	hooks := r.rewriteHooks(ctx, titles)
	if len(hooks) != len(titles) {
		hooks = titles
	}

	log.Println("Step 3: Rendering bulletin board...")
	items := make([]layers.Item, len(hooks))
	for i, hook := range hooks {
		items[i] = layers.Item{Rank: i + 1, Title: hook}
	}
	videoPath, err := r.Render.RenderBulletin(ctx, engine.BulletinRequest{Items: items})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	for _, s := range picked {
		r.markUsed(ctx, s.ID)
	}

	log.Println("Step 4: Rendering thumbnail...")
	thumbPath, err := r.Render.Thumbnail("Top 5 Breaking News", videoPath)
	if err != nil {
		log.Printf("⚠️ Thumbnail failed: %v", err)
		thumbPath = ""
	}

	log.Println("Step 5: Publishing...")
	videoURL := r.uploadVideo(ctx, videoPath, "videos/"+filepath.Base(videoPath))
	title, description, hashtags := content.BulletinMeta(titles)
	results := publish.All(ctx, r.Publishers, publish.Post{
		VideoPath:   videoPath,
		VideoURL:    videoURL,
		Title:       title,
		Description: description,
		Caption:     title,
		Hashtags:    hashtags,
	})
	ok := logPublishes(results)
	log.Printf("=== Bulletin pipeline done: %d/%d platforms, %.1fs ===", ok, len(results), time.Since(start).Seconds())

	return &BulletinResult{
		Stories:   picked,
		Hooks:     hooks,
		VideoPath: videoPath,
		ThumbPath: thumbPath,
		VideoURL:  videoURL,
		Publishes: results,
		Elapsed:   time.Since(start),
	}, nil
}

// pickDistinct walks the stories in feed order and keeps the first
// `want` that are unused and not near-duplicates of an earlier pick.
func (r *Runner) pickDistinct(ctx context.Context, stories []*news.Story, want int) []*news.Story {
	picked := make([]*news.Story, 0, want)
	for _, s := range stories {
		if len(picked) == want {
			break
		}
		if r.isUsed(ctx, s.ID) {
			log.Printf("⏭️ Already used: %.60s", s.Title)
			continue
		}
		if dup := firstSimilar(picked, s); dup != nil {
			log.Printf("⏭️ Too similar to %q: %.60s", dup.Title, s.Title)
			continue
		}
		picked = append(picked, s)
	}
	return picked
}

func firstSimilar(picked []*news.Story, candidate *news.Story) *news.Story {
	for _, p := range picked {
		if news.SimilarTitles(p.Title, candidate.Title) {
			return p
		}
	}
	return nil
}
