package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"newsreel/content"
	"newsreel/engine"
	"newsreel/news"
	"newsreel/publish"
)

// scriptBodyLimit caps how much article text the narration script
// quotes.
const scriptBodyLimit = 200

// StoryResult is the outcome of one narrated run.
type StoryResult struct {
	Story     *news.Story      `json:"story"`
	Hook      string           `json:"hook"`
	VideoPath string           `json:"video_path"`
	ThumbPath string           `json:"thumb_path,omitempty"`
	VideoURL  string           `json:"video_url,omitempty"`
	Publishes []publish.Result `json:"publishes"`
	Elapsed   time.Duration    `json:"elapsed"`
}

// RunStory executes the narrated flow end to end: pick the first
// story the ledger has not seen, extract its article, rewrite the
// headline into a hook, render, publish. The story is marked used as
// soon as the video exists; publish failures never unmark it.
func (r *Runner) RunStory(ctx context.Context) (*StoryResult, error) {
	start := time.Now()
	log.Println("=== Story pipeline ===")

	log.Println("Step 1: Fetching news...")
	stories := r.fetchStories(ctx)
	if len(stories) == 0 {
		return nil, errors.New("no stories fetched from any feed")
	}

	log.Println("Step 2: Selecting an unused story...")
	var story *news.Story
	for _, s := range stories {
		if r.isUsed(ctx, s.ID) {
			log.Printf("⏭️ Already used: %.60s", s.Title)
			continue
		}
		story = s
		break
	}
	if story == nil {
		return nil, fmt.Errorf("all %d fetched stories were already used", len(stories))
	}
	log.Printf("📌 Selected: %s", story.Title)

	log.Println("Step 3: Extracting article content...")
	r.extractStories([]*news.Story{story})

	log.Println("Step 4: Writing the hook...")
	hook := story.Title
	if hooks := r.rewriteHooks(ctx, []string{story.Title}); len(hooks) > 0 && hooks[0] != "" {
		hook = hooks[0]
	}

	log.Println("Step 5: Preparing narration...")
	narrator := r.Narrator
	if narrator == nil {
		narrator = Pacer{}
	}
	narration, err := narrator.Narrate(ctx, buildScript(story))
	if err != nil {
		return nil, fmt.Errorf("narration: %w", err)
	}

	log.Println("Step 6: Rendering video...")
	videoPath, err := r.Render.RenderStory(ctx, engine.StoryRequest{
		ID:        story.ID,
		Hook:      hook,
		Narration: narration,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	r.markUsed(ctx, story.ID)

	log.Println("Step 7: Rendering thumbnail...")
	thumbPath, err := r.Render.Thumbnail(story.Title, videoPath)
	if err != nil {
		log.Printf("⚠️ Thumbnail failed: %v", err)
		thumbPath = ""
	}

	log.Println("Step 8: Publishing...")
	videoURL := r.uploadVideo(ctx, videoPath, "videos/"+filepath.Base(videoPath))
	caption, videoTitle, hashtags := content.NarratedMeta(story.Title)
	description := story.Summary
	if description == "" {
		description = caption
	}
	results := publish.All(ctx, r.Publishers, publish.Post{
		VideoPath:   videoPath,
		VideoURL:    videoURL,
		Title:       videoTitle,
		Description: description,
		Caption:     caption,
		Hashtags:    hashtags,
	})
	ok := logPublishes(results)
	log.Printf("=== Story pipeline done: %d/%d platforms, %.1fs ===", ok, len(results), time.Since(start).Seconds())

	return &StoryResult{
		Story:     story,
		Hook:      hook,
		VideoPath: videoPath,
		ThumbPath: thumbPath,
		VideoURL:  videoURL,
		Publishes: results,
		Elapsed:   time.Since(start),
	}, nil
}

// buildScript assembles the narration script from whatever text the
// story carries. The shape stays constant so paced timing is stable.
func buildScript(story *news.Story) string {
	body := story.Summary
	if body == "" {
		body = story.Content
	}
	body = snippet(body, scriptBodyLimit)
	if body == "" {
		return fmt.Sprintf("%s. Stay informed. Follow for more updates.", story.Title)
	}
	return fmt.Sprintf("Here's what you need to know. %s. Stay informed. Follow for more updates.", body)
}

// snippet trims s to at most limit runes, cutting back to a word
// boundary and dropping trailing punctuation so the caller can add
// its own.
func snippet(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > limit {
		cut := string(runes[:limit])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		s = cut
	}
	return strings.TrimRight(s, " .")
}
