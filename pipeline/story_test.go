package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRunStoryPicksFirstUnused(t *testing.T) {
	ctx := context.Background()
	stories := storyList("Old story", "Fresh story", "Later story")
	ren := &fakeRenderer{videoPath: "/tmp/out/video.mp4", thumbPath: "/tmp/out/thumb.png"}
	r := newTestRunner(ren, stories)
	r.Rewriter = &fakeRewriter{hooks: []string{"FRESH HOOK"}}
	if err := r.Ledger.MarkUsed(ctx, stories[0].ID); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}

	res, err := r.RunStory(ctx)
	if err != nil {
		t.Fatalf("RunStory: %v", err)
	}
	if res.Story.ID != "s2" {
		t.Errorf("selected story %s, want s2 (first unused)", res.Story.ID)
	}
	if ren.storyReq == nil {
		t.Fatal("RenderStory was never called")
	}
	if ren.storyReq.Hook != "FRESH HOOK" {
		t.Errorf("rendered hook = %q, want rewritten hook", ren.storyReq.Hook)
	}
	if ren.storyReq.ID != "s2" {
		t.Errorf("job ID = %q, want story ID s2", ren.storyReq.ID)
	}
	if ren.storyReq.Narration.Duration <= 0 {
		t.Errorf("narration duration = %.2f, want positive", ren.storyReq.Narration.Duration)
	}
	used, err := r.Ledger.IsUsed(ctx, "s2")
	if err != nil || !used {
		t.Errorf("story s2 used = %v, %v; want true after run", used, err)
	}
	if res.VideoPath != "/tmp/out/video.mp4" || res.ThumbPath != "/tmp/out/thumb.png" {
		t.Errorf("result paths = %q, %q", res.VideoPath, res.ThumbPath)
	}
}

func TestRunStoryErrorsWhenEverythingUsed(t *testing.T) {
	ctx := context.Background()
	stories := storyList("One", "Two")
	r := newTestRunner(&fakeRenderer{videoPath: "v.mp4"}, stories)
	for _, s := range stories {
		if err := r.Ledger.MarkUsed(ctx, s.ID); err != nil {
			t.Fatalf("MarkUsed: %v", err)
		}
	}

	if _, err := r.RunStory(ctx); err == nil || !strings.Contains(err.Error(), "already used") {
		t.Fatalf("err = %v, want already-used error", err)
	}
}

func TestRunStoryErrorsWithoutStories(t *testing.T) {
	r := newTestRunner(&fakeRenderer{videoPath: "v.mp4"}, nil)
	if _, err := r.RunStory(context.Background()); err == nil {
		t.Fatal("expected error when no stories were fetched")
	}
}

func TestRunStorySurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	stories := storyList("Solo story")
	r := newTestRunner(&fakeRenderer{videoPath: "v.mp4"}, stories)
	pub := &capturePublisher{name: "youtube", err: errors.New("token expired")}
	r.Publishers = append(r.Publishers, pub)

	res, err := r.RunStory(ctx)
	if err != nil {
		t.Fatalf("RunStory: %v, publish failures must not fail the run", err)
	}
	if len(res.Publishes) != 1 || res.Publishes[0].Err == "" {
		t.Errorf("publishes = %+v, want one recorded failure", res.Publishes)
	}
	used, _ := r.Ledger.IsUsed(ctx, "s1")
	if !used {
		t.Error("story must stay marked used even when publishing fails")
	}
}

func TestRunStoryPassesPublicURLToPublishers(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(&fakeRenderer{videoPath: "/tmp/out/clip.mp4"}, storyList("URL story"))
	up := &fakeUploader{url: "https://cdn.example.com/videos/clip.mp4"}
	pub := &capturePublisher{name: "instagram"}
	r.Uploader = up
	r.Publishers = append(r.Publishers, pub)

	if _, err := r.RunStory(ctx); err != nil {
		t.Fatalf("RunStory: %v", err)
	}
	if up.key != "videos/clip.mp4" {
		t.Errorf("upload key = %q, want videos/clip.mp4", up.key)
	}
	if pub.post.VideoURL != up.url {
		t.Errorf("post.VideoURL = %q, want uploader URL", pub.post.VideoURL)
	}
	if pub.post.VideoPath != "/tmp/out/clip.mp4" {
		t.Errorf("post.VideoPath = %q", pub.post.VideoPath)
	}
}

func TestRunStoryKeepsGoingWhenThumbnailFails(t *testing.T) {
	ren := &fakeRenderer{videoPath: "v.mp4", thumbErr: errors.New("font missing")}
	r := newTestRunner(ren, storyList("Thumbless story"))

	res, err := r.RunStory(context.Background())
	if err != nil {
		t.Fatalf("RunStory: %v, thumbnail failure must be recoverable", err)
	}
	if res.ThumbPath != "" {
		t.Errorf("ThumbPath = %q, want empty after failure", res.ThumbPath)
	}
}
