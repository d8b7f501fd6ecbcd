// Package publish uploads finished videos to the target platforms.
// Every publisher degrades the same way: failures are logged and
// reported back, never retried.
package publish

import (
	"context"
	"log"
)

// Post carries everything the platforms need for one video.
type Post struct {
	VideoPath   string   // local MP4
	VideoURL    string   // public URL for platforms that pull by URL
	Title       string   // video title (YouTube)
	Description string   // long-form description (YouTube)
	Caption     string   // short caption (Instagram, Facebook)
	Hashtags    []string // bare tags without '#'
}

// Result records one platform's outcome.
type Result struct {
	Platform string `json:"platform"`
	PostID   string `json:"post_id,omitempty"`
	URL      string `json:"url,omitempty"`
	Err      string `json:"error,omitempty"`
}

// Publisher posts one video to one platform.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, post Post) (Result, error)
}

// All publishes to every platform in order and collects the outcomes.
// One platform failing never stops the rest.
func All(ctx context.Context, pubs []Publisher, post Post) []Result {
	results := make([]Result, 0, len(pubs))
	for _, p := range pubs {
		log.Printf("📤 Publishing to %s...", p.Name())
		res, err := p.Publish(ctx, post)
		if err != nil {
			log.Printf("❌ %s publish failed: %v", p.Name(), err)
			res = Result{Platform: p.Name(), Err: err.Error()}
		}
		results = append(results, res)
	}
	return results
}
