package news

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mmcdole/gofeed"
)

// FetchFeed retrieves and parses one RSS/Atom feed, returning story
// metadata for up to maxCount items.
func FetchFeed(ctx context.Context, feedURL string, maxCount int) ([]*Story, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := len(feed.Items)
	if count > maxCount {
		count = maxCount
	}
	stories := make([]*Story, 0, count)

	for i := 0; i < count; i++ {
		item := feed.Items[i]

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		story := &Story{
			ID:          GenerateID(item.Link),
			Title:       item.Title,
			URL:         item.Link,
			Source:      feed.Title,
			PublishedAt: publishedAt,
			FetchedAt:   time.Now(),
			Summary:     summary,
		}
		if item.Image != nil {
			story.ImageURL = item.Image.URL
		}

		stories = append(stories, story)
	}

	return stories, nil
}

// FetchAll walks every feed, concatenating results. Entries may be
// preset names or direct URLs. A feed that fails is logged and skipped
// so one broken source never starves the rest. Stories sharing a URL
// are collapsed to the first occurrence.
func FetchAll(ctx context.Context, feeds []string, perFeed int) []*Story {
	var all []*Story
	for _, feed := range feeds {
		url := ResolveFeedURL(feed)
		stories, err := FetchFeed(ctx, url, perFeed)
		if err != nil {
			log.Printf("⚠️ Feed %s failed: %v", url, err)
			continue
		}
		all = append(all, stories...)
	}
	return dedupeByURL(all)
}

func dedupeByURL(stories []*Story) []*Story {
	seen := make(map[string]bool, len(stories))
	out := make([]*Story, 0, len(stories))
	for _, s := range stories {
		if s.URL != "" && seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		out = append(out, s)
	}
	return out
}
