package news

import (
	"fmt"
	"log"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	// WorkerCount bounds concurrent article extractions.
	WorkerCount = 5

	extractorTimeout = 30 * time.Second
)

// ExtractAll fetches and extracts full content for all stories using a
// worker pool. Failures are recorded on the story, never returned.
func ExtractAll(stories []*Story) {
	var wg sync.WaitGroup
	storyChan := make(chan *Story, len(stories))

	for i := 0; i < WorkerCount; i++ {
		go func(workerID int) {
			for story := range storyChan {
				if err := extractContent(story); err != nil {
					story.ExtractionError = err.Error()
					log.Printf("⚠️ [worker %d] failed to extract %s: %v", workerID, story.URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for _, story := range stories {
		wg.Add(1)
		storyChan <- story
	}

	wg.Wait()
	close(storyChan)
}

func extractContent(story *Story) error {
	if story.URL == "" {
		return fmt.Errorf("story URL is empty")
	}

	article, err := readability.FromURL(story.URL, extractorTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	story.Content = article.TextContent
	if story.ImageURL == "" {
		story.ImageURL = article.Image
	}
	if story.Summary == "" {
		story.Summary = article.Excerpt
	}

	log.Printf("✓ Extracted: %s", story.Title)
	return nil
}
