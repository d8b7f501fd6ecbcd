// Package news collects candidate stories from RSS/Atom feeds and
// prepares them for rendering: full-text extraction and fuzzy title
// dedup across overlapping feeds.
package news

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Story is a single news item with metadata and extracted content.
type Story struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	URL             string    `json:"url"`
	Source          string    `json:"source,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	FetchedAt       time.Time `json:"fetched_at"`
	Summary         string    `json:"summary,omitempty"`
	Content         string    `json:"content,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	ExtractionError string    `json:"extraction_error,omitempty"`
}

// GenerateID creates a short, stable ID by hashing the story URL.
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
