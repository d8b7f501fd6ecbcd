package publish

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"newsreel/content"
)

const containerPollLimit = 20

// Instagram publishes Reels through the Graph API two-step flow: a
// REELS container created from a public video URL, then media_publish
// once processing finishes.
type Instagram struct {
	userID       string
	token        string
	httpc        *http.Client
	baseURL      string
	pollInterval time.Duration
}

var _ Publisher = (*Instagram)(nil)

// NewInstagram needs the business account ID and a page access token.
func NewInstagram(userID, accessToken string) (*Instagram, error) {
	if userID == "" || accessToken == "" {
		return nil, errors.New("instagram credentials not configured")
	}
	return &Instagram{
		userID:       userID,
		token:        accessToken,
		httpc:        &http.Client{Timeout: 60 * time.Second},
		baseURL:      graphBase,
		pollInterval: 5 * time.Second,
	}, nil
}

func (i *Instagram) Name() string { return "instagram" }

func (i *Instagram) Publish(ctx context.Context, post Post) (Result, error) {
	if post.VideoURL == "" {
		return Result{}, errors.New("instagram needs a public video URL")
	}

	caption := content.InstagramCaption(post.Caption, post.Hashtags)

	containerID, err := i.createContainer(ctx, post.VideoURL, caption)
	if err != nil {
		return Result{}, err
	}
	log.Printf("📦 Instagram container created: %s", containerID)

	if err := i.waitForContainer(ctx, containerID); err != nil {
		return Result{}, err
	}

	postID, err := i.publishContainer(ctx, containerID)
	if err != nil {
		return Result{}, err
	}
	log.Printf("✅ Instagram post published: %s", postID)

	return Result{Platform: "instagram", PostID: postID}, nil
}

func (i *Instagram) createContainer(ctx context.Context, videoURL, caption string) (string, error) {
	vals := url.Values{
		"media_type":   {"REELS"},
		"video_url":    {videoURL},
		"caption":      {caption},
		"access_token": {i.token},
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := graphPost(ctx, i.httpc, fmt.Sprintf("%s/%s/media", i.baseURL, i.userID), vals, &out); err != nil {
		return "", fmt.Errorf("create container: %w", err)
	}
	return out.ID, nil
}

func (i *Instagram) waitForContainer(ctx context.Context, containerID string) error {
	for attempt := 0; attempt < containerPollLimit; attempt++ {
		var out struct {
			StatusCode string `json:"status_code"`
		}
		statusURL := fmt.Sprintf("%s/%s?fields=status_code&access_token=%s",
			i.baseURL, containerID, url.QueryEscape(i.token))
		if err := graphGet(ctx, i.httpc, statusURL, &out); err != nil {
			return fmt.Errorf("container status: %w", err)
		}

		switch out.StatusCode {
		case "FINISHED":
			return nil
		case "ERROR":
			return errors.New("container processing failed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(i.pollInterval):
		}
	}
	return errors.New("container still processing after poll limit")
}

func (i *Instagram) publishContainer(ctx context.Context, containerID string) (string, error) {
	vals := url.Values{
		"creation_id":  {containerID},
		"access_token": {i.token},
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := graphPost(ctx, i.httpc, fmt.Sprintf("%s/%s/media_publish", i.baseURL, i.userID), vals, &out); err != nil {
		return "", fmt.Errorf("publish container: %w", err)
	}
	return out.ID, nil
}
