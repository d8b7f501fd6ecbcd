package publish

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"newsreel/config"
	"newsreel/content"
)

const facebookCaptionLimit = 5000

// Facebook posts the video to a page feed. The Graph API pulls the
// file from a public URL, so no multipart upload is needed.
type Facebook struct {
	pageID  string
	token   string
	httpc   *http.Client
	baseURL string
}

var _ Publisher = (*Facebook)(nil)

func NewFacebook(pageID, accessToken string) (*Facebook, error) {
	if pageID == "" || accessToken == "" {
		return nil, errors.New("facebook credentials not configured")
	}
	return &Facebook{
		pageID:  pageID,
		token:   accessToken,
		httpc:   &http.Client{Timeout: 5 * time.Minute},
		baseURL: graphBase,
	}, nil
}

func (f *Facebook) Name() string { return "facebook" }

func (f *Facebook) Publish(ctx context.Context, post Post) (Result, error) {
	if post.VideoURL == "" {
		return Result{}, errors.New("facebook needs a public video URL")
	}

	caption := post.Caption
	if line := content.HashtagLine(post.Hashtags, config.MaxHashtags); line != "" {
		caption += "\n\n" + line
	}
	caption = content.Truncate(caption, facebookCaptionLimit)

	vals := url.Values{
		"file_url":     {post.VideoURL},
		"description":  {caption},
		"access_token": {f.token},
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := graphPost(ctx, f.httpc, fmt.Sprintf("%s/%s/videos", f.baseURL, f.pageID), vals, &out); err != nil {
		return Result{}, fmt.Errorf("upload video: %w", err)
	}

	log.Printf("✅ Facebook video uploaded: %s", out.ID)
	return Result{Platform: "facebook", PostID: out.ID}, nil
}
