package publish

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"newsreel/config"
	"newsreel/content"
)

const (
	youtubeDescriptionLimit = 5000
	youtubeMaxTags          = 10
)

// YouTube uploads Shorts to the channel that issued the refresh token.
// A service account cannot upload to a normal channel, which is why the
// flow runs on the channel owner's OAuth credentials.
type YouTube struct {
	service *youtube.Service
}

var _ Publisher = (*YouTube)(nil)

// NewYouTube builds an uploader from OAuth refresh-token credentials.
func NewYouTube(ctx context.Context, clientID, clientSecret, refreshToken string) (*YouTube, error) {
	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, errors.New("youtube credentials not configured")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope},
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	service, err := youtube.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &YouTube{service: service}, nil
}

func (y *YouTube) Name() string { return "youtube" }

func (y *YouTube) Publish(ctx context.Context, post Post) (Result, error) {
	file, err := os.Open(post.VideoPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat video file: %w", err)
	}

	log.Printf("📤 Uploading: %s (%.2f MB)", post.VideoPath, float64(fileInfo.Size())/(1024*1024))

	title, description, tags := youtubeMeta(post)
	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       title,
			Description: description,
			Tags:        tags,
			CategoryId:  config.YouTubeCategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           config.YouTubePrivacyStatus,
			SelfDeclaredMadeForKids: false,
		},
	}

	call := y.service.Videos.Insert([]string{"snippet", "status"}, video)
	call = call.Media(file).Context(ctx)

	response, err := call.Do()
	if err != nil {
		return Result{}, fmt.Errorf("failed to upload video: %w", err)
	}

	log.Printf("✅ Uploaded! https://youtube.com/shorts/%s", response.Id)
	return Result{
		Platform: "youtube",
		PostID:   response.Id,
		URL:      "https://youtube.com/shorts/" + response.Id,
	}, nil
}

// youtubeMeta finalizes snippet fields: #Shorts in the title, hashtags
// appended to the description, platform limits applied.
func youtubeMeta(post Post) (title, description string, tags []string) {
	title = post.Title
	if !strings.Contains(title, "#Shorts") {
		title += " #Shorts"
	}
	title = content.Truncate(title, config.MaxTitleLength)

	description = post.Description
	if line := content.HashtagLine(post.Hashtags, youtubeMaxTags); line != "" {
		description += "\n\n" + line
	}
	description += "\n\n#Shorts"
	description = content.Truncate(description, youtubeDescriptionLimit)

	tags = post.Hashtags
	if len(tags) > youtubeMaxTags {
		tags = tags[:youtubeMaxTags]
	}
	return title, description, tags
}
