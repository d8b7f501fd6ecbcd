package config

import "time"

// Video Output Constants
const (
	// VideoWidth is the output video width (9:16 aspect ratio)
	VideoWidth = 1080

	// VideoHeight is the output video height (9:16 aspect ratio)
	VideoHeight = 1920

	// VideoFPS is the output frame rate
	VideoFPS = 30

	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec
	AudioCodec = "aac"

	// VideoBitrate is the constant video bitrate target
	VideoBitrate = "5000k"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "192k"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "medium"
)

// Timing Constants
const (
	// SpeakingRate converts word counts to seconds (words per second)
	SpeakingRate = 2.5

	// HookWindow reserves the opening seconds for the hook overlay
	HookWindow = 3.5

	// MinSentenceDuration clamps auto-generated caption durations (seconds)
	MinSentenceDuration = 2.0

	// MaxSentenceDuration clamps auto-generated caption durations (seconds)
	MaxSentenceDuration = 6.0
)

// Bulletin Constants
const (
	// BulletinItemCount is the fixed number of items on a bulletin board
	BulletinItemCount = 5

	// BulletinDuration is the fixed bulletin video length in seconds
	BulletinDuration = 20.0
)

// Processing Constants
const (
	// RemoteFetchTimeout bounds a single remote asset download
	RemoteFetchTimeout = 30 * time.Second

	// PublishTimeout bounds a single upload to a publishing platform
	PublishTimeout = 5 * time.Minute
)

// Instagram Constants
const (
	// MaxCaptionLength is Instagram's caption character limit
	MaxCaptionLength = 2200

	// MaxHashtags is Instagram's hashtag limit per post
	MaxHashtags = 30
)

// YouTube Constants
const (
	// YouTubeCategoryID for News & Politics
	YouTubeCategoryID = "25"

	// YouTubePrivacyStatus sets video visibility
	YouTubePrivacyStatus = "public"

	// MaxTitleLength is the maximum character length for video titles
	MaxTitleLength = 100
)
