package content

import (
	"fmt"
	"strings"

	"newsreel/config"
)

const bulletinTitle = "📰 Top 5 Breaking News #Shorts"

var (
	bulletinHashtags = []string{"news", "breakingnews", "shorts", "trending", "viral", "top5"}
	narratedHashtags = []string{"news", "breaking", "trending", "viral", "update"}
)

// BulletinMeta builds title, description and hashtags for a bulletin
// video from its headlines. Headlines appear in full, never truncated.
func BulletinMeta(headlines []string) (title, description string, hashtags []string) {
	var b strings.Builder
	b.WriteString("Top 5 trending news stories you need to know!\n\n")
	for i, h := range headlines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, h)
	}
	b.WriteString("\n#News #BreakingNews #Shorts #Trending")
	return bulletinTitle, b.String(), append([]string(nil), bulletinHashtags...)
}

// NarratedMeta builds caption, video title and hashtags for a narrated
// story video from its headline.
func NarratedMeta(headline string) (caption, videoTitle string, hashtags []string) {
	caption = Truncate(headline, 100)

	r := []rune(headline)
	if len(r) > 90 {
		r = r[:90]
	}
	videoTitle = string(r) + " #Shorts"

	return caption, videoTitle, append([]string(nil), narratedHashtags...)
}

// HashtagLine renders up to max tags as "#tag1 #tag2 ...".
func HashtagLine(hashtags []string, max int) string {
	if len(hashtags) > max {
		hashtags = hashtags[:max]
	}
	tags := make([]string, len(hashtags))
	for i, h := range hashtags {
		tags[i] = "#" + strings.TrimPrefix(h, "#")
	}
	return strings.Join(tags, " ")
}

// InstagramCaption joins caption and hashtags under the platform's
// caption length and hashtag count limits.
func InstagramCaption(caption string, hashtags []string) string {
	full := caption
	if line := HashtagLine(hashtags, config.MaxHashtags); line != "" {
		full += "\n\n" + line
	}
	return Truncate(full, config.MaxCaptionLength)
}

// Truncate shortens s to at most max runes, marking a cut with "...".
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
