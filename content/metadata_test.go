package content

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBulletinMeta(t *testing.T) {
	headlines := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}
	title, description, hashtags := BulletinMeta(headlines)

	if title != "📰 Top 5 Breaking News #Shorts" {
		t.Errorf("title = %q", title)
	}
	for i, h := range headlines {
		line := fmt.Sprintf("%d. %s", i+1, h)
		if !strings.Contains(description, line) {
			t.Errorf("description missing %q", line)
		}
	}
	if !strings.Contains(description, "#News #BreakingNews #Shorts #Trending") {
		t.Error("description missing the tag line")
	}
	if len(hashtags) != 6 || hashtags[0] != "news" {
		t.Errorf("hashtags = %v", hashtags)
	}
}

func TestNarratedMetaShortHeadline(t *testing.T) {
	caption, videoTitle, hashtags := NarratedMeta("GST hike confirmed")

	if caption != "GST hike confirmed" {
		t.Errorf("caption = %q", caption)
	}
	if videoTitle != "GST hike confirmed #Shorts" {
		t.Errorf("videoTitle = %q", videoTitle)
	}
	if len(hashtags) == 0 {
		t.Error("hashtags empty")
	}
}

func TestNarratedMetaLongHeadline(t *testing.T) {
	long := strings.Repeat("a", 120)
	caption, videoTitle, _ := NarratedMeta(long)

	if utf8.RuneCountInString(caption) != 100 || !strings.HasSuffix(caption, "...") {
		t.Errorf("caption = %q (%d runes)", caption, utf8.RuneCountInString(caption))
	}
	if utf8.RuneCountInString(videoTitle) != 98 || !strings.HasSuffix(videoTitle, " #Shorts") {
		t.Errorf("videoTitle = %q (%d runes)", videoTitle, utf8.RuneCountInString(videoTitle))
	}
}

func TestHashtagLine(t *testing.T) {
	got := HashtagLine([]string{"news", "#viral", "update"}, 2)
	if got != "#news #viral" {
		t.Errorf("HashtagLine = %q; want %q", got, "#news #viral")
	}
	if HashtagLine(nil, 5) != "" {
		t.Error("empty tags should render an empty line")
	}
}

func TestInstagramCaptionLimits(t *testing.T) {
	tags := make([]string, 35)
	for i := range tags {
		tags[i] = fmt.Sprintf("tag%d", i)
	}

	got := InstagramCaption(strings.Repeat("x", 3000), tags)
	if n := utf8.RuneCountInString(got); n != 2200 {
		t.Errorf("caption length = %d runes; want 2200", n)
	}

	short := InstagramCaption("hello", tags)
	if n := strings.Count(short, "#"); n != 30 {
		t.Errorf("hashtag count = %d; want 30", n)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		s    string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this runs far too long", 10, "this ru..."},
		{"ab", 1, "a"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.s, tc.max); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q; want %q", tc.s, tc.max, got, tc.want)
		}
	}
}
