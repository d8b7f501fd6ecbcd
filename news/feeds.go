package news

// DefaultFeedPreset is used when no feed is configured.
const DefaultFeedPreset = "st"

// FeedPresets maps friendly names to RSS feed URLs.
var FeedPresets = map[string]string{
	"cna": "https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml",
	"st":  "https://www.straitstimes.com/news/singapore/rss.xml",
	"hn":  "https://hnrss.org/newest",
	"tr":  "https://www.technologyreview.com/feed/",
}

// ResolveFeedURL resolves a feed identifier to a URL. A preset name
// maps to its URL; anything else is taken as a direct URL.
func ResolveFeedURL(feedInput string) string {
	if url, exists := FeedPresets[feedInput]; exists {
		return url
	}
	return feedInput
}

// ResolveFeeds maps a list of preset names or URLs to feed URLs.
func ResolveFeeds(inputs []string) []string {
	urls := make([]string, 0, len(inputs))
	for _, in := range inputs {
		urls = append(urls, ResolveFeedURL(in))
	}
	return urls
}
