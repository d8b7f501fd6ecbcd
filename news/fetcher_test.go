package news

import "testing"

func TestDedupeByURLKeepsFirst(t *testing.T) {
	stories := []*Story{
		{Title: "first", URL: "https://example.com/a"},
		{Title: "second", URL: "https://example.com/b"},
		{Title: "repeat of first", URL: "https://example.com/a"},
	}

	got := dedupeByURL(stories)
	if len(got) != 2 {
		t.Fatalf("dedupeByURL returned %d stories; want 2", len(got))
	}
	if got[0].Title != "first" || got[1].Title != "second" {
		t.Errorf("dedupeByURL kept %q, %q; want the first occurrences", got[0].Title, got[1].Title)
	}
}

func TestDedupeByURLIgnoresEmptyURLs(t *testing.T) {
	stories := []*Story{
		{Title: "one"},
		{Title: "two"},
	}
	if got := dedupeByURL(stories); len(got) != 2 {
		t.Errorf("stories without URLs were collapsed: got %d; want 2", len(got))
	}
}

func TestGenerateIDStable(t *testing.T) {
	a := GenerateID("https://example.com/story")
	b := GenerateID("https://example.com/story")
	c := GenerateID("https://example.com/other")

	if len(a) != 16 {
		t.Errorf("GenerateID length = %d; want 16", len(a))
	}
	if a != b {
		t.Error("GenerateID is not deterministic")
	}
	if a == c {
		t.Error("distinct URLs produced the same ID")
	}
}
