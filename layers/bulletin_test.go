package layers

import (
	"image/color"
	"testing"
)

func boardFonts() BoardFonts {
	return BoardFonts{Header: testFace, Title: testFace, Number: testFace}
}

func TestBadgeColorCycles(t *testing.T) {
	cases := []struct {
		rank int
		want color.NRGBA
	}{
		{1, color.NRGBA{255, 59, 48, 255}},
		{2, color.NRGBA{255, 149, 0, 255}},
		{3, color.NRGBA{255, 204, 0, 255}},
		{4, color.NRGBA{52, 199, 89, 255}},
		{5, color.NRGBA{0, 122, 255, 255}},
		{6, color.NRGBA{255, 59, 48, 255}},
		{10, color.NRGBA{0, 122, 255, 255}},
	}
	for _, c := range cases {
		if got := BadgeColor(c.rank); got != c.want {
			t.Fatalf("BadgeColor(%d) = %v; want %v", c.rank, got, c.want)
		}
	}
}

func TestRenderBoardBannerAndBadges(t *testing.T) {
	items := []Item{
		{Rank: 1, Title: "First story"},
		{Rank: 2, Title: "Second story"},
		{Rank: 3, Title: "Third story"},
		{Rank: 4, Title: "Fourth story"},
		{Rank: 5, Title: "Fifth story"},
	}
	img := RenderBoard(items, boardFonts(), 1080, 1920)

	if got := img.NRGBAAt(5, 5); got != (color.NRGBA{200, 0, 0, 255}) {
		t.Fatalf("banner pixel = %v; want red", got)
	}

	bandHeight := (1920 - boardMargins) / 5
	for i, item := range items {
		yCenter := boardTopMargin + i*bandHeight + bandHeight/2
		// Sample left of the rank numeral, still inside the badge circle.
		got := img.NRGBAAt(boardCardMargin+50-30, yCenter)
		if got != BadgeColor(item.Rank) {
			t.Fatalf("badge %d pixel = %v; want %v", item.Rank, got, BadgeColor(item.Rank))
		}
	}
}

func TestRenderBoardCardIsTranslucent(t *testing.T) {
	img := RenderBoard([]Item{{Rank: 1, Title: "Only story"}}, boardFonts(), 1080, 1920)

	bandHeight := (1920 - boardMargins) / 5
	yCenter := boardTopMargin + bandHeight/2
	// Right half of the card holds only title text near yCenter; sample
	// below the text block where the card fill shows through.
	got := img.NRGBAAt(900, yCenter+bandHeight/2-boardCardInset-10)
	if got != (color.NRGBA{0, 0, 0, 160}) {
		t.Fatalf("card pixel = %v; want translucent black", got)
	}
}

func TestRenderBoardCapsAtFiveItems(t *testing.T) {
	items := make([]Item, 7)
	for i := range items {
		items[i] = Item{Rank: i + 1, Title: "story"}
	}
	img := RenderBoard(items, boardFonts(), 1080, 1920)

	// The fifth card bottoms out near y=1789; anything drawn for items
	// six and seven would land below it.
	bandHeight := (1920 - boardMargins) / 5
	fifthCardBottom := boardTopMargin + 4*bandHeight + bandHeight/2 + (bandHeight-boardCardInset)/2 + 2
	for y := fifthCardBottom + 1; y < 1920; y++ {
		if got := img.NRGBAAt(boardCardMargin+50, y); got.A != 0 {
			t.Fatalf("found ink %v at y=%d beyond the fifth band", got, y)
		}
	}
}
