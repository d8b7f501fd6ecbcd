package layers

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/font"
)

// Item is one headline on a bulletin board. Rank is 1-based and picks
// the badge color.
type Item struct {
	Rank  int
	Title string
}

// BoardFonts carries the three faces a bulletin board needs.
type BoardFonts struct {
	Header font.Face
	Title  font.Face
	Number font.Face
}

const (
	boardHeaderText   = "TOP 5 BREAKING NEWS"
	boardHeaderHeight = 140
	boardTopMargin    = 180
	boardMargins      = 300
	boardCardInset    = 25
	boardCardMargin   = 40
	boardBadgeSize    = 80
	boardTitleLine    = 60
)

// RenderBoard draws all items onto one transparent canvas: a red banner
// header, then one band per item with a translucent card, a colored
// rank badge and the wrapped title to its right. Every band is the same
// height so up to five items divide the canvas evenly.
func RenderBoard(items []Item, fonts BoardFonts, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}

	// Banner
	fillRect(img, image.Rect(0, 0, width, boardHeaderHeight), color.NRGBA{200, 0, 0, 255})
	headerW := textWidth(fonts.Header, boardHeaderText)
	drawOutlined(img, fonts.Header, boardHeaderText, (width-headerW)/2, 30, white, black, 3)

	bandHeight := (height - boardMargins) / 5

	for idx, item := range items {
		if idx >= 5 {
			break
		}
		yCenter := boardTopMargin + idx*bandHeight + bandHeight/2

		// Card
		cardHeight := bandHeight - boardCardInset
		cardY := yCenter - cardHeight/2
		card := image.Rect(boardCardMargin, cardY, width-boardCardMargin, cardY+cardHeight)
		fillRect(img, card, color.NRGBA{0, 0, 0, 160})
		strokeRect(img, card, color.NRGBA{255, 255, 255, 30}, 2)

		// Badge
		badgeX := boardCardMargin + 50
		fillCircle(img, badgeX, yCenter, boardBadgeSize/2, BadgeColor(item.Rank))

		number := strconv.Itoa(item.Rank)
		numW := textWidth(fonts.Number, number)
		numH := fonts.Number.Metrics().CapHeight.Ceil()
		drawOutlined(img, fonts.Number, number, badgeX-numW/2, yCenter-numH/2-5, white, black, 2)

		// Title
		textX := badgeX + 70
		maxTextWidth := width - textX - boardCardMargin - 30
		lines := Wrap(item.Title, fonts.Title, maxTextWidth)
		textStartY := yCenter - len(lines)*boardTitleLine/2
		for i, line := range lines {
			drawOutlined(img, fonts.Title, line, textX, textStartY+i*boardTitleLine, white, black, 2)
		}
	}
	return img
}
