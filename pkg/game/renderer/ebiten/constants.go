package ebiten

import (
	"image/color"

	gcolor "github.com/gookit/color"

	"hashhunt/pkg/game/zones"
)

// Color palette for the game
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground   = color.RGBA{15, 15, 26, 255}    // Darker for map area
	colorPlayer          = color.RGBA{255, 255, 255, 255} // White outline
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
	colorVisited         = color.RGBA{120, 120, 140, 255}
	colorBanner          = color.RGBA{250, 204, 21, 255}
)

var zoneColors = map[zones.Type]color.RGBA{
	zones.TypeSwap:         {59, 130, 246, 255},
	zones.TypeAdvancedSwap: {168, 85, 247, 255},
	zones.TypeLimitOrder:   {16, 185, 129, 255},
	zones.TypeBoss:         {239, 68, 68, 255},
	zones.TypeChest:        {234, 179, 8, 255},
}

// Panel sizes in pixels
const (
	sidePanelWidth    = 320
	messagePaneHeight = 112
	lineHeight        = 16 // debug font glyphs are 6x16
	panelPadding      = 8
)

// hexColor converts "#rrggbb" to an opaque colour; a malformed value gives black
func hexColor(hex string) color.RGBA {
	rgb := gcolor.HexToRgb(hex)
	if len(rgb) != 3 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), 255}
}
