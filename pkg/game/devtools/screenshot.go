package devtools

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/renderer"
	"hashhunt/pkg/game/state"
)

const screenshotHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>HashHunt - Screenshot</title>
    <style>
        body { background-color: #1a1a2e; color: #eee; font-family: 'Courier New', monospace; padding: 20px; }
        .header { color: #bb86fc; font-size: 18px; margin-bottom: 10px; }
        .map { display: grid; gap: 1px; margin: 20px 0; }
        .cell { width: 24px; height: 24px; text-align: center; line-height: 24px; font-size: 16px; }
        .player { outline: 2px solid #fff; }
        .visited { opacity: 0.6; }
        .status { color: #888; }
        .message { color: #ccc; margin: 5px 0; }
    </style>
</head>
<body>
`

// WriteScreenshotHTML renders the viewport x viewport window starting at origin as an HTML grid
// of terrain-coloured cells with zone icons and the player avatar
func WriteScreenshotHTML(w io.Writer, g *state.Game, origin world.Position, viewport int) error {
	var b strings.Builder
	b.WriteString(screenshotHead)

	name, avatar, level := "?", "@", 0
	if g.Character != nil {
		name, avatar, level = g.Character.Name, g.Character.Avatar, g.Character.Level
	}
	fmt.Fprintf(&b, "    <div class=\"header\">%s %s &middot; level %d</div>\n", html.EscapeString(avatar), html.EscapeString(name), level)
	fmt.Fprintf(&b, "    <div class=\"status\">position %d,%d &middot; zones %d/%d</div>\n", g.Player.X, g.Player.Y, g.Visited.Len(), g.Zones.Len())

	fmt.Fprintf(&b, "    <div class=\"map\" style=\"grid-template-columns: repeat(%d, 24px)\">\n", viewport)
	for y := origin.Y; y < origin.Y+viewport; y++ {
		for x := origin.X; x < origin.X+viewport; x++ {
			t := g.Terrain.At(x, y)
			class, icon := "cell", ""
			if z, ok := g.Zones.At(world.Position{X: x, Y: y}); ok {
				icon = z.Icon
				if g.Visited.Has(z.Key()) {
					class += " visited"
				}
			}
			if g.Player.X == x && g.Player.Y == y {
				class += " player"
				icon = avatar
			}
			fmt.Fprintf(&b, "        <div class=\"%s\" style=\"background-color:%s\" title=\"%d,%d %s\">%s</div>\n",
				class, t.Color(), x, y, t, html.EscapeString(icon))
		}
	}
	b.WriteString("    </div>\n")

	for _, msg := range g.Messages {
		fmt.Fprintf(&b, "    <div class=\"message\">%s</div>\n", html.EscapeString(renderer.StripMarkup(msg)))
	}
	b.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveScreenshotHTML writes a timestamped screenshot file in the working directory
func SaveScreenshotHTML(g *state.Game, origin world.Position, viewport int, now time.Time) (string, error) {
	filename := fmt.Sprintf("screenshot-%s.html", now.Format("20060102-150405"))
	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("create screenshot: %w", err)
	}
	if err := WriteScreenshotHTML(f, g, origin, viewport); err != nil {
		f.Close()
		return "", err
	}
	return filename, f.Close()
}
