package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"hashhunt/pkg/game/devtools"
	"hashhunt/pkg/game/gameplay"
	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/renderer"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/zones"
)

// Draw renders the game screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g := e.game
	if g == nil {
		return
	}

	if g.Character == nil {
		e.drawAvatarMenu(screen)
		return
	}

	e.drawMap(screen, g)
	e.drawSidePanel(screen, g)
	e.drawMessages(screen, g)

	if stage, level := g.LevelUp.Stage(); stage != leveling.StageIdle {
		e.drawLevelUp(screen, stage, level)
	}
}

func (e *EbitenRenderer) mapPixels() float32 {
	return float32(e.viewport * e.cellSize)
}

// drawMap draws the viewport: terrain squares, zone markers and the player
func (e *EbitenRenderer) drawMap(screen *ebiten.Image, g *state.Game) {
	size := float32(e.cellSize)
	vector.DrawFilledRect(screen, 0, 0, e.mapPixels(), e.mapPixels(), colorMapBackground, false)

	origin := gameplay.Camera(g.Player, e.viewport, g.Terrain.Size())
	for vy := 0; vy < e.viewport; vy++ {
		for vx := 0; vx < e.viewport; vx++ {
			x, y := origin.X+vx, origin.Y+vy
			if x >= g.Terrain.Size() || y >= g.Terrain.Size() {
				continue
			}
			px, py := float32(vx)*size, float32(vy)*size
			vector.DrawFilledRect(screen, px, py, size, size, e.terrainColors[g.Terrain.At(x, y)], false)
		}
	}

	for _, z := range g.Zones.InRect(origin.X, origin.Y, e.viewport, e.viewport) {
		px, py := float32(z.X-origin.X)*size, float32(z.Y-origin.Y)*size
		e.drawZone(screen, px, py, size, zoneColor(z.Type, g.Visited.Has(z.Key())), devtools.ZoneSymbol(z.Type))
	}

	px := float32(g.Player.X-origin.X) * size
	py := float32(g.Player.Y-origin.Y) * size
	vector.StrokeRect(screen, px+1, py+1, size-2, size-2, 2, colorPlayer, false)
	ebitenutil.DebugPrintAt(screen, "@", int(px+size/2)-3, int(py+size/2)-8)
}

func (e *EbitenRenderer) drawZone(screen *ebiten.Image, px, py, size float32, clr color.Color, symbol byte) {
	inset := size / 6
	vector.DrawFilledRect(screen, px+inset, py+inset, size-2*inset, size-2*inset, clr, false)
	ebitenutil.DebugPrintAt(screen, string(symbol), int(px+size/2)-3, int(py+size/2)-8)
}

func zoneColor(t zones.Type, visited bool) color.RGBA {
	if visited {
		return colorVisited
	}
	return zoneColors[t]
}

// drawSidePanel shows the status, the open panel and the share countdown right of the map
func (e *EbitenRenderer) drawSidePanel(screen *ebiten.Image, g *state.Game) {
	x := int(e.mapPixels()) + panelPadding
	vector.DrawFilledRect(screen, e.mapPixels(), 0, sidePanelWidth, float32(e.windowHeight), colorPanelBackground, false)

	lines := []string{
		fmt.Sprintf("%s  Lv %d", g.Character.Name, g.Character.Level),
	}
	p := g.LevelProgress()
	lines = append(lines,
		fmt.Sprintf("EXP %d/%d", p.ExpInLevel, p.ExpForNextLevel),
		asciiBar(p.Fraction(), 24),
		fmt.Sprintf("Zones %d/%d", g.Visited.Len(), g.Zones.Len()),
		fmt.Sprintf("Position %d,%d", g.Player.X, g.Player.Y),
		"",
	)

	switch {
	case g.ShowHelp:
		lines = append(lines, i18n.T("HELP_TITLE"))
		lines = append(lines, renderer.HelpLines()...)
	case g.ShowCharacter:
		lines = append(lines, renderer.CharacterSheet(g)[1:]...)
	case g.ShowZoneMessage && g.CurrentZone != nil:
		z := *g.CurrentZone
		lines = append(lines, z.Name)
		lines = append(lines, wrap(z.Description, (sidePanelWidth-2*panelPadding)/6)...)
		lines = append(lines, renderer.ZonePanel(z, g.Visited.Has(z.Key()))[2:]...)
	}

	if s := countdownText(g); s != "" {
		lines = append(lines, "", s)
	}

	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, e.FormatText("%s", l), x, panelPadding+i*lineHeight)
	}
}

// drawMessages draws the message log under the map
func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, g *state.Game) {
	top := e.mapPixels()
	vector.DrawFilledRect(screen, 0, top, e.mapPixels(), messagePaneHeight, colorPanelBackground, false)
	if len(g.Messages) == 0 {
		ebitenutil.DebugPrintAt(screen, e.FormatText("%s", i18n.T("NO_MESSAGES")), panelPadding, int(top)+panelPadding)
		return
	}
	for i, msg := range g.Messages {
		ebitenutil.DebugPrintAt(screen, e.FormatText("%s", msg), panelPadding, int(top)+panelPadding+i*lineHeight)
	}
}

// drawLevelUp draws the level-up banner across the middle of the map
func (e *EbitenRenderer) drawLevelUp(screen *ebiten.Image, stage leveling.Stage, level int) {
	msg := e.FormatText("%s", renderer.LevelUpText(stage, level))
	w := float32(len(msg)*6 + 4*panelPadding)
	h := float32(lineHeight + 2*panelPadding)
	x := (e.mapPixels() - w) / 2
	y := (e.mapPixels() - h) / 2

	vector.DrawFilledRect(screen, x, y, w, h, colorPanelBackground, false)
	vector.StrokeRect(screen, x, y, w, h, 2, colorBanner, false)
	ebitenutil.DebugPrintAt(screen, msg, int(x)+2*panelPadding, int(y)+panelPadding)
}

// drawAvatarMenu lists the avatars until the player picks one with a number key
func (e *EbitenRenderer) drawAvatarMenu(screen *ebiten.Image) {
	lines := []string{i18n.T("WELCOME"), "", i18n.T("CHOOSE_AVATAR")}
	for i, a := range leveling.Avatars {
		lines = append(lines, fmt.Sprintf("  %d) %s", i+1, a.Title))
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, e.FormatText("%s", l), 2*panelPadding, 2*panelPadding+i*lineHeight)
	}
}
