package gameplay

import (
	"time"

	engineinput "hashhunt/pkg/engine/input"
	"hashhunt/pkg/game/devtools"
	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/renderer"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/zones"
)

// ProcessIntent handles a high-level input intent from the tiered input system.
// Mission intents only queue a request in g.Pending; the front-end runs it. While a mission
// runs, dismiss and quit cancel it instead.
func ProcessIntent(g *state.Game, intent engineinput.Intent) {
	if dir, ok := intent.Direction(); ok {
		if g.Character == nil {
			logMessage(g, i18n.T("NO_CHARACTER"))
			return
		}
		if !MovePlayer(g, dir) {
			logMessage(g, i18n.T("BLOCKED_EDGE"))
		}
		return
	}

	switch intent.Action {
	case engineinput.ActionNone:
		return

	case engineinput.ActionInteract:
		requestZoneMission(g)

	case engineinput.ActionShare:
		if g.Character == nil {
			logMessage(g, i18n.T("NO_CHARACTER"))
			return
		}
		if g.Busy {
			logMessage(g, i18n.T("MISSION_BUSY"))
			return
		}
		g.Pending = &state.Request{Share: true}

	case engineinput.ActionDismiss:
		if CancelMission(g) {
			return
		}
		g.ShowZoneMessage = false
		g.ShowCharacter = false
		g.ShowHelp = false

	case engineinput.ActionCharacter:
		g.ShowCharacter = !g.ShowCharacter

	case engineinput.ActionHelp:
		g.ShowHelp = !g.ShowHelp
		if g.ShowHelp {
			logMessage(g, NextHint(g))
		}

	case engineinput.ActionReset:
		// a running mission would write the old character back
		if g.Busy {
			logMessage(g, i18n.T("MISSION_BUSY"))
			return
		}
		g.Reset()
		logMessage(g, i18n.T("PROGRESS_RESET"))

	case engineinput.ActionDumpMap:
		path, err := devtools.DumpMap(g, devtools.DefaultDumpPath)
		if err != nil {
			logMessage(g, i18n.T("MAP_DUMP_FAILED", err))
			return
		}
		logMessage(g, i18n.T("MAP_DUMPED", path))

	case engineinput.ActionScreenshot:
		viewport := renderer.GetViewportSize()
		origin := Camera(g.Player, viewport, g.Terrain.Size())
		path, err := devtools.SaveScreenshotHTML(g, origin, viewport, time.Now())
		if err != nil {
			logMessage(g, i18n.T("SCREENSHOT_FAILED", err))
			return
		}
		logMessage(g, i18n.T("SCREENSHOT_SAVED", path))

	case engineinput.ActionQuit:
		if CancelMission(g) {
			return
		}
		g.Quit = true
	}
}

func requestZoneMission(g *state.Game) {
	switch {
	case g.Character == nil:
		logMessage(g, i18n.T("NO_CHARACTER"))
	case g.Busy:
		logMessage(g, i18n.T("MISSION_BUSY"))
	case g.CurrentZone == nil:
		logMessage(g, i18n.T("NOTHING_HERE"))
	case g.CurrentZone.Type == zones.TypeChest:
		// chests pay out on their first visit only
		logMessage(g, i18n.T("CHEST_EMPTY"))
	default:
		g.Pending = &state.Request{Zone: *g.CurrentZone}
	}
}

// logMessage adds a message to the game log
func logMessage(g *state.Game, msg string) {
	g.AddMessage(msg)
}
