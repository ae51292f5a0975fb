// Package renderer defines the rendering backend contract and the markup and panel text shared
// by every backend.
//
// Messages carry inline markup of the form NAME{operand}: ZONE, ITEM, ACTION, DENIED, SUBTLE,
// EXP and LEVEL select a TextStyle for the operand, and GT{KEY} inserts a catalogue message.
// Backends turn the markup into colours; StripMarkup removes it.
package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"hashhunt/pkg/engine/input"
	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/storage"
	"hashhunt/pkg/game/zones"
)

// DefaultViewport is used when no renderer is active
const DefaultViewport = 25

var markupRe = regexp.MustCompile(`([A-Z]+)\{([^{}]*)\}`)

var markupStyles = map[string]TextStyle{
	"ZONE":   StyleZone,
	"ITEM":   StyleItem,
	"ACTION": StyleAction,
	"DENIED": StyleDenied,
	"SUBTLE": StyleSubtle,
	"EXP":    StyleExp,
	"LEVEL":  StyleLevel,
}

func sprintf(msg string, args ...any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// ApplyMarkup formats msg with args and replaces every markup span with style(operand).
// ACTION spans get StyleActionShort on their first rune, like a keyboard hint.
// Unknown function names are left untouched.
func ApplyMarkup(style func(text string, s TextStyle) string, msg string, args ...any) string {
	return markupRe.ReplaceAllStringFunc(sprintf(msg, args...), func(span string) string {
		m := markupRe.FindStringSubmatch(span)
		fn, operand := m[1], m[2]
		if fn == "GT" {
			return i18n.T(operand)
		}
		s, ok := markupStyles[fn]
		if !ok {
			return span
		}
		if s == StyleAction && operand != "" {
			r := []rune(operand)
			return style(string(r[0]), StyleActionShort) + style(string(r[1:]), StyleAction)
		}
		return style(operand, s)
	})
}

// StripMarkup removes markup, keeping the operands
func StripMarkup(msg string) string {
	return ApplyMarkup(func(text string, _ TextStyle) string { return text }, "%s", msg)
}

// ProgressBar draws fraction (clamped to [0, 1]) as a width-rune bar
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// StatusLine summarises the character, level progress and exploration
func StatusLine(g *state.Game) string {
	if g.Character == nil {
		return i18n.T("STATUS_NO_CHARACTER")
	}
	c := g.Character
	p := g.LevelProgress()
	return i18n.T("STATUS_LINE",
		c.Avatar, c.Name, c.Level,
		p.ExpInLevel, p.ExpForNextLevel, ProgressBar(p.Fraction(), 10),
		g.Visited.Len(), g.Zones.Len(), int(g.VisitProgress()*100))
}

// MissionLines lists progress for each mission kind
func MissionLines(p storage.MissionProgress) []string {
	line := func(key string, c storage.MissionCount) string {
		mark := "SUBTLE{○}"
		if c.Done() {
			mark = "EXP{●}"
		}
		return i18n.T("MISSION_LINE", mark, i18n.T(key), c.Completed, c.Total)
	}
	return []string{
		line("MISSION_SWAP", p.Swap),
		line("MISSION_ADVANCED_SWAP", p.AdvancedSwap),
		line("MISSION_LIMIT_ORDER", p.LimitOrder),
		line("MISSION_SHARE", p.Share),
	}
}

// ZonePanel describes the zone the player is standing on
func ZonePanel(z zones.Zone, visited bool) []string {
	lines := []string{
		i18n.T("ZONE_TITLE", z.Icon, z.Name),
		z.Description,
	}
	if z.Type == zones.TypeChest {
		if visited {
			lines = append(lines, i18n.T("ZONE_CHEST_OPENED"))
		}
		return lines
	}
	return append(lines, i18n.T("ZONE_ACTION", ActionLabel(z.Type)))
}

// ActionLabel names the mission a zone type starts
func ActionLabel(t zones.Type) string {
	switch t {
	case zones.TypeSwap:
		return i18n.T("MISSION_SWAP")
	case zones.TypeAdvancedSwap:
		return i18n.T("MISSION_ADVANCED_SWAP")
	case zones.TypeLimitOrder:
		return i18n.T("MISSION_LIMIT_ORDER")
	case zones.TypeBoss:
		return i18n.T("MISSION_BOSS")
	case zones.TypeChest:
		return i18n.T("MISSION_CHEST")
	}
	return string(t)
}

// CharacterSheet lists the character's stats and mission progress
func CharacterSheet(g *state.Game) []string {
	if g.Character == nil {
		return []string{i18n.T("STATUS_NO_CHARACTER")}
	}
	c := g.Character
	p := g.LevelProgress()
	lines := []string{
		i18n.T("SHEET_TITLE", c.Avatar, c.Name),
		i18n.T("SHEET_LEVEL", c.Level),
		i18n.T("SHEET_EXP", p.ExpInLevel, p.ExpForNextLevel, ProgressBar(p.Fraction(), 20)),
		i18n.T("SHEET_ZONES", g.Visited.Len(), g.Zones.Len()),
		i18n.T("SHEET_SHARES", g.Shares),
	}
	return append(lines, MissionLines(g.Progress)...)
}

var helpOrder = []input.Action{
	input.ActionMoveUp,
	input.ActionMoveDown,
	input.ActionMoveLeft,
	input.ActionMoveRight,
	input.ActionInteract,
	input.ActionDismiss,
	input.ActionCharacter,
	input.ActionShare,
	input.ActionHelp,
	input.ActionScreenshot,
	input.ActionDumpMap,
	input.ActionReset,
	input.ActionQuit,
}

// HelpLines lists every action with its key bindings
func HelpLines() []string {
	byAction := input.GetBindingsByAction()
	lines := make([]string, 0, len(helpOrder))
	for _, a := range helpOrder {
		codes := byAction[a]
		if len(codes) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("ACTION{%s}: %s", strings.Join(codes, ", "), input.ActionName(a)))
	}
	return lines
}

// LevelUpText is the banner for the current level-up stage, empty when idle
func LevelUpText(stage leveling.Stage, level int) string {
	switch stage {
	case leveling.StageBanner:
		return i18n.T("LEVEL_UP")
	case leveling.StageParticles:
		return i18n.T("LEVEL_UP") + " ✨"
	case leveling.StageLevelNumber:
		return i18n.T("LEVEL_UP_NUMBER", level)
	}
	return ""
}
