package gameplay

import (
	"strings"
	"time"

	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/storage"
	"hashhunt/pkg/game/terrain"
	"hashhunt/pkg/game/zones"
)

// BuildGame generates the terrain for seed (0 picks a time-based seed), loads the zone registry
// and hydrates the session from store
func BuildGame(seed int64, store *storage.GameStorage, policy leveling.Policy) (*state.Game, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := state.NewGame(terrain.NewSeeded(seed), zones.Default(), store, policy)
	Welcome(g)
	return g, seed
}

// Welcome replaces the message log with a greeting
func Welcome(g *state.Game) {
	g.ClearMessages()
	if g.Character == nil {
		logMessage(g, i18n.T("WELCOME"))
		return
	}
	logMessage(g, i18n.T("WELCOME_BACK", g.Character.Avatar, g.Character.Name, g.Character.Level))
	logMessage(g, NextHint(g))
}

// CreateCharacter stores a level 0 character with the chosen name and avatar. A blank name
// falls back to the avatar title.
func CreateCharacter(g *state.Game, name string, avatarIndex int) leveling.Character {
	avatar := leveling.AvatarByIndex(avatarIndex)
	name = strings.TrimSpace(name)
	if name == "" {
		name = avatar.Title
	}
	c := leveling.NewCharacter(name, avatar.Emoji, g.Policy)
	g.SetCharacter(c)
	Welcome(g)
	return c
}

// ApplySnapshot folds in a storage change made by another process. Snapshots that match the
// session, such as the echo of its own writes, are ignored and false is returned. So are
// snapshots taken while a mission runs, since its writes reach storage before FinishMission
// reaches the game.
func ApplySnapshot(g *state.Game, s storage.Snapshot) bool {
	if g.Busy || s.Equal(g.Snapshot()) {
		return false
	}
	before := g.Character
	g.Apply(s)
	if before != nil && g.Character != nil && g.Character.Level > before.Level {
		g.LevelUp.Start(g.Character.Level, nil)
	}
	logMessage(g, i18n.T("SYNCED"))
	return true
}
