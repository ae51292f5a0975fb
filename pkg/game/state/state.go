// Package state holds the in-memory game session that renderers draw and gameplay mutates.
package state

import (
	"context"

	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/storage"
	"hashhunt/pkg/game/terrain"
	"hashhunt/pkg/game/visits"
	"hashhunt/pkg/game/zones"
)

const maxMessages = 5

// Request is a mission the player asked for. The front-end collects its parameters, runs it and
// clears Game.Pending.
type Request struct {
	Zone  zones.Zone
	Share bool // a social share, which has no zone
}

// Game is the session state. It is owned by the render loop goroutine.
type Game struct {
	Terrain *terrain.Map
	Zones   *zones.Registry
	Store   *storage.GameStorage
	Policy  leveling.Policy

	Player          world.Position
	CurrentZone     *zones.Zone
	ShowZoneMessage bool
	Visited         visits.Set

	// Character is nil until the player has picked a name and avatar
	Character *leveling.Character
	Progress  storage.MissionProgress
	Shares    int

	Messages []string

	Pending   *Request
	Busy      bool // a mission is running
	Countdown int  // seconds left in a share verification
	LevelUp   *leveling.Sequence

	// CancelMission stops the running mission; nil when none runs
	CancelMission context.CancelFunc

	ShowCharacter bool
	ShowHelp      bool
	Quit          bool
}

// NewGame builds a session over the given world and hydrates player data from store
func NewGame(m *terrain.Map, reg *zones.Registry, store *storage.GameStorage, policy leveling.Policy) *Game {
	g := &Game{
		Terrain:  m,
		Zones:    reg,
		Store:    store,
		Policy:   policy,
		Messages: make([]string, 0, maxMessages),
		LevelUp:  leveling.NewSequence(leveling.DefaultTimings),
	}
	g.Load()
	return g
}

// Load replaces every persisted field with the value in storage
func (g *Game) Load() {
	g.Apply(g.Store.Snapshot())
}

// Apply copies a storage snapshot into the session. The current zone is re-derived from the
// new position so a move made in another process is reflected here.
func (g *Game) Apply(s storage.Snapshot) {
	g.Character = s.Character
	g.Progress = s.Missions
	g.Shares = s.Shares
	g.Visited = s.Visited
	g.Player = s.Position
	if !g.Player.InBounds(g.Terrain.Size()) {
		g.Player = storage.DefaultPosition
	}
	if z, ok := g.Zones.At(g.Player); ok {
		if g.CurrentZone == nil || g.CurrentZone.Key() != z.Key() {
			g.CurrentZone = &z
			g.ShowZoneMessage = true
		}
	} else {
		g.CurrentZone = nil
		g.ShowZoneMessage = false
	}
}

// Snapshot returns the persisted fields as this session currently holds them
func (g *Game) Snapshot() storage.Snapshot {
	s := storage.Snapshot{
		Position: g.Player,
		Visited:  g.Visited,
		Shares:   g.Shares,
		Missions: g.Progress,
	}
	if g.Character != nil {
		c := *g.Character
		s.Character = &c
	}
	return s
}

// SetCharacter stores a new or updated character
func (g *Game) SetCharacter(c leveling.Character) {
	g.Character = &c
	g.Store.SaveCharacter(c)
}

// VisitProgress is the fraction of zones visited
func (g *Game) VisitProgress() float64 {
	return g.Visited.Progress(g.Zones.Len())
}

// LevelProgress describes the character's position in its level, zero without a character
func (g *Game) LevelProgress() leveling.Progress {
	if g.Character == nil {
		return leveling.Progress{}
	}
	return g.Policy.Progress(*g.Character)
}

// Reset clears all stored progress and returns the session to a fresh start
func (g *Game) Reset() {
	g.Store.ClearAll()
	g.LevelUp.Stop()
	g.Pending = nil
	g.Countdown = 0
	g.CurrentZone = nil
	g.ShowZoneMessage = false
	g.ShowCharacter = false
	g.Load()
	g.ClearMessages()
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0, maxMessages)
}
