// Package gameplay provides core game logic for player movement and interactions.
package gameplay

import (
	"errors"
	"fmt"

	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/zones"
)

// ErrInvalidDirection is returned for a direction other than up, down, left or right
var ErrInvalidDirection = errors.New("invalid direction")

// ParseDirection converts a direction name, wrapping ErrInvalidDirection on failure
func ParseDirection(s string) (world.Direction, error) {
	d, err := world.ParseDirection(s)
	if err != nil {
		return d, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// Move returns the position one step from pos in dir. A step that would leave
// [0, gridSize) on either axis is rejected: pos is returned unchanged with false.
func Move(pos world.Position, dir world.Direction, gridSize int) (world.Position, bool) {
	if !dir.IsValid() {
		return pos, false
	}
	next := pos.Step(dir)
	if !next.InBounds(gridSize) {
		return pos, false
	}
	return next, true
}

// Camera returns the top-left cell of a viewport x viewport window that keeps player centred
// except near the grid edges
func Camera(player world.Position, viewport, gridSize int) world.Position {
	return world.Position{
		X: cameraAxis(player.X, viewport, gridSize),
		Y: cameraAxis(player.Y, viewport, gridSize),
	}
}

func cameraAxis(p, viewport, gridSize int) int {
	return clamp(p-viewport/2, 0, max(gridSize-viewport, 0))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ViewportSize returns how many cells fit along the shorter side of a width x height pixel area,
// capped at maxCells and gridSize and never below 1
func ViewportSize(width, height, cellSize, maxCells, gridSize int) int {
	if cellSize <= 0 {
		cellSize = 1
	}
	n := min(width/cellSize, height/cellSize)
	if maxCells > 0 {
		n = min(n, maxCells)
	}
	n = min(n, gridSize)
	return max(n, 1)
}

// MovePlayer moves the player one tile, saves the new position and updates the current zone.
// Entering a zone marks it visited; a chest entered for the first time queues its reward.
func MovePlayer(g *state.Game, dir world.Direction) bool {
	next, ok := Move(g.Player, dir, g.Terrain.Size())
	if !ok {
		return false
	}
	g.Player = next
	g.Store.SaveMapPosition(next)

	z, found := g.Zones.At(next)
	if !found {
		g.CurrentZone = nil
		g.ShowZoneMessage = false
		return true
	}

	firstVisit := !g.Visited.Has(z.Key())
	g.CurrentZone = &z
	g.ShowZoneMessage = true
	if firstVisit {
		g.Visited = g.Visited.With(z)
		g.Store.SaveVisitedZones(g.Visited)
		logMessage(g, i18n.T("ZONE_DISCOVERED", z.Icon, z.Name, g.Visited.Len(), g.Zones.Len()))
	} else {
		logMessage(g, i18n.T("ZONE_ENTERED", z.Icon, z.Name))
	}

	if z.Type == zones.TypeChest && firstVisit && g.Character != nil {
		g.Pending = &state.Request{Zone: z}
	}
	return true
}
