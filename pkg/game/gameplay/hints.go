package gameplay

import (
	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/zones"
)

// NearestUnvisited returns the unvisited zone closest to the player by Manhattan distance.
// Ties go to the zone listed first in the registry.
func NearestUnvisited(g *state.Game) (zones.Zone, int, bool) {
	var best zones.Zone
	bestDist := -1
	for _, z := range g.Zones.All() {
		if g.Visited.Has(z.Key()) {
			continue
		}
		d := abs(z.X-g.Player.X) + abs(z.Y-g.Player.Y)
		if bestDist < 0 || d < bestDist {
			best, bestDist = z, d
		}
	}
	return best, bestDist, bestDist >= 0
}

// NextHint points the player at the nearest unvisited zone
func NextHint(g *state.Game) string {
	z, dist, ok := NearestUnvisited(g)
	if !ok {
		return i18n.T("HINT_ALL_VISITED")
	}
	return i18n.T("HINT_NEAREST", z.Icon, z.Name, dist, heading(g.Player, z.Position()))
}

// heading describes the compass direction from one position to another, e.g. "up-left"
func heading(from, to world.Position) string {
	v, h := "", ""
	switch {
	case to.Y < from.Y:
		v = world.Up.String()
	case to.Y > from.Y:
		v = world.Down.String()
	}
	switch {
	case to.X < from.X:
		h = world.Left.String()
	case to.X > from.X:
		h = world.Right.String()
	}
	if v != "" && h != "" {
		return v + "-" + h
	}
	return v + h
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
