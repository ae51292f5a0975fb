// Package zones holds the static registry of special map tiles that start missions.
package zones

import (
	"fmt"

	"hashhunt/pkg/engine/world"
)

// Type is the kind of mission a zone starts
type Type string

const (
	TypeSwap         Type = "swap"
	TypeAdvancedSwap Type = "advanced-swap"
	TypeLimitOrder   Type = "limit-order"
	TypeBoss         Type = "boss"
	TypeChest        Type = "chest"
)

// Zone is a fixed map coordinate tagged with a mission type
type Zone struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Type        Type   `json:"type"`
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// Position returns the zone coordinate
func (z Zone) Position() world.Position {
	return world.Position{X: z.X, Y: z.Y}
}

// Key returns the "x-y" identifier used by the visit tracker
func (z Zone) Key() string {
	return z.Position().Key()
}

// Registry is an ordered, read-only list of zones
type Registry struct {
	zones []Zone
}

// NewRegistry copies zones into a new registry
func NewRegistry(zs []Zone) *Registry {
	cp := make([]Zone, len(zs))
	copy(cp, zs)
	return &Registry{zones: cp}
}

// Default returns the registry of the standard world
func Default() *Registry {
	return NewRegistry(defaultZones)
}

// All returns a copy of every zone in registry order
func (r *Registry) All() []Zone {
	cp := make([]Zone, len(r.zones))
	copy(cp, r.zones)
	return cp
}

// Len returns the number of zones
func (r *Registry) Len() int {
	return len(r.zones)
}

// At returns the zone at the given position
func (r *Registry) At(p world.Position) (Zone, bool) {
	for _, z := range r.zones {
		if z.X == p.X && z.Y == p.Y {
			return z, true
		}
	}
	return Zone{}, false
}

// InRect returns zones inside the w×h rectangle whose top-left corner is x/y
func (r *Registry) InRect(x, y, w, h int) []Zone {
	var out []Zone
	for _, z := range r.zones {
		if z.X >= x && z.X < x+w && z.Y >= y && z.Y < y+h {
			out = append(out, z)
		}
	}
	return out
}

// CountByType returns how many zones of each type exist
func (r *Registry) CountByType() map[Type]int {
	counts := make(map[Type]int)
	for _, z := range r.zones {
		counts[z.Type]++
	}
	return counts
}

// Validate checks that coordinates are unique and inside a size×size map
func (r *Registry) Validate(size int) error {
	seen := make(map[string]string, len(r.zones))
	for _, z := range r.zones {
		if !z.Position().InBounds(size) {
			return fmt.Errorf("zone %q at %v is outside the %dx%d map", z.Name, z.Position(), size, size)
		}
		if other, ok := seen[z.Key()]; ok {
			return fmt.Errorf("zones %q and %q share coordinate %s", other, z.Name, z.Key())
		}
		seen[z.Key()] = z.Name
	}
	return nil
}
