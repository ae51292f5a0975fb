// Package terrain generates the fixed-size overworld the player walks on.
package terrain

// Terrain is the tag stored in each map cell
type Terrain int

const (
	Grass Terrain = iota
	Water
	Mountain
	Forest
	Desert
	Town
	Path
	Castle
)

// All returns every terrain tag in declaration order
func All() []Terrain {
	return []Terrain{Grass, Water, Mountain, Forest, Desert, Town, Path, Castle}
}

type terrainInfo struct {
	name  string
	color string
	glyph rune
}

var terrainTypes = map[Terrain]terrainInfo{
	Grass:    {"grass", "#4ade80", '.'},
	Water:    {"water", "#3b82f6", '~'},
	Mountain: {"mountain", "#78716c", '^'},
	Forest:   {"forest", "#166534", '♣'},
	Desert:   {"desert", "#fbbf24", ':'},
	Town:     {"town", "#f97316", '⌂'},
	Path:     {"path", "#a8a29e", '='},
	Castle:   {"castle", "#7c3aed", '♜'},
}

// String returns the lower-case terrain name
func (t Terrain) String() string {
	if info, ok := terrainTypes[t]; ok {
		return info.name
	}
	return "unknown"
}

// Color returns the display colour as a hex string
func (t Terrain) Color() string {
	if info, ok := terrainTypes[t]; ok {
		return info.color
	}
	return terrainTypes[Grass].color
}

// Glyph returns the single-character symbol used by text renderers
func (t Terrain) Glyph() rune {
	if info, ok := terrainTypes[t]; ok {
		return info.glyph
	}
	return terrainTypes[Grass].glyph
}
