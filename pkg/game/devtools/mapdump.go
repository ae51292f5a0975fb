// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/terrain"
	"hashhunt/pkg/game/zones"
)

// DefaultDumpPath is where the in-game dump key writes
const DefaultDumpPath = "map.txt"

// terrain symbols, one ASCII character each so rows line up in any editor
var terrainSymbols = map[terrain.Terrain]byte{
	terrain.Grass:    '.',
	terrain.Water:    '~',
	terrain.Mountain: '^',
	terrain.Forest:   'T',
	terrain.Desert:   ':',
	terrain.Town:     'H',
	terrain.Path:     '=',
	terrain.Castle:   'K',
}

var zoneSymbols = map[zones.Type]byte{
	zones.TypeSwap:         'S',
	zones.TypeAdvancedSwap: 'A',
	zones.TypeLimitOrder:   'L',
	zones.TypeBoss:         'B',
	zones.TypeChest:        'C',
}

// ZoneSymbol returns the upper-case letter marking a zone type
func ZoneSymbol(t zones.Type) byte {
	if c, ok := zoneSymbols[t]; ok {
		return c
	}
	return '?'
}

// SymbolAt returns the ASCII character for a cell: player, then zone, then terrain.
// Visited zones are lower case.
func SymbolAt(g *state.Game, x, y int) byte {
	if g.Player.X == x && g.Player.Y == y {
		return '@'
	}
	if z, ok := g.Zones.At(world.Position{X: x, Y: y}); ok {
		c := zoneSymbols[z.Type]
		if g.Visited.Has(z.Key()) {
			c += 'a' - 'A'
		}
		return c
	}
	return terrainSymbols[g.Terrain.At(x, y)]
}

// WriteMap writes metadata, a legend, the full grid with overlays, and the zone list
func WriteMap(w io.Writer, g *state.Game) error {
	bw := bufio.NewWriter(w)
	size := g.Terrain.Size()

	fmt.Fprintln(bw, "=== MAP DUMP ===")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "--- Metadata ---")
	fmt.Fprintf(bw, "grid_size: %d\n", size)
	fmt.Fprintln(bw, "coordinate_system: x,y (0-based, x=column, y=row growing down)")
	fmt.Fprintf(bw, "player: %d,%d\n", g.Player.X, g.Player.Y)
	if g.Character != nil {
		fmt.Fprintf(bw, "character: %q level: %d exp: %d/%d\n", g.Character.Name, g.Character.Level, g.Character.Exp, g.Character.MaxExp)
	}
	fmt.Fprintf(bw, "zones_visited: %d/%d\n", g.Visited.Len(), g.Zones.Len())
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Legend ---")
	fmt.Fprintln(bw, ". grass  ~ water  ^ mountain  T forest  : desert  H town  = path  K castle")
	fmt.Fprintln(bw, "S swap  A advanced swap  L limit order  B boss  C chest (lower case = visited)  @ player")
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Map ---")
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			bw.WriteByte(SymbolAt(g, x, y))
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Terrain counts ---")
	for _, t := range terrain.All() {
		fmt.Fprintf(bw, "  %s: %d\n", t, g.Terrain.Count(t))
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Zones ---")
	for _, z := range g.Zones.All() {
		fmt.Fprintf(bw, "  x: %d y: %d type: %s name: %q terrain: %s visited: %v\n",
			z.X, z.Y, z.Type, z.Name, g.Terrain.At(z.X, z.Y), g.Visited.Has(z.Key()))
	}
	return bw.Flush()
}

// DumpMap writes WriteMap's output to path and returns the absolute path written
func DumpMap(g *state.Game, path string) (string, error) {
	if path == "" {
		path = DefaultDumpPath
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create map dump: %w", err)
	}
	if err := WriteMap(f, g); err != nil {
		f.Close()
		return "", fmt.Errorf("write map dump: %w", err)
	}
	return absPath, f.Close()
}
