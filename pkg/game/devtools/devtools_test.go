package devtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/storage"
	"hashhunt/pkg/game/terrain"
	"hashhunt/pkg/game/zones"
)

func newGame(t *testing.T) *state.Game {
	t.Helper()
	store := storage.New(storage.NewMemoryBackend(), "", nil)
	return state.NewGame(terrain.NewSeeded(7), zones.Default(), store, leveling.FixedBucket{Size: 500})
}

func TestSymbolAt(t *testing.T) {
	g := newGame(t)
	g.Player = world.Position{X: 1, Y: 1}

	if got := SymbolAt(g, 1, 1); got != '@' {
		t.Errorf("SymbolAt(player) = %q, want '@'", got)
	}
	if got := SymbolAt(g, 15, 35); got != 'S' {
		t.Errorf("SymbolAt(unvisited swap) = %q, want 'S'", got)
	}

	z, _ := g.Zones.At(world.Position{X: 15, Y: 35})
	g.Visited = g.Visited.With(z)
	if got := SymbolAt(g, 15, 35); got != 's' {
		t.Errorf("SymbolAt(visited swap) = %q, want 's'", got)
	}
}

func TestZoneSymbol(t *testing.T) {
	tests := []struct {
		typ  zones.Type
		want byte
	}{
		{zones.TypeSwap, 'S'},
		{zones.TypeAdvancedSwap, 'A'},
		{zones.TypeLimitOrder, 'L'},
		{zones.TypeBoss, 'B'},
		{zones.TypeChest, 'C'},
		{zones.Type("tavern"), '?'},
	}

	for _, tt := range tests {
		if got := ZoneSymbol(tt.typ); got != tt.want {
			t.Errorf("ZoneSymbol(%q) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestWriteMap(t *testing.T) {
	g := newGame(t)
	var buf bytes.Buffer
	if err := WriteMap(&buf, g); err != nil {
		t.Fatalf("WriteMap() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"grid_size: 80", "player: 38,38", "--- Legend ---", "Crypto Capital"} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteMap() missing %q", want)
		}
	}

	// every map row is exactly Size characters
	_, mapPart, _ := strings.Cut(out, "--- Map ---\n")
	rows := strings.Split(mapPart, "\n")[:terrain.Size]
	for i, r := range rows {
		if len(r) != terrain.Size {
			t.Fatalf("map row %d has %d characters, want %d", i, len(r), terrain.Size)
		}
	}
}

func TestDumpMap(t *testing.T) {
	g := newGame(t)
	path := filepath.Join(t.TempDir(), "map.txt")

	abs, err := DumpMap(g, path)
	if err != nil {
		t.Fatalf("DumpMap() error = %v", err)
	}
	if _, err := os.Stat(abs); err != nil {
		t.Errorf("DumpMap() file %s: %v", abs, err)
	}
}

func TestWriteScreenshotHTML(t *testing.T) {
	g := newGame(t)
	g.AddMessage("Entered ZONE{Crypto Capital} <script>")

	var buf bytes.Buffer
	if err := WriteScreenshotHTML(&buf, g, world.Position{X: 30, Y: 30}, 10); err != nil {
		t.Fatalf("WriteScreenshotHTML() error = %v", err)
	}
	out := buf.String()

	if n := strings.Count(out, `<div class="cell`); n != 100 {
		t.Errorf("WriteScreenshotHTML() cells = %d, want 100", n)
	}
	if !strings.Contains(out, "Entered Crypto Capital &lt;script&gt;") {
		t.Errorf("WriteScreenshotHTML() message not stripped and escaped")
	}
	if !strings.Contains(out, "player") {
		t.Errorf("WriteScreenshotHTML() missing player cell")
	}
}
