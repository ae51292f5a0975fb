package terrain

import (
	"math/rand"

	"hashhunt/pkg/engine/world"
)

// Size is the width and height of the overworld in cells
const Size = 80

type lake struct {
	cx, cy, r2 int
}

type region struct {
	x0, y0, x1, y1 int
	threshold      float64 // cell is filled when a uniform draw is above this; 0 fills all
}

var (
	lakes = []lake{
		{cx: 20, cy: 20, r2: 36},
		{cx: 58, cy: 24, r2: 49},
		{cx: 40, cy: 58, r2: 64},
	}
	riverCols = []int{8, 71}
	riverRows = []int{46, 76}

	mountainRegions = []region{
		{0, 0, 18, 14, 0.3},
		{52, 0, 80, 12, 0.4},
		{64, 48, 80, 70, 0.5},
	}
	forestRegions = []region{
		{24, 4, 46, 18, 0.3},
		{2, 50, 24, 72, 0.6},
	}
	desertRegions = []region{
		{46, 64, 62, 80, 0},
		{28, 28, 50, 42, 0.4},
	}

	// Top-left corners of 2×2 stamps
	townStamps   = []world.Position{{X: 15, Y: 35}, {X: 34, Y: 14}, {X: 50, Y: 50}, {X: 24, Y: 68}, {X: 66, Y: 40}, {X: 4, Y: 4}, {X: 58, Y: 8}, {X: 44, Y: 74}}
	castleStamps = []world.Position{{X: 40, Y: 40}, {X: 75, Y: 3}, {X: 3, Y: 75}, {X: 75, Y: 75}}

	highwayRows = []int{12, 38, 64}
	highwayCols = []int{12, 38, 64}
)

// Map is a generated overworld. It is never mutated after generation.
type Map struct {
	grid *world.Grid[Terrain]
}

// NewSeeded generates a map whose random regions are reproducible for the given seed
func NewSeeded(seed int64) *Map {
	return Generate(rand.New(rand.NewSource(seed)))
}

// Generate builds a new map. Fixed features (lakes, rivers, stamps, highways) are identical for
// every call; mountain, forest and desert edges depend on rng.
func Generate(rng *rand.Rand) *Map {
	grid := world.NewGrid(Size, Size, Grass)

	for _, l := range lakes {
		grid.FillRect(l.cx-l.r2, l.cy-l.r2, l.cx+l.r2+1, l.cy+l.r2+1, func(x, y int, cur Terrain) Terrain {
			dx, dy := x-l.cx, y-l.cy
			if dx*dx+dy*dy < l.r2 {
				return Water
			}
			return cur
		})
	}

	for _, col := range riverCols {
		fillCol(grid, col, Water)
	}
	for _, row := range riverRows {
		fillRow(grid, row, Water)
	}

	fillRegions(grid, rng, mountainRegions, Mountain)
	fillRegions(grid, rng, forestRegions, Forest)
	fillRegions(grid, rng, desertRegions, Desert)

	for _, p := range townStamps {
		stamp(grid, p, Town)
	}
	for _, p := range castleStamps {
		stamp(grid, p, Castle)
	}

	for _, row := range highwayRows {
		fillRow(grid, row, Path)
	}
	for _, col := range highwayCols {
		fillCol(grid, col, Path)
	}

	return &Map{grid: grid}
}

func fillRegions(grid *world.Grid[Terrain], rng *rand.Rand, regions []region, t Terrain) {
	for _, r := range regions {
		grid.FillRect(r.x0, r.y0, r.x1, r.y1, func(x, y int, cur Terrain) Terrain {
			if r.threshold == 0 || rng.Float64() > r.threshold {
				return t
			}
			return cur
		})
	}
}

func fillRow(grid *world.Grid[Terrain], row int, t Terrain) {
	grid.FillRect(0, row, grid.Cols(), row+1, func(int, int, Terrain) Terrain { return t })
}

func fillCol(grid *world.Grid[Terrain], col int, t Terrain) {
	grid.FillRect(col, 0, col+1, grid.Rows(), func(int, int, Terrain) Terrain { return t })
}

func stamp(grid *world.Grid[Terrain], p world.Position, t Terrain) {
	grid.FillRect(p.X, p.Y, p.X+2, p.Y+2, func(int, int, Terrain) Terrain { return t })
}

// Size returns the width/height of the map in cells
func (m *Map) Size() int {
	return m.grid.Cols()
}

// At returns the terrain at x/y. Coordinates outside the map are grass.
func (m *Map) At(x, y int) Terrain {
	return m.grid.Get(x, y)
}

// Count returns how many cells carry the given terrain
func (m *Map) Count(t Terrain) int {
	n := 0
	m.grid.ForEachCell(func(_, _ int, v Terrain) {
		if v == t {
			n++
		}
	})
	return n
}
