// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// Grid is a fixed-size rectangular array of cells addressed by (x, y).
// Reads outside the grid return the fallback value instead of failing.
type Grid[T any] struct {
	cells    []T
	cols     int
	rows     int
	fallback T
}

// NewGrid creates a grid with every cell set to fill. Out-of-range reads return fill as well.
func NewGrid[T any](cols, rows int, fill T) *Grid[T] {
	if rows <= 0 || cols <= 0 {
		panic("Grid dimensions must be positive")
	}

	g := &Grid[T]{
		cells:    make([]T, cols*rows),
		cols:     cols,
		rows:     rows,
		fallback: fill,
	}
	for i := range g.cells {
		g.cells[i] = fill
	}
	return g
}

// Rows returns the number of rows in the grid
func (g *Grid[T]) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid[T]) Cols() int {
	return g.cols
}

// IsValidPosition checks if an x/y position is within grid bounds
func (g *Grid[T]) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// Get returns the cell at x/y, or the fallback value if out of bounds
func (g *Grid[T]) Get(x, y int) T {
	if !g.IsValidPosition(x, y) {
		return g.fallback
	}
	return g.cells[y*g.cols+x]
}

// Set stores v at x/y. Returns false if out of bounds.
func (g *Grid[T]) Set(x, y int, v T) bool {
	if !g.IsValidPosition(x, y) {
		return false
	}
	g.cells[y*g.cols+x] = v
	return true
}

// ForEachCell iterates over all cells row by row
func (g *Grid[T]) ForEachCell(fn func(x, y int, v T)) {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			fn(x, y, g.cells[y*g.cols+x])
		}
	}
}

// FillRect calls fn for every in-bounds cell of the rectangle [x0,x1)×[y0,y1) and stores
// the value it returns
func (g *Grid[T]) FillRect(x0, y0, x1, y1 int, fn func(x, y int, cur T) T) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if g.IsValidPosition(x, y) {
				i := y*g.cols + x
				g.cells[i] = fn(x, y, g.cells[i])
			}
		}
	}
}
