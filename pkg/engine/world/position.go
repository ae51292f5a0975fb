package world

import "fmt"

// Position is an integer grid coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Key returns the "x-y" form used to identify zones and visits
func (p Position) Key() string {
	return fmt.Sprintf("%d-%d", p.X, p.Y)
}

// Step returns the position one cell away in the given direction
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// InBounds reports whether the position lies inside a size×size grid
func (p Position) InBounds(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
