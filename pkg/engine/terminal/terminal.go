// Package terminal reads the size of the controlling terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the current terminal width.
func GetWidth() int {
	width, _ := GetSize()
	return width
}

// IsInteractive reports whether stdin is a terminal that can be put in raw mode
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// MapArea returns how many map cells fit once reservedRows lines are taken by other panes.
// Each cell is cellWidth columns wide. Both results are at least 1.
func MapArea(width, height, reservedRows, cellWidth int) (cols, rows int) {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	cols = width / cellWidth
	rows = height - reservedRows
	return max(cols, 1), max(rows, 1)
}
