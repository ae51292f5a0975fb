package renderer

import (
	"hashhunt/pkg/engine/input"
	"hashhunt/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleZone
	StyleItem
	StyleAction
	StyleActionShort
	StyleDenied
	StyleSubtle
	StylePlayer
	StyleExp
	StyleLevel
)

// Renderer defines the interface for game rendering backends
type Renderer interface {
	// Init initializes the renderer (colors, fonts, window, etc.)
	Init()

	// Clear clears the display
	Clear()

	// RenderFrame renders a complete game frame
	// This includes the map, status bar, messages, and any open panel
	RenderFrame(g *state.Game)

	// GetInput returns the next high-level intent (blocking for TUI, polled for GUI)
	GetInput() input.Intent

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string

	// ShowMessage displays a message to the user outside the frame
	ShowMessage(msg string)

	// GetViewportSize returns how many map cells fit along each side
	GetViewportSize() int
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// FormatText formats a message with the current renderer's markup, or strips the markup
// when no renderer is active
func FormatText(msg string, args ...any) string {
	if Current != nil {
		return Current.FormatText(msg, args...)
	}
	return StripMarkup(sprintf(msg, args...))
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// GetViewportSize returns the current viewport size in cells
func GetViewportSize() int {
	if Current != nil {
		return Current.GetViewportSize()
	}
	return DefaultViewport
}
