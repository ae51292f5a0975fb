package tui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gookit/color"

	"hashhunt/pkg/engine/input"
	"hashhunt/pkg/engine/terminal"
	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/gameplay"
	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/renderer"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/zones"
)

// Cells are two columns wide so emoji icons line up with terrain glyphs
const CellWidth = 2

// Lines needed outside the map:
// - Status line + blank (2)
// - Zone / character / help panel (up to 9)
// - Messages pane (header + 5 messages + footer = 7)
// - Input prompt (2)
const ReservedRows = 20

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	styles      map[renderer.TextStyle]color.Style
	out         io.Writer
	term        *input.Terminal
	viewportMax int

	// one key read runs at a time; a key pressed during a mission is kept for GetInput
	readKey func() (string, error)
	keys    chan keyRead
	reading bool
}

type keyRead struct {
	code string
	err  error
}

// crlfWriter ends lines with "\r\n", so frames drawn while a key read holds the terminal in
// raw mode still start every line at the left edge
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// New creates a new TUI renderer. viewportMax caps the map window; 0 uses the default.
func New(viewportMax int) *TUIRenderer {
	if viewportMax <= 0 {
		viewportMax = renderer.DefaultViewport
	}
	t := &TUIRenderer{
		out:         crlfWriter{os.Stdout},
		term:        input.NewTerminal(),
		viewportMax: viewportMax,
		keys:        make(chan keyRead, 1),
	}
	t.readKey = t.term.ReadKey
	return t
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.styles = map[renderer.TextStyle]color.Style{
		renderer.StyleZone:        {color.FgCyan, color.OpBold},
		renderer.StyleItem:        {color.FgMagenta},
		renderer.StyleAction:      {color.FgMagenta},
		renderer.StyleActionShort: {color.FgMagenta, color.OpBold},
		renderer.StyleDenied:      {color.FgRed, color.OpBold},
		renderer.StyleSubtle:      {color.FgGray, color.OpBold},
		renderer.StylePlayer:      {color.FgGreen, color.BgBlack, color.OpBold},
		renderer.StyleExp:         {color.FgGreen},
		renderer.StyleLevel:       {color.FgYellow, color.OpBold},
	}
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	if err := c.Run(); err != nil {
		fmt.Fprint(t.out, "\033[H\033[2J")
	}
}

// GetInput reads one key press and returns a high-level Intent. A read failure or Ctrl+C
// quits, so a closed stdin cannot spin the game loop.
func (t *TUIRenderer) GetInput() input.Intent {
	k := <-t.nextKey()
	t.reading = false
	return keyIntent(k)
}

// nextKey starts a key read unless one is already running and returns the channel it reports on
func (t *TUIRenderer) nextKey() <-chan keyRead {
	if !t.reading {
		t.reading = true
		go func() {
			code, err := t.readKey()
			t.keys <- keyRead{code: code, err: err}
		}()
	}
	return t.keys
}

func keyIntent(k keyRead) input.Intent {
	if k.err != nil {
		return input.Intent{Action: input.ActionQuit}
	}
	raw := input.RawInput{
		Device:    input.DeviceTerminal,
		Code:      k.code,
		Timestamp: time.Now(),
	}
	return input.MapToIntent(input.NewDebouncedInput(raw))
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	s, ok := t.styles[style]
	if !ok || text == "" {
		return text
	}
	return s.Sprint(text)
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	return renderer.ApplyMarkup(t.StyleText, msg, args...)
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.out, t.FormatText("%s", msg))
}

// GetViewportSize returns how many cells fit in the terminal along the shorter side
func (t *TUIRenderer) GetViewportSize() int {
	w, h := terminal.GetSize()
	cols, rows := terminal.MapArea(w, h, ReservedRows, CellWidth)
	return min(cols, rows, t.viewportMax)
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	t.printString("%s\n\n", renderer.StatusLine(g))

	if stage, level := g.LevelUp.Stage(); stage != leveling.StageIdle {
		t.printString("LEVEL{%s}\n\n", renderer.LevelUpText(stage, level))
	}

	viewport := t.GetViewportSize()
	t.printMap(g, gameplay.Camera(g.Player, viewport, g.Terrain.Size()), viewport)

	switch {
	case g.ShowHelp:
		t.printPanel(i18n.T("HELP_TITLE"), renderer.HelpLines())
	case g.ShowCharacter:
		t.printPanel("", renderer.CharacterSheet(g))
	case g.ShowZoneMessage && g.CurrentZone != nil:
		t.printPanel("", renderer.ZonePanel(*g.CurrentZone, g.Visited.Has(g.CurrentZone.Key())))
	}

	if g.Countdown > 0 {
		t.printString("%s\n", i18n.T("SHARE_COUNTDOWN", g.Countdown))
	}

	t.printMessagesPane(g)

	fmt.Fprint(t.out, "\n> ")
}

// printString prints a formatted string
func (t *TUIRenderer) printString(msg string, a ...any) {
	fmt.Fprint(t.out, t.FormatText(msg, a...))
}

func (t *TUIRenderer) printPanel(title string, lines []string) {
	fmt.Fprintln(t.out)
	if title != "" {
		t.printString("ZONE{%s}\n", title)
	}
	for _, l := range lines {
		fmt.Fprint(t.out, "  ")
		// lines may hold user text, so they are never used as a format string
		fmt.Fprintln(t.out, t.FormatText("%s", l))
	}
}

// renderCell returns the two-column text for map cell x/y
func (t *TUIRenderer) renderCell(g *state.Game, x, y int) string {
	terr := g.Terrain.At(x, y)
	bg := color.HEX(terr.Color(), true)

	if g.Player.X == x && g.Player.Y == y {
		avatar := "@ "
		if g.Character != nil {
			avatar = g.Character.Avatar
		}
		return bg.Sprint(avatar)
	}

	if z, ok := g.Zones.At(world.Position{X: x, Y: y}); ok {
		if g.Visited.Has(z.Key()) && z.Type != zones.TypeBoss {
			return bg.Sprint(t.StyleText("··", renderer.StyleSubtle))
		}
		return bg.Sprint(z.Icon)
	}

	return bg.Sprint(string(terr.Glyph()) + " ")
}

func (t *TUIRenderer) printMap(g *state.Game, origin world.Position, viewport int) {
	width := terminal.GetWidth()
	indent := strings.Repeat(" ", max((width-viewport*CellWidth)/2, 0))

	size := g.Terrain.Size()
	for y := origin.Y; y < origin.Y+viewport; y++ {
		var row strings.Builder
		row.WriteString(indent)
		for x := origin.X; x < origin.X+viewport; x++ {
			if x >= size || y >= size {
				row.WriteString("  ")
				continue
			}
			row.WriteString(t.renderCell(g, x, y))
		}
		fmt.Fprintln(t.out, row.String())
	}
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(g *state.Game) {
	width := terminal.GetWidth()

	label := i18n.T("MESSAGES")
	labelLen := len([]rune(label))
	sideLen := max((width-labelLen)/2, 1)

	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", max(width-sideLen-labelLen, 1))

	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.StyleText(leftDashes+label+rightDashes, renderer.StyleSubtle))

	if len(g.Messages) == 0 {
		fmt.Fprintln(t.out, "  "+t.FormatText("%s", i18n.T("NO_MESSAGES")))
	} else {
		for _, msg := range g.Messages {
			fmt.Fprintf(t.out, "  %s\n", t.FormatText("%s", msg))
		}
	}

	fmt.Fprintln(t.out, t.StyleText(strings.Repeat("─", width), renderer.StyleSubtle))
}

// ReadLine prompts for a line of text. Ctrl+D or a closed stdin returns the error.
func (t *TUIRenderer) ReadLine(prompt string) (string, error) {
	line, err := t.term.ReadLine(t.FormatText("%s", prompt))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
