// Package ebiten provides an Ebiten-based 2D graphical renderer for HashHunt.
// Ebiten is a 2D game library for Go: https://ebiten.org/
//
// Unlike the terminal renderer, Ebiten owns the main loop, so this renderer also drives the
// game: Update reads keys, applies intents and runs missions on a background goroutine.
package ebiten

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	engineinput "hashhunt/pkg/engine/input"
	"hashhunt/pkg/game/gameplay"
	"hashhunt/pkg/game/missions"
	"hashhunt/pkg/game/renderer"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/storage"
	"hashhunt/pkg/game/terrain"
)

// Options wires the renderer to the rest of the game
type Options struct {
	Service     *missions.Service
	Params      gameplay.MissionParams
	Snapshots   <-chan storage.Snapshot // changes made by other processes, may be nil
	Logger      *zap.Logger
	CellSize    int
	ViewportMax int
	Timeout     time.Duration // per mission, shares excepted; 0 uses gameplay.MissionTimeout
}

type missionResult struct {
	req state.Request
	out missions.Outcome
	err error
}

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	windowWidth  int
	windowHeight int
	cellSize     int
	viewportMax  int
	viewport     int

	game      *state.Game
	svc       *missions.Service
	params    gameplay.MissionParams
	snapshots <-chan storage.Snapshot
	log       *zap.Logger
	timeout   time.Duration

	debouncer engineinput.Debouncer
	inputChan chan engineinput.Intent

	ctx     context.Context
	cancel  context.CancelFunc
	results chan missionResult
	ticks   chan int

	terrainColors map[terrain.Terrain]color.RGBA
}

// New creates a new Ebiten renderer
func New(o Options) *EbitenRenderer {
	if o.CellSize <= 0 {
		o.CellSize = 32
	}
	if o.ViewportMax <= 0 {
		o.ViewportMax = renderer.DefaultViewport
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &EbitenRenderer{
		windowWidth:  o.CellSize*o.ViewportMax + sidePanelWidth,
		windowHeight: o.CellSize*o.ViewportMax + messagePaneHeight,
		cellSize:     o.CellSize,
		viewportMax:  o.ViewportMax,
		viewport:     o.ViewportMax,
		svc:          o.Service,
		params:       o.Params,
		snapshots:    o.Snapshots,
		log:          o.Logger.Named("ebiten"),
		timeout:      o.Timeout,
		debouncer:    engineinput.Debouncer{Window: 90 * time.Millisecond},
		inputChan:    make(chan engineinput.Intent, 16),
		results:      make(chan missionResult, 1),
		ticks:        make(chan int, 16),
	}
}

// Init initializes the window and colour tables
func (e *EbitenRenderer) Init() {
	e.terrainColors = make(map[terrain.Terrain]color.RGBA)
	for _, t := range terrain.All() {
		e.terrainColors[t] = hexColor(t.Color())
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle("HashHunt")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
}

// Clear is a no-op; Draw repaints the whole screen every frame
func (e *EbitenRenderer) Clear() {}

// GetInput returns the next queued intent without blocking
func (e *EbitenRenderer) GetInput() engineinput.Intent {
	select {
	case intent := <-e.inputChan:
		return intent
	default:
		return engineinput.Intent{Action: engineinput.ActionNone}
	}
}

// StyleText returns text unchanged; Draw colours whole lines instead
func (e *EbitenRenderer) StyleText(text string, style renderer.TextStyle) string {
	return text
}

// FormatText strips the markup, since the debug font has no colour runs
func (e *EbitenRenderer) FormatText(msg string, args ...any) string {
	return renderer.ApplyMarkup(e.StyleText, msg, args...)
}

// ShowMessage adds msg to the message log
func (e *EbitenRenderer) ShowMessage(msg string) {
	if e.game != nil {
		e.game.AddMessage(msg)
	}
}

// GetViewportSize returns the number of map cells shown along each side
func (e *EbitenRenderer) GetViewportSize() int {
	return e.viewport
}

// RenderFrame records the game to draw. Ebiten repaints on its own schedule.
func (e *EbitenRenderer) RenderFrame(g *state.Game) {
	e.game = g
}

// Layout keeps the logical screen the size of the window and refits the viewport
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth, e.windowHeight = outsideWidth, outsideHeight
	gridSize := terrain.Size
	if e.game != nil {
		gridSize = e.game.Terrain.Size()
	}
	e.viewport = gameplay.ViewportSize(outsideWidth-sidePanelWidth, outsideHeight-messagePaneHeight, e.cellSize, e.viewportMax, gridSize)
	return outsideWidth, outsideHeight
}

// Run starts the Ebiten game loop for g and returns when the window closes or the player quits
func (e *EbitenRenderer) Run(g *state.Game) error {
	e.RenderFrame(g)
	e.ctx, e.cancel = context.WithCancel(context.Background())
	defer e.cancel()

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
