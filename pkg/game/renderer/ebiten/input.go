package ebiten

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	engineinput "hashhunt/pkg/engine/input"
	"hashhunt/pkg/game/gameplay"
	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/missions"
	"hashhunt/pkg/game/state"
)

var errNoService = errors.New("missions are not configured")

// Key repeat in ticks (60 per second)
const (
	keyRepeatInitialDelay = 24
	keyRepeatInterval     = 8
)

// keyCodes maps Ebiten keys onto the codes used by the input bindings
var keyCodes = []struct {
	key    ebiten.Key
	code   string
	repeat bool
}{
	{ebiten.KeyArrowUp, "arrow_up", true},
	{ebiten.KeyArrowDown, "arrow_down", true},
	{ebiten.KeyArrowLeft, "arrow_left", true},
	{ebiten.KeyArrowRight, "arrow_right", true},
	{ebiten.KeyW, "w", true},
	{ebiten.KeyA, "a", true},
	{ebiten.KeyS, "s", true},
	{ebiten.KeyD, "d", true},
	{ebiten.KeyH, "h", true},
	{ebiten.KeyJ, "j", true},
	{ebiten.KeyK, "k", true},
	{ebiten.KeyL, "l", true},
	{ebiten.KeyE, "e", false},
	{ebiten.KeyEnter, "enter", false},
	{ebiten.KeySpace, "space", false},
	{ebiten.KeyX, "x", false},
	{ebiten.KeyBackspace, "backspace", false},
	{ebiten.KeyC, "c", false},
	{ebiten.KeyP, "p", false},
	{ebiten.KeyO, "o", false},
	{ebiten.KeyQ, "q", false},
	{ebiten.KeyEscape, "escape", false},
	{ebiten.KeyF5, "f5", false},
	{ebiten.KeyF9, "f9", false},
	{ebiten.KeyF12, "f12", false},
}

var avatarKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8,
}

// Update handles input and game logic (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	g := e.game
	if g == nil {
		return nil
	}

	e.drainMission(g)
	e.drainSnapshots(g)

	if g.Character == nil {
		e.checkAvatarChoice(g)
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		return nil
	}

	if intent := e.checkInput(); intent.Action != engineinput.ActionNone {
		select {
		case e.inputChan <- intent:
		default:
			// Channel full, drop input
		}
	}
	for {
		intent := e.GetInput()
		if intent.Action == engineinput.ActionNone {
			break
		}
		gameplay.ProcessIntent(g, intent)
	}

	if g.Quit {
		return ebiten.Termination
	}
	if g.Pending != nil && !g.Busy {
		e.startMission(g)
	}
	return nil
}

// checkInput returns the intent of the first key pressed this tick
func (e *EbitenRenderer) checkInput() engineinput.Intent {
	now := time.Now()
	for _, k := range keyCodes {
		if !e.shouldFire(k.key, k.repeat) {
			continue
		}
		raw := engineinput.RawInput{Device: engineinput.DeviceKeyboard, Code: k.code, Timestamp: now}
		if ev, ok := e.debouncer.Accept(raw); ok {
			return engineinput.MapToIntent(ev)
		}
	}
	// ? is shift+/
	if inpututil.IsKeyJustPressed(ebiten.KeySlash) && ebiten.IsKeyPressed(ebiten.KeyShift) {
		return engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
			Device: engineinput.DeviceKeyboard,
			Code:   "?",
		}))
	}
	return engineinput.Intent{Action: engineinput.ActionNone}
}

// shouldFire reports a fresh press, or a held key past the repeat delay
func (e *EbitenRenderer) shouldFire(key ebiten.Key, repeat bool) bool {
	if inpututil.IsKeyJustPressed(key) {
		return true
	}
	if !repeat {
		return false
	}
	d := inpututil.KeyPressDuration(key)
	return d > keyRepeatInitialDelay && (d-keyRepeatInitialDelay)%keyRepeatInterval == 0
}

// checkAvatarChoice creates the character when a number key picks an avatar
func (e *EbitenRenderer) checkAvatarChoice(g *state.Game) {
	for i, k := range avatarKeys {
		if i >= len(leveling.Avatars) {
			return
		}
		if inpututil.IsKeyJustPressed(k) {
			c := gameplay.CreateCharacter(g, "", i)
			e.log.Info("character created", zap.String("name", c.Name), zap.String("avatar", c.Avatar))
			return
		}
	}
}

// startMission runs the pending request on a goroutine. Its result and countdown ticks come
// back through channels drained by Update, so game state is only touched on this goroutine.
// Escape or X cancel it through g.CancelMission.
func (e *EbitenRenderer) startMission(g *state.Game) {
	req, c, ok := gameplay.BeginMission(g)
	if !ok {
		return
	}
	if e.svc == nil {
		gameplay.FinishMission(g, req, missions.Outcome{}, errNoService)
		return
	}

	parent := e.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx := gameplay.MissionContext(parent, g, req, e.timeout)
	go func() {
		out, err := gameplay.RunMission(ctx, e.svc, c, req, e.params, func(remaining int) {
			select {
			case e.ticks <- remaining:
			default:
			}
		})
		e.results <- missionResult{req: req, out: out, err: err}
	}()
}

func (e *EbitenRenderer) drainMission(g *state.Game) {
	for drained := false; !drained; {
		select {
		case n := <-e.ticks:
			g.Countdown = n
		default:
			drained = true
		}
	}

	select {
	case r := <-e.results:
		gameplay.FinishMission(g, r.req, r.out, r.err)
		if r.err != nil {
			e.log.Warn("mission failed", zap.String("mission", gameplay.RequestName(r.req)), zap.Error(r.err))
		}
	default:
	}
}

func (e *EbitenRenderer) drainSnapshots(g *state.Game) {
	if e.snapshots == nil {
		return
	}
	for {
		select {
		case s, ok := <-e.snapshots:
			if !ok {
				e.snapshots = nil
				return
			}
			gameplay.ApplySnapshot(g, s)
		default:
			return
		}
	}
}

// countdownText is shown under the map while a share is being verified
func countdownText(g *state.Game) string {
	if g.Countdown <= 0 {
		return ""
	}
	return i18n.T("SHARE_COUNTDOWN", g.Countdown)
}
