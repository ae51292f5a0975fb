package input

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zyedidia/generic/mapset"

	"hashhunt/pkg/engine/world"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// Meta / UI
	ActionInteract  // start the mission of the current zone
	ActionDismiss   // hide the zone panel
	ActionCharacter // show the character sheet
	ActionShare     // post about the game for a share reward
	ActionHelp
	ActionReset // wipe saved progress
	ActionDumpMap
	ActionScreenshot
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// Direction returns the movement direction of a move intent
func (i Intent) Direction() (world.Direction, bool) {
	switch i.Action {
	case ActionMoveUp:
		return world.Up, true
	case ActionMoveDown:
		return world.Down, true
	case ActionMoveLeft:
		return world.Left, true
	case ActionMoveRight:
		return world.Right, true
	}
	return 0, false
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "w", "arrow_up", "enter").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing.
type DebouncedInput struct {
	Device Device
	Code   string
}

// Debouncer drops repeats of the same code arriving faster than Window. Ebiten polls every
// frame, so a held key would otherwise move the player sixty tiles a second.
type Debouncer struct {
	Window time.Duration

	lastCode string
	lastAt   time.Time
}

// Accept returns the debounced input and whether it should be processed
func (d *Debouncer) Accept(raw RawInput) (DebouncedInput, bool) {
	ev := DebouncedInput{Device: raw.Device, Code: raw.Code}
	if raw.Code == "" {
		return ev, false
	}
	if raw.Code == d.lastCode && !raw.Timestamp.IsZero() && raw.Timestamp.Sub(d.lastAt) < d.Window {
		return ev, false
	}
	d.lastCode = raw.Code
	d.lastAt = raw.Timestamp
	return ev, true
}

// NewDebouncedInput converts a raw event without any filtering. Terminal reads are one key
// per call, so they need no debouncing.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{Device: raw.Device, Code: raw.Code}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Movement (arrows, WASD, Vim)
	"arrow_up":    ActionMoveUp,
	"w":           ActionMoveUp,
	"k":           ActionMoveUp,
	"arrow_down":  ActionMoveDown,
	"s":           ActionMoveDown,
	"j":           ActionMoveDown,
	"arrow_left":  ActionMoveLeft,
	"a":           ActionMoveLeft,
	"h":           ActionMoveLeft,
	"arrow_right": ActionMoveRight,
	"d":           ActionMoveRight,
	"l":           ActionMoveRight,

	"e":     ActionInteract,
	"enter": ActionInteract,
	"space": ActionInteract,

	"x":         ActionDismiss,
	"backspace": ActionDismiss,

	"c": ActionCharacter,

	"p": ActionShare,

	"?": ActionHelp,

	"f5": ActionReset,

	"f9": ActionDumpMap,

	"f12": ActionScreenshot,
	"o":   ActionScreenshot,

	"q":      ActionQuit,
	"escape": ActionQuit,
}

// reserved codes can never be rebound or unbound
var reserved = func() mapset.Set[string] {
	s := mapset.New[string]()
	for _, c := range []string{"arrow_up", "arrow_down", "arrow_left", "arrow_right", "enter", "escape"} {
		s.Put(c)
	}
	return s
}()

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveUp:
		return "Move Up"
	case ActionMoveDown:
		return "Move Down"
	case ActionMoveLeft:
		return "Move Left"
	case ActionMoveRight:
		return "Move Right"
	case ActionInteract:
		return "Start Mission"
	case ActionDismiss:
		return "Dismiss"
	case ActionCharacter:
		return "Character"
	case ActionShare:
		return "Share"
	case ActionHelp:
		return "Help"
	case ActionReset:
		return "Reset Progress"
	case ActionDumpMap:
		return "Dump Map"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Ensure stable ordering of codes within each action so UI doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all non-reserved bindings for the given action with code.
// Reserved codes are ignored.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if a == action && !reserved.Has(c) {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved.Has(code) {
		bindings[code] = action
	}
}

// ActionID returns the settings-file name of an action, such as "move_up" or "start_mission"
func ActionID(a Action) string {
	return strings.ReplaceAll(strings.ToLower(ActionName(a)), " ", "_")
}

// ActionByID is the inverse of ActionID
func ActionByID(id string) (Action, bool) {
	for a := ActionMoveUp; a <= ActionQuit; a++ {
		if ActionID(a) == id {
			return a, true
		}
	}
	return ActionNone, false
}

// CheckBindings reports the first entry of keys (action id -> key code) that cannot be applied
func CheckBindings(keys map[string]string) error {
	used := make(map[string]string, len(keys))
	for id, code := range keys {
		if _, ok := ActionByID(id); !ok {
			return fmt.Errorf("unknown action %q", id)
		}
		if code == "" || reserved.Has(code) {
			return fmt.Errorf("key %q cannot be bound to %s", code, id)
		}
		if other, ok := used[code]; ok {
			return fmt.Errorf("key %q is bound to both %s and %s", code, other, id)
		}
		used[code] = id
	}
	return nil
}

// ApplyBindings replaces the non-reserved bindings of every action named in keys with its code
func ApplyBindings(keys map[string]string) error {
	if err := CheckBindings(keys); err != nil {
		return err
	}
	for id, code := range keys {
		a, _ := ActionByID(id)
		SetSingleBinding(a, code)
	}
	return nil
}
