package input

import (
	"testing"
	"time"

	"hashhunt/pkg/engine/world"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{0x1b, '[', 'A'}, "arrow_up"},
		{[]byte{0x1b, 'O', 'B'}, "arrow_down"},
		{[]byte{0x1b, '[', 'C'}, "arrow_right"},
		{[]byte{0x1b, '[', 'D'}, "arrow_left"},
		{[]byte{0x1b, '[', '1', '5', '~'}, "f5"},
		{[]byte{0x1b, '[', '2', '0', '~'}, "f9"},
		{[]byte{0x1b, '[', '2', '4', '~'}, "f12"},
		{[]byte{0x1b}, "escape"},
		{[]byte{0x1b, '[', 'Z'}, ""},
		{[]byte{'\r'}, "enter"},
		{[]byte{' '}, "space"},
		{[]byte{'W'}, "w"},
		{[]byte{'?'}, "?"},
		{[]byte{3}, "ctrl_c"},
		{[]byte{127}, "backspace"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := DecodeKey(tt.in); got != tt.want {
			t.Errorf("DecodeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapToIntentDirections(t *testing.T) {
	tests := []struct {
		code string
		want world.Direction
	}{
		{"arrow_up", world.Up},
		{"w", world.Up},
		{"k", world.Up},
		{"arrow_down", world.Down},
		{"s", world.Down},
		{"arrow_left", world.Left},
		{"a", world.Left},
		{"arrow_right", world.Right},
		{"l", world.Right},
	}

	for _, tt := range tests {
		intent := MapToIntent(DebouncedInput{Code: tt.code})
		got, ok := intent.Direction()
		if !ok || got != tt.want {
			t.Errorf("MapToIntent(%q).Direction() = %v, %v, want %v", tt.code, got, ok, tt.want)
		}
	}
}

func TestMapToIntentUnknown(t *testing.T) {
	intent := MapToIntent(DebouncedInput{Code: "z"})
	if intent.Action != ActionNone {
		t.Errorf("MapToIntent(z) = %v, want ActionNone", intent.Action)
	}
	if _, ok := intent.Direction(); ok {
		t.Error("ActionNone should have no direction")
	}
}

func TestDebouncer(t *testing.T) {
	d := &Debouncer{Window: 100 * time.Millisecond}
	start := time.Unix(1000, 0)

	if _, ok := d.Accept(RawInput{Code: "w", Timestamp: start}); !ok {
		t.Fatal("first press should be accepted")
	}
	if _, ok := d.Accept(RawInput{Code: "w", Timestamp: start.Add(50 * time.Millisecond)}); ok {
		t.Error("repeat inside the window should be dropped")
	}
	if _, ok := d.Accept(RawInput{Code: "d", Timestamp: start.Add(60 * time.Millisecond)}); !ok {
		t.Error("a different key should be accepted")
	}
	if _, ok := d.Accept(RawInput{Code: "d", Timestamp: start.Add(200 * time.Millisecond)}); !ok {
		t.Error("repeat after the window should be accepted")
	}
	if _, ok := d.Accept(RawInput{}); ok {
		t.Error("empty code should be dropped")
	}
}

func TestSetSingleBindingKeepsReserved(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for k, v := range bindings {
		saved[k] = v
	}
	t.Cleanup(func() { bindings = saved })

	SetSingleBinding(ActionMoveUp, "i")

	codes := GetBindingsByAction()[ActionMoveUp]
	want := []string{"arrow_up", "i"}
	if len(codes) != len(want) || codes[0] != want[0] || codes[1] != want[1] {
		t.Errorf("bindings for MoveUp = %v, want %v", codes, want)
	}

	SetSingleBinding(ActionQuit, "arrow_up")
	if MapToIntent(DebouncedInput{Code: "arrow_up"}).Action != ActionMoveUp {
		t.Error("reserved code arrow_up was rebound")
	}
}

func TestActionByID(t *testing.T) {
	tests := []struct {
		id     string
		want   Action
		wantOK bool
	}{
		{"move_up", ActionMoveUp, true},
		{"start_mission", ActionInteract, true},
		{"reset_progress", ActionReset, true},
		{"quit", ActionQuit, true},
		{"none", ActionNone, false},
		{"fly", ActionNone, false},
	}

	for _, tt := range tests {
		got, ok := ActionByID(tt.id)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ActionByID(%q) = %v, %v, want %v, %v", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCheckBindings(t *testing.T) {
	tests := []struct {
		name    string
		keys    map[string]string
		wantErr bool
	}{
		{"empty", nil, false},
		{"rebind", map[string]string{"start_mission": "f", "share": "t"}, false},
		{"unknown action", map[string]string{"fly": "f"}, true},
		{"reserved key", map[string]string{"quit": "escape"}, true},
		{"blank key", map[string]string{"quit": ""}, true},
		{"shared key", map[string]string{"quit": "z", "help": "z"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckBindings(tt.keys); (err != nil) != tt.wantErr {
				t.Errorf("CheckBindings(%v) error = %v, want error %v", tt.keys, err, tt.wantErr)
			}
		})
	}
}

func TestApplyBindings(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for k, v := range bindings {
		saved[k] = v
	}
	t.Cleanup(func() { bindings = saved })

	if err := ApplyBindings(map[string]string{"start_mission": "f"}); err != nil {
		t.Fatalf("ApplyBindings() error = %v", err)
	}
	if got := MapToIntent(DebouncedInput{Code: "f"}).Action; got != ActionInteract {
		t.Errorf("f maps to %v, want ActionInteract", got)
	}
	if got := MapToIntent(DebouncedInput{Code: "e"}).Action; got != ActionNone {
		t.Errorf("e maps to %v after rebinding, want ActionNone", got)
	}
	if got := MapToIntent(DebouncedInput{Code: "enter"}).Action; got != ActionInteract {
		t.Errorf("reserved enter maps to %v, want ActionInteract", got)
	}

	if err := ApplyBindings(map[string]string{"fly": "g"}); err == nil {
		t.Error("ApplyBindings(unknown action) error = nil")
	}
	if got := MapToIntent(DebouncedInput{Code: "g"}).Action; got != ActionNone {
		t.Errorf("a rejected table must not change bindings, g maps to %v", got)
	}
}
