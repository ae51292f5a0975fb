package ebiten

import (
	"reflect"
	"testing"

	"hashhunt/pkg/game/terrain"
)

func TestAsciiBar(t *testing.T) {
	tests := []struct {
		fraction float64
		width    int
		want     string
	}{
		{0, 4, "[----]"},
		{0.5, 4, "[##--]"},
		{2, 4, "[####]"},
		{0.5, 0, ""},
	}

	for _, tt := range tests {
		if got := asciiBar(tt.fraction, tt.width); got != tt.want {
			t.Errorf("asciiBar(%v, %d) = %q, want %q", tt.fraction, tt.width, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  []string
	}{
		{"", 10, nil},
		{"short", 10, []string{"short"}},
		{"Trade your first tokens", 10, []string{"Trade your", "first", "tokens"}},
		{"supercalifragilistic word", 5, []string{"supercalifragilistic", "word"}},
	}

	for _, tt := range tests {
		if got := wrap(tt.s, tt.width); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrap(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestHexColor(t *testing.T) {
	c := hexColor(terrain.Water.Color())
	if c.R != 0x3b || c.G != 0x82 || c.B != 0xf6 || c.A != 255 {
		t.Errorf("hexColor(water) = %v, want #3b82f6", c)
	}
}
