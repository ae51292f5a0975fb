package world

import "testing"

func TestGrid_GetOutOfRangeReturnsFallback(t *testing.T) {
	g := NewGrid(4, 3, "grass")
	g.Set(1, 1, "water")

	cases := []struct {
		x, y int
		want string
	}{
		{1, 1, "water"},
		{0, 0, "grass"},
		{-1, 0, "grass"},
		{4, 0, "grass"},
		{0, 3, "grass"},
	}
	for _, c := range cases {
		if got := g.Get(c.x, c.y); got != c.want {
			t.Errorf("Get(%d, %d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
}

func TestGrid_SetOutOfRange(t *testing.T) {
	g := NewGrid(2, 2, 0)
	if g.Set(2, 0, 7) {
		t.Error("Set(2, 0) = true, want false")
	}
	if !g.Set(1, 1, 7) {
		t.Error("Set(1, 1) = false, want true")
	}
}

func TestGrid_FillRectClipsToBounds(t *testing.T) {
	g := NewGrid(3, 3, 0)
	g.FillRect(-2, -2, 2, 2, func(x, y, cur int) int { return cur + 1 })

	total := 0
	g.ForEachCell(func(x, y, v int) { total += v })
	if total != 4 {
		t.Errorf("cells touched by FillRect = %d, want 4", total)
	}
}

func TestDirection_OppositeRoundTrip(t *testing.T) {
	start := Position{X: 5, Y: 5}
	for _, d := range AllDirections() {
		t.Run(d.String(), func(t *testing.T) {
			if got := start.Step(d).Step(d.Opposite()); got != start {
				t.Errorf("Step(%s).Step(%s) = %v, want %v", d, d.Opposite(), got, start)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"up", "down", "left", "right"} {
		d, err := ParseDirection(name)
		if err != nil {
			t.Fatalf("ParseDirection(%q) error: %v", name, err)
		}
		if d.String() != name {
			t.Errorf("ParseDirection(%q) = %v", name, d)
		}
	}
	if _, err := ParseDirection("north-east"); err == nil {
		t.Error("ParseDirection(\"north-east\") error = nil, want error")
	}
}

func TestPosition_Key(t *testing.T) {
	if got := (Position{X: 15, Y: 35}).Key(); got != "15-35" {
		t.Errorf("Key() = %q, want %q", got, "15-35")
	}
}
