package gameplay

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	engineinput "hashhunt/pkg/engine/input"
	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/missions"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/storage"
	"hashhunt/pkg/game/terrain"
	"hashhunt/pkg/game/zones"
)

const gridSize = terrain.Size

// newTestGame returns a game with a character, standing at pos
func newTestGame(t *testing.T, pos world.Position) *state.Game {
	t.Helper()
	store := storage.New(storage.NewMemoryBackend(), "test", zap.NewNop())
	store.SaveMapPosition(pos)
	g, _ := BuildGame(7, store, leveling.FixedBucket{Size: leveling.DefaultBucketSize})
	CreateCharacter(g, "Tester", 0)
	return g
}

func TestMove(t *testing.T) {
	tests := []struct {
		name   string
		from   world.Position
		dir    world.Direction
		want   world.Position
		wantOK bool
	}{
		{"up", world.Position{X: 5, Y: 5}, world.Up, world.Position{X: 5, Y: 4}, true},
		{"down", world.Position{X: 5, Y: 5}, world.Down, world.Position{X: 5, Y: 6}, true},
		{"left", world.Position{X: 5, Y: 5}, world.Left, world.Position{X: 4, Y: 5}, true},
		{"right", world.Position{X: 5, Y: 5}, world.Right, world.Position{X: 6, Y: 5}, true},
		{"top edge", world.Position{X: 0, Y: 0}, world.Up, world.Position{X: 0, Y: 0}, false},
		{"left edge", world.Position{X: 0, Y: 0}, world.Left, world.Position{X: 0, Y: 0}, false},
		{"bottom edge", world.Position{X: 79, Y: 79}, world.Down, world.Position{X: 79, Y: 79}, false},
		{"right edge", world.Position{X: 79, Y: 79}, world.Right, world.Position{X: 79, Y: 79}, false},
		{"invalid direction", world.Position{X: 5, Y: 5}, world.Direction(9), world.Position{X: 5, Y: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Move(tt.from, tt.dir, gridSize)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Move(%v, %v, %d) = %v, %v, want %v, %v", tt.from, tt.dir, gridSize, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMoveRoundTrip(t *testing.T) {
	start := world.Position{X: 40, Y: 40}
	for _, d := range world.AllDirections() {
		there, _ := Move(start, d, gridSize)
		back, _ := Move(there, d.Opposite(), gridSize)
		if back != start {
			t.Errorf("Move(Move(%v, %v), %v) = %v, want %v", start, d, d.Opposite(), back, start)
		}
	}
}

func TestMoveStaysInBounds(t *testing.T) {
	for x := 0; x < gridSize; x += 79 {
		for y := 0; y < gridSize; y += 79 {
			for _, d := range world.AllDirections() {
				got, _ := Move(world.Position{X: x, Y: y}, d, gridSize)
				if !got.InBounds(gridSize) {
					t.Errorf("Move(%d,%d, %v) = %v, out of bounds", x, y, d, got)
				}
			}
		}
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("left"); err != nil || d != world.Left {
		t.Errorf("ParseDirection(left) = %v, %v, want left", d, err)
	}
	if _, err := ParseDirection("diagonal"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseDirection(diagonal) error = %v, want ErrInvalidDirection", err)
	}
}

func TestCamera(t *testing.T) {
	tests := []struct {
		player   world.Position
		viewport int
		want     world.Position
	}{
		{world.Position{X: 40, Y: 40}, 25, world.Position{X: 28, Y: 28}},
		{world.Position{X: 0, Y: 0}, 25, world.Position{X: 0, Y: 0}},
		{world.Position{X: 5, Y: 70}, 25, world.Position{X: 0, Y: 55}},
		{world.Position{X: 79, Y: 79}, 25, world.Position{X: 55, Y: 55}},
		{world.Position{X: 79, Y: 0}, 80, world.Position{X: 0, Y: 0}},
		{world.Position{X: 10, Y: 10}, 100, world.Position{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		got := Camera(tt.player, tt.viewport, gridSize)
		if got != tt.want {
			t.Errorf("Camera(%v, %d, %d) = %v, want %v", tt.player, tt.viewport, gridSize, got, tt.want)
		}
	}
}

func TestCameraKeepsPlayerVisible(t *testing.T) {
	for _, v := range []int{1, 9, 25, 80} {
		for x := 0; x < gridSize; x++ {
			p := world.Position{X: x, Y: gridSize - 1 - x}
			c := Camera(p, v, gridSize)
			if p.X < c.X || p.X >= c.X+v || p.Y < c.Y || p.Y >= c.Y+v {
				t.Fatalf("Camera(%v, %d) = %v does not contain the player", p, v, c)
			}
		}
	}
}

func TestViewportSize(t *testing.T) {
	tests := []struct {
		w, h, cell, max int
		want            int
	}{
		{1024, 768, 32, 25, 24},
		{1920, 1080, 32, 25, 25},
		{100, 2000, 32, 25, 3},
		{10, 10, 32, 25, 1},
		{4000, 4000, 8, 0, 80},
		{640, 480, 0, 25, 25},
	}

	for _, tt := range tests {
		if got := ViewportSize(tt.w, tt.h, tt.cell, tt.max, gridSize); got != tt.want {
			t.Errorf("ViewportSize(%d, %d, %d, %d, %d) = %d, want %d", tt.w, tt.h, tt.cell, tt.max, gridSize, got, tt.want)
		}
	}
}

func TestMovePlayerEntersZone(t *testing.T) {
	g := newTestGame(t, world.Position{X: 14, Y: 35})

	if !MovePlayer(g, world.Right) {
		t.Fatal("MovePlayer() = false, want true")
	}
	if g.CurrentZone == nil || g.CurrentZone.Name != "Crypto Capital" || !g.ShowZoneMessage {
		t.Fatalf("CurrentZone = %+v, want Crypto Capital shown", g.CurrentZone)
	}
	if !g.Visited.Has("15-35") {
		t.Error("zone was not marked visited")
	}
	if !g.Store.GetVisitedZones().Has("15-35") {
		t.Error("visited set was not persisted")
	}
	if got := g.Store.GetMapPosition(world.Position{}); got != (world.Position{X: 15, Y: 35}) {
		t.Errorf("stored position = %v, want 15,35", got)
	}

	// leaving clears the zone
	MovePlayer(g, world.Right)
	if g.CurrentZone != nil || g.ShowZoneMessage {
		t.Error("leaving a zone should clear CurrentZone and ShowZoneMessage")
	}

	// re-entering does not grow the set
	MovePlayer(g, world.Left)
	if g.Visited.Len() != 1 {
		t.Errorf("Visited.Len() = %d after re-entry, want 1", g.Visited.Len())
	}
}

func TestMovePlayerRejectedAtEdge(t *testing.T) {
	g := newTestGame(t, world.Position{X: 0, Y: 0})
	if MovePlayer(g, world.Up) {
		t.Error("MovePlayer() at top edge = true, want false")
	}
	if g.Player != (world.Position{X: 0, Y: 0}) {
		t.Errorf("Player = %v, want origin", g.Player)
	}
}

func chestZone(t *testing.T) zones.Zone {
	t.Helper()
	for _, z := range zones.Default().All() {
		if z.Type == zones.TypeChest {
			return z
		}
	}
	t.Fatal("registry has no chest")
	return zones.Zone{}
}

func TestChestQueuedOnFirstVisitOnly(t *testing.T) {
	chest := chestZone(t)
	start := world.Position{X: chest.X - 1, Y: chest.Y}
	dir := world.Right
	if chest.X == 0 {
		start = world.Position{X: chest.X + 1, Y: chest.Y}
		dir = world.Left
	}
	g := newTestGame(t, start)

	MovePlayer(g, dir)
	if g.Pending == nil || g.Pending.Zone.Key() != chest.Key() {
		t.Fatalf("Pending = %+v, want chest request", g.Pending)
	}
	g.Pending = nil

	MovePlayer(g, dir.Opposite())
	MovePlayer(g, dir)
	if g.Pending != nil {
		t.Error("second visit should not queue the chest again")
	}

	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionInteract})
	if g.Pending != nil {
		t.Error("interacting with an opened chest should not queue a mission")
	}
}

func TestProcessIntentQueuesZoneMission(t *testing.T) {
	g := newTestGame(t, world.Position{X: 14, Y: 35})
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionMoveRight})
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionInteract})

	if g.Pending == nil || g.Pending.Zone.Type != zones.TypeSwap {
		t.Fatalf("Pending = %+v, want swap request", g.Pending)
	}
}

func TestProcessIntentWithoutCharacter(t *testing.T) {
	store := storage.New(storage.NewMemoryBackend(), "test", zap.NewNop())
	g, _ := BuildGame(1, store, leveling.FixedBucket{})
	start := g.Player

	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionMoveUp})
	if g.Player != start {
		t.Error("player moved without a character")
	}
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionShare})
	if g.Pending != nil {
		t.Error("share queued without a character")
	}
}

func TestProcessIntentToggles(t *testing.T) {
	g := newTestGame(t, world.Position{X: 38, Y: 38})

	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionCharacter})
	if !g.ShowCharacter {
		t.Error("ActionCharacter should open the character sheet")
	}
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionDismiss})
	if g.ShowCharacter {
		t.Error("ActionDismiss should close the character sheet")
	}
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionQuit})
	if !g.Quit {
		t.Error("ActionQuit should set Quit")
	}
}

func TestProcessIntentReset(t *testing.T) {
	g := newTestGame(t, world.Position{X: 14, Y: 35})
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionMoveRight})

	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionReset})

	if g.Character != nil {
		t.Error("reset should drop the character")
	}
	if g.Visited.Len() != 0 {
		t.Errorf("Visited.Len() = %d after reset, want 0", g.Visited.Len())
	}
	if g.Player != storage.DefaultPosition {
		t.Errorf("Player = %v after reset, want %v", g.Player, storage.DefaultPosition)
	}
}

func newService(g *state.Game) (*missions.Service, *missions.Simulator) {
	sim := missions.NewSimulator()
	return missions.NewService(missions.Options{
		Client:     sim,
		Wallet:     missions.StaticWallet{Addr: "0x1", Chain: 1},
		Store:      g.Store,
		Policy:     g.Policy,
		Logger:     zap.NewNop(),
		ShareTicks: 2,
		ShareTick:  time.Millisecond,
	}), sim
}

func TestMissionRoundTrip(t *testing.T) {
	g := newTestGame(t, world.Position{X: 14, Y: 35})
	svc, _ := newService(g)
	MovePlayer(g, world.Right)
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionInteract})

	req, c, ok := BeginMission(g)
	if !ok || !g.Busy || g.Pending != nil {
		t.Fatalf("BeginMission() = %v, busy %v, pending %v", ok, g.Busy, g.Pending)
	}
	if _, _, again := BeginMission(g); again {
		t.Error("BeginMission() while busy should refuse")
	}

	out, err := RunMission(context.Background(), svc, c, req, DefaultParams(), nil)
	FinishMission(g, req, out, err)

	if err != nil {
		t.Fatalf("RunMission() error = %v", err)
	}
	if g.Busy {
		t.Error("FinishMission should clear Busy")
	}
	if g.Character.Exp != 100 || g.Progress.Swap.Completed != 1 {
		t.Errorf("after swap: character %+v, progress %+v", g.Character, g.Progress)
	}
}

func TestBossLevelsUp(t *testing.T) {
	g := newTestGame(t, world.Position{X: 39, Y: 40})
	svc, _ := newService(g)
	MovePlayer(g, world.Right)
	if g.CurrentZone == nil || g.CurrentZone.Type != zones.TypeBoss {
		t.Fatalf("CurrentZone = %+v, want boss at 40,40", g.CurrentZone)
	}
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionInteract})

	req, c, _ := BeginMission(g)
	out, err := RunMission(context.Background(), svc, c, req, DefaultParams(), nil)
	FinishMission(g, req, out, err)
	t.Cleanup(g.LevelUp.Stop)

	if err != nil {
		t.Fatalf("RunMission() error = %v", err)
	}
	if g.Character.Level != 1 {
		t.Errorf("Level = %d after boss, want 1", g.Character.Level)
	}
	if !g.LevelUp.Active() {
		t.Error("level-up sequence should be running")
	}
}

func TestMissionErrorIsReported(t *testing.T) {
	g := newTestGame(t, world.Position{X: 14, Y: 35})
	svc, sim := newService(g)
	sim.FailNext("swap", errors.New("rpc down"))
	MovePlayer(g, world.Right)
	ProcessIntent(g, engineinput.Intent{Action: engineinput.ActionInteract})

	req, c, _ := BeginMission(g)
	out, err := RunMission(context.Background(), svc, c, req, DefaultParams(), nil)
	FinishMission(g, req, out, err)

	if err == nil {
		t.Fatal("RunMission() error = nil, want swap failure")
	}
	if g.Character.Exp != 0 {
		t.Errorf("Exp = %d after failure, want 0", g.Character.Exp)
	}
	if g.Busy {
		t.Error("failure should clear Busy")
	}
}

func TestNearestUnvisited(t *testing.T) {
	g := newTestGame(t, world.Position{X: 14, Y: 35})
	z, dist, ok := NearestUnvisited(g)
	if !ok || z.Name != "Crypto Capital" || dist != 1 {
		t.Errorf("NearestUnvisited() = %s, %d, %v, want Crypto Capital at 1", z.Name, dist, ok)
	}

	MovePlayer(g, world.Right)
	z, _, _ = NearestUnvisited(g)
	if z.Name == "Crypto Capital" {
		t.Error("visited zone returned as nearest unvisited")
	}
}

func TestHeading(t *testing.T) {
	from := world.Position{X: 10, Y: 10}
	tests := []struct {
		to   world.Position
		want string
	}{
		{world.Position{X: 10, Y: 5}, "up"},
		{world.Position{X: 15, Y: 15}, "down-right"},
		{world.Position{X: 5, Y: 10}, "left"},
		{world.Position{X: 10, Y: 10}, ""},
	}
	for _, tt := range tests {
		if got := heading(from, tt.to); got != tt.want {
			t.Errorf("heading(%v, %v) = %q, want %q", from, tt.to, got, tt.want)
		}
	}
}

func TestRequestName(t *testing.T) {
	tests := []struct {
		req  state.Request
		want string
	}{
		{state.Request{Share: true}, "Social Share"},
		{state.Request{Zone: zones.Zone{Type: zones.TypeSwap}}, "Basic Swap"},
		{state.Request{Zone: zones.Zone{Type: zones.TypeChest}}, "Treasure Chest"},
		{state.Request{Zone: zones.Zone{Type: "tavern", Name: "Inn"}}, "Inn"},
	}

	for _, tt := range tests {
		if got := RequestName(tt.req); got != tt.want {
			t.Errorf("RequestName(%+v) = %q, want %q", tt.req, got, tt.want)
		}
	}
}
