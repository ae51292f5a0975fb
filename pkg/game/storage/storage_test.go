package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/visits"
)

func newTestStorage(t *testing.T) (*GameStorage, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	return New(backend, "test", zap.NewNop()), backend
}

func TestCharacterRoundTrip(t *testing.T) {
	s, _ := newTestStorage(t)
	want := leveling.Character{Level: 3, Exp: 120, MaxExp: 500, Name: "Satoshi", Avatar: "🧙‍♂️"}

	s.SaveCharacter(want)
	got := s.GetCharacter()
	if got == nil {
		t.Fatal("GetCharacter() = nil after SaveCharacter")
	}
	if *got != want {
		t.Errorf("GetCharacter() = %+v, want %+v", *got, want)
	}
}

func TestDefaultsOnCleanStorage(t *testing.T) {
	s, _ := newTestStorage(t)

	if c := s.GetCharacter(); c != nil {
		t.Errorf("GetCharacter() = %+v, want nil", c)
	}
	if got := s.GetMissionProgress(); got != DefaultMissionProgress() {
		t.Errorf("GetMissionProgress() = %+v, want default", got)
	}
	if got := s.GetSharesCompleted(); got != 0 {
		t.Errorf("GetSharesCompleted() = %d, want 0", got)
	}
	def := world.Position{X: 40, Y: 40}
	if got := s.GetMapPosition(def); got != def {
		t.Errorf("GetMapPosition() = %v, want %v", got, def)
	}
	if got := s.GetVisitedZones(); got.Len() != 0 {
		t.Errorf("GetVisitedZones().Len() = %d, want 0", got.Len())
	}
}

func TestMalformedValuesFallBack(t *testing.T) {
	s, backend := newTestStorage(t)
	backend.Set(s.Key(keyMissionProgress), "{not json")
	backend.Set(s.Key(keyVisitedZones), "[1,2")
	backend.Set(s.Key(keySharesCompleted), "many")
	backend.Set(s.Key(keyMapPosition), "nowhere")

	if got := s.GetMissionProgress(); got != DefaultMissionProgress() {
		t.Errorf("GetMissionProgress() = %+v, want default", got)
	}
	if got := s.GetVisitedZones(); got.Len() != 0 {
		t.Errorf("GetVisitedZones().Len() = %d, want 0", got.Len())
	}
	if got := s.GetSharesCompleted(); got != 0 {
		t.Errorf("GetSharesCompleted() = %d, want 0", got)
	}
	if got := s.GetMapPosition(world.Position{X: 1, Y: 2}); got != (world.Position{X: 1, Y: 2}) {
		t.Errorf("GetMapPosition() = %v, want default", got)
	}
}

func TestMalformedCharacterFieldsUseDefaults(t *testing.T) {
	s, backend := newTestStorage(t)
	backend.Set(s.Key(keyUserLevel), "two")
	backend.Set(s.Key(keyUserMaxExp), "-5")

	c := s.GetCharacter()
	if c == nil {
		t.Fatal("GetCharacter() = nil with a level key present")
	}
	if c.Level != 0 || c.MaxExp != leveling.DefaultBucketSize {
		t.Errorf("GetCharacter() = %+v, want level 0 and default max exp", *c)
	}
}

func TestVisitedAndProgressRoundTrip(t *testing.T) {
	s, _ := newTestStorage(t)

	v := visits.New().WithKey("15-35").WithKey("40-40")
	s.SaveVisitedZones(v)
	if got := s.GetVisitedZones(); !got.Equal(v) {
		t.Errorf("GetVisitedZones() = %v, want %v", got.Keys(), v.Keys())
	}

	p := DefaultMissionProgress()
	p.Swap.Completed = 2
	s.SaveMissionProgress(p)
	if got := s.GetMissionProgress(); got != p {
		t.Errorf("GetMissionProgress() = %+v, want %+v", got, p)
	}

	if n := s.IncrementShares(); n != 1 {
		t.Errorf("IncrementShares() = %d, want 1", n)
	}
}

func TestWritesNeverFail(t *testing.T) {
	s, backend := newTestStorage(t)
	backend.FailWrites = true

	s.SaveCharacter(leveling.Character{Level: 1, Name: "x"})
	s.SaveMissionProgress(DefaultMissionProgress())
	s.ClearAll()

	if s.IsAvailable() {
		t.Error("IsAvailable() = true with failing writes, want false")
	}
	if c := s.GetCharacter(); c != nil {
		t.Errorf("GetCharacter() = %+v after failed write, want nil", c)
	}
}

func TestReadsNeverFail(t *testing.T) {
	s, backend := newTestStorage(t)
	s.SaveSharesCompleted(4)
	backend.FailReads = true

	if got := s.GetSharesCompleted(); got != 0 {
		t.Errorf("GetSharesCompleted() with failing reads = %d, want 0", got)
	}
}

func TestIsAvailableLeavesNoTrace(t *testing.T) {
	s, backend := newTestStorage(t)
	if !s.IsAvailable() {
		t.Fatal("IsAvailable() = false on memory backend")
	}
	if _, ok, _ := backend.Get(s.Key(checkKey)); ok {
		t.Error("check key left behind")
	}
}

func TestClearAllFallsBackToDefaults(t *testing.T) {
	s, _ := newTestStorage(t)
	s.SaveCharacter(leveling.Character{Level: 2, Exp: 5, MaxExp: 500, Name: "a", Avatar: "🦄"})
	s.SaveSharesCompleted(3)
	s.SaveMapPosition(world.Position{X: 9, Y: 9})

	s.ClearAll()

	if c := s.GetCharacter(); c != nil {
		t.Errorf("GetCharacter() after ClearAll = %+v, want nil", c)
	}
	if n := s.GetSharesCompleted(); n != 0 {
		t.Errorf("GetSharesCompleted() after ClearAll = %d, want 0", n)
	}
	if p := s.GetMapPosition(world.Position{}); p != (world.Position{}) {
		t.Errorf("GetMapPosition() after ClearAll = %v, want origin", p)
	}
}

func TestSubscribe(t *testing.T) {
	s, _ := newTestStorage(t)
	var got []Field
	cancel := s.Subscribe(func(c Change) { got = append(got, c.Field) })

	s.SaveMapPosition(world.Position{X: 1, Y: 1})
	s.IncrementShares()
	cancel()
	s.SaveMapPosition(world.Position{X: 2, Y: 2})

	if len(got) != 2 || got[0] != FieldPosition || got[1] != FieldShares {
		t.Errorf("notifications = %v, want [position shares]", got)
	}
}

func TestFileBackendSharedBetweenInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "storage.json")
	a := New(NewFileBackend(path), "", zap.NewNop())
	b := New(NewFileBackend(path), "", zap.NewNop())

	a.SaveCharacter(leveling.Character{Level: 1, Exp: 2, MaxExp: 500, Name: "Ada", Avatar: "🤖"})
	got := b.GetCharacter()
	if got == nil || got.Name != "Ada" || got.Level != 1 {
		t.Errorf("second instance GetCharacter() = %+v, want Ada level 1", got)
	}
}

func TestFileBackendCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(NewFileBackend(path), "", zap.NewNop())

	if got := s.GetSharesCompleted(); got != 0 {
		t.Errorf("GetSharesCompleted() on corrupt file = %d, want 0", got)
	}
	s.SaveSharesCompleted(2)
	if got := s.GetSharesCompleted(); got != 2 {
		t.Errorf("GetSharesCompleted() after rewrite = %d, want 2", got)
	}
}

func TestWatchReportsExternalChanges(t *testing.T) {
	backend := NewMemoryBackend()
	watcher := New(backend, "", zap.NewNop())
	writer := New(backend, "", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := watcher.Watch(ctx, 5*time.Millisecond)

	writer.SaveSharesCompleted(7)

	select {
	case snap := <-ch:
		if snap.Shares != 7 {
			t.Errorf("snapshot shares = %d, want 7", snap.Shares)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch did not report the external write")
	}

	cancel()
	for range ch {
	}
}

func TestWatchSkipsUnchangedPolls(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Watch(ctx, 2*time.Millisecond)

	select {
	case snap := <-ch:
		t.Errorf("Watch emitted %+v without any change", snap)
	case <-time.After(30 * time.Millisecond):
	}
	cancel()
}

func TestSnapshotEqual(t *testing.T) {
	c := leveling.Character{Level: 1, Name: "a"}
	a := Snapshot{Character: &c, Visited: visits.New(), Missions: DefaultMissionProgress()}
	c2 := c
	b := Snapshot{Character: &c2, Visited: visits.New(), Missions: DefaultMissionProgress()}
	if !a.Equal(b) {
		t.Error("Equal() = false for identical snapshots")
	}
	b.Character = nil
	if a.Equal(b) {
		t.Error("Equal() = true when one character is nil")
	}
}
