package leveling

import (
	"sync/atomic"
	"testing"
	"time"
)

var fastTimings = Timings{
	Particles:   5 * time.Millisecond,
	LevelNumber: 10 * time.Millisecond,
	Dismiss:     30 * time.Millisecond,
}

func TestSequence_RunsToCompletion(t *testing.T) {
	s := NewSequence(fastTimings)
	done := make(chan int, 1)

	s.Start(3, func(level int) { done <- level })
	if st, lvl := s.Stage(); st != StageBanner || lvl != 3 {
		t.Errorf("Stage() right after Start = %v/%d, want banner/3", st, lvl)
	}

	select {
	case lvl := <-done:
		if lvl != 3 {
			t.Errorf("onDone level = %d, want 3", lvl)
		}
	case <-time.After(time.Second):
		t.Fatal("onDone was not called")
	}
	if s.Active() {
		t.Error("Active() = true after dismiss, want false")
	}
}

func TestSequence_StopCancelsAllStages(t *testing.T) {
	s := NewSequence(fastTimings)
	var calls atomic.Int32

	s.Start(1, func(int) { calls.Add(1) })
	s.Stop()

	time.Sleep(80 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("onDone called %d times after Stop, want 0", calls.Load())
	}
	if st, _ := s.Stage(); st != StageIdle {
		t.Errorf("Stage() after Stop = %v, want idle", st)
	}
}

func TestSequence_RestartSupersedesPrevious(t *testing.T) {
	s := NewSequence(fastTimings)
	var calls atomic.Int32
	var last atomic.Int32

	onDone := func(level int) {
		calls.Add(1)
		last.Store(int32(level))
	}
	s.Start(1, onDone)
	s.Start(2, onDone)

	time.Sleep(120 * time.Millisecond)
	if calls.Load() != 1 || last.Load() != 2 {
		t.Errorf("onDone calls = %d last level = %d, want 1 call for level 2", calls.Load(), last.Load())
	}
}
