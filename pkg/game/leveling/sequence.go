package leveling

import (
	"sync"
	"time"
)

// Stage is the visible step of the level-up presentation
type Stage int

const (
	StageIdle Stage = iota
	StageBanner
	StageParticles
	StageLevelNumber
)

func (s Stage) String() string {
	switch s {
	case StageBanner:
		return "banner"
	case StageParticles:
		return "particles"
	case StageLevelNumber:
		return "level-number"
	default:
		return "idle"
	}
}

// Timings are offsets from Start at which each stage begins
type Timings struct {
	Particles   time.Duration
	LevelNumber time.Duration
	Dismiss     time.Duration
}

// DefaultTimings is the standard four second presentation
var DefaultTimings = Timings{
	Particles:   500 * time.Millisecond,
	LevelNumber: time.Second,
	Dismiss:     4 * time.Second,
}

// Sequence drives the one-shot level-up presentation. All pending timers are cancelled
// together by Stop or by a new Start.
type Sequence struct {
	timings Timings

	mu     sync.Mutex
	stage  Stage
	level  int
	gen    uint64
	timers []*time.Timer
}

// NewSequence creates an idle sequence
func NewSequence(t Timings) *Sequence {
	return &Sequence{timings: t}
}

// Start shows the banner for level and schedules the remaining stages. onDone runs once
// after the dismiss stage unless the sequence is stopped or restarted first.
func (s *Sequence) Start(level int, onDone func(level int)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	gen := s.gen
	s.stage = StageBanner
	s.level = level

	s.timers = []*time.Timer{
		time.AfterFunc(s.timings.Particles, func() { s.advance(gen, StageParticles, nil) }),
		time.AfterFunc(s.timings.LevelNumber, func() { s.advance(gen, StageLevelNumber, nil) }),
		time.AfterFunc(s.timings.Dismiss, func() { s.advance(gen, StageIdle, onDone) }),
	}
}

// advance moves to next unless a newer Start or a Stop superseded generation gen
func (s *Sequence) advance(gen uint64, next Stage, onDone func(int)) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	// Particles and level number may fire in either order for tiny timings; never step back.
	if next != StageIdle && next < s.stage {
		s.mu.Unlock()
		return
	}
	s.stage = next
	level := s.level
	if next == StageIdle {
		s.timers = nil
	}
	s.mu.Unlock()

	if onDone != nil {
		onDone(level)
	}
}

// Stop cancels every pending stage and returns to idle without calling onDone
func (s *Sequence) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.gen++
	s.stage = StageIdle
}

func (s *Sequence) stopLocked() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

// Stage returns the current stage and the level being announced
func (s *Sequence) Stage() (Stage, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage, s.level
}

// Active reports whether a presentation is on screen
func (s *Sequence) Active() bool {
	st, _ := s.Stage()
	return st != StageIdle
}
