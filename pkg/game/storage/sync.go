package storage

import (
	"context"
	"time"

	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/visits"
)

// DefaultSyncInterval is how often Watch re-reads the backend
const DefaultSyncInterval = time.Second

// Snapshot is every persisted field read at one moment
type Snapshot struct {
	Character *leveling.Character
	Position  world.Position
	Visited   visits.Set
	Shares    int
	Missions  MissionProgress
}

// DefaultPosition is where a new player appears, on the central highway crossing
var DefaultPosition = world.Position{X: 38, Y: 38}

// Snapshot reads all fields. The position falls back to DefaultPosition.
func (s *GameStorage) Snapshot() Snapshot {
	return Snapshot{
		Character: s.GetCharacter(),
		Position:  s.GetMapPosition(DefaultPosition),
		Visited:   s.GetVisitedZones(),
		Shares:    s.GetSharesCompleted(),
		Missions:  s.GetMissionProgress(),
	}
}

// Equal compares two snapshots field by field
func (a Snapshot) Equal(b Snapshot) bool {
	if (a.Character == nil) != (b.Character == nil) {
		return false
	}
	if a.Character != nil && *a.Character != *b.Character {
		return false
	}
	return a.Position == b.Position &&
		a.Shares == b.Shares &&
		a.Missions == b.Missions &&
		a.Visited.Equal(b.Visited)
}

// Watch polls the backend every interval and emits a snapshot whenever it differs from the
// previous one. It catches writes made by other processes sharing the backend; writes made
// through this GameStorage are also reported immediately via Subscribe. The channel is closed
// when ctx is done.
func (s *GameStorage) Watch(ctx context.Context, interval time.Duration) <-chan Snapshot {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	out := make(chan Snapshot, 1)
	last := s.Snapshot()

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap := s.Snapshot()
				if snap.Equal(last) {
					continue
				}
				last = snap
				s.log.Debug("external change detected")
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
