package storage

import (
	"encoding/json"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"hashhunt/pkg/engine/world"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/visits"
)

// DefaultPrefix namespaces every key written by the game
const DefaultPrefix = "hashhunt"

const checkKey = "__storage_check__"

// Key suffixes. The full key is "<prefix>_<suffix>".
const (
	keyUserLevel       = "user_level"
	keyUserExp         = "user_exp"
	keyUserMaxExp      = "user_max_exp"
	keyUserName        = "user_name"
	keyUserAvatar      = "user_avatar"
	keyMapPosition     = "map_position"
	keySharesCompleted = "shares_completed"
	keyVisitedZones    = "visited_zones"
	keyMissionProgress = "mission_progress"
)

var allKeys = []string{
	keyUserLevel, keyUserExp, keyUserMaxExp, keyUserName, keyUserAvatar,
	keyMapPosition, keySharesCompleted, keyVisitedZones, keyMissionProgress,
}

// Field names the logical record touched by a write
type Field string

const (
	FieldCharacter Field = "character"
	FieldPosition  Field = "position"
	FieldVisited   Field = "visited"
	FieldShares    Field = "shares"
	FieldMissions  Field = "missions"
	FieldAll       Field = "all"
)

// Change is delivered to subscribers after every write
type Change struct {
	Field Field
}

// MissionCount tracks one mission kind
type MissionCount struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Done reports whether every required run of the mission is complete
func (c MissionCount) Done() bool {
	return c.Completed >= c.Total
}

// MissionProgress is the per-kind completion record
type MissionProgress struct {
	Swap         MissionCount `json:"swap"`
	AdvancedSwap MissionCount `json:"advancedSwap"`
	LimitOrder   MissionCount `json:"limitOrder"`
	Share        MissionCount `json:"share"`
}

// DefaultMissionProgress is the record used before any mission is completed
func DefaultMissionProgress() MissionProgress {
	return MissionProgress{
		Swap:         MissionCount{Completed: 0, Total: 3},
		AdvancedSwap: MissionCount{Completed: 0, Total: 2},
		LimitOrder:   MissionCount{Completed: 0, Total: 2},
		Share:        MissionCount{Completed: 0, Total: 1},
	}
}

// GameStorage is the persistence façade for all game state. Reads fall back to defaults and
// writes never fail from the caller's point of view; problems are logged.
type GameStorage struct {
	backend Backend
	prefix  string
	log     *zap.Logger

	mu      sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// New wraps backend. An empty prefix uses DefaultPrefix.
func New(backend Backend, prefix string, log *zap.Logger) *GameStorage {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GameStorage{
		backend: backend,
		prefix:  prefix,
		log:     log.Named("storage"),
		subs:    make(map[int]func(Change)),
	}
}

// Key returns the full backend key for a suffix
func (s *GameStorage) Key(suffix string) string {
	return s.prefix + "_" + suffix
}

// Subscribe registers fn for every subsequent write made through this GameStorage.
// The returned function removes the subscription.
func (s *GameStorage) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *GameStorage) publish(f Field) {
	s.mu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(Change{Field: f})
	}
}

// IsAvailable tests the backend with a throwaway write and delete
func (s *GameStorage) IsAvailable() bool {
	key := s.Key(checkKey)
	if err := s.backend.Set(key, "1"); err != nil {
		s.log.Debug("storage check failed", zap.Error(err))
		return false
	}
	if err := s.backend.Remove(key); err != nil {
		s.log.Debug("storage check cleanup failed", zap.Error(err))
		return false
	}
	return true
}

func (s *GameStorage) get(suffix string) (string, bool) {
	key := s.Key(suffix)
	v, ok, err := s.backend.Get(key)
	if err != nil {
		s.log.Warn("read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}

func (s *GameStorage) set(suffix, value string) bool {
	key := s.Key(suffix)
	if err := s.backend.Set(key, value); err != nil {
		s.log.Warn("write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *GameStorage) getInt(suffix string, def int) int {
	v, ok := s.get(suffix)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		s.log.Warn("malformed integer", zap.String("key", s.Key(suffix)), zap.String("value", v))
		return def
	}
	return n
}

func (s *GameStorage) getJSON(suffix string, out any) bool {
	v, ok := s.get(suffix)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(v), out); err != nil {
		s.log.Warn("malformed JSON", zap.String("key", s.Key(suffix)), zap.Error(err))
		return false
	}
	return true
}

func (s *GameStorage) setJSON(suffix string, v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode failed", zap.String("key", s.Key(suffix)), zap.Error(err))
		return false
	}
	return s.set(suffix, string(b))
}

// GetCharacter returns the stored character, or nil if none was ever saved
func (s *GameStorage) GetCharacter() *leveling.Character {
	if _, ok := s.get(keyUserLevel); !ok {
		return nil
	}
	c := &leveling.Character{
		Level:  s.getInt(keyUserLevel, 0),
		Exp:    s.getInt(keyUserExp, 0),
		MaxExp: s.getInt(keyUserMaxExp, leveling.DefaultBucketSize),
	}
	if c.Level < 0 {
		c.Level = 0
	}
	if c.Exp < 0 {
		c.Exp = 0
	}
	if c.MaxExp <= 0 {
		c.MaxExp = leveling.DefaultBucketSize
	}
	if name, ok := s.get(keyUserName); ok {
		c.Name = name
	}
	if avatar, ok := s.get(keyUserAvatar); ok {
		c.Avatar = avatar
	} else {
		c.Avatar = leveling.Avatars[0].Emoji
	}
	return c
}

// SaveCharacter writes every character field
func (s *GameStorage) SaveCharacter(c leveling.Character) {
	s.set(keyUserLevel, strconv.Itoa(c.Level))
	s.set(keyUserExp, strconv.Itoa(c.Exp))
	s.set(keyUserMaxExp, strconv.Itoa(c.MaxExp))
	s.set(keyUserName, c.Name)
	s.set(keyUserAvatar, c.Avatar)
	s.publish(FieldCharacter)
}

// GetMapPosition returns the stored player position, or def
func (s *GameStorage) GetMapPosition(def world.Position) world.Position {
	var p world.Position
	if !s.getJSON(keyMapPosition, &p) {
		return def
	}
	return p
}

// SaveMapPosition stores the player position
func (s *GameStorage) SaveMapPosition(p world.Position) {
	s.setJSON(keyMapPosition, p)
	s.publish(FieldPosition)
}

// GetVisitedZones returns the visited set, empty if none was stored
func (s *GameStorage) GetVisitedZones() visits.Set {
	var keys []string
	if !s.getJSON(keyVisitedZones, &keys) {
		return visits.New()
	}
	return visits.FromKeys(keys)
}

// SaveVisitedZones stores the visited set as a JSON array
func (s *GameStorage) SaveVisitedZones(v visits.Set) {
	s.setJSON(keyVisitedZones, v.Keys())
	s.publish(FieldVisited)
}

// GetSharesCompleted returns the share counter, 0 if unset
func (s *GameStorage) GetSharesCompleted() int {
	n := s.getInt(keySharesCompleted, 0)
	if n < 0 {
		return 0
	}
	return n
}

// SaveSharesCompleted stores the share counter
func (s *GameStorage) SaveSharesCompleted(n int) {
	s.set(keySharesCompleted, strconv.Itoa(n))
	s.publish(FieldShares)
}

// IncrementShares adds one to the share counter and returns the new value
func (s *GameStorage) IncrementShares() int {
	n := s.GetSharesCompleted() + 1
	s.SaveSharesCompleted(n)
	return n
}

// GetMissionProgress returns the stored progress, or DefaultMissionProgress
func (s *GameStorage) GetMissionProgress() MissionProgress {
	var p MissionProgress
	if !s.getJSON(keyMissionProgress, &p) {
		return DefaultMissionProgress()
	}
	return p
}

// SaveMissionProgress stores the mission progress record
func (s *GameStorage) SaveMissionProgress(p MissionProgress) {
	s.setJSON(keyMissionProgress, p)
	s.publish(FieldMissions)
}

// ClearAll removes every key the game writes
func (s *GameStorage) ClearAll() {
	for _, suffix := range allKeys {
		key := s.Key(suffix)
		if err := s.backend.Remove(key); err != nil {
			s.log.Warn("remove failed", zap.String("key", key), zap.Error(err))
		}
	}
	s.publish(FieldAll)
}
