// Package missions runs the guided DeFi flows started from map zones and awards experience
// when they complete.
package missions

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/storage"
	"hashhunt/pkg/game/zones"
)

// Kind identifies a mission for rewards and progress
type Kind string

const (
	KindSwap         Kind = "swap"
	KindAdvancedSwap Kind = "advancedSwap"
	KindLimitOrder   Kind = "limitOrder"
	KindShare        Kind = "share"
	KindBoss         Kind = "boss"
	KindChest        Kind = "chest"
)

// Rewards maps a mission kind to the experience it grants
type Rewards map[Kind]int

// DefaultRewards is the standard experience table
func DefaultRewards() Rewards {
	return Rewards{
		KindSwap:         100,
		KindAdvancedSwap: 250,
		KindLimitOrder:   150,
		KindShare:        50,
		KindBoss:         500,
		KindChest:        75,
	}
}

// KindForZone returns the mission started by a zone type
func KindForZone(t zones.Type) (Kind, bool) {
	switch t {
	case zones.TypeSwap:
		return KindSwap, true
	case zones.TypeAdvancedSwap:
		return KindAdvancedSwap, true
	case zones.TypeLimitOrder:
		return KindLimitOrder, true
	case zones.TypeBoss:
		return KindBoss, true
	case zones.TypeChest:
		return KindChest, true
	default:
		return "", false
	}
}

var (
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrInvalidAmount      = errors.New("amount must be a positive integer")
	ErrSameToken          = errors.New("source and destination tokens must differ")
	ErrInvalidSlippage    = errors.New("slippage must be between 0 and 50 percent")
	ErrNoRoutes           = errors.New("no routes to compare")
	ErrExpired            = errors.New("order expiry must be in the future")
	ErrCancelled          = errors.New("mission cancelled")
	ErrTimedOut           = errors.New("mission timed out")
	ErrNotVerified        = errors.New("share could not be verified")
)

// Outcome is what completing a mission changed
type Outcome struct {
	Kind         Kind
	Exp          int
	Before       leveling.Character
	Character    leveling.Character
	LevelsGained int
	Progress     storage.MissionProgress
	Shares       int
}

// LeveledUp reports whether the mission crossed at least one level
func (o Outcome) LeveledUp() bool {
	return o.LevelsGained > 0
}

// Options configures a Service
type Options struct {
	Client     Client
	Wallet     Wallet
	Store      *storage.GameStorage
	Policy     leveling.Policy
	Rewards    Rewards
	Logger     *zap.Logger
	ShareTicks int
	ShareTick  time.Duration
}

// Service runs mission flows against a Client and records completions in storage
type Service struct {
	client     Client
	wallet     Wallet
	store      *storage.GameStorage
	policy     leveling.Policy
	rewards    Rewards
	log        *zap.Logger
	shareTicks int
	shareTick  time.Duration
}

// NewService fills unset options with defaults
func NewService(o Options) *Service {
	if o.Policy == nil {
		o.Policy = leveling.FixedBucket{Size: leveling.DefaultBucketSize}
	}
	if o.Rewards == nil {
		o.Rewards = DefaultRewards()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.ShareTicks <= 0 {
		o.ShareTicks = 10
	}
	if o.ShareTick <= 0 {
		o.ShareTick = time.Second
	}
	return &Service{
		client:     o.Client,
		wallet:     o.Wallet,
		store:      o.Store,
		policy:     o.Policy,
		rewards:    o.Rewards,
		log:        o.Logger.Named("missions"),
		shareTicks: o.ShareTicks,
		shareTick:  o.ShareTick,
	}
}

// Reward returns the experience granted for kind
func (s *Service) Reward(kind Kind) int {
	return s.rewards[kind]
}

func (s *Service) address() (string, int, error) {
	if s.wallet == nil || s.wallet.Address() == "" {
		return "", 0, ErrWalletNotConnected
	}
	return s.wallet.Address(), s.wallet.ChainID(), nil
}

// Complete awards the experience for kind to c, bumps mission progress and persists both
func (s *Service) Complete(c leveling.Character, kind Kind) (Outcome, error) {
	exp := s.rewards[kind]
	next, gained, err := s.policy.Add(c, exp)
	if err != nil {
		return Outcome{}, fmt.Errorf("award %s: %w", kind, err)
	}

	out := Outcome{
		Kind:         kind,
		Exp:          exp,
		Before:       c,
		Character:    next,
		LevelsGained: gained,
	}

	progress := s.store.GetMissionProgress()
	switch kind {
	case KindSwap:
		progress.Swap.Completed++
	case KindAdvancedSwap, KindBoss:
		progress.AdvancedSwap.Completed++
	case KindLimitOrder:
		progress.LimitOrder.Completed++
	case KindShare:
		progress.Share.Completed++
		out.Shares = s.store.IncrementShares()
	}
	if kind != KindChest {
		s.store.SaveMissionProgress(progress)
	}
	if kind != KindShare {
		out.Shares = s.store.GetSharesCompleted()
	}
	out.Progress = progress

	s.store.SaveCharacter(next)
	s.log.Info("mission complete",
		zap.String("kind", string(kind)),
		zap.Int("exp", exp),
		zap.Int("level", next.Level),
		zap.Int("levels_gained", gained))
	return out, nil
}

// ParseAmount parses a positive base-unit integer amount
func ParseAmount(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return n, nil
}

// applySlippage returns amount reduced by pct percent
func applySlippage(amount *big.Int, pct float64) *big.Int {
	bps := int64(pct * 100)
	out := new(big.Int).Mul(amount, big.NewInt(10_000-bps))
	return out.Quo(out, big.NewInt(10_000))
}
