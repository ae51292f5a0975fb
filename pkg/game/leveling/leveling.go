// Package leveling turns experience into levels.
//
// FixedBucket is the canonical policy: every level costs the same amount of experience, so a
// character's level is a pure function of its total experience. GrowingBucket makes each level
// 20% more expensive than the last and is kept for saves that were created with it.
package leveling

import (
	"errors"
	"fmt"
	"math"
)

// DefaultBucketSize is the experience needed per level under the fixed policy
const DefaultBucketSize = 500

// DefaultGrowth is the per-level bucket multiplier under the growing policy
const DefaultGrowth = 1.2

// ErrNegativeExperience is returned when an experience delta is below zero
var ErrNegativeExperience = errors.New("experience delta must not be negative")

// Character is the persisted player record
type Character struct {
	Level  int    `json:"level"`
	Exp    int    `json:"exp"`
	MaxExp int    `json:"maxExp"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Progress describes where a total experience value sits
type Progress struct {
	Level           int
	ExpInLevel      int
	ExpForNextLevel int
}

// Fraction returns the in-level progress in [0, 1)
func (p Progress) Fraction() float64 {
	if p.ExpForNextLevel <= 0 {
		return 0
	}
	return float64(p.ExpInLevel) / float64(p.ExpForNextLevel)
}

// Derive maps a total experience value onto fixed-size level buckets
func Derive(totalExp, bucket int) Progress {
	if bucket <= 0 {
		bucket = DefaultBucketSize
	}
	if totalExp < 0 {
		totalExp = 0
	}
	return Progress{
		Level:           totalExp / bucket,
		ExpInLevel:      totalExp % bucket,
		ExpForNextLevel: bucket,
	}
}

// Policy applies experience to a character
type Policy interface {
	// Name identifies the policy in configuration
	Name() string
	// BaseMaxExp is the bucket size of a level 0 character
	BaseMaxExp() int
	// Add returns the character after gaining amount experience and the number of levels gained
	Add(c Character, amount int) (Character, int, error)
	// Progress reports the character's position in its current level
	Progress(c Character) Progress
}

// NewPolicy returns the policy registered under name ("fixed" or "growing")
func NewPolicy(name string, bucket int, growth float64) (Policy, error) {
	if bucket <= 0 {
		bucket = DefaultBucketSize
	}
	switch name {
	case "", "fixed":
		return FixedBucket{Size: bucket}, nil
	case "growing":
		if growth <= 1 {
			growth = DefaultGrowth
		}
		return GrowingBucket{Base: bucket, Growth: growth}, nil
	default:
		return nil, fmt.Errorf("unknown leveling policy %q", name)
	}
}

// NewCharacter returns a level 0 character for the given policy
func NewCharacter(name, avatar string, p Policy) Character {
	return Character{
		Level:  0,
		Exp:    0,
		MaxExp: p.BaseMaxExp(),
		Name:   name,
		Avatar: avatar,
	}
}

// FixedBucket charges Size experience for every level
type FixedBucket struct {
	Size int
}

func (f FixedBucket) size() int {
	if f.Size <= 0 {
		return DefaultBucketSize
	}
	return f.Size
}

// Name implements Policy
func (f FixedBucket) Name() string { return "fixed" }

// BaseMaxExp implements Policy
func (f FixedBucket) BaseMaxExp() int { return f.size() }

// Total returns the cumulative experience represented by c
func (f FixedBucket) Total(c Character) int {
	return c.Level*f.size() + c.Exp
}

// Add implements Policy
func (f FixedBucket) Add(c Character, amount int) (Character, int, error) {
	if amount < 0 {
		return c, 0, ErrNegativeExperience
	}
	p := Derive(f.Total(c)+amount, f.size())
	gained := p.Level - c.Level
	c.Level = p.Level
	c.Exp = p.ExpInLevel
	c.MaxExp = p.ExpForNextLevel
	return c, gained, nil
}

// Progress implements Policy
func (f FixedBucket) Progress(c Character) Progress {
	return Derive(f.Total(c), f.size())
}

// GrowingBucket multiplies the bucket size by Growth after every level
type GrowingBucket struct {
	Base   int
	Growth float64
}

// Name implements Policy
func (g GrowingBucket) Name() string { return "growing" }

// BaseMaxExp implements Policy
func (g GrowingBucket) BaseMaxExp() int {
	if g.Base <= 0 {
		return DefaultBucketSize
	}
	return g.Base
}

// Add implements Policy. Overflow carries into as many levels as it pays for, so Exp stays
// below MaxExp afterwards.
func (g GrowingBucket) Add(c Character, amount int) (Character, int, error) {
	if amount < 0 {
		return c, 0, ErrNegativeExperience
	}
	if c.MaxExp <= 0 {
		c.MaxExp = g.BaseMaxExp()
	}
	growth := g.Growth
	if growth <= 1 {
		growth = DefaultGrowth
	}

	gained := 0
	c.Exp += amount
	for c.Exp >= c.MaxExp {
		c.Exp -= c.MaxExp
		c.Level++
		c.MaxExp = int(math.Floor(float64(c.MaxExp) * growth))
		gained++
	}
	return c, gained, nil
}

// Progress implements Policy
func (g GrowingBucket) Progress(c Character) Progress {
	maxExp := c.MaxExp
	if maxExp <= 0 {
		maxExp = g.BaseMaxExp()
	}
	return Progress{Level: c.Level, ExpInLevel: c.Exp, ExpForNextLevel: maxExp}
}
