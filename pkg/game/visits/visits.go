// Package visits tracks which zones the player has stepped on.
package visits

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Keyed is anything identified by an "x-y" key, such as a zone
type Keyed interface {
	Key() string
}

// Set is a grow-only set of visited zone keys. Updates return a new Set and leave the
// receiver untouched.
type Set struct {
	keys mapset.Set[string]
}

// New returns an empty set
func New() Set {
	return Set{keys: mapset.New[string]()}
}

// FromKeys rebuilds a set from persisted keys
func FromKeys(keys []string) Set {
	s := New()
	for _, k := range keys {
		if k != "" {
			s.keys.Put(k)
		}
	}
	return s
}

// With returns a copy of s that also contains z
func (s Set) With(z Keyed) Set {
	return s.WithKey(z.Key())
}

// WithKey returns a copy of s that also contains key
func (s Set) WithKey(key string) Set {
	next := New()
	s.each(next.keys.Put)
	next.keys.Put(key)
	return next
}

// Has reports whether key was visited
func (s Set) Has(key string) bool {
	if s.keys.Size() == 0 {
		return false
	}
	return s.keys.Has(key)
}

// Len returns the number of visited zones
func (s Set) Len() int {
	return s.keys.Size()
}

// Keys returns the visited keys in sorted order
func (s Set) Keys() []string {
	out := make([]string, 0, s.Len())
	s.each(func(k string) { out = append(out, k) })
	sort.Strings(out)
	return out
}

// Progress returns the visited fraction of total zones, in [0, 1]
func (s Set) Progress(total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(s.Len()) / float64(total)
	if p > 1 {
		return 1
	}
	return p
}

// Equal reports whether both sets hold the same keys
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	equal := true
	s.each(func(k string) {
		if !o.Has(k) {
			equal = false
		}
	})
	return equal
}

func (s Set) each(fn func(string)) {
	if s.keys.Size() == 0 {
		return
	}
	s.keys.Each(fn)
}
