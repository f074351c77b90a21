// Package rng abstracts the randomness behind every animation so runs can be
// seeded and tests can replay fixed sequences.
package rng

import "math/rand"

// Source yields values uniformly distributed in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// New returns a seeded math/rand source.
func New(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Range draws a value in [lo, hi).
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Index draws an integer in [0, n). It returns 0 when n <= 0.
func Index(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Chance reports whether an event of probability p fires.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Sequence replays a fixed list of values, wrapping around at the end.
type Sequence struct {
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Drawn returns how many values have been consumed since the last wrap.
func (s *Sequence) Drawn() int { return s.next }
