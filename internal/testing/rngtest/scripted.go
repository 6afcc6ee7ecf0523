// Package rngtest provides deterministic roll sources for engine tests.
package rngtest

import "sync"

// Scripted replays a fixed list of float draws. Once the script is exhausted it
// keeps returning Fallback. Intn draws come from Ints the same way and default
// to 0. Shuffle leaves the slice in its original order.
type Scripted struct {
	Floats   []float64
	Ints     []int
	Fallback float64

	mu        sync.Mutex
	floatPos  int
	intPos    int
	FloatUsed int
}

// New returns a script that yields the given floats in order
func New(floats ...float64) *Scripted {
	return &Scripted{Floats: floats, Fallback: 0.99}
}

// Always returns a script that yields v for every draw
func Always(v float64) *Scripted {
	return &Scripted{Fallback: v}
}

// Float64 returns the next scripted draw
func (s *Scripted) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FloatUsed++
	if s.floatPos < len(s.Floats) {
		v := s.Floats[s.floatPos]
		s.floatPos++
		return v
	}
	return s.Fallback
}

// Intn returns the next scripted int bounded to [0, n)
func (s *Scripted) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		return 0
	}
	if s.intPos < len(s.Ints) {
		v := s.Ints[s.intPos]
		s.intPos++
		if v >= n {
			return n - 1
		}
		return v
	}
	return 0
}

// Shuffle is a no-op so tests see the input order
func (s *Scripted) Shuffle(n int, swap func(i, j int)) {}
