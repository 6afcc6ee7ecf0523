package utils

import (
	"math"
	"math/rand"
	"sync"
)

// RNG is the source of every game roll. *rand.Rand satisfies it.
type RNG interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRNG returns a seeded math/rand source
func NewRNG(seed int64) *rand.Rand {
	//nolint:gosec // G404: math/rand is acceptable for game mechanics, not for cryptographic purposes
	return rand.New(rand.NewSource(seed))
}

type lockedRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRNG returns a source that is safe to share between goroutines
func NewLockedRNG(seed int64) RNG {
	return &lockedRNG{r: NewRNG(seed)}
}

func (l *lockedRNG) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRNG) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRNG) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundInt rounds half away from zero and never returns a negative value
func RoundInt(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	return r
}

// DiminishingReturns calculates a value with diminishing returns.
// value: The input value.
// scale: The value at which the output is 50% of the maximum possible output (asymptote).
// formula: value / (value + scale) -> returns a factor between 0 and 1
func DiminishingReturns(value, scale float64) float64 {
	if value < 0 {
		return 0
	}
	return value / (value + scale)
}
