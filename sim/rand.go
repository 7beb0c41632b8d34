package sim

import (
	"math/rand"
	"time"
)

// Rand is the single source of nondeterminism in the simulation. The engine
// draws every roll through this interface so tests can script market
// behavior exactly.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a time-seeded source for normal play. *rand.Rand
// satisfies Rand directly, so tests can also pass a fixed-seed source.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
