// internal/prospects/random.go
package prospects

import (
	"math/rand/v2"
	"time"
)

// Rand is the source of every random draw the generator makes.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Clock returns the current time.
type Clock func() time.Time

// NewRand returns a deterministic Rand for the given seed.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeededRand returns a Rand seeded from the wall clock.
func NewTimeSeededRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// shuffle is a Fisher-Yates shuffle driven by r so that tests can script it.
func shuffle(r Rand, items []string) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func pick(r Rand, items []string) string {
	return items[r.IntN(len(items))]
}
