package dice

import (
	"math/rand/v2"
	"sync"
)

// randomRoller implements Roller on the process-wide generator
type randomRoller struct{}

// NewRandomRoller creates a roller backed by math/rand/v2.
// Safe for concurrent use.
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Intn implements Roller.Intn
func (r *randomRoller) Intn(n int) int {
	return rand.IntN(n)
}

// Float64 implements Roller.Float64
func (r *randomRoller) Float64() float64 {
	return rand.Float64()
}

// seededRoller is a reproducible roller, used by previews and simulations
type seededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRoller creates a deterministic roller for the given seed
func NewSeededRoller(seed uint64) Roller {
	return &seededRoller{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Intn implements Roller.Intn
func (r *seededRoller) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// Float64 implements Roller.Float64
func (r *seededRoller) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}
