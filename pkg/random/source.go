package random

import (
	"math/rand/v2"
)

// Source supplies the two kinds of draws the generator needs.
type Source interface {
	// IntN returns a uniformly distributed integer in [0, n). n must be > 0.
	IntN(n int) int
	// Bool returns true with probability p. p <= 0 is always false and
	// p >= 1 is always true.
	Bool(p float64) bool
}

// Rand is a Source backed by a PCG generator.
type Rand struct {
	seed   uint64
	stream uint64
	rng    *rand.Rand
}

// New returns a Rand seeded from the runtime's entropy source.
func New() *Rand {
	return NewSeeded(rand.Uint64())
}

// NewSeeded returns a Rand whose draws are fully determined by seed.
func NewSeeded(seed uint64) *Rand {
	return NewStream(seed, 0)
}

// NewStream returns a Rand for the given seed and stream. Streams with the
// same seed but different stream numbers are independent.
func NewStream(seed, stream uint64) *Rand {
	return &Rand{
		seed:   seed,
		stream: stream,
		rng:    rand.New(rand.NewPCG(seed, stream)),
	}
}

// Seed returns the seed the Rand was created with.
func (r *Rand) Seed() uint64 { return r.seed }

// Derive returns an independent Rand for worker i. Deriving is
// deterministic: the same parent seed and index yield the same stream.
func (r *Rand) Derive(i int) *Rand {
	return NewStream(r.seed, r.stream+uint64(i)+1)
}

// IntN implements Source.
func (r *Rand) IntN(n int) int {
	return r.rng.IntN(n)
}

// Bool implements Source.
func (r *Rand) Bool(p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return r.rng.Float64() < p
}
