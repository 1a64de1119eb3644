// Package sim implements the deterministic drift-survival simulation:
// a seeded random source, a fixed-step update loop, and the session
// state machine. Given the same seed and the same sequence of
// (dt, steering) inputs, two sessions produce bit-identical entity
// trajectories, which is what lets independent clients share a match
// without exchanging any simulation state.
package sim

// Source produces a reproducible stream of pseudo-random values in [0, 1).
// The simulation consumes draws in a fixed, documented order, so any
// replacement implementation (e.g. a scripted test source) observes the
// same call pattern as the production generator.
type Source interface {
	Next() float64
}

// Mulberry32 is a seeded pseudo-random generator over 32-bit integer
// state with wraparound arithmetic. The algorithm is pinned: every
// client in a match must produce the identical sequence from the same
// seed, so this is a bit-level contract and must not be altered.
type Mulberry32 struct {
	state uint32
	seed  uint32
}

// NewSource creates a generator for the given 32-bit seed.
func NewSource(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed, seed: seed}
}

// Seed returns the seed the generator was constructed with.
func (m *Mulberry32) Seed() uint32 {
	return m.seed
}

// Reset rewinds the generator to its initial seed.
func (m *Mulberry32) Reset() {
	m.state = m.seed
}

// Next returns the next value in [0, 1).
func (m *Mulberry32) Next() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}
