// Package rng provides the deterministic pseudo-random source shared by
// terrain generation, the match engine and the AI.
//
// The generator is mulberry32: a single 32-bit state advanced by a fixed
// mixing function. The same seed always yields the same sequence, which is
// what makes a match replayable from its seed alone.
package rng

import "math"

// RNG is a seeded mulberry32 generator. It is not safe for concurrent use;
// each match owns its own instance.
type RNG struct {
	state uint32
}

// New creates a generator seeded with the low 32 bits of seed.
func New(seed int64) *RNG {
	return &RNG{state: uint32(seed)}
}

// State returns the current internal state.
func (r *RNG) State() uint32 {
	return r.state
}

// Next returns a float in [0, 1).
func (r *RNG) Next() float64 {
	r.state += 0x6d2b79f5
	s := r.state
	t := (s ^ (s >> 15)) * (1 | s)
	t = (t + (t^(t>>7))*(61|t)) ^ t
	return float64(t^(t>>14)) / 4294967296
}

// Range returns a float in [min, max).
func (r *RNG) Range(min, max float64) float64 {
	return min + r.Next()*(max-min)
}

// Int returns an integer in [min, max], both inclusive.
func (r *RNG) Int(min, max int) int {
	return int(math.Floor(r.Range(float64(min), float64(max+1))))
}

// Pick returns a uniformly chosen index in [0, n). n must be positive.
func (r *RNG) Pick(n int) int {
	return int(r.Next() * float64(n))
}
