// Package rng provides a deterministic pseudo-random stream derived from a string seed.
// The stream must reproduce bit-for-bit across runs because grid layouts built from it
// are persisted and shown to the user.
package rng

import "unicode/utf16"

const (
	multiplier = 1103515245
	increment  = 12345
	modulus    = 1 << 31
)

// Generator is a linear congruential generator seeded from a string.
type Generator struct {
	state uint64
}

// New creates a Generator whose output depends only on seed.
func New(seed string) *Generator {
	return &Generator{state: HashSeed(seed)}
}

// HashSeed hashes seed to a non-zero state below 2^31.
// The hash is the 32-bit wrapping h*31+c over UTF-16 code units.
func HashSeed(seed string) uint64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		h = (h << 5) - h + int32(unit)
	}

	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}

	state := uint64(abs) % modulus
	if state == 0 {
		state = 1
	}
	return state
}

// Next advances the generator and returns a float in [0, 1).
func (g *Generator) Next() float64 {
	g.state = (multiplier*g.state + increment) % modulus
	return float64(g.state) / modulus
}

// Intn returns an int in [0, n). n must be positive.
func (g *Generator) Intn(n int) int {
	return int(g.Next() * float64(n))
}

// Shuffle returns a Fisher-Yates shuffled copy of items. The input is not modified.
func Shuffle[T any](g *Generator, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
