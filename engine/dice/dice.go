// Package dice isolates every random draw the engine makes behind a single
// injectable Source, so combat formulas stay deterministic under test. The
// concrete RNG tracks its draw position, enabling exact restore on load.
package dice

import "math/rand"

// Source is the one capability the engine needs from a random generator:
// a uniform integer draw in [0, n). Tests substitute fixed-value stubs.
type Source interface {
	IntN(n int) int
}

// RNG is a seeded Source with deterministic position tracking.
// Position increments with every draw, enabling save/restore.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// IntN returns a uniform integer in [0, n).
func (r *RNG) IntN(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Seed returns the seed this RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Restore creates an RNG from seed and advances it to the given position,
// reproducing the exact generator state for save/load.
func Restore(seed int64, position int64) *RNG {
	rng := New(seed)
	for i := int64(0); i < position; i++ {
		rng.src.Int63()
	}
	rng.pos = position
	return rng
}

// Between returns a uniform integer in [lo, hi], inclusive on both ends.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Chance returns true with the given percent probability, clamped to [0, 100].
func Chance(src Source, percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return src.IntN(100) < percent
}

// Pick returns a uniformly chosen element of items. Panics on empty input;
// callers own the non-empty precondition.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
