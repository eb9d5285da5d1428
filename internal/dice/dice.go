// Package dice implements the table resolution engine every generator rolls
// against: dice totals, cosmetic jitter, and the three table lookups
// (threshold seek, breakpoint search, weighted choice).
//
// A Roller is the only randomness entry point. It is not safe for concurrent
// use; parallel callers derive one Roller per goroutine with Derive.
package dice

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
)

// Source is the stream of random numbers a Roller draws from. *rand.Rand from
// math/rand/v2 satisfies it, as does Script.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// Roller rolls dice against a Source.
type Roller struct {
	src  Source
	seed int64
}

// NewRoller returns a Roller backed by a PCG generator. Two rollers built
// from the same seed produce identical streams.
func NewRoller(seed int64) *Roller {
	// Non-cryptographic PRNG is intentional for reproducible generation.
	// #nosec G404
	src := rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
	return &Roller{src: src, seed: seed}
}

// New wraps an arbitrary Source, typically a Script in tests.
func New(src Source) *Roller {
	return &Roller{src: src}
}

// Seed reports the seed the roller was built from, or 0 for wrapped sources.
func (r *Roller) Seed() int64 {
	return r.seed
}

// Derive returns an independent Roller whose seed is drawn from this one.
// Deriving consumes one value from the parent stream.
func (r *Roller) Derive() *Roller {
	return NewRoller(int64(r.src.IntN(math.MaxInt64)))
}

// RollDice sums count uniform draws in [1, sides] and adds modifier. A
// non-positive count or sides rolls nothing and returns the modifier alone.
func (r *Roller) RollDice(count, sides, modifier int) int {
	total := modifier
	if count <= 0 || sides <= 0 {
		return total
	}
	for i := 0; i < count; i++ {
		total += r.src.IntN(sides) + 1
	}
	return total
}

// RollClamped is RollDice with the total clamped to [low, high].
func (r *Roller) RollClamped(count, sides, modifier, low, high int) int {
	return Clamp(r.RollDice(count, sides, modifier), low, high)
}

// D6 rolls count six-sided dice.
func (r *Roller) D6(count int) int {
	return r.RollDice(count, 6, 0)
}

// Vary multiplies value by a uniform factor in [1-factor, 1+factor].
func (r *Roller) Vary(value, factor float64) float64 {
	fudge := r.src.Float64()*(2*factor) + (1 - factor)
	return value * fudge
}

// Chance reports whether a single 1d6 roll lands on six.
func (r *Roller) Chance() bool {
	return r.D6(1) == 6
}

// Float64 exposes the underlying uniform draw in [0, 1).
func (r *Roller) Float64() float64 {
	return r.src.Float64()
}

// IntN exposes the underlying uniform integer draw in [0, n).
func (r *Roller) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.src.IntN(n)
}

// Clamp bounds v to [low, high].
func Clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
