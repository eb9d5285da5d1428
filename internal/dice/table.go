package dice

import (
	"errors"
	"sort"
)

// ErrEmptyOptions indicates a weighted choice was requested over nothing.
var ErrEmptyOptions = errors.New("at least one option must be provided")

// ErrWeightsMismatch indicates options and weights have different lengths.
var ErrWeightsMismatch = errors.New("options and weights must have the same length")

// Entry is one row of a threshold table: Outcome is selected by any roll at
// or below Threshold that no earlier row claimed.
type Entry[T any] struct {
	Outcome   T
	Threshold int
}

// Table is a threshold table ordered by ascending Threshold.
type Table[T any] []Entry[T]

// NewTable builds a Table from rows in any order. Rows sharing a threshold
// keep their declaration order.
func NewTable[T any](rows ...Entry[T]) Table[T] {
	t := make(Table[T], len(rows))
	copy(t, rows)
	sort.SliceStable(t, func(i, j int) bool { return t[i].Threshold < t[j].Threshold })
	return t
}

// Outcomes lists the table's outcomes in threshold order.
func (t Table[T]) Outcomes() []T {
	out := make([]T, len(t))
	for i, e := range t {
		out[i] = e.Outcome
	}
	return out
}

// Filter returns the rows whose outcome satisfies keep, preserving order and
// thresholds.
func (t Table[T]) Filter(keep func(T) bool) Table[T] {
	out := make(Table[T], 0, len(t))
	for _, e := range t {
		if keep(e.Outcome) {
			out = append(out, e)
		}
	}
	return out
}

// Seek returns the first outcome whose threshold is at or above roll. A roll
// beyond every threshold yields the highest-threshold outcome, so Seek never
// fails on a non-empty table. An empty table yields the zero value.
func Seek[T any](t Table[T], roll int) T {
	var zero T
	if len(t) == 0 {
		return zero
	}
	for _, e := range t {
		if roll <= e.Threshold {
			return e.Outcome
		}
	}
	return t[len(t)-1].Outcome
}

// Seek3d6 rolls 3d6 and seeks the table with the result.
func Seek3d6[T any](r *Roller, t Table[T]) T {
	return Seek(t, r.D6(3))
}

// Breakpoint maps a numeric key to a result value.
type Breakpoint struct {
	Key   float64
	Value float64
}

// Breakpoints is a breakpoint table ordered by ascending Key.
type Breakpoints []Breakpoint

// Search returns the value of the first breakpoint whose key is at or above
// key, falling back to the largest breakpoint. An empty table yields 0.
func Search(b Breakpoints, key float64) float64 {
	if len(b) == 0 {
		return 0
	}
	for _, bp := range b {
		if key <= bp.Key {
			return bp.Value
		}
	}
	return b[len(b)-1].Value
}

// Choice draws uniformly in [0, sum(weights)) and returns the option owning
// that slice. Non-positive total weight selects the first option.
func Choice[T any](r *Roller, options []T, weights []float64) (T, error) {
	var zero T
	if len(options) == 0 {
		return zero, ErrEmptyOptions
	}
	if len(options) != len(weights) {
		return zero, ErrWeightsMismatch
	}

	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return options[0], nil
	}

	x := r.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if x < cumulative {
			return options[i], nil
		}
	}
	return options[len(options)-1], nil
}

// Pick returns a uniformly chosen element of options, or the zero value when
// options is empty.
func Pick[T any](r *Roller, options []T) T {
	var zero T
	if len(options) == 0 {
		return zero
	}
	return options[r.IntN(len(options))]
}
