package dice

import (
	"errors"
)

var (
	// ErrNoWeights is returned when there is nothing to draw from
	ErrNoWeights = errors.New("no weights to draw from")

	// ErrInvalidWeight is returned for negative weights or a zero total
	ErrInvalidWeight = errors.New("weights must be non-negative with a positive total")
)

// Weighted draws an index using cumulative-interval sampling: r is drawn
// uniformly in [0, total) and the weights are walked in order, subtracting
// each one until r falls inside a weight's interval.
func Weighted(roller Roller, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, ErrNoWeights
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return 0, ErrInvalidWeight
		}
		total += w
	}
	if total <= 0 {
		return 0, ErrInvalidWeight
	}

	r := roller.Float64() * total
	last := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		if r < w {
			return i, nil
		}
		r -= w
		last = i
	}

	// Float rounding can leave r a hair above the final interval
	return last, nil
}

// Pick returns a uniformly chosen element, or false for an empty slice
func Pick[T any](roller Roller, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[roller.Intn(len(items))], true
}
