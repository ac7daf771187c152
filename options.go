package trimesh

import (
	"math"

	"github.com/pkg/errors"
)

// DistanceOptions bounds how far the reported distance may be from the true minimum.
// The zero value asks for the exact distance.
//
// The reported distance is always achieved by a pair of points on the models, so it never
// falls below the true minimum: a tolerance lets the query overestimate, never underestimate.
// With a reported distance d, the true minimum lies in [d - AbsoluteError, d] and is at least
// d * (1 - RelativeError).
//
// Both bounds hold at the same time: the search stops on a node pair only when it can improve
// the best distance by neither more than AbsoluteError nor more than RelativeError of it. Setting
// only one of them therefore still gives the exact distance.
type DistanceOptions struct {
	// AbsoluteError is the largest accepted difference between the reported and the true distance.
	AbsoluteError float64
	// RelativeError is the largest accepted fraction of the reported distance, in [0, 1].
	RelativeError float64
}

// DefaultDistanceOptions returns exact tolerances.
func DefaultDistanceOptions() DistanceOptions {
	return DistanceOptions{}
}

// Validate reports options that queries would have to clamp.
func (o DistanceOptions) Validate() error {
	if math.IsNaN(o.AbsoluteError) || math.IsInf(o.AbsoluteError, 0) || o.AbsoluteError < 0 {
		return errors.Errorf("absolute error must be a finite value >= 0, got %v", o.AbsoluteError)
	}
	if math.IsNaN(o.RelativeError) || o.RelativeError < 0 || o.RelativeError > 1 {
		return errors.Errorf("relative error must be in [0, 1], got %v", o.RelativeError)
	}
	return nil
}

// clamped maps invalid values into range: NaN and negatives become 0, the relative error is
// capped at 1 and an infinite absolute error at the largest finite value.
func (o DistanceOptions) clamped() DistanceOptions {
	abs := o.AbsoluteError
	if math.IsNaN(abs) || abs < 0 {
		abs = 0
	}
	abs = math.Min(abs, math.MaxFloat64)

	rel := o.RelativeError
	if math.IsNaN(rel) || rel < 0 {
		rel = 0
	}
	rel = math.Min(rel, 1)

	return DistanceOptions{AbsoluteError: abs, RelativeError: rel}
}

// prunes reports whether a node pair whose distance is at least bound can be skipped, given the
// best distance found so far. Pairs that may overlap (bound == 0) are never skipped.
func (o DistanceOptions) prunes(bound, best float64) bool {
	if bound <= 0 || math.IsInf(best, 1) {
		return false
	}
	return bound >= math.Max(best-o.AbsoluteError, best*(1-o.RelativeError))
}
