package matching

import (
	"errors"
	"fmt"
	"math"
)

// weightTolerance is how far the weight sum may drift from 1.0 unnoticed
const weightTolerance = 0.001

// ErrWeightsNotNormalized is returned by CheckWeights for a weight vector
// that is negative somewhere or does not sum to 1.0
var ErrWeightsNotNormalized = errors.New("weights not normalized")

// Aggregate returns round(100 × Σ factor·weight). Weights are used as given.
func Aggregate(f FactorVector, w Weights) int {
	var total float64
	for _, factor := range Factors {
		total += f.Get(factor) * w.Get(factor)
	}
	if math.IsNaN(total) {
		return 0
	}
	return int(math.Round(total * 100))
}

// CheckWeights reports whether w is a proper weight vector
func CheckWeights(w Weights) error {
	var errs []error
	for _, f := range Factors {
		v := w.Get(f)
		if math.IsNaN(v) || v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s weight is %v", ErrWeightsNotNormalized, f, v))
		}
	}
	if sum := w.Sum(); math.IsNaN(sum) || math.Abs(sum-1.0) > weightTolerance {
		errs = append(errs, fmt.Errorf("%w: weights sum to %.4f", ErrWeightsNotNormalized, sum))
	}
	return errors.Join(errs...)
}
