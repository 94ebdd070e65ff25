package rerank

import (
	"errors"
	"fmt"
	"math"

	"shopSense/domain"
)

// ErrInvalidWeights signals a weight set that does not sum to one.
var ErrInvalidWeights = errors.New("ranking weights must sum to 1.0")

const weightSumTolerance = 1e-6

// Weights is the blend applied to the four ranking sub-scores.
type Weights struct {
	Semantic   float64
	Value      float64
	Preference float64
	Review     float64
}

func (w Weights) Validate() error {
	sum := w.Semantic + w.Value + w.Preference + w.Review
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: got %.6f", ErrInvalidWeights, sum)
	}
	return nil
}

var balancedWeights = Weights{Semantic: 0.45, Value: 0.25, Preference: 0.20, Review: 0.10}

// Priority-specific weight profiles. Priorities without a dedicated row,
// including eco, use the balanced blend; eco intent is already expressed
// through the preference sub-score.
var priorityWeights = map[string]Weights{
	domain.PriorityPrice:   {Semantic: 0.20, Value: 0.60, Preference: 0.10, Review: 0.10},
	domain.PriorityQuality: {Semantic: 0.30, Value: 0.15, Preference: 0.20, Review: 0.35},
}

// WeightsForPriority resolves the weight profile for an intent priority and
// fails construction if the profile is inconsistent.
func WeightsForPriority(priority string) (Weights, error) {
	weights, ok := priorityWeights[priority]
	if !ok {
		weights = balancedWeights
	}
	if err := weights.Validate(); err != nil {
		return Weights{}, err
	}
	return weights, nil
}
