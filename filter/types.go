package filter

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned when a strategy receives an unusable parameter
var ErrInvalidArgument = errors.New("invalid argument")

// Strategy is the interface that all filtering strategies must implement
type Strategy interface {
	// Name returns the registry name of the strategy
	Name() string
	// Apply filters the input and returns a new slice of the same length
	Apply(ctx context.Context, input []string) ([]string, error)
}

func validateThreshold(threshold int) error {
	if threshold < 0 {
		return fmt.Errorf("%w: threshold must not be negative, got %d", ErrInvalidArgument, threshold)
	}
	return nil
}

// windowSize converts a threshold into the number of runes a shared window spans.
// Only runs strictly longer than the threshold are removed.
func windowSize(threshold int) int {
	if threshold == math.MaxInt {
		return math.MaxInt
	}
	return threshold + 1
}

func copyStrings(input []string) []string {
	out := make([]string, len(input))
	copy(out, input)
	return out
}
