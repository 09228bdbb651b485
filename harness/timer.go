package harness

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument is returned for unusable iteration counts and
// strategy registrations.
var ErrInvalidArgument = errors.New("invalid argument")

// Measure calls op iterations times back to back and returns the mean
// wall-clock nanoseconds per call, truncated. The first error from op stops
// the loop and is returned as is.
func Measure(op func() error, iterations int) (int64, error) {
	if iterations <= 0 {
		return 0, fmt.Errorf(
			"%w: iterations must be positive, got %d",
			ErrInvalidArgument, iterations,
		)
	}

	start := time.Now()

	for i := 0; i < iterations; i++ {
		if err := op(); err != nil {
			return 0, err
		}
	}

	elapsed := time.Since(start)

	return elapsed.Nanoseconds() / int64(iterations), nil
}
