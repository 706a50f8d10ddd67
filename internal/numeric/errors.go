package numeric

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a value violates a construction contract.
var ErrInvalidArgument = errors.New("invalid argument")

// CheckInInterval returns v unchanged if the interval contains it.
func CheckInInterval(iv Interval, v float64) (float64, error) {
	if !iv.Contains(v) {
		return v, fmt.Errorf("%w: %g not in %s", ErrInvalidArgument, v, iv)
	}
	return v, nil
}
