package dynamo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned for every rejected input: non-positive
// step sizes, negative step counts, values outside the analytical domain,
// and mismatched trajectory lengths.
var ErrInvalidArgument = errors.New("dynamo: invalid argument")

// ArgumentError describes which argument of which operation was rejected.
type ArgumentError struct {
	Op     string
	Arg    string
	Value  any
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s=%v: %s", e.Op, e.Arg, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// InvalidArgument builds an *ArgumentError.
func InvalidArgument(op, arg string, value any, reason string) error {
	return &ArgumentError{Op: op, Arg: arg, Value: value, Reason: reason}
}

// ValidateRun checks the arguments shared by every scheme.
func ValidateRun(op string, theta0, thetaDot0, omega0, dt float64, n int) error {
	if math.IsNaN(theta0) || math.IsInf(theta0, 0) {
		return InvalidArgument(op, "theta0", theta0, "must be finite")
	}
	if math.IsNaN(thetaDot0) || math.IsInf(thetaDot0, 0) {
		return InvalidArgument(op, "thetaDot0", thetaDot0, "must be finite")
	}
	if !(omega0 > 0) || math.IsInf(omega0, 0) {
		return InvalidArgument(op, "omega0", omega0, "must be positive and finite")
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return InvalidArgument(op, "dt", dt, "must be positive and finite")
	}
	if n < 0 {
		return InvalidArgument(op, "n", n, "must not be negative")
	}
	return nil
}
