package integrators

import "github.com/san-kum/pendsim/internal/dynamo"

// Scheme produces a whole trajectory of θ'' = −ω0²θ from (θ0, θ'0) with
// n steps of size dt. The result always has n+1 samples, sample 0 being
// the initial condition.
//
// Implementations keep no state between calls and may be shared across
// goroutines.
type Scheme interface {
	Name() string
	Integrate(theta0, thetaDot0, omega0, dt float64, n int) (*dynamo.Trajectory, error)
}
