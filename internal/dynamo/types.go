package dynamo

import (
	"math"
)

// State is a phase-space point. For the pendulum it is {θ, θ'}.
type State []float64

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is a first-order ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Hamiltonian is implemented by systems that can report their total energy.
type Hamiltonian interface {
	Energy(x State) float64
}

// Integrator advances a System by one step.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// StepsFor returns the number of steps of size dt needed to cover duration.
// Durations that are an exact multiple of dt up to rounding noise are not
// rounded up to an extra step.
func StepsFor(duration, dt float64) int {
	return int(math.Ceil(duration/dt - 1e-9))
}
