package physics

import "github.com/san-kum/pendsim/internal/dynamo"

// Oscillator is the harmonic oscillator θ'' = −ω0²θ written as a
// first-order system over {θ, θ'}.
type Oscillator struct {
	Omega0 float64
}

func NewOscillator(omega0 float64) *Oscillator {
	return &Oscillator{Omega0: omega0}
}

func (o *Oscillator) StateDim() int { return 2 }

func (o *Oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -o.Omega0 * o.Omega0 * x[0]}
}

// Energy is the energy per unit m·l².
func (o *Oscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[1]*x[1] + o.Omega0*o.Omega0*x[0]*x[0])
}
