package integrators

import (
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/physics"
)

// Stepped turns a single-step [dynamo.Integrator] into a Scheme over the
// harmonic oscillator. A fresh stepper is built for every call because
// steppers keep scratch buffers.
type Stepped struct {
	name       string
	newStepper func() dynamo.Integrator
}

func NewStepped(name string, newStepper func() dynamo.Integrator) *Stepped {
	return &Stepped{name: name, newStepper: newStepper}
}

func (s *Stepped) Name() string { return s.name }

func (s *Stepped) Integrate(theta0, thetaDot0, omega0, dt float64, n int) (*dynamo.Trajectory, error) {
	if err := dynamo.ValidateRun(s.name, theta0, thetaDot0, omega0, dt, n); err != nil {
		return nil, err
	}

	sys := physics.NewOscillator(omega0)
	stepper := s.newStepper()

	tr := dynamo.NewTrajectory(dt, n)
	x := dynamo.State{theta0, thetaDot0}
	tr.Set(0, x[0], x[1])

	for k := 0; k < n; k++ {
		x = stepper.Step(sys, x, tr.Time(k), dt)
		tr.Set(k+1, x[0], x[1])
	}

	return tr, nil
}
