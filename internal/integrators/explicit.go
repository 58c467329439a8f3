package integrators

import "github.com/san-kum/pendsim/internal/dynamo"

// ExplicitEuler is the forward Euler scheme. Both updates use the state at
// step n, so the energy grows by a factor 1+(ω0·dt)² every step.
type ExplicitEuler struct{}

func NewExplicitEuler() *ExplicitEuler {
	return &ExplicitEuler{}
}

func (e *ExplicitEuler) Name() string { return "explicit" }

func (e *ExplicitEuler) Integrate(theta0, thetaDot0, omega0, dt float64, n int) (*dynamo.Trajectory, error) {
	if err := dynamo.ValidateRun(e.Name(), theta0, thetaDot0, omega0, dt, n); err != nil {
		return nil, err
	}

	tr := dynamo.NewTrajectory(dt, n)
	w2 := omega0 * omega0
	theta, thetaDot := theta0, thetaDot0
	tr.Set(0, theta, thetaDot)

	for k := 0; k < n; k++ {
		theta, thetaDot = theta+thetaDot*dt, thetaDot-w2*theta*dt
		tr.Set(k+1, theta, thetaDot)
	}

	return tr, nil
}
