package integrators

import "github.com/san-kum/pendsim/internal/dynamo"

// ImplicitEuler is the backward Euler scheme. For the linear oscillator the
// implicit system has the closed form
//
//	θ'[n+1] = (θ'[n] − ω0²·θ[n]·dt) / (1 + (ω0·dt)²)
//	θ[n+1]  = (θ[n] + θ'[n]·dt) / (1 + (ω0·dt)²)
//
// It is unconditionally stable and loses a factor 1+(ω0·dt)² of energy per
// step.
type ImplicitEuler struct{}

func NewImplicitEuler() *ImplicitEuler {
	return &ImplicitEuler{}
}

func (e *ImplicitEuler) Name() string { return "implicit" }

func (e *ImplicitEuler) Integrate(theta0, thetaDot0, omega0, dt float64, n int) (*dynamo.Trajectory, error) {
	if err := dynamo.ValidateRun(e.Name(), theta0, thetaDot0, omega0, dt, n); err != nil {
		return nil, err
	}

	tr := dynamo.NewTrajectory(dt, n)
	w2 := omega0 * omega0
	h := omega0 * dt
	denom := 1 + h*h
	theta, thetaDot := theta0, thetaDot0
	tr.Set(0, theta, thetaDot)

	for k := 0; k < n; k++ {
		theta, thetaDot = (theta+thetaDot*dt)/denom, (thetaDot-w2*theta*dt)/denom
		tr.Set(k+1, theta, thetaDot)
	}

	return tr, nil
}
