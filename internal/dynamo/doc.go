// Package dynamo provides the core value types shared by the pendulum
// schemes and their consumers.
//
//   - [State]: phase-space point {θ, θ'}
//   - [Trajectory]: N+1 samples of (θ, θ') at t_k = k·dt, immutable once built
//   - [System]: ODE right-hand side, used by the stepped reference integrators
//   - [Integrator]: single-step integrator interface
//   - [Hamiltonian]: energy functional of a state
//
// # Errors
//
// Every rejected input wraps [ErrInvalidArgument]:
//
//	tr, err := integrators.NewExplicitEuler().Integrate(theta0, 0, omega0, -1, 10)
//	if errors.Is(err, dynamo.ErrInvalidArgument) {
//	    // dt was not positive
//	}
//
// # Thread Safety
//
// A Trajectory is never modified after it is returned, so it may be read
// from any number of goroutines.
package dynamo
