// Package physics describes the linearized simple pendulum.
//
//   - [Pendulum]: mass, length, gravity and initial conditions, with the
//     derived natural frequency ω0 = sqrt(g/l) and period T0 = 2π/ω0
//   - [Oscillator]: θ'' = −ω0²θ as a [dynamo.System]
//
// Both implement [dynamo.Hamiltonian]. The pendulum energy is
//
//	H(θ, θ') = ½·m·l²·(θ'² + ω0²·θ²)
//
// and is used to compare schemes, never to drive them:
//
//	p := physics.NewPendulum()
//	h := p.EnergySeries(tr)
//	ratio := h[len(h)-1] / p.InitialEnergy()
package physics
