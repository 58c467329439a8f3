package integrators

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Analytical samples the closed-form solution at t_k = k·dt. It has the
// same signature as the numerical schemes so it can serve as their
// reference.
type Analytical struct{}

func NewAnalytical() *Analytical {
	return &Analytical{}
}

func (a *Analytical) Name() string { return "analytical" }

// CheckAnalyticalDomain requires θ0 ≠ 0 and |θ'0/(θ0·ω0)| ≤ 1.
func CheckAnalyticalDomain(theta0, thetaDot0, omega0 float64) error {
	if theta0 == 0 {
		return dynamo.InvalidArgument("analytical", "theta0", theta0, "must be non-zero")
	}
	ratio := thetaDot0 / (theta0 * omega0)
	if math.Abs(ratio) > 1 {
		return dynamo.InvalidArgument("analytical", "thetaDot0", thetaDot0,
			"|thetaDot0/(theta0*omega0)| must not exceed 1")
	}
	return nil
}

// Integrate evaluates θ(t) = A·cos(ω0·t + φ), θ'(t) = −ω0·A·sin(ω0·t + φ)
// with A and φ chosen so that the solution passes through (θ0, θ'0) at t=0.
// When θ'0 = 0 this is θ0·cos(ω0·t).
func (a *Analytical) Integrate(theta0, thetaDot0, omega0, dt float64, n int) (*dynamo.Trajectory, error) {
	if err := dynamo.ValidateRun(a.Name(), theta0, thetaDot0, omega0, dt, n); err != nil {
		return nil, err
	}
	if err := CheckAnalyticalDomain(theta0, thetaDot0, omega0); err != nil {
		return nil, err
	}

	amp := math.Hypot(theta0, thetaDot0/omega0)
	phi := math.Atan2(-thetaDot0/omega0, theta0)

	tr := dynamo.NewTrajectory(dt, n)
	for k := 0; k <= n; k++ {
		s, c := math.Sincos(omega0*float64(k)*dt + phi)
		tr.Set(k, amp*c, -omega0*amp*s)
	}

	return tr, nil
}
