package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 0.1
	DefaultGravity = 9.81
	DefaultTheta0  = math.Pi / 10
)

// Pendulum holds the physical and initial constants of a simple pendulum
// in the small-angle approximation.
//
// ω0 and T0 are derived on every call and cannot be set directly. Mass does
// not enter ω0 but scales the energy.
type Pendulum struct {
	Mass      float64 // kg
	Length    float64 // m
	Gravity   float64 // m/s²
	Theta0    float64 // rad
	ThetaDot0 float64 // rad/s
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    DefaultMass,
		Length:  DefaultLength,
		Gravity: DefaultGravity,
		Theta0:  DefaultTheta0,
	}
}

// Omega0 is the natural angular frequency sqrt(g/l).
func (p *Pendulum) Omega0() float64 {
	return math.Sqrt(p.Gravity / p.Length)
}

// Period is the natural period 2π/ω0.
func (p *Pendulum) Period() float64 {
	return 2 * math.Pi / p.Omega0()
}

func (p *Pendulum) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"mass", p.Mass},
		{"length", p.Length},
		{"gravity", p.Gravity},
	} {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return dynamo.InvalidArgument("pendulum", f.name, f.value, "must be positive and finite")
		}
	}
	if math.IsNaN(p.Theta0) || math.IsInf(p.Theta0, 0) {
		return dynamo.InvalidArgument("pendulum", "theta0", p.Theta0, "must be finite")
	}
	if math.IsNaN(p.ThetaDot0) || math.IsInf(p.ThetaDot0, 0) {
		return dynamo.InvalidArgument("pendulum", "theta_dot0", p.ThetaDot0, "must be finite")
	}
	return nil
}

// Oscillator returns the linearized equation of motion θ'' = −ω0²θ.
func (p *Pendulum) Oscillator() *Oscillator {
	return &Oscillator{Omega0: p.Omega0()}
}

// Energy is H(θ, θ') = ½·m·l²·(θ'² + ω0²·θ²).
func (p *Pendulum) Energy(x dynamo.State) float64 {
	return p.energy(x[0], x[1])
}

func (p *Pendulum) energy(theta, thetaDot float64) float64 {
	w := p.Omega0()
	return 0.5 * p.Mass * p.Length * p.Length * (thetaDot*thetaDot + w*w*theta*theta)
}

// InitialEnergy is H(θ0, θ'0). With θ'0 = 0 it equals ½·m·g·l·θ0².
func (p *Pendulum) InitialEnergy() float64 {
	return p.energy(p.Theta0, p.ThetaDot0)
}

// EnergySeries applies Energy to every sample of tr.
func (p *Pendulum) EnergySeries(tr *dynamo.Trajectory) []float64 {
	out := make([]float64, tr.Len())
	for k := range out {
		out[k] = p.energy(tr.ThetaAt(k), tr.ThetaDotAt(k))
	}
	return out
}

// EnergyOf is EnergySeries over raw angle and velocity sequences.
func (p *Pendulum) EnergyOf(theta, thetaDot []float64) ([]float64, error) {
	if len(theta) != len(thetaDot) {
		return nil, dynamo.InvalidArgument("energy", "thetaDot", len(thetaDot),
			fmt.Sprintf("length must match theta (%d)", len(theta)))
	}
	out := make([]float64, len(theta))
	for k := range theta {
		out[k] = p.energy(theta[k], thetaDot[k])
	}
	return out, nil
}

// SetParam assigns a parameter by its configuration name. Values are not
// checked here; call Validate once all parameters are set.
func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "length":
		p.Length = value
	case "gravity":
		p.Gravity = value
	case "theta0":
		p.Theta0 = value
	case "theta_dot0":
		p.ThetaDot0 = value
	default:
		return dynamo.InvalidArgument("pendulum", "param", name, "unknown parameter")
	}
	return nil
}
