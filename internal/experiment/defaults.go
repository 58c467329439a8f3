package experiment

import (
	"math"

	"github.com/san-kum/pendsim/internal/metrics"
	"github.com/san-kum/pendsim/internal/physics"
)

// StabilityFactor scales the initial amplitude into the bound used by the
// stability metric.
const StabilityFactor = 1.5

// DefaultMetrics returns fresh metrics for one run of p.
func DefaultMetrics(p *physics.Pendulum) []metrics.Metric {
	amp := math.Hypot(p.Theta0, p.ThetaDot0/p.Omega0())
	return []metrics.Metric{
		metrics.NewEnergyDrift(p),
		metrics.NewMeanEnergyDeviation(p),
		metrics.NewStability(StabilityFactor * amp),
	}
}
