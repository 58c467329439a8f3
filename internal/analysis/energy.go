package analysis

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/metrics"
	"github.com/san-kum/pendsim/internal/physics"
)

type EnergyStats struct {
	Initial       float64
	Final         float64
	FinalRatio    float64
	MaxDrift      float64
	MeanDeviation float64
	// PeriodMeans holds the mean |H−H0| of each complete period.
	PeriodMeans []float64
}

// EnergyReport evaluates the pendulum Hamiltonian along tr.
func EnergyReport(p *physics.Pendulum, tr *dynamo.Trajectory) EnergyStats {
	h := p.EnergySeries(tr)
	if len(h) == 0 {
		return EnergyStats{}
	}

	drift := metrics.NewEnergyDrift(p)
	mean := metrics.NewMeanEnergyDeviation(p)
	metrics.Evaluate(drift, tr)
	metrics.Evaluate(mean, tr)

	dev := make([]float64, len(h))
	for i, e := range h {
		dev[i] = math.Abs(e - h[0])
	}

	stats := EnergyStats{
		Initial:       h[0],
		Final:         h[len(h)-1],
		FinalRatio:    drift.Ratio(),
		MaxDrift:      drift.Value(),
		MeanDeviation: mean.Value(),
	}

	if spp := int(math.Round(p.Period() / tr.Dt())); spp > 0 {
		stats.PeriodMeans = metrics.PeriodMeans(dev, spp)
	}
	return stats
}
