package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// EnergyDrift tracks max |H−H0|/|H0|, with H0 the first observed energy.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	ham           dynamo.Hamiltonian
}

func NewEnergyDrift(ham dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		ham:  ham,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := e.ham.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Ratio is the last observed energy over the first, or 1 before any
// non-zero energy has been seen.
func (e *EnergyDrift) Ratio() float64 {
	if e.initialEnergy == 0 {
		return 1
	}
	return e.currentEnergy / e.initialEnergy
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MeanEnergyDeviation is the mean of |H−H0| over all observed samples.
type MeanEnergyDeviation struct {
	name          string
	initialEnergy float64
	total         float64
	samples       int
	ham           dynamo.Hamiltonian
}

func NewMeanEnergyDeviation(ham dynamo.Hamiltonian) *MeanEnergyDeviation {
	return &MeanEnergyDeviation{
		name: "mean_energy_deviation",
		ham:  ham,
	}
}

func (m *MeanEnergyDeviation) Name() string { return m.name }

func (m *MeanEnergyDeviation) Observe(x dynamo.State, t float64) {
	energy := m.ham.Energy(x)
	if m.samples == 0 {
		m.initialEnergy = energy
	}
	m.total += math.Abs(energy - m.initialEnergy)
	m.samples++
}

func (m *MeanEnergyDeviation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanEnergyDeviation) Reset() {
	m.initialEnergy = 0
	m.total = 0
	m.samples = 0
}

// PeriodMeans splits values into consecutive windows of samplesPerPeriod
// and returns the mean of each complete window. The sample closing the
// last window belongs to the next one and is dropped, so a run of N+1
// samples over exactly P periods yields P means.
func PeriodMeans(values []float64, samplesPerPeriod int) []float64 {
	if samplesPerPeriod <= 0 || len(values) < samplesPerPeriod {
		return nil
	}

	periods := (len(values) - 1) / samplesPerPeriod
	if periods == 0 {
		periods = 1
	}

	means := make([]float64, periods)
	for k := range means {
		window := values[k*samplesPerPeriod : (k+1)*samplesPerPeriod]
		means[k] = stat.Mean(window, nil)
	}
	return means
}
