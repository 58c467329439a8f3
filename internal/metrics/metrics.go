package metrics

import "github.com/san-kum/pendsim/internal/dynamo"

// Metric accumulates a scalar over a stream of observed states.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Evaluate resets m, feeds it every sample of tr and returns the result.
func Evaluate(m Metric, tr *dynamo.Trajectory) float64 {
	m.Reset()
	for k := 0; k < tr.Len(); k++ {
		m.Observe(tr.At(k), tr.Time(k))
	}
	return m.Value()
}
