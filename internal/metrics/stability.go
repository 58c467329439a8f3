package metrics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Stability is the fraction of samples whose angle stays within threshold.
// With threshold set to a multiple of the initial amplitude it flags the
// explicit scheme's unbounded growth.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.samples++
	if len(x) == 0 || !x.IsValid() || math.Abs(x[0]) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
