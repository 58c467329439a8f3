package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/physics"
)

func growingTrajectory(n int, factor float64) *dynamo.Trajectory {
	tr := dynamo.NewTrajectory(0.1, n)
	theta := 1.0
	for k := 0; k <= n; k++ {
		tr.Set(k, theta, 0)
		theta *= factor
	}
	return tr
}

func TestEnergyDrift(t *testing.T) {
	osc := physics.NewOscillator(1)
	m := NewEnergyDrift(osc)

	// H = θ²/2, so doubling θ quadruples H.
	drift := Evaluate(m, growingTrajectory(2, 2))

	if math.Abs(drift-15) > 1e-12 {
		t.Errorf("expected drift 15, got %f", drift)
	}
	if math.Abs(m.Ratio()-16) > 1e-12 {
		t.Errorf("expected ratio 16, got %f", m.Ratio())
	}

	m.Reset()
	if m.Value() != 0 || m.Ratio() != 1 {
		t.Errorf("expected cleared metric after reset, got drift %f ratio %f", m.Value(), m.Ratio())
	}
}

func TestMeanEnergyDeviation(t *testing.T) {
	osc := physics.NewOscillator(1)
	m := NewMeanEnergyDeviation(osc)

	// H = 0.5, 2, 8: deviations 0, 1.5, 7.5.
	got := Evaluate(m, growingTrajectory(2, 2))
	if math.Abs(got-3) > 1e-12 {
		t.Errorf("expected mean deviation 3, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestEvaluateResetsFirst(t *testing.T) {
	m := NewEnergyDrift(physics.NewOscillator(1))
	m.Observe(dynamo.State{100, 0}, 0)

	if drift := Evaluate(m, growingTrajectory(0, 1)); drift != 0 {
		t.Errorf("expected stale observations discarded, got %f", drift)
	}
}

func TestPeriodMeans(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		spp      int
		expected []float64
	}{
		{"three periods", []float64{1, 1, 2, 2, 3, 3, 99}, 2, []float64{1, 2, 3}},
		{"single window", []float64{1, 2, 3}, 3, []float64{2}},
		{"too short", []float64{1}, 2, nil},
		{"bad window", []float64{1, 2}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeriodMeans(tt.values, tt.spp)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if math.Abs(got[i]-tt.expected[i]) > 1e-12 {
					t.Errorf("window %d: expected %f, got %f", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestStability(t *testing.T) {
	m := NewStability(3)

	if m.Value() != 1 {
		t.Errorf("expected 1 before observations, got %f", m.Value())
	}

	// θ = 1, 2, 4, 8: two samples exceed the threshold.
	got := Evaluate(m, growingTrajectory(3, 2))
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %f", got)
	}

	m.Observe(dynamo.State{math.NaN(), 0}, 0)
	if m.Value() >= got {
		t.Error("expected NaN state counted as a violation")
	}
}

func TestL2Error(t *testing.T) {
	ref := dynamo.NewTrajectory(0.1, 1)
	ref.Set(0, 1, 0)
	ref.Set(1, 1, 0)

	num := dynamo.NewTrajectory(0.1, 1)
	num.Set(0, 1, 0)
	num.Set(1, 3, 4)

	// sqrt((2² + 4²)/2) with θ0 = ω0 = 1.
	got, err := L2Error(num, ref, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-math.Sqrt(10)) > 1e-12 {
		t.Errorf("expected %f, got %f", math.Sqrt(10), got)
	}

	// Normalization scales each component independently.
	got, err = L2Error(num, ref, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Sqrt((1 + 1) / 2.0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}

	if got, _ := L2Error(ref, ref, 1, 1); got != 0 {
		t.Errorf("expected zero self-distance, got %f", got)
	}
}

func TestL2ErrorDoesNotCopy(t *testing.T) {
	num := growingTrajectory(10000, 1.0001)
	ref := growingTrajectory(10000, 1)

	allocs := testing.AllocsPerRun(10, func() {
		if _, err := L2Error(num, ref, 1, 1); err != nil {
			t.Fatal(err)
		}
	})
	if allocs != 0 {
		t.Errorf("expected no allocations, got %.0f", allocs)
	}
}

func TestL2ErrorInvalid(t *testing.T) {
	a := dynamo.NewTrajectory(0.1, 3)
	b := dynamo.NewTrajectory(0.1, 4)

	tests := []struct {
		name     string
		num, ref *dynamo.Trajectory
		theta0   float64
		omega0   float64
	}{
		{"nil num", nil, a, 1, 1},
		{"nil ref", a, nil, 1, 1},
		{"length mismatch", a, b, 1, 1},
		{"zero theta0", a, a, 0, 1},
		{"zero omega0", a, a, 1, 0},
		{"negative omega0", a, a, 1, -2},
		{"nan theta0", a, a, math.NaN(), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := L2Error(tt.num, tt.ref, tt.theta0, tt.omega0)
			if !errors.Is(err, dynamo.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}
