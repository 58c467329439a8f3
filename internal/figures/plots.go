package figures

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/experiment"
)

// Fit lines are drawn over this range of dt/T0.
const (
	FitRangeMin = 1e-6
	FitRangeMax = 1e-2
)

func (r *Renderer) phasePoints(s *experiment.Study, tr *dynamo.Trajectory) ([]analysis.PhasePoint, error) {
	if r.Normalize {
		return analysis.Normalize(tr, s.Pendulum.Theta0, s.Pendulum.Omega0())
	}
	return analysis.Raw(tr), nil
}

// PhaseDiagram plots θ' against θ for every run, with the analytical orbit
// dashed when the study has one.
func (r *Renderer) PhaseDiagram(s *experiment.Study) (string, error) {
	p := plot.New()
	p.Title.Text = "Phase diagram"
	if r.Normalize {
		p.X.Label.Text = "θ/θ0"
		p.Y.Label.Text = "θ'/(ω0·θ0)"
	} else {
		p.X.Label.Text = "θ (rad)"
		p.Y.Label.Text = "θ' (rad/s)"
	}
	stylePlot(p)
	p.X.Tick.Marker = limitedTicker(9, "%.2g")
	p.Y.Tick.Marker = limitedTicker(9, "%.2g")

	for i, run := range s.Runs {
		pts, err := r.phasePoints(s, run.Trajectory)
		if err != nil {
			return "", err
		}
		if err := addLine(p, run.Name, i, false, xsOf(pts), ysOf(pts)); err != nil {
			return "", err
		}
	}

	if s.Reference != nil {
		pts, err := r.phasePoints(s, s.Reference)
		if err != nil {
			return "", err
		}
		if err := addLine(p, "analytical", 0, true, xsOf(pts), ysOf(pts)); err != nil {
			return "", err
		}
	}

	return r.save(p, PhaseFile)
}

// Hamiltonian plots H/H0 against t/T0 for every run.
func (r *Renderer) Hamiltonian(s *experiment.Study) (string, error) {
	p := plot.New()
	p.Title.Text = "Hamiltonian"
	p.X.Label.Text = "t/T0"
	p.Y.Label.Text = "H/H0"
	stylePlot(p)
	p.X.Tick.Marker = limitedTicker(7, "%.1f")
	p.Y.Tick.Marker = limitedTicker(9, "%.2f")

	period := s.Period()
	ratio := func(tr *dynamo.Trajectory) (xs, ys []float64) {
		h := s.Pendulum.EnergySeries(tr)
		xs = make([]float64, len(h))
		ys = make([]float64, len(h))
		for k := range h {
			xs[k] = tr.Time(k) / period
			ys[k] = h[k] / h[0]
		}
		return xs, ys
	}

	for i, run := range s.Runs {
		xs, ys := ratio(run.Trajectory)
		if err := addLine(p, run.Name, i, false, xs, ys); err != nil {
			return "", err
		}
	}
	if s.Reference != nil {
		xs, ys := ratio(s.Reference)
		if err := addLine(p, "analytical", 0, true, xs, ys); err != nil {
			return "", err
		}
	}

	return r.save(p, HamiltonianFile)
}

// ErrorCurve plots the measured L2 error against dt/T0 on log axes with the
// fitted power law over [FitRangeMin, FitRangeMax].
func (r *Renderer) ErrorCurve(curve *analysis.ErrorCurve, fit analysis.Fit) (string, error) {
	p := plot.New()
	p.Title.Text = "Convergence (" + curve.Scheme + ")"
	p.X.Label.Text = "dt/T0"
	p.Y.Label.Text = "L2 error"
	stylePlot(p)
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	measured := make(plotter.XYs, 0, len(curve.Points))
	for _, pt := range curve.Points {
		if pt.Error > 0 && !math.IsInf(pt.Error, 0) {
			measured = append(measured, plotter.XY{X: pt.Ratio(), Y: pt.Error})
		}
	}
	if len(measured) == 0 {
		return "", dynamo.InvalidArgument("figures", "curve", len(curve.Points), "no positive error to plot")
	}

	sc, err := plotter.NewScatter(measured)
	if err != nil {
		return "", err
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(3)
	p.Add(sc)
	p.Legend.Add("measured", sc)

	const samples = 50
	xs := make([]float64, samples)
	ys := make([]float64, samples)
	lo, hi := math.Log10(FitRangeMin), math.Log10(FitRangeMax)
	for i := range xs {
		xs[i] = math.Pow(10, lo+(hi-lo)*float64(i)/(samples-1))
		ys[i] = fit.Predict(xs[i])
	}
	name := "fit: slope " + formatSlope(fit.Slope)
	if err := addLine(p, name, 1, false, xs, ys); err != nil {
		return "", err
	}

	return r.save(p, ErrorFile)
}

func formatSlope(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func xsOf(pts []analysis.PhasePoint) []float64 {
	out := make([]float64, len(pts))
	for i, pt := range pts {
		out[i] = pt.X
	}
	return out
}

func ysOf(pts []analysis.PhasePoint) []float64 {
	out := make([]float64, len(pts))
	for i, pt := range pts {
		out[i] = pt.Y
	}
	return out
}
