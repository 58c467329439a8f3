package analysis

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/metrics"
	"github.com/san-kum/pendsim/internal/physics"
)

type SweepConfig struct {
	// Divisors sets dt = T0/d for each point, in output order.
	Divisors []float64
	// Periods is the simulated duration in units of T0.
	Periods float64
	// Workers bounds concurrent runs; zero means GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

type ErrorPoint struct {
	Divisor float64
	Dt      float64
	Steps   int
	Error   float64
}

// Ratio is dt/T0.
func (p ErrorPoint) Ratio() float64 { return 1 / p.Divisor }

type ErrorCurve struct {
	Scheme string
	Period float64
	Points []ErrorPoint
}

// Sweep measures the L2 error of scheme against the analytical solution for
// every divisor in cfg. Points are computed concurrently and returned in
// divisor order. The first failing run cancels the rest.
func Sweep(ctx context.Context, scheme integrators.Scheme, p *physics.Pendulum, cfg SweepConfig) (*ErrorCurve, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Divisors) == 0 {
		return nil, dynamo.InvalidArgument("sweep", "divisors", cfg.Divisors, "must not be empty")
	}
	for _, d := range cfg.Divisors {
		if !(d > 0) || math.IsInf(d, 0) {
			return nil, dynamo.InvalidArgument("sweep", "divisors", d, "must be positive and finite")
		}
	}
	if !(cfg.Periods > 0) || math.IsInf(cfg.Periods, 0) {
		return nil, dynamo.InvalidArgument("sweep", "periods", cfg.Periods, "must be positive and finite")
	}

	omega0 := p.Omega0()
	if err := integrators.CheckAnalyticalDomain(p.Theta0, p.ThetaDot0, omega0); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	period := p.Period()
	curve := &ErrorCurve{
		Scheme: scheme.Name(),
		Period: period,
		Points: make([]ErrorPoint, len(cfg.Divisors)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, d := range cfg.Divisors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			dt := period / d
			n := dynamo.StepsFor(cfg.Periods*period, dt)
			start := time.Now()

			num, err := scheme.Integrate(p.Theta0, p.ThetaDot0, omega0, dt, n)
			if err != nil {
				return err
			}
			ref, err := integrators.NewAnalytical().Integrate(p.Theta0, p.ThetaDot0, omega0, dt, n)
			if err != nil {
				return err
			}
			e, err := metrics.L2Error(num, ref, p.Theta0, omega0)
			if err != nil {
				return err
			}

			curve.Points[i] = ErrorPoint{Divisor: d, Dt: dt, Steps: n, Error: e}
			logger.Debug("sweep point",
				slog.String("scheme", scheme.Name()),
				slog.Float64("dt", dt),
				slog.Int("steps", n),
				slog.Float64("error", e),
				slog.Duration("elapsed", time.Since(start)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return curve, nil
}

// Fit is log10(error) = Intercept + Slope·log10(dt/T0).
type Fit struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	Points    int
}

// Predict returns the fitted error at ratio = dt/T0.
func (f Fit) Predict(ratio float64) float64 {
	return math.Pow(10, f.Intercept+f.Slope*math.Log10(ratio))
}

// Fit regresses log10(error) on log10(dt/T0) over the first k points, or
// all of them when k is out of range.
func (c *ErrorCurve) Fit(k int) (Fit, error) {
	if k <= 0 || k > len(c.Points) {
		k = len(c.Points)
	}
	if k < 2 {
		return Fit{}, dynamo.InvalidArgument("fit", "points", k, "need at least 2 points")
	}

	xs := make([]float64, k)
	ys := make([]float64, k)
	for i, pt := range c.Points[:k] {
		if !(pt.Error > 0) || !(pt.Divisor > 0) {
			return Fit{}, dynamo.InvalidArgument("fit", "error", pt.Error, "log fit needs positive values")
		}
		xs[i] = math.Log10(pt.Ratio())
		ys[i] = math.Log10(pt.Error)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Fit{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  stat.RSquared(xs, ys, nil, alpha, beta),
		Points:    k,
	}, nil
}

// Ratios returns dt/T0 for every point.
func (c *ErrorCurve) Ratios() []float64 {
	out := make([]float64, len(c.Points))
	for i, pt := range c.Points {
		out[i] = pt.Ratio()
	}
	return out
}

func (c *ErrorCurve) Errors() []float64 {
	out := make([]float64, len(c.Points))
	for i, pt := range c.Points {
		out[i] = pt.Error
	}
	return out
}
