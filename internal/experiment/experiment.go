package experiment

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/metrics"
	"github.com/san-kum/pendsim/internal/physics"
)

type Config struct {
	Pendulum physics.Pendulum
	Dt       float64
	Steps    int
	Schemes  []string
	// Workers bounds concurrent scheme runs; zero means unbounded.
	Workers int
}

// FromConfig derives a study from the run section: dt = T0/steps_per_period
// over the requested number of periods.
func FromConfig(c *config.Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	p := c.Physics.Pendulum()
	period := p.Period()
	dt := period / float64(c.Run.StepsPerPeriod)

	return Config{
		Pendulum: *p,
		Dt:       dt,
		Steps:    dynamo.StepsFor(c.Run.Periods*period, dt),
		Schemes:  append([]string(nil), c.Run.Schemes...),
		Workers:  c.Convergence.Workers,
	}, nil
}

// SchemeRun is one scheme's trajectory within a study.
type SchemeRun struct {
	Name       string
	Trajectory *dynamo.Trajectory
}

// Study holds every scheme run from one initial condition and step size,
// alongside the analytical reference.
type Study struct {
	Pendulum  physics.Pendulum
	Dt        float64
	Steps     int
	Reference *dynamo.Trajectory
	Runs      []SchemeRun

	// refErr is set when the initial condition lies outside the domain of
	// the analytical solution.
	refErr error
}

// Run integrates every requested scheme and the analytical reference
// concurrently. Runs keep the order of cfg.Schemes after resolution.
func Run(ctx context.Context, cfg Config, reg *integrators.Registry) (*Study, error) {
	p := cfg.Pendulum
	if err := p.Validate(); err != nil {
		return nil, err
	}
	omega0 := p.Omega0()
	if err := dynamo.ValidateRun("experiment", p.Theta0, p.ThetaDot0, omega0, cfg.Dt, cfg.Steps); err != nil {
		return nil, err
	}

	schemes, err := reg.Resolve(cfg.Schemes)
	if err != nil {
		return nil, err
	}

	study := &Study{
		Pendulum: p,
		Dt:       cfg.Dt,
		Steps:    cfg.Steps,
		Runs:     make([]SchemeRun, len(schemes)),
	}
	study.refErr = integrators.CheckAnalyticalDomain(p.Theta0, p.ThetaDot0, omega0)

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}

	if study.refErr == nil {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tr, err := integrators.NewAnalytical().Integrate(p.Theta0, p.ThetaDot0, omega0, cfg.Dt, cfg.Steps)
			if err != nil {
				return err
			}
			study.Reference = tr
			return nil
		})
	}

	for i, s := range schemes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tr, err := s.Integrate(p.Theta0, p.ThetaDot0, omega0, cfg.Dt, cfg.Steps)
			if err != nil {
				return err
			}
			study.Runs[i] = SchemeRun{Name: s.Name(), Trajectory: tr}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return study, nil
}

func (s *Study) Names() []string {
	names := make([]string, len(s.Runs))
	for i, r := range s.Runs {
		names[i] = r.Name
	}
	return names
}

// Trajectory looks up a run by scheme name. "analytical" returns the
// reference when no run of that name exists.
func (s *Study) Trajectory(name string) (*dynamo.Trajectory, error) {
	for _, r := range s.Runs {
		if r.Name == name {
			return r.Trajectory, nil
		}
	}
	if name == "analytical" {
		if s.Reference == nil {
			return nil, s.refErr
		}
		return s.Reference, nil
	}
	return nil, dynamo.InvalidArgument("study", "scheme", name, "not part of this study")
}

// Period returns T0 of the studied pendulum.
func (s *Study) Period() float64 {
	return s.Pendulum.Period()
}

func (s *Study) Energy(name string) (analysis.EnergyStats, error) {
	tr, err := s.Trajectory(name)
	if err != nil {
		return analysis.EnergyStats{}, err
	}
	return analysis.EnergyReport(&s.Pendulum, tr), nil
}

// L2 is the normalized error of the named run against the reference.
func (s *Study) L2(name string) (float64, error) {
	if s.Reference == nil {
		return 0, s.refErr
	}
	tr, err := s.Trajectory(name)
	if err != nil {
		return 0, err
	}
	return metrics.L2Error(tr, s.Reference, s.Pendulum.Theta0, s.Pendulum.Omega0())
}

// Summary collects the per-scheme numbers shown side by side.
type Summary struct {
	Name       string
	L2         float64
	FinalRatio float64
	Metrics    map[string]float64
	// Period is the zero-crossing estimate, NaN when θ never changes sign.
	Period float64
}

func (s *Study) Summaries() ([]Summary, error) {
	out := make([]Summary, 0, len(s.Runs))
	for _, r := range s.Runs {
		sum := Summary{
			Name:    r.Name,
			L2:      math.NaN(),
			Metrics: make(map[string]float64),
			Period:  math.NaN(),
		}

		if s.Reference != nil {
			l2, err := s.L2(r.Name)
			if err != nil {
				return nil, err
			}
			sum.L2 = l2
		}

		for _, m := range DefaultMetrics(&s.Pendulum) {
			sum.Metrics[m.Name()] = metrics.Evaluate(m, r.Trajectory)
		}
		sum.FinalRatio = analysis.EnergyReport(&s.Pendulum, r.Trajectory).FinalRatio

		if period, err := analysis.ZeroCrossingPeriod(r.Trajectory); err == nil {
			sum.Period = period
		}

		out = append(out, sum)
	}
	return out, nil
}
