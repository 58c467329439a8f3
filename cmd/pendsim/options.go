package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/experiment"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/viz"
)

var (
	schemes        []string
	stepsPerPeriod int
	periods        float64

	sweepScheme  string
	divisors     []float64
	sweepPeriods float64
	fitPoints    int
	workers      int

	outDir    string
	dpi       int
	format    string
	normalize bool
)

// applier copies explicitly set flags into cfg.
type applier func(cmd *cobra.Command, cfg *config.Config) error

// physicsFlags maps flag names to pendulum parameter names.
var physicsFlags = []struct {
	flag, param, usage string
}{
	{"theta0", "theta0", "initial angle (rad)"},
	{"theta-dot0", "theta_dot0", "initial angular velocity (rad/s)"},
	{"mass", "mass", "bob mass (kg)"},
	{"length", "length", "rod length (m)"},
	{"gravity", "gravity", "gravitational acceleration (m/s²)"},
}

func addRunFlags(cmd *cobra.Command, defaultSchemes ...string) {
	if len(defaultSchemes) == 0 {
		defaultSchemes = []string{integrators.All}
	}
	cmd.Flags().StringSliceVarP(&schemes, "scheme", "s", defaultSchemes, "schemes to run (repeatable, 'all' for the Euler schemes)")
	cmd.Flags().IntVar(&stepsPerPeriod, "steps-per-period", config.DefaultStepsPerPeriod, "steps per natural period (dt = T0/n)")
	cmd.Flags().Float64Var(&periods, "periods", config.DefaultPeriods, "simulated duration in natural periods")
	addPhysicsFlags(cmd)
}

func addPhysicsFlags(cmd *cobra.Command) {
	d := config.DefaultConfig().Physics
	defaults := map[string]float64{
		"theta0":     d.Theta0,
		"theta_dot0": d.ThetaDot0,
		"mass":       d.Mass,
		"length":     d.Length,
		"gravity":    d.Gravity,
	}
	for _, pf := range physicsFlags {
		cmd.Flags().Float64(pf.flag, defaults[pf.param], pf.usage)
	}
}

func addSweepFlags(cmd *cobra.Command) {
	d := config.DefaultConfig().Convergence
	cmd.Flags().StringVarP(&sweepScheme, "scheme", "s", d.Scheme, "scheme to sweep")
	cmd.Flags().Float64SliceVar(&divisors, "divisors", d.Divisors, "T0/dt ratios to sample")
	cmd.Flags().Float64Var(&sweepPeriods, "sweep-periods", d.Periods, "duration of each sweep run in natural periods")
	cmd.Flags().IntVar(&fitPoints, "fit-points", d.FitPoints, "regress over the first n points (0 = all)")
	cmd.Flags().IntVar(&workers, "workers", d.Workers, "concurrent runs (0 = GOMAXPROCS)")
}

func addFigureFlags(cmd *cobra.Command) {
	d := config.DefaultConfig().Figures
	cmd.Flags().StringVarP(&outDir, "out", "o", d.Dir, "output directory")
	cmd.Flags().IntVar(&dpi, "dpi", d.DPI, "image resolution")
	cmd.Flags().StringVar(&format, "format", d.Format, "image format: png, jpg or tiff")
	cmd.Flags().BoolVar(&normalize, "normalize", d.Normalize, "plot the phase diagram in units of θ0")
}

func applyPhysicsFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	p := cfg.Physics.Pendulum()
	for _, pf := range physicsFlags {
		if !f.Changed(pf.flag) {
			continue
		}
		v, err := f.GetFloat64(pf.flag)
		if err != nil {
			return err
		}
		if err := p.SetParam(pf.param, v); err != nil {
			return err
		}
	}
	cfg.Physics = config.PhysicsFrom(p)
	return nil
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	if err := applyPhysicsFlags(cmd, cfg); err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("scheme") {
		cfg.Run.Schemes = schemes
	}
	if f.Changed("steps-per-period") {
		cfg.Run.StepsPerPeriod = stepsPerPeriod
	}
	if f.Changed("periods") {
		cfg.Run.Periods = periods
	}
	return nil
}

func applySweepFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("scheme") {
		cfg.Convergence.Scheme = sweepScheme
	}
	if f.Changed("divisors") {
		cfg.Convergence.Divisors = divisors
	}
	if f.Changed("sweep-periods") {
		cfg.Convergence.Periods = sweepPeriods
	}
	if f.Changed("fit-points") {
		cfg.Convergence.FitPoints = fitPoints
	}
	if f.Changed("workers") {
		cfg.Convergence.Workers = workers
	}
	return nil
}

func applyFigureFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("out") {
		cfg.Figures.Dir = outDir
	}
	if f.Changed("dpi") {
		cfg.Figures.DPI = dpi
	}
	if f.Changed("format") {
		cfg.Figures.Format = format
	}
	if f.Changed("normalize") {
		cfg.Figures.Normalize = normalize
	}
	return nil
}

// resolveConfig layers preset, config file and changed flags, in that order.
func resolveConfig(cmd *cobra.Command, appliers ...applier) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	for _, apply := range appliers {
		if err := apply(cmd, cfg); err != nil {
			return nil, fmt.Errorf("invalid flags: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("configuration resolved",
		slog.String("preset", presetName),
		slog.String("config", configFile),
		slog.Any("schemes", cfg.Run.Schemes),
		slog.Int("steps_per_period", cfg.Run.StepsPerPeriod),
		slog.Float64("periods", cfg.Run.Periods),
	)
	return cfg, nil
}

func runStudy(ctx context.Context, cfg *config.Config) (*experiment.Study, error) {
	ecfg, err := experiment.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	study, err := experiment.Run(ctx, ecfg, integrators.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}
	logger.Debug("study complete",
		slog.Float64("dt", study.Dt),
		slog.Int("steps", study.Steps),
		slog.Any("schemes", study.Names()),
	)
	return study, nil
}

func printHeader(study *experiment.Study) {
	p := study.Pendulum
	fmt.Printf("pendulum: m=%g kg  l=%g m  g=%g m/s²  θ0=%.4f rad  θ'0=%.4f rad/s\n",
		p.Mass, p.Length, p.Gravity, p.Theta0, p.ThetaDot0)
	fmt.Printf("ω0=%.4f rad/s  T0=%.4f s  dt=T0/%.0f  steps=%d  H0=%.6f J\n",
		p.Omega0(), p.Period(), p.Period()/study.Dt, study.Steps, p.InitialEnergy())
	fmt.Println(viz.Separator(72))
	fmt.Println()
}
