package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/viz"
)

func newConvergenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convergence",
		Short: "L2 error against dt and the fitted convergence order",
		RunE:  runConvergence,
	}
	addSweepFlags(cmd)
	addPhysicsFlags(cmd)
	return cmd
}

// sweep runs the configured convergence study; Ctrl-C cancels it.
func sweep(ctx context.Context, cfg *config.Config) (*analysis.ErrorCurve, analysis.Fit, error) {
	scheme, err := integrators.NewRegistry().Get(cfg.Convergence.Scheme)
	if err != nil {
		return nil, analysis.Fit{}, err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	start := time.Now()
	curve, err := analysis.Sweep(ctx, scheme, cfg.Physics.Pendulum(), analysis.SweepConfig{
		Divisors: cfg.Convergence.Divisors,
		Periods:  cfg.Convergence.Periods,
		Workers:  cfg.Convergence.Workers,
		Logger:   logger,
	})
	if err != nil {
		return nil, analysis.Fit{}, fmt.Errorf("sweep failed: %w", err)
	}
	logger.Debug("sweep complete",
		slog.String("scheme", scheme.Name()),
		slog.Int("points", len(curve.Points)),
		slog.Duration("elapsed", time.Since(start)),
	)

	fit, err := curve.Fit(cfg.Convergence.FitPoints)
	if err != nil {
		return nil, analysis.Fit{}, fmt.Errorf("fit failed: %w", err)
	}
	return curve, fit, nil
}

func runConvergence(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, applyPhysicsFlags, applySweepFlags)
	if err != nil {
		return err
	}

	curve, fit, err := sweep(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("convergence of %s over %g periods (T0=%.4f s)\n\n", curve.Scheme, cfg.Convergence.Periods, curve.Period)

	rows := make([][]string, len(curve.Points))
	for i, pt := range curve.Points {
		mark := ""
		if i < fit.Points {
			mark = "•"
		}
		rows[i] = []string{
			fmt.Sprintf("%.3e", pt.Ratio()),
			fmt.Sprintf("%.3e", pt.Dt),
			fmt.Sprintf("%d", pt.Steps),
			fmt.Sprintf("%.4e", pt.Error),
			mark,
		}
	}
	fmt.Println(viz.Table([]string{"dt/T0", "dt (s)", "steps", "L2 error", "fit"}, rows))
	fmt.Println()

	fmt.Printf("slope:     %.4f\n", fit.Slope)
	fmt.Printf("intercept: %.4f\n", fit.Intercept)
	fmt.Printf("R²:        %.6f\n", fit.RSquared)
	fmt.Printf("error ≈ %.3g · (dt/T0)^%.3f over the first %d points\n\n", fit.Predict(1), fit.Slope, fit.Points)

	fmt.Println(viz.ErrorPlot(curve, 60, 10))
	return nil
}
