package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/figures"
)

var skipSweep bool

func newFiguresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "figures",
		Short: "render phase, Hamiltonian and error figures",
		RunE:  runFigures,
	}
	addRunFlags(cmd)
	addFigureFlags(cmd)
	cmd.Flags().BoolVar(&skipSweep, "skip-sweep", false, "do not render the convergence figure")
	return cmd
}

func runFigures(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, applyRunFlags, applyFigureFlags)
	if err != nil {
		return err
	}

	study, err := runStudy(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	r := figures.NewRenderer(cfg.Figures, logger)

	path, err := r.PhaseDiagram(study)
	if err != nil {
		return fmt.Errorf("phase diagram: %w", err)
	}
	fmt.Println("wrote", path)

	path, err = r.Hamiltonian(study)
	if err != nil {
		return fmt.Errorf("hamiltonian: %w", err)
	}
	fmt.Println("wrote", path)

	if skipSweep {
		return nil
	}

	curve, fit, err := sweep(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	path, err = r.ErrorCurve(curve, fit)
	if err != nil {
		return fmt.Errorf("error curve: %w", err)
	}
	fmt.Println("wrote", path)
	fmt.Printf("%s: slope %.4f, R² %.6f\n", curve.Scheme, fit.Slope, fit.RSquared)
	return nil
}
