package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/viz"
)

// plotSize is registered per command so each keeps its own defaults.
type plotSize struct {
	width, height int
}

func (s *plotSize) addFlags(cmd *cobra.Command, width, height int, what string) {
	cmd.Flags().IntVar(&s.width, "width", width, what+" width")
	cmd.Flags().IntVar(&s.height, "height", height, what+" height")
}

func newSimulateCmd() *cobra.Command {
	var size plotSize
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "run schemes and summarise error and energy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, size)
		},
	}
	addRunFlags(cmd)
	size.addFlags(cmd, 80, 12, "plot")
	return cmd
}

func runSimulate(cmd *cobra.Command, size plotSize) error {
	cfg, err := resolveConfig(cmd, applyRunFlags)
	if err != nil {
		return err
	}
	study, err := runStudy(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	printHeader(study)

	rows := make([][]string, 0, len(study.Runs))
	series := make([]viz.Series, 0, len(study.Runs))
	for _, r := range study.Runs {
		stats, err := study.Energy(r.Name)
		if err != nil {
			return err
		}

		l2 := "n/a"
		if e, err := study.L2(r.Name); err == nil {
			l2 = fmt.Sprintf("%.4f", e)
		}

		rows = append(rows, []string{
			r.Name,
			l2,
			viz.RatioStyle(stats.FinalRatio).Render(fmt.Sprintf("%.6f", stats.FinalRatio)),
			fmt.Sprintf("%.3e", stats.MaxDrift),
			fmt.Sprintf("%.3e", stats.MeanDeviation),
		})

		h := study.Pendulum.EnergySeries(r.Trajectory)
		ratios := make([]float64, len(h))
		for i, e := range h {
			ratios[i] = e / h[0]
		}
		series = append(series, viz.Series{Name: r.Name, Values: ratios})
	}

	fmt.Println(viz.Table([]string{"scheme", "L2 error", "H(N)/H0", "max drift", "mean |H-H0| (J)"}, rows))
	fmt.Println()
	fmt.Println(viz.EnergyPlot(series, size.width, size.height, "H/H0 over the run"))
	return nil
}

func newPhaseCmd() *cobra.Command {
	var (
		size    plotSize
		braille bool
	)
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "ASCII phase portrait against the analytical orbit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhase(cmd, size, braille)
		},
	}
	addRunFlags(cmd, "symplectic")
	size.addFlags(cmd, 60, 24, "portrait")
	cmd.Flags().BoolVar(&braille, "braille", false, "draw with Braille dots")
	return cmd
}

var phaseMarkers = []rune{'o', '+', 'x', '*', '#'}

func runPhase(cmd *cobra.Command, size plotSize, braille bool) error {
	cfg, err := resolveConfig(cmd, applyRunFlags)
	if err != nil {
		return err
	}
	study, err := runStudy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	p := study.Pendulum

	var series []analysis.PhaseSeries
	if study.Reference != nil {
		pts, err := analysis.Normalize(study.Reference, p.Theta0, p.Omega0())
		if err != nil {
			return err
		}
		series = append(series, analysis.PhaseSeries{Name: "analytical", Marker: '·', Points: pts})
	}

	for i, r := range study.Runs {
		pts := analysis.Raw(r.Trajectory)
		if study.Reference != nil {
			if pts, err = analysis.Normalize(r.Trajectory, p.Theta0, p.Omega0()); err != nil {
				return err
			}
		}
		series = append(series, analysis.PhaseSeries{
			Name:   r.Name,
			Marker: phaseMarkers[i%len(phaseMarkers)],
			Points: pts,
		})
	}

	if study.Reference != nil {
		fmt.Println("θ/θ0 (horizontal) vs θ'/(ω0·θ0) (vertical)")
	} else {
		fmt.Println("θ (horizontal) vs θ' (vertical)")
	}
	if braille {
		fmt.Print(viz.PhaseCanvas(series, size.width, size.height))
	} else {
		fmt.Print(analysis.PhasePortraitToASCII(series, size.width, size.height))
	}

	legend := make([]string, len(series))
	for i, s := range series {
		legend[i] = fmt.Sprintf("%c %s", s.Marker, s.Name)
	}
	fmt.Println(strings.Join(legend, "   "))
	return nil
}

func newEnergyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy",
		Short: "per-period mean energy deviation for each scheme",
		RunE:  runEnergy,
	}
	addRunFlags(cmd)
	return cmd
}

func runEnergy(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, applyRunFlags)
	if err != nil {
		return err
	}
	study, err := runStudy(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	printHeader(study)

	reports := make([]analysis.EnergyStats, len(study.Runs))
	nPeriods := 0
	for i, r := range study.Runs {
		if reports[i], err = study.Energy(r.Name); err != nil {
			return err
		}
		nPeriods = max(nPeriods, len(reports[i].PeriodMeans))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SCHEME")
	for k := 0; k < nPeriods; k++ {
		fmt.Fprintf(w, "\tPERIOD %d", k+1)
	}
	fmt.Fprintln(w, "\tTREND")

	for i, r := range study.Runs {
		fmt.Fprint(w, r.Name)
		for _, v := range reports[i].PeriodMeans {
			fmt.Fprintf(w, "\t%.3e", v)
		}
		fmt.Fprintf(w, "\t%s\n", trend(reports[i]))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmean |H - H0| in joules over each natural period")
	return nil
}

// trend classifies the energy history by the sign of H(N) - H0 and by
// whether the per-period deviation keeps growing.
func trend(s analysis.EnergyStats) string {
	growing := len(s.PeriodMeans) > 1
	for k := 1; k < len(s.PeriodMeans); k++ {
		if s.PeriodMeans[k] <= s.PeriodMeans[k-1] {
			growing = false
		}
	}
	switch {
	case !growing || math.Abs(s.FinalRatio-1) < 0.01:
		return "bounded"
	case s.FinalRatio > 1:
		return "growing"
	default:
		return "decaying"
	}
}
