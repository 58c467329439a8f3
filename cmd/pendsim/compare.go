package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/viz"
)

var spectrumPlot bool

var compareSchemes = []string{"explicit", "implicit", "symplectic", "rk4", "verlet"}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "compare schemes side by side",
		RunE:  runCompare,
	}
	addRunFlags(cmd, compareSchemes...)
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, applyRunFlags)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("scheme") {
		cfg.Run.Schemes = compareSchemes
	}

	study, err := runStudy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	printHeader(study)

	sums, err := study.Summaries()
	if err != nil {
		return err
	}

	rows := make([][]string, len(sums))
	for i, s := range sums {
		rows[i] = []string{
			s.Name,
			fmt.Sprintf("%.3e", s.L2),
			viz.RatioStyle(s.FinalRatio).Render(fmt.Sprintf("%.6f", s.FinalRatio)),
			fmt.Sprintf("%.3e", s.Metrics["energy_drift"]),
			fmt.Sprintf("%.0f%%", 100*s.Metrics["stability"]),
			fmt.Sprintf("%.5f", s.Period/study.Period()),
		}
	}
	fmt.Println(viz.Table([]string{"scheme", "L2 error", "H(N)/H0", "max drift", "bounded", "period/T0"}, rows))
	return nil
}

func newSpectrumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum",
		Short: "dominant frequency and zero-crossing period per scheme",
		RunE:  runSpectrum,
	}
	addRunFlags(cmd)
	cmd.Flags().BoolVar(&spectrumPlot, "plot", false, "plot the power spectrum of the first scheme")
	return cmd
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, applyRunFlags)
	if err != nil {
		return err
	}
	study, err := runStudy(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	printHeader(study)

	f0 := 1 / study.Period()
	fmt.Printf("natural frequency f0 = %.4f Hz\n\n", f0)

	type entry struct {
		name string
		tr   *dynamo.Trajectory
	}
	entries := make([]entry, 0, len(study.Runs)+1)
	for _, r := range study.Runs {
		entries = append(entries, entry{r.Name, r.Trajectory})
	}
	if study.Reference != nil {
		entries = append(entries, entry{"analytical", study.Reference})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tDOMINANT (Hz)\tf/f0\tZERO-CROSSING T (s)\tT/T0")
	for _, e := range entries {
		f, err := analysis.DominantFrequency(e.tr.Angles(), e.tr.Dt())
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}

		period, ratio := "n/a", "n/a"
		if t, err := analysis.ZeroCrossingPeriod(e.tr); err == nil {
			period = fmt.Sprintf("%.5f", t)
			ratio = fmt.Sprintf("%.5f", t/study.Period())
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%s\t%s\n", e.name, f, f/f0, period, ratio)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if spectrumPlot && len(entries) > 0 {
		ps := analysis.PowerSpectrum(entries[0].tr.Angles())
		if len(ps) > 4 {
			ps = ps[:len(ps)/4]
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(ps,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum of θ ("+entries[0].name+")"),
		))
	}
	return nil
}
