package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pendsim/internal/analysis"
)

type Series struct {
	Name   string
	Values []float64
}

// EnergyPlot charts H/H0 of every series on one set of axes. Series are
// resampled to width points so long runs stay readable.
func EnergyPlot(series []Series, width, height int, caption string) string {
	if len(series) == 0 {
		return ""
	}

	data := make([][]float64, 0, len(series))
	colors := make([]asciigraph.AnsiColor, 0, len(series))
	legends := make([]string, 0, len(series))
	for i, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		data = append(data, Resample(s.Values, width))
		colors = append(colors, seriesColor(i))
		legends = append(legends, s.Name)
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}

// ErrorPlot charts log10(error) against the sweep points, coarsest step on
// the right.
func ErrorPlot(curve *analysis.ErrorCurve, width, height int) string {
	if curve == nil || len(curve.Points) == 0 {
		return ""
	}

	logs := make([]float64, 0, len(curve.Points))
	for _, pt := range curve.Points {
		if pt.Error > 0 {
			logs = append(logs, math.Log10(pt.Error))
		}
	}
	if len(logs) == 0 {
		return ""
	}

	return asciigraph.Plot(logs,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("log10(L2 error), dt/T0 increasing →"),
	)
}

// Resample picks n evenly spaced samples of values, always keeping the
// last one. Shorter inputs are returned unchanged.
func Resample(values []float64, n int) []float64 {
	if n <= 1 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := range out {
		out[i] = values[int(math.Round(float64(i)*step))]
	}
	return out
}
