package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// PowerSpectrum returns |X_k| for k in [0, N/2] of the mean-removed samples.
func PowerSpectrum(data []float64) []float64 {
	mean := stat.Mean(data, nil)
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spec := fft.FFTReal(centered)
	ps := make([]float64, len(spec)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency locates the strongest non-zero bin of the spectrum of
// samples taken every dt and refines it by parabolic interpolation.
func DominantFrequency(samples []float64, dt float64) (float64, error) {
	if len(samples) < 4 {
		return 0, dynamo.InvalidArgument("spectrum", "samples", len(samples), "need at least 4 samples")
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0, dynamo.InvalidArgument("spectrum", "dt", dt, "must be positive and finite")
	}

	ps := PowerSpectrum(samples)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}

	bin := float64(peak)
	if peak > 0 && peak < len(ps)-1 {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}

	return bin / (float64(len(samples)) * dt), nil
}

// ZeroCrossingPeriod estimates the oscillation period from the sign changes
// of θ, locating each crossing by linear interpolation. Consecutive
// crossings are half a period apart.
func ZeroCrossingPeriod(tr *dynamo.Trajectory) (float64, error) {
	var crossings []float64
	for k := 1; k < tr.Len(); k++ {
		prev, curr := tr.ThetaAt(k-1), tr.ThetaAt(k)
		if (prev < 0 && curr >= 0) || (prev > 0 && curr <= 0) {
			frac := prev / (prev - curr)
			crossings = append(crossings, tr.Time(k-1)+frac*tr.Dt())
		}
	}

	if len(crossings) < 2 {
		return 0, dynamo.InvalidArgument("period", "crossings", len(crossings), "need at least 2 zero crossings")
	}

	first, last := crossings[0], crossings[len(crossings)-1]
	return 2 * (last - first) / float64(len(crossings)-1), nil
}
