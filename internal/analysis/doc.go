// Package analysis turns scheme trajectories into quantitative results.
//
// The package includes:
//
//   - [Sweep]: L2 error against the analytical solution over a range of steps
//   - [ErrorCurve.Fit]: power-law fit of error against dt/T0
//   - [EnergyReport]: energy ratio, drift and per-period deviation of a run
//   - [DominantFrequency], [ZeroCrossingPeriod]: numerical oscillation period
//   - [Normalize], [PhasePortraitToASCII]: phase portraits in units of θ0
//
// # Convergence Order
//
// A first-order scheme shows error proportional to dt, so the fitted slope
// of log(error) against log(dt/T0) is close to 1:
//
//	curve, err := analysis.Sweep(ctx, scheme, p, analysis.SweepConfig{
//	    Divisors: []float64{1e5, 1e4, 1e3, 1e2},
//	    Periods:  1,
//	})
//	fit, err := curve.Fit(0)
//	fmt.Println(fit.Slope)
package analysis
