package dynamo

// Trajectory holds N+1 samples (θ_k, θ'_k) taken at t_k = k·dt.
//
// Both sequences share one backing buffer allocated by NewTrajectory.
// Only the package that builds a trajectory writes to it, through Set,
// before handing it out.
type Trajectory struct {
	dt       float64
	theta    []float64
	thetaDot []float64
}

// NewTrajectory allocates a trajectory for n steps (n+1 samples).
func NewTrajectory(dt float64, n int) *Trajectory {
	size := n + 1
	buf := make([]float64, 2*size)
	return &Trajectory{
		dt:       dt,
		theta:    buf[:size:size],
		thetaDot: buf[size:],
	}
}

// Set writes sample k. It is meant for schemes filling a fresh trajectory.
func (tr *Trajectory) Set(k int, theta, thetaDot float64) {
	tr.theta[k] = theta
	tr.thetaDot[k] = thetaDot
}

func (tr *Trajectory) Len() int       { return len(tr.theta) }
func (tr *Trajectory) Steps() int     { return len(tr.theta) - 1 }
func (tr *Trajectory) Dt() float64    { return tr.dt }
func (tr *Trajectory) Duration() float64 {
	return float64(tr.Steps()) * tr.dt
}

func (tr *Trajectory) Time(k int) float64       { return float64(k) * tr.dt }
func (tr *Trajectory) ThetaAt(k int) float64    { return tr.theta[k] }
func (tr *Trajectory) ThetaDotAt(k int) float64 { return tr.thetaDot[k] }

func (tr *Trajectory) At(k int) State {
	return State{tr.theta[k], tr.thetaDot[k]}
}

func (tr *Trajectory) Final() State {
	return tr.At(len(tr.theta) - 1)
}

// Angles returns a copy of θ.
func (tr *Trajectory) Angles() []float64 {
	out := make([]float64, len(tr.theta))
	copy(out, tr.theta)
	return out
}

// Velocities returns a copy of θ'.
func (tr *Trajectory) Velocities() []float64 {
	out := make([]float64, len(tr.thetaDot))
	copy(out, tr.thetaDot)
	return out
}

// Times returns t_k for every sample.
func (tr *Trajectory) Times() []float64 {
	out := make([]float64, len(tr.theta))
	for k := range out {
		out[k] = tr.Time(k)
	}
	return out
}

// IsValid reports whether every sample is finite.
func (tr *Trajectory) IsValid() bool {
	return State(tr.theta).IsValid() && State(tr.thetaDot).IsValid()
}
