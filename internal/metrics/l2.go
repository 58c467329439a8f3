package metrics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// L2Error is the normalized root-mean-square distance between a numerical
// trajectory and its reference:
//
//	sqrt((1/L)·Σ[((θn−θr)/θ0)² + ((θ'n−θ'r)/(ω0·θ0))²])
//
// where L is the common sample count.
func L2Error(num, ref *dynamo.Trajectory, theta0, omega0 float64) (float64, error) {
	switch {
	case num == nil || num.Len() == 0:
		return 0, dynamo.InvalidArgument("l2", "num", num, "empty trajectory")
	case ref == nil || ref.Len() == 0:
		return 0, dynamo.InvalidArgument("l2", "ref", ref, "empty trajectory")
	case num.Len() != ref.Len():
		return 0, dynamo.InvalidArgument("l2", "ref", ref.Len(), "sample count differs from numerical trajectory")
	case theta0 == 0 || math.IsNaN(theta0) || math.IsInf(theta0, 0):
		return 0, dynamo.InvalidArgument("l2", "theta0", theta0, "must be finite and non-zero")
	case !(omega0 > 0) || math.IsInf(omega0, 0):
		return 0, dynamo.InvalidArgument("l2", "omega0", omega0, "must be positive and finite")
	}

	var sum float64
	scale := omega0 * theta0
	for k := 0; k < num.Len(); k++ {
		dTheta := (num.ThetaAt(k) - ref.ThetaAt(k)) / theta0
		dThetaDot := (num.ThetaDotAt(k) - ref.ThetaDotAt(k)) / scale
		sum += dTheta*dTheta + dThetaDot*dThetaDot
	}

	return math.Sqrt(sum / float64(num.Len())), nil
}
