package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/pendsim/internal/dynamo"
)

type PhasePoint struct {
	X, Y float64
}

// PhaseSeries is one curve of a phase portrait.
type PhaseSeries struct {
	Name   string
	Marker rune
	Points []PhasePoint
}

// Normalize maps a trajectory onto (θ/θ0, θ'/(ω0·θ0)). The analytical
// solution with θ'0 = 0 is the unit circle in these units.
func Normalize(tr *dynamo.Trajectory, theta0, omega0 float64) ([]PhasePoint, error) {
	if theta0 == 0 || math.IsNaN(theta0) || math.IsInf(theta0, 0) {
		return nil, dynamo.InvalidArgument("normalize", "theta0", theta0, "must be finite and non-zero")
	}
	if !(omega0 > 0) || math.IsInf(omega0, 0) {
		return nil, dynamo.InvalidArgument("normalize", "omega0", omega0, "must be positive and finite")
	}

	points := make([]PhasePoint, tr.Len())
	for k := range points {
		points[k] = PhasePoint{
			X: tr.ThetaAt(k) / theta0,
			Y: tr.ThetaDotAt(k) / (omega0 * theta0),
		}
	}
	return points, nil
}

// Raw maps a trajectory onto (θ, θ') without scaling.
func Raw(tr *dynamo.Trajectory) []PhasePoint {
	points := make([]PhasePoint, tr.Len())
	for k := range points {
		points[k] = PhasePoint{X: tr.ThetaAt(k), Y: tr.ThetaDotAt(k)}
	}
	return points
}

// PhasePortraitToASCII draws every series on a shared character grid.
// Later series overwrite earlier ones where they overlap.
func PhasePortraitToASCII(series []PhaseSeries, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	first := true
	var minX, maxX, minY, maxY float64
	for _, s := range series {
		for _, p := range s.Points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				continue
			}
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if first {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// Axes first so curves draw over them
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, s := range series {
		marker := s.Marker
		if marker == 0 {
			marker = '•'
		}
		for _, p := range s.Points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				continue
			}
			col := int((p.X - minX) / rangeX * float64(width-1))
			row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
			if row >= 0 && row < height && col >= 0 && col < width {
				canvas[row][col] = marker
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
