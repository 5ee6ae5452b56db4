package robot

import (
	"math"

	"github.com/golang/geo/r2"
)

// AvoidTurn is the rotation applied when an obstacle is too close.
const AvoidTurn = math.Pi / 2

// Avoid scans the obstacle log in detection order and turns the robot by
// AvoidTurn on the first entry closer than threshold. At most one turn is
// made per call. It reports whether the robot turned.
//
// No state is kept between calls: a robot that stays near a logged obstacle
// turns again on every call.
func (r *Robot) Avoid(threshold float64) bool {
	for _, p := range r.obstacles {
		d := r.Pos.Sub(r2.Point{X: float64(p.X), Y: float64(p.Y)}).Norm()
		if d < threshold {
			r.Rotate(AvoidTurn)
			return true
		}
	}
	return false
}
