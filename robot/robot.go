// Package robot models the simulated agent: its pose, its ray-casting
// sensor array and its reactive obstacle avoidance.
package robot

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
)

const (
	// DefaultFOV is the sensor field of view in radians.
	DefaultFOV = math.Pi / 3
	// DefaultRayCount is the number of rays cast per sense.
	DefaultRayCount = 10

	// StateExploring is the only exploration state. Nothing transitions out of it.
	StateExploring = "exploring"

	fullTurn = 2 * math.Pi
)

// Robot is a point agent with a heading and a forward facing sensor fan.
type Robot struct {
	ID               uuid.UUID
	Pos              r2.Point // Continuous position in surface pixels.
	Heading          float64  // Radians, always in [0, 2π).
	SensorRange      float64  // Ray length, also the stride of the line walk.
	FOV              float64  // Angular span of the fan, centred on Heading.
	RayCount         int      // Rays cast per Sense call.
	ExplorationState string

	obstacles []image.Point
}

// Config holds the parameters of a new Robot.
type Config struct {
	Pos         r2.Point
	Heading     float64
	SensorRange float64
	FOV         float64 // Zero means DefaultFOV.
	RayCount    int     // Zero means DefaultRayCount.
}

// New creates a robot with a fresh id and an empty obstacle log.
func New(c Config) *Robot {
	r := &Robot{
		ID:               uuid.New(),
		Pos:              c.Pos,
		SensorRange:      c.SensorRange,
		FOV:              c.FOV,
		RayCount:         c.RayCount,
		ExplorationState: StateExploring,
	}
	if r.FOV == 0 {
		r.FOV = DefaultFOV
	}
	if r.RayCount == 0 {
		r.RayCount = DefaultRayCount
	}
	r.Heading = normalizeAngle(c.Heading)
	return r
}

// Move advances the robot speed units along its heading. Negative speeds
// reverse.
func (r *Robot) Move(speed float64) {
	r.Pos = r.Pos.Add(r2.Point{X: math.Cos(r.Heading), Y: math.Sin(r.Heading)}.Mul(speed))
}

// Rotate turns the robot by angle radians.
func (r *Robot) Rotate(angle float64) {
	r.Heading = normalizeAngle(r.Heading + angle)
}

// Obstacles returns a copy of the obstacle log in detection order.
func (r *Robot) Obstacles() []image.Point {
	out := make([]image.Point, len(r.obstacles))
	copy(out, r.obstacles)
	return out
}

// ObstacleCount returns the length of the obstacle log.
func (r *Robot) ObstacleCount() int {
	return len(r.obstacles)
}

// normalizeAngle folds a into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, fullTurn)
	if a < 0 {
		a += fullTurn
	}
	// a tiny negative remainder rounds up to exactly 2π.
	if a >= fullTurn || math.IsNaN(a) {
		return 0
	}
	return a
}
