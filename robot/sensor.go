package robot

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/geo/r2"
)

// HitFunc decides whether a surface colour counts as a wall.
type HitFunc func(color.Color) bool

// ExactWhite matches only fully opaque pure white.
func ExactWhite(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff && a == 0xffff
}

// NearWhite matches colours whose red, green and blue channels are each
// within tolerance of 255. Alpha is ignored.
func NearWhite(tolerance uint8) HitFunc {
	limit := 255 - uint32(tolerance)
	return func(c color.Color) bool {
		r, g, b, _ := c.RGBA()
		return r>>8 >= limit && g>>8 >= limit && b>>8 >= limit
	}
}

// RayAngles returns the absolute angle of every ray in the fan, spread
// evenly from Heading-FOV/2 to Heading+FOV/2 inclusive with step
// FOV/(RayCount-1). The fan is symmetric about the heading, unlike a
// FOV/RayCount step which would leave the last ray one step short of
// Heading+FOV/2.
func (r *Robot) RayAngles() []float64 {
	if r.RayCount <= 0 {
		return nil
	}
	if r.RayCount == 1 {
		return []float64{r.Heading}
	}

	start := r.Heading - r.FOV/2
	step := r.FOV / float64(r.RayCount-1)
	angles := make([]float64, r.RayCount)
	for i := range angles {
		angles[i] = start + float64(i)*step
	}
	return angles
}

// RayTarget returns the end point of a ray cast at angle.
func (r *Robot) RayTarget(angle float64) r2.Point {
	return r.Pos.Add(r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(r.SensorRange))
}

// Sense casts every ray of the fan against surface and appends each first
// hit to the obstacle log. It returns the number of hits appended.
func (r *Robot) Sense(surface image.Image, hit HitFunc) int {
	n := 0
	for _, angle := range r.RayAngles() {
		if p, ok := r.castRay(surface, hit, r.RayTarget(angle)); ok {
			r.obstacles = append(r.obstacles, p)
			n++
		}
	}
	return n
}

// castRay walks from the robot position toward target with a Bresenham
// accumulator, stepping SensorRange along an axis per move and never
// overshooting the target. Once one axis has reached its target only the
// other axis moves, so every iteration makes progress. The first sample
// outside the surface ends the ray as a miss, as does a non-finite position
// or target.
func (r *Robot) castRay(surface image.Image, hit HitFunc, target r2.Point) (image.Point, bool) {
	bounds := surface.Bounds()
	x, y := r.Pos.X, r.Pos.Y
	if !finite(x) || !finite(y) || !finite(target.X) || !finite(target.Y) {
		return image.Point{}, false
	}

	dx := math.Abs(target.X - x)
	dy := math.Abs(target.Y - y)
	sx, sy := 1.0, 1.0
	if target.X < x {
		sx = -1
	}
	if target.Y < y {
		sy = -1
	}
	stride := math.Abs(r.SensorRange)
	err := dx - dy

	for {
		p := image.Pt(int(math.Round(x)), int(math.Round(y)))
		if !p.In(bounds) {
			return image.Point{}, false
		}
		if hit(surface.At(p.X, p.Y)) {
			return p, true
		}

		switch {
		case x == target.X && y == target.Y:
			return image.Point{}, false
		case x == target.X:
			y = approach(y, target.Y, sy*stride)
		case y == target.Y:
			x = approach(x, target.X, sx*stride)
		default:
			e2 := 2 * err
			if e2 > -dy {
				err -= dy
				x = approach(x, target.X, sx*stride)
			}
			if e2 < dx {
				err += dx
				y = approach(y, target.Y, sy*stride)
			}
		}
	}
}

// approach moves v by step toward target, stopping at target. A step too
// small to change v lands on target.
func approach(v, target, step float64) float64 {
	next := v + step
	if (step > 0 && next > target) || (step < 0 && next < target) || next == v {
		return target
	}
	return next
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
