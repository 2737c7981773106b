// Package physics provides the kinematics model and collision primitives.
package physics

import "math"

// Heading returns the forward unit vector for a sprite angle in degrees.
// Angle 0 points North (up the screen), so the x component is -sin and the
// y component is cos, not the usual (cos, sin) pair.
func Heading(angleDeg float64) (dx, dy float64) {
	rad := Radians(angleDeg)
	return -math.Sin(rad), math.Cos(rad)
}

// Displace returns the position delta for moving at the given sprite angle
// and speed for dt seconds. The result scales linearly with dt, so callers
// may invoke it at any rate: two calls with dt displace the same total as
// one call with 2*dt.
func Displace(angleDeg, speed, dt float64) (dx, dy float64) {
	ux, uy := Heading(angleDeg)
	return ux * speed * dt, uy * speed * dt
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks whether two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
