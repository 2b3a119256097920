// Package physics provides collision detection and distance utilities.
package physics

import "math"

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

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// Clamp limits v to the range [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Speed returns the magnitude of a velocity vector.
func Speed(vx, vy float64) float64 {
	return math.Hypot(vx, vy)
}

// EnsureMinSpeed scales (vx, vy) up so its magnitude is at least minSpeed.
// A zero vector becomes straight up at minSpeed.
func EnsureMinSpeed(vx, vy, minSpeed float64) (float64, float64) {
	s := Speed(vx, vy)
	if s >= minSpeed {
		return vx, vy
	}
	if s == 0 {
		return 0, -minSpeed
	}
	k := minSpeed / s
	return vx * k, vy * k
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Overlaps reports whether two rectangles intersect. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether the point lies inside the rectangle (edges inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// ClosestPoint returns the point on (or inside) the rectangle nearest to (x, y).
func (r Rect) ClosestPoint(x, y float64) (float64, float64) {
	return Clamp(x, r.X, r.X+r.W), Clamp(y, r.Y, r.Y+r.H)
}

// CircleRectHit tests a circle against a rectangle using the nearest point on
// the rectangle. dx and dy point from that nearest point to the circle center.
func CircleRectHit(cx, cy, radius float64, r Rect) (hit bool, dx, dy float64) {
	px, py := r.ClosestPoint(cx, cy)
	dx = cx - px
	dy = cy - py
	return dx*dx+dy*dy < radius*radius, dx, dy
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}
