package physics

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{3, 4, 2, 4}, // inverted range: lo wins
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestEnsureMinSpeed(t *testing.T) {
	vx, vy := EnsureMinSpeed(0.3, 0.4, 4)
	if s := Speed(vx, vy); math.Abs(s-4) > 1e-9 {
		t.Fatalf("speed = %v, want 4", s)
	}
	if vx <= 0 || vy <= 0 {
		t.Fatalf("direction changed: (%v, %v)", vx, vy)
	}

	vx, vy = EnsureMinSpeed(0, 0, 4)
	if vx != 0 || vy != -4 {
		t.Fatalf("zero vector = (%v, %v), want (0, -4)", vx, vy)
	}

	vx, vy = EnsureMinSpeed(6, 8, 4)
	if vx != 6 || vy != 8 {
		t.Fatalf("fast vector changed to (%v, %v)", vx, vy)
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !a.Overlaps(Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Fatal("expected overlap")
	}
	if a.Overlaps(Rect{X: 10, Y: 0, W: 5, H: 5}) {
		t.Fatal("touching edges should not overlap")
	}
	if a.Overlaps(Rect{X: 20, Y: 20, W: 5, H: 5}) {
		t.Fatal("distant rects should not overlap")
	}
}

func TestCircleRectHit(t *testing.T) {
	r := Rect{X: 100, Y: 100, W: 50, H: 12}

	hit, dx, dy := CircleRectHit(120, 95, 8, r)
	if !hit {
		t.Fatal("ball above block within radius should hit")
	}
	if dx != 0 || dy != -5 {
		t.Fatalf("penetration = (%v, %v), want (0, -5)", dx, dy)
	}

	if hit, _, _ := CircleRectHit(120, 80, 8, r); hit {
		t.Fatal("ball 20 units above should not hit")
	}

	// Corner: nearest point is the corner itself.
	hit, dx, dy = CircleRectHit(95, 95, 8, r)
	if !hit || dx != -5 || dy != -5 {
		t.Fatalf("corner hit = %v (%v, %v), want true (-5, -5)", hit, dx, dy)
	}
}

func TestPointAndCircleHelpers(t *testing.T) {
	if !PointInCircle(3, 4, 0, 0, 5) {
		t.Fatal("point on circle edge should be inside")
	}
	if CirclesOverlap(0, 0, 1, 2, 0, 1) {
		t.Fatal("tangent circles should not overlap")
	}
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Fatalf("Distance = %v, want 5", d)
	}
}
