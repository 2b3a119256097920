package object

import (
	"math"

	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/physics"
)

// Ball is a bouncing ball. Inactive balls rest on the paddle until launched.
type Ball struct {
	X, Y   float64 // Center
	VX, VY float64 // Velocity in units per tick
	Radius float64
	Active bool
	Skin   BallSkin
}

// NewRestingBall creates an inactive ball sitting on the paddle center.
func NewRestingBall(p *Paddle, arena Arena, skin BallSkin) *Ball {
	b := &Ball{Radius: config.BallRadius, Skin: skin}
	b.Rest(p, arena)
	return b
}

// Rest parks the ball on the paddle center and stops it.
func (b *Ball) Rest(p *Paddle, arena Arena) {
	b.X = p.CenterX()
	b.Y = arena.Height - config.BallRestOffset
	b.VX, b.VY = 0, 0
	b.Active = false
}

// Launch activates the ball moving upward at speed with horizontal velocity vx.
func (b *Ball) Launch(speed, vx float64) {
	b.VX = vx
	b.VY = -speed
	b.Active = true
}

// Speed returns the magnitude of the ball's velocity.
func (b *Ball) Speed() float64 {
	return physics.Speed(b.VX, b.VY)
}

// EnforceMinSpeed scales the velocity up to at least min.
func (b *Ball) EnforceMinSpeed(min float64) {
	b.VX, b.VY = physics.EnsureMinSpeed(b.VX, b.VY, min)
}

// Move advances the ball by its velocity scaled by ticks and the speed multiplier.
func (b *Ball) Move(scale, multiplier float64) {
	b.X += b.VX * scale * multiplier
	b.Y += b.VY * scale * multiplier
}

// BounceWalls reflects the ball off the left, right and top walls.
// Returns true if any wall was touched.
func (b *Ball) BounceWalls(arena Arena) bool {
	hit := false
	if b.X < b.Radius {
		b.X = b.Radius
		b.VX = math.Abs(b.VX)
		hit = true
	} else if b.X > arena.Width-b.Radius {
		b.X = arena.Width - b.Radius
		b.VX = -math.Abs(b.VX)
		hit = true
	}
	if b.Y < b.Radius {
		b.Y = b.Radius
		b.VY = math.Abs(b.VY)
		hit = true
	}
	return hit
}

// BelowArena reports whether the ball has left through the bottom.
func (b *Ball) BelowArena(arena Arena) bool {
	return b.Y > arena.Height
}

// TouchesPaddle is the approximate paddle test: center within the paddle's
// x-span and the ball overlapping the band from the paddle top to its bottom.
func (b *Ball) TouchesPaddle(p *Paddle) bool {
	if b.X < p.X || b.X > p.X+p.Width {
		return false
	}
	return b.Y+b.Radius >= p.Y && b.Y-b.Radius <= p.Y+p.Height
}

// ReflectFrom bounces the ball off a rectangle along the axis with the larger
// penetration component, pushing it back outside along that axis.
// dx, dy point from the nearest rectangle point to the ball center.
func (b *Ball) ReflectFrom(r physics.Rect, dx, dy float64) {
	if math.Abs(dx) > math.Abs(dy) {
		if b.X < r.CenterX() {
			b.VX = -math.Abs(b.VX)
			b.X = r.X - b.Radius
		} else {
			b.VX = math.Abs(b.VX)
			b.X = r.X + r.W + b.Radius
		}
		return
	}
	if b.Y < r.CenterY() {
		b.VY = -math.Abs(b.VY)
		b.Y = r.Y - b.Radius
	} else {
		b.VY = math.Abs(b.VY)
		b.Y = r.Y + r.H + b.Radius
	}
}
