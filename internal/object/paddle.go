package object

import (
	"math"

	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/physics"
)

// Paddle is the player-controlled bat at the bottom of the arena.
type Paddle struct {
	X, Y     float64 // Top-left corner
	Width    float64
	Height   float64
	Skin     PaddleSkin
	HitFlash float64 // 0-1, decays every tick
}

// PaddleWidth returns the paddle width for a width upgrade level.
func PaddleWidth(upgrade int) float64 {
	if upgrade < 0 {
		upgrade = 0
	}
	w := config.PaddleBaseWidth * (1 + config.PaddleWidthStep*float64(upgrade))
	return math.Min(w, config.ArenaWidth*config.PaddleMaxWidthRatio)
}

// NewPaddle creates a paddle centered in the arena.
func NewPaddle(arena Arena, widthUpgrade int, skin PaddleSkin) Paddle {
	w := PaddleWidth(widthUpgrade)
	return Paddle{
		X:      (arena.Width - w) / 2,
		Y:      arena.Height - config.PaddleBottomMargin,
		Width:  w,
		Height: config.PaddleHeight,
		Skin:   skin,
	}
}

// MoveTo places the paddle's left edge at x, clamped into the arena.
func (p *Paddle) MoveTo(x float64, arena Arena) {
	if math.IsNaN(x) {
		return
	}
	p.X = physics.Clamp(x, 0, arena.Width-p.Width)
}

// CenterX returns the horizontal center of the paddle.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// Rect returns the paddle's bounding rectangle.
func (p *Paddle) Rect() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Flash sets the hit-flash amplitude if it is stronger than the current one.
func (p *Paddle) Flash(amount float64) {
	if amount > p.HitFlash {
		p.HitFlash = amount
	}
}

// DecayFlash fades the hit flash by one tick.
func (p *Paddle) DecayFlash() {
	p.HitFlash -= config.PaddleFlashDecay
	if p.HitFlash < 0 {
		p.HitFlash = 0
	}
}

// Guns returns the left x of both gun barrels for a projectile of width w.
func (p *Paddle) Guns(w float64) (left, right float64) {
	return p.X + config.PaddleGunInset, p.X + p.Width - config.PaddleGunInset - w
}
