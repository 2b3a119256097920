package object

import (
	"image/color"

	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/physics"
)

// ShotEffect tags how a projectile behaves and looks.
type ShotEffect uint8

const (
	ShotNormal ShotEffect = iota
	ShotRapid
	ShotExplosive
	ShotLaser
)

// TrailPoint is one fading point of a projectile trail.
type TrailPoint struct {
	X, Y float64
	Life float64 // 1 when recorded, fades toward 0
}

// Projectile is a shot fired upward from the paddle guns.
type Projectile struct {
	X, Y   float64 // Top-left corner
	VX, VY float64 // Velocity in units per tick
	W, H   float64
	Color  color.RGBA
	Effect ShotEffect
	Damage int
	Trail  []TrailPoint // Oldest first, at most config.TrailLength
	Sparks []Particle   // Attached sparks, at most config.SparkLimit
}

// NewProjectile creates a projectile at (x, y) using the given style.
func NewProjectile(x, y, vx float64, style ShotStyle) *Projectile {
	dmg := style.Damage
	if dmg < 1 {
		dmg = 1
	}
	return &Projectile{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     -style.Speed,
		W:      style.W,
		H:      style.H,
		Color:  style.Color,
		Effect: style.Effect,
		Damage: dmg,
	}
}

// Rect returns the projectile's bounding rectangle.
func (p *Projectile) Rect() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Update moves the projectile, reflects spread shots off the side walls
// and ages its trail. Returns true once it has left the top of the arena.
func (p *Projectile) Update(ctx UpdateContext) bool {
	p.recordTrail(ctx.Scale)

	p.X += p.VX * ctx.Scale
	p.Y += p.VY * ctx.Scale

	if p.VX != 0 {
		if p.X < 0 {
			p.X = 0
			p.VX = -p.VX
		} else if p.X+p.W > ctx.Arena.Width {
			p.X = ctx.Arena.Width - p.W
			p.VX = -p.VX
		}
	}

	p.updateSparks(ctx)

	return p.Y+p.H < 0
}

// recordTrail fades existing trail points and appends the current position.
func (p *Projectile) recordTrail(scale float64) {
	kept := p.Trail[:0]
	for _, tp := range p.Trail {
		tp.Life -= 0.15 * scale
		if tp.Life > 0 {
			kept = append(kept, tp)
		}
	}
	p.Trail = kept
	if len(p.Trail) >= config.TrailLength {
		copy(p.Trail, p.Trail[1:])
		p.Trail = p.Trail[:len(p.Trail)-1]
	}
	p.Trail = append(p.Trail, TrailPoint{X: p.X + p.W/2, Y: p.Y + p.H, Life: 1})
}

// updateSparks advances attached sparks and emits new ones for explosive shots.
func (p *Projectile) updateSparks(ctx UpdateContext) {
	kept := p.Sparks[:0]
	for i := range p.Sparks {
		s := p.Sparks[i]
		if !s.Update(ctx) {
			kept = append(kept, s)
		}
	}
	p.Sparks = kept

	if p.Effect != ShotExplosive || ctx.Rand == nil || len(p.Sparks) >= config.SparkLimit {
		return
	}
	p.Sparks = append(p.Sparks, Particle{
		X:       p.X + p.W/2,
		Y:       p.Y + p.H,
		VX:      (ctx.Rand.Float64() - 0.5) * 2,
		VY:      1 + ctx.Rand.Float64(),
		Life:    0.3,
		MaxLife: 0.3,
		Size:    2,
		Color:   p.Color,
	})
}
