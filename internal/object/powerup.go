package object

import (
	"image/color"

	"github.com/tomz197/brickbreaker/internal/effect"
	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/physics"
	"golang.org/x/image/colornames"
)

// PowerUp is a falling pickup dropped by a flagged block.
type PowerUp struct {
	X, Y float64 // Top-left corner
	W, H float64
	VY   float64 // Fall speed in units per tick
	Kind effect.Kind
}

// NewPowerUp creates a pickup centered horizontally on the destroyed block.
func NewPowerUp(b *Block, kind effect.Kind) *PowerUp {
	return &PowerUp{
		X:    b.X + b.W/2 - config.PowerUpSize/2,
		Y:    b.Y,
		W:    config.PowerUpSize,
		H:    config.PowerUpSize,
		VY:   config.PowerUpSpeed,
		Kind: kind,
	}
}

// Rect returns the pickup's bounding rectangle.
func (p *PowerUp) Rect() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Update advances the pickup by ctx.Scale ticks. Slow-downs are folded into
// the scale by the caller. Returns true once it has left the bottom of the arena.
func (p *PowerUp) Update(ctx UpdateContext) bool {
	p.Y += p.VY * ctx.Scale
	return p.Y > ctx.Arena.Height
}

// PowerUpColor returns the display color for a pickup kind.
func PowerUpColor(k effect.Kind) color.RGBA {
	switch k {
	case effect.Multiball:
		return colornames.Deepskyblue
	case effect.FastShoot:
		return colornames.Gold
	case effect.Shield:
		return colornames.Mediumseagreen
	case effect.SlowMo:
		return colornames.Mediumpurple
	case effect.ExplosiveShot:
		return colornames.Orangered
	case effect.LaserBeam:
		return colornames.Cyan
	case effect.MultiShot:
		return colornames.Hotpink
	default:
		return colornames.White
	}
}

// PowerUpSymbol returns a one-letter label for text renderers.
func PowerUpSymbol(k effect.Kind) rune {
	switch k {
	case effect.Multiball:
		return 'M'
	case effect.FastShoot:
		return 'F'
	case effect.Shield:
		return 'S'
	case effect.SlowMo:
		return 'T'
	case effect.ExplosiveShot:
		return 'X'
	case effect.LaserBeam:
		return 'L'
	case effect.MultiShot:
		return 'W'
	default:
		return '?'
	}
}
