package object

import (
	"image/color"
	"strings"
	"time"

	"golang.org/x/image/colornames"
)

// PaddleSkin identifies an equipped paddle cosmetic. Skins change colors and
// the base shot, never collision rules.
type PaddleSkin uint8

const (
	PaddleDefault PaddleSkin = iota
	PaddleCrimson
	PaddleGold
	PaddleNeon
	PaddleIce
	PaddleVoid
)

var paddleSkinNames = [...]string{"default", "crimson", "gold", "neon", "ice", "void"}

// BallSkin identifies an equipped ball cosmetic.
type BallSkin uint8

const (
	BallDefault BallSkin = iota
	BallPlasma
	BallFire
	BallIce
	BallToxic
	BallGhost
)

var ballSkinNames = [...]string{"default", "plasma", "fire", "ice", "toxic", "ghost"}

// ShotStyle describes the projectiles a paddle fires.
type ShotStyle struct {
	Color    color.RGBA
	Speed    float64 // Units per tick, upward
	W, H     float64
	Cooldown time.Duration
	Effect   ShotEffect
	Damage   int
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }

// skinID strips store prefixes such as "skin_paddle_" from an identifier.
func skinID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if i := strings.LastIndexByte(id, '_'); i >= 0 {
		id = id[i+1:]
	}
	return id
}

// ParsePaddleSkin maps an external skin identifier to a paddle skin.
// Unknown or empty identifiers fall back to the default skin.
func ParsePaddleSkin(id string) PaddleSkin {
	id = skinID(id)
	for i, name := range paddleSkinNames {
		if name == id {
			return PaddleSkin(i)
		}
	}
	return PaddleDefault
}

func (s PaddleSkin) String() string {
	if int(s) < len(paddleSkinNames) {
		return paddleSkinNames[s]
	}
	return paddleSkinNames[PaddleDefault]
}

// Color returns the paddle body color.
func (s PaddleSkin) Color() color.RGBA {
	switch s {
	case PaddleCrimson:
		return rgb(0xef, 0x44, 0x44)
	case PaddleGold:
		return rgb(0xea, 0xb3, 0x08)
	case PaddleNeon:
		return rgb(0x10, 0xb9, 0x81)
	case PaddleIce:
		return rgb(0x06, 0xb6, 0xd4)
	case PaddleVoid:
		return rgb(0x58, 0x1c, 0x87)
	default:
		return rgb(0x3b, 0x82, 0xf6)
	}
}

// Shot returns the skin's base projectile style.
func (s PaddleSkin) Shot() ShotStyle {
	base := ShotStyle{Effect: ShotNormal, Damage: 1}
	switch s {
	case PaddleCrimson:
		base.Color, base.Speed, base.W, base.H, base.Cooldown = rgb(0xff, 0x00, 0x00), 14, 6, 20, 250*time.Millisecond
	case PaddleNeon:
		base.Color, base.Speed, base.W, base.H, base.Cooldown = rgb(0x10, 0xb9, 0x81), 14, 3, 16, 400*time.Millisecond
	case PaddleGold:
		base.Color, base.Speed, base.W, base.H, base.Cooldown = rgb(0xea, 0xb3, 0x08), 9, 6, 10, 600*time.Millisecond
	case PaddleIce:
		base.Color, base.Speed, base.W, base.H, base.Cooldown = rgb(0x22, 0xd3, 0xee), 11, 4, 14, 500*time.Millisecond
	case PaddleVoid:
		base.Color, base.Speed, base.W, base.H, base.Cooldown = rgb(0xa8, 0x55, 0xf7), 13, 5, 12, 550*time.Millisecond
	default:
		base.Color, base.Speed, base.W, base.H, base.Cooldown = rgb(0xfb, 0xbf, 0x24), 10, 4, 12, 500*time.Millisecond
	}
	return base
}

// ParseBallSkin maps an external skin identifier to a ball skin.
// Unknown or empty identifiers fall back to the default skin.
func ParseBallSkin(id string) BallSkin {
	id = skinID(id)
	for i, name := range ballSkinNames {
		if name == id {
			return BallSkin(i)
		}
	}
	return BallDefault
}

func (s BallSkin) String() string {
	if int(s) < len(ballSkinNames) {
		return ballSkinNames[s]
	}
	return ballSkinNames[BallDefault]
}

// Color returns the ball color.
func (s BallSkin) Color() color.RGBA {
	switch s {
	case BallPlasma:
		return rgb(0xa8, 0x55, 0xf7)
	case BallFire:
		return rgb(0xf9, 0x73, 0x16)
	case BallIce:
		return rgb(0x06, 0xb6, 0xd4)
	case BallToxic:
		return rgb(0x84, 0xcc, 0x16)
	case BallGhost:
		return rgb(0x94, 0xa3, 0xb8)
	default:
		return colornames.White
	}
}

// HasTrail reports whether the skin leaves a particle trail.
func (s BallSkin) HasTrail() bool {
	return s != BallDefault
}
