package object

import (
	"image/color"

	"github.com/tomz197/brickbreaker/internal/physics"
)

// BlockType is the closed set of block behaviors.
type BlockType uint8

const (
	BlockNormal BlockType = iota
	BlockHard
	BlockExplosive
	BlockPortal
	BlockIce
	BlockBouncy
	BlockIron
	BlockBoss
)

var blockTypeNames = [...]string{"normal", "hard", "explosive", "portal", "ice", "bouncy", "iron", "boss"}

func (t BlockType) String() string {
	if int(t) < len(blockTypeNames) {
		return blockTypeNames[t]
	}
	return "unknown"
}

// Breakable reports whether the block counts toward clearing a level.
// Portal and Iron blocks never do.
func (t BlockType) Breakable() bool {
	return t != BlockPortal && t != BlockIron
}

// Block is a rectangular brick in the arena.
type Block struct {
	ID         int
	X, Y       float64 // Top-left corner
	W, H       float64
	HP, MaxHP  int
	Type       BlockType
	Color      color.RGBA
	HasPowerUp bool
	VX         float64 // Horizontal drift (boss only)
	Flash      float64 // Hit feedback amplitude, decays every tick
	Removed    bool    // Marked for removal; compacted at the end of the tick
}

// Rect returns the block's bounding rectangle.
func (b *Block) Rect() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Damage removes n hit points and reports whether the block died.
// Iron and Portal blocks only flash.
func (b *Block) Damage(n int) (destroyed bool) {
	b.Flash = 1
	if !b.Type.Breakable() || b.HP <= 0 {
		return false
	}
	b.HP -= n
	if b.HP <= 0 {
		b.HP = 0
		return true
	}
	return false
}

// Update drifts moving blocks and decays hit feedback. Blocks are never
// removed by their own update.
func (b *Block) Update(ctx UpdateContext) bool {
	if b.Flash > 0 {
		b.Flash -= 0.1 * ctx.Scale
		if b.Flash < 0 {
			b.Flash = 0
		}
	}
	if b.VX != 0 {
		b.X += b.VX * ctx.Scale
		if b.X < 0 {
			b.X = 0
			b.VX = -b.VX
		} else if b.X+b.W > ctx.Arena.Width {
			b.X = ctx.Arena.Width - b.W
			b.VX = -b.VX
		}
	}
	return false
}
