// Package level builds block layouts from a level number.
package level

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/object"
)

// Grid geometry
const (
	GridLeft     = 30.0
	GridTop      = 60.0
	GridWidth    = 740.0
	BlockHeight  = 12.0
	BlockPadding = 5.0
	RowPitch     = BlockHeight + BlockPadding
	MaxCols      = 34
	bottomMargin = 90.0 // Space kept free above the paddle
)

// Difficulty curve
const (
	baseRows         = 8
	baseCols         = 10
	growthPerLevel   = 0.48
	baseTarget       = 40
	targetPerLevel   = 12
	maxTarget        = 700
	baseSkip         = 0.15
	skipPerLevel     = 0.0029
	minSkip          = 0.01
	baseHard         = 0.05
	hardPerLevel     = 0.007
	maxHard          = 0.4
	explosiveChance  = 0.02
	powerUpChance    = 0.1
	hpStepLevels     = 7
	portalHP         = 9999
	ironChance       = 0.03
	bouncyChance     = 0.04
	iceChance        = 0.04
	iceFromLevel     = 6
	bouncyFromLevel  = 8
	ironFromLevel    = 12
	portalRowEpsilon = 5.0
)

// Block colors
var (
	Palette = []color.RGBA{
		{0xdc, 0x26, 0x26, 0xff},
		{0xea, 0x58, 0x0c, 0xff},
		{0xca, 0x8a, 0x04, 0xff},
		{0x16, 0xa3, 0x4a, 0xff},
		{0x0d, 0x94, 0x88, 0xff},
		{0x25, 0x63, 0xeb, 0xff},
		{0x4f, 0x46, 0xe5, 0xff},
	}
	PortalColor    = color.RGBA{0x22, 0xd3, 0xee, 0xff}
	IronColor      = color.RGBA{0x64, 0x74, 0x8b, 0xff}
	IceColor       = color.RGBA{0xba, 0xe6, 0xfd, 0xff}
	BouncyColor    = color.RGBA{0xf4, 0x72, 0xb6, 0xff}
	ExplosiveColor = color.RGBA{0xf9, 0x73, 0x16, 0xff}
	BossColor      = color.RGBA{0x7c, 0x3a, 0xed, 0xff}
)

// Pattern selects which cells of the grid are candidates for blocks.
type Pattern uint8

const (
	PatternFull Pattern = iota
	PatternChecker
	PatternColumns
	PatternPyramid
)

// Layout is the generated block set for one level.
type Layout struct {
	Level           uint
	Rows, Cols      int
	Pattern         Pattern
	Blocks          []object.Block
	SpeedMultiplier float64 // Launch speed factor for this level
	Boss            bool    // Cleared by destroying the boss instead of all blocks
}

// Seed returns the RNG seed used for a level number.
func Seed(n uint) int64 {
	return int64(n)*0x9E3779B1 + 0x5DEECE66D
}

// Generate builds the layout for level n. The same n always yields the same layout.
func Generate(n uint) Layout {
	return GenerateWithRand(n, rand.New(rand.NewSource(Seed(n))))
}

// maxScaledLevel is where every difficulty curve has long since flattened.
// Level arithmetic saturates here so huge level numbers cannot overflow.
const maxScaledLevel = 1 << 20

func scaledLevel(n uint) int {
	return int(min(n, maxScaledLevel))
}

// Dimensions returns the grid size for level n, both at least 1.
func Dimensions(n uint) (rows, cols int) {
	maxRows := int(math.Floor((config.ArenaHeight - bottomMargin) / RowPitch))
	growth := int(math.Ceil(float64(scaledLevel(n)) * growthPerLevel))
	rows = max(1, min(maxRows, baseRows+growth))
	cols = max(1, min(MaxCols, baseCols+growth))
	return rows, cols
}

// BlockWidth returns the width of one block for a column count.
func BlockWidth(cols int) float64 {
	return (GridWidth - float64(cols-1)*BlockPadding) / float64(cols)
}

// TargetBlockCount is the cap on placed blocks; it never decreases with n.
func TargetBlockCount(n uint) int {
	return min(maxTarget, baseTarget+targetPerLevel*scaledLevel(n))
}

// SkipChance is the per-cell chance of leaving a gap; it falls as n grows.
func SkipChance(n uint) float64 {
	return math.Max(minSkip, baseSkip-skipPerLevel*float64(n))
}

// HardChance is the chance of a block being Hard regardless of its hp.
func HardChance(n uint) float64 {
	return math.Min(maxHard, baseHard+hardPerLevel*float64(n))
}

// IsBossLevel reports whether level n is a boss level.
func IsBossLevel(n uint) bool {
	return n > 0 && n%10 == 0
}

// GenerateWithRand builds the layout for level n drawing randomness from rng.
func GenerateWithRand(n uint, rng *rand.Rand) Layout {
	if n == 0 {
		n = 1
	}
	if IsBossLevel(n) {
		return bossLayout(n)
	}

	rows, cols := Dimensions(n)
	layout := Layout{
		Level:           n,
		Rows:            rows,
		Cols:            cols,
		Pattern:         Pattern(n % 4),
		SpeedMultiplier: 1 + config.LevelSpeedStep*float64(n),
	}

	blockW := BlockWidth(cols)
	target := TargetBlockCount(n)
	skip := SkipChance(n)

	for r := 0; r < rows; r++ {
		if r > 0 && len(layout.Blocks) >= target {
			break
		}
		for c := 0; c < cols; c++ {
			// Row 0 is always complete
			if r > 0 {
				if skipCell(layout.Pattern, n, r, c, rows, cols, rng) {
					continue
				}
				if rng.Float64() < skip {
					continue
				}
			}
			b := newBlock(n, r, c, rng)
			b.ID = len(layout.Blocks)
			b.X = GridLeft + float64(c)*(blockW+BlockPadding)
			b.Y = GridTop + float64(r)*RowPitch
			b.W = blockW
			b.H = BlockHeight
			layout.Blocks = append(layout.Blocks, b)
		}
	}

	placePortal(layout.Blocks, rng)
	return layout
}

// skipCell applies the level's placement pattern to one cell.
func skipCell(p Pattern, n uint, r, c, rows, cols int, rng *rand.Rand) bool {
	switch p {
	case PatternChecker:
		return (r+c)%2 != 0
	case PatternColumns:
		return c%2 != 0 && n > 5
	case PatternPyramid:
		if r > rows/2 && rng.Float64() > 0.6 {
			return true
		}
		half := float64(r) / 2
		return float64(c) < half || float64(c) > float64(cols)-half
	default:
		return false
	}
}

// newBlock rolls hp, type, color and power-up flag for one cell.
func newBlock(n uint, r, c int, rng *rand.Rand) object.Block {
	hp := max(1, int(math.Ceil(rng.Float64()*float64(1+scaledLevel(n)/hpStepLevels))))
	b := object.Block{
		Type:  object.BlockNormal,
		Color: Palette[(r+c)%len(Palette)],
	}

	switch {
	case rng.Float64() < explosiveChance:
		b.Type = object.BlockExplosive
		b.Color = ExplosiveColor
		hp = 1
	case hp >= 3 || rng.Float64() < HardChance(n):
		b.Type = object.BlockHard
	default:
		s := rng.Float64()
		switch {
		case n >= ironFromLevel && s < ironChance:
			b.Type = object.BlockIron
			b.Color = IronColor
		case n >= bouncyFromLevel && s >= ironChance && s < ironChance+bouncyChance:
			b.Type = object.BlockBouncy
			b.Color = BouncyColor
		case n >= iceFromLevel && s >= ironChance+bouncyChance && s < ironChance+bouncyChance+iceChance:
			b.Type = object.BlockIce
			b.Color = IceColor
		}
	}

	b.HP, b.MaxHP = hp, hp
	b.HasPowerUp = rng.Float64() < powerUpChance && b.Type != object.BlockIron
	return b
}

// placePortal converts one random block of the bottom-most row into a portal.
func placePortal(blocks []object.Block, rng *rand.Rand) {
	if len(blocks) == 0 {
		return
	}
	maxY := math.Inf(-1)
	for _, b := range blocks {
		maxY = math.Max(maxY, b.Y)
	}
	var candidates []int
	for i, b := range blocks {
		if math.Abs(b.Y-maxY) < portalRowEpsilon && b.Type != object.BlockIron && b.Type != object.BlockBoss {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	p := &blocks[candidates[rng.Intn(len(candidates))]]
	p.Type = object.BlockPortal
	p.HP, p.MaxHP = portalHP, portalHP
	p.HasPowerUp = false
	p.Color = PortalColor
}
