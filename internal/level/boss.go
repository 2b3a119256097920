package level

import (
	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/object"
)

// Boss geometry
const (
	BossWidth      = 200.0
	BossHeight     = 40.0
	BossTop        = 80.0
	BossBaseHP     = 40
	guardWidth     = 80.0
	guardHeight    = 16.0
	guardGap       = 20.0
	guardTop       = 150.0
	guardsFromLvl  = 20
	guardHitPoints = 1
)

// BossHP returns the boss hit points for boss level n (level 10 has 50).
func BossHP(n uint) int {
	return BossBaseHP + scaledLevel(n)
}

// BossTier is the boss bonus multiplier for level n: one per ten levels, at least 1.
func BossTier(n uint) int {
	return max(1, scaledLevel(n)/10)
}

// bossLayout builds a boss level: one drifting boss, flanked by iron guards
// from level 20 on. The boss is the only breakable block.
func bossLayout(n uint) Layout {
	hp := BossHP(n)
	boss := object.Block{
		ID:    0,
		X:     (config.ArenaWidth - BossWidth) / 2,
		Y:     BossTop,
		W:     BossWidth,
		H:     BossHeight,
		HP:    hp,
		MaxHP: hp,
		Type:  object.BlockBoss,
		Color: BossColor,
		VX:    config.BossDriftSpeed,
	}
	layout := Layout{
		Level:           n,
		Rows:            1,
		Cols:            1,
		Blocks:          []object.Block{boss},
		SpeedMultiplier: 1 + config.LevelSpeedStep*float64(n),
		Boss:            true,
	}
	if n < guardsFromLvl {
		return layout
	}

	for i, x := range []float64{boss.X - guardWidth - guardGap, boss.X + BossWidth + guardGap} {
		layout.Blocks = append(layout.Blocks, object.Block{
			ID:    i + 1,
			X:     x,
			Y:     guardTop,
			W:     guardWidth,
			H:     guardHeight,
			HP:    guardHitPoints,
			MaxHP: guardHitPoints,
			Type:  object.BlockIron,
			Color: IronColor,
		})
	}
	return layout
}
