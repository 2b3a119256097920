package loop

import (
	"github.com/tomz197/brickbreaker/internal/effect"
	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/object"
	"golang.org/x/image/colornames"
)

// ShotStyle returns the paddle skin's shot with the active effects applied.
// Rapid fire changes the rate, laser the shape and damage; an explosive shot
// keeps the laser's shape but takes over the effect tag and color.
func (s *Session) ShotStyle() object.ShotStyle {
	st := s.paddleSkin.Shot()
	if s.timers.Active(effect.FastShoot) {
		st.Cooldown = config.RapidFireCooldown
		st.Color = colornames.White
		st.Speed += config.RapidFireSpeedAdd
		st.Effect = object.ShotRapid
	}
	if s.timers.Active(effect.LaserBeam) {
		st.Color = colornames.Cyan
		st.Speed += config.LaserSpeedAdd
		st.W, st.H = config.LaserWidth, config.LaserHeight
		st.Damage = config.LaserDamage
		st.Effect = object.ShotLaser
	}
	if s.timers.Active(effect.ExplosiveShot) {
		st.Color = colornames.Orange
		st.Effect = object.ShotExplosive
	}
	return st
}

// fire shoots from both guns if the cooldown has run out.
func (s *Session) fire() {
	if s.fireCooldown > 0 {
		return
	}
	style := s.ShotStyle()
	s.fireCooldown = style.Cooldown

	spread := []float64{0}
	if s.timers.Active(effect.MultiShot) {
		spread = []float64{-config.MultiShotSpread, 0, config.MultiShotSpread}
	}

	p := &s.store.Paddle
	y := s.arena.Height - config.PaddleGunOffset
	left, right := p.Guns(style.W)
	for _, x := range []float64{left, right} {
		for _, vx := range spread {
			s.store.Projectiles = append(s.store.Projectiles, object.NewProjectile(x, y, vx, style))
		}
		object.SpawnMuzzleFlash(s.store, s.rng, x+style.W/2, y-5, style.Color)
	}

	p.Flash(config.PaddleRecoilFlash)
	s.play(CueHit)
}
