package loop

import (
	"image/color"
	"math"

	"github.com/tomz197/brickbreaker/internal/effect"
	"github.com/tomz197/brickbreaker/internal/object"
)

// Skin particle colors
var (
	plasmaGlow  = color.RGBA{0xe9, 0xd5, 0xff, 0xff}
	fireGlow    = color.RGBA{0xfd, 0xba, 0x74, 0xff}
	toxicGlow   = color.RGBA{0xbe, 0xf2, 0x64, 0xff}
	ghostGlow   = color.RGBA{0xcb, 0xd5, 0xe1, 0xff}
	iceGlow     = color.RGBA{0xa5, 0xf3, 0xfc, 0xff}
	smoke       = color.RGBA{0x52, 0x52, 0x52, 0xff}
	fireRed     = color.RGBA{0xef, 0x44, 0x44, 0xff}
	emberPink   = color.RGBA{0xfc, 0xa5, 0xa5, 0xff}
	neonLight   = color.RGBA{0x34, 0xd3, 0x99, 0xff}
	goldLight   = color.RGBA{0xfe, 0xf0, 0x8a, 0xff}
	voidLight   = color.RGBA{0xd8, 0xb4, 0xfe, 0xff}
)

// paddleInertia is the share of paddle motion inherited by its particles.
const paddleInertia = 0.3

// emitEffects generates the purely cosmetic particles of one tick: ball
// auras and skin trails, paddle skin emission and the shield glow.
// Nothing here feeds back into collisions.
func (s *Session) emitEffects() {
	for _, b := range s.store.Balls {
		if b.Active {
			s.ballAura(b)
			if s.tick%2 == 0 {
				s.ballTrail(b)
			}
		}
	}
	s.paddleEmission()
	s.prevPaddleX = s.store.Paddle.X
}

func (s *Session) spawn(x, y, vx, vy, life, size float64, c color.RGBA) {
	s.store.Spawn(object.NewParticle(x, y, vx, vy, life, size, c))
}

func (s *Session) pick(a, b color.RGBA) color.RGBA {
	if s.rng.Float64() > 0.5 {
		return a
	}
	return b
}

func (s *Session) ballAura(b *object.Ball) {
	c := b.Skin.Color()
	switch b.Skin {
	case object.BallPlasma:
		c = plasmaGlow
	case object.BallFire:
		c = fireGlow
	case object.BallToxic:
		c = toxicGlow
	case object.BallGhost:
		c = ghostGlow
	}
	for range 2 {
		angle := s.rng.Float64() * 2 * math.Pi
		dist := s.rng.Float64() * b.Radius * 0.6
		cos, sin := math.Cos(angle), math.Sin(angle)
		s.spawn(b.X+cos*dist, b.Y+sin*dist, cos*0.5, sin*0.5, 0.3, 1+s.rng.Float64()*3, c)
	}
}

func (s *Session) ballTrail(b *object.Ball) {
	r := s.rng
	switch b.Skin {
	case object.BallFire:
		s.spawn(b.X, b.Y-5, (r.Float64()-0.5)*0.5, -r.Float64()*1.5, 0.8, 2+r.Float64()*3, smoke)
		s.spawn(b.X+(r.Float64()-0.5)*4, b.Y, (r.Float64()-0.5)*0.5, -r.Float64()*2, 0.5, 1+r.Float64()*3,
			s.pick(b.Skin.Color(), fireRed))
	case object.BallPlasma:
		s.spawn(b.X, b.Y, (r.Float64()-0.5)*2, (r.Float64()-0.5)*2, 0.4, 1+r.Float64()*2, s.pick(voidLight, plasmaGlow))
	case object.BallToxic:
		s.spawn(b.X+(r.Float64()-0.5)*4, b.Y+(r.Float64()-0.5)*4, 0, r.Float64()*2, 0.7, 2+r.Float64()*4,
			s.pick(b.Skin.Color(), toxicGlow))
	case object.BallGhost:
		if s.tick%4 == 0 {
			s.spawn(b.X, b.Y, 0, 0, 0.5, b.Radius, ghostGlow)
		}
	case object.BallIce:
		s.spawn(b.X+(r.Float64()-0.5)*8, b.Y+(r.Float64()-0.5)*8, 0, 0.5, 0.8, r.Float64()*2, s.pick(iceGlow, color.RGBA{0xff, 0xff, 0xff, 0xff}))
	}
}

// paddleEmission streams skin particles off the paddle, dragged by its motion.
func (s *Session) paddleEmission() {
	p := &s.store.Paddle
	r := s.rng
	inertia := (p.X - s.prevPaddleX) * paddleInertia

	if s.timers.Active(effect.Shield) && s.tick%3 == 0 {
		s.spawn(p.X+r.Float64()*p.Width, p.Y+p.Height, inertia, -r.Float64(), 0.4, 2, object.PowerUpColor(effect.Shield))
	}

	x := p.X + r.Float64()*p.Width
	y := p.Y + r.Float64()*p.Height
	switch p.Skin {
	case object.PaddleCrimson:
		s.spawn(x, y, (r.Float64()-0.5)*2+inertia, -r.Float64()*2-1.5, 0.5, 1+r.Float64()*4, s.pick(fireRed, emberPink))
	case object.PaddleNeon:
		s.spawn(x, y, inertia*0.5, -r.Float64()*3-1, 0.4, 2+r.Float64()*3, s.pick(neonLight, p.Skin.Color()))
	case object.PaddleGold:
		s.spawn(x, y, (r.Float64()-0.5)+inertia, (r.Float64()-0.5)*2, 0.6, 1+r.Float64()*2, s.pick(goldLight, p.Skin.Color()))
	case object.PaddleIce:
		s.spawn(x, y, inertia, 0.5+r.Float64(), 0.6, r.Float64()*2+1, iceGlow)
	case object.PaddleVoid:
		s.spawn(x, y, (r.Float64()-0.5)*3+inertia, (r.Float64()-0.5)*3, 0.5, 1+r.Float64()*3, voidLight)
	}
}
