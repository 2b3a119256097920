package loop

import (
	"math"

	"github.com/tomz197/brickbreaker/internal/effect"
	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/object"
	"github.com/tomz197/brickbreaker/internal/physics"
	"golang.org/x/image/colornames"
)

// killCause decides how a destroyed block is scored.
type killCause uint8

const (
	killBall       killCause = iota // Combo scoring
	killProjectile                  // Flat points
	killSplash                      // Flat points
)

// splash is a pending explosion centered at X, Y.
type splash struct {
	X, Y float64
}

// collide runs one collision pass in the fixed order: paddle, projectiles,
// power-ups, balls, particles, combo timer.
func (s *Session) collide(scale float64) {
	ctx := object.UpdateContext{Scale: scale, Arena: s.arena, Spawner: s.store, Rand: s.rng}

	s.updatePaddle()
	for _, b := range s.store.Blocks {
		b.Update(ctx)
	}
	s.indexBlocks()

	s.updateProjectiles(ctx)
	s.updatePowerUps(ctx)
	s.updateBalls(scale)
	s.store.CompactBlocks()

	s.store.UpdateParticles(ctx)
	s.combo.Decay()
}

// updatePaddle clamps the paddle to its target and keeps resting balls on it.
func (s *Session) updatePaddle() {
	p := &s.store.Paddle
	p.MoveTo(s.targetX, s.arena)
	for _, b := range s.store.Balls {
		if !b.Active {
			b.Rest(p, s.arena)
		}
	}
}

// indexBlocks rebuilds the broad-phase grid. Indices stay valid until
// CompactBlocks runs at the end of the pass.
func (s *Session) indexBlocks() {
	s.grid.Clear()
	for i, b := range s.store.Blocks {
		if !b.Removed {
			s.grid.InsertRect(b.Rect(), i)
		}
	}
}

func (s *Session) updateProjectiles(ctx object.UpdateContext) {
	kept := s.store.Projectiles[:0]
	for _, p := range s.store.Projectiles {
		if p.Update(ctx) {
			continue
		}
		if s.projectileHit(p) {
			continue
		}
		kept = append(kept, p)
	}
	clear(s.store.Projectiles[len(kept):])
	s.store.Projectiles = kept
}

// projectileHit resolves the first block a projectile overlaps.
// Returns true if the projectile was spent.
func (s *Session) projectileHit(p *object.Projectile) bool {
	r := p.Rect()
	i := s.grid.FirstInRect(r, func(i int) bool {
		b := s.store.Blocks[i]
		return !b.Removed && b.Type != object.BlockPortal && b.Rect().Overlaps(r)
	})
	if i < 0 {
		return false
	}

	b := s.store.Blocks[i]
	object.SpawnBurst(s.store, s.rng, p.X+p.W/2, p.Y, config.ProjectileHitBits, 3, 0.3, p.Color)
	if b.Damage(p.Damage) {
		s.destroyBlock(b, killProjectile)
		if p.Effect == object.ShotExplosive {
			s.explode(p.X+p.W/2, p.Y)
		}
	} else {
		s.play(CueHit)
	}
	return true
}

func (s *Session) updatePowerUps(ctx object.UpdateContext) {
	if s.timers.Active(effect.SlowMo) {
		ctx.Scale *= config.SlowMoFactor
	}
	paddle := s.store.Paddle.Rect()

	kept := s.store.PowerUps[:0]
	for _, p := range s.store.PowerUps {
		if p.Update(ctx) {
			continue
		}
		if p.Rect().Overlaps(paddle) {
			s.activate(p.Kind)
			continue
		}
		kept = append(kept, p)
	}
	clear(s.store.PowerUps[len(kept):])
	s.store.PowerUps = kept
}

// activate applies a collected power-up.
func (s *Session) activate(k effect.Kind) {
	s.powerUpsCollected++
	s.emit(Event{Kind: EventPowerUpCollected, Value: int(k)})
	if k == effect.Multiball {
		s.spawnMultiball()
	} else {
		s.timers.Activate(k, s.tuning.EffectTicks)
	}
	s.play(CuePortal)
}

// spawnMultiball adds two balls rising from the paddle center.
func (s *Session) spawnMultiball() {
	speed := s.launchSpeed()
	for range 2 {
		b := object.NewRestingBall(&s.store.Paddle, s.arena, s.ballSkin)
		b.Launch(speed, (s.rng.Float64()-0.5)*config.MultiballSpread)
		b.EnforceMinSpeed(s.tuning.MinBallSpeed)
		s.store.Balls = append(s.store.Balls, b)
	}
}

// ballMultiplier combines the active slow effects.
func (s *Session) ballMultiplier() float64 {
	mult := 1.0
	if s.timers.Active(effect.SlowMo) {
		mult *= config.SlowMoFactor
	}
	if s.timers.Active(effect.IceSlow) {
		mult *= config.IceSlowFactor
	}
	return mult
}

func (s *Session) updateBalls(scale float64) {
	mult := s.ballMultiplier()

	kept := s.store.Balls[:0]
	for _, b := range s.store.Balls {
		if !b.Active {
			kept = append(kept, b)
			continue
		}
		b.Move(scale, mult)
		b.BounceWalls(s.arena)
		if b.BelowArena(s.arena) && !s.shieldSave(b) {
			continue
		}
		s.paddleHit(b)
		s.blockHit(b)
		b.EnforceMinSpeed(s.tuning.MinBallSpeed)
		kept = append(kept, b)
	}
	clear(s.store.Balls[len(kept):])
	s.store.Balls = kept
}

// shieldSave bounces a lost ball back into play if a shield is up,
// consuming the shield.
func (s *Session) shieldSave(b *object.Ball) bool {
	if !s.tuning.ShieldSavesBall || !s.timers.Consume(effect.Shield) {
		return false
	}
	b.Y = s.arena.Height - b.Radius
	b.VY = -math.Abs(b.VY)
	object.SpawnBurst(s.store, s.rng, b.X, s.arena.Height, 12, 3, 0.5, object.PowerUpColor(effect.Shield))
	s.emit(Event{Kind: EventShieldUsed})
	s.play(CueHit)
	return true
}

// paddleHit bounces a descending ball off the paddle. The horizontal speed
// depends only on where the ball hit, zero at the exact center.
func (s *Session) paddleHit(b *object.Ball) {
	p := &s.store.Paddle
	if b.VY <= 0 || !b.TouchesPaddle(p) {
		return
	}
	b.VY = -math.Max(math.Abs(b.VY), s.tuning.MinBallSpeed)
	b.VX = (b.X - p.CenterX()) * config.PaddleDeflection
	s.combo.Reset()
	p.Flash(config.PaddleHitFlash)
	s.play(CueHit)
}

// blockHit resolves the first block, in store order, the ball touches.
func (s *Session) blockHit(b *object.Ball) {
	box := physics.Rect{X: b.X - b.Radius, Y: b.Y - b.Radius, W: 2 * b.Radius, H: 2 * b.Radius}
	var dx, dy float64
	i := s.grid.FirstInRect(box, func(i int) bool {
		blk := s.store.Blocks[i]
		if blk.Removed {
			return false
		}
		hit, hx, hy := physics.CircleRectHit(b.X, b.Y, b.Radius, blk.Rect())
		if hit {
			dx, dy = hx, hy
		}
		return hit
	})
	if i < 0 {
		return
	}

	blk := s.store.Blocks[i]
	switch blk.Type {
	case object.BlockPortal:
		s.usePortal(b, blk)
		return
	case object.BlockIron:
		b.ReflectFrom(blk.Rect(), dx, dy)
		blk.Damage(0)
		object.SpawnBurst(s.store, s.rng, b.X-dx, b.Y-dy, config.HitSparkCount, 2, 0.4, colornames.Lightslategray)
		s.play(CueHit)
		return
	case object.BlockIce:
		b.ReflectFrom(blk.Rect(), dx, dy)
		s.timers.Activate(effect.IceSlow, s.tuning.IceSlowTicks)
	case object.BlockBouncy:
		b.ReflectFrom(blk.Rect(), dx, dy)
		s.scatter(b)
	default:
		b.ReflectFrom(blk.Rect(), dx, dy)
	}

	if blk.Damage(1) {
		s.destroyBlock(blk, killBall)
		return
	}
	object.SpawnBurst(s.store, s.rng, b.X-dx, b.Y-dy, config.HitSparkCount, 3, 0.5, blk.Color)
	s.play(CueHit)
}

// scatter gives the ball a uniformly random direction at the same speed.
// A direction back into the block is resolved as a fresh hit next tick.
func (s *Session) scatter(b *object.Ball) {
	speed := b.Speed()
	angle := s.rng.Float64() * 2 * math.Pi
	b.VX = math.Cos(angle) * speed
	b.VY = math.Sin(angle) * speed
}

// usePortal sends the ball back to the top and consumes the portal.
func (s *Session) usePortal(b *object.Ball, portal *object.Block) {
	r := portal.Rect()
	object.SpawnBurst(s.store, s.rng, r.CenterX(), r.CenterY(), config.PortalBurstCount, 8, 1.5, level.PortalColor)
	b.Y = config.PortalExitY
	b.VY = -math.Abs(b.VY)
	s.store.RemoveBlock(portal)
	s.emit(Event{Kind: EventPortalUsed})
	s.play(CuePortal)
}

// destroyBlock is the single path for block deaths. Calling it twice for the
// same block has no further effect.
func (s *Session) destroyBlock(b *object.Block, cause killCause) {
	if !s.store.RemoveBlock(b) {
		return
	}
	s.blocksBroken++
	if b.HasPowerUp {
		kind := effect.DropKinds[s.rng.Intn(len(effect.DropKinds))]
		s.store.PowerUps = append(s.store.PowerUps, object.NewPowerUp(b, kind))
	}
	object.SpawnDebris(s.store, s.rng, b)

	var points int
	switch cause {
	case killBall:
		count, mult := s.combo.Hit(s.tuning.ComboWindowTicks)
		points = effect.Points(config.BlockBasePoints, count, mult)
		if effect.Milestone(count) {
			s.emit(Event{Kind: EventComboMilestone, Value: count})
		}
	case killProjectile:
		points = config.ProjectileKillPoints
	case killSplash:
		points = config.SplashKillPoints
	}
	s.score += points
	s.emit(Event{Kind: EventBlockBroken, Points: points, Value: b.ID})
	s.play(CueBrickDestroy)

	switch b.Type {
	case object.BlockBoss:
		s.defeatBoss(b)
	case object.BlockExplosive:
		r := b.Rect()
		s.explode(r.CenterX(), r.CenterY())
	}
}

// defeatBoss awards the boss bonus and signals the big effects.
func (s *Session) defeatBoss(b *object.Block) {
	bonus := config.BossBonusPerTier * level.BossTier(s.level)
	s.bossBonus += bonus
	s.score += bonus
	s.shake = config.BossShakeTicks
	s.flash = 1
	r := b.Rect()
	object.SpawnBurst(s.store, s.rng, r.CenterX(), r.CenterY(), config.BossBurstCount, 6, 1.2, b.Color)
	s.emit(Event{Kind: EventBossDefeated, Points: bonus})
	s.logger.Debug("boss defeated", "level", s.level, "bonus", bonus)
}

// explode queues a splash and, unless one is already being resolved,
// resolves the queue. Chained explosions are handled iteratively.
func (s *Session) explode(x, y float64) {
	s.splashes = append(s.splashes, splash{X: x, Y: y})
	if s.exploding {
		return
	}
	s.exploding = true
	for i := 0; i < len(s.splashes); i++ {
		s.splashAt(s.splashes[i])
	}
	s.splashes = s.splashes[:0]
	s.exploding = false
}

// splashAt deals one damage to every breakable block centered within the radius.
func (s *Session) splashAt(c splash) {
	object.SpawnBurst(s.store, s.rng, c.X, c.Y, 12, 4, 0.6, colornames.Orange)
	for _, b := range s.store.Blocks {
		if b.Removed || !b.Type.Breakable() {
			continue
		}
		r := b.Rect()
		if physics.Distance(c.X, c.Y, r.CenterX(), r.CenterY()) > config.SplashRadius {
			continue
		}
		if b.Damage(1) {
			s.destroyBlock(b, killSplash)
		}
	}
}
