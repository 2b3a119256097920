package object

import (
	"image/color"
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/brickbreaker/internal/loop/config"
	"golang.org/x/image/colornames"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. It never takes part in collisions.
type Particle struct {
	X, Y    float64    // Position
	VX, VY  float64    // Velocity in units per tick
	Life    float64    // Remaining life, starts at MaxLife
	MaxLife float64    // Initial life (for fade calculation)
	Size    float64    // Side length; shrinks every tick
	Color   color.RGBA // Render color
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, life, size float64, c color.RGBA) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Life = life
	p.MaxLife = life
	p.Size = size
	p.Color = c
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the store.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Alpha returns the remaining life as a 0-1 opacity.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, p.Life/p.MaxLife))
}

// Update moves the particle, shrinks it and checks its life.
func (p *Particle) Update(ctx UpdateContext) bool {
	p.X += p.VX * ctx.Scale
	p.Y += p.VY * ctx.Scale
	p.Life -= config.ParticleLifeDecay * ctx.Scale
	p.Size *= math.Pow(config.ParticleShrink, ctx.Scale)
	return p.Life <= 0
}

// SpawnBurst creates particles flying out of (x, y) in random directions.
func SpawnBurst(sp Spawner, rng *rand.Rand, x, y float64, count int, speed, life float64, c color.RGBA) {
	if sp == nil {
		return
	}
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rng.Float64())
		size := 2 + rng.Float64()*3
		sp.Spawn(NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, size, c))
	}
}

// SpawnDebris shatters a block: a grid of colored fragments plus white dust.
func SpawnDebris(sp Spawner, rng *rand.Rand, b *Block) {
	if sp == nil {
		return
	}
	fw := b.W / config.DebrisCols
	fh := b.H / config.DebrisRows
	size := math.Min(fw, fh)
	for r := 0; r < config.DebrisRows; r++ {
		for c := 0; c < config.DebrisCols; c++ {
			x := b.X + fw*(float64(c)+0.5)
			y := b.Y + fh*(float64(r)+0.5)
			vx := (rng.Float64() - 0.5) * 6
			vy := (rng.Float64()-0.5)*6 - 2
			sp.Spawn(NewParticle(x, y, vx, vy, 1, size, b.Color))
		}
	}
	cx, cy := b.Rect().CenterX(), b.Rect().CenterY()
	for i := 0; i < config.DustCount; i++ {
		vx := (rng.Float64() - 0.5) * 4
		vy := (rng.Float64() - 0.5) * 4
		sp.Spawn(NewParticle(cx, cy, vx, vy, 0.6, 1+rng.Float64()*2, colornames.White))
	}
}

// SpawnMuzzleFlash emits a short upward spray at a gun position.
func SpawnMuzzleFlash(sp Spawner, rng *rand.Rand, x, y float64, c color.RGBA) {
	if sp == nil {
		return
	}
	for i := 0; i < config.MuzzleFlashCount; i++ {
		vx := (rng.Float64() - 0.5) * 3
		vy := -1 - rng.Float64()*3
		p := NewParticle(x, y, vx, vy, 0.3, 2, c)
		sp.Spawn(p)
	}
}
