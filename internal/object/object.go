package object

import (
	"math/rand"

	"github.com/tomz197/brickbreaker/internal/loop/config"
)

// Spawner allows objects to spawn particles during update.
type Spawner interface {
	Spawn(p *Particle)
}

// Arena is the playfield size in logical units.
type Arena struct {
	Width  float64
	Height float64
}

// DefaultArena returns the standard 800x600 playfield.
func DefaultArena() Arena {
	return Arena{Width: config.ArenaWidth, Height: config.ArenaHeight}
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Scale   float64 // Elapsed time in baseline ticks (delta seconds * 60)
	Arena   Arena
	Spawner Spawner
	Rand    *rand.Rand
}

// Object is an updatable entity that owns its own motion.
type Object interface {
	// Update advances the object. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

var (
	_ Object     = (*Block)(nil)
	_ Object     = (*PowerUp)(nil)
	_ Object     = (*Projectile)(nil)
	_ Object     = (*Particle)(nil)
	_ Releasable = (*Particle)(nil)
)

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ShouldRenderBlink returns true if an object with remaining protection
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0 (no protection).
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	// Blink based on frequency (e.g., 5.0 = 5Hz, 10.0 = 10Hz)
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
