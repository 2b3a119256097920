package object

// Store owns every entity of one level session. Slices keep insertion order,
// which is the iteration order collision resolution relies on.
type Store struct {
	Paddle      Paddle
	Balls       []*Ball
	Blocks      []*Block
	Projectiles []*Projectile
	PowerUps    []*PowerUp
	Particles   []*Particle

	MaxParticles int

	toSpawn       []*Particle // Particles to add after the current update cycle
	pendingRemove int         // Blocks marked Removed but not yet compacted
}

// NewStore creates an empty store with a particle cap.
func NewStore(maxParticles int) *Store {
	return &Store{MaxParticles: maxParticles}
}

// Spawn queues a particle to be added after the current update cycle.
// Implements Spawner.
func (s *Store) Spawn(p *Particle) {
	s.toSpawn = append(s.toSpawn, p)
}

// FlushSpawned adds all queued particles, dropping the oldest ones once the
// cap is exceeded.
func (s *Store) FlushSpawned() {
	s.Particles = append(s.Particles, s.toSpawn...)
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]

	if s.MaxParticles > 0 && len(s.Particles) > s.MaxParticles {
		over := len(s.Particles) - s.MaxParticles
		for _, p := range s.Particles[:over] {
			p.Release()
		}
		n := copy(s.Particles, s.Particles[over:])
		clear(s.Particles[n:])
		s.Particles = s.Particles[:n]
	}
}

// UpdateParticles advances every particle and releases the dead ones.
func (s *Store) UpdateParticles(ctx UpdateContext) {
	kept := s.Particles[:0]
	for _, p := range s.Particles {
		if p.Update(ctx) {
			ReleaseObject(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(s.Particles[len(kept):])
	s.Particles = kept
}

// AddBlock appends a block to the store.
func (s *Store) AddBlock(b *Block) {
	s.Blocks = append(s.Blocks, b)
}

// RemoveBlock marks a block as removed. Returns false if it was already
// removed, so callers can run death side effects exactly once.
func (s *Store) RemoveBlock(b *Block) bool {
	if b.Removed {
		return false
	}
	b.Removed = true
	s.pendingRemove++
	return true
}

// CompactBlocks drops removed blocks from the collection.
func (s *Store) CompactBlocks() {
	if s.pendingRemove == 0 {
		return
	}
	kept := s.Blocks[:0]
	for _, b := range s.Blocks {
		if !b.Removed {
			kept = append(kept, b)
		}
	}
	clear(s.Blocks[len(kept):])
	s.Blocks = kept
	s.pendingRemove = 0
}

// BreakableCount returns the number of live blocks that count toward a clear.
func (s *Store) BreakableCount() int {
	n := 0
	for _, b := range s.Blocks {
		if !b.Removed && b.Type.Breakable() {
			n++
		}
	}
	return n
}

// Boss returns the live boss block, or nil.
func (s *Store) Boss() *Block {
	for _, b := range s.Blocks {
		if !b.Removed && b.Type == BlockBoss {
			return b
		}
	}
	return nil
}

// ActiveBalls returns how many balls are in flight.
func (s *Store) ActiveBalls() int {
	n := 0
	for _, b := range s.Balls {
		if b.Active {
			n++
		}
	}
	return n
}

// ClearProjectiles drops every projectile and falling pickup.
func (s *Store) ClearProjectiles() {
	clear(s.Projectiles)
	s.Projectiles = s.Projectiles[:0]
	clear(s.PowerUps)
	s.PowerUps = s.PowerUps[:0]
}

// Release returns all pooled particles. The store must not be used afterwards.
func (s *Store) Release() {
	for _, p := range s.Particles {
		p.Release()
	}
	for _, p := range s.toSpawn {
		p.Release()
	}
	s.Particles = nil
	s.toSpawn = nil
}
