package loop

import (
	"time"

	"github.com/tomz197/brickbreaker/internal/effect"
	"github.com/tomz197/brickbreaker/internal/object"
)

// EventKind identifies something notable that happened during a tick.
type EventKind uint8

const (
	EventBlockBroken EventKind = iota
	EventPowerUpCollected
	EventLifeLost
	EventComboMilestone
	EventPortalUsed
	EventBossDefeated
	EventShieldUsed
)

var eventKindNames = [...]string{
	"block-broken", "power-up-collected", "life-lost", "combo-milestone", "portal-used", "boss-defeated", "shield-used",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is emitted by the collision phase and terminal checks.
// Points is the score awarded, Value is kind specific (combo count,
// power-up kind, lives left).
type Event struct {
	Kind   EventKind
	Points int
	Value  int
}

// Result is how a finished session ended.
type Result uint8

const (
	ResultWin Result = iota + 1
	ResultLoss
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLoss:
		return "loss"
	default:
		return "none"
	}
}

// Outcome is the terminal event of a session. Only Score is meaningful for a loss.
type Outcome struct {
	Result            Result
	Level             uint
	Score             int
	Lives             int
	Stars             int
	Elapsed           time.Duration
	BlocksBroken      int
	PowerUpsCollected int
	MaxCombo          int
	BossBonus         int
	Reward            int
}

// ActiveEffect is a running effect timer as seen by renderers.
type ActiveEffect struct {
	Kind      effect.Kind
	Remaining int // Ticks
}

// Snapshot is a value copy of the session's renderable state. It shares no
// memory with the session and is safe to hand to another goroutine.
type Snapshot struct {
	Level       uint
	Boss        bool
	Started     bool
	Paused      bool
	Arena       object.Arena
	Paddle      object.Paddle
	Balls       []object.Ball
	Blocks      []object.Block
	Projectiles []object.Projectile
	PowerUps    []object.PowerUp
	Particles   []object.Particle
	Effects     []ActiveEffect
	Shake       int     // Screen shake ticks left
	Flash       float64 // Screen flash amplitude, 0-1
}

// TickResult is everything observable after one tick.
type TickResult struct {
	Tick       uint64
	Score      int
	Lives      int
	Combo      int
	Multiplier int
	Events     []Event
	Snapshot   Snapshot
	Outcome    *Outcome // Non-nil once the session has ended
}

// Stars rates a win by the lives left.
func Stars(lives int) int {
	switch {
	case lives >= 3:
		return 3
	case lives == 2:
		return 2
	default:
		return 1
	}
}

// snapshot copies the store into a Snapshot.
func (s *Session) snapshot() Snapshot {
	st := s.store
	snap := Snapshot{
		Level:   s.level,
		Boss:    s.boss,
		Started: s.started,
		Paused:  s.paused,
		Arena:   s.arena,
		Paddle:  st.Paddle,
		Shake:   s.shake,
		Flash:   s.flash,
	}

	snap.Balls = make([]object.Ball, len(st.Balls))
	for i, b := range st.Balls {
		snap.Balls[i] = *b
	}
	snap.Blocks = make([]object.Block, 0, len(st.Blocks))
	for _, b := range st.Blocks {
		if !b.Removed {
			snap.Blocks = append(snap.Blocks, *b)
		}
	}
	snap.Projectiles = make([]object.Projectile, len(st.Projectiles))
	for i, p := range st.Projectiles {
		cp := *p
		cp.Trail = append([]object.TrailPoint(nil), p.Trail...)
		cp.Sparks = append([]object.Particle(nil), p.Sparks...)
		snap.Projectiles[i] = cp
	}
	snap.PowerUps = make([]object.PowerUp, len(st.PowerUps))
	for i, p := range st.PowerUps {
		snap.PowerUps[i] = *p
	}
	snap.Particles = make([]object.Particle, len(st.Particles))
	for i, p := range st.Particles {
		snap.Particles[i] = *p
	}
	for _, k := range s.timers.ActiveKinds() {
		snap.Effects = append(snap.Effects, ActiveEffect{Kind: k, Remaining: s.timers.Remaining(k)})
	}
	return snap
}
