// Package loop is the simulation engine: one Session per level attempt,
// advanced by Tick with a variable frame delta.
package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/brickbreaker/internal/effect"
	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/object"
	"github.com/tomz197/brickbreaker/internal/physics"
)

// gridCellSize is the broad-phase cell size; comfortably larger than a ball.
const gridCellSize = 50.0

// Options configures a new session. The zero value plays level 1 with
// default skins and tuning.
type Options struct {
	Level            uint
	PaddleWidthLevel int // Shop upgrade, each step widens the paddle by 10%
	BallSpeedLevel   int // Shop upgrade, each step speeds up launches by 10%
	PaddleSkin       string
	BallSkin         string
	Seed             int64 // Session RNG seed; 0 derives one from the level
	Audio            AudioSink
	Tuning           config.Tuning
	Logger           *log.Logger
	Layout           *level.Layout // Overrides the generated layout (daily challenges)
}

// Session is one level attempt. It is not safe for concurrent use; a single
// goroutine owns it and calls Tick.
type Session struct {
	level           uint
	boss            bool
	speedMultiplier float64
	tuning          config.Tuning
	audio           AudioSink
	logger          *log.Logger
	arena           object.Arena
	seed            int64
	rng             *rand.Rand

	store  *object.Store
	timers effect.Timers
	combo  effect.Combo
	grid   *physics.SpatialGrid

	paddleWidthLevel int
	ballSpeedLevel   int
	paddleSkin       object.PaddleSkin
	ballSkin         object.BallSkin

	score   int
	lives   int
	tick    uint64
	elapsed time.Duration

	started      bool
	paused       bool
	fireIntent   bool
	fireCooldown time.Duration
	targetX      float64
	prevPaddleX  float64

	shake int     // Screen shake ticks left
	flash float64 // Screen flash amplitude

	blocksBroken      int
	powerUpsCollected int
	bossBonus         int

	events    []Event
	splashes  []splash
	exploding bool
	outcome   *Outcome
}

// StartLevel creates a session for opts.Level with a resting ball on the paddle.
func StartLevel(opts Options) *Session {
	tuning := opts.Tuning
	if tuning == (config.Tuning{}) {
		tuning = config.DefaultTuning()
	}
	tuning = tuning.Normalize()

	n := max(opts.Level, 1)
	var layout level.Layout
	if opts.Layout != nil {
		layout = *opts.Layout
		if layout.Level > 0 {
			n = layout.Level
		}
	} else {
		layout = level.Generate(n)
	}
	if layout.SpeedMultiplier <= 0 {
		layout.SpeedMultiplier = 1 + config.LevelSpeedStep*float64(n)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = level.Seed(n)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		level:            n,
		boss:             layout.Boss,
		speedMultiplier:  layout.SpeedMultiplier,
		tuning:           tuning,
		audio:            opts.Audio,
		logger:           logger,
		arena:            object.DefaultArena(),
		seed:             seed,
		rng:              rand.New(rand.NewSource(seed)),
		paddleWidthLevel: opts.PaddleWidthLevel,
		ballSpeedLevel:   max(opts.BallSpeedLevel, 0),
		paddleSkin:       object.ParsePaddleSkin(opts.PaddleSkin),
		ballSkin:         object.ParseBallSkin(opts.BallSkin),
		lives:            tuning.InitialLives,
	}
	s.store = object.NewStore(tuning.MaxParticles)
	s.grid = physics.NewSpatialGrid(s.arena.Width, s.arena.Height, gridCellSize)
	s.store.Paddle = object.NewPaddle(s.arena, s.paddleWidthLevel, s.paddleSkin)
	s.targetX = s.store.Paddle.X
	s.prevPaddleX = s.store.Paddle.X
	for i := range layout.Blocks {
		b := layout.Blocks[i]
		s.store.AddBlock(&b)
	}
	s.store.Balls = []*object.Ball{object.NewRestingBall(&s.store.Paddle, s.arena, s.ballSkin)}

	s.logger.Debug("level started", "level", n, "blocks", len(layout.Blocks), "boss", layout.Boss, "seed", seed)
	return s
}

// SetTargetPaddleX sets where the paddle's left edge should be. Out of range
// values are clamped on the next tick.
func (s *Session) SetTargetPaddleX(x float64) {
	s.targetX = x
}

// NudgePaddle moves the paddle target by dx units from the paddle's position.
func (s *Session) NudgePaddle(dx float64) {
	s.targetX = s.store.Paddle.X + dx
}

// SetFireIntent sets whether the guns should fire whenever their cooldown allows.
func (s *Session) SetFireIntent(fire bool) {
	s.fireIntent = fire
}

// LaunchBall sends the resting ball upward. It does nothing once a ball is in play.
func (s *Session) LaunchBall() {
	if s.started || s.outcome != nil {
		return
	}
	for _, b := range s.store.Balls {
		if b.Active {
			continue
		}
		b.Launch(s.launchSpeed(), (s.rng.Float64()-0.5)*config.BallLaunchSpread)
		b.EnforceMinSpeed(s.tuning.MinBallSpeed)
		s.started = true
		return
	}
}

// SetPaused freezes or resumes the simulation. Paused ticks return the
// current state unchanged.
func (s *Session) SetPaused(paused bool) {
	s.paused = paused
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }

// Started reports whether a ball is in play.
func (s *Session) Started() bool { return s.started }

// Level returns the level number being played.
func (s *Session) Level() uint { return s.level }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Finished reports whether the session has produced its outcome.
func (s *Session) Finished() bool { return s.outcome != nil }

// Outcome returns a copy of the terminal outcome, or nil while playing.
func (s *Session) Outcome() *Outcome {
	if s.outcome == nil {
		return nil
	}
	o := *s.outcome
	return &o
}

// Close returns pooled particles. The session must not be ticked afterwards.
func (s *Session) Close() {
	s.store.Release()
}

// launchSpeed is the initial ball speed for this level and upgrade.
func (s *Session) launchSpeed() float64 {
	return s.tuning.BallBaseSpeed * (1 + config.BallSpeedStep*float64(s.ballSpeedLevel)) * s.speedMultiplier
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// resetBall puts a fresh ball on the paddle after a life is lost.
func (s *Session) resetBall() {
	s.started = false
	s.fireIntent = false
	s.combo.Reset()
	s.timers.Clear()
	s.store.ClearProjectiles()
	s.store.Balls = []*object.Ball{object.NewRestingBall(&s.store.Paddle, s.arena, s.ballSkin)}
}
