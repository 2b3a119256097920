package loop

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/brickbreaker/internal/effect"
	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/object"
	"github.com/tomz197/brickbreaker/internal/physics"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrEmptySave is returned when restoring from no data.
	ErrEmptySave = errors.New("empty save data")
	// ErrVersion is returned when the save was written by an incompatible format.
	ErrVersion = errors.New("unsupported save version")
)

// savedSession is the persisted form of a Session. Entities are stored by value.
type savedSession struct {
	Version          int
	Level            uint
	Boss             bool
	SpeedMultiplier  float64
	Seed             int64
	Tick             uint64
	Tuning           config.Tuning
	PaddleWidthLevel int
	BallSpeedLevel   int
	PaddleSkin       object.PaddleSkin
	BallSkin         object.BallSkin

	Score        int
	Lives        int
	Elapsed      time.Duration
	Started      bool
	FireCooldown time.Duration
	TargetX      float64
	Shake        int
	Flash        float64

	BlocksBroken      int
	PowerUpsCollected int
	BossBonus         int

	Timers effect.Timers
	Combo  effect.Combo

	Paddle      object.Paddle
	Balls       []object.Ball
	Blocks      []object.Block
	Projectiles []object.Projectile
	PowerUps    []object.PowerUp
	Particles   []object.Particle
	Outcome     *Outcome
}

// Save serializes the session so it can be resumed later with Restore.
// The pause flag is not saved; a restored session starts unpaused.
func (s *Session) Save() ([]byte, error) {
	st := s.store
	state := savedSession{
		Version:           config.SaveFormatVer,
		Level:             s.level,
		Boss:              s.boss,
		SpeedMultiplier:   s.speedMultiplier,
		Seed:              s.seed,
		Tick:              s.tick,
		Tuning:            s.tuning,
		PaddleWidthLevel:  s.paddleWidthLevel,
		BallSpeedLevel:    s.ballSpeedLevel,
		PaddleSkin:        s.paddleSkin,
		BallSkin:          s.ballSkin,
		Score:             s.score,
		Lives:             s.lives,
		Elapsed:           s.elapsed,
		Started:           s.started,
		FireCooldown:      s.fireCooldown,
		TargetX:           s.targetX,
		Shake:             s.shake,
		Flash:             s.flash,
		BlocksBroken:      s.blocksBroken,
		PowerUpsCollected: s.powerUpsCollected,
		BossBonus:         s.bossBonus,
		Timers:            s.timers,
		Combo:             s.combo,
		Paddle:            st.Paddle,
		Outcome:           s.outcome,
	}
	for _, b := range st.Balls {
		state.Balls = append(state.Balls, *b)
	}
	for _, b := range st.Blocks {
		if !b.Removed {
			state.Blocks = append(state.Blocks, *b)
		}
	}
	for _, p := range st.Projectiles {
		state.Projectiles = append(state.Projectiles, *p)
	}
	for _, p := range st.PowerUps {
		state.PowerUps = append(state.PowerUps, *p)
	}
	for _, p := range st.Particles {
		state.Particles = append(state.Particles, *p)
	}

	data, err := msgpack.Marshal(&state)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// Restore rebuilds a session from Save output. Only the collaborators in opts
// (Audio, Logger) are used; everything else comes from the save.
func Restore(data []byte, opts Options) (*Session, error) {
	if len(data) == 0 {
		return nil, ErrEmptySave
	}
	var state savedSession
	if err := msgpack.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if state.Version != config.SaveFormatVer {
		return nil, fmt.Errorf("%w: %d", ErrVersion, state.Version)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tuning := state.Tuning.Normalize()
	arena := object.DefaultArena()

	s := &Session{
		level:             max(state.Level, 1),
		boss:              state.Boss,
		speedMultiplier:   state.SpeedMultiplier,
		tuning:            tuning,
		audio:             opts.Audio,
		logger:            logger,
		arena:             arena,
		seed:              state.Seed,
		rng:               rand.New(rand.NewSource(state.Seed + int64(state.Tick))),
		grid:              physics.NewSpatialGrid(arena.Width, arena.Height, gridCellSize),
		paddleWidthLevel:  state.PaddleWidthLevel,
		ballSpeedLevel:    state.BallSpeedLevel,
		paddleSkin:        state.PaddleSkin,
		ballSkin:          state.BallSkin,
		score:             state.Score,
		lives:             state.Lives,
		tick:              state.Tick,
		elapsed:           state.Elapsed,
		started:           state.Started,
		fireCooldown:      state.FireCooldown,
		targetX:           state.TargetX,
		prevPaddleX:       state.Paddle.X,
		shake:             state.Shake,
		flash:             state.Flash,
		blocksBroken:      state.BlocksBroken,
		powerUpsCollected: state.PowerUpsCollected,
		bossBonus:         state.BossBonus,
		timers:            state.Timers,
		combo:             state.Combo,
		outcome:           state.Outcome,
	}
	if s.speedMultiplier <= 0 {
		s.speedMultiplier = 1
	}

	st := object.NewStore(tuning.MaxParticles)
	st.Paddle = state.Paddle
	for i := range state.Balls {
		b := state.Balls[i]
		st.Balls = append(st.Balls, &b)
	}
	for i := range state.Blocks {
		b := state.Blocks[i]
		st.AddBlock(&b)
	}
	for i := range state.Projectiles {
		p := state.Projectiles[i]
		st.Projectiles = append(st.Projectiles, &p)
	}
	for i := range state.PowerUps {
		p := state.PowerUps[i]
		st.PowerUps = append(st.PowerUps, &p)
	}
	for _, p := range state.Particles {
		st.Particles = append(st.Particles, object.NewParticle(p.X, p.Y, p.VX, p.VY, p.MaxLife, p.Size, p.Color))
		st.Particles[len(st.Particles)-1].Life = p.Life
	}
	s.store = st

	logger.Debug("session restored", "level", s.level, "tick", s.tick, "blocks", len(st.Blocks))
	return s, nil
}
