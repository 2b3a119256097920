package loop

import (
	"time"

	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop/config"
)

// ClampDelta bounds a frame delta to [0, MaxTickDelta] so a stall never
// advances the simulation by more than about two frames.
func ClampDelta(dt time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if dt > config.MaxTickDelta {
		return config.MaxTickDelta
	}
	return dt
}

// Tick advances the session by dt and reports everything observable.
// Once the session has an outcome, or while it is paused, Tick returns the
// current state without advancing.
func (s *Session) Tick(dt time.Duration) TickResult {
	s.events = nil
	if s.outcome != nil || s.paused {
		return s.result()
	}

	dt = ClampDelta(dt)
	scale := dt.Seconds() * config.BaselineRate
	s.tick++
	s.elapsed += dt

	// Cosmetic timers
	s.store.Paddle.DecayFlash()
	if s.shake > 0 {
		s.shake--
	}
	if s.flash > 0 {
		s.flash = max(0, s.flash-config.FlashDecay*scale)
	}

	s.timers.Decay()

	s.fireCooldown -= dt
	if s.started && s.fireIntent {
		s.fire()
	}

	s.collide(scale)
	s.emitEffects()
	s.store.FlushSpawned()

	s.checkTerminal()
	return s.result()
}

// State reports the current state without advancing. Events are empty.
func (s *Session) State() TickResult {
	s.events = nil
	return s.result()
}

// checkTerminal resolves level clear, life loss and game over.
func (s *Session) checkTerminal() {
	if s.cleared() {
		s.outcome = &Outcome{
			Result:            ResultWin,
			Level:             s.level,
			Score:             s.score,
			Lives:             s.lives,
			Stars:             Stars(s.lives),
			Elapsed:           s.elapsed,
			BlocksBroken:      s.blocksBroken,
			PowerUpsCollected: s.powerUpsCollected,
			MaxCombo:          s.combo.Max,
			BossBonus:         s.bossBonus,
			Reward:            config.WinReward,
		}
		s.play(CueLevelComplete)
		s.logger.Debug("level cleared", "level", s.level, "score", s.score, "lives", s.lives, "elapsed", s.elapsed)
		return
	}

	if !s.started || s.store.ActiveBalls() > 0 {
		return
	}
	s.lives--
	s.emit(Event{Kind: EventLifeLost, Value: s.lives})
	if s.lives > 0 {
		s.resetBall()
		return
	}
	s.lives = 0
	s.outcome = &Outcome{
		Result:            ResultLoss,
		Level:             s.level,
		Score:             s.score,
		Elapsed:           s.elapsed,
		BlocksBroken:      s.blocksBroken,
		PowerUpsCollected: s.powerUpsCollected,
		MaxCombo:          s.combo.Max,
	}
	s.play(CueGameOver)
	s.logger.Debug("game over", "level", s.level, "score", s.score)
}

// cleared reports whether the level is won. Boss levels only need the boss gone.
func (s *Session) cleared() bool {
	if s.boss {
		return s.store.Boss() == nil
	}
	return s.store.BreakableCount() == 0
}

func (s *Session) result() TickResult {
	return TickResult{
		Tick:       s.tick,
		Score:      s.score,
		Lives:      s.lives,
		Combo:      s.combo.Count,
		Multiplier: s.combo.Multiplier(),
		Events:     s.events,
		Snapshot:   s.snapshot(),
		Outcome:    s.Outcome(),
	}
}

// Elapsed returns simulated play time, excluding pauses.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Challenge summarizes a finished session for daily challenge judging.
func (s *Session) Challenge() level.ChallengeResult {
	return level.ChallengeResult{
		Won:               s.outcome != nil && s.outcome.Result == ResultWin,
		Elapsed:           s.elapsed,
		BlocksBroken:      s.blocksBroken,
		PowerUpsCollected: s.powerUpsCollected,
		MaxCombo:          s.combo.Max,
	}
}
