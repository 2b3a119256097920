package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Tuning holds the gameplay values that can be overridden from a TOML file.
// Everything else in this package is a compile-time constant.
type Tuning struct {
	InitialLives     int     `toml:"initial_lives"`
	BallBaseSpeed    float64 `toml:"ball_base_speed"`    // Launch speed in units per tick
	MinBallSpeed     float64 `toml:"min_ball_speed"`     // Speed floor applied after every bounce
	EffectTicks      int     `toml:"effect_ticks"`       // Duration of dropped power-up effects
	IceSlowTicks     int     `toml:"ice_slow_ticks"`     // Duration of the ice-block slow
	ComboWindowTicks int     `toml:"combo_window_ticks"` // Ticks allowed between breaks before the combo drops
	MaxParticles     int     `toml:"max_particles"`
	ShieldSavesBall  bool    `toml:"shield_saves_ball"` // Shield bounces one lost ball back into play
}

// DefaultTuning returns the built-in tuning values.
func DefaultTuning() Tuning {
	return Tuning{
		InitialLives:     InitialLives,
		BallBaseSpeed:    6,
		MinBallSpeed:     4,
		EffectTicks:      300,
		IceSlowTicks:     180,
		ComboWindowTicks: 180,
		MaxParticles:     2000,
		ShieldSavesBall:  true,
	}
}

// Normalize replaces non-positive values with their defaults and keeps the
// speed floor below the launch speed.
func (t Tuning) Normalize() Tuning {
	def := DefaultTuning()
	if t.InitialLives <= 0 {
		t.InitialLives = def.InitialLives
	}
	if t.BallBaseSpeed <= 0 {
		t.BallBaseSpeed = def.BallBaseSpeed
	}
	if t.MinBallSpeed <= 0 {
		t.MinBallSpeed = def.MinBallSpeed
	}
	if t.MinBallSpeed > t.BallBaseSpeed {
		t.MinBallSpeed = t.BallBaseSpeed
	}
	if t.EffectTicks <= 0 {
		t.EffectTicks = def.EffectTicks
	}
	if t.IceSlowTicks <= 0 {
		t.IceSlowTicks = def.IceSlowTicks
	}
	if t.ComboWindowTicks <= 0 {
		t.ComboWindowTicks = def.ComboWindowTicks
	}
	if t.MaxParticles <= 0 {
		t.MaxParticles = def.MaxParticles
	}
	return t
}

// LoadTuning reads a TOML tuning file on top of the defaults.
// Keys missing from the file keep their default values.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("decode tuning %s: %w", path, err)
	}
	return t.Normalize(), nil
}

// SaveTuning writes the tuning values to path as TOML.
func SaveTuning(path string, t Tuning) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create tuning %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(t); err != nil {
		return fmt.Errorf("encode tuning %s: %w", path, err)
	}
	return nil
}
