package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTuningKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	data := "initial_lives = 5\ncombo_window_ticks = 90\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	def := DefaultTuning()
	if got.InitialLives != 5 {
		t.Fatalf("InitialLives = %d, want 5", got.InitialLives)
	}
	if got.ComboWindowTicks != 90 {
		t.Fatalf("ComboWindowTicks = %d, want 90", got.ComboWindowTicks)
	}
	if got.EffectTicks != def.EffectTicks {
		t.Fatalf("EffectTicks = %d, want default %d", got.EffectTicks, def.EffectTicks)
	}
	if got.ShieldSavesBall != def.ShieldSavesBall {
		t.Fatalf("ShieldSavesBall = %v, want default %v", got.ShieldSavesBall, def.ShieldSavesBall)
	}
}

func TestSaveThenLoadTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	want := DefaultTuning()
	want.MinBallSpeed = 3.5
	want.MaxParticles = 500
	want.ShieldSavesBall = false

	if err := SaveTuning(path, want); err != nil {
		t.Fatalf("SaveTuning: %v", err)
	}
	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if got != want {
		t.Fatalf("LoadTuning = %+v, want %+v", got, want)
	}
}

func TestLoadTuningErrors(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("initial_lives = \"three\""), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Fatal("expected error for mistyped value")
	}
}

func TestNormalize(t *testing.T) {
	got := Tuning{BallBaseSpeed: 3, MinBallSpeed: 5}.Normalize()
	if got.MinBallSpeed != 3 {
		t.Fatalf("MinBallSpeed = %v, want it clamped to launch speed 3", got.MinBallSpeed)
	}
	if got.InitialLives != InitialLives {
		t.Fatalf("InitialLives = %d, want %d", got.InitialLives, InitialLives)
	}
}
