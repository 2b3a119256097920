package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("BRICK_TEST_STR", "value")
	if got := GetEnv("BRICK_TEST_STR", "fallback"); got != "value" {
		t.Fatalf("GetEnv = %q, want %q", got, "value")
	}
	if got := GetEnv("BRICK_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv unset = %q, want %q", got, "fallback")
	}
}

func TestGetEnvIntAndBool(t *testing.T) {
	t.Setenv("BRICK_TEST_INT", "42")
	t.Setenv("BRICK_TEST_BAD_INT", "forty")
	t.Setenv("BRICK_TEST_BOOL", "true")

	if got := GetEnvInt("BRICK_TEST_INT", 1); got != 42 {
		t.Fatalf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("BRICK_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("GetEnvInt invalid = %d, want fallback 7", got)
	}
	if got := GetEnvBool("BRICK_TEST_BOOL", false); !got {
		t.Fatal("GetEnvBool = false, want true")
	}
	if got := GetEnvBool("BRICK_TEST_BOOL_UNSET", true); !got {
		t.Fatal("GetEnvBool unset = false, want fallback true")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("BRICK_DOTENV_KEY=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv("BRICK_DOTENV_KEY")
	t.Cleanup(func() { os.Unsetenv("BRICK_DOTENV_KEY") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("BRICK_DOTENV_KEY"); got != "from-file" {
		t.Fatalf("BRICK_DOTENV_KEY = %q, want %q", got, "from-file")
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}
}

func TestTuningFromEnv(t *testing.T) {
	t.Setenv("TUNING_FILE", "")
	if _, err := TuningFromEnv(); err != nil {
		t.Fatalf("TuningFromEnv without file: %v", err)
	}

	path := filepath.Join(t.TempDir(), "tuning.toml")
	if err := os.WriteFile(path, []byte("initial_lives = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TUNING_FILE", path)
	tuning, err := TuningFromEnv()
	if err != nil {
		t.Fatalf("TuningFromEnv: %v", err)
	}
	if tuning.InitialLives != 5 {
		t.Fatalf("InitialLives = %d, want 5", tuning.InitialLives)
	}

	t.Setenv("TUNING_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	if _, err := TuningFromEnv(); err == nil {
		t.Fatal("TuningFromEnv with a missing file returned nil error")
	}
}
