package config

import (
	loopconfig "github.com/tomz197/brickbreaker/internal/loop/config"
)

// TuningFromEnv loads the tuning file named by TUNING_FILE.
// Without the variable the built-in defaults are returned. On a bad file the
// defaults are returned together with the error.
func TuningFromEnv() (loopconfig.Tuning, error) {
	path := GetEnv("TUNING_FILE", "")
	if path == "" {
		return loopconfig.DefaultTuning(), nil
	}
	return loopconfig.LoadTuning(path)
}
