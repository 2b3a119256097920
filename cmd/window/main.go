package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/brickbreaker/internal/audio"
	"github.com/tomz197/brickbreaker/internal/config"
	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop"
	loopconfig "github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/window"
)

func main() {
	logger := config.NewLogger("window")
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("failed to load .env", "err", err)
	}

	startLevel := flag.Uint("level", 1, "level to start at")
	daily := flag.Bool("daily", false, "play today's daily challenge")
	savePath := flag.String("save", config.GetEnv("SAVE_FILE", "brickbreaker.save"), "session save file (F5 save, F9 restore)")
	mute := flag.Bool("mute", !config.GetEnvBool("SOUND", true), "disable sound")
	flag.Parse()

	tuning, err := config.TuningFromEnv()
	if err != nil {
		logger.Warn("using default tuning", "err", err)
	}

	opts := window.Options{
		Session: loop.Options{
			Level:            min(*startLevel, loopconfig.MaxLevel),
			PaddleSkin:       config.GetEnv("PADDLE_SKIN", ""),
			BallSkin:         config.GetEnv("BALL_SKIN", ""),
			PaddleWidthLevel: config.GetEnvInt("PADDLE_WIDTH_LEVEL", 0),
			BallSpeedLevel:   config.GetEnvInt("BALL_SPEED_LEVEL", 0),
			Tuning:           tuning,
		},
		SavePath: *savePath,
		Logger:   logger,
	}
	if *daily {
		c := level.Daily(time.Now())
		opts.Daily = &c
		logger.Info("daily challenge", "day", c.Day, "type", c.Type, "level", c.Level)
	}

	if !*mute {
		player := audio.NewPlayer(logger)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts.Session.Audio = player
		}
	}

	ebiten.SetWindowSize(loopconfig.ArenaWidth, loopconfig.ArenaHeight)
	ebiten.SetWindowTitle("Brick Breaker")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(window.New(opts)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
