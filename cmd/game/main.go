package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/tomz197/brickbreaker/internal/audio"
	"github.com/tomz197/brickbreaker/internal/config"
	"github.com/tomz197/brickbreaker/internal/loop"
	"github.com/tomz197/brickbreaker/internal/loop/client"
	"github.com/tomz197/brickbreaker/internal/loop/server"
	"golang.org/x/term"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	// The terminal belongs to the game, so logs only go to a file when asked.
	logger := config.DiscardLogger()
	if path := config.GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = config.NewLoggerTo(f, "game")
	}

	tuning, err := config.TuningFromEnv()
	if err != nil {
		logger.Warn("using default tuning", "err", err)
	}

	var sink loop.AudioSink
	if config.GetEnvBool("SOUND", true) {
		player := audio.NewPlayer(logger)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			sink = player
		}
	}

	gs := server.NewServer(server.Options{
		Tuning:  tuning,
		Loadout: loadoutFromEnv(),
		Logger:  logger,
		Audio: func(int) loop.AudioSink {
			return sink
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gs.Run(ctx)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(gs, reader, os.Stdout, client.ClientOptions{Username: username(logger)})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// loadoutFromEnv reads the equipped cosmetics and upgrades.
func loadoutFromEnv() server.Loadout {
	return server.Loadout{
		PaddleSkin:       config.GetEnv("PADDLE_SKIN", ""),
		BallSkin:         config.GetEnv("BALL_SKIN", ""),
		PaddleWidthLevel: config.GetEnvInt("PADDLE_WIDTH_LEVEL", 0),
		BallSpeedLevel:   config.GetEnvInt("BALL_SPEED_LEVEL", 0),
	}
}

func username(logger *log.Logger) string {
	if name := config.GetEnv("PLAYER_NAME", ""); name != "" {
		return name
	}
	u, err := user.Current()
	if err != nil {
		logger.Debug("no current user", "err", err)
		return "player"
	}
	return u.Username
}
