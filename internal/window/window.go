// Package window runs a breakout session in a desktop window with ebiten.
// The mouse steers the paddle and clicks launch and fire.
package window

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop"
	"github.com/tomz197/brickbreaker/internal/loop/config"
)

// Options configures the window game.
type Options struct {
	Session  loop.Options     // Template for every session; Level and Layout are overwritten
	Daily    *level.Challenge // Play this challenge instead of numbered levels
	SavePath string           // F5 writes and F9 reads the session here; empty disables saves
	Logger   *log.Logger
}

// Game implements ebiten.Game around one session at a time.
type Game struct {
	opts    Options
	logger  *log.Logger
	session *loop.Session
	result  loop.TickResult
	now     func() time.Time
	last    time.Time

	cursorX   int
	blinkTime float64 // Paddle blink after a lost life
	status    string  // Transient message, e.g. save confirmation
	statusTTL float64
	best      int
}

// New creates the game and starts the first session.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		opts:    opts,
		logger:  logger,
		now:     time.Now,
		cursorX: -1,
	}
	g.start(max(opts.Session.Level, 1))
	return g
}

// start replaces the current session with a fresh attempt at level n.
func (g *Game) start(n uint) {
	if g.session != nil {
		g.session.Close()
	}
	so := g.opts.Session
	so.Level = n
	so.Layout = nil
	so.Logger = g.logger
	if so.Seed == 0 {
		so.Seed = g.now().UnixNano()
	}
	if g.opts.Daily != nil {
		so.Level = g.opts.Daily.Level
		so.Layout = &g.opts.Daily.Layout
	}
	g.session = loop.StartLevel(so)
	g.result = g.session.State()
	g.last = g.now()
	g.blinkTime = 0
	g.logger.Info("level started", "level", g.session.Level(), "daily", g.opts.Daily != nil)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	now := g.now()
	dt := now.Sub(g.last)
	g.last = now
	g.blinkTime = max(0, g.blinkTime-dt.Seconds())
	g.statusTTL = max(0, g.statusTTL-dt.Seconds())

	if g.session.Finished() {
		g.updateFinished()
		return nil
	}

	g.handleInput()
	g.result = g.session.Tick(dt)
	for _, ev := range g.result.Events {
		if ev.Kind == loop.EventLifeLost {
			g.blinkTime = config.LifeLostBlinkSeconds
		}
	}
	if o := g.result.Outcome; o != nil {
		g.best = max(g.best, o.Score)
		g.logger.Info("level finished", "level", o.Level, "result", o.Result, "score", o.Score, "stars", o.Stars)
	}
	return nil
}

// handleInput forwards mouse and keyboard intent to the session.
func (g *Game) handleInput() {
	s := g.session

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.SetPaused(!s.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.restore()
		s = g.session
	}

	// The cursor only takes over when it moves, so arrow keys keep working.
	x, _ := ebiten.CursorPosition()
	if x != g.cursorX {
		g.cursorX = x
		s.SetTargetPaddleX(paddleTarget(x, g.result.Snapshot.Paddle.Width))
	}
	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	switch {
	case left && !right:
		s.NudgePaddle(-config.PaddleKeySpeed)
	case right && !left:
		s.NudgePaddle(config.PaddleKeySpeed)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.LaunchBall()
	}
	s.SetFireIntent(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace))
}

// updateFinished waits for a restart or continue after the outcome.
func (g *Game) updateFinished() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.start(g.session.Level())
	case inpututil.IsKeyJustPressed(ebiten.KeyN),
		inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.start(nextLevel(g.session.Outcome(), g.session.Level()))
	}
}

func (g *Game) save() {
	if g.opts.SavePath == "" {
		return
	}
	data, err := g.session.Save()
	if err == nil {
		err = os.WriteFile(g.opts.SavePath, data, 0o644)
	}
	if err != nil {
		g.logger.Error("save failed", "path", g.opts.SavePath, "err", err)
		g.setStatus("save failed")
		return
	}
	g.logger.Info("session saved", "path", g.opts.SavePath, "bytes", len(data))
	g.setStatus("saved")
}

func (g *Game) restore() {
	if g.opts.SavePath == "" {
		return
	}
	s, err := loadSession(g.opts.SavePath, loop.Options{Audio: g.opts.Session.Audio, Logger: g.logger})
	if err != nil {
		g.logger.Error("restore failed", "path", g.opts.SavePath, "err", err)
		g.setStatus("nothing to restore")
		return
	}
	g.session.Close()
	g.session = s
	g.result = s.State()
	g.setStatus("restored")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTTL = 2
}

// loadSession reads a saved session from path.
func loadSession(path string, opts loop.Options) (*loop.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no save at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read save: %w", err)
	}
	return loop.Restore(data, opts)
}

// Layout implements ebiten.Game. The screen is always the logical arena.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ArenaWidth, config.ArenaHeight
}

// paddleTarget centers the paddle under the cursor.
func paddleTarget(cursorX int, paddleWidth float64) float64 {
	return float64(cursorX) - paddleWidth/2
}

// nextLevel is the level to play after o: the next one after a win,
// the same one otherwise.
func nextLevel(o *loop.Outcome, current uint) uint {
	if o != nil && o.Result == loop.ResultWin {
		return min(o.Level+1, config.MaxLevel)
	}
	return current
}
