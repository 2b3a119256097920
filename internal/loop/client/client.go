// Package client renders one player's breakout session to a terminal and
// forwards their keys to the server.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/brickbreaker/internal/draw"
	"github.com/tomz197/brickbreaker/internal/input"
	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop"
	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	now          func() time.Time
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	handle := gs.RegisterClient(opts.Username)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ArenaWidth, config.ArenaHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		now:          time.Now,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateOutcome:
			c.updateOutcomeState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input, tracks inactivity and forwards play commands.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	if c.state.GameState == GameStatePlaying {
		c.sendPlayInput(c.state.Input)
	}
}

// sendPlayInput maps one frame of keys onto session commands. Held state
// (fire, pause) is only sent when it changes.
func (c *Client) sendPlayInput(in input.Input) {
	id := c.handle.ID
	switch {
	case in.Left && !in.Right:
		c.server.SendCommand(id, server.Command{Kind: server.CmdMove, Value: -1})
	case in.Right && !in.Left:
		c.server.SendCommand(id, server.Command{Kind: server.CmdMove, Value: 1})
	}

	if in.Space {
		c.server.SendCommand(id, server.Command{Kind: server.CmdLaunch})
	}
	if fire := in.Space || in.Fire; fire != c.state.fireHeld {
		c.state.fireHeld = fire
		c.server.SendCommand(id, server.Command{Kind: server.CmdFire, Flag: fire})
	}
	if in.Pause {
		c.state.paused = !c.state.paused
		c.server.SendCommand(id, server.Command{Kind: server.CmdPause, Flag: c.state.paused})
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			c.handleEvent(event)
		default:
			return
		}
	}
}

func (c *Client) handleEvent(event server.ClientEvent) {
	switch event.Type {
	case server.EventScore:
		c.state.Score += event.ScoreAdd
	case server.EventOutcome:
		if c.state.GameState != GameStatePlaying {
			return
		}
		c.state.Outcome = event.Outcome
		c.state.Score = event.Outcome.Score
		c.state.DailyComplete = event.Daily && event.Complete
		c.state.GameState = GameStateOutcome
	case server.EventServerShutdown:
		c.state.GameState = GameStateShutdown
		c.state.shutdownTimer = config.ShutdownDisplaySeconds
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles level selection on the title screen.
func (c *Client) updateStartState() {
	in := c.state.Input
	fresh := len(in.Pressed) > 0 // Step once per key repeat, not per held frame
	switch {
	case in.Number >= 1:
		c.state.SelectedLevel = uint(in.Number)
	case in.Up && fresh:
		c.state.SelectedLevel = min(c.state.SelectedLevel+1, config.MaxLevel)
	case in.Down && fresh && c.state.SelectedLevel > 1:
		c.state.SelectedLevel--
	}

	if in.Daily {
		daily := level.Daily(c.now())
		c.startDaily(daily)
		return
	}
	if in.Space || in.Enter {
		c.startLevel(c.state.SelectedLevel)
	}
}

// updatePlayingState tracks lost lives for the paddle blink.
func (c *Client) updatePlayingState() {
	if c.state.blinkTime > 0 {
		c.state.blinkTime = max(0, c.state.blinkTime-c.state.delta.Seconds())
	}
	snap := c.server.Snapshot(c.handle.ID)
	if snap == nil {
		return
	}
	if c.state.lastLives > 0 && snap.Result.Lives < c.state.lastLives {
		c.state.blinkTime = config.LifeLostBlinkSeconds
	}
	c.state.lastLives = snap.Result.Lives
}

// updateOutcomeState offers the next level after a win and a retry after a loss.
func (c *Client) updateOutcomeState() {
	in := c.state.Input
	if in.Escape {
		c.state.GameState = GameStateStart
		c.state.Daily = nil
		return
	}
	if !in.Space && !in.Enter {
		return
	}
	if c.state.Daily != nil {
		c.startDaily(*c.state.Daily)
		return
	}
	n := c.state.SelectedLevel
	if o := c.state.Outcome; o != nil && o.Result == loop.ResultWin {
		n = min(o.Level+1, config.MaxLevel)
	}
	c.startLevel(n)
}

func (c *Client) startLevel(n uint) {
	input.ResetKeyInput(c.inputStream)
	c.state.SelectedLevel = n
	c.state.Daily = nil
	c.server.StartLevel(c.handle.ID, n)
	c.enterPlaying()
}

func (c *Client) startDaily(daily level.Challenge) {
	input.ResetKeyInput(c.inputStream)
	c.state.Daily = &daily
	c.server.StartDaily(c.handle.ID, daily)
	c.enterPlaying()
}

func (c *Client) enterPlaying() {
	c.state.Score = 0
	c.state.Outcome = nil
	c.state.DailyComplete = false
	c.state.fireHeld = false
	c.state.paused = false
	c.state.blinkTime = 0
	c.state.lastLives = 0
	c.state.GameState = GameStatePlaying
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
