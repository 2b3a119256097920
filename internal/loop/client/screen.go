package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/brickbreaker/internal/draw"
	"github.com/tomz197/brickbreaker/internal/effect"
	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop"
	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/loop/server"
	"github.com/tomz197/brickbreaker/internal/object"
	"golang.org/x/image/colornames"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	var cs *server.ClientSnapshot
	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOutcome {
		cs = c.server.Snapshot(c.handle.ID)
	}
	if cs != nil && c.state.GameState == GameStatePlaying && !c.state.isInactive {
		c.drawArena(&cs.Result.Snapshot)
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	if cs != nil && c.state.GameState == GameStatePlaying && !c.state.isInactive {
		c.drawPowerUpLabels(cs.Result.Snapshot.PowerUps)
	}
	c.drawUI(cs)

	return c.chunkWriter.Flush()
}

// drawArena paints every entity of the snapshot onto the canvas.
func (c *Client) drawArena(snap *loop.Snapshot) {
	cv := c.canvas

	// Screen shake jitters everything horizontally.
	var ox float64
	if snap.Shake > 0 {
		ox = float64(snap.Shake%3-1) * 6
	}

	for i := range snap.Blocks {
		b := &snap.Blocks[i]
		clr := b.Color
		if b.Type != object.BlockBoss && b.MaxHP > 1 && b.MaxHP < 100 {
			clr = draw.Fade(clr, 0.4+0.6*float64(b.HP)/float64(b.MaxHP))
		}
		if b.Flash > 0 {
			clr = draw.Lighten(clr, b.Flash*0.6)
		}
		cv.FillRect(b.X+ox, b.Y, b.W-1, b.H-1, clr)
		if b.Type == object.BlockBoss && b.MaxHP > 0 {
			cv.FillRect(b.X+ox, b.Y-8, b.W*float64(b.HP)/float64(b.MaxHP), 4, colornames.Red)
		}
	}

	for i := range snap.PowerUps {
		p := &snap.PowerUps[i]
		cv.FillRect(p.X+ox, p.Y, p.W, p.H, object.PowerUpColor(p.Kind))
	}

	for i := range snap.Projectiles {
		p := &snap.Projectiles[i]
		for _, tp := range p.Trail {
			cv.SetFloat(tp.X+ox, tp.Y, draw.Fade(p.Color, tp.Life))
		}
		cv.FillRect(p.X+ox, p.Y, p.W, p.H, p.Color)
		for j := range p.Sparks {
			s := &p.Sparks[j]
			cv.SetFloat(s.X+ox, s.Y, draw.Fade(s.Color, s.Alpha()))
		}
	}

	for i := range snap.Particles {
		p := &snap.Particles[i]
		cv.FillRect(p.X+ox, p.Y, p.Size, p.Size, draw.Fade(p.Color, p.Alpha()))
	}

	if hasEffect(snap.Effects, effect.Shield) {
		cv.FillRect(0, snap.Arena.Height-4, snap.Arena.Width, 2, colornames.Mediumseagreen)
	}

	pd := &snap.Paddle
	if object.ShouldRenderBlink(c.state.blinkTime, config.PaddleBlinkFrequency) {
		cv.FillRect(pd.X+ox, pd.Y, pd.Width, pd.Height, draw.Lighten(pd.Skin.Color(), pd.HitFlash))
	}

	for i := range snap.Balls {
		b := &snap.Balls[i]
		cv.FillCircle(b.X+ox, b.Y, b.Radius, b.Skin.Color())
	}
}

func hasEffect(effects []loop.ActiveEffect, k effect.Kind) bool {
	for _, e := range effects {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// drawPowerUpLabels writes each pickup's letter over its box.
// Marks the drawn cells as dirty so the canvas overwrites them next frame.
func (c *Client) drawPowerUpLabels(powerUps []object.PowerUp) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	for _, p := range powerUps {
		col, row := c.canvas.LogicalToTerminal(p.X+p.W/2, p.Y+p.H/2)
		if col < 1 || col > termWidth || row < 1 || row > termHeight {
			continue
		}
		style := draw.Bg(object.PowerUpColor(p.Kind)) + "\033[30m" + draw.ColorBold
		c.chunkWriter.WriteStyledAt(col, row, style, string(object.PowerUpSymbol(p.Kind)))
		c.canvas.MarkTextDirty(col, row, 1)
	}
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(cs *server.ClientSnapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		if cs != nil {
			c.drawPlayingHUD(termWidth, termHeight, cs)
		}
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateOutcome:
		c.drawOutcomeScreen(centerX, centerY)
	}
}

// writeCentered writes s centered on centerX and marks it dirty.
func (c *Client) writeCentered(centerX, row int, s string) {
	col := centerX - len([]rune(s))/2
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, msg)
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

var titleArt = []string{
	`█▀▄ █▀█ █ █▀▀ █▄▀   █▀▄ █▀█ █▀▀ ▄▀█ █▄▀ █▀▀ █▀█`,
	`█▀▄ █▀▄ █ █   █ █   █▀▄ █▀▄ █▀▀ █▀█ █ █ █▀▀ █▀▄`,
	`▀▀  ▀ ▀ ▀ ▀▀▀ ▀ ▀   ▀▀  ▀ ▀ ▀▀▀ ▀ ▀ ▀ ▀ ▀▀▀ ▀ ▀`,
}

// drawStartScreen draws the title screen with level select and leaderboard.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleStartY := centerY - 10
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, line)
	}
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, "~ Brick breaking over SSH ~")

	lvl := c.state.SelectedLevel
	selector := fmt.Sprintf("<  Level %-2d  >", lvl)
	if level.IsBossLevel(lvl) {
		selector = fmt.Sprintf("<  Level %-2d BOSS  >", lvl)
	}
	selY := titleStartY + len(titleArt) + 3
	c.writeCentered(centerX, selY, selector)

	controlLines := []string{
		"W S / 1-9  . .  Pick level",
		"A D / < >  . . Move paddle",
		"SPACE  . . . Launch & fire",
		"F  . . . . . . . . .  Fire",
		"P  . . . . . . . .   Pause",
		"T  . . . Daily challenge",
		"Q  . . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, selY+2+i, line)
	}

	daily := level.Daily(c.now())
	dailyY := selY + 2 + len(controlLines) + 1
	c.writeCentered(centerX, dailyY, "Today: "+daily.Description)

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, dailyY+2, ">>  Press SPACE to Start  <<")
	}

	c.drawLeaderboard(centerX, dailyY+4)
}

// drawLeaderboard lists the best scores on this server.
func (c *Client) drawLeaderboard(centerX, row int) {
	snap := c.server.GetSnapshot()
	if snap == nil || len(snap.TopScores) == 0 {
		return
	}
	c.writeCentered(centerX, row, "Top scores")
	for i, e := range snap.TopScores {
		name := e.Username
		if len(name) > config.MaxUsernameLength {
			name = name[:config.MaxUsernameLength]
		}
		line := fmt.Sprintf("%d. %-*s %8d  L%-2d", i+1, config.MaxUsernameLength, name, e.Score, e.Level)
		c.writeCentered(centerX, row+1+i, line)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen (since we no longer clear every frame).
func (c *Client) drawPlayingHUD(termWidth, termHeight int, cs *server.ClientSnapshot) {
	cw := c.chunkWriter
	res := &cs.Result

	scoreText := fmt.Sprintf("Score: %-8d", res.Score)
	if res.Multiplier > 1 {
		scoreText = fmt.Sprintf("Score: %-8d x%d", res.Score, res.Multiplier)
	}
	scoreText = fmt.Sprintf("%-20s", scoreText)
	cw.WriteAt(2, 1, scoreText)
	c.canvas.MarkTextDirty(2, 1, len(scoreText))

	levelText := fmt.Sprintf("Level %d", res.Snapshot.Level)
	if c.state.Daily != nil {
		levelText = "Daily challenge"
	} else if res.Snapshot.Boss {
		levelText += " BOSS"
	}
	c.writeCentered(termWidth/2, 1, levelText)

	livesText := fmt.Sprintf("Lives: %-3d", res.Lives)
	cw.WriteAt(termWidth-len(livesText)-1, 1, livesText)
	c.canvas.MarkTextDirty(termWidth-len(livesText)-1, 1, len(livesText))

	// Active effects (bottom left)
	var parts []string
	for _, e := range res.Snapshot.Effects {
		parts = append(parts, fmt.Sprintf("%s %.0fs", strings.ToUpper(e.Kind.String()), float64(e.Remaining)/config.BaselineRate+0.5))
	}
	effectsText := fmt.Sprintf("%-60s", strings.Join(parts, "  "))
	if len(effectsText) > termWidth/2 {
		effectsText = effectsText[:termWidth/2]
	}
	cw.WriteAt(2, termHeight, effectsText)
	c.canvas.MarkTextDirty(2, termHeight, len(effectsText))

	// Live players (bottom right)
	if snap := c.server.GetSnapshot(); snap != nil {
		playersText := fmt.Sprintf("Players: %-4d", snap.Players)
		cw.WriteAt(termWidth-len(playersText)-1, termHeight, playersText)
		c.canvas.MarkTextDirty(termWidth-len(playersText)-1, termHeight, len(playersText))
	}

	if res.Snapshot.Paused {
		c.writeCentered(termWidth/2, termHeight/2, "PAUSED  -  press P to resume")
	} else if !res.Snapshot.Started {
		c.writeCentered(termWidth/2, termHeight/2+4, "Press SPACE to launch")
	}
}

// drawOutcomeScreen draws the level clear or game over screen.
func (c *Client) drawOutcomeScreen(centerX, centerY int) {
	o := c.state.Outcome
	if o == nil {
		return
	}
	row := centerY - 6
	if o.Result == loop.ResultWin {
		c.writeCentered(centerX, row, "L E V E L   C L E A R")
		stars := strings.Repeat("★ ", o.Stars) + strings.Repeat("☆ ", 3-o.Stars)
		c.writeCentered(centerX, row+2, strings.TrimSpace(stars))
	} else {
		c.writeCentered(centerX, row, "G A M E   O V E R")
	}

	lines := []string{
		fmt.Sprintf("Score: %d", o.Score),
		fmt.Sprintf("Blocks broken: %d", o.BlocksBroken),
		fmt.Sprintf("Best combo: %d", o.MaxCombo),
		fmt.Sprintf("Time: %s", o.Elapsed.Round(time.Second)),
	}
	if o.BossBonus > 0 {
		lines = append(lines, fmt.Sprintf("Boss bonus: %d", o.BossBonus))
	}
	if o.Reward > 0 {
		lines = append(lines, fmt.Sprintf("Reward: %d coins", o.Reward))
	}
	if d := c.state.Daily; d != nil {
		if c.state.DailyComplete {
			lines = append(lines, fmt.Sprintf("Daily challenge complete! +%d coins", d.Reward))
		} else {
			lines = append(lines, "Daily challenge not met: "+d.Description)
		}
	}
	for i, line := range lines {
		c.writeCentered(centerX, row+4+i, line)
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Retry  <<"
		if o.Result == loop.ResultWin && c.state.Daily == nil {
			prompt = ">>  Press SPACE for the next level  <<"
		}
		c.writeCentered(centerX, row+5+len(lines), prompt)
	}
	c.writeCentered(centerX, row+7+len(lines), "ESC for the title screen")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
