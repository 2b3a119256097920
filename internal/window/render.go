package window

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tomz197/brickbreaker/internal/draw"
	"github.com/tomz197/brickbreaker/internal/effect"
	"github.com/tomz197/brickbreaker/internal/loop"
	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/object"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	background = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	hudColor   = colornames.Whitesmoke
	dimColor   = colornames.Gray
)

// Font metrics of basicfont.Face7x13
const (
	glyphWidth  = 7
	lineHeight  = 16
	hudBaseline = 18
)

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := &g.result.Snapshot

	if snap.Flash > 0 {
		vector.DrawFilledRect(screen, 0, 0, config.ArenaWidth, config.ArenaHeight, draw.Fade(colornames.White, snap.Flash*0.3), false)
	}

	g.drawArena(screen, snap)
	g.drawHUD(screen)

	switch {
	case g.result.Outcome != nil:
		drawOutcome(screen, g.result.Outcome, g.opts.Daily != nil)
	case snap.Paused:
		drawCentered(screen, "PAUSED - press P to resume", config.ArenaHeight/2, hudColor)
	case !snap.Started:
		drawCentered(screen, "Click to launch", config.ArenaHeight/2+60, hudColor)
	}
}

func (g *Game) drawArena(screen *ebiten.Image, snap *loop.Snapshot) {
	var ox float32
	if snap.Shake > 0 {
		ox = float32(snap.Shake%3-1) * 6
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
		fillRect(screen, b.X, b.Y, b.W-2, b.H-2, ox, clr)
		if b.Type == object.BlockBoss && b.MaxHP > 0 {
			fillRect(screen, b.X, b.Y-10, b.W*float64(b.HP)/float64(b.MaxHP), 6, ox, colornames.Red)
		}
	}

	for i := range snap.PowerUps {
		p := &snap.PowerUps[i]
		fillRect(screen, p.X, p.Y, p.W, p.H, ox, object.PowerUpColor(p.Kind))
		text.Draw(screen, string(object.PowerUpSymbol(p.Kind)), basicfont.Face7x13,
			int(float32(p.X+p.W/2)+ox)-glyphWidth/2, int(p.Y+p.H/2)+5, colornames.Black)
	}

	for i := range snap.Projectiles {
		p := &snap.Projectiles[i]
		for _, tp := range p.Trail {
			fillRect(screen, tp.X-p.W/2, tp.Y, p.W, 2, ox, draw.Fade(p.Color, tp.Life))
		}
		fillRect(screen, p.X, p.Y, p.W, p.H, ox, p.Color)
		for j := range p.Sparks {
			s := &p.Sparks[j]
			fillRect(screen, s.X, s.Y, s.Size, s.Size, ox, draw.Fade(s.Color, s.Alpha()))
		}
	}

	for i := range snap.Particles {
		p := &snap.Particles[i]
		fillRect(screen, p.X, p.Y, p.Size, p.Size, ox, draw.Fade(p.Color, p.Alpha()))
	}

	if hasEffect(snap.Effects, effect.Shield) {
		fillRect(screen, 0, snap.Arena.Height-4, snap.Arena.Width, 3, 0, colornames.Mediumseagreen)
	}

	pd := &snap.Paddle
	if object.ShouldRenderBlink(g.blinkTime, config.PaddleBlinkFrequency) {
		fillRect(screen, pd.X, pd.Y, pd.Width, pd.Height, ox, draw.Lighten(pd.Skin.Color(), pd.HitFlash))
	}

	for i := range snap.Balls {
		b := &snap.Balls[i]
		vector.DrawFilledCircle(screen, float32(b.X)+ox, float32(b.Y), float32(b.Radius), b.Skin.Color(), true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	res := &g.result
	score := fmt.Sprintf("Score: %d", res.Score)
	if res.Multiplier > 1 {
		score += fmt.Sprintf("  x%d", res.Multiplier)
	}
	text.Draw(screen, score, basicfont.Face7x13, 10, hudBaseline, hudColor)

	title := fmt.Sprintf("Level %d", res.Snapshot.Level)
	if g.opts.Daily != nil {
		title = "Daily: " + g.opts.Daily.Description
	} else if res.Snapshot.Boss {
		title += " BOSS"
	}
	drawCentered(screen, title, hudBaseline, hudColor)

	lives := fmt.Sprintf("Lives: %d", res.Lives)
	text.Draw(screen, lives, basicfont.Face7x13, config.ArenaWidth-10-len(lives)*glyphWidth, hudBaseline, hudColor)

	if fx := effectsLine(res.Snapshot.Effects); fx != "" {
		text.Draw(screen, fx, basicfont.Face7x13, 10, config.ArenaHeight-8, dimColor)
	}
	if g.statusTTL > 0 {
		text.Draw(screen, g.status, basicfont.Face7x13, config.ArenaWidth-10-len(g.status)*glyphWidth, config.ArenaHeight-8, hudColor)
	}
}

func drawOutcome(screen *ebiten.Image, o *loop.Outcome, daily bool) {
	vector.DrawFilledRect(screen, 0, 0, config.ArenaWidth, config.ArenaHeight, color.RGBA{A: 0xb0}, false)

	y := config.ArenaHeight/2 - 80
	if o.Result == loop.ResultWin {
		drawCentered(screen, "LEVEL CLEAR", y, colornames.Gold)
		drawCentered(screen, strings.Repeat("* ", o.Stars)+strings.Repeat(". ", 3-o.Stars), y+lineHeight, colornames.Gold)
	} else {
		drawCentered(screen, "GAME OVER", y, colornames.Tomato)
	}

	y += lineHeight * 3
	for _, line := range outcomeLines(o) {
		drawCentered(screen, line, y, hudColor)
		y += lineHeight
	}

	y += lineHeight
	switch {
	case daily:
		drawCentered(screen, "R or click: try again   Esc: quit", y, dimColor)
	case o.Result == loop.ResultWin:
		drawCentered(screen, "N or click: next level   R: replay   Esc: quit", y, dimColor)
	default:
		drawCentered(screen, "R or click: retry   Esc: quit", y, dimColor)
	}
}

// outcomeLines lists the stats shown on the outcome overlay.
func outcomeLines(o *loop.Outcome) []string {
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
	return lines
}

// effectsLine renders the active effects with whole seconds left.
func effectsLine(effects []loop.ActiveEffect) string {
	parts := make([]string, 0, len(effects))
	for _, e := range effects {
		if !e.Kind.Timed() {
			parts = append(parts, strings.ToUpper(e.Kind.String()))
			continue
		}
		secs := (e.Remaining + config.BaselineRate - 1) / config.BaselineRate
		parts = append(parts, fmt.Sprintf("%s %ds", strings.ToUpper(e.Kind.String()), secs))
	}
	return strings.Join(parts, "  ")
}

func hasEffect(effects []loop.ActiveEffect, k effect.Kind) bool {
	for _, e := range effects {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func fillRect(screen *ebiten.Image, x, y, w, h float64, ox float32, clr color.RGBA) {
	if w <= 0 || h <= 0 || clr.A == 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(x)+ox, float32(y), float32(w), float32(h), clr, false)
}

func drawCentered(screen *ebiten.Image, s string, y int, clr color.Color) {
	x := (config.ArenaWidth - len(s)*glyphWidth) / 2
	text.Draw(screen, s, basicfont.Face7x13, x, y, clr)
}
