package window

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/brickbreaker/internal/effect"
	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop"
	"github.com/tomz197/brickbreaker/internal/loop/config"
)

func TestPaddleTargetCentersOnCursor(t *testing.T) {
	if got := paddleTarget(400, 100); got != 350 {
		t.Fatalf("paddleTarget(400, 100) = %v, want 350", got)
	}
}

func TestNextLevel(t *testing.T) {
	cases := []struct {
		name    string
		outcome *loop.Outcome
		current uint
		want    uint
	}{
		{"win advances", &loop.Outcome{Result: loop.ResultWin, Level: 4}, 4, 5},
		{"loss retries", &loop.Outcome{Result: loop.ResultLoss, Level: 4}, 4, 4},
		{"no outcome", nil, 2, 2},
		{"last level", &loop.Outcome{Result: loop.ResultWin, Level: config.MaxLevel}, config.MaxLevel, config.MaxLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := nextLevel(tc.outcome, tc.current); got != tc.want {
				t.Fatalf("nextLevel = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEffectsLine(t *testing.T) {
	got := effectsLine([]loop.ActiveEffect{
		{Kind: effect.Multiball},
		{Kind: effect.SlowMo, Remaining: 61},
	})
	if want := "MULTIBALL  SLOW-MO 2s"; got != want {
		t.Fatalf("effectsLine = %q, want %q", got, want)
	}
	if got := effectsLine(nil); got != "" {
		t.Fatalf("effectsLine(nil) = %q, want empty", got)
	}
}

func TestOutcomeLinesShowBossBonus(t *testing.T) {
	lines := outcomeLines(&loop.Outcome{Result: loop.ResultWin, Score: 10, BossBonus: 1000, Reward: 100})
	if len(lines) != 6 {
		t.Fatalf("lines = %q, want 6 lines", lines)
	}
	if lines[4] != "Boss bonus: 1000" {
		t.Fatalf("lines[4] = %q, want boss bonus", lines[4])
	}
	if got := outcomeLines(&loop.Outcome{Result: loop.ResultLoss}); len(got) != 4 {
		t.Fatalf("loss lines = %q, want 4", got)
	}
}

func fixedClock() func() time.Time {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestStartUsesDailyLayout(t *testing.T) {
	daily := level.Challenge{Type: level.ChallengeBlockCount, Level: 7}
	g := &Game{opts: Options{Daily: &daily}, logger: log.New(io.Discard), now: fixedClock()}
	g.start(1)
	if g.session.Level() != 7 {
		t.Fatalf("Level() = %d, want 7", g.session.Level())
	}
	if len(g.result.Snapshot.Blocks) != 0 {
		t.Fatalf("blocks = %d, want the empty daily layout", len(g.result.Snapshot.Blocks))
	}
}

func TestStartReplacesSession(t *testing.T) {
	g := &Game{logger: log.New(io.Discard), now: fixedClock()}
	g.start(3)
	first := g.session
	g.start(4)
	if g.session == first {
		t.Fatalf("start did not create a new session")
	}
	if g.result.Snapshot.Level != 4 || g.result.Tick != 0 {
		t.Fatalf("snapshot level %d tick %d, want level 4 tick 0", g.result.Snapshot.Level, g.result.Tick)
	}
}

func TestSaveAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.bin")
	g := &Game{opts: Options{SavePath: path}, logger: log.New(io.Discard), now: fixedClock()}
	g.start(6)
	g.session.LaunchBall()
	g.session.Tick(config.ServerTickTime)

	g.save()
	if g.status != "saved" {
		t.Fatalf("status = %q, want saved", g.status)
	}
	g.start(1)
	g.restore()
	if g.status != "restored" {
		t.Fatalf("status = %q, want restored", g.status)
	}
	if g.session.Level() != 6 || !g.session.Started() {
		t.Fatalf("restored level %d started %v, want level 6 in play", g.session.Level(), g.session.Started())
	}
}

func TestRestoreWithoutSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.bin")
	if _, err := loadSession(path, loop.Options{}); err == nil {
		t.Fatalf("loadSession(missing) error = nil, want error")
	}
}
