package client

import (
	"testing"
	"time"

	"github.com/tomz197/brickbreaker/internal/input"
	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop"
	"github.com/tomz197/brickbreaker/internal/loop/server"
)

// fakeServer records what the client asks for.
type fakeServer struct {
	commands []server.Command
	started  []uint
	dailies  []level.Challenge
}

var _ server.GameServer = (*fakeServer)(nil)

func (f *fakeServer) RegisterClient(username string) *server.ClientHandle {
	return &server.ClientHandle{ID: 1, Username: username, EventsCh: make(chan server.ClientEvent, 16)}
}
func (f *fakeServer) UnregisterClient(int) {}
func (f *fakeServer) SendCommand(_ int, cmd server.Command) { f.commands = append(f.commands, cmd) }
func (f *fakeServer) StartLevel(_ int, n uint) { f.started = append(f.started, n) }
func (f *fakeServer) StartDaily(_ int, c level.Challenge) { f.dailies = append(f.dailies, c) }
func (f *fakeServer) Snapshot(int) *server.ClientSnapshot { return nil }
func (f *fakeServer) GetSnapshot() *server.ServerSnapshot { return &server.ServerSnapshot{} }

func newTestClient() (*Client, *fakeServer) {
	fs := &fakeServer{}
	c := &Client{
		server:      fs,
		handle:      fs.RegisterClient("tester"),
		state:       NewClientState(),
		inputStream: new(input.Stream),
		now:         func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	return c, fs
}

func noKeys() input.Input { return input.Input{Number: -1} }

func TestSendPlayInput(t *testing.T) {
	c, fs := newTestClient()

	in := noKeys()
	in.Left = true
	in.Space = true
	c.sendPlayInput(in)
	want := []server.Command{
		{Kind: server.CmdMove, Value: -1},
		{Kind: server.CmdLaunch},
		{Kind: server.CmdFire, Flag: true},
	}
	if len(fs.commands) != len(want) {
		t.Fatalf("commands = %+v, want %+v", fs.commands, want)
	}
	for i := range want {
		if fs.commands[i] != want[i] {
			t.Fatalf("commands[%d] = %+v, want %+v", i, fs.commands[i], want[i])
		}
	}

	// Fire is only sent on change.
	fs.commands = nil
	in = noKeys()
	in.Fire = true
	c.sendPlayInput(in)
	if len(fs.commands) != 0 {
		t.Fatalf("repeated fire intent sent %+v", fs.commands)
	}
	c.sendPlayInput(noKeys())
	if len(fs.commands) != 1 || fs.commands[0] != (server.Command{Kind: server.CmdFire}) {
		t.Fatalf("commands = %+v, want fire released", fs.commands)
	}

	// Both directions cancel out.
	fs.commands = nil
	in = noKeys()
	in.Left, in.Right = true, true
	c.sendPlayInput(in)
	if len(fs.commands) != 0 {
		t.Fatalf("opposing keys sent %+v", fs.commands)
	}
}

func TestPauseToggles(t *testing.T) {
	c, fs := newTestClient()
	in := noKeys()
	in.Pause = true
	c.sendPlayInput(in)
	c.sendPlayInput(in)
	if len(fs.commands) != 2 || !fs.commands[0].Flag || fs.commands[1].Flag {
		t.Fatalf("commands = %+v, want pause then resume", fs.commands)
	}
}

func TestStartScreenLevelSelect(t *testing.T) {
	c, fs := newTestClient()

	c.state.Input = noKeys()
	c.state.Input.Number = 4
	c.updateStartState()
	if c.state.SelectedLevel != 4 {
		t.Fatalf("SelectedLevel = %d, want 4", c.state.SelectedLevel)
	}

	c.state.Input = noKeys()
	c.state.Input.Up = true
	c.state.Input.Pressed = []byte("w")
	c.updateStartState()
	if c.state.SelectedLevel != 5 {
		t.Fatalf("SelectedLevel = %d, want 5", c.state.SelectedLevel)
	}

	// A held key with no new bytes does not step again.
	c.state.Input.Pressed = nil
	c.updateStartState()
	if c.state.SelectedLevel != 5 {
		t.Fatalf("SelectedLevel = %d, want 5", c.state.SelectedLevel)
	}

	c.state.Input = noKeys()
	c.state.Input.Space = true
	c.updateStartState()
	if len(fs.started) != 1 || fs.started[0] != 5 {
		t.Fatalf("started = %v, want [5]", fs.started)
	}
	if c.state.GameState != GameStatePlaying {
		t.Fatalf("GameState = %v, want playing", c.state.GameState)
	}
}

func TestDailyFromStartScreen(t *testing.T) {
	c, fs := newTestClient()
	c.state.Input = noKeys()
	c.state.Input.Daily = true
	c.updateStartState()

	if len(fs.dailies) != 1 {
		t.Fatalf("dailies = %d, want 1", len(fs.dailies))
	}
	want := level.Daily(c.now())
	if fs.dailies[0].Day != want.Day || fs.dailies[0].Level != want.Level {
		t.Fatalf("daily = day %d level %d, want day %d level %d", fs.dailies[0].Day, fs.dailies[0].Level, want.Day, want.Level)
	}
	if c.state.Daily == nil {
		t.Fatalf("client did not remember the daily challenge")
	}
}

func TestOutcomeAdvancesOrRetries(t *testing.T) {
	c, fs := newTestClient()
	c.state.SelectedLevel = 7
	c.enterPlaying()

	c.handleEvent(server.ClientEvent{Type: server.EventOutcome, Outcome: &loop.Outcome{Result: loop.ResultWin, Level: 7, Score: 120}})
	if c.state.GameState != GameStateOutcome || c.state.Score != 120 {
		t.Fatalf("GameState = %v, Score = %d, want outcome with 120", c.state.GameState, c.state.Score)
	}

	c.state.Input = noKeys()
	c.state.Input.Enter = true
	c.updateOutcomeState()
	if len(fs.started) != 1 || fs.started[0] != 8 {
		t.Fatalf("started = %v, want [8]", fs.started)
	}

	c.handleEvent(server.ClientEvent{Type: server.EventOutcome, Outcome: &loop.Outcome{Result: loop.ResultLoss, Level: 8}})
	c.updateOutcomeState()
	if len(fs.started) != 2 || fs.started[1] != 8 {
		t.Fatalf("started = %v, want a retry of 8", fs.started)
	}
}

func TestOutcomeIgnoredOutsidePlay(t *testing.T) {
	c, _ := newTestClient()
	c.handleEvent(server.ClientEvent{Type: server.EventOutcome, Outcome: &loop.Outcome{Result: loop.ResultWin}})
	if c.state.GameState != GameStateStart {
		t.Fatalf("GameState = %v, want start", c.state.GameState)
	}
}

func TestEscapeReturnsToTitle(t *testing.T) {
	c, _ := newTestClient()
	c.state.GameState = GameStateOutcome
	c.state.Input = noKeys()
	c.state.Input.Escape = true
	c.updateOutcomeState()
	if c.state.GameState != GameStateStart {
		t.Fatalf("GameState = %v, want start", c.state.GameState)
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(200, 40)
	if w != 160 || h != 40 || col != 20 || row != 0 {
		t.Fatalf("clampTermSize(200, 40) = %d, %d, %d, %d, want 160, 40, 20, 0", w, h, col, row)
	}
}
