package spectate

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tomz197/brickbreaker/internal/loop"
	"github.com/tomz197/brickbreaker/internal/loop/server"
)

type fixedSource struct{ snap *server.ServerSnapshot }

func (f *fixedSource) GetSnapshot() *server.ServerSnapshot { return f.snap }

type fakeConn struct {
	sent   [][]byte
	fail   bool
	closed bool
}

func (c *fakeConn) Send(b []byte) error {
	if c.fail {
		return errors.New("broken pipe")
	}
	c.sent = append(c.sent, b)
	return nil
}

func (c *fakeConn) Close() error { c.closed = true; return nil }

func leaderSnapshot(tick uint64) *server.ServerSnapshot {
	res := loop.StartLevel(loop.Options{Level: 2, Seed: 1}).State()
	res.Tick = tick
	res.Score = 40
	return &server.ServerSnapshot{
		Players: 2,
		Playing: 1,
		TopScores: []server.TopScoreEntry{
			{Username: "alice", Score: 900, Level: 4},
		},
		Leader: &server.ClientSnapshot{ClientID: 1, Username: "alice", Result: res},
	}
}

func decodeType(t *testing.T, b []byte) Envelope {
	t.Helper()
	env, err := DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	return env
}

func TestEncodeRejectsEmptyInput(t *testing.T) {
	if _, err := Encode("", Idle{}); err == nil {
		t.Fatalf("Encode with empty type succeeded")
	}
	if _, err := Encode(MsgIdle, nil); err == nil {
		t.Fatalf("Encode with nil payload succeeded")
	}
	if _, err := DecodeEnvelope(nil); err == nil {
		t.Fatalf("DecodeEnvelope(nil) succeeded")
	}
	if _, err := DecodePayload[Idle](Envelope{T: MsgIdle}); err == nil {
		t.Fatalf("DecodePayload with empty payload succeeded")
	}
}

func TestBuildFrameFromLeader(t *testing.T) {
	ss := leaderSnapshot(7)
	f, ok := BuildFrame(ss)
	if !ok {
		t.Fatalf("BuildFrame ok = false, want true")
	}
	if f.Player != "alice" || f.Tick != 7 || f.Score != 40 || f.Level != 2 {
		t.Fatalf("frame = %s/%d/%d/L%d, want alice/7/40/L2", f.Player, f.Tick, f.Score, f.Level)
	}
	if len(f.Blocks) != len(ss.Leader.Result.Snapshot.Blocks) || len(f.Blocks) == 0 {
		t.Fatalf("blocks = %d, want %d", len(f.Blocks), len(ss.Leader.Result.Snapshot.Blocks))
	}
	if len(f.Balls) != 1 || !strings.HasPrefix(f.Balls[0].Color, "#") || len(f.Balls[0].Color) != 7 {
		t.Fatalf("balls = %+v, want one ball with a hex color", f.Balls)
	}
	if len(f.Top) != 1 || f.Top[0].Score != 900 {
		t.Fatalf("top = %+v, want alice's 900", f.Top)
	}

	if _, ok := BuildFrame(&server.ServerSnapshot{}); ok {
		t.Fatalf("BuildFrame without leader ok = true")
	}
}

func TestFrameSurvivesEnvelope(t *testing.T) {
	f, _ := BuildFrame(leaderSnapshot(3))
	b, err := Encode(MsgState, f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	env := decodeType(t, b)
	if env.T != MsgState {
		t.Fatalf("type = %q, want %q", env.T, MsgState)
	}
	got, err := DecodePayload[Frame](env)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if got.Tick != 3 || len(got.Blocks) != len(f.Blocks) {
		t.Fatalf("decoded tick %d blocks %d, want 3 and %d", got.Tick, len(got.Blocks), len(f.Blocks))
	}
}

func TestJoinSendsCurrentState(t *testing.T) {
	h := NewHub(&fixedSource{snap: &server.ServerSnapshot{Players: 3}}, nil)
	c := &fakeConn{}
	reply := make(chan int, 1)
	h.handle(join{conn: c, reply: reply})

	if id := <-reply; id != 1 {
		t.Fatalf("id = %d, want 1", id)
	}
	if len(c.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(c.sent))
	}
	env := decodeType(t, c.sent[0])
	idle, err := DecodePayload[Idle](env)
	if env.T != MsgIdle || err != nil || idle.Players != 3 {
		t.Fatalf("got %q %+v (%v), want idle with 3 players", env.T, idle, err)
	}
}

func TestBroadcastOnlyOnChange(t *testing.T) {
	src := &fixedSource{snap: &server.ServerSnapshot{}}
	h := NewHub(src, nil)
	c := &fakeConn{}
	h.handle(join{conn: c})
	c.sent = nil

	h.broadcast()
	if len(c.sent) != 0 {
		t.Fatalf("idle broadcast repeated %d times, want 0", len(c.sent))
	}

	src.snap = leaderSnapshot(1)
	h.broadcast()
	h.broadcast()
	if len(c.sent) != 1 {
		t.Fatalf("sent %d frames for one tick, want 1", len(c.sent))
	}

	src.snap = leaderSnapshot(2)
	h.broadcast()
	src.snap = &server.ServerSnapshot{}
	h.broadcast()
	h.broadcast()
	if len(c.sent) != 3 {
		t.Fatalf("sent %d messages, want 3", len(c.sent))
	}
	if env := decodeType(t, c.sent[2]); env.T != MsgIdle {
		t.Fatalf("last message = %q, want idle", env.T)
	}
}

func TestFailedViewerIsDropped(t *testing.T) {
	src := &fixedSource{snap: leaderSnapshot(5)}
	h := NewHub(src, nil)
	good, bad := &fakeConn{}, &fakeConn{}
	h.handle(join{conn: good})
	h.handle(join{conn: bad})
	bad.fail = true

	h.broadcast()
	if h.Viewers() != 1 || !bad.closed {
		t.Fatalf("viewers = %d closed = %v, want 1 and the bad viewer closed", h.Viewers(), bad.closed)
	}
}

func TestViewerFailingFirstSendIsDropped(t *testing.T) {
	h := NewHub(&fixedSource{snap: leaderSnapshot(4)}, nil)
	c := &fakeConn{fail: true}
	h.handle(join{conn: c})
	if h.Viewers() != 0 || !c.closed {
		t.Fatalf("viewers = %d closed = %v, want 0 and the viewer closed", h.Viewers(), c.closed)
	}
}

func TestWebSocketViewer(t *testing.T) {
	h := NewHub(&fixedSource{snap: leaderSnapshot(9)}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	srv := httptest.NewServer(h)
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer ws.Close()
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))

	want := []string{MsgWelcome, MsgState}
	for _, typ := range want {
		_, b, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage: %v", err)
		}
		if env := decodeType(t, b); env.T != typ {
			t.Fatalf("message type = %q, want %q", env.T, typ)
		}
	}
}
