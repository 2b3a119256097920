package input

import (
	"testing"
	"time"
)

func TestParseArrowKeys(t *testing.T) {
	var st keyState
	now := time.Now()
	in := parse(&st, []byte("\x1b[D\x1b[A"), now)
	if !in.Left || !in.Up {
		t.Fatalf("Left = %v, Up = %v, want both held", in.Left, in.Up)
	}
	if in.Right || in.Escape {
		t.Fatalf("Right = %v, Escape = %v, want neither", in.Right, in.Escape)
	}
}

func TestLoneEscape(t *testing.T) {
	var st keyState
	in := parse(&st, []byte{'\x1b'}, time.Now())
	if !in.Escape {
		t.Fatalf("Escape not reported")
	}
}

func TestKeysStayHeldBriefly(t *testing.T) {
	var st keyState
	now := time.Now()
	parse(&st, []byte("d"), now)

	if in := parse(&st, nil, now.Add(keyHoldDuration/2)); !in.Right {
		t.Fatalf("Right released before the hold duration")
	}
	if in := parse(&st, nil, now.Add(keyHoldDuration)); in.Right {
		t.Fatalf("Right still held after the hold duration")
	}
}

func TestEdgeTriggeredKeys(t *testing.T) {
	var st keyState
	now := time.Now()
	in := parse(&st, []byte("p7t"), now)
	if !in.Pause || !in.Daily || in.Number != 7 {
		t.Fatalf("Pause = %v, Daily = %v, Number = %d, want true, true, 7", in.Pause, in.Daily, in.Number)
	}

	in = parse(&st, nil, now)
	if in.Pause || in.Daily || in.Number != -1 {
		t.Fatalf("edge keys repeated on an empty frame: %+v", in)
	}
}

func TestResetKeyInput(t *testing.T) {
	s := &Stream{ch: make(chan byte)}
	now := time.Now()
	parse(&s.state, []byte(" "), now)
	ResetKeyInput(s)
	if in := parse(&s.state, nil, now); in.Space {
		t.Fatalf("Space still held after reset")
	}
}
