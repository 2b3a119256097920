package server

import (
	"testing"
	"time"

	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop"
)

const frame = time.Second / 60

func registered(t *testing.T, s *Server, name string) *ClientHandle {
	t.Helper()
	h := s.RegisterClient(name)
	s.step(frame)
	if s.GetSnapshot().Players == 0 {
		t.Fatalf("client %q not registered", name)
	}
	return h
}

func TestRegisterAndUnregister(t *testing.T) {
	s := NewServer(Options{})
	a := registered(t, s, "alice")
	b := registered(t, s, "bob")
	if a.ID == b.ID {
		t.Fatalf("client IDs collide: %d", a.ID)
	}
	if got := s.GetSnapshot().Players; got != 2 {
		t.Fatalf("Players = %d, want 2", got)
	}

	s.UnregisterClient(a.ID)
	s.step(frame)
	if got := s.GetSnapshot().Players; got != 1 {
		t.Fatalf("Players = %d, want 1", got)
	}
	if _, ok := <-a.EventsCh; ok {
		t.Fatalf("events channel still open after unregister")
	}
}

func TestSnapshotBeforeAndAfterStart(t *testing.T) {
	s := NewServer(Options{})
	h := registered(t, s, "alice")
	if snap := s.Snapshot(h.ID); snap != nil {
		t.Fatalf("Snapshot before StartLevel = %+v, want nil", snap)
	}

	s.StartLevel(h.ID, 3)
	snap := s.Snapshot(h.ID)
	if snap == nil {
		t.Fatalf("Snapshot after StartLevel is nil")
	}
	if snap.Result.Tick != 0 {
		t.Fatalf("Tick = %d, want 0 before the first server frame", snap.Result.Tick)
	}
	if snap.Result.Snapshot.Level != 3 {
		t.Fatalf("Level = %d, want 3", snap.Result.Snapshot.Level)
	}

	s.step(frame)
	if got := s.Snapshot(h.ID).Result.Tick; got != 1 {
		t.Fatalf("Tick = %d, want 1", got)
	}
	if got := s.GetSnapshot().Playing; got != 1 {
		t.Fatalf("Playing = %d, want 1", got)
	}
}

func TestStartLevelClampsLevel(t *testing.T) {
	s := NewServer(Options{})
	h := registered(t, s, "alice")
	s.StartLevel(h.ID, 0)
	if got := s.Snapshot(h.ID).Result.Snapshot.Level; got != 1 {
		t.Fatalf("Level = %d, want 1", got)
	}
}

func TestCommandsReachSession(t *testing.T) {
	s := NewServer(Options{})
	h := registered(t, s, "alice")
	s.StartLevel(h.ID, 1)

	s.SendCommand(h.ID, Command{Kind: CmdLaunch})
	s.step(frame)
	if !s.Snapshot(h.ID).Result.Snapshot.Started {
		t.Fatalf("ball not launched after CmdLaunch")
	}

	s.SendCommand(h.ID, Command{Kind: CmdPause, Flag: true})
	s.step(frame)
	tick := s.Snapshot(h.ID).Result.Tick
	s.step(frame)
	if got := s.Snapshot(h.ID).Result.Tick; got != tick {
		t.Fatalf("paused session advanced from tick %d to %d", tick, got)
	}
}

func TestDailyOutcomeIsSentOnce(t *testing.T) {
	s := NewServer(Options{})
	h := registered(t, s, "alice")
	s.StartDaily(h.ID, level.Challenge{Type: level.ChallengeNoPowerUps, Level: 5})

	s.step(frame)
	s.step(frame)

	var outcomes int
	for {
		select {
		case ev := <-h.EventsCh:
			if ev.Type != EventOutcome {
				continue
			}
			outcomes++
			if ev.Outcome.Result != loop.ResultWin {
				t.Fatalf("Result = %v, want win", ev.Outcome.Result)
			}
			if !ev.Daily || !ev.Complete {
				t.Fatalf("Daily = %v, Complete = %v, want both true", ev.Daily, ev.Complete)
			}
		default:
			if outcomes != 1 {
				t.Fatalf("outcome events = %d, want 1", outcomes)
			}
			if got := s.GetSnapshot().Playing; got != 0 {
				t.Fatalf("Playing = %d, want 0 after the session finished", got)
			}
			return
		}
	}
}

func TestShutdownNotifiesClients(t *testing.T) {
	s := NewServer(Options{})
	h := registered(t, s, "alice")
	s.Shutdown(10 * time.Millisecond)
	ev := <-h.EventsCh
	if ev.Type != EventServerShutdown {
		t.Fatalf("event = %v, want EventServerShutdown", ev.Type)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	l := newLeaderboard(3)
	l.submit("alice", 1, 100, 2)
	l.submit("bob", 2, 300, 4)
	l.submit("carol", 3, 100, 1)
	l.submit("dave", 4, 50, 1)
	l.submit("alice", 1, 80, 5) // Lower than alice's best
	l.submit("erin", 5, 0, 9)   // Zero scores are not recorded

	top := l.top()
	want := []string{"bob", "alice", "carol"}
	if len(top) != len(want) {
		t.Fatalf("len(top) = %d, want %d", len(top), len(want))
	}
	for i, name := range want {
		if top[i].Username != name {
			t.Fatalf("top[%d] = %q, want %q", i, top[i].Username, name)
		}
	}
	if top[1].Score != 100 || top[1].Level != 2 {
		t.Fatalf("alice = %+v, want score 100 on level 2", top[1])
	}
}

func TestLeaderRequiresRunningSession(t *testing.T) {
	s := NewServer(Options{})
	registered(t, s, "alice")
	b := registered(t, s, "bob")
	s.StartLevel(b.ID, 1)
	s.step(frame)

	snap := s.GetSnapshot()
	if snap.Leader == nil || snap.Leader.ClientID != b.ID {
		t.Fatalf("Leader = %+v, want client %d", snap.Leader, b.ID)
	}
}
