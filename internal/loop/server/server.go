// Package server hosts many independent breakout sessions on one tick loop.
package server

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop"
	"github.com/tomz197/brickbreaker/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendCommand(clientID int, cmd Command)
	StartLevel(clientID int, n uint)
	StartDaily(clientID int, c level.Challenge)
	Snapshot(clientID int) *ClientSnapshot
	GetSnapshot() *ServerSnapshot
}

// Options configures a Server.
type Options struct {
	Tuning  config.Tuning
	Loadout Loadout
	Logger  *log.Logger
	Audio   func(clientID int) loop.AudioSink // Optional per-client sound
}

// Loadout is the equipment a session starts with.
type Loadout struct {
	PaddleSkin       string
	BallSkin         string
	PaddleWidthLevel int
	BallSpeedLevel   int
}

// Server owns every client session and ticks them on one goroutine.
type Server struct {
	opts         Options
	logger       *log.Logger
	snapshot     atomic.Pointer[ServerSnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	commandCh    chan ClientCommand
	registerCh   chan *ClientHandle
	unregisterCh chan int
	scores       *leaderboard
	mu           sync.RWMutex
	delta        time.Duration
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (outcome, score, shutdown)

	session     *loop.Session // Owned by the server goroutine
	challenge   *level.Challenge
	snapshot    atomic.Pointer[ClientSnapshot]
	lastScore   int
	outcomeSent bool
}

// CommandKind identifies a client command.
type CommandKind uint8

const (
	CmdMove   CommandKind = iota // Value: direction, moves PaddleKeySpeed units per unit
	CmdAim                       // Value: paddle left edge x
	CmdFire                      // Flag: hold fire
	CmdLaunch                    // Launch the resting ball
	CmdPause                     // Flag: paused
)

// Command is one input from a client, applied on the next tick.
type Command struct {
	Kind  CommandKind
	Value float64
	Flag  bool
}

// ClientCommand represents a command from a specific client.
type ClientCommand struct {
	ClientID int
	Command  Command
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type     ClientEventType
	Outcome  *loop.Outcome // For outcome events
	Daily    bool          // Outcome of a daily challenge
	Complete bool          // Daily challenge met
	ScoreAdd int           // For score events
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventOutcome ClientEventType = iota
	EventScore
	EventServerShutdown
)

// NewServer creates a new game server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		opts:         opts,
		logger:       logger,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandCh:    make(chan ClientCommand, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		scores:       newLeaderboard(config.LeaderboardN),
	}

	// Create initial empty snapshot
	s.snapshot.Store(&ServerSnapshot{})
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		s.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		s.step(s.delta)

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// step runs one server frame: registrations, commands, session ticks, snapshots.
func (s *Server) step(dt time.Duration) {
	s.processRegistrations()
	s.collectCommands()
	s.tickSessions(dt)
	s.createSnapshot()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendCommand queues a command for a client's session.
func (s *Server) SendCommand(clientID int, cmd Command) {
	select {
	case s.commandCh <- ClientCommand{ClientID: clientID, Command: cmd}:
	default:
		// Command channel full, drop command
	}
}

// StartLevel replaces the client's session with a fresh one on level n.
func (s *Server) StartLevel(clientID int, n uint) {
	s.start(clientID, min(max(n, 1), config.MaxLevel), nil)
}

// StartDaily replaces the client's session with the daily challenge layout.
// The outcome event reports whether the challenge was completed.
func (s *Server) StartDaily(clientID int, c level.Challenge) {
	s.start(clientID, c.Level, &c)
}

func (s *Server) start(clientID int, n uint, challenge *level.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	s.endSessionLocked(handle)

	opts := loop.Options{
		Level:            n,
		PaddleWidthLevel: s.opts.Loadout.PaddleWidthLevel,
		BallSpeedLevel:   s.opts.Loadout.BallSpeedLevel,
		PaddleSkin:       s.opts.Loadout.PaddleSkin,
		BallSkin:         s.opts.Loadout.BallSkin,
		Seed:             time.Now().UnixNano(),
		Tuning:           s.opts.Tuning,
		Logger:           s.logger.With("client", clientID),
	}
	if challenge != nil {
		opts.Layout = &challenge.Layout
	}
	if s.opts.Audio != nil {
		opts.Audio = s.opts.Audio(clientID)
	}
	handle.session = loop.StartLevel(opts)
	handle.challenge = challenge
	handle.lastScore = 0
	handle.outcomeSent = false
	handle.snapshot.Store(&ClientSnapshot{
		ClientID: clientID,
		Username: handle.Username,
		Result:   handle.session.State(),
	})
	s.logger.Info("level started", "client", clientID, "user", handle.Username, "level", n, "daily", challenge != nil)
}

// Snapshot returns the latest state of a client's session, or nil if the
// client has none.
func (s *Server) Snapshot(clientID int) *ClientSnapshot {
	s.mu.RLock()
	handle, ok := s.clients[clientID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return handle.snapshot.Load()
}

// GetSnapshot returns the current shared snapshot.
func (s *Server) GetSnapshot() *ServerSnapshot {
	return s.snapshot.Load()
}

// TopScores returns the current leaderboard.
func (s *Server) TopScores() []TopScoreEntry {
	return s.snapshot.Load().TopScores
}

// endSessionLocked records the running session's score and drops it.
// Must be called with lock held.
func (s *Server) endSessionLocked(handle *ClientHandle) {
	if handle.session == nil {
		return
	}
	s.scores.submit(handle.Username, handle.ID, handle.session.Score(), handle.session.Level())
	handle.session.Close()
	handle.session = nil
	handle.challenge = nil
	handle.snapshot.Store(nil)
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("client registered", "client", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				s.endSessionLocked(handle)
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Info("client left", "client", clientID, "user", handle.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectCommands applies all pending commands to their sessions.
func (s *Server) collectCommands() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case cc := <-s.commandCh:
			if handle, ok := s.clients[cc.ClientID]; ok && handle.session != nil {
				applyCommand(handle.session, cc.Command)
			}
		default:
			return
		}
	}
}

// applyCommand maps a client command onto the session input API.
func applyCommand(sess *loop.Session, cmd Command) {
	switch cmd.Kind {
	case CmdMove:
		sess.NudgePaddle(cmd.Value * config.PaddleKeySpeed)
	case CmdAim:
		sess.SetTargetPaddleX(cmd.Value)
	case CmdFire:
		sess.SetFireIntent(cmd.Flag)
	case CmdLaunch:
		sess.LaunchBall()
	case CmdPause:
		sess.SetPaused(cmd.Flag)
	}
}

// tickSessions advances every running session and notifies its client.
func (s *Server) tickSessions(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, handle := range s.clients {
		if handle.session == nil {
			continue
		}
		res := handle.session.Tick(dt)
		handle.snapshot.Store(&ClientSnapshot{ClientID: handle.ID, Username: handle.Username, Result: res})

		if gained := res.Score - handle.lastScore; gained > 0 {
			handle.lastScore = res.Score
			s.notify(handle, ClientEvent{Type: EventScore, ScoreAdd: gained})
		}
		if res.Outcome != nil && !handle.outcomeSent {
			handle.outcomeSent = true
			s.scores.submit(handle.Username, handle.ID, res.Outcome.Score, res.Outcome.Level)
			ev := ClientEvent{Type: EventOutcome, Outcome: res.Outcome}
			if handle.challenge != nil {
				ev.Daily = true
				ev.Complete = handle.challenge.Completed(handle.session.Challenge())
			}
			s.notify(handle, ev)
			s.logger.Info("session finished", "client", handle.ID, "user", handle.Username,
				"result", res.Outcome.Result, "score", res.Outcome.Score, "level", res.Outcome.Level)
		}
	}
}

func (s *Server) notify(handle *ClientHandle, ev ClientEvent) {
	select {
	case handle.EventsCh <- ev:
	default:
	}
}

// createSnapshot publishes the shared leaderboard and the current leader.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &ServerSnapshot{
		Players:   len(s.clients),
		TopScores: s.scores.top(),
	}
	for _, handle := range s.clients {
		if handle.session == nil || handle.session.Finished() {
			continue
		}
		snap.Playing++
		cs := handle.snapshot.Load()
		if cs == nil {
			continue
		}
		if snap.Leader == nil || cs.Result.Score > snap.Leader.Result.Score ||
			(cs.Result.Score == snap.Leader.Result.Score && cs.ClientID < snap.Leader.ClientID) {
			snap.Leader = cs
		}
	}

	s.snapshot.Store(snap)
}
