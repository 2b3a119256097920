package client

import (
	"time"

	"github.com/tomz197/brickbreaker/internal/input"
	"github.com/tomz197/brickbreaker/internal/level"
	"github.com/tomz197/brickbreaker/internal/loop"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen with level select
	GameStatePlaying                   // A level is running
	GameStateOutcome                   // Level won or lost, show results
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-player state (input, level choice, last outcome).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	SelectedLevel uint          // Level the start screen will launch
	Score         int           // Running score of the current level
	Outcome       *loop.Outcome // Last finished level
	Daily         *level.Challenge
	DailyComplete bool
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time (client-side)
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	blinkTime     float64       // Remaining paddle blink after a lost life
	lastLives     int           // Lives seen in the previous frame
	fireHeld      bool          // Fire intent last sent to the server
	paused        bool          // Pause state last sent to the server

	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		SelectedLevel: 1,
		Running:       true,
	}
}
