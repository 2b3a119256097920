// Package spectate streams the leading session to WebSocket viewers.
package spectate

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"

	"github.com/tomz197/brickbreaker/internal/loop/server"
	"github.com/tomz197/brickbreaker/internal/object"
)

// Message types
const (
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgIdle    = "idle"
)

// Envelope wraps every message sent to viewers.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

var (
	errNoType    = errors.New("envelope type is empty")
	errNoPayload = errors.New("payload is nil")
)

// Encode marshals payload inside an envelope of type t.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errNoType
	}
	if payload == nil {
		return nil, errNoPayload
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// DecodeEnvelope parses the outer envelope.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errors.New("decode envelope: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}

// DecodePayload parses the envelope's payload as T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

// Welcome is sent once after the upgrade.
type Welcome struct {
	BroadcastHz int `json:"broadcastHz"`
	ArenaW      int `json:"arenaW"`
	ArenaH      int `json:"arenaH"`
}

// Rect is an axis-aligned box in arena units.
type Rect struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Color string  `json:"c"`
}

// Ball is a ball in arena units.
type Ball struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Color string  `json:"c"`
}

// Block is a live brick.
type Block struct {
	Rect
	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
}

// PowerUp is a falling pickup.
type PowerUp struct {
	Rect
	Symbol string `json:"s"`
}

// Score is a leaderboard row.
type Score struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Level uint   `json:"level"`
}

// Frame is one broadcast of the leading session.
type Frame struct {
	Tick        uint64    `json:"tick"`
	Player      string    `json:"player"`
	Level       uint      `json:"level"`
	Boss        bool      `json:"boss,omitempty"`
	Paused      bool      `json:"paused,omitempty"`
	Score       int       `json:"score"`
	Lives       int       `json:"lives"`
	Combo       int       `json:"combo"`
	Multiplier  int       `json:"mult"`
	Players     int       `json:"players"`
	Paddle      Rect      `json:"paddle"`
	Balls       []Ball    `json:"balls"`
	Blocks      []Block   `json:"blocks"`
	PowerUps    []PowerUp `json:"powerUps,omitempty"`
	Projectiles []Rect    `json:"shots,omitempty"`
	Top         []Score   `json:"top,omitempty"`
}

// Idle is sent while nobody is playing.
type Idle struct {
	Players int     `json:"players"`
	Top     []Score `json:"top,omitempty"`
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func topScores(entries []server.TopScoreEntry) []Score {
	if len(entries) == 0 {
		return nil
	}
	out := make([]Score, len(entries))
	for i, e := range entries {
		out[i] = Score{Name: e.Username, Score: e.Score, Level: e.Level}
	}
	return out
}

// BuildFrame flattens a server snapshot's leader into a Frame.
// Returns false when no session is in progress.
func BuildFrame(ss *server.ServerSnapshot) (Frame, bool) {
	if ss == nil || ss.Leader == nil {
		return Frame{}, false
	}
	res := &ss.Leader.Result
	snap := &res.Snapshot
	f := Frame{
		Tick:       res.Tick,
		Player:     ss.Leader.Username,
		Level:      snap.Level,
		Boss:       snap.Boss,
		Paused:     snap.Paused,
		Score:      res.Score,
		Lives:      res.Lives,
		Combo:      res.Combo,
		Multiplier: res.Multiplier,
		Players:    ss.Players,
		Paddle: Rect{
			X:     snap.Paddle.X,
			Y:     snap.Paddle.Y,
			W:     snap.Paddle.Width,
			H:     snap.Paddle.Height,
			Color: hex(snap.Paddle.Skin.Color()),
		},
		Balls:  make([]Ball, len(snap.Balls)),
		Blocks: make([]Block, len(snap.Blocks)),
		Top:    topScores(ss.TopScores),
	}
	for i, b := range snap.Balls {
		f.Balls[i] = Ball{X: b.X, Y: b.Y, R: b.Radius, Color: hex(b.Skin.Color())}
	}
	for i, b := range snap.Blocks {
		f.Blocks[i] = Block{
			Rect:  Rect{X: b.X, Y: b.Y, W: b.W, H: b.H, Color: hex(b.Color)},
			HP:    b.HP,
			MaxHP: b.MaxHP,
		}
	}
	for _, p := range snap.PowerUps {
		f.PowerUps = append(f.PowerUps, PowerUp{
			Rect:   Rect{X: p.X, Y: p.Y, W: p.W, H: p.H, Color: hex(object.PowerUpColor(p.Kind))},
			Symbol: string(object.PowerUpSymbol(p.Kind)),
		})
	}
	for _, p := range snap.Projectiles {
		f.Projectiles = append(f.Projectiles, Rect{X: p.X, Y: p.Y, W: p.W, H: p.H, Color: hex(p.Color)})
	}
	return f, true
}

// BuildIdle summarizes the server while no session is running.
func BuildIdle(ss *server.ServerSnapshot) Idle {
	if ss == nil {
		return Idle{}
	}
	return Idle{Players: ss.Players, Top: topScores(ss.TopScores)}
}
