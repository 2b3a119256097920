package server

import (
	"cmp"
	"slices"

	"github.com/tomz197/brickbreaker/internal/loop"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	Level    uint
	clientID int // Used for deterministic tie-break when scores are equal
}

// ClientSnapshot is the latest tick result of one client's session.
// It is immutable once published.
type ClientSnapshot struct {
	ClientID int
	Username string
	Result   loop.TickResult
}

// ServerSnapshot is the shared, immutable view every client can read.
type ServerSnapshot struct {
	Players   int
	Playing   int             // Clients with a session in progress
	TopScores []TopScoreEntry // Top N scores for leaderboard display
	Leader    *ClientSnapshot // Highest scoring session in progress, nil if none
}

// leaderboard keeps the best score per username.
type leaderboard struct {
	best map[string]TopScoreEntry
	size int
}

func newLeaderboard(size int) *leaderboard {
	return &leaderboard{best: make(map[string]TopScoreEntry), size: size}
}

// submit records a score if it beats the username's best.
func (l *leaderboard) submit(username string, clientID, score int, level uint) {
	if score <= 0 {
		return
	}
	if cur, ok := l.best[username]; ok && cur.Score >= score {
		return
	}
	l.best[username] = TopScoreEntry{Username: username, Score: score, Level: level, clientID: clientID}
}

// top returns the best entries, highest score first.
func (l *leaderboard) top() []TopScoreEntry {
	entries := make([]TopScoreEntry, 0, len(l.best))
	for _, e := range l.best {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.clientID, b.clientID)
	})
	if len(entries) > l.size {
		entries = entries[:l.size]
	}
	return entries
}
