package level

import (
	"fmt"
	"math/rand"
	"time"
)

// ChallengeType is the rule a daily challenge is judged by.
type ChallengeType uint8

const (
	ChallengeTimeLimit ChallengeType = iota
	ChallengeBlockCount
	ChallengeNoPowerUps
	ChallengeMinimumCombo
)

var challengeNames = [...]string{"time-limit", "block-count", "no-power-ups", "minimum-combo"}

func (t ChallengeType) String() string {
	if int(t) < len(challengeNames) {
		return challengeNames[t]
	}
	return "unknown"
}

// Daily challenge tuning
const (
	dailyBaseLevel   = 5
	dailyLevelSpread = 11
	dailyTimeLimit   = 60 // Seconds
	dailyMinCombo    = 20
)

var dailyRewards = [...]int{150, 120, 130, 140}

// Challenge is the puzzle of the day. Everyone gets the same layout on the same date.
type Challenge struct {
	Day         int64 // Days since the Unix epoch (UTC)
	Type        ChallengeType
	Level       uint
	Target      int
	Reward      int
	Description string
	Layout      Layout
}

// ChallengeResult is what a finished session reports for judging.
type ChallengeResult struct {
	Won               bool
	Elapsed           time.Duration
	BlocksBroken      int
	PowerUpsCollected int
	MaxCombo          int
}

// DayIndex returns the number of whole UTC days since the Unix epoch.
func DayIndex(date time.Time) int64 {
	return date.UTC().Unix() / int64(24*time.Hour/time.Second)
}

// Daily returns the challenge for the date's UTC day.
func Daily(date time.Time) Challenge {
	day := DayIndex(date)
	if day < 0 {
		day = -day
	}
	typ := ChallengeType(day % 4)
	n := uint(dailyBaseLevel + day%dailyLevelSpread)
	layout := GenerateWithRand(n, rand.New(rand.NewSource(day)))

	c := Challenge{
		Day:    day,
		Type:   typ,
		Level:  n,
		Reward: dailyRewards[typ],
		Layout: layout,
	}
	switch typ {
	case ChallengeTimeLimit:
		c.Target = dailyTimeLimit
		c.Description = fmt.Sprintf("Clear level %d within %d seconds", n, dailyTimeLimit)
	case ChallengeBlockCount:
		c.Target = breakableCount(layout)
		c.Description = fmt.Sprintf("Break all %d blocks", c.Target)
	case ChallengeNoPowerUps:
		c.Target = 0
		c.Description = fmt.Sprintf("Clear level %d without collecting a power-up", n)
	case ChallengeMinimumCombo:
		c.Target = dailyMinCombo
		c.Description = fmt.Sprintf("Reach a %dx combo and clear level %d", dailyMinCombo, n)
	}
	return c
}

// Completed reports whether a finished session meets the challenge.
func (c Challenge) Completed(r ChallengeResult) bool {
	if !r.Won {
		return false
	}
	switch c.Type {
	case ChallengeTimeLimit:
		return r.Elapsed <= time.Duration(c.Target)*time.Second
	case ChallengeBlockCount:
		return r.BlocksBroken >= c.Target
	case ChallengeNoPowerUps:
		return r.PowerUpsCollected == 0
	case ChallengeMinimumCombo:
		return r.MaxCombo >= c.Target
	default:
		return false
	}
}

func breakableCount(l Layout) int {
	n := 0
	for _, b := range l.Blocks {
		if b.Type.Breakable() {
			n++
		}
	}
	return n
}
