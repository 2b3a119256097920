package effect

import "github.com/tomz197/brickbreaker/internal/loop/config"

// Combo counts consecutive block breaks. It drops to zero when its window
// runs out or when a ball touches the paddle.
type Combo struct {
	Count int
	Timer int // Ticks left before the combo drops
	Max   int // Highest count reached this session
}

// Multiplier returns the score multiplier tier for a combo count.
func Multiplier(count int) int {
	for _, tier := range config.ComboTiers {
		if count >= tier.Combo {
			return tier.Multiplier
		}
	}
	return 1
}

// Multiplier returns the current tier.
func (c *Combo) Multiplier() int {
	return Multiplier(c.Count)
}

// Hit records a block break and restarts the window.
// Returns the new count and its multiplier.
func (c *Combo) Hit(window int) (count, multiplier int) {
	c.Count++
	c.Timer = window
	if c.Count > c.Max {
		c.Max = c.Count
	}
	return c.Count, Multiplier(c.Count)
}

// Reset drops the combo immediately (paddle contact, life lost).
func (c *Combo) Reset() {
	c.Count = 0
	c.Timer = 0
}

// Decay counts the window down by one tick. A combo whose window was already
// used up drops to zero, so a break arriving within window ticks of the last
// one always extends it.
func (c *Combo) Decay() {
	if c.Timer > 0 {
		c.Timer--
		return
	}
	c.Count = 0
}

// Points returns the score for a break at the given count and multiplier.
func Points(base, count, multiplier int) int {
	return base * count * multiplier
}

// Milestone reports whether count has just reached a multiplier threshold.
func Milestone(count int) bool {
	for _, tier := range config.ComboTiers {
		if count == tier.Combo {
			return true
		}
	}
	return false
}
