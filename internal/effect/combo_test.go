package effect

import "testing"

func TestMultiplierTiers(t *testing.T) {
	cases := []struct {
		count, want int
	}{
		{0, 1}, {1, 1}, {9, 1},
		{10, 2}, {19, 2},
		{20, 3}, {29, 3},
		{30, 4}, {49, 4},
		{50, 5}, {500, 5},
	}
	for _, c := range cases {
		if got := Multiplier(c.count); got != c.want {
			t.Fatalf("Multiplier(%d) = %d, want %d", c.count, got, c.want)
		}
	}

	prev := Multiplier(0)
	for n := 1; n <= 60; n++ {
		m := Multiplier(n)
		if m < prev {
			t.Fatalf("Multiplier(%d) = %d dropped below %d", n, m, prev)
		}
		prev = m
	}
}

// tick mimics the session order: an optional break, then decay.
func tick(c *Combo, hit bool, window int) {
	if hit {
		c.Hit(window)
	}
	c.Decay()
}

func TestComboSurvivesGapsWithinWindow(t *testing.T) {
	const window = 10
	var c Combo
	tick(&c, true, window)
	for run := 2; run <= 5; run++ {
		for i := 1; i < window; i++ {
			tick(&c, false, window)
		}
		tick(&c, true, window) // break exactly window ticks after the last
		if c.Count != run {
			t.Fatalf("count = %d, want %d", c.Count, run)
		}
	}
}

func TestComboDropsAfterWindow(t *testing.T) {
	const window = 10
	var c Combo
	tick(&c, true, window)
	for i := 0; i < window; i++ {
		tick(&c, false, window)
	}
	if c.Count != 0 {
		t.Fatalf("count after %d idle ticks = %d, want 0", window, c.Count)
	}
	if c.Max != 1 {
		t.Fatalf("max = %d, want 1", c.Max)
	}
}

func TestComboResetAndPoints(t *testing.T) {
	var c Combo
	total := 0
	for k := 1; k <= 25; k++ {
		count, mult := c.Hit(100)
		pts := Points(10, count, mult)
		if want := 10 * k * Multiplier(k); pts != want {
			t.Fatalf("break %d scored %d, want %d", k, pts, want)
		}
		total += pts
	}
	if c.Multiplier() != 3 {
		t.Fatalf("multiplier at 25 = %d, want 3", c.Multiplier())
	}
	c.Reset()
	if c.Count != 0 || c.Max != 25 {
		t.Fatalf("after reset count=%d max=%d, want 0 and 25", c.Count, c.Max)
	}
	if total <= 0 {
		t.Fatal("expected positive total")
	}
}

func TestMilestone(t *testing.T) {
	for _, n := range []int{10, 20, 30, 50} {
		if !Milestone(n) {
			t.Fatalf("Milestone(%d) = false, want true", n)
		}
	}
	if Milestone(11) {
		t.Fatal("Milestone(11) = true, want false")
	}
}
