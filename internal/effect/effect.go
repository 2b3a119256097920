// Package effect tracks timed power-up effects and the combo counter.
//
// Effects are independent countdowns rather than states of one machine:
// any number can be active at once and each is active while its timer is
// above zero.
package effect

// Kind identifies a timed effect. All kinds except IceSlow can drop as power-ups.
type Kind uint8

const (
	Multiball Kind = iota
	FastShoot
	Shield
	SlowMo
	ExplosiveShot
	LaserBeam
	MultiShot
	IceSlow

	numKinds
)

var kindNames = [numKinds]string{
	"multiball", "fast-shoot", "shield", "slow-mo", "explosive-shot", "laser-beam", "multi-shot", "ice-slow",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "unknown"
}

// Timed reports whether the kind runs on a countdown. Multiball acts once.
func (k Kind) Timed() bool {
	return k != Multiball && k < numKinds
}

// DropKinds lists the kinds a flagged block can drop, in a fixed order.
var DropKinds = []Kind{Multiball, FastShoot, Shield, SlowMo, ExplosiveShot, LaserBeam, MultiShot}

// Timers holds one countdown (in ticks) per effect kind.
type Timers struct {
	Ticks [numKinds]int
}

// Activate sets the kind's timer to ticks. Re-activating an active effect
// resets its duration instead of stacking.
func (t *Timers) Activate(k Kind, ticks int) {
	if !k.Timed() || ticks <= 0 {
		return
	}
	t.Ticks[k] = ticks
}

// Active reports whether the kind's timer is running.
func (t *Timers) Active(k Kind) bool {
	return k < numKinds && t.Ticks[k] > 0
}

// Remaining returns the ticks left on the kind's timer.
func (t *Timers) Remaining(k Kind) int {
	if k >= numKinds {
		return 0
	}
	return t.Ticks[k]
}

// Consume stops an active effect early. Returns false if it was not active.
func (t *Timers) Consume(k Kind) bool {
	if !t.Active(k) {
		return false
	}
	t.Ticks[k] = 0
	return true
}

// Decay counts every running timer down by one tick.
func (t *Timers) Decay() {
	for i := range t.Ticks {
		if t.Ticks[i] > 0 {
			t.Ticks[i]--
		}
	}
}

// Clear stops every effect.
func (t *Timers) Clear() {
	t.Ticks = [numKinds]int{}
}

// ActiveKinds returns the running effects in kind order.
func (t *Timers) ActiveKinds() []Kind {
	var out []Kind
	for i, ticks := range t.Ticks {
		if ticks > 0 {
			out = append(out, Kind(i))
		}
	}
	return out
}
