package effect

import "testing"

func TestActivateResetsInsteadOfStacking(t *testing.T) {
	var timers Timers
	timers.Activate(SlowMo, 300)
	for i := 0; i < 100; i++ {
		timers.Decay()
	}
	if got := timers.Remaining(SlowMo); got != 200 {
		t.Fatalf("remaining after 100 ticks = %d, want 200", got)
	}

	timers.Activate(SlowMo, 300)
	if got := timers.Remaining(SlowMo); got != 300 {
		t.Fatalf("remaining after re-activation = %d, want 300", got)
	}
}

func TestEffectsRunConcurrently(t *testing.T) {
	var timers Timers
	timers.Activate(FastShoot, 3)
	timers.Activate(LaserBeam, 5)

	if !timers.Active(FastShoot) || !timers.Active(LaserBeam) {
		t.Fatal("both effects should be active")
	}
	for i := 0; i < 3; i++ {
		timers.Decay()
	}
	if timers.Active(FastShoot) {
		t.Fatal("fast-shoot should have expired")
	}
	if !timers.Active(LaserBeam) {
		t.Fatal("laser should still be active")
	}
	if got := timers.ActiveKinds(); len(got) != 1 || got[0] != LaserBeam {
		t.Fatalf("ActiveKinds = %v, want [laser-beam]", got)
	}
}

func TestMultiballIsNotTimed(t *testing.T) {
	var timers Timers
	timers.Activate(Multiball, 300)
	if timers.Active(Multiball) {
		t.Fatal("multiball should not start a timer")
	}
}

func TestConsume(t *testing.T) {
	var timers Timers
	if timers.Consume(Shield) {
		t.Fatal("consuming an inactive shield should fail")
	}
	timers.Activate(Shield, 10)
	if !timers.Consume(Shield) {
		t.Fatal("consuming an active shield should succeed")
	}
	if timers.Active(Shield) {
		t.Fatal("shield should be inactive after consumption")
	}
}

func TestDropKindsExcludeIceSlow(t *testing.T) {
	for _, k := range DropKinds {
		if k == IceSlow {
			t.Fatal("ice-slow must not drop as a power-up")
		}
	}
	if len(DropKinds) != 7 {
		t.Fatalf("len(DropKinds) = %d, want 7", len(DropKinds))
	}
}
