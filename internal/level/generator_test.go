package level

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/object"
)

func TestGenerateInvariants(t *testing.T) {
	for n := uint(1); n <= 120; n++ {
		l := Generate(n)
		if l.Rows < 1 || l.Cols < 1 {
			t.Fatalf("level %d: rows=%d cols=%d, want both >= 1", n, l.Rows, l.Cols)
		}
		portals := 0
		for _, b := range l.Blocks {
			if b.Type == object.BlockPortal {
				portals++
			}
			if b.X < 0 || b.Y < 0 || b.X+b.W > config.ArenaWidth || b.Y+b.H > config.ArenaHeight {
				t.Fatalf("level %d: block %d out of bounds: %+v", n, b.ID, b)
			}
			if b.HP > b.MaxHP {
				t.Fatalf("level %d: block %d hp %d > maxHp %d", n, b.ID, b.HP, b.MaxHP)
			}
			if b.HP < 1 {
				t.Fatalf("level %d: block %d has hp %d", n, b.ID, b.HP)
			}
		}
		if portals > 1 {
			t.Fatalf("level %d: %d portals, want at most 1", n, portals)
		}
		if IsBossLevel(n) && portals != 0 {
			t.Fatalf("boss level %d has a portal", n)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, n := range []uint{1, 7, 33} {
		a, b := Generate(n), Generate(n)
		if len(a.Blocks) != len(b.Blocks) {
			t.Fatalf("level %d: %d vs %d blocks", n, len(a.Blocks), len(b.Blocks))
		}
		for i := range a.Blocks {
			if a.Blocks[i] != b.Blocks[i] {
				t.Fatalf("level %d: block %d differs: %+v vs %+v", n, i, a.Blocks[i], b.Blocks[i])
			}
		}
	}
}

func TestTargetBlockCountIsMonotonic(t *testing.T) {
	prev := TargetBlockCount(1)
	for n := uint(2); n <= 200; n++ {
		cur := TargetBlockCount(n)
		if cur < prev {
			t.Fatalf("TargetBlockCount(%d) = %d < TargetBlockCount(%d) = %d", n, cur, n-1, prev)
		}
		if cur > maxTarget {
			t.Fatalf("TargetBlockCount(%d) = %d exceeds cap %d", n, cur, maxTarget)
		}
		prev = cur
	}
	if got := TargetBlockCount(200); got != maxTarget {
		t.Fatalf("TargetBlockCount(200) = %d, want cap %d", got, maxTarget)
	}
}

func TestSkipChanceFallsWithLevel(t *testing.T) {
	if SkipChance(1) <= SkipChance(30) {
		t.Fatalf("skip chance should fall: %v at 1, %v at 30", SkipChance(1), SkipChance(30))
	}
	if got := SkipChance(1000); got != minSkip {
		t.Fatalf("SkipChance(1000) = %v, want floor %v", got, minSkip)
	}
}

func TestRowZeroIsComplete(t *testing.T) {
	for _, n := range []uint{1, 2, 3, 5, 6, 7, 11} {
		l := Generate(n)
		top := 0
		for _, b := range l.Blocks {
			if b.Y == GridTop {
				top++
			}
		}
		if top != l.Cols {
			t.Fatalf("level %d: row 0 has %d blocks, want %d", n, top, l.Cols)
		}
	}
}

func TestPortalIsOnBottomRow(t *testing.T) {
	l := Generate(4)
	maxY := 0.0
	for _, b := range l.Blocks {
		if b.Y > maxY {
			maxY = b.Y
		}
	}
	for _, b := range l.Blocks {
		if b.Type != object.BlockPortal {
			continue
		}
		if b.Y != maxY {
			t.Fatalf("portal at y=%v, want bottom row y=%v", b.Y, maxY)
		}
		if b.HasPowerUp {
			t.Fatal("portal must not carry a power-up")
		}
		if b.HP != portalHP || b.MaxHP != portalHP {
			t.Fatalf("portal hp = %d/%d, want %d", b.HP, b.MaxHP, portalHP)
		}
	}
}

func TestBossLevels(t *testing.T) {
	l := Generate(10)
	if !l.Boss {
		t.Fatal("level 10 should be a boss level")
	}
	breakable := 0
	var boss object.Block
	for _, b := range l.Blocks {
		if b.Type.Breakable() {
			breakable++
		}
		if b.Type == object.BlockBoss {
			boss = b
		}
	}
	if breakable != 1 || boss.Type != object.BlockBoss {
		t.Fatalf("level 10: %d breakable blocks, want only the boss", breakable)
	}
	if boss.MaxHP != 50 {
		t.Fatalf("level 10 boss maxHp = %d, want 50", boss.MaxHP)
	}

	l20 := Generate(20)
	irons := 0
	for _, b := range l20.Blocks {
		if b.Type == object.BlockIron {
			irons++
		}
	}
	if irons != 2 {
		t.Fatalf("level 20: %d iron guards, want 2", irons)
	}
}

func TestSpecialTypesAreLevelGated(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		for _, b := range GenerateWithRand(3, rng).Blocks {
			switch b.Type {
			case object.BlockIce, object.BlockBouncy, object.BlockIron:
				t.Fatalf("level 3 produced a %s block", b.Type)
			}
		}
	}
}

func TestLevelZeroIsTreatedAsOne(t *testing.T) {
	l := GenerateWithRand(0, rand.New(rand.NewSource(5)))
	if l.Level != 1 {
		t.Fatalf("Level = %d, want 1", l.Level)
	}
}

func TestDailyChallenge(t *testing.T) {
	date := time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)
	a := Daily(date)
	b := Daily(date.Add(-10 * time.Hour))
	if a.Day != b.Day || len(a.Layout.Blocks) != len(b.Layout.Blocks) {
		t.Fatal("same UTC day should give the same challenge")
	}
	if a.Level < dailyBaseLevel || a.Level >= dailyBaseLevel+dailyLevelSpread {
		t.Fatalf("daily level %d out of range", a.Level)
	}
	if a.Reward != dailyRewards[a.Type] {
		t.Fatalf("reward = %d, want %d", a.Reward, dailyRewards[a.Type])
	}

	next := Daily(date.Add(24 * time.Hour))
	if next.Type == a.Type {
		t.Fatal("consecutive days should rotate challenge types")
	}
}

func TestChallengeCompleted(t *testing.T) {
	c := Challenge{Type: ChallengeTimeLimit, Target: 60}
	if !c.Completed(ChallengeResult{Won: true, Elapsed: 59 * time.Second}) {
		t.Fatal("win inside the limit should complete")
	}
	if c.Completed(ChallengeResult{Won: true, Elapsed: 61 * time.Second}) {
		t.Fatal("win past the limit should not complete")
	}
	if c.Completed(ChallengeResult{Won: false}) {
		t.Fatal("a loss never completes a challenge")
	}

	c = Challenge{Type: ChallengeNoPowerUps}
	if c.Completed(ChallengeResult{Won: true, PowerUpsCollected: 1}) {
		t.Fatal("collecting a power-up should fail the challenge")
	}

	c = Challenge{Type: ChallengeMinimumCombo, Target: 20}
	if !c.Completed(ChallengeResult{Won: true, MaxCombo: 20}) {
		t.Fatal("reaching the combo should complete")
	}
}

func TestHugeLevelsSaturate(t *testing.T) {
	// 768614336404564650 * 12 no longer fits in an int64.
	levels := []uint{1, 55, 1000, 768614336404564650, 1 << 63, ^uint(0)}
	prev := 0
	for _, n := range levels {
		got := TargetBlockCount(n)
		if got < prev {
			t.Fatalf("TargetBlockCount(%d) = %d, below %d for a smaller level", n, got, prev)
		}
		prev = got
	}
	if prev != maxTarget {
		t.Fatalf("TargetBlockCount(max) = %d, want %d", prev, maxTarget)
	}

	rows, cols := Dimensions(^uint(0))
	wantRows, wantCols := Dimensions(1000)
	if rows != wantRows || cols != wantCols {
		t.Fatalf("Dimensions(max) = %dx%d, want %dx%d", rows, cols, wantRows, wantCols)
	}

	l := Generate(^uint(0))
	if len(l.Blocks) <= l.Cols {
		t.Fatalf("Generate(max) placed %d blocks, want more than one row of %d", len(l.Blocks), l.Cols)
	}
	for _, b := range l.Blocks {
		if b.HP < 1 {
			t.Fatalf("Generate(max): block %d has hp %d", b.ID, b.HP)
		}
	}

	if hp := BossHP(^uint(0)); hp <= BossHP(10) {
		t.Fatalf("BossHP(max) = %d, want more than level 10's %d", hp, BossHP(10))
	}
	if tier := BossTier(^uint(0)); tier < BossTier(1<<20) || tier < 1 {
		t.Fatalf("BossTier(max) = %d, want saturated at %d", tier, BossTier(1<<20))
	}
}
