// Package config centralizes all tunable game parameters.
package config

import "time"

// Arena dimensions in logical units. Y grows downward.
const (
	ArenaWidth  = 800
	ArenaHeight = 600
)

// Paddle
const (
	PaddleBaseWidth     = 100.0
	PaddleHeight        = 20.0
	PaddleBottomMargin  = 30.0 // Paddle top sits this far above the arena bottom
	PaddleWidthStep     = 0.1  // Width bonus per upgrade level
	PaddleMaxWidthRatio = 0.5  // Paddle never exceeds this share of the arena width
	PaddleHitFlash      = 1.0  // Flash amplitude on ball contact
	PaddleRecoilFlash   = 0.2  // Flash amplitude when firing
	PaddleFlashDecay    = 0.15 // Flash decay per tick
	PaddleDeflection    = 0.15 // Horizontal velocity per unit of offset from paddle center
	PaddleKeySpeed      = 14.0 // Units per tick for keyboard-driven paddles
	PaddleGunInset      = 2.0  // Gun offset from the paddle edges
	PaddleGunOffset     = 35.0 // Projectile spawn y above the arena bottom
)

// Ball
const (
	BallRadius       = 8.0
	BallRestOffset   = 40.0 // Resting ball y is this far above the arena bottom
	BallSpeedStep    = 0.1  // Launch speed bonus per upgrade level
	LevelSpeedStep   = 0.02 // Launch speed bonus per level number
	BallLaunchSpread = 4.0  // Random horizontal launch velocity range
	MultiballSpread  = 8.0  // Random horizontal velocity range for multiball spawns
	PortalExitY      = 40.0 // Ball y after passing through a portal
)

// Boss
const (
	BossDriftSpeed = 1.5 // Horizontal drift in units per tick
)

// Scoring
const (
	BlockBasePoints      = 10
	ProjectileKillPoints = 5
	SplashKillPoints     = 5
	BossBonusPerTier     = 1000 // Bonus per boss tier (level/10)
	WinReward            = 100  // Currency awarded on a win
)

// Combo multiplier tiers, checked from highest to lowest.
var ComboTiers = []struct {
	Combo      int
	Multiplier int
}{
	{50, 5},
	{30, 4},
	{20, 3},
	{10, 2},
}

// Effects
const (
	SlowMoFactor  = 0.5
	IceSlowFactor = 0.6
	SplashRadius  = 60.0
)

// Shots
const (
	RapidFireCooldown = 100 * time.Millisecond
	RapidFireSpeedAdd = 4.0
	LaserSpeedAdd     = 6.0
	LaserWidth        = 3.0
	LaserHeight       = 28.0
	LaserDamage       = 2
	MultiShotSpread   = 2.0 // Horizontal velocity of the outer fan projectiles
	TrailLength       = 8
	SparkLimit        = 6
)

// Power-ups
const (
	PowerUpSize  = 20.0
	PowerUpSpeed = 3.0
)

// Particles
const (
	ParticleLifeDecay = 0.02
	ParticleShrink    = 0.95
	DebrisCols        = 4
	DebrisRows        = 2
	DustCount         = 8
	PortalBurstCount  = 20
	BossBurstCount    = 60
	HitSparkCount     = 4
	ProjectileHitBits = 3
	MuzzleFlashCount  = 5
)

// Screen effects
const (
	BossShakeTicks = 30
	FlashDecay     = 0.05
)

// Player
const (
	InitialLives      = 3
	MaxUsernameLength = 16 // Maximum display length for player usernames
	MaxLevel          = 99
)

// Session timing
const (
	MaxTickDelta  = 33 * time.Millisecond // A stalled frame never advances more than this
	BaselineRate  = 60                    // Velocities are tuned as units per 1/60 s
	LeaderboardN  = 5                     // Entries kept on the shared leaderboard
	SaveFormatVer = 1
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 160 // Render area is clamped to this many columns
	MaxTermHeight         = 60  // and this many rows
	LifeLostBlinkSeconds  = 1.5 // Paddle blinks this long after a lost life
	PaddleBlinkFrequency  = 8.0 // Blink rate in Hz
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)

// Spectator feed
const (
	SpectateBroadcastHz = 20
)
