package loop

import "time"

// Game tuning constants. The simulation itself is rate-independent
// through dt, but the terminal loop targets a fixed cadence and the
// phase-transition delays below count frames at that cadence.

// Frame timing
const (
	TargetFPS       = 60
	targetFrameTime = time.Second / TargetFPS
)

// Scoring
const (
	AsteroidPoints = 5
	EnemyPoints    = 15
)

// Phase transitions
const (
	// Frames between reaching a points goal and the level actually
	// switching (or the session ending in a win).
	LevelUpDelayFrames = 60

	// Frames between the player's destruction and the attempt
	// restarting (or the session ending in a loss). Longer than the
	// level-up delay so the explosion and enemy retreat read clearly.
	DeathDelayFrames = 150

	// Frames into Dying before surviving enemies begin their retreat.
	RetreatDelayFrames = 60
)
