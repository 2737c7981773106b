// Package loop runs the game: the frame-stepped simulation core in
// Game/World, and the terminal loop in Run that drives it at 60 Hz.
package loop

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/m-siegel/space-shooter-game/internal/config"
	"github.com/m-siegel/space-shooter-game/internal/input"
	"github.com/m-siegel/space-shooter-game/internal/object"
)

// Game is the orchestrator: it owns the score, lives, level index, and
// the phase state machine, and steps the current World through the
// fixed per-frame pipeline.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	audio   object.AudioPlayer
	effects EffectFactory

	world *World

	phase      Phase
	phaseFrame int
	outcome    Outcome

	level  int // zero-based
	lives  int
	points int
}

// NewGame validates cfg and builds a session at level 1. A nil rng gets
// a time-seeded one; nil audio and effects get no-op and default
// animation implementations.
func NewGame(cfg *config.Config, rng *rand.Rand, audio object.AudioPlayer, effects EffectFactory) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if audio == nil {
		audio = object.NopAudio{}
	}
	if effects == nil {
		effects = animationFactory{}
	}

	g := &Game{
		cfg:     cfg,
		rng:     rng,
		audio:   audio,
		effects: effects,
		lives:   cfg.Lives,
	}
	g.setupLevel()
	return g, nil
}

func (g *Game) setupLevel() {
	g.phase = PhasePlaying
	g.phaseFrame = 0
	g.world = NewWorld(
		g.rng,
		object.Bounds{Width: g.cfg.Width, Height: g.cfg.Height},
		g.cfg.AsteroidSpin,
		g.cfg.Levels[g.level],
		g.audio,
		g.effects,
	)
}

func (g *Game) goal() int {
	return g.cfg.Levels[g.level].PointsGoal
}

// Step advances the session one frame. After the session ends in a win
// or loss it is a no-op until Restart.
func (g *Game) Step(in input.Intent, dt float64) {
	if g.outcome != OutcomeNone {
		return
	}
	switch g.phase {
	case PhasePlaying:
		g.stepPlaying(in, dt)
	case PhaseLevelingUp:
		g.stepLevelingUp(in, dt)
	case PhaseDying:
		g.stepDying(dt)
	}
}

func (g *Game) stepPlaying(in input.Intent, dt float64) {
	// The goal check runs first, against the previous frame's score, so
	// a player who delivers the finishing blow while being killed still
	// levels up. While LevelingUp the death check below never runs.
	if g.points >= g.goal() {
		g.enterLevelingUp()
		g.stepFrozen(in, dt)
		return
	}

	// A destroyed player forfeits the rest of the frame: lasers still
	// in flight score nothing from here on.
	if g.world.PlayerHit() {
		g.enterDying()
		g.world.Advance(dt)
		return
	}

	g.points += g.world.ScoreLaserHits()

	g.world.ApplyIntent(in)
	g.world.Refill()
	g.world.RetargetEnemies()
	g.world.Advance(dt)
}

func (g *Game) enterLevelingUp() {
	g.phase = PhaseLevelingUp
	g.phaseFrame = 0
	// The win fanfare is saved for resolution; only an actual level
	// switch gets the level-up sound.
	if g.level+1 < len(g.cfg.Levels) {
		g.audio.Play(object.SoundLevelUp)
	}
}

func (g *Game) stepLevelingUp(in input.Intent, dt float64) {
	g.phaseFrame++
	if g.phaseFrame >= LevelUpDelayFrames {
		if g.level+1 < len(g.cfg.Levels) {
			g.level++
			g.setupLevel()
		} else {
			g.outcome = OutcomeWin
			g.audio.Play(object.SoundWin)
		}
		return
	}
	g.stepFrozen(in, dt)
}

// stepFrozen keeps the world moving without consequences: the ship
// still flies and shoots, enemies still chase, but nothing collides,
// scores, or spawns.
func (g *Game) stepFrozen(in input.Intent, dt float64) {
	g.world.ApplyIntent(in)
	g.world.RetargetEnemies()
	g.world.Advance(dt)
}

func (g *Game) enterDying() {
	g.phase = PhaseDying
	g.phaseFrame = 0
	g.world.DisableEnemyFire()
}

func (g *Game) stepDying(dt float64) {
	g.phaseFrame++
	if g.phaseFrame >= DeathDelayFrames {
		if g.lives > 0 {
			g.lives--
			g.audio.Play(object.SoundLifeLost)
			g.setupLevel()
		} else {
			g.outcome = OutcomeLoss
			g.audio.Play(object.SoundGameOver)
		}
		return
	}
	if g.phaseFrame >= RetreatDelayFrames {
		g.world.RetreatEnemies(dt)
	}
	g.world.Advance(dt)
}

// Restart resets the whole session to level 1 with full lives. Safe to
// invoke from any phase, including after a win or loss.
func (g *Game) Restart() {
	g.points = 0
	g.level = 0
	g.lives = g.cfg.Lives
	g.outcome = OutcomeNone
	g.setupLevel()
}

// JumpToLevel switches immediately to the given 1-based level. Points
// snap to the previous level's goal so the score readout stays
// consistent with the level reached.
func (g *Game) JumpToLevel(n int) error {
	if n < 1 || n > len(g.cfg.Levels) {
		return fmt.Errorf("level %d out of range 1..%d", n, len(g.cfg.Levels))
	}
	g.level = n - 1
	if n > 1 {
		g.points = g.cfg.Levels[n-2].PointsGoal
	} else {
		g.points = 0
	}
	g.outcome = OutcomeNone
	g.setupLevel()
	return nil
}

// Points returns the cumulative score for the session.
func (g *Game) Points() int { return g.points }

// Level returns the current level, 1-based for display.
func (g *Game) Level() int { return g.level + 1 }

// Lives returns the extra lives remaining.
func (g *Game) Lives() int { return g.lives }

// Phase returns the state machine's current phase.
func (g *Game) Phase() Phase { return g.phase }

// PhaseFrame returns how many frames the current phase has run.
func (g *Game) PhaseFrame() int { return g.phaseFrame }

// Outcome returns the session result, OutcomeNone while in progress.
func (g *Game) Outcome() Outcome { return g.outcome }

// World returns the current attempt's entity populations for rendering.
func (g *Game) World() *World { return g.world }
