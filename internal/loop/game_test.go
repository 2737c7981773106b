package loop

import (
	"math/rand"
	"testing"

	"github.com/m-siegel/space-shooter-game/internal/config"
	"github.com/m-siegel/space-shooter-game/internal/input"
	"github.com/m-siegel/space-shooter-game/internal/object"
)

const testDT = 1.0 / 60

// soundLog records every sound the session triggers.
type soundLog struct {
	plays []object.Sound
}

func (s *soundLog) Play(snd object.Sound) {
	s.plays = append(s.plays, snd)
}

func (s *soundLog) count(snd object.Sound) int {
	n := 0
	for _, p := range s.plays {
		if p == snd {
			n++
		}
	}
	return n
}

// effectLog records where explosions were dropped.
type effectLog struct {
	spots [][2]float64
}

func (e *effectLog) Explosion(x, y float64) *object.Explosion {
	e.spots = append(e.spots, [2]float64{x, y})
	return object.NewExplosion(x, y)
}

// testConfig is a two-level game with no ambient spawning, so tests
// control entity populations entirely by injection.
func testConfig() *config.Config {
	return &config.Config{
		Width:        1400,
		Height:       800,
		Lives:        3,
		AsteroidSpin: config.Range{2},
		Levels: []config.Level{
			{
				PointsGoal:      20,
				PlayerLaserFade: 15,
				AsteroidSpeed:   config.Range{100},
				EnemySpeed:      config.Range{60},
				EnemyLaserFade:  255,
				EnemyReload:     10,
			},
			{
				PointsGoal:      40,
				PlayerLaserFade: 15,
				AsteroidSpeed:   config.Range{100},
				EnemySpeed:      config.Range{60},
				EnemyLaserFade:  255,
				EnemyReload:     10,
			},
		},
	}
}

func newTestGame(t *testing.T) (*Game, *soundLog, *effectLog) {
	t.Helper()
	sounds := &soundLog{}
	effects := &effectLog{}
	g, err := NewGame(testConfig(), rand.New(rand.NewSource(7)), sounds, effects)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return g, sounds, effects
}

// injectAsteroid plants a stationary asteroid into the current world.
// Its target is kept away from its position so it never self-retires.
func injectAsteroid(g *Game, x, y float64) *object.Asteroid {
	a := object.NewAsteroid(g.rng, x, y, 0)
	a.TargetX, a.TargetY = -1000, -1000
	g.world.asteroids = append(g.world.asteroids, a)
	return a
}

func injectEnemy(g *Game, x, y float64) *object.EnemyShip {
	e := object.NewEnemyShip(x, y, 60, g.world.enemyLasers, 255, g.cfg.Levels[g.level].EnemyReload)
	e.TargetX, e.TargetY = -1000, -1000
	g.world.enemies = append(g.world.enemies, e)
	return e
}

func injectPlayerLaser(g *Game, x, y float64) *object.Laser {
	ctx := object.UpdateContext{Delta: testDT, Bounds: g.world.bounds, Audio: object.NopAudio{}}
	return g.world.playerLasers.Spawn(ctx, x, y, 0, 0, 0)
}

func TestGame_ScoresAsteroidAndEnemyHits(t *testing.T) {
	g, _, effects := newTestGame(t)

	injectAsteroid(g, 100, 100)
	injectEnemy(g, 1200, 700)
	injectPlayerLaser(g, 100, 100)
	injectPlayerLaser(g, 1200, 700)

	g.Step(input.Intent{}, testDT)

	if g.Points() != AsteroidPoints+EnemyPoints {
		t.Errorf("Expected %d points, got %d", AsteroidPoints+EnemyPoints, g.Points())
	}
	if len(effects.spots) != 2 {
		t.Errorf("Expected 2 explosions, got %d", len(effects.spots))
	}
	if len(g.World().Asteroids()) != 0 || len(g.World().Enemies()) != 0 {
		t.Errorf("Expected destroyed targets swept, got %d asteroids and %d enemies",
			len(g.World().Asteroids()), len(g.World().Enemies()))
	}
	if len(g.World().PlayerLasers()) != 0 {
		t.Errorf("Expected spent lasers swept, got %d", len(g.World().PlayerLasers()))
	}
}

func TestGame_CollisionsResolveBeforeMovement(t *testing.T) {
	g, _, effects := newTestGame(t)

	px, py := g.World().Player().Position()
	injectAsteroid(g, px, py)

	g.Step(input.Intent{Forward: true}, testDT)

	if g.Phase() != PhaseDying {
		t.Fatalf("Expected PhaseDying after a collision, got %v", g.Phase())
	}
	if len(effects.spots) != 1 {
		t.Fatalf("Expected 1 explosion, got %d", len(effects.spots))
	}
	// The explosion sits at the player's pre-movement position even
	// though the frame carried a forward intent.
	if effects.spots[0] != [2]float64{px, py} {
		t.Errorf("Expected explosion at (%v, %v), got %v", px, py, effects.spots[0])
	}
}

func TestGame_DeathForfeitsScoringForTheFrame(t *testing.T) {
	g, _, _ := newTestGame(t)

	px, py := g.World().Player().Position()
	injectAsteroid(g, px, py)
	injectAsteroid(g, 100, 100)
	injectPlayerLaser(g, 100, 100)

	g.Step(input.Intent{}, testDT)

	if g.Points() != 0 {
		t.Errorf("Expected no points on the death frame, got %d", g.Points())
	}
}

func TestGame_LevelUpDelayIsExact(t *testing.T) {
	g, sounds, _ := newTestGame(t)

	g.points = g.goal()
	g.Step(input.Intent{}, testDT)
	if g.Phase() != PhaseLevelingUp {
		t.Fatalf("Expected PhaseLevelingUp at the goal, got %v", g.Phase())
	}
	if sounds.count(object.SoundLevelUp) != 1 {
		t.Errorf("Expected the level-up sound once at entry, got %d", sounds.count(object.SoundLevelUp))
	}

	for i := 0; i < LevelUpDelayFrames-1; i++ {
		g.Step(input.Intent{}, testDT)
		if g.Phase() != PhaseLevelingUp {
			t.Fatalf("Expected PhaseLevelingUp through frame %d, got %v", i+1, g.Phase())
		}
	}

	g.Step(input.Intent{}, testDT)
	if g.Phase() != PhasePlaying || g.Level() != 2 {
		t.Errorf("Expected level 2 playing after the delay, got %v at level %d", g.Phase(), g.Level())
	}
	if g.Points() != 20 {
		t.Errorf("Expected the score carried across levels, got %d", g.Points())
	}
}

func TestGame_FinishingBlowOutranksDeath(t *testing.T) {
	g, _, _ := newTestGame(t)

	px, py := g.World().Player().Position()
	injectAsteroid(g, px, py)
	g.points = g.goal()

	g.Step(input.Intent{}, testDT)

	if g.Phase() != PhaseLevelingUp {
		t.Errorf("Expected the goal to outrank the collision, got %v", g.Phase())
	}
	if !g.World().Player().Alive() {
		t.Error("Expected the player to survive the frame that cleared the level")
	}
}

func TestGame_WinAtFinalLevel(t *testing.T) {
	g, sounds, _ := newTestGame(t)

	if err := g.JumpToLevel(2); err != nil {
		t.Fatal(err)
	}
	g.points = g.goal()

	g.Step(input.Intent{}, testDT)
	if sounds.count(object.SoundLevelUp) != 0 {
		t.Error("Expected no level-up sound when there is no next level")
	}
	for i := 0; i < LevelUpDelayFrames; i++ {
		g.Step(input.Intent{}, testDT)
	}

	if g.Outcome() != OutcomeWin {
		t.Errorf("Expected OutcomeWin, got %v", g.Outcome())
	}
	if sounds.count(object.SoundWin) != 1 {
		t.Errorf("Expected the win fanfare once, got %d", sounds.count(object.SoundWin))
	}
}

func TestGame_DeathDelayThenLifeLost(t *testing.T) {
	g, sounds, _ := newTestGame(t)

	px, py := g.World().Player().Position()
	injectAsteroid(g, px, py)

	g.Step(input.Intent{}, testDT)
	if g.Phase() != PhaseDying {
		t.Fatalf("Expected PhaseDying, got %v", g.Phase())
	}

	for i := 0; i < DeathDelayFrames-1; i++ {
		g.Step(input.Intent{}, testDT)
		if g.Phase() != PhaseDying {
			t.Fatalf("Expected PhaseDying through frame %d, got %v", i+1, g.Phase())
		}
	}

	g.Step(input.Intent{}, testDT)
	if g.Phase() != PhasePlaying {
		t.Errorf("Expected a fresh attempt after the delay, got %v", g.Phase())
	}
	if g.Lives() != 2 {
		t.Errorf("Expected 2 extra lives remaining, got %d", g.Lives())
	}
	if !g.World().Player().Alive() {
		t.Error("Expected a live player in the fresh world")
	}
	if sounds.count(object.SoundLifeLost) != 1 {
		t.Errorf("Expected the life-lost sound once, got %d", sounds.count(object.SoundLifeLost))
	}
}

func TestGame_LossWhenOutOfLives(t *testing.T) {
	g, sounds, _ := newTestGame(t)
	g.lives = 0

	px, py := g.World().Player().Position()
	injectAsteroid(g, px, py)

	for i := 0; i < DeathDelayFrames+1; i++ {
		g.Step(input.Intent{}, testDT)
	}

	if g.Outcome() != OutcomeLoss {
		t.Fatalf("Expected OutcomeLoss, got %v", g.Outcome())
	}
	if sounds.count(object.SoundGameOver) != 1 {
		t.Errorf("Expected the game-over sound once, got %d", sounds.count(object.SoundGameOver))
	}

	// The session is over: further steps change nothing.
	phase, frame := g.Phase(), g.PhaseFrame()
	g.Step(input.Intent{}, testDT)
	if g.Phase() != phase || g.PhaseFrame() != frame {
		t.Error("Expected Step to be a no-op after the session ended")
	}
}

func TestGame_EnemiesHoldFireWhileDying(t *testing.T) {
	g, _, _ := newTestGame(t)

	injectEnemy(g, 1200, 700)
	px, py := g.World().Player().Position()
	injectAsteroid(g, px, py)

	// Without the hold, the injected enemy's first shot would land
	// within its reload plus the spawn holdback, well inside this run.
	for i := 0; i < DeathDelayFrames-1; i++ {
		g.Step(input.Intent{}, testDT)
	}

	if n := len(g.World().EnemyLasers()); n != 0 {
		t.Errorf("Expected no enemy fire during the death pause, got %d lasers", n)
	}
}

func TestGame_RetreatIsCosmetic(t *testing.T) {
	g, _, _ := newTestGame(t)

	e := injectEnemy(g, 1200, 700)
	px, py := g.World().Player().Position()
	injectAsteroid(g, px, py)

	for i := 0; i < DeathDelayFrames-1; i++ {
		g.Step(input.Intent{}, testDT)
	}

	if e.Speed != -60 {
		t.Errorf("Expected the enemy eased fully into reverse at speed -60, got %v", e.Speed)
	}
	if g.Points() != 0 {
		t.Errorf("Expected no scoring while dying, got %d points", g.Points())
	}
}

func TestGame_RestartResetsEverything(t *testing.T) {
	g, _, _ := newTestGame(t)

	g.points = 17
	g.lives = 1
	g.level = 1
	g.outcome = OutcomeLoss

	g.Restart()

	if g.Points() != 0 || g.Level() != 1 || g.Lives() != 3 {
		t.Errorf("Expected a clean session, got %d points, level %d, %d lives",
			g.Points(), g.Level(), g.Lives())
	}
	if g.Phase() != PhasePlaying || g.Outcome() != OutcomeNone {
		t.Errorf("Expected PhasePlaying with no outcome, got %v / %v", g.Phase(), g.Outcome())
	}
}

func TestGame_JumpToLevel(t *testing.T) {
	g, _, _ := newTestGame(t)

	if err := g.JumpToLevel(0); err == nil {
		t.Error("Expected an error for level 0")
	}
	if err := g.JumpToLevel(3); err == nil {
		t.Error("Expected an error for a level past the last")
	}

	if err := g.JumpToLevel(2); err != nil {
		t.Fatal(err)
	}
	if g.Level() != 2 {
		t.Errorf("Expected level 2, got %d", g.Level())
	}
	if g.Points() != 20 {
		t.Errorf("Expected points snapped to the prior goal 20, got %d", g.Points())
	}

	if err := g.JumpToLevel(1); err != nil {
		t.Fatal(err)
	}
	if g.Points() != 0 {
		t.Errorf("Expected points reset at level 1, got %d", g.Points())
	}
}

func TestWorld_RefillFollowsSpawnCadence(t *testing.T) {
	cfg := testConfig()
	cfg.Levels[0].StartingAsteroids = 1
	cfg.Levels[0].AsteroidSpawnRate = 1

	g, err := NewGame(cfg, rand.New(rand.NewSource(7)), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	w := g.World()

	for i := 0; i < TargetFPS; i++ {
		w.Refill()
		if len(w.Asteroids()) != 1 {
			t.Fatalf("Expected no spawn during cooldown, got %d asteroids at call %d", len(w.Asteroids()), i+1)
		}
	}
	w.Refill()
	if len(w.Asteroids()) != 2 {
		t.Errorf("Expected a spawn once the cooldown elapsed, got %d asteroids", len(w.Asteroids()))
	}
}

func TestWorld_RefillSkipsAbsentPopulations(t *testing.T) {
	cfg := testConfig()
	cfg.Levels[0].EnemySpawnRate = 2 // no starting enemies, so no mid-level enemies either

	g, err := NewGame(cfg, rand.New(rand.NewSource(7)), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	w := g.World()

	for i := 0; i < 5*TargetFPS; i++ {
		w.Refill()
	}
	if len(w.Enemies()) != 0 {
		t.Errorf("Expected no enemies on a level that starts without them, got %d", len(w.Enemies()))
	}
}

func TestWorld_ApplyIntentOpposingKeysCancel(t *testing.T) {
	g, _, _ := newTestGame(t)
	w := g.World()
	p := w.Player()

	w.ApplyIntent(input.Intent{TurnLeft: true, TurnRight: true, Forward: true, Backward: true})
	if p.TurnRate != 0 || p.Speed != 0 {
		t.Errorf("Expected opposing keys to cancel, got turn %v speed %v", p.TurnRate, p.Speed)
	}

	w.ApplyIntent(input.Intent{TurnLeft: true, Backward: true, Fire: true})
	if p.TurnRate != object.ShipAngleRate {
		t.Errorf("Expected left turn at %v, got %v", object.ShipAngleRate, p.TurnRate)
	}
	if p.Speed != -object.ShipForwardRate {
		t.Errorf("Expected reverse at %v, got %v", -object.ShipForwardRate, p.Speed)
	}
	if !p.Firing {
		t.Error("Expected the trigger held")
	}
}
