package loop

import (
	"math/rand"

	"github.com/m-siegel/space-shooter-game/internal/config"
	"github.com/m-siegel/space-shooter-game/internal/input"
	"github.com/m-siegel/space-shooter-game/internal/object"
	"github.com/m-siegel/space-shooter-game/internal/physics"
)

// EffectFactory builds the effect left behind where something was
// destroyed. The simulation only records and ages effects; how they
// look is the renderer's business.
type EffectFactory interface {
	Explosion(x, y float64) *object.Explosion
}

// animationFactory is the default EffectFactory.
type animationFactory struct{}

func (animationFactory) Explosion(x, y float64) *object.Explosion {
	return object.NewExplosion(x, y)
}

// World holds one level attempt's entity populations and advances them.
// Membership changes only through the designated phases: the collision
// resolver kills, Refill spawns, and Advance sweeps the dead at the end
// of the frame.
type World struct {
	rng     *rand.Rand
	bounds  object.Bounds
	audio   object.AudioPlayer
	effects EffectFactory

	level config.Level
	spin  config.Range

	player       *object.Ship
	playerLasers *object.LaserList
	enemyLasers  *object.LaserList
	asteroids    []*object.Asteroid
	enemies      []*object.EnemyShip
	explosions   []*object.Explosion

	asteroidCooldown int
	enemyCooldown    int

	grid *physics.SpatialGrid
}

// NewWorld builds a fresh attempt for the given level: the player at
// screen center and the level's starting populations placed offscreen.
func NewWorld(rng *rand.Rand, bounds object.Bounds, spin config.Range, level config.Level, audio object.AudioPlayer, effects EffectFactory) *World {
	w := &World{
		rng:          rng,
		bounds:       bounds,
		audio:        audio,
		effects:      effects,
		level:        level,
		spin:         spin,
		playerLasers: object.NewLaserList(object.SoundShot),
		enemyLasers:  object.NewLaserList(object.SoundEnemyShot),
		grid:         physics.NewSpatialGrid(bounds.Width, bounds.Height, gridMargin, gridCellSize),
	}

	w.player = object.NewShip(bounds.Width/2, bounds.Height/2, w.playerLasers, level.PlayerLaserFade)

	for i := 0; i < level.StartingAsteroids; i++ {
		w.spawnAsteroid()
	}
	for i := 0; i < level.StartingEnemies; i++ {
		w.spawnEnemy()
	}

	w.asteroidCooldown = spawnInterval(level.AsteroidSpawnRate)
	w.enemyCooldown = spawnInterval(level.EnemySpawnRate)

	return w
}

// spawnInterval converts a spawns-per-second rate into a frame count,
// or 0 when the rate disables spawning.
func spawnInterval(rate float64) int {
	if rate <= 0 {
		return 0
	}
	return int(TargetFPS / rate)
}

func (w *World) spawnAsteroid() {
	a := object.NewAsteroid(w.rng, 0, 0, float64(w.spin.Sample(w.rng)))
	object.PlaceOffscreen(w.rng, &a.Body, w.bounds)
	a.Speed = float64(w.level.AsteroidSpeed.Sample(w.rng))
	a.TargetX, a.TargetY = object.CrossScreenTarget(w.rng, &a.Body, w.bounds)
	w.asteroids = append(w.asteroids, a)
}

func (w *World) spawnEnemy() {
	speed := float64(w.level.EnemySpeed.Sample(w.rng))
	e := object.NewEnemyShip(0, 0, speed, w.enemyLasers, w.level.EnemyLaserFade, w.level.EnemyReload)
	object.PlaceOffscreen(w.rng, &e.Body, w.bounds)
	e.TargetX, e.TargetY = w.player.Position()
	w.enemies = append(w.enemies, e)
}

// Refill tops up the populations on the level's spawn cadence. Levels
// that start without a population never spawn it mid-level.
func (w *World) Refill() {
	if w.level.StartingAsteroids > 0 && w.level.AsteroidSpawnRate > 0 {
		if w.asteroidCooldown > 0 {
			w.asteroidCooldown--
		} else {
			w.spawnAsteroid()
			w.asteroidCooldown = spawnInterval(w.level.AsteroidSpawnRate)
		}
	}
	if w.level.StartingEnemies > 0 && w.level.EnemySpawnRate > 0 {
		if w.enemyCooldown > 0 {
			w.enemyCooldown--
		} else {
			w.spawnEnemy()
			w.enemyCooldown = spawnInterval(w.level.EnemySpawnRate)
		}
	}
}

// RetargetEnemies points every enemy at the player's current, about to
// be previous, position. Targets trail the ship by a frame, which is
// what makes dodging possible. Once the player is dead targets freeze,
// so a retreating enemy backs away from the last place it saw the ship.
func (w *World) RetargetEnemies() {
	if !w.player.Alive() {
		return
	}
	px, py := w.player.Position()
	for _, e := range w.enemies {
		e.TargetX, e.TargetY = px, py
	}
}

// ApplyIntent translates the input snapshot into the player ship's
// control state. Opposing keys cancel out.
func (w *World) ApplyIntent(in input.Intent) {
	p := w.player
	p.TurnRate = 0
	p.Speed = 0

	if in.TurnLeft && !in.TurnRight {
		p.TurnRate = object.ShipAngleRate
	}
	if in.TurnRight && !in.TurnLeft {
		p.TurnRate = -object.ShipAngleRate
	}
	if in.Forward && !in.Backward {
		p.Speed = object.ShipForwardRate
	}
	if in.Backward && !in.Forward {
		p.Speed = -object.ShipForwardRate
	}
	p.Firing = in.Fire
}

// RetreatEnemies eases every surviving enemy into reverse. Purely
// cosmetic; it runs only while the attempt is already lost.
func (w *World) RetreatEnemies(dt float64) {
	for _, e := range w.enemies {
		e.Retreat(dt)
	}
}

// DisableEnemyFire permanently silences every enemy's fire control.
func (w *World) DisableEnemyFire() {
	for _, e := range w.enemies {
		e.DisableFire()
	}
}

// Explode drops an effect at (x, y) and plays the explosion sound. It
// retires nothing itself.
func (w *World) Explode(x, y float64) {
	w.explosions = append(w.explosions, w.effects.Explosion(x, y))
	w.audio.Play(object.SoundExplosion)
}

// Advance moves every population one frame in fixed order, then sweeps
// out members retired this frame. Collisions must already have been
// resolved: movement comes strictly after, so retired entities were
// overlapping at positions the player actually saw.
func (w *World) Advance(dt float64) {
	ctx := object.UpdateContext{Delta: dt, Bounds: w.bounds, Audio: w.audio}

	if w.player.Alive() {
		w.player.Update(ctx)
	}

	w.playerLasers.Advance(ctx)

	keptA := w.asteroids[:0]
	for _, a := range w.asteroids {
		if !a.Alive() {
			continue
		}
		a.Update(ctx)
		if a.Alive() {
			keptA = append(keptA, a)
		}
	}
	clearTailAsteroids(w.asteroids, len(keptA))
	w.asteroids = keptA

	keptE := w.enemies[:0]
	for _, e := range w.enemies {
		if !e.Alive() {
			continue
		}
		e.Update(ctx)
		if e.Alive() {
			keptE = append(keptE, e)
		}
	}
	clearTailEnemies(w.enemies, len(keptE))
	w.enemies = keptE

	w.enemyLasers.Advance(ctx)

	keptX := w.explosions[:0]
	for _, x := range w.explosions {
		x.Update(ctx)
		if x.Alive() {
			keptX = append(keptX, x)
		}
	}
	clearTailExplosions(w.explosions, len(keptX))
	w.explosions = keptX
}

// Zero the compacted tails so dropped entities can be collected.

func clearTailAsteroids(s []*object.Asteroid, from int) {
	for i := from; i < len(s); i++ {
		s[i] = nil
	}
}

func clearTailEnemies(s []*object.EnemyShip, from int) {
	for i := from; i < len(s); i++ {
		s[i] = nil
	}
}

func clearTailExplosions(s []*object.Explosion, from int) {
	for i := from; i < len(s); i++ {
		s[i] = nil
	}
}

// Read-only views for the renderer and tests. Callers must not mutate
// membership; retirement goes through Kill and the next Advance.

func (w *World) Player() *object.Ship            { return w.player }
func (w *World) Asteroids() []*object.Asteroid   { return w.asteroids }
func (w *World) Enemies() []*object.EnemyShip    { return w.enemies }
func (w *World) PlayerLasers() []*object.Laser   { return w.playerLasers.Lasers() }
func (w *World) EnemyLasers() []*object.Laser    { return w.enemyLasers.Lasers() }
func (w *World) Explosions() []*object.Explosion { return w.explosions }
func (w *World) Bounds() object.Bounds           { return w.bounds }
