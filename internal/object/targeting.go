package object

import (
	"math"
	"math/rand"

	"github.com/m-siegel/space-shooter-game/internal/physics"
)

const (
	asteroidSize        = 60
	asteroidMinVertices = 8
	asteroidMaxVertices = 11

	enemyWidth  = 50
	enemyHeight = 38

	// A fresh spawn holds its first shot this many frames beyond the
	// configured reload so it never fires the instant it appears.
	enemyFirstReload = 10

	// Reload scales with speed, floored so a stopped or retreating
	// ship keeps a sane cadence instead of firing every frame.
	enemyReloadScale   = 3
	enemyMinReload     = 50
	enemyMinLaserSpeed = 50
	enemyRetreatDecel  = 300

	fireDisabled = -1
)

// steer advances b one fixed step toward (tx, ty) and returns the heading
// of the target in radians. Each axis snaps onto the target the moment a
// full step would carry past it, so an object arrives exactly on target
// rather than oscillating around it. A negative speed walks the same line
// away from the target and never snaps.
func steer(b *Body, tx, ty, dt float64) float64 {
	dx := tx - b.X
	dy := ty - b.Y
	if dx == 0 && dy == 0 {
		return physics.Radians(b.Angle - 90)
	}
	heading := math.Atan2(dy, dx)
	step := b.Speed * dt
	b.X = stepAxis(b.X, tx, step*math.Cos(heading))
	b.Y = stepAxis(b.Y, ty, step*math.Sin(heading))
	return heading
}

// stepAxis moves pos by step along one axis, snapping to target when the
// remaining distance is within one step and the step points at the target.
func stepAxis(pos, target, step float64) float64 {
	rem := target - pos
	if rem == 0 || step == 0 {
		return pos
	}
	if math.Abs(rem) <= math.Abs(step) && rem*step >= 0 {
		return target
	}
	return pos + step
}

// Asteroid tumbles across the play field toward a target point and
// retires itself once it arrives there.
type Asteroid struct {
	Body
	TargetX  float64
	TargetY  float64
	SpinRate float64
	// Shape holds per-vertex radii as fractions of Radius, used to
	// draw an irregular outline.
	Shape []float64
}

// NewAsteroid creates an asteroid at (x, y) spinning at spinRate degrees
// per frame, with a randomized outline.
func NewAsteroid(rng *rand.Rand, x, y, spinRate float64) *Asteroid {
	n := asteroidMinVertices + rng.Intn(asteroidMaxVertices-asteroidMinVertices+1)
	shape := make([]float64, n)
	for i := range shape {
		shape[i] = 0.7 + 0.3*rng.Float64()
	}
	return &Asteroid{
		Body:     NewBody(x, y, asteroidSize, asteroidSize),
		SpinRate: spinRate,
		Shape:    shape,
	}
}

func (a *Asteroid) Update(ctx UpdateContext) {
	a.Angle += a.SpinRate
	steer(&a.Body, a.TargetX, a.TargetY, ctx.Delta)
	if a.X == a.TargetX && a.Y == a.TargetY {
		a.Kill()
	}
}

// EnemyShip chases a target point, firing backward along its direction of
// travel on a speed-dependent reload. Like an asteroid it retires when it
// reaches its target.
type EnemyShip struct {
	Body
	TargetX float64
	TargetY float64

	LaserFade  int
	LaserSpeed float64

	lasers      *LaserList
	reloadTicks int
	baseSpeed   float64
}

// NewEnemyShip creates an enemy at (x, y) moving at speed. Spawned lasers
// go into lasers with the given fade rate. reload is the configured frames
// between shots at spawn time; later shots rescale it from the ship's
// current speed.
func NewEnemyShip(x, y, speed float64, lasers *LaserList, laserFade, reload int) *EnemyShip {
	e := &EnemyShip{
		Body:      NewBody(x, y, enemyWidth, enemyHeight),
		LaserFade: laserFade,
		lasers:    lasers,
		baseSpeed: speed,
	}
	e.Speed = speed
	e.LaserSpeed = math.Max(enemyReloadScale*speed, enemyMinLaserSpeed)
	e.reloadTicks = reload + enemyFirstReload
	return e
}

func (e *EnemyShip) Update(ctx UpdateContext) {
	heading := steer(&e.Body, e.TargetX, e.TargetY, ctx.Delta)
	e.Angle = physics.Degrees(heading) + 90
	if e.X == e.TargetX && e.Y == e.TargetY {
		e.Kill()
		return
	}
	e.fireControl(ctx)
}

func (e *EnemyShip) fireControl(ctx UpdateContext) {
	if e.reloadTicks == fireDisabled {
		return
	}
	e.reloadTicks--
	if e.reloadTicks > 0 {
		return
	}
	// Lasers leave out the back, away from the direction of travel.
	e.lasers.Spawn(ctx, e.X, e.Y, e.Angle+180, e.LaserSpeed, e.LaserFade)
	e.reloadTicks = e.reloadFrames()
}

// reloadFrames derives the steady reload interval from the ship's
// current speed. The floor also covers zero and negative speeds, so a
// ship that has stopped or reversed keeps firing at the slow cadence
// rather than going quiet.
func (e *EnemyShip) reloadFrames() int {
	return int(math.Max(enemyReloadScale*e.Speed, enemyMinReload))
}

// DisableFire permanently stops the ship from shooting.
func (e *EnemyShip) DisableFire() {
	e.reloadTicks = fireDisabled
}

// Retreat eases the ship's speed down through zero until it is moving
// away from its target at its original pace.
func (e *EnemyShip) Retreat(dt float64) {
	e.Speed -= enemyRetreatDecel * dt
	if e.Speed < -e.baseSpeed {
		e.Speed = -e.baseSpeed
	}
}

// ReloadTicks reports frames until the next shot, or a negative value
// when firing is disabled.
func (e *EnemyShip) ReloadTicks() int { return e.reloadTicks }
