package object

import (
	"math"
	"math/rand"
	"testing"
)

var testBounds = Bounds{Width: 1400, Height: 800}

const testDT = 1.0 / 60

func testCtx() UpdateContext {
	return UpdateContext{Delta: testDT, Bounds: testBounds, Audio: NopAudio{}}
}

// A steering body must land exactly on its target in finitely many
// steps, with no residual floating error, despite fractional stepping.
func TestSteer_TerminatesExactlyOnTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		b := NewBody(rng.Float64()*1400, rng.Float64()*800, 60, 60)
		b.Speed = 50 + rng.Float64()*300
		tx := rng.Float64() * 1400
		ty := rng.Float64() * 800

		steps := 0
		for b.X != tx || b.Y != ty {
			steer(&b, tx, ty, testDT)
			steps++
			if steps > 100000 {
				t.Fatalf("Steering never reached target: pos (%v, %v), target (%v, %v)", b.X, b.Y, tx, ty)
			}
		}
		if b.X != tx || b.Y != ty {
			t.Fatalf("Expected exact arrival, got (%v, %v) for target (%v, %v)", b.X, b.Y, tx, ty)
		}
	}
}

func TestSteer_NeverOvershoots(t *testing.T) {
	b := NewBody(0, 0, 60, 60)
	b.Speed = 300
	tx, ty := 500.0, 200.0

	prev := math.Hypot(tx-b.X, ty-b.Y)
	for i := 0; i < 10000 && (b.X != tx || b.Y != ty); i++ {
		steer(&b, tx, ty, testDT)
		d := math.Hypot(tx-b.X, ty-b.Y)
		if d > prev+1e-9 {
			t.Fatalf("Distance to target grew from %v to %v at step %d", prev, d, i)
		}
		prev = d
	}
}

// A negative speed walks away from the target and must never snap onto it.
func TestStepAxis_NegativeSpeedNeverSnaps(t *testing.T) {
	b := NewBody(90, 0, 60, 60)
	b.Speed = -50
	tx, ty := 100.0, 0.0

	for i := 0; i < 1000; i++ {
		steer(&b, tx, ty, testDT)
		if b.X == tx {
			t.Fatalf("Retreating body snapped onto its target at step %d", i)
		}
	}
	if b.X >= 90 {
		t.Errorf("Expected retreating body to move away from target, x = %v", b.X)
	}
}

func TestAsteroid_RetiresOnArrival(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := NewAsteroid(rng, 100, 100, 3)
	a.Speed = 200
	a.TargetX, a.TargetY = 400, 300

	ctx := testCtx()
	for i := 0; i < 100000 && a.Alive(); i++ {
		a.Update(ctx)
	}

	if a.Alive() {
		t.Fatal("Expected asteroid to retire after reaching its target")
	}
	if a.X != a.TargetX || a.Y != a.TargetY {
		t.Errorf("Expected retirement exactly at target, got (%v, %v)", a.X, a.Y)
	}
}

func TestAsteroid_SpinsEachFrame(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := NewAsteroid(rng, 100, 100, 5)
	a.Speed = 10
	a.TargetX, a.TargetY = 10000, 10000

	ctx := testCtx()
	before := a.Angle
	for i := 0; i < 10; i++ {
		a.Update(ctx)
	}
	if got := a.Angle - before; got != 50 {
		t.Errorf("Expected 50 degrees of spin over 10 frames, got %v", got)
	}
}

func TestEnemyShip_FirstShotAfterConfiguredReload(t *testing.T) {
	lasers := NewLaserList(SoundEnemyShot)
	e := NewEnemyShip(100, 100, 100, lasers, 40, 10)
	e.TargetX, e.TargetY = 100000, 0

	ctx := testCtx()
	frames := 0
	for lasers.Len() == 0 {
		e.Update(ctx)
		frames++
		if frames > 1000 {
			t.Fatal("Enemy never fired")
		}
	}

	// Configured reload plus the fresh-spawn holdback
	if frames != 20 {
		t.Errorf("Expected first shot on frame 20, got frame %d", frames)
	}
}

func TestEnemyShip_ReloadRescalesFromSpeed(t *testing.T) {
	lasers := NewLaserList(SoundEnemyShot)
	e := NewEnemyShip(100, 100, 100, lasers, 40, 10)
	e.TargetX, e.TargetY = 100000, 0

	ctx := testCtx()
	for lasers.Len() == 0 {
		e.Update(ctx)
	}

	// 3x speed, well above the floor
	if got := e.ReloadTicks(); got != 300 {
		t.Errorf("Expected reload of 300 frames after firing at speed 100, got %d", got)
	}
}

func TestEnemyShip_ReloadFloorsForSlowShips(t *testing.T) {
	lasers := NewLaserList(SoundEnemyShot)
	e := NewEnemyShip(100, 100, 5, lasers, 40, 0)
	e.TargetX, e.TargetY = 100000, 0

	ctx := testCtx()
	for lasers.Len() == 0 {
		e.Update(ctx)
	}

	if got := e.ReloadTicks(); got != 50 {
		t.Errorf("Expected floored reload of 50 frames at speed 5, got %d", got)
	}
}

func TestEnemyShip_DisableFireIsPermanent(t *testing.T) {
	lasers := NewLaserList(SoundEnemyShot)
	e := NewEnemyShip(100, 100, 100, lasers, 40, 0)
	e.TargetX, e.TargetY = 100000, 0
	e.DisableFire()

	ctx := testCtx()
	for i := 0; i < 2000; i++ {
		e.Update(ctx)
	}

	if lasers.Len() != 0 {
		t.Errorf("Expected no shots after DisableFire, got %d", lasers.Len())
	}
}

func TestEnemyShip_LaserSpeedFloor(t *testing.T) {
	lasers := NewLaserList(SoundEnemyShot)

	fast := NewEnemyShip(0, 0, 100, lasers, 40, 0)
	if fast.LaserSpeed != 300 {
		t.Errorf("Expected laser speed 300 at ship speed 100, got %v", fast.LaserSpeed)
	}

	slow := NewEnemyShip(0, 0, 10, lasers, 40, 0)
	if slow.LaserSpeed != 50 {
		t.Errorf("Expected floored laser speed 50 at ship speed 10, got %v", slow.LaserSpeed)
	}
}

func TestEnemyShip_RetreatReversesToBaseSpeed(t *testing.T) {
	lasers := NewLaserList(SoundEnemyShot)
	e := NewEnemyShip(100, 100, 80, lasers, 40, 0)

	for i := 0; i < 600; i++ {
		e.Retreat(testDT)
	}

	if e.Speed != -80 {
		t.Errorf("Expected retreat to settle at -80, got %v", e.Speed)
	}
}

func TestEnemyShip_RetiresOnArrival(t *testing.T) {
	lasers := NewLaserList(SoundEnemyShot)
	e := NewEnemyShip(0, 0, 200, lasers, 40, 10000)
	e.TargetX, e.TargetY = 50, 50

	ctx := testCtx()
	for i := 0; i < 100000 && e.Alive(); i++ {
		e.Update(ctx)
	}

	if e.Alive() {
		t.Fatal("Expected enemy to retire after reaching its target")
	}
}
