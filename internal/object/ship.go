package object

import "github.com/m-siegel/space-shooter-game/internal/physics"

// Player ship tuning. Rates are per second, not per frame, so movement
// stays smooth if a frame arrives late.
const (
	ShipAngleRate   = 360.0 // Max turn rate, degrees/sec
	ShipForwardRate = 360.0 // Max forward/reverse speed, units/sec
	ShipReloadTime  = 10    // Frames between shots while the trigger is held
	ShipLaserSpeed  = 400.0

	shipWidth  = 50
	shipHeight = 38
)

// Ship is the player-controlled entity. The orchestrator writes its
// control intent (TurnRate, Speed, Firing) each frame before Update runs.
type Ship struct {
	Body

	TurnRate float64 // Current turn input, degrees/sec (signed)
	Firing   bool    // Whether the player is holding the trigger

	laserFade   int
	reloadTicks int
	lasers      *LaserList
}

// NewShip creates the player's ship at (x, y) firing into the given laser
// list with the level's laser fade rate.
func NewShip(x, y float64, lasers *LaserList, laserFade int) *Ship {
	return &Ship{
		Body:      NewBody(x, y, shipWidth, shipHeight),
		lasers:    lasers,
		laserFade: laserFade,
	}
}

// ReloadTicks returns the frames remaining until the next shot is
// permitted while the trigger is held.
func (s *Ship) ReloadTicks() int {
	return s.reloadTicks
}

// Update advances the ship one frame: turn, move, clamp to the extended
// screen bounds, then handle fire control. Never self-removes; the ship
// only leaves play when the collision resolver kills it.
func (s *Ship) Update(ctx UpdateContext) {
	s.turnAndMove(ctx)
	s.fireControl(ctx)
}

func (s *Ship) turnAndMove(ctx UpdateContext) {
	s.Angle += s.TurnRate * ctx.Delta

	dx, dy := physics.Displace(s.Angle, s.Speed, ctx.Delta)
	s.X += dx
	s.Y += dy

	// Let the ship slip offscreen so the player can feel lost for a
	// moment, but never farther than its own hide distance: reversing
	// brings it back into view immediately. Hard clamp, not a wrap.
	half := s.Diagonal / 2
	s.X = physics.Clamp(s.X, -half, ctx.Bounds.Width+half)
	s.Y = physics.Clamp(s.Y, -half, ctx.Bounds.Height+half)
}

// fireControl spaces held-trigger shots exactly ShipReloadTime frames
// apart. Releasing the trigger clears the counter, so tapping can fire
// faster than holding.
func (s *Ship) fireControl(ctx UpdateContext) {
	if !s.Firing {
		s.reloadTicks = 0
		return
	}

	s.reloadTicks--
	if s.reloadTicks > 0 {
		return
	}

	if s.lasers == nil {
		panic("object: ship fired with no laser list attached")
	}
	s.lasers.Spawn(ctx, s.X, s.Y, s.Angle, ShipLaserSpeed, s.laserFade)
	s.reloadTicks = ShipReloadTime
}
