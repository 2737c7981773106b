package object

import "github.com/m-siegel/space-shooter-game/internal/physics"

// Laser fade/retirement tuning. A laser holds full opacity until
// fadeStartAge, with a gentle pre-fade over the preFadeFrames frames
// before that, so a laser that outlives its useful range never vanishes
// abruptly at full brightness.
const (
	laserFadeStartAge = 60 // Frames until the full fade rate applies
	laserPreFadeAge   = laserFadeStartAge - 10
	visibilityFloor   = 20 // Opacity at or below this retires the laser
)

// Visual extent of a laser sprite in logical units.
const (
	laserWidth  = 5
	laserHeight = 27
)

// Laser is a projectile with a fixed heading. It does not steer: the
// heading is locked at creation and the laser travels until it collides
// or fades out.
type Laser struct {
	Body
	dirX, dirY float64 // Fixed heading unit vector
	age        int     // Frames since creation
	fadeRate   int     // Opacity decrement per frame after fade start; 0 = never fades
	opacity    int
}

// NewLaser creates a laser at (x, y) traveling along the sprite angle.
// fadeRate outside [0, 255] is clamped rather than rejected; it comes
// from level configuration, not code.
func NewLaser(x, y, angleDeg, speed float64, fadeRate int) *Laser {
	if fadeRate < 0 {
		fadeRate = 0
	} else if fadeRate > 255 {
		fadeRate = 255
	}

	l := &Laser{
		Body:     NewBody(x, y, laserWidth, laserHeight),
		fadeRate: fadeRate,
		opacity:  255,
	}
	l.Angle = angleDeg
	l.Speed = speed
	l.dirX, l.dirY = physics.Heading(angleDeg)
	return l
}

// Opacity returns the laser's current opacity in [0, 255].
func (l *Laser) Opacity() int {
	return l.opacity
}

// Age returns the number of frames the laser has existed.
func (l *Laser) Age() int {
	return l.age
}

// Update advances the laser one frame: move along the fixed heading,
// then age and fade. Returns true once the laser should be retired.
func (l *Laser) Update(ctx UpdateContext) bool {
	l.age++

	l.X += l.dirX * l.Speed * ctx.Delta
	l.Y += l.dirY * l.Speed * ctx.Delta

	// A nearly-invisible laser destroying something looks wrong, so the
	// visibility floor retires it before the fade fully completes.
	if l.opacity <= visibilityFloor {
		l.Kill()
	}

	switch {
	case l.age > laserFadeStartAge:
		l.opacity -= l.fadeRate
	case l.age > laserPreFadeAge:
		l.opacity -= l.fadeRate / 3
	}
	if l.opacity < 0 {
		l.opacity = 0
		l.Kill()
	}

	return !l.Alive()
}

// LaserList owns a collection of live lasers: it spawns them with their
// fire sound, advances them each frame, and drops retired ones.
type LaserList struct {
	lasers []*Laser
	sound  Sound
}

// NewLaserList creates an empty laser collection whose spawns trigger
// the given one-shot sound.
func NewLaserList(sound Sound) *LaserList {
	return &LaserList{sound: sound}
}

// Spawn adds a laser and plays the list's fire sound.
func (ll *LaserList) Spawn(ctx UpdateContext, x, y, angleDeg, speed float64, fadeRate int) *Laser {
	l := NewLaser(x, y, angleDeg, speed, fadeRate)
	ll.lasers = append(ll.lasers, l)
	if ctx.Audio != nil {
		ctx.Audio.Play(ll.sound)
	}
	return l
}

// Advance updates every live laser and compacts out the ones retired by
// fade-out or by the collision resolver.
func (ll *LaserList) Advance(ctx UpdateContext) {
	kept := ll.lasers[:0]
	for _, l := range ll.lasers {
		if !l.Alive() {
			continue
		}
		if remove := l.Update(ctx); !remove {
			kept = append(kept, l)
		}
	}
	// Zero the tail so dropped lasers can be collected.
	for i := len(kept); i < len(ll.lasers); i++ {
		ll.lasers[i] = nil
	}
	ll.lasers = kept
}

// Lasers returns the live lasers. Callers must not mutate membership;
// retirement goes through Laser.Kill and the next Advance.
func (ll *LaserList) Lasers() []*Laser {
	return ll.lasers
}

// Len returns the number of lasers currently in the list, including any
// killed this frame but not yet swept.
func (ll *LaserList) Len() int {
	return len(ll.lasers)
}

// Clear drops all lasers, for level reinitialization.
func (ll *LaserList) Clear() {
	for i := range ll.lasers {
		ll.lasers[i] = nil
	}
	ll.lasers = ll.lasers[:0]
}
