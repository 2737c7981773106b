// Package object implements the game entities: the player ship, lasers,
// asteroids, enemy ships, and explosion effects. Entities share a Body
// kinematics component instead of an inheritance hierarchy; behavior
// variants (steering, spin, fire control) are composed per type, and a
// Kind tag lets the collision resolver and renderer dispatch without
// type switches on interfaces.
package object

import "math"

// Kind identifies the behavioral variant of an entity.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindEnemy
	KindLaser
	KindExplosion
)

// Sound identifies a one-shot sound effect the simulation can trigger.
type Sound int

const (
	SoundShot Sound = iota
	SoundEnemyShot
	SoundExplosion
	SoundLevelUp
	SoundLifeLost
	SoundWin
	SoundGameOver
)

// AudioPlayer plays one-shot sound effects. Implementations must tolerate
// a sound being requested while a previous instance of it is still
// playing (play-once semantics: do not stack a second copy).
type AudioPlayer interface {
	Play(s Sound)
}

// NopAudio is an AudioPlayer that discards all requests. Used in tests
// and for sessions without an audio device (e.g. over SSH).
type NopAudio struct{}

// Play implements AudioPlayer.
func (NopAudio) Play(Sound) {}

// Bounds is the logical screen rectangle entities move within.
// The origin is the bottom-left corner; y increases upward.
type Bounds struct {
	Width  float64
	Height float64
}

// UpdateContext carries the per-frame information entities need to advance.
type UpdateContext struct {
	Delta  float64 // Seconds since the previous frame
	Bounds Bounds
	Audio  AudioPlayer
}

// Body is the shared kinematics component: position, orientation, speed,
// and the visual extent used for offscreen and collision tests.
//
// Angle is in degrees with 0 pointing North (up the screen); arithmetic on
// it is unbounded, it is only normalized for display. Diagonal is the
// sprite's corner-to-corner measurement, the distance at which the sprite
// is fully hidden offscreen at any rotation.
type Body struct {
	X, Y     float64
	Angle    float64
	Speed    float64
	Diagonal float64
	Radius   float64 // Collision radius
	dead     bool
}

// NewBody creates a body for a sprite of the given visual extent.
// Width and height must be positive: the derived diagonal is what makes
// offscreen placement well defined.
func NewBody(x, y, width, height float64) Body {
	if width <= 0 || height <= 0 {
		panic("object: body requires positive visual extent")
	}
	return Body{
		X:        x,
		Y:        y,
		Diagonal: math.Hypot(width, height),
		Radius:   (width + height) / 4,
	}
}

// Alive reports whether the entity is still in play.
func (b *Body) Alive() bool {
	return !b.dead
}

// Kill marks the entity for removal at the end-of-frame sweep.
func (b *Body) Kill() {
	b.dead = true
}

// Position returns the entity's center.
func (b *Body) Position() (x, y float64) {
	return b.X, b.Y
}

// DisplayAngle returns the angle normalized to [0, 360) for rendering.
// Movement math uses the unbounded Angle directly.
func (b *Body) DisplayAngle() float64 {
	a := math.Mod(b.Angle, 360)
	if a < 0 {
		a += 360
	}
	return a
}
