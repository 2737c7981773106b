package object

const explosionFrames = 36

// Explosion is a short-lived visual marker left where something was
// destroyed. It has no body and takes part in no collisions.
type Explosion struct {
	X, Y  float64
	frame int
	dead  bool
}

func NewExplosion(x, y float64) *Explosion {
	return &Explosion{X: x, Y: y}
}

func (e *Explosion) Update(ctx UpdateContext) {
	e.frame++
	if e.frame >= explosionFrames {
		e.dead = true
	}
}

func (e *Explosion) Alive() bool { return !e.dead }

// Progress reports how far through its animation the explosion is, in
// [0, 1].
func (e *Explosion) Progress() float64 {
	return float64(e.frame) / float64(explosionFrames)
}
