package object

import "math/rand"

// PlaceOffscreen moves b to a random point just outside the visible
// area. The x coordinate lands anywhere in a band half a screen wider
// than the play field on each side. When that x is horizontally over
// the screen, y is pushed one to five diagonals above or below the
// edge so no part of the body shows. Otherwise y may fall anywhere in
// the screen's vertical extent, give or take a diagonal.
func PlaceOffscreen(rng *rand.Rand, b *Body, bounds Bounds) {
	w, h := bounds.Width, bounds.Height
	d := b.Diagonal

	x := -w/2 + rng.Float64()*2*w
	var y float64
	if -d/2 <= x && x <= w+d/2 {
		off := d * (1 + 4*rng.Float64())
		if rng.Intn(2) == 0 {
			y = h + off
		} else {
			y = -off
		}
	} else {
		y = -d + rng.Float64()*(h+2*d)
	}

	b.X = x
	b.Y = y
}

// CrossScreenTarget aims b at a point that carries it across the
// visible area. An axis where b sits offscreen targets a point one
// diagonal beyond the far edge. An axis where b is within the screen
// targets a random coordinate inside it.
func CrossScreenTarget(rng *rand.Rand, b *Body, bounds Bounds) (tx, ty float64) {
	w, h := bounds.Width, bounds.Height
	d := b.Diagonal

	switch {
	case b.X < 0:
		tx = w + d
	case b.X > w:
		tx = -d
	default:
		tx = rng.Float64() * w
	}

	switch {
	case b.Y < 0:
		ty = h + d
	case b.Y > h:
		ty = -d
	default:
		ty = rng.Float64() * h
	}
	return tx, ty
}
