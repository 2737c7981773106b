package loop

import "github.com/m-siegel/space-shooter-game/internal/physics"

// Broad-phase tuning. Entities roam up to five diagonals offscreen, so
// the grid carries a generous margin; positions beyond it clamp to the
// border cells. The cell size exceeds the largest collision distance of
// any entity pair, which keeps every potential hit inside the 3x3
// neighborhood the grid scans.
const (
	gridMargin   = 500
	gridCellSize = 128
)

// PlayerHit checks the player against asteroids, enemy lasers, and
// enemy ships at their previous-frame positions; callers run it before
// anything moves. On a hit every overlapping object is retired along
// with the player, and an explosion is left at the player's position.
func (w *World) PlayerHit() bool {
	if !w.player.Alive() {
		return false
	}

	px, py := w.player.Position()
	pr := w.player.Radius
	hit := false

	for _, a := range w.asteroids {
		if physics.CirclesOverlap(px, py, pr, a.X, a.Y, a.Radius) {
			a.Kill()
			hit = true
		}
	}
	for _, e := range w.enemies {
		if physics.CirclesOverlap(px, py, pr, e.X, e.Y, e.Radius) {
			e.Kill()
			hit = true
		}
	}
	for _, l := range w.enemyLasers.Lasers() {
		if physics.CirclesOverlap(px, py, pr, l.X, l.Y, l.Radius) {
			l.Kill()
			hit = true
		}
	}

	if hit {
		w.player.Kill()
		w.Explode(px, py)
	}
	return hit
}

// ScoreLaserHits resolves the player's lasers against asteroids and
// enemy ships, again at previous-frame positions, and returns the
// points earned. Lasers are walked in reverse so retirement mid-scan
// stays safe. Every hit target is retired behind an explosion, and a
// laser that hit anything is spent.
func (w *World) ScoreLaserHits() int {
	lasers := w.playerLasers.Lasers()
	if len(lasers) == 0 {
		return 0
	}

	// One grid holds both target populations; enemy indices are offset
	// past the asteroid range.
	w.grid.Clear()
	for i, a := range w.asteroids {
		if a.Alive() {
			w.grid.Insert(a.X, a.Y, i)
		}
	}
	base := len(w.asteroids)
	for i, e := range w.enemies {
		if e.Alive() {
			w.grid.Insert(e.X, e.Y, base+i)
		}
	}

	asteroidsHit, enemiesHit := 0, 0
	for i := len(lasers) - 1; i >= 0; i-- {
		l := lasers[i]
		if !l.Alive() {
			continue
		}

		spent := false
		w.grid.QueryAround(l.X, l.Y, func(idx int) bool {
			if idx < base {
				a := w.asteroids[idx]
				if a.Alive() && physics.CirclesOverlap(l.X, l.Y, l.Radius, a.X, a.Y, a.Radius) {
					a.Kill()
					w.Explode(a.X, a.Y)
					asteroidsHit++
					spent = true
				}
			} else {
				e := w.enemies[idx-base]
				if e.Alive() && physics.CirclesOverlap(l.X, l.Y, l.Radius, e.X, e.Y, e.Radius) {
					e.Kill()
					w.Explode(e.X, e.Y)
					enemiesHit++
					spent = true
				}
			}
			return false
		})
		if spent {
			l.Kill()
		}
	}

	return AsteroidPoints*asteroidsHit + EnemyPoints*enemiesHit
}
