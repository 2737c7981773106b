package loop

import (
	"math"

	"github.com/m-siegel/space-shooter-game/internal/draw"
	"github.com/m-siegel/space-shooter-game/internal/object"
	"github.com/m-siegel/space-shooter-game/internal/physics"
)

// Explosions render as a ring expanding to this world-unit radius over
// the effect's lifetime.
const (
	explosionMaxRadius  = 45.0
	explosionRingPoints = 16
)

// renderWorld rasterizes the ships, asteroids, and explosions onto the
// canvas. Lasers are overlaid separately by renderLasers after the
// canvas has been rendered, so their shade characters stay on top.
//
// The simulation's origin is bottom-left with y up, the terminal's is
// top-left with y down, so every world point flips before drawing.
func renderWorld(c *draw.Canvas, w *World) {
	h := w.Bounds().Height

	if p := w.Player(); p.Alive() {
		drawShipTriangle(c, h, p.X, p.Y, p.Angle, p.Diagonal/2)
	}

	for _, e := range w.Enemies() {
		drawShipTriangle(c, h, e.X, e.Y, e.Angle, e.Diagonal/2)
	}

	for _, a := range w.Asteroids() {
		drawAsteroid(c, h, a)
	}

	for _, x := range w.Explosions() {
		drawExplosion(c, h, x)
	}
}

// renderLasers overlays both laser populations as shade characters so
// laser opacity is visible in a monochrome terminal.
func renderLasers(c *draw.Canvas, cw *draw.ChunkWriter, w *World) {
	h := w.Bounds().Height
	drawLasers(c, cw, h, w.PlayerLasers())
	drawLasers(c, cw, h, w.EnemyLasers())
}

// drawShipTriangle draws a ship as an isosceles triangle pointing along
// its sprite angle.
func drawShipTriangle(c *draw.Canvas, worldH, x, y, angle, size float64) {
	ux, uy := physics.Heading(angle)
	px, py := uy, -ux // Perpendicular

	halfW := size * 0.6
	pts := c.BorrowPoints(3)
	pts[0] = draw.Point{X: x + ux*size, Y: worldH - (y + uy*size)}
	pts[1] = draw.Point{X: x - ux*size*0.7 + px*halfW, Y: worldH - (y - uy*size*0.7 + py*halfW)}
	pts[2] = draw.Point{X: x - ux*size*0.7 - px*halfW, Y: worldH - (y - uy*size*0.7 - py*halfW)}
	c.DrawPolygon(pts, true)
}

// drawAsteroid draws the asteroid's irregular outline, rotated by its
// current spin angle.
func drawAsteroid(c *draw.Canvas, worldH float64, a *object.Asteroid) {
	n := len(a.Shape)
	if n < 3 {
		return
	}

	base := physics.Radians(a.Angle)
	step := 2 * math.Pi / float64(n)

	pts := c.BorrowPoints(n)
	for i := 0; i < n; i++ {
		r := a.Radius * a.Shape[i]
		theta := base + float64(i)*step
		pts[i] = draw.Point{
			X: a.X + r*math.Cos(theta),
			Y: worldH - (a.Y + r*math.Sin(theta)),
		}
	}
	c.DrawPolygon(pts, false)
}

// drawExplosion draws an expanding ring of pixels.
func drawExplosion(c *draw.Canvas, worldH float64, x *object.Explosion) {
	r := explosionMaxRadius * x.Progress()
	for i := 0; i < explosionRingPoints; i++ {
		theta := 2 * math.Pi * float64(i) / explosionRingPoints
		c.SetFloat(x.X+r*math.Cos(theta), worldH-(x.Y+r*math.Sin(theta)))
	}
}

// drawLasers overlays each laser as a single shade character whose
// darkness tracks the laser's remaining opacity.
func drawLasers(c *draw.Canvas, cw *draw.ChunkWriter, worldH float64, lasers []*object.Laser) {
	for _, l := range lasers {
		ch := draw.ShadeLevel(float64(l.Opacity()) / 255)
		if ch == ' ' {
			continue
		}
		col, row := c.LogicalToTerminal(l.X, worldH-l.Y)
		if col < 1 || col > c.TerminalWidth() || row < 1 || row > c.TerminalHeight() {
			continue
		}
		cw.WriteAt(col, row, string(ch))
	}
}
