// Package draw renders the game to a terminal: a half-block pixel
// canvas scaled from world coordinates, shade characters for opacity,
// and a chunked writer tuned for SSH sessions.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Shades are fill characters from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for an intensity between 0.0
// (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	return Shades[int(intensity*float64(len(Shades)-1))]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
