package loop

import (
	"fmt"

	"github.com/m-siegel/space-shooter-game/internal/draw"
)

// Screen is the outer view state around the simulation: which full
// screen the session is showing. Only ScreenPlaying steps the game.
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenInstructions
	ScreenPlaying
	ScreenPaused
	ScreenWon
	ScreenLost
)

func centerText(cw *draw.ChunkWriter, centerX, row int, s string) {
	col := centerX - len(s)/2
	if col < 1 {
		col = 1
	}
	cw.WriteAt(col, row, s)
}

// drawTitleScreen draws the welcome screen.
func drawTitleScreen(cw *draw.ChunkWriter, c *draw.Canvas) {
	cx := c.TerminalWidth() / 2
	cy := c.TerminalHeight() / 2

	centerText(cw, cx, cy-2, "S P I N   &   S H O O T")
	centerText(cw, cx, cy+1, "Press ENTER for instructions")
	centerText(cw, cx, cy+3, "Q to quit")
}

// drawInstructionsScreen lists the controls and the goal.
func drawInstructionsScreen(cw *draw.ChunkWriter, c *draw.Canvas) {
	cx := c.TerminalWidth() / 2
	cy := c.TerminalHeight() / 2

	centerText(cw, cx, cy-5, "HOW TO PLAY")
	centerText(cw, cx, cy-3, "A/D or Left/Right arrows: spin your ship")
	centerText(cw, cx, cy-2, "W/S or Up/Down arrows: fly forward / reverse")
	centerText(cw, cx, cy-1, "SPACE: shoot (tap for a faster rate)")
	centerText(cw, cx, cy, "P: pause    R: restart    Q: quit")
	centerText(cw, cx, cy+2, "Destroy asteroids and enemy ships to reach each level's points goal.")
	centerText(cw, cx, cy+3, "Anything that touches your ship destroys it.")
	centerText(cw, cx, cy+5, "Press ENTER to play")
}

// drawPlayingHUD draws the score readout in the top-left corner.
func drawPlayingHUD(cw *draw.ChunkWriter, g *Game) {
	cw.WriteAt(2, 1, fmt.Sprintf("Points: %d", g.Points()))
	cw.WriteAt(2, 2, fmt.Sprintf("Level: %d", g.Level()))
	cw.WriteAt(2, 3, fmt.Sprintf("Extra Lives: %d", g.Lives()))
}

// drawPausedOverlay draws on top of the frozen playfield.
func drawPausedOverlay(cw *draw.ChunkWriter, c *draw.Canvas) {
	cx := c.TerminalWidth() / 2
	cy := c.TerminalHeight() / 2

	centerText(cw, cx, cy, "P A U S E D")
	centerText(cw, cx, cy+2, "Press P to resume")
}

// drawWonScreen draws the session-won screen.
func drawWonScreen(cw *draw.ChunkWriter, c *draw.Canvas, g *Game) {
	cx := c.TerminalWidth() / 2
	cy := c.TerminalHeight() / 2

	centerText(cw, cx, cy-2, "Y O U   W O N !")
	centerText(cw, cx, cy, fmt.Sprintf("Final score: %d", g.Points()))
	centerText(cw, cx, cy+2, "Press ENTER to play again, Q to quit")
}

// drawLostScreen draws the game-over screen.
func drawLostScreen(cw *draw.ChunkWriter, c *draw.Canvas, g *Game) {
	cx := c.TerminalWidth() / 2
	cy := c.TerminalHeight() / 2

	centerText(cw, cx, cy-2, "G A M E   O V E R")
	centerText(cw, cx, cy, fmt.Sprintf("Final score: %d", g.Points()))
	centerText(cw, cx, cy+2, "Press ENTER to try again, Q to quit")
}
