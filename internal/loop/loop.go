package loop

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/m-siegel/space-shooter-game/internal/config"
	"github.com/m-siegel/space-shooter-game/internal/draw"
	"github.com/m-siegel/space-shooter-game/internal/input"
	"github.com/m-siegel/space-shooter-game/internal/object"
)

// Options configures a session. Zero values get sensible defaults, so
// Run(r, w, Options{}) is a complete offline game.
type Options struct {
	Config   *config.Config
	Audio    object.AudioPlayer
	TermSize draw.TermSizeFunc
	Rand     *rand.Rand
}

// Run drives a complete interactive session with the standard
// Input -> Update -> Draw cycle at 60 Hz: it owns the screen state
// machine, polls input, steps the simulation, and renders. It returns
// when the player quits or the input stream closes.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	sizeFunc := opts.TermSize
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}

	game, err := NewGame(cfg, opts.Rand, opts.Audio, nil)
	if err != nil {
		return err
	}

	stream := input.StartStream(r)
	cw := draw.NewChunkWriter(w, 0, 0)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	termW, termH, err := sizeFunc()
	if err != nil {
		return err
	}
	cols, rows := fitRegion(termW, termH, cfg)
	canvas := draw.NewCanvas(cols, rows, cfg.Width, cfg.Height)
	applyOffsets(canvas, cw, termW, termH)

	screen := ScreenTitle
	lastTime := time.Now()

	for {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := input.Poll(stream)
		if in.Quit {
			break
		}

		// ===== UPDATE PHASE =====
		screen = updateScreen(screen, game, in, dt)

		// ===== DRAW PHASE =====
		if tw, th, err := sizeFunc(); err == nil && (tw != termW || th != termH) {
			termW, termH = tw, th
			cols, rows = fitRegion(termW, termH, cfg)
			canvas.Resize(cols, rows)
			applyOffsets(canvas, cw, termW, termH)
		}

		draw.ClearScreen(cw)
		canvas.Clear()

		switch screen {
		case ScreenTitle:
			drawTitleScreen(cw, canvas)
		case ScreenInstructions:
			drawInstructionsScreen(cw, canvas)
		case ScreenPlaying, ScreenPaused:
			renderWorld(canvas, game.World())
			canvas.Render(cw)
			renderLasers(canvas, cw, game.World())
			drawPlayingHUD(cw, game)
			if screen == ScreenPaused {
				drawPausedOverlay(cw, canvas)
			}
		case ScreenWon:
			drawWonScreen(cw, canvas, game)
		case ScreenLost:
			drawLostScreen(cw, canvas, game)
		}

		if err := cw.Flush(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// updateScreen advances one frame of the outer state machine, stepping
// the simulation when appropriate, and returns the next screen.
func updateScreen(screen Screen, game *Game, in input.Intent, dt float64) Screen {
	switch screen {
	case ScreenTitle:
		if in.Start {
			return ScreenInstructions
		}

	case ScreenInstructions:
		if in.Start {
			game.Restart()
			return ScreenPlaying
		}

	case ScreenPlaying:
		if in.Pause {
			return ScreenPaused
		}
		if in.Restart {
			game.Restart()
		}
		if in.Level > 0 {
			// Out-of-range level keys are ignored.
			_ = game.JumpToLevel(in.Level)
		}
		game.Step(in, dt)
		switch game.Outcome() {
		case OutcomeWin:
			return ScreenWon
		case OutcomeLoss:
			return ScreenLost
		}

	case ScreenPaused:
		if in.Pause || in.Start {
			return ScreenPlaying
		}

	case ScreenWon, ScreenLost:
		if in.Start || in.Restart {
			game.Restart()
			return ScreenPlaying
		}
	}
	return screen
}

// fitRegion sizes the render region to the largest aspect-correct fit
// within the terminal. A terminal row is two subpixels tall, so the
// column count runs at twice the world's width-to-height ratio.
func fitRegion(termW, termH int, cfg *config.Config) (cols, rows int) {
	ratio := 2 * cfg.Width / cfg.Height

	rows = termH
	cols = int(float64(rows) * ratio)
	if cols > termW {
		cols = termW
		rows = int(float64(cols) / ratio)
	}

	if cols < 20 {
		cols = 20
	}
	if rows < 10 {
		rows = 10
	}
	return cols, rows
}

// applyOffsets centers the render region in the terminal.
func applyOffsets(canvas *draw.Canvas, cw *draw.ChunkWriter, termW, termH int) {
	offCol := (termW - canvas.TerminalWidth()) / 2
	offRow := (termH - canvas.TerminalHeight()) / 2
	if offCol < 0 {
		offCol = 0
	}
	if offRow < 0 {
		offRow = 0
	}
	canvas.SetOffset(offCol, offRow)
	cw.SetOffset(offCol, offRow)
}
