// Package input turns a raw terminal byte stream into per-frame intent
// snapshots for the game loop.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key counts as "held" after its last
// press. Terminal auto-repeat refreshes the timestamp while a key is
// physically down.
const keyHoldDuration = 30 * time.Millisecond

// Intent is one frame's worth of player input. Movement and fire are
// level-triggered from key hold state. The rest are edge-triggered and
// true only on the frame the key arrived.
type Intent struct {
	TurnLeft  bool
	TurnRight bool
	Forward   bool
	Backward  bool
	Fire      bool

	Start   bool
	Pause   bool
	Restart bool
	Quit    bool

	// Level is a requested level jump (1-based), or 0.
	Level int
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	left    time.Time
	right   time.Time
	forward time.Time
	back    time.Time
	fire    time.Time
}

// Stream delivers input bytes via a channel and tracks hold state so
// simultaneous keys read as combined intent.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to
// the stream. The stream closes when r reaches an error or EOF.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains all available bytes without blocking and returns the
// resulting intent snapshot. Arrow-key CSI sequences map onto the same
// intents as WASD.
func Poll(s *Stream) Intent {
	now := time.Now()
	var buf []byte

	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				goto parse
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	var intent Intent
	// A closed stream means the reader is gone; quit the session.
	intent.Quit = s.closed
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.forward = now
				i += 2
				continue
			case 'B':
				s.state.back = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		applyByte(s, &intent, b, now)
	}

	intent.TurnLeft = now.Sub(s.state.left) < keyHoldDuration
	intent.TurnRight = now.Sub(s.state.right) < keyHoldDuration
	intent.Forward = now.Sub(s.state.forward) < keyHoldDuration
	intent.Backward = now.Sub(s.state.back) < keyHoldDuration
	intent.Fire = now.Sub(s.state.fire) < keyHoldDuration

	return intent
}

func applyByte(s *Stream, intent *Intent, b byte, now time.Time) {
	switch b {
	case 'a', 'A':
		s.state.left = now
	case 'd', 'D':
		s.state.right = now
	case 'w', 'W':
		s.state.forward = now
	case 's', 'S':
		s.state.back = now
	case ' ':
		s.state.fire = now
	case '\n', '\r':
		intent.Start = true
	case 'p', 'P':
		intent.Pause = true
	case 'r', 'R':
		intent.Restart = true
	case 'q', 'Q', '\x03':
		intent.Quit = true
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		intent.Level = int(b - '0')
	}
}
