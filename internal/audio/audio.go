// Package audio synthesizes the game's one-shot sound effects and
// plays them through the system speaker. There are no sound assets;
// every clip is generated at startup from simple oscillators.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/m-siegel/space-shooter-game/internal/object"
)

const sampleRate = beep.SampleRate(44100)

// Speaker plays synthesized one-shot effects. It implements
// object.AudioPlayer: a sound requested while a previous instance of
// the same sound is still audible is dropped, not stacked.
type Speaker struct {
	mixer  *beep.Mixer
	clips  map[object.Sound][][2]float64
	active map[object.Sound]*clipStreamer
}

// NewSpeaker initializes the audio device and synthesizes all clips.
// Callers without a usable audio device should fall back to
// object.NopAudio.
func NewSpeaker() (*Speaker, error) {
	sp := &Speaker{
		mixer:  &beep.Mixer{},
		clips:  synthClips(),
		active: make(map[object.Sound]*clipStreamer),
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return nil, err
	}
	speaker.Play(sp.mixer)
	return sp, nil
}

// Play implements object.AudioPlayer.
func (sp *Speaker) Play(s object.Sound) {
	clip, ok := sp.clips[s]
	if !ok {
		return
	}

	// The mixer is streamed from the speaker's own goroutine, so all
	// mutation happens under the speaker lock.
	speaker.Lock()
	defer speaker.Unlock()

	if cur := sp.active[s]; cur != nil && !cur.done() {
		return
	}
	cs := &clipStreamer{samples: clip}
	sp.active[s] = cs
	sp.mixer.Add(cs)
}

// Close silences everything. The underlying device stays open; beep
// offers no per-speaker teardown.
func (sp *Speaker) Close() {
	speaker.Lock()
	defer speaker.Unlock()
	sp.mixer.Clear()
	for s := range sp.active {
		delete(sp.active, s)
	}
}

// clipStreamer streams a precomputed stereo buffer once.
type clipStreamer struct {
	samples [][2]float64
	pos     int
}

func (cs *clipStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if cs.pos >= len(cs.samples) {
		return 0, false
	}
	n = copy(samples, cs.samples[cs.pos:])
	cs.pos += n
	return n, true
}

func (cs *clipStreamer) Err() error { return nil }

// done reports whether the clip has been fully streamed. Callers hold
// the speaker lock.
func (cs *clipStreamer) done() bool { return cs.pos >= len(cs.samples) }

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

func synthClips() map[object.Sound][][2]float64 {
	return map[object.Sound][][2]float64{
		object.SoundShot:      toStereo(sweep(waveSquare, 880, 440, 90*time.Millisecond), 0.25),
		object.SoundEnemyShot: toStereo(sweep(waveSquare, 330, 180, 110*time.Millisecond), 0.25),
		object.SoundExplosion: toStereo(tone(waveNoise, 0, 260*time.Millisecond, 0.005, 0.22), 0.4),
		object.SoundLevelUp: toStereo(concat(
			tone(waveSine, 523, 110*time.Millisecond, 0.005, 0.03),
			tone(waveSine, 659, 110*time.Millisecond, 0.005, 0.03),
			tone(waveSine, 784, 160*time.Millisecond, 0.005, 0.06),
		), 0.35),
		object.SoundLifeLost: toStereo(concat(
			tone(waveSine, 392, 150*time.Millisecond, 0.005, 0.04),
			tone(waveSine, 262, 250*time.Millisecond, 0.005, 0.1),
		), 0.35),
		object.SoundWin: toStereo(concat(
			tone(waveSine, 523, 120*time.Millisecond, 0.005, 0.03),
			tone(waveSine, 659, 120*time.Millisecond, 0.005, 0.03),
			tone(waveSine, 784, 120*time.Millisecond, 0.005, 0.03),
			tone(waveSine, 1047, 300*time.Millisecond, 0.005, 0.12),
		), 0.35),
		object.SoundGameOver: toStereo(sweep(waveSaw, 220, 80, 600*time.Millisecond), 0.3),
	}
}

// tone renders a fixed-frequency waveform with an attack/release
// envelope. Frequency is ignored for noise.
func tone(waveType int, freq float64, dur time.Duration, attackSec, releaseSec float64) []float64 {
	n := sampleRate.N(dur)
	buf := make([]float64, n)
	phase := 0.0
	phaseInc := freq / float64(sampleRate)

	for i := 0; i < n; i++ {
		buf[i] = sample(waveType, phase)
		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	applyEnvelope(buf, attackSec, releaseSec)
	return buf
}

// sweep renders a waveform whose frequency glides linearly from f1 to
// f2 over the duration, with a short envelope on both ends.
func sweep(waveType int, f1, f2 float64, dur time.Duration) []float64 {
	n := sampleRate.N(dur)
	buf := make([]float64, n)
	phase := 0.0

	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := f1 + (f2-f1)*t
		buf[i] = sample(waveType, phase)
		phase += freq / float64(sampleRate)
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	applyEnvelope(buf, 0.005, 0.02)
	return buf
}

func sample(waveType int, phase float64) float64 {
	switch waveType {
	case waveSine:
		return math.Sin(2 * math.Pi * phase)
	case waveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case waveSaw:
		return 2.0 * (phase - 0.5)
	case waveNoise:
		return rand.Float64()*2 - 1
	}
	return 0
}

// applyEnvelope applies an attack/release envelope in place.
func applyEnvelope(buf []float64, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := int(attackSec * float64(sampleRate))
	releaseSamples := int(releaseSec * float64(sampleRate))

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

func concat(bufs ...[]float64) []float64 {
	var out []float64
	for _, b := range bufs {
		out = append(out, b...)
	}
	return out
}

func toStereo(mono []float64, gain float64) [][2]float64 {
	out := make([][2]float64, len(mono))
	for i, v := range mono {
		v *= gain
		out[i] = [2]float64{v, v}
	}
	return out
}
