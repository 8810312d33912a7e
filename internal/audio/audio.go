// Package audio plays the game's cues with synthesized tones.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/diegok/puckstop/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Player plays simulation cues. Without a working speaker every cue is a no-op.
type Player struct {
	mu          sync.Mutex
	initialized bool
	music       *beep.Ctrl
	melody      *melody
}

var _ game.CueSink = (*Player)(nil)

func New() *Player {
	return &Player{}
}

// Init opens the speaker. Callers treat a failure as "play silently".
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/30))
	if err != nil {
		return err
	}

	p.initialized = true
	return nil
}

// Close shuts down the audio system
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
		p.music = nil
		p.melody = nil
	}
}

// Cue plays c without blocking the caller
func (p *Player) Cue(c game.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	switch c {
	case game.CueSave:
		// Rising two-note chirp
		speaker.Play(beep.Seq(
			squareWave(660, 50*time.Millisecond),
			squareWave(990, 70*time.Millisecond),
		))
	case game.CueMiss:
		// Descending buzz
		speaker.Play(beep.Seq(
			squareWave(330, 100*time.Millisecond),
			squareWave(220, 100*time.Millisecond),
			squareWave(165, 180*time.Millisecond),
		))
	case game.CueMusicStart:
		p.startMusic()
	case game.CueMusicStop:
		p.stopMusic()
	}
}

// startMusic restarts the loop from the top, creating it on first use
func (p *Player) startMusic() {
	if p.music == nil {
		p.melody = newMelody(arena)
		p.music = &beep.Ctrl{Streamer: p.melody}
		speaker.Play(&effects.Volume{
			Streamer: p.music,
			Base:     2,
			Volume:   -1.5,
		})
		return
	}

	speaker.Lock()
	p.melody.rewind()
	p.music.Paused = false
	speaker.Unlock()
}

func (p *Player) stopMusic() {
	if p.music == nil {
		return
	}
	speaker.Lock()
	p.music.Paused = true
	speaker.Unlock()
}

// tone generates a sine wave tone at the given frequency for the given duration
func tone(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := 2 * math.Pi * freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := math.Sin(phase) * 0.3 // 0.3 volume
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

// squareWave generates a square wave tone (more retro/8-bit feel)
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			// Square wave: positive or negative based on phase
			val := 0.2 // volume
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}
