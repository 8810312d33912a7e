package audio

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// note is one step of a looping tune. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

// arena is the stadium organ riff played during a session
var arena = []note{
	{392, 150 * time.Millisecond},
	{523, 150 * time.Millisecond},
	{659, 150 * time.Millisecond},
	{784, 300 * time.Millisecond},
	{0, 150 * time.Millisecond},
	{659, 150 * time.Millisecond},
	{784, 450 * time.Millisecond},
	{0, 600 * time.Millisecond},
}

// melody streams a list of notes forever
type melody struct {
	notes   []note
	idx     int
	current beep.Streamer
}

func newMelody(notes []note) *melody {
	return &melody{notes: notes}
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	if len(m.notes) == 0 {
		return 0, false
	}
	for n < len(samples) {
		if m.current == nil {
			m.current = m.next()
		}
		k, more := m.current.Stream(samples[n:])
		n += k
		if !more {
			m.current = nil
		}
	}
	return n, true
}

func (m *melody) Err() error { return nil }

func (m *melody) next() beep.Streamer {
	nt := m.notes[m.idx]
	m.idx = (m.idx + 1) % len(m.notes)
	if nt.freq == 0 {
		return beep.Silence(sampleRate.N(nt.dur))
	}
	return tone(nt.freq, nt.dur)
}

// rewind restarts from the first note. Callers hold the speaker lock.
func (m *melody) rewind() {
	m.idx = 0
	m.current = nil
}
