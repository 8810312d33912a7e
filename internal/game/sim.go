package game

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/diegok/puckstop/internal/layout"
)

// Phase is the game state machine position
type Phase int

const (
	PhaseLoading  Phase = iota // Assets not ready, simulation inert
	PhaseIdle                  // Ready, waiting for start
	PhasePlaying               // Tick loop active
	PhaseGameOver              // Terminal until restarted
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	}
	return "unknown"
}

var (
	ErrNotReady       = errors.New("game: assets are still loading")
	ErrAlreadyPlaying = errors.New("game: session already in progress")
)

// Rand is the randomness the spawn policy needs. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// Sim is the simulation core. It is driven from a single goroutine.
type Sim struct {
	tuning Tuning
	layout layout.Layout
	rng    Rand
	cues   CueSink

	phase      Phase
	tick       int
	score      int
	lives      int
	elapsed    float64
	speedMult  float64
	spawnTimer float64
	pucks      []*Puck
	goalies    [2]*Goalie
	active     Side
	lineY      float64
	spawns     []layout.Point
	targets    []layout.Point
	muted      bool

	man   Animator
	woman Animator

	queue []Command
}

// NewSim creates a simulation in the loading phase.
// A nil rng uses math/rand/v2, a nil cues discards cues.
func NewSim(l layout.Layout, tuning Tuning, rng Rand, cues CueSink) *Sim {
	if rng == nil {
		rng = globalRand{}
	}
	if cues == nil {
		cues = nopCues{}
	}
	s := &Sim{
		tuning:    tuning,
		rng:       rng,
		cues:      cues,
		phase:     PhaseLoading,
		speedMult: 1,
		lives:     tuning.StartLives,
		man:       Animator{Period: tuning.ManPeriod},
		woman:     Animator{Period: tuning.WomanPeriod},
	}
	s.goalies[SideLeft] = NewGoalie(SideLeft, l)
	s.goalies[SideRight] = NewGoalie(SideRight, l)
	s.applyLayout(l)
	return s
}

// MarkReady moves from loading to idle. Asset failures still count as ready.
func (s *Sim) MarkReady() {
	if s.phase == PhaseLoading {
		s.phase = PhaseIdle
	}
}

// Start enters a fresh session from idle or game over
func (s *Sim) Start() error {
	switch s.phase {
	case PhaseLoading:
		return ErrNotReady
	case PhasePlaying:
		return ErrAlreadyPlaying
	}
	s.Reset()
	s.emit(CueMusicStart)
	return nil
}

// Reset returns to the initial session state and enters play
func (s *Sim) Reset() {
	s.score = 0
	s.lives = s.tuning.StartLives
	s.elapsed = 0
	s.speedMult = 1
	s.spawnTimer = 0
	s.pucks = s.pucks[:0]
	s.goalies[SideLeft].Place(s.layout)
	s.goalies[SideRight].Place(s.layout)
	s.active = SideLeft
	s.lineY = s.layout.LineY()
	s.phase = PhasePlaying
}

// Advance runs one tick of dt seconds. No-op unless playing.
func (s *Sim) Advance(dt float64) {
	if s.phase != PhasePlaying {
		return
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	// Nothing can spawn or be judged without a playfield
	if s.layout.Field.Empty() {
		return
	}
	s.tick++

	// Difficulty ramp
	s.elapsed += dt
	s.speedMult = 1 + math.Min(1, s.elapsed/s.tuning.RampDuration)*(s.tuning.MaxSpeedMult-1)

	// One puck at a time: spawn only on an empty board
	s.spawnTimer += dt
	if len(s.pucks) == 0 && s.spawnTimer >= s.tuning.SpawnInterval {
		s.spawnTimer = 0
		s.spawn()
	}

	for _, p := range s.pucks {
		p.Move(dt)
	}

	s.judgeCrossings()

	// Pucks judged on an earlier tick have had their extra frame
	kept := s.pucks[:0]
	for _, p := range s.pucks {
		if p.Expired(s.tick) {
			p.Remove()
			continue
		}
		kept = append(kept, p)
	}
	s.pucks = kept

	s.man.Advance(dt)
	s.woman.Advance(dt)
}

// judgeCrossings scores every active puck that reached the line this tick
func (s *Sim) judgeCrossings() {
	for _, p := range s.pucks {
		if p.State != PuckActive || p.Y < s.lineY {
			continue
		}

		p.Fade(s.tick)
		if s.checkSave(p) {
			s.score++
			s.emit(CueSave)
			continue
		}

		s.lives--
		s.emit(CueMiss)
		if s.lives <= 0 {
			s.endGame()
			return
		}
	}
}

func (s *Sim) endGame() {
	if s.phase == PhaseGameOver {
		return
	}
	s.phase = PhaseGameOver
	s.cues.Cue(CueMusicStop)
}

// ToggleActiveGoalie switches sides. Ignored outside play.
func (s *Sim) ToggleActiveGoalie() {
	if s.phase != PhasePlaying {
		return
	}
	s.active = s.active.Other()
}

// SetMuted silences cues. Muting stops the music, unmuting mid-session restarts it.
func (s *Sim) SetMuted(muted bool) {
	if s.muted == muted {
		return
	}
	s.muted = muted
	if muted {
		s.cues.Cue(CueMusicStop)
	} else if s.phase == PhasePlaying {
		s.cues.Cue(CueMusicStart)
	}
}

// SetLayout re-derives goalies, lanes and the save line for a new viewport.
// Live pucks keep their relative position. A layout with no playfield, such as
// a terminal too small to draw in, is ignored so the session keeps its geometry.
func (s *Sim) SetLayout(l layout.Layout) {
	old := s.layout
	if l.Field.Empty() && !old.Field.Empty() {
		return
	}
	if !old.Field.Empty() && !l.Field.Empty() {
		sx := l.Field.W / old.Field.W
		sy := l.Field.H / old.Field.H
		sr := 0.0
		if old.Scale > 0 {
			sr = l.Scale / old.Scale
		}
		for _, p := range s.pucks {
			p.rescale(sx, sy, sr)
		}
	}
	s.applyLayout(l)
}

func (s *Sim) applyLayout(l layout.Layout) {
	s.layout = l
	s.spawns, s.targets = l.Lanes()
	s.lineY = l.LineY()
	s.goalies[SideLeft].Place(l)
	s.goalies[SideRight].Place(l)
}

func (s *Sim) emit(c Cue) {
	if s.muted {
		return
	}
	s.cues.Cue(c)
}

// Phase returns the state machine position
func (s *Sim) Phase() Phase { return s.phase }

// Playing reports whether the tick loop is active
func (s *Sim) Playing() bool { return s.phase == PhasePlaying }

// GameOver reports whether the session ended
func (s *Sim) GameOver() bool { return s.phase == PhaseGameOver }

func (s *Sim) Score() int               { return s.score }
func (s *Sim) Lives() int               { return s.lives }
func (s *Sim) SpeedMult() float64       { return s.speedMult }
func (s *Sim) Muted() bool              { return s.muted }
func (s *Sim) ActiveSide() Side         { return s.active }
func (s *Sim) Goalie(side Side) *Goalie { return s.goalies[side] }
func (s *Sim) Layout() layout.Layout    { return s.layout }

// Pucks returns the live puck set. Callers must not modify it.
func (s *Sim) Pucks() []*Puck { return s.pucks }
