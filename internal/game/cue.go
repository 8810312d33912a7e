package game

// Cue is a fire-and-forget audio event emitted by the simulation
type Cue int

const (
	CueSave Cue = iota
	CueMiss
	CueMusicStart
	CueMusicStop
)

func (c Cue) String() string {
	switch c {
	case CueSave:
		return "save"
	case CueMiss:
		return "miss"
	case CueMusicStart:
		return "music-start"
	case CueMusicStop:
		return "music-stop"
	}
	return "unknown"
}

// CueSink plays cues. Implementations must not block the tick.
type CueSink interface {
	Cue(c Cue)
}

type nopCues struct{}

func (nopCues) Cue(Cue) {}

// Animator flips between two frames at a fixed period.
// Purely cosmetic; never read by gameplay code.
type Animator struct {
	Period float64
	Frame  int
	timer  float64
}

func (a *Animator) Advance(dt float64) {
	if a.Period <= 0 {
		return
	}
	a.timer += dt
	if a.timer >= a.Period {
		a.timer = 0
		a.Frame = 1 - a.Frame
	}
}
