package game

import "github.com/diegok/puckstop/internal/layout"

// PuckView is the drawable state of a puck
type PuckView struct {
	X, Y     float64
	Radius   float64
	Rotation float64
	Fading   bool
}

// GoalieView is the drawable state of a goalie
type GoalieView struct {
	Side   Side
	Rect   layout.Rect
	Active bool
}

// Snapshot is a read-only copy of the state the presentation layer draws.
// Coordinates are relative to Layout.Field.
type Snapshot struct {
	Phase      Phase
	Tick       int
	Score      int
	Lives      int
	SpeedMult  float64
	Elapsed    float64
	Muted      bool
	Active     Side
	ActiveRect layout.Rect
	Goalies    []GoalieView
	Pucks      []PuckView
	LineY      float64
	ManFrame   int
	WomanFrame int
	Layout     layout.Layout
}

// Snapshot copies the current state
func (s *Sim) Snapshot() Snapshot {
	pucks := make([]PuckView, len(s.pucks))
	for i, p := range s.pucks {
		pucks[i] = PuckView{
			X:        p.X,
			Y:        p.Y,
			Radius:   p.Radius,
			Rotation: p.Rotation,
			Fading:   p.State == PuckFading,
		}
	}

	goalies := make([]GoalieView, len(s.goalies))
	for i, g := range s.goalies {
		goalies[i] = GoalieView{Side: g.Side, Rect: g.Rect, Active: g.Side == s.active}
	}

	return Snapshot{
		Phase:      s.phase,
		Tick:       s.tick,
		Score:      s.score,
		Lives:      s.lives,
		SpeedMult:  s.speedMult,
		Elapsed:    s.elapsed,
		Muted:      s.muted,
		Active:     s.active,
		ActiveRect: s.goalies[s.active].Rect,
		Goalies:    goalies,
		Pucks:      pucks,
		LineY:      s.lineY,
		ManFrame:   s.man.Frame,
		WomanFrame: s.woman.Frame,
		Layout:     s.layout,
	}
}
