package game

import "github.com/diegok/puckstop/internal/layout"

// Side identifies one of the two goalies
type Side int

const (
	SideLeft  Side = 0
	SideRight Side = 1
)

// Other returns the opposite side
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Goalie is a fixed interception rectangle
type Goalie struct {
	Side Side
	Rect layout.Rect
}

func NewGoalie(side Side, l layout.Layout) *Goalie {
	g := &Goalie{Side: side}
	g.Place(l)
	return g
}

// Place recomputes the hitbox from the layout table
func (g *Goalie) Place(l layout.Layout) {
	spec := l.Table.GoalieL
	if g.Side == SideRight {
		spec = l.Table.GoalieR
	}
	g.Rect = l.GoalieRect(spec)
}

// Saves reports whether the puck centre is inside the hitbox
func (g *Goalie) Saves(p *Puck) bool {
	return g.Rect.Contains(p.Position())
}
